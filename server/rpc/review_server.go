/*
 * Copyright 2026 The Quill Authors. All rights reserved.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package rpc

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/server/backend"
	"github.com/quill-wiki/quill/server/reviews"
	"github.com/quill-wiki/quill/server/revisions"
	"github.com/quill-wiki/quill/server/rpc/httphelper"
)

// countdownEvent is the SSE event name of a countdown tick.
const countdownEvent = "countdown"

// reviewServer serves the review sessions, their revisions and the votes on
// them.
type reviewServer struct {
	backend *backend.Backend
}

func newReviewServer(be *backend.Backend) *reviewServer {
	return &reviewServer{backend: be}
}

func (s *reviewServer) register(rg *gin.RouterGroup) {
	rg.GET("/reviews/:id", s.getReview)
	rg.POST("/reviews/:id/complete", s.completeReview)
	rg.GET("/reviews/:id/countdown", s.getCountdown)
	rg.GET("/reviews/:id/watch", s.watchReview)
	rg.POST("/reviews/:id/revisions", s.submitRevision)
	rg.POST("/revisions/:id/votes", s.voteRevision)
}

func (s *reviewServer) getReview(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	session, err := reviews.GetReview(c.Request.Context(), s.backend, id)
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, session)
}

func (s *reviewServer) completeReview(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	result, err := reviews.CompleteReview(c.Request.Context(), s.backend, id)
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (s *reviewServer) getCountdown(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	remaining, err := reviews.Countdown(c.Request.Context(), s.backend, id)
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, types.NewCountdownResponse(remaining))
}

// watchReview streams the countdown and the events of a review as
// server-sent events until the review is closed or the client goes away.
func (s *reviewServer) watchReview(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	ctx := c.Request.Context()
	subscriber := userOf(c)
	if subscriber == "" {
		subscriber = c.ClientIP()
	}

	watch, err := reviews.WatchReview(ctx, s.backend, id, subscriber)
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}
	defer watch.Close(ctx)

	ticks := watch.Countdown()
	events := watch.Events()
	c.Stream(func(_ io.Writer) bool {
		select {
		case <-ctx.Done():
			return false
		case remaining, ok := <-ticks:
			if !ok {
				ticks = nil
				return events != nil
			}
			c.SSEvent(countdownEvent, types.NewCountdownResponse(remaining))
			return true
		case event, ok := <-events:
			if !ok {
				events = nil
				return ticks != nil
			}
			c.SSEvent(string(event.Type), event)
			s.backend.Metrics.AddWatchReviewEvents(event.Type)
			return !event.Type.IsTerminal()
		}
	})
}

func (s *reviewServer) submitRevision(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	var fields types.RevisionFields
	if err := bindJSON(c, &fields); err != nil {
		httphelper.WriteError(c, err)
		return
	}

	revision, err := revisions.SubmitRevision(c.Request.Context(), s.backend, id, userOf(c), fields)
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, revision)
}

func (s *reviewServer) voteRevision(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	var fields types.VoteFields
	if err := bindJSON(c, &fields); err != nil {
		httphelper.WriteError(c, err)
		return
	}

	revision, err := revisions.VoteRevision(c.Request.Context(), s.backend, id, userOf(c), fields.Direction)
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, revision)
}
