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
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/server/backend"
	"github.com/quill-wiki/quill/server/drafts"
	"github.com/quill-wiki/quill/server/rpc/httphelper"
)

// draftServer serves the annotation pass of the acting reviewer.
type draftServer struct {
	backend *backend.Backend
}

func newDraftServer(be *backend.Backend) *draftServer {
	return &draftServer{backend: be}
}

func (s *draftServer) register(rg *gin.RouterGroup) {
	rg.GET("/reviews/:id/draft", s.getDraft)
	rg.POST("/reviews/:id/draft/selection", s.selectRange)
	rg.DELETE("/reviews/:id/draft/selection", s.cancelSelection)
	rg.POST("/reviews/:id/draft/comments", s.addComment)
	rg.DELETE("/reviews/:id/draft/comments/:commentID", s.deleteComment)
}

// getDraft returns the comments touching a line if ?line is given, the
// preview if ?view=preview is given, and the whole pass otherwise.
func (s *draftServer) getDraft(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	ctx := c.Request.Context()
	line, hasLine, err := intQuery(c, "line")
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	switch {
	case hasLine:
		comments, err := drafts.Touching(ctx, s.backend, id, userOf(c), line)
		if err != nil {
			httphelper.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, comments)
	case c.Query("view") == "preview":
		preview, err := drafts.Preview(ctx, s.backend, id, userOf(c))
		if err != nil {
			httphelper.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, types.PreviewResponse{Preview: preview})
	default:
		snapshot, err := drafts.GetSnapshot(ctx, s.backend, id, userOf(c))
		if err != nil {
			httphelper.WriteError(c, err)
			return
		}
		c.JSON(http.StatusOK, snapshot)
	}
}

func (s *draftServer) selectRange(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	var req types.SelectRequest
	if err := bindJSON(c, &req); err != nil {
		httphelper.WriteError(c, err)
		return
	}

	sel, err := drafts.Select(c.Request.Context(), s.backend, id, userOf(c), req.LineStart, req.LineEnd)
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, sel)
}

func (s *draftServer) cancelSelection(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	if err := drafts.Cancel(c.Request.Context(), s.backend, id, userOf(c)); err != nil {
		httphelper.WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

func (s *draftServer) addComment(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	var fields types.CommentFields
	if err := bindJSON(c, &fields); err != nil {
		httphelper.WriteError(c, err)
		return
	}

	comment, err := drafts.AddComment(c.Request.Context(), s.backend, id, userOf(c), fields)
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (s *draftServer) deleteComment(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}
	commentID, err := idParam(c, "commentID")
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	if err := drafts.DeleteComment(c.Request.Context(), s.backend, id, userOf(c), commentID); err != nil {
		httphelper.WriteError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
