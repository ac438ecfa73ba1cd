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
	"github.com/quill-wiki/quill/server/documents"
	"github.com/quill-wiki/quill/server/reviews"
	"github.com/quill-wiki/quill/server/revisions"
	"github.com/quill-wiki/quill/server/rpc/httphelper"
)

// documentServer serves the documents and their review history.
type documentServer struct {
	backend *backend.Backend
}

func newDocumentServer(be *backend.Backend) *documentServer {
	return &documentServer{backend: be}
}

func (s *documentServer) register(rg *gin.RouterGroup) {
	rg.POST("/documents", s.createDocument)
	rg.GET("/documents", s.listDocuments)
	rg.GET("/documents/:id", s.getDocument)
	rg.POST("/documents/:id/votes", s.voteDocument)
	rg.POST("/documents/:id/reviews", s.startReview)
	rg.GET("/documents/:id/reviews", s.getReviewHistory)
	rg.GET("/documents/:id/reviews/:reviewID/revisions", s.getReviewRevisions)
}

func (s *documentServer) createDocument(c *gin.Context) {
	var fields types.DocumentFields
	if err := bindJSON(c, &fields); err != nil {
		httphelper.WriteError(c, err)
		return
	}

	doc, err := documents.CreateDocument(c.Request.Context(), s.backend, fields)
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, doc)
}

func (s *documentServer) listDocuments(c *gin.Context) {
	size, _, err := intQuery(c, "size")
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	paging := types.Paging[types.ID]{
		PageSize:  size,
		IsForward: c.Query("forward") != "false",
	}
	if offset := c.Query("offset"); offset != "" {
		paging.Offset = types.ID(offset)
		if err := paging.Offset.Validate(); err != nil {
			httphelper.WriteError(c, err)
			return
		}
	}

	docs, err := documents.ListDocuments(c.Request.Context(), s.backend, paging)
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, docs)
}

func (s *documentServer) getDocument(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	doc, err := documents.GetDocument(c.Request.Context(), s.backend, id)
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (s *documentServer) voteDocument(c *gin.Context) {
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

	doc, err := documents.VoteDocument(c.Request.Context(), s.backend, id, userOf(c), fields.Direction)
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, doc)
}

func (s *documentServer) startReview(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	session, err := reviews.StartReview(c.Request.Context(), s.backend, id)
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (s *documentServer) getReviewHistory(c *gin.Context) {
	id, err := idParam(c, "id")
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	entries, err := reviews.ReviewHistory(c.Request.Context(), s.backend, id)
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, entries)
}

func (s *documentServer) getReviewRevisions(c *gin.Context) {
	docID, err := idParam(c, "id")
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}
	reviewID, err := idParam(c, "reviewID")
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	ranked, err := revisions.ListRevisions(c.Request.Context(), s.backend, docID, reviewID, userOf(c))
	if err != nil {
		httphelper.WriteError(c, err)
		return
	}

	c.JSON(http.StatusOK, ranked)
}
