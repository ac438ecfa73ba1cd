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

// Package interceptors provides the middlewares of the HTTP API.
package interceptors

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/quill-wiki/quill/server/logging"
)

// RequestIDHeader carries the ID of a request in both directions.
const RequestIDHeader = "X-Request-ID"

// maxRequestIDLength bounds the IDs accepted from clients.
const maxRequestIDLength = 64

// RequestID tags the request with an ID, reusing the one sent by the client
// if any, and puts a logger carrying it into the request context.
func RequestID() gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader(RequestIDHeader)
		if rid == "" || len(rid) > maxRequestIDLength {
			rid = uuid.NewString()
		}

		c.Header(RequestIDHeader, rid)
		c.Request = c.Request.WithContext(logging.WithRequest(c.Request.Context(), rid))
		c.Next()
	}
}
