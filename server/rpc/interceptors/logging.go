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

package interceptors

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/quill-wiki/quill/server/logging"
	"github.com/quill-wiki/quill/server/profiling/prometheus"
)

// unmatchedRoute labels requests that matched no route.
const unmatchedRoute = "unmatched"

// Logging logs every request with its duration and the error written by the
// handler, and records it in metrics.
func Logging(metrics *prometheus.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		duration := time.Since(start)

		route := c.FullPath()
		if route == "" {
			route = unmatchedRoute
		}

		logger := logging.From(c.Request.Context())
		if err := c.Errors.Last(); err != nil {
			logging.LogRequestError(logger, route, duration, err.Err)
		} else if c.Writer.Status() >= http.StatusBadRequest {
			logger.Infof("HTTP: %q %s => %d", route, duration, c.Writer.Status())
		} else {
			logging.LogRequestSuccess(logger, route, duration)
		}

		if metrics != nil {
			metrics.ObserveHTTPRequest(c.Request.Method, route, c.Writer.Status(), duration.Seconds())
		}
	}
}
