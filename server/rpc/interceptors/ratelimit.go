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
	"fmt"
	"sync"

	"github.com/gin-gonic/gin"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/time/rate"

	"github.com/quill-wiki/quill/pkg/errors"
	"github.com/quill-wiki/quill/server/rpc/httphelper"
)

// ErrTooManyRequests is returned when a client exceeds its request rate.
var ErrTooManyRequests = errors.ResourceExhausted("too many requests").WithCode("ErrTooManyRequests")

// RateLimiter keeps a token bucket per client. Clients are identified by the
// key function and only the most recently seen ones are remembered.
type RateLimiter struct {
	mu       sync.Mutex
	limiters *lru.Cache[string, *rate.Limiter]
	limit    rate.Limit
	burst    int
	key      func(c *gin.Context) string
}

// NewRateLimiter creates a RateLimiter allowing rps requests per second with
// the given burst to each of at most size clients.
func NewRateLimiter(rps float64, burst, size int, key func(c *gin.Context) string) (*RateLimiter, error) {
	limiters, err := lru.New[string, *rate.Limiter](size)
	if err != nil {
		return nil, fmt.Errorf("new limiter cache: %w", err)
	}

	return &RateLimiter{
		limiters: limiters,
		limit:    rate.Limit(rps),
		burst:    burst,
		key:      key,
	}, nil
}

// Allow reports whether the client identified by key may send a request now.
func (l *RateLimiter) Allow(key string) bool {
	l.mu.Lock()
	limiter, ok := l.limiters.Get(key)
	if !ok {
		limiter = rate.NewLimiter(l.limit, l.burst)
		l.limiters.Add(key, limiter)
	}
	l.mu.Unlock()

	return limiter.Allow()
}

// Handler returns the middleware rejecting requests over the limit.
func (l *RateLimiter) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !l.Allow(l.key(c)) {
			httphelper.WriteError(c, fmt.Errorf("%s: %w", l.key(c), ErrTooManyRequests))
			return
		}
		c.Next()
	}
}
