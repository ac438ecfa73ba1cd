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

package interceptors_test

import (
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-wiki/quill/server/rpc/interceptors"
)

func TestRateLimiter(t *testing.T) {
	key := func(c *gin.Context) string { return c.ClientIP() }

	t.Run("burst per client test", func(t *testing.T) {
		limiter, err := interceptors.NewRateLimiter(0.001, 2, 8, key)
		require.NoError(t, err)

		assert.True(t, limiter.Allow("a"))
		assert.True(t, limiter.Allow("a"))
		assert.False(t, limiter.Allow("a"))
		assert.True(t, limiter.Allow("b"))
	})

	t.Run("forget old clients test", func(t *testing.T) {
		limiter, err := interceptors.NewRateLimiter(0.001, 1, 1, key)
		require.NoError(t, err)

		assert.True(t, limiter.Allow("a"))
		assert.False(t, limiter.Allow("a"))

		// "b" evicts "a", which then starts over with a full bucket.
		assert.True(t, limiter.Allow("b"))
		assert.True(t, limiter.Allow("a"))
	})

	t.Run("invalid cache size test", func(t *testing.T) {
		_, err := interceptors.NewRateLimiter(1, 1, 0, key)
		assert.Error(t, err)
	})
}
