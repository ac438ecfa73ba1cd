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

package server_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/server"
	"github.com/quill-wiki/quill/server/rpc"
	"github.com/quill-wiki/quill/test/helper"
)

func TestQuill(t *testing.T) {
	conf := server.NewConfig()
	conf.RPC.Port = helper.RPCPort
	conf.Profiling.Port = helper.ProfilingPort

	t.Run("start and shutdown test", func(t *testing.T) {
		q, err := server.New(conf)
		require.NoError(t, err)
		require.NoError(t, q.Start())

		resp, err := http.Get("http://" + q.RPCAddr() + rpc.HealthPath)
		require.NoError(t, err)
		var health types.HealthResponse
		assert.NoError(t, json.NewDecoder(resp.Body).Decode(&health))
		assert.NoError(t, resp.Body.Close())
		assert.Equal(t, "ok", health.Status)

		finalized, err := q.FinalizeExpiredReviews(context.Background())
		assert.NoError(t, err)
		assert.Equal(t, 0, finalized)

		assert.NoError(t, q.Shutdown(true))
		assert.NoError(t, q.Shutdown(true))
		<-q.ShutdownCh()
	})

	t.Run("invalid config test", func(t *testing.T) {
		invalid := server.NewConfig()
		invalid.Housekeeping.Concurrency = -1
		_, err := server.New(invalid)
		assert.Error(t, err)
	})
}
