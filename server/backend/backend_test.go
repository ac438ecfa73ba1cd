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

package backend_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/server/backend"
	"github.com/quill-wiki/quill/server/profiling/prometheus"
)

func TestBackend(t *testing.T) {
	t.Run("new and shutdown test", func(t *testing.T) {
		conf := newValidBackendConf()
		metrics, err := prometheus.NewMetrics()
		require.NoError(t, err)

		be, err := backend.New(&conf, nil, metrics)
		require.NoError(t, err)
		assert.Equal(t, 72*time.Hour, be.Machine.Window())
		assert.Equal(t, 0, be.Scheduler.Len())

		assert.NoError(t, be.Shutdown())
	})

	t.Run("invalid window test", func(t *testing.T) {
		conf := newValidBackendConf()
		conf.ReviewWindow = "soon"

		_, err := backend.New(&conf, nil, nil)
		assert.Error(t, err)
	})

	t.Run("clock test", func(t *testing.T) {
		conf := newValidBackendConf()
		be, err := backend.New(&conf, nil, nil)
		require.NoError(t, err)
		defer func() { assert.NoError(t, be.Shutdown()) }()

		fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
		be.Clock = func() time.Time { return fixed }
		assert.Equal(t, fixed, be.Now())

		w, err := be.Scheduler.Watch("review", fixed.Add(5*time.Second))
		require.NoError(t, err)
		remaining := <-w.Events()
		assert.Equal(t, "0 hours 0 minutes 5 seconds", remaining.String())
		be.Scheduler.Unwatch(w)
	})

	t.Run("draft key test", func(t *testing.T) {
		key := backend.DraftKey{ReviewID: types.ID("000000000000000000000001"), Author: "alice"}
		assert.Equal(t, "000000000000000000000001/alice", key.String())
	})
}
