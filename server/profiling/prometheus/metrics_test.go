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

package prometheus_test

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/server/profiling/prometheus"
)

func TestMetrics(t *testing.T) {
	metrics, err := prometheus.NewMetrics()
	require.NoError(t, err)

	metrics.AddReviewStarted()
	metrics.AddReviewFinished(types.ReviewCompleted, "manual")
	metrics.AddReviewFinished(types.ReviewCancelled, "expired")
	metrics.AddVote(types.VoteTargetDocument, types.VoteUp)
	metrics.AddVote(types.VoteTargetRevision, types.VoteDown)
	metrics.ObserveHTTPRequest("GET", "/v1/documents/:id", 200, 0.01)
	metrics.AddBackgroundGoroutines("housekeeping")
	metrics.RemoveBackgroundGoroutines("housekeeping")

	families, err := metrics.Registry().Gather()
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, family := range families {
		names[family.GetName()] = true
	}
	assert.True(t, names["quill_server_version"])
	assert.True(t, names["quill_review_started_total"])
	assert.True(t, names["quill_review_finished_total"])
	assert.True(t, names["quill_review_votes_total"])
	assert.True(t, names["quill_http_server_handled_total"])

	count, err := testutil.GatherAndCount(metrics.Registry(), "quill_review_finished_total")
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	watchers := 3
	require.NoError(t, metrics.RegisterCountdownWatchers(func() int { return watchers }))
	count, err = testutil.GatherAndCount(metrics.Registry(), "quill_countdown_watchers")
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}
