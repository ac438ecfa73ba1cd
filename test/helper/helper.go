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

// Package helper provides helper functions for testing.
package helper

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	gotime "time"

	"github.com/stretchr/testify/require"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/server/backend"
	"github.com/quill-wiki/quill/server/backend/database"
	"github.com/quill-wiki/quill/server/profiling/prometheus"
	"github.com/quill-wiki/quill/server/rpc"
)

var testStartedAt int64

// Below are the values of the Quill config used in the test.
var (
	RPCPort       = 11101
	ProfilingPort = 11102

	ReviewWindow          = 72 * gotime.Hour
	CountdownTickInterval = 10 * gotime.Millisecond
	MaxWatchersPerReview  = 4

	HousekeepingInterval        = 10 * gotime.Second
	HousekeepingCandidatesLimit = 10
	HousekeepingConcurrency     = 2

	MongoConnectionURI     = "mongodb://localhost:27017"
	MongoConnectionTimeout = "5s"
	MongoPingTimeout       = "5s"
)

func init() {
	testStartedAt = gotime.Now().Unix()
}

// TestDBName returns the name of test database with timestamp.
// timestamp is set only once on first call.
func TestDBName() string {
	return fmt.Sprintf("test-quill-%d", testStartedAt)
}

// Clock is a clock that only moves when it is told to.
type Clock struct {
	mu  sync.Mutex
	now gotime.Time
}

// NewClock creates a clock stopped at now.
func NewClock(now gotime.Time) *Clock {
	return &Clock{now: now}
}

// Now returns the current time of the clock.
func (c *Clock) Now() gotime.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d gotime.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// BackendConfig returns the backend config used in the test.
func BackendConfig() *backend.Config {
	return &backend.Config{
		ReviewWindow:          ReviewWindow.String(),
		CountdownTickInterval: CountdownTickInterval.String(),
		MaxWatchersPerReview:  MaxWatchersPerReview,
	}
}

// RPCConfig returns the RPC config used in the test. Rate limiting is off.
func RPCConfig() *rpc.Config {
	return &rpc.Config{
		Port:              RPCPort,
		MaxRequestBytes:   1 << 20,
		ReadHeaderTimeout: "5s",
	}
}

// NewBackend creates a backend on the memory database that reads the time
// from clock. It is shut down when the test finishes.
func NewBackend(t testing.TB, clock *Clock) *backend.Backend {
	metrics, err := prometheus.NewMetrics()
	require.NoError(t, err)

	be, err := backend.New(BackendConfig(), nil, metrics)
	require.NoError(t, err)
	if clock != nil {
		be.Clock = clock.Now
	}

	t.Cleanup(func() {
		require.NoError(t, be.Shutdown())
	})
	return be
}

// CreateDocInfo stores an unverified document made of lines.
func CreateDocInfo(t testing.TB, be *backend.Backend, lines ...string) *database.DocInfo {
	info, err := be.DB.CreateDocInfo(
		context.Background(),
		database.NewDocInfo(t.Name(), strings.Join(lines, "\n"), be.Now()),
	)
	require.NoError(t, err)
	return info
}

// Suggestion returns a pointer to s, for optional suggested changes.
func Suggestion(s string) *string {
	return &s
}

// Direction returns a pointer to d, for optional vote directions.
func Direction(d types.VoteDirection) *types.VoteDirection {
	return &d
}
