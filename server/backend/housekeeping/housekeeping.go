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

package housekeeping

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/server/backend/background"
	"github.com/quill-wiki/quill/server/backend/database"
	"github.com/quill-wiki/quill/server/logging"
)

const taskType = "housekeeping"

// Finalizer closes an expired review session.
type Finalizer func(ctx context.Context, reviewID types.ID) error

// Housekeeping is the housekeeping service. It periodically finalizes the
// review sessions whose deadline has passed.
type Housekeeping struct {
	database   database.Database
	background *background.Background
	finalize   Finalizer
	now        func() time.Time

	interval        time.Duration
	candidatesLimit int
	concurrency     int
}

// New creates a new housekeeping instance.
func New(
	conf *Config,
	database database.Database,
	bg *background.Background,
	finalize Finalizer,
	now func() time.Time,
) (*Housekeeping, error) {
	interval, err := conf.ParseInterval()
	if err != nil {
		return nil, err
	}

	return &Housekeeping{
		database:   database,
		background: bg,
		finalize:   finalize,
		now:        now,

		interval:        interval,
		candidatesLimit: conf.CandidatesLimit,
		concurrency:     conf.Concurrency,
	}, nil
}

// Start starts the housekeeping loop as a background routine. It runs until
// the background service is closed.
func (h *Housekeeping) Start() {
	h.background.AttachGoroutine(h.run, taskType)
}

// run is the housekeeping loop.
func (h *Housekeeping) run(ctx context.Context) {
	for {
		if _, err := h.FinalizeExpired(ctx); err != nil {
			logging.From(ctx).Error(err)
		}

		select {
		case <-time.After(h.interval):
		case <-ctx.Done():
			return
		}
	}
}

// FinalizeExpired finalizes up to candidatesLimit expired sessions and
// returns how many were finalized. A session that fails is logged and
// retried on the next run.
func (h *Housekeeping) FinalizeExpired(ctx context.Context) (int, error) {
	start := time.Now()
	candidates, err := h.database.FindExpiredReviewInfos(ctx, h.now(), h.candidatesLimit)
	if err != nil {
		return 0, err
	}

	var finalized atomic.Int32
	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(h.concurrency)
	for _, candidate := range candidates {
		group.Go(func() error {
			if err := h.finalize(groupCtx, candidate.ID); err != nil {
				logging.From(ctx).Warnf("HSKP: finalize %s: %v", candidate.ID, err)
				return nil
			}
			finalized.Add(1)
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return int(finalized.Load()), err
	}

	if len(candidates) > 0 {
		logging.From(ctx).Infof(
			"HSKP: candidates %d, finalized %d, %s",
			len(candidates),
			finalized.Load(),
			time.Since(start),
		)
	}

	return int(finalized.Load()), nil
}
