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

// Package backend provides the backend implementation of Quill.
// This package is responsible for managing the database and other
// resources required to run the review workflow.
package backend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/pkg/cmap"
	"github.com/quill-wiki/quill/pkg/countdown"
	"github.com/quill-wiki/quill/pkg/locker"
	"github.com/quill-wiki/quill/pkg/verification"
	"github.com/quill-wiki/quill/server/backend/background"
	"github.com/quill-wiki/quill/server/backend/database"
	memdb "github.com/quill-wiki/quill/server/backend/database/memory"
	"github.com/quill-wiki/quill/server/backend/database/mongo"
	"github.com/quill-wiki/quill/server/backend/pubsub"
	"github.com/quill-wiki/quill/server/logging"
	"github.com/quill-wiki/quill/server/profiling/prometheus"
)

// Backend manages Quill's backend such as Database and the countdown
// scheduler. It also provides the in-memory drafts, pubsub, and lockers.
type Backend struct {
	Config *Config

	// PubSub is used to publish review events to watchers.
	PubSub *pubsub.PubSub
	// Lockers serializes writers of the same document.
	Lockers *locker.Locker[types.ID]
	// Drafts holds the annotation passes that are not submitted yet.
	Drafts *cmap.Map[DraftKey, *Draft]

	// Machine applies the verification transitions.
	Machine *verification.Machine
	// Scheduler ticks the countdowns of watched reviews.
	Scheduler *countdown.Scheduler

	// Background is used to manage background tasks.
	Background *background.Background

	// Metrics is used to expose metrics.
	Metrics *prometheus.Metrics
	// DB is the database instance.
	DB database.Database

	// Clock returns the current time. It defaults to time.Now.
	Clock func() time.Time
}

// New creates a new instance of Backend.
func New(
	conf *Config,
	mongoConf *mongo.Config,
	metrics *prometheus.Metrics,
) (*Backend, error) {
	window, err := conf.ParseReviewWindow()
	if err != nil {
		return nil, err
	}
	tick, err := conf.ParseCountdownTickInterval()
	if err != nil {
		return nil, err
	}

	// 01. Create the database instance. If the MongoDB configuration is given,
	// create a MongoDB instance. Otherwise, create a memory database instance.
	var db database.Database
	if mongoConf != nil {
		db, err = mongo.Dial(mongoConf)
		if err != nil {
			return nil, err
		}
	} else {
		db, err = memdb.New()
		if err != nil {
			return nil, err
		}
	}

	// 02. Create the in-memory state shared by the services.
	be := &Backend{
		Config: conf,

		PubSub:  pubsub.New(),
		Lockers: locker.New[types.ID](),
		Drafts:  cmap.New[DraftKey, *Draft](),

		Machine:    verification.New(window),
		Background: background.New(metrics),

		Metrics: metrics,
		DB:      db,
		Clock:   time.Now,
	}

	// 03. Create the countdown scheduler. It reads the time through the
	// backend so that a replaced Clock applies to it too.
	be.Scheduler = countdown.NewScheduler(tick, be.Now)
	if metrics != nil {
		if err := metrics.RegisterCountdownWatchers(be.Scheduler.Len); err != nil {
			return nil, errors.Join(err, be.Shutdown())
		}
	}

	dbInfo := "memory"
	if mongoConf != nil {
		dbInfo = mongoConf.ConnectionURI
	}
	logging.DefaultLogger().Infof("backend created: db: %s, review window: %s", dbInfo, window)

	return be, nil
}

// Now returns the current time of the backend clock.
func (b *Backend) Now() time.Time {
	return b.Clock()
}

// Shutdown closes all resources of this instance.
func (b *Backend) Shutdown() error {
	var errs []error

	b.Scheduler.Close()
	b.Background.Close()

	if err := b.DB.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close database: %w", err))
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	logging.DefaultLogger().Infof("backend stopped")
	return nil
}

// LockDocument locks the document for writing and returns the function
// that unlocks it.
func (b *Backend) LockDocument(ctx context.Context, docID types.ID) func() {
	b.Lockers.Lock(docID)
	return func() {
		if err := b.Lockers.Unlock(docID); err != nil {
			logging.From(ctx).Error(err)
		}
	}
}
