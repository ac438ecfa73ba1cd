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

package reviews

import (
	"context"
	"sync"
	"time"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/api/types/events"
	"github.com/quill-wiki/quill/pkg/countdown"
	"github.com/quill-wiki/quill/server/backend"
	"github.com/quill-wiki/quill/server/backend/pubsub"
)

// Watch is a stream of the countdown and the events of a review session.
type Watch struct {
	be       *backend.Backend
	reviewID types.ID
	watcher  *countdown.Watcher
	sub      *pubsub.ReviewSubscription
	once     sync.Once
}

// WatchReview starts streaming the countdown and the events of the review
// to subscriber. The caller must Close the returned Watch.
func WatchReview(
	ctx context.Context,
	be *backend.Backend,
	reviewID types.ID,
	subscriber string,
) (*Watch, error) {
	info, err := be.DB.FindReviewInfoByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	sub, err := be.PubSub.Subscribe(ctx, subscriber, reviewID, be.Config.MaxWatchersPerReview)
	if err != nil {
		return nil, err
	}

	// read again after subscribing so that a session closed in between is
	// not missed.
	if info, err = be.DB.FindReviewInfoByID(ctx, reviewID); err != nil {
		be.PubSub.Unsubscribe(ctx, reviewID, sub)
		return nil, err
	}

	// a closed session counts down to nothing and has no more events, so
	// both streams end at once.
	deadline := info.Deadline
	if info.Status.IsTerminal() {
		deadline = time.Time{}
		be.PubSub.Unsubscribe(ctx, reviewID, sub)
	}
	watcher, err := be.Scheduler.Watch(reviewID.String(), deadline)
	if err != nil {
		be.PubSub.Unsubscribe(ctx, reviewID, sub)
		return nil, err
	}

	be.Metrics.AddWatchReviewConnections()
	return &Watch{
		be:       be,
		reviewID: reviewID,
		watcher:  watcher,
		sub:      sub,
	}, nil
}

// Countdown returns the channel of the remaining time. It is closed after
// the ended value.
func (w *Watch) Countdown() <-chan countdown.Remaining {
	return w.watcher.Events()
}

// Events returns the channel of the review events. It is closed after the
// review is closed.
func (w *Watch) Events() <-chan events.ReviewEvent {
	return w.sub.Events()
}

// Close stops the stream. It can be called more than once.
func (w *Watch) Close(ctx context.Context) {
	w.once.Do(func() {
		w.be.Scheduler.Unwatch(w.watcher)
		w.be.PubSub.Unsubscribe(ctx, w.reviewID, w.sub)
		w.be.Metrics.RemoveWatchReviewConnections()
	})
}
