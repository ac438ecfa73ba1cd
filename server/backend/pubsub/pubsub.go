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

// Package pubsub delivers review events to the watchers of a review session.
package pubsub

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/api/types/events"
	"github.com/quill-wiki/quill/pkg/cmap"
	"github.com/quill-wiki/quill/pkg/errors"
	"github.com/quill-wiki/quill/server/logging"
)

// reviewEventBufferSize is the number of events buffered per watcher.
const reviewEventBufferSize = 16

var (
	// ErrTooManySubscribers is returned when the the subscription limit is exceeded.
	ErrTooManySubscribers = errors.ResourceExhausted("subscription limit exceeded").WithCode("ErrTooManySubscribers")
)

// ReviewSubscription is a subscription to the events of a review session.
type ReviewSubscription = Subscription[events.ReviewEvent]

// ReviewSubscriptions is the collection of subscriptions to a review session.
type ReviewSubscriptions = Subscriptions[events.ReviewEvent]

// PubSub is the memory implementation of PubSub, used for single server.
type PubSub struct {
	reviewSubsMap *cmap.Map[types.ID, *ReviewSubscriptions]
}

// New creates an instance of PubSub.
func New() *PubSub {
	return &PubSub{
		reviewSubsMap: cmap.New[types.ID, *ReviewSubscriptions](),
	}
}

// Subscribe subscribes subscriber to the events of the review session. If
// limit is positive, at most limit subscriptions are allowed per session.
func (m *PubSub) Subscribe(
	ctx context.Context,
	subscriber string,
	reviewID types.ID,
	limit int,
) (*ReviewSubscription, error) {
	if logging.Enabled(zap.DebugLevel) {
		logging.From(ctx).Debugf(`Subscribe(%s,%s) Start`, reviewID, subscriber)
	}

	// newSub stays nil if the limit was exceeded.
	var newSub *ReviewSubscription
	m.reviewSubsMap.Upsert(reviewID, func(subs *ReviewSubscriptions, exists bool) *ReviewSubscriptions {
		if !exists {
			subs = NewSubscriptions[events.ReviewEvent](reviewID.String())
		}

		if limit > 0 && subs.Len() >= limit {
			return subs
		}

		newSub = NewSubscription[events.ReviewEvent](subscriber, reviewEventBufferSize)
		subs.Set(newSub)
		return subs
	})

	if newSub == nil {
		return nil, fmt.Errorf("%d subscribers allowed per review: %w", limit, ErrTooManySubscribers)
	}

	if logging.Enabled(zap.DebugLevel) {
		logging.From(ctx).Debugf(`Subscribe(%s,%s) End`, reviewID, subscriber)
	}
	return newSub, nil
}

// Unsubscribe closes the subscription and drops the session's collection
// once it is empty.
func (m *PubSub) Unsubscribe(
	ctx context.Context,
	reviewID types.ID,
	sub *ReviewSubscription,
) {
	if logging.Enabled(zap.DebugLevel) {
		logging.From(ctx).Debugf(`Unsubscribe(%s,%s) Start`, reviewID, sub.Subscriber())
	}

	sub.Close()

	m.reviewSubsMap.Delete(reviewID, func(subs *ReviewSubscriptions, exists bool) bool {
		if !exists {
			return false
		}

		subs.Delete(sub.ID())
		return subs.Len() == 0
	})

	if logging.Enabled(zap.DebugLevel) {
		logging.From(ctx).Debugf(`Unsubscribe(%s,%s) End`, reviewID, sub.Subscriber())
	}
}

// Publish publishes the event to the watchers of its review session.
func (m *PubSub) Publish(ctx context.Context, event events.ReviewEvent) {
	subs, ok := m.reviewSubsMap.Get(event.ReviewID)
	if !ok {
		return
	}

	if missed := subs.Publish(event); missed > 0 {
		logging.From(ctx).Warnf(
			"publish %s to %s: %d subscribers missed the event",
			event.Type,
			event.ReviewID,
			missed,
		)
	}
}

// Close closes every subscription of the review session, so that watchers
// stop after a terminal event.
func (m *PubSub) Close(reviewID types.ID) {
	m.reviewSubsMap.Delete(reviewID, func(subs *ReviewSubscriptions, exists bool) bool {
		if exists {
			subs.Close()
		}
		return exists
	})
}

// SubscriptionCount returns the number of subscriptions of the session.
func (m *PubSub) SubscriptionCount(reviewID types.ID) int {
	subs, ok := m.reviewSubsMap.Get(reviewID)
	if !ok {
		return 0
	}
	return subs.Len()
}
