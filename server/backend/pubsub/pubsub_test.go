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

package pubsub_test

import (
	"context"
	gosync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/api/types/events"
	"github.com/quill-wiki/quill/server/backend/pubsub"
)

const (
	reviewID      = types.ID("000000000000000000000001")
	otherReviewID = types.ID("000000000000000000000002")
)

func TestPubSub(t *testing.T) {
	t.Run("publish subscribe test", func(t *testing.T) {
		pubSub := pubsub.New()
		event := events.ReviewEvent{
			Type:       events.DocumentVotedEvent,
			ReviewID:   reviewID,
			Actor:      "bob",
			Direction:  types.VoteUp,
			OccurredAt: time.Now(),
		}

		ctx := context.Background()
		subA, err := pubSub.Subscribe(ctx, "alice", reviewID, 0)
		require.NoError(t, err)
		defer pubSub.Unsubscribe(ctx, reviewID, subA)

		var wg gosync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			e := <-subA.Events()
			assert.Equal(t, event, e)
		}()

		pubSub.Publish(ctx, event)
		wg.Wait()
	})

	t.Run("events of other sessions are not delivered test", func(t *testing.T) {
		pubSub := pubsub.New()
		ctx := context.Background()

		sub, err := pubSub.Subscribe(ctx, "alice", reviewID, 0)
		require.NoError(t, err)
		defer pubSub.Unsubscribe(ctx, reviewID, sub)

		pubSub.Publish(ctx, events.ReviewEvent{Type: events.RevisionSubmittedEvent, ReviewID: otherReviewID})

		select {
		case e := <-sub.Events():
			t.Fatalf("unexpected event: %v", e)
		case <-time.After(50 * time.Millisecond):
		}
	})

	t.Run("max subscribers per review limit exceeded test", func(t *testing.T) {
		pubSub := pubsub.New()
		ctx := context.Background()
		limit := 2

		subA, err := pubSub.Subscribe(ctx, "alice", reviewID, limit)
		require.NoError(t, err)
		subB, err := pubSub.Subscribe(ctx, "bob", reviewID, limit)
		require.NoError(t, err)

		_, err = pubSub.Subscribe(ctx, "carol", reviewID, limit)
		assert.ErrorIs(t, err, pubsub.ErrTooManySubscribers)
		assert.Equal(t, 2, pubSub.SubscriptionCount(reviewID))

		pubSub.Unsubscribe(ctx, reviewID, subA)
		assert.Equal(t, 1, pubSub.SubscriptionCount(reviewID))

		subC, err := pubSub.Subscribe(ctx, "carol", reviewID, limit)
		assert.NoError(t, err)

		pubSub.Unsubscribe(ctx, reviewID, subB)
		pubSub.Unsubscribe(ctx, reviewID, subC)
		assert.Equal(t, 0, pubSub.SubscriptionCount(reviewID))
	})

	t.Run("close ends every subscription of the session test", func(t *testing.T) {
		pubSub := pubsub.New()
		ctx := context.Background()

		sub, err := pubSub.Subscribe(ctx, "alice", reviewID, 0)
		require.NoError(t, err)

		pubSub.Publish(ctx, events.ReviewEvent{Type: events.ReviewCompletedEvent, ReviewID: reviewID})
		pubSub.Close(reviewID)

		e, ok := <-sub.Events()
		assert.True(t, ok)
		assert.Equal(t, events.ReviewCompletedEvent, e.Type)

		_, ok = <-sub.Events()
		assert.False(t, ok)
		assert.False(t, sub.Publish(events.ReviewEvent{}))
		assert.Equal(t, 0, pubSub.SubscriptionCount(reviewID))

		// unsubscribing a closed subscription is harmless.
		pubSub.Unsubscribe(ctx, reviewID, sub)
	})
}
