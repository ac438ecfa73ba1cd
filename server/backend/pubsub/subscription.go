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

package pubsub

import (
	"sync"
	gotime "time"

	"github.com/rs/xid"

	"github.com/quill-wiki/quill/pkg/cmap"
)

const (
	// publishTimeout is the timeout for publishing an event.
	publishTimeout = 100 * gotime.Millisecond
)

// Subscription represents a subscription of a subscriber to events of type E.
type Subscription[E any] struct {
	id         string
	subscriber string
	mu         sync.Mutex
	closed     bool
	events     chan E
}

// NewSubscription creates a new instance of Subscription with the given buffer size.
func NewSubscription[E any](subscriber string, bufSize int) *Subscription[E] {
	return &Subscription[E]{
		id:         xid.New().String(),
		subscriber: subscriber,
		events:     make(chan E, bufSize),
	}
}

// ID returns the id of this subscription.
func (s *Subscription[E]) ID() string {
	return s.id
}

// Events returns the event channel of this subscription.
func (s *Subscription[E]) Events() <-chan E {
	return s.events
}

// Subscriber returns the subscriber of this subscription.
func (s *Subscription[E]) Subscriber() string {
	return s.subscriber
}

// Close closes all resources of this Subscription.
func (s *Subscription[E]) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.closed {
		s.closed = true
		close(s.events)
	}
}

// Publish publishes the given event to the subscriber. It gives up after
// publishTimeout if the subscriber does not keep up.
func (s *Subscription[E]) Publish(event E) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return false
	}

	select {
	case s.events <- event:
		return true
	case <-gotime.After(publishTimeout):
		return false
	}
}

// Subscriptions is the collection of subscriptions to a single topic.
type Subscriptions[E any] struct {
	topic       string
	internalMap *cmap.Map[string, *Subscription[E]]
}

// NewSubscriptions creates a new Subscriptions collection.
func NewSubscriptions[E any](topic string) *Subscriptions[E] {
	return &Subscriptions[E]{
		topic:       topic,
		internalMap: cmap.New[string, *Subscription[E]](),
	}
}

// Topic returns the topic of this collection.
func (s *Subscriptions[E]) Topic() string {
	return s.topic
}

// Set adds the given subscription.
func (s *Subscriptions[E]) Set(sub *Subscription[E]) {
	s.internalMap.Set(sub.ID(), sub)
}

// Values returns the subscriptions of this collection.
func (s *Subscriptions[E]) Values() []*Subscription[E] {
	return s.internalMap.Values()
}

// Delete removes the subscription of the given id.
func (s *Subscriptions[E]) Delete(id string) {
	s.internalMap.Delete(id, func(sub *Subscription[E], exists bool) bool {
		return exists
	})
}

// Len returns the number of subscriptions.
func (s *Subscriptions[E]) Len() int {
	return s.internalMap.Len()
}

// Publish publishes the event to every subscription and returns the number
// of subscriptions that missed it.
func (s *Subscriptions[E]) Publish(event E) int {
	missed := 0
	for _, sub := range s.Values() {
		if !sub.Publish(event) {
			missed++
		}
	}
	return missed
}

// Close closes every subscription of this collection.
func (s *Subscriptions[E]) Close() {
	for _, sub := range s.Values() {
		sub.Close()
	}
}
