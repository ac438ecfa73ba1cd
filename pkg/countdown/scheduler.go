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

package countdown

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/xid"
)

// ErrSchedulerClosed is returned when watching on a closed scheduler.
var ErrSchedulerClosed = errors.New("countdown scheduler closed")

// DefaultTickInterval is the interval at which countdowns are recomputed.
const DefaultTickInterval = time.Second

// Watcher receives the remaining time of one deadline on every tick. The
// channel holds only the latest value, and it is closed after the ended
// marker has been delivered or when the watcher is cancelled.
type Watcher struct {
	id       string
	key      string
	deadline time.Time
	events   chan Remaining
}

// ID returns the id of the watcher.
func (w *Watcher) ID() string {
	return w.id
}

// Key returns the key the watcher was registered with, e.g. a review ID.
func (w *Watcher) Key() string {
	return w.key
}

// Events returns the channel of remaining times.
func (w *Watcher) Events() <-chan Remaining {
	return w.events
}

// deliver replaces any undelivered value with r.
func (w *Watcher) deliver(r Remaining) {
	select {
	case w.events <- r:
		return
	default:
	}

	select {
	case <-w.events:
	default:
	}

	select {
	case w.events <- r:
	default:
	}
}

// Scheduler ticks all watched deadlines from one goroutine. The goroutine
// runs only while at least one watcher is registered.
type Scheduler struct {
	interval time.Duration
	now      func() time.Time

	mu       sync.Mutex
	watchers map[string]*Watcher
	running  bool
	closed   bool
	closing  chan struct{}
	wg       sync.WaitGroup
}

// NewScheduler creates a scheduler ticking every interval. now is used to
// read the current time and defaults to time.Now.
func NewScheduler(interval time.Duration, now func() time.Time) *Scheduler {
	if interval <= 0 {
		interval = DefaultTickInterval
	}
	if now == nil {
		now = time.Now
	}

	return &Scheduler{
		interval: interval,
		now:      now,
		watchers: make(map[string]*Watcher),
		closing:  make(chan struct{}),
	}
}

// Watch registers a watcher for deadline. The current remaining time is
// delivered immediately. A deadline already in the past yields a watcher
// that receives the ended marker and is never scheduled.
func (s *Scheduler) Watch(key string, deadline time.Time) (*Watcher, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, ErrSchedulerClosed
	}

	w := &Watcher{
		id:       xid.New().String(),
		key:      key,
		deadline: deadline,
		events:   make(chan Remaining, 1),
	}

	r := Until(deadline, s.now())
	w.deliver(r)
	if r.Ended {
		close(w.events)
		return w, nil
	}

	s.watchers[w.id] = w
	if !s.running {
		s.running = true
		s.wg.Add(1)
		go s.run()
	}

	return w, nil
}

// Unwatch cancels the watcher and closes its channel. It is a no-op for
// watchers that already ended.
func (s *Scheduler) Unwatch(w *Watcher) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.watchers[w.id]; !ok {
		return
	}
	delete(s.watchers, w.id)
	close(w.events)
}

// Len returns the number of active watchers.
func (s *Scheduler) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.watchers)
}

// Close cancels every watcher and waits for the tick goroutine to exit.
func (s *Scheduler) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	for id, w := range s.watchers {
		delete(s.watchers, id)
		close(w.events)
	}
	close(s.closing)
	s.mu.Unlock()

	s.wg.Wait()
}

func (s *Scheduler) run() {
	defer s.wg.Done()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			if !s.tick() {
				return
			}
		case <-s.closing:
			return
		}
	}
}

// tick delivers the remaining time to every watcher and drops the ended
// ones. It returns false once no watcher is left.
func (s *Scheduler) tick() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	for id, w := range s.watchers {
		r := Until(w.deadline, now)
		w.deliver(r)
		if r.Ended {
			delete(s.watchers, id)
			close(w.events)
		}
	}

	if len(s.watchers) == 0 {
		s.running = false
		return false
	}
	return true
}
