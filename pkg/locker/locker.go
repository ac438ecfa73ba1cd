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

/*
Package locker provides per-key mutual exclusion, so that work on different
keys does not contend on a global lock.

A lock for a key is created on first use and dropped on Unlock when nobody
else holds or waits for it.
*/
package locker

import (
	"errors"
	"sync"
)

// ErrNoSuchLock is returned when the requested lock does not exist.
var ErrNoSuchLock = errors.New("no such lock")

// Locker provides a locking mechanism based on the passed in key.
type Locker[K comparable] struct {
	mu    sync.Mutex
	locks map[K]*keyLock
}

// keyLock is the lock of a single key. refs counts the holder and the
// waiters, and is guarded by Locker.mu.
type keyLock struct {
	mu   sync.Mutex
	refs int
}

// New creates a new Locker.
func New[K comparable]() *Locker[K] {
	return &Locker[K]{
		locks: make(map[K]*keyLock),
	}
}

// acquire returns the lock of key with its reference taken.
func (l *Locker[K]) acquire(key K) *keyLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, exists := l.locks[key]
	if !exists {
		lock = &keyLock{}
		l.locks[key] = lock
	}
	lock.refs++
	return lock
}

// release drops a reference of the lock of key.
func (l *Locker[K]) release(key K, lock *keyLock) {
	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, key)
	}
}

// Lock locks the key. If the key is held, Lock blocks until it is unlocked.
func (l *Locker[K]) Lock(key K) {
	l.acquire(key).mu.Lock()
}

// TryLock locks the key only if it is not held, and reports whether it did.
func (l *Locker[K]) TryLock(key K) bool {
	lock := l.acquire(key)
	if lock.mu.TryLock() {
		return true
	}

	l.mu.Lock()
	l.release(key, lock)
	l.mu.Unlock()
	return false
}

// Unlock unlocks the key.
func (l *Locker[K]) Unlock(key K) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, exists := l.locks[key]
	if !exists {
		return ErrNoSuchLock
	}

	l.release(key, lock)
	lock.mu.Unlock()
	return nil
}

// Len returns the number of keys that are held or waited for.
func (l *Locker[K]) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	return len(l.locks)
}
