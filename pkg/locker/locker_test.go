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

package locker_test

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/quill-wiki/quill/pkg/locker"
)

func TestLocker(t *testing.T) {
	t.Run("lock blocks while held test", func(t *testing.T) {
		l := locker.New[string]()
		l.Lock("doc")

		done := make(chan struct{})
		go func() {
			l.Lock("doc")
			close(done)
		}()

		select {
		case <-done:
			t.Fatal("lock should not have returned while it was still held")
		case <-time.After(50 * time.Millisecond):
		}

		assert.NoError(t, l.Unlock("doc"))

		select {
		case <-done:
		case <-time.After(3 * time.Second):
			t.Fatal("lock should have completed")
		}

		assert.NoError(t, l.Unlock("doc"))
		assert.Equal(t, 0, l.Len())
	})

	t.Run("different keys do not contend test", func(t *testing.T) {
		l := locker.New[string]()
		l.Lock("a")
		assert.True(t, l.TryLock("b"))
		assert.False(t, l.TryLock("a"))
		assert.Equal(t, 2, l.Len())

		assert.NoError(t, l.Unlock("a"))
		assert.NoError(t, l.Unlock("b"))
		assert.Equal(t, 0, l.Len())
	})

	t.Run("unlock unknown key test", func(t *testing.T) {
		l := locker.New[string]()
		assert.ErrorIs(t, l.Unlock("missing"), locker.ErrNoSuchLock)
	})

	t.Run("concurrent increments test", func(t *testing.T) {
		l := locker.New[int]()
		counter := 0

		var wg sync.WaitGroup
		for range 100 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				l.Lock(1)
				counter++
				assert.NoError(t, l.Unlock(1))
			}()
		}
		wg.Wait()

		assert.Equal(t, 100, counter)
		assert.Equal(t, 0, l.Len())
	})
}
