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

package cmap_test

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quill-wiki/quill/pkg/cmap"
)

type draftKey struct {
	reviewID string
	author   string
}

func TestMap(t *testing.T) {
	t.Run("set and get test", func(t *testing.T) {
		m := cmap.New[string, int]()

		m.Set("a", 1)
		v, exists := m.Get("a")
		assert.True(t, exists)
		assert.Equal(t, 1, v)

		v, exists = m.Get("b")
		assert.False(t, exists)
		assert.Equal(t, 0, v)
	})

	t.Run("struct key test", func(t *testing.T) {
		m := cmap.New[draftKey, string]()

		m.Set(draftKey{"r1", "alice"}, "draft")
		v, exists := m.Get(draftKey{"r1", "alice"})
		assert.True(t, exists)
		assert.Equal(t, "draft", v)

		_, exists = m.Get(draftKey{"r1", "bob"})
		assert.False(t, exists)
	})

	t.Run("get or create test", func(t *testing.T) {
		m := cmap.New[string, int]()

		v, existed := m.GetOrCreate("a", func() int { return 1 })
		assert.False(t, existed)
		assert.Equal(t, 1, v)

		v, existed = m.GetOrCreate("a", func() int { return 2 })
		assert.True(t, existed)
		assert.Equal(t, 1, v)
	})

	t.Run("upsert test", func(t *testing.T) {
		m := cmap.New[string, int]()

		inc := func(val int, exists bool) int {
			if exists {
				return val + 1
			}
			return 1
		}
		assert.Equal(t, 1, m.Upsert("a", inc))
		assert.Equal(t, 2, m.Upsert("a", inc))
	})

	t.Run("delete test", func(t *testing.T) {
		m := cmap.New[string, int]()

		m.Set("a", 1)
		assert.False(t, m.Delete("a", func(val int, exists bool) bool {
			return val != 1
		}))
		assert.Equal(t, 1, m.Len())

		assert.True(t, m.Delete("a", func(val int, exists bool) bool {
			return exists
		}))
		assert.False(t, m.Delete("a", func(val int, exists bool) bool {
			return true
		}))
		assert.Equal(t, 0, m.Len())
	})

	t.Run("keys and values test", func(t *testing.T) {
		m := cmap.New[string, int]()
		for i := range 100 {
			m.Set(fmt.Sprintf("k%d", i), i)
		}

		assert.Len(t, m.Keys(), 100)
		assert.Len(t, m.Values(), 100)
		assert.Contains(t, m.Keys(), "k42")
	})
}

func TestConcurrentMap(t *testing.T) {
	t.Run("concurrent get or create test", func(t *testing.T) {
		m := cmap.New[string, int]()
		const numRoutines = 50

		var created atomic.Int32
		var wg sync.WaitGroup
		for range numRoutines {
			wg.Add(1)
			go func() {
				defer wg.Done()
				m.GetOrCreate("shared", func() int {
					created.Add(1)
					return 1
				})
			}()
		}
		wg.Wait()

		assert.Equal(t, int32(1), created.Load())
		assert.Equal(t, 1, m.Len())
	})

	t.Run("concurrent set and delete test", func(t *testing.T) {
		m := cmap.New[int, int]()
		const numRoutines = 20
		const numOperations = 1000

		var wg sync.WaitGroup
		for i := range numRoutines {
			wg.Add(1)
			go func(routineID int) {
				defer wg.Done()
				for j := range numOperations {
					key := (routineID*numOperations + j) % 100
					m.Set(key, j)
					m.Delete(key, func(val int, exists bool) bool {
						return exists && val%2 == 0
					})
				}
			}(i)
		}
		wg.Wait()

		assert.LessOrEqual(t, m.Len(), 100)
	})
}
