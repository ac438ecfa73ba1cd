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

package patch_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/pkg/patch"
)

func suggest(id string, start, end int, text string) *types.ReviewComment {
	return &types.ReviewComment{
		ID:              types.ID(id),
		LineStart:       start,
		LineEnd:         end,
		Type:            types.CommentImprovement,
		Content:         "reword",
		SuggestedChange: &text,
	}
}

func note(id string, start, end int) *types.ReviewComment {
	return &types.ReviewComment{
		ID:        types.ID(id),
		LineStart: start,
		LineEnd:   end,
		Type:      types.CommentQuestion,
		Content:   "why?",
	}
}

const tenLines = "A\nB\nC\nD\nE\nF\nG\nH\nI\nJ"

func TestApply(t *testing.T) {
	t.Run("bottom-up splice test", func(t *testing.T) {
		comments := []*types.ReviewComment{
			suggest("c1", 2, 2, "X"),
			suggest("c2", 7, 8, "Y1\nY2\nY3"),
		}

		result, err := patch.Apply(tenLines, comments)
		require.NoError(t, err)
		assert.Equal(t,
			[]string{"A", "X", "C", "D", "E", "F", "Y1", "Y2", "Y3", "I", "J"},
			strings.Split(result, "\n"),
		)
	})

	t.Run("pure and order independent test", func(t *testing.T) {
		comments := []*types.ReviewComment{
			suggest("c1", 2, 2, "X"),
			suggest("c2", 7, 8, "Y1\nY2\nY3"),
		}
		reversed := []*types.ReviewComment{comments[1], comments[0]}

		first, err := patch.Apply(tenLines, comments)
		require.NoError(t, err)
		second, err := patch.Apply(tenLines, comments)
		require.NoError(t, err)
		third, err := patch.Apply(tenLines, reversed)
		require.NoError(t, err)

		assert.Equal(t, first, second)
		assert.Equal(t, first, third)
		assert.Equal(t, types.ID("c1"), comments[0].ID)
	})

	t.Run("comments without suggestion are ignored test", func(t *testing.T) {
		result, err := patch.Apply(tenLines, []*types.ReviewComment{note("q1", 1, 10)})
		require.NoError(t, err)
		assert.Equal(t, tenLines, result)

		result, err = patch.Apply(tenLines, []*types.ReviewComment{note("q1", 3, 3), suggest("c1", 3, 3, "Z")})
		require.NoError(t, err)
		assert.Equal(t, "A\nB\nZ\nD\nE\nF\nG\nH\nI\nJ", result)
	})

	t.Run("shrinking and first and last lines test", func(t *testing.T) {
		result, err := patch.Apply(tenLines, []*types.ReviewComment{
			suggest("c1", 1, 3, "ABC"),
			suggest("c2", 10, 10, "J1\nJ2"),
		})
		require.NoError(t, err)
		assert.Equal(t, "ABC\nD\nE\nF\nG\nH\nI\nJ1\nJ2", result)
	})

	t.Run("overlapping ranges are rejected test", func(t *testing.T) {
		_, err := patch.Apply(tenLines, []*types.ReviewComment{
			suggest("c1", 2, 4, "X"),
			suggest("c2", 4, 6, "Y"),
		})
		assert.ErrorIs(t, err, patch.ErrOverlappingChanges)

		_, err = patch.Apply(tenLines, []*types.ReviewComment{
			suggest("c1", 1, 9, "X"),
			suggest("c2", 3, 3, "Y"),
			suggest("c3", 10, 10, "Z"),
		})
		assert.ErrorIs(t, err, patch.ErrOverlappingChanges)
	})

	t.Run("out of range is rejected test", func(t *testing.T) {
		_, err := patch.Apply(tenLines, []*types.ReviewComment{suggest("c1", 10, 11, "X")})
		assert.ErrorIs(t, err, patch.ErrLineOutOfRange)

		_, err = patch.Apply(tenLines, []*types.ReviewComment{suggest("c1", 0, 1, "X")})
		assert.ErrorIs(t, err, patch.ErrLineOutOfRange)
	})
}

func TestChanges(t *testing.T) {
	changes, err := patch.Changes(tenLines, []*types.ReviewComment{
		suggest("c2", 7, 8, "G\nY2\nY3"),
		suggest("c1", 2, 3, "X"),
		note("q1", 5, 5),
	})
	require.NoError(t, err)
	require.Len(t, changes, 4)

	assert.Equal(t, 2, changes[0].LineNumber)
	assert.Equal(t, types.ChangeModified, changes[0].Type)
	assert.Equal(t, "B", *changes[0].Original)
	assert.Equal(t, "X", changes[0].Content)

	assert.Equal(t, 3, changes[1].LineNumber)
	assert.Equal(t, types.ChangeRemoved, changes[1].Type)
	assert.Equal(t, "C", *changes[1].Original)

	assert.Equal(t, 8, changes[2].LineNumber)
	assert.Equal(t, types.ChangeModified, changes[2].Type)
	assert.Equal(t, "Y2", changes[2].Content)

	assert.Equal(t, 9, changes[3].LineNumber)
	assert.Equal(t, types.ChangeAdded, changes[3].Type)
	assert.Nil(t, changes[3].Original)
	assert.Equal(t, "Y3", changes[3].Content)
}

func TestOverlapping(t *testing.T) {
	existing := []*types.ReviewComment{suggest("c1", 2, 4, "X"), note("q1", 5, 6)}

	assert.Nil(t, patch.Overlapping(suggest("c2", 5, 6, "Y"), existing))
	assert.Equal(t, types.ID("c1"), patch.Overlapping(suggest("c2", 4, 5, "Y"), existing).ID)
	assert.Nil(t, patch.Overlapping(note("q2", 3, 3), existing))
}
