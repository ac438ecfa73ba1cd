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

package annotation_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/pkg/annotation"
)

const body = "line one\nline two\nline three\nline four\nline five"

func ptr(s string) *string {
	return &s
}

func TestSelectRange(t *testing.T) {
	t.Run("normalizes reversed ranges test", func(t *testing.T) {
		for _, tc := range [][2]int{{2, 4}, {4, 2}, {3, 3}, {5, 1}} {
			s := annotation.New(body)
			_, err := s.SelectRange(tc[0], tc[1])
			require.NoError(t, err)

			c, err := s.AddComment("alice", types.CommentFields{Type: types.CommentQuestion, Content: "why?"})
			require.NoError(t, err)
			assert.Equal(t, min(tc[0], tc[1]), c.LineStart)
			assert.Equal(t, max(tc[0], tc[1]), c.LineEnd)
		}
	})

	t.Run("out of bounds test", func(t *testing.T) {
		s := annotation.New(body)

		_, err := s.SelectRange(0, 2)
		assert.ErrorIs(t, err, types.ErrValidation)
		assert.Equal(t, "lineStart", types.ValidationFieldOf(err))

		_, err = s.SelectRange(2, 6)
		assert.ErrorIs(t, err, types.ErrValidation)
		assert.Equal(t, "lineEnd", types.ValidationFieldOf(err))

		_, ok := s.Selection()
		assert.False(t, ok)
	})

	t.Run("default suggestion is the selected text test", func(t *testing.T) {
		s := annotation.New(body)
		assert.Empty(t, s.DefaultSuggestion())

		_, err := s.SelectRange(3, 2)
		require.NoError(t, err)
		assert.Equal(t, "line two\nline three", s.DefaultSuggestion())
	})

	t.Run("cancel discards only the selection test", func(t *testing.T) {
		s := annotation.New(body)
		_, err := s.SelectRange(1, 1)
		require.NoError(t, err)
		_, err = s.AddComment("alice", types.CommentFields{Type: types.CommentAccurate, Content: "ok"})
		require.NoError(t, err)

		_, err = s.SelectRange(2, 3)
		require.NoError(t, err)
		s.CancelSelection()

		_, ok := s.Selection()
		assert.False(t, ok)
		assert.Equal(t, 1, s.Len())

		_, err = s.AddComment("alice", types.CommentFields{Type: types.CommentAccurate, Content: "ok"})
		assert.Equal(t, "selection", types.ValidationFieldOf(err))
	})
}

func TestAddComment(t *testing.T) {
	selected := func(t *testing.T) *annotation.Store {
		s := annotation.New(body)
		_, err := s.SelectRange(2, 3)
		require.NoError(t, err)
		return s
	}

	t.Run("clears the selection test", func(t *testing.T) {
		s := selected(t)
		c, err := s.AddComment("alice", types.CommentFields{
			Type:            types.CommentImprovement,
			Content:         "clearer wording",
			SuggestedChange: ptr("line 2\nline 3"),
		})
		require.NoError(t, err)
		assert.NotEmpty(t, c.ID)
		assert.NoError(t, c.ID.Validate())
		assert.Equal(t, "alice", c.Author)
		assert.Equal(t, "line 2\nline 3", *c.SuggestedChange)

		_, ok := s.Selection()
		assert.False(t, ok)
	})

	t.Run("improvement without suggestion test", func(t *testing.T) {
		for _, suggestion := range []*string{nil, ptr("")} {
			s := selected(t)
			_, err := s.AddComment("alice", types.CommentFields{
				Type:            types.CommentImprovement,
				Content:         "clearer wording",
				SuggestedChange: suggestion,
			})
			assert.ErrorIs(t, err, types.ErrValidation)
			assert.Equal(t, "suggestedChange", types.ValidationFieldOf(err))
			assert.Equal(t, 0, s.Len())

			_, ok := s.Selection()
			assert.True(t, ok)
		}
	})

	t.Run("question with suggestion test", func(t *testing.T) {
		s := selected(t)
		_, err := s.AddComment("alice", types.CommentFields{
			Type:            types.CommentQuestion,
			Content:         "is this right?",
			SuggestedChange: ptr("maybe"),
		})
		assert.Equal(t, "suggestedChange", types.ValidationFieldOf(err))
	})

	t.Run("content rules test", func(t *testing.T) {
		s := selected(t)

		_, err := s.AddComment("alice", types.CommentFields{Type: types.CommentAccurate})
		assert.Equal(t, "content", types.ValidationFieldOf(err))

		_, err = s.AddComment("alice", types.CommentFields{Type: types.CommentAccurate, Content: "  "})
		assert.Equal(t, "content", types.ValidationFieldOf(err))

		_, err = s.AddComment("alice", types.CommentFields{
			Type:    types.CommentAccurate,
			Content: strings.Repeat("a", types.MaxCommentContentLength+1),
		})
		assert.Equal(t, "content", types.ValidationFieldOf(err))

		_, err = s.AddComment("alice", types.CommentFields{Type: "nitpick", Content: "hm"})
		assert.Equal(t, "type", types.ValidationFieldOf(err))

		_, err = s.AddComment("", types.CommentFields{Type: types.CommentAccurate, Content: "ok"})
		assert.Equal(t, "author", types.ValidationFieldOf(err))

		_, err = s.AddComment("alice", types.CommentFields{
			Type:    types.CommentAccurate,
			Content: strings.Repeat("a", types.MaxCommentContentLength),
		})
		assert.NoError(t, err)
	})

	t.Run("overlapping suggestions are rejected test", func(t *testing.T) {
		s := selected(t)
		_, err := s.AddComment("alice", types.CommentFields{
			Type:            types.CommentInaccurate,
			Content:         "wrong",
			SuggestedChange: ptr("fixed"),
		})
		require.NoError(t, err)

		_, err = s.SelectRange(3, 4)
		require.NoError(t, err)
		_, err = s.AddComment("alice", types.CommentFields{
			Type:            types.CommentImprovement,
			Content:         "also",
			SuggestedChange: ptr("better"),
		})
		assert.ErrorIs(t, err, types.ErrValidation)
		assert.Equal(t, "lineStart", types.ValidationFieldOf(err))

		_, err = s.AddComment("alice", types.CommentFields{Type: types.CommentQuestion, Content: "source?"})
		assert.NoError(t, err)
	})
}

func TestCommentsTouching(t *testing.T) {
	clock := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	s := annotation.New(body, annotation.WithClock(func() time.Time {
		clock = clock.Add(time.Second)
		return clock
	}))

	add := func(a, b int, content string) *types.ReviewComment {
		_, err := s.SelectRange(a, b)
		require.NoError(t, err)
		c, err := s.AddComment("alice", types.CommentFields{Type: types.CommentQuestion, Content: content})
		require.NoError(t, err)
		return c
	}

	add(4, 5, "late")
	add(1, 3, "wide")
	add(3, 3, "narrow")

	var contents []string
	for _, c := range s.CommentsTouching(3) {
		contents = append(contents, c.Content)
	}
	assert.Equal(t, []string{"wide", "narrow"}, contents)
	assert.Len(t, s.CommentsTouching(5), 1)
	assert.Empty(t, s.CommentsTouching(6))
	assert.Equal(t, "wide", s.Comments()[0].Content)
}

func TestDeleteComment(t *testing.T) {
	s := annotation.New(body)
	_, err := s.SelectRange(1, 1)
	require.NoError(t, err)
	first, err := s.AddComment("alice", types.CommentFields{Type: types.CommentAccurate, Content: "ok"})
	require.NoError(t, err)
	_, err = s.SelectRange(2, 2)
	require.NoError(t, err)
	second, err := s.AddComment("alice", types.CommentFields{Type: types.CommentAccurate, Content: "ok"})
	require.NoError(t, err)

	s.MarkSubmitted(first.ID)
	assert.True(t, s.IsSubmitted(first.ID))
	assert.ErrorIs(t, s.DeleteComment(first.ID), annotation.ErrCommentSubmitted)

	require.NoError(t, s.DeleteComment(second.ID))
	assert.ErrorIs(t, s.DeleteComment(second.ID), annotation.ErrCommentNotFound)
	assert.Equal(t, 1, s.Len())
}

func TestDeleteSubmittedCommentOfEarlierPass(t *testing.T) {
	s := annotation.New(body)
	earlier := types.ID("0123456789abcdef01234567")
	s.MarkSubmitted(earlier)

	assert.ErrorIs(t, s.DeleteComment(earlier), annotation.ErrCommentSubmitted)
	assert.ErrorIs(t, s.DeleteComment(types.ID("76543210fedcba9876543210")), annotation.ErrCommentNotFound)
}

func TestPreview(t *testing.T) {
	s := annotation.New(body)
	_, err := s.SelectRange(5, 5)
	require.NoError(t, err)
	_, err = s.AddComment("alice", types.CommentFields{
		Type:            types.CommentInaccurate,
		Content:         "wrong number",
		SuggestedChange: ptr("line 5"),
	})
	require.NoError(t, err)

	preview, err := s.Preview()
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two\nline three\nline four\nline 5", preview)
	assert.Equal(t, body, s.Body())
}
