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

package types_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/internal/validation"
)

func TestCommentFields(t *testing.T) {
	t.Run("valid comment test", func(t *testing.T) {
		fields := &types.CommentFields{Type: types.CommentQuestion, Content: "why?"}
		assert.NoError(t, fields.Validate())
	})

	t.Run("unknown type test", func(t *testing.T) {
		fields := &types.CommentFields{Type: "typo", Content: "why?"}
		var structError *validation.StructError
		require.ErrorAs(t, fields.Validate(), &structError)
		assert.Equal(t, "type", structError.Violations[0].Field)
		assert.Equal(t, "comment_type", structError.Violations[0].Tag)
	})

	t.Run("content longer than 500 characters test", func(t *testing.T) {
		long := make([]rune, types.MaxCommentContentLength+1)
		for i := range long {
			long[i] = 'x'
		}
		fields := &types.CommentFields{Type: types.CommentAccurate, Content: string(long)}
		var structError *validation.StructError
		require.ErrorAs(t, fields.Validate(), &structError)
		assert.Equal(t, "content", structError.Violations[0].Field)

		fields.Content = string(long[:types.MaxCommentContentLength])
		assert.NoError(t, fields.Validate())
	})
}

func TestVoteFields(t *testing.T) {
	assert.NoError(t, (&types.VoteFields{Direction: types.VoteUp}).Validate())

	var structError *validation.StructError
	require.ErrorAs(t, (&types.VoteFields{Direction: "sideways"}).Validate(), &structError)
	assert.Equal(t, "direction", structError.Violations[0].Field)
}

func TestValidateUsername(t *testing.T) {
	assert.NoError(t, types.ValidateUsername("alice"))

	err := types.ValidateUsername("alice smith")
	assert.ErrorIs(t, err, types.ErrValidation)
	assert.Equal(t, "username", types.ValidationFieldOf(err))
	assert.Equal(t, "username", types.ValidationFieldOf(types.ValidateUsername("")))
}

func TestValidationError(t *testing.T) {
	err := types.NewValidationError("suggestedChange", "suggestedChange must not be empty")
	assert.ErrorIs(t, err, types.ErrValidation)
	assert.Equal(t, "suggestedChange", types.ValidationFieldOf(err))
	assert.Contains(t, err.Error(), "suggestedChange must not be empty")
	assert.Empty(t, types.ValidationFieldOf(types.ErrInvalidTransition))
}

func TestID(t *testing.T) {
	assert.NoError(t, types.ID("000000000000000000000001").Validate())
	assert.ErrorIs(t, types.ID("nope").Validate(), types.ErrInvalidID)
	assert.Equal(t, "a,b", types.JoinIDs([]types.ID{"a", "b"}))
}
