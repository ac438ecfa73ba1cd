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

package ranking_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/pkg/ranking"
)

var base = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

func revision(id string, status types.RevisionStatus, up, down int, created time.Duration, suggestions int) *types.Revision {
	r := &types.Revision{
		ID:        types.ID(id),
		Status:    status,
		CreatedAt: base.Add(created),
		Votes:     types.Votes{Upvotes: up, Downvotes: down},
	}
	for i := 0; i < suggestions; i++ {
		text := "fix"
		r.Comments = append(r.Comments, &types.ReviewComment{
			LineStart:       i + 1,
			LineEnd:         i + 1,
			Type:            types.CommentInaccurate,
			SuggestedChange: &text,
		})
	}
	return r
}

func ids(revisions []*types.Revision) []types.ID {
	var result []types.ID
	for _, r := range revisions {
		result = append(result, r.ID)
	}
	return result
}

func TestRank(t *testing.T) {
	t.Run("winner first regardless of score test", func(t *testing.T) {
		ranked := ranking.Rank([]*types.Revision{
			revision("pending", types.RevisionPending, 10, 0, 0, 1),
			revision("winner", types.RevisionWinner, 0, 5, 0, 1),
		})
		assert.Equal(t, []types.ID{"winner", "pending"}, ids(ranked))
	})

	t.Run("net score then recency test", func(t *testing.T) {
		ranked := ranking.Rank([]*types.Revision{
			revision("old", types.RevisionPending, 3, 1, time.Minute, 1),
			revision("new", types.RevisionPending, 2, 0, time.Hour, 1),
			revision("best", types.RevisionPending, 5, 0, 0, 1),
		})
		assert.Equal(t, []types.ID{"best", "new", "old"}, ids(ranked))
	})

	t.Run("revision id breaks exact ties test", func(t *testing.T) {
		input := []*types.Revision{
			revision("b", types.RevisionPending, 1, 0, 0, 1),
			revision("a", types.RevisionPending, 1, 0, 0, 1),
		}
		assert.Equal(t, []types.ID{"a", "b"}, ids(ranking.Rank(input)))
		assert.Equal(t, []types.ID{"b", "a"}, ids(input))
	})
}

func TestSelectWinner(t *testing.T) {
	t.Run("skips ineligible revisions test", func(t *testing.T) {
		winner, err := ranking.SelectWinner([]*types.Revision{
			revision("popular-but-empty", types.RevisionPending, 9, 0, 0, 0),
			revision("edit", types.RevisionPending, 1, 0, 0, 2),
		})
		require.NoError(t, err)
		assert.Equal(t, types.ID("edit"), winner.ID)
	})

	t.Run("no eligible revision test", func(t *testing.T) {
		_, err := ranking.SelectWinner(nil)
		assert.ErrorIs(t, err, types.ErrNoSubmissions)

		_, err = ranking.SelectWinner([]*types.Revision{revision("empty", types.RevisionPending, 1, 0, 0, 0)})
		assert.ErrorIs(t, err, types.ErrNoSubmissions)
	})
}
