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

// Package ranking orders the competing revisions of a review session and
// selects the winner.
package ranking

import (
	"cmp"
	"slices"

	"github.com/quill-wiki/quill/api/types"
)

// Rank returns the revisions ordered winner first, then by net score
// descending, then by creation time descending. Revision ID ascending breaks
// any remaining tie so the order is the same on every call. The input slice
// is not modified.
func Rank(revisions []*types.Revision) []*types.Revision {
	ranked := slices.Clone(revisions)
	slices.SortStableFunc(ranked, compare)
	return ranked
}

// Eligible returns true if the revision proposes at least one concrete edit.
func Eligible(revision *types.Revision) bool {
	return revision.SuggestionCount() > 0
}

// SelectWinner returns the top-ranked eligible revision. It fails with
// types.ErrNoSubmissions when no revision is eligible.
func SelectWinner(revisions []*types.Revision) (*types.Revision, error) {
	for _, revision := range Rank(revisions) {
		if Eligible(revision) {
			return revision, nil
		}
	}

	return nil, types.ErrNoSubmissions
}

func compare(a, b *types.Revision) int {
	return cmp.Or(
		cmp.Compare(winnerRank(a), winnerRank(b)),
		cmp.Compare(b.Votes.Net(), a.Votes.Net()),
		b.CreatedAt.Compare(a.CreatedAt),
		cmp.Compare(a.ID, b.ID),
	)
}

func winnerRank(r *types.Revision) int {
	if r.Status == types.RevisionWinner {
		return 0
	}
	return 1
}
