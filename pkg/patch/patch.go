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

// Package patch merges the suggested changes of review comments into the
// text of a document.
//
// The merge is a positional splice, not a diff: every suggestion replaces its
// inclusive, 1-indexed line range of the original text. Suggestions are
// applied from the bottom of the document upward so that a replacement never
// shifts the lines of a suggestion still to be applied.
package patch

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/pkg/errors"
)

var (
	// ErrOverlappingChanges is returned when two suggested changes replace a
	// common line.
	ErrOverlappingChanges = errors.InvalidArgument("overlapping suggested changes").WithCode("ErrOverlappingChanges")

	// ErrLineOutOfRange is returned when a suggested change refers to lines
	// outside of the document.
	ErrLineOutOfRange = errors.InvalidArgument("line out of range").WithCode("ErrLineOutOfRange")
)

// Apply returns original with the suggested changes of comments spliced in.
// Comments without a suggestion are ignored. Neither original nor comments
// are modified.
func Apply(original string, comments []*types.ReviewComment) (string, error) {
	lines := types.SplitLines(original)

	suggestions, err := collect(comments, len(lines))
	if err != nil {
		return "", err
	}

	for _, c := range suggestions {
		lines = slices.Replace(lines, c.LineStart-1, c.LineEnd, types.SplitLines(*c.SuggestedChange)...)
	}

	return types.JoinLines(lines), nil
}

// Changes returns the per-line edits that Apply would make, ordered by line.
// Line numbers refer to the original text.
func Changes(original string, comments []*types.ReviewComment) ([]types.Change, error) {
	lines := types.SplitLines(original)

	suggestions, err := collect(comments, len(lines))
	if err != nil {
		return nil, err
	}
	slices.Reverse(suggestions)

	var changes []types.Change
	for _, c := range suggestions {
		before := lines[c.LineStart-1 : c.LineEnd]
		after := types.SplitLines(*c.SuggestedChange)

		for i := 0; i < max(len(before), len(after)); i++ {
			line := c.LineStart + i
			switch {
			case i < len(before) && i < len(after):
				if before[i] == after[i] {
					continue
				}
				changes = append(changes, types.Change{
					LineNumber: line,
					Type:       types.ChangeModified,
					Original:   &before[i],
					Content:    after[i],
				})
			case i < len(before):
				changes = append(changes, types.Change{
					LineNumber: line,
					Type:       types.ChangeRemoved,
					Original:   &before[i],
				})
			default:
				changes = append(changes, types.Change{
					LineNumber: line,
					Type:       types.ChangeAdded,
					Content:    after[i],
				})
			}
		}
	}

	return changes, nil
}

// Overlapping returns the first comment of others whose suggested change
// shares a line with c, or nil.
func Overlapping(c *types.ReviewComment, others []*types.ReviewComment) *types.ReviewComment {
	if !c.HasSuggestion() {
		return nil
	}

	for _, other := range others {
		if other.HasSuggestion() && other.ID != c.ID && c.Overlaps(other) {
			return other
		}
	}
	return nil
}

// collect returns the suggestion-bearing comments sorted by lineEnd
// descending, after checking that they are in range and disjoint.
func collect(comments []*types.ReviewComment, lineCount int) ([]*types.ReviewComment, error) {
	var suggestions []*types.ReviewComment
	for _, c := range comments {
		if !c.HasSuggestion() {
			continue
		}

		if c.LineStart < 1 || c.LineStart > c.LineEnd || c.LineEnd > lineCount {
			return nil, fmt.Errorf(
				"comment %s lines %d-%d of %d: %w",
				c.ID, c.LineStart, c.LineEnd, lineCount, ErrLineOutOfRange,
			)
		}
		suggestions = append(suggestions, c)
	}

	slices.SortFunc(suggestions, func(a, b *types.ReviewComment) int {
		return cmp.Or(
			cmp.Compare(b.LineEnd, a.LineEnd),
			cmp.Compare(b.LineStart, a.LineStart),
			cmp.Compare(a.ID, b.ID),
		)
	})

	for i := 1; i < len(suggestions); i++ {
		if suggestions[i].LineEnd >= suggestions[i-1].LineStart {
			return nil, fmt.Errorf(
				"comments %s and %s: %w",
				suggestions[i].ID, suggestions[i-1].ID, ErrOverlappingChanges,
			)
		}
	}

	return suggestions, nil
}
