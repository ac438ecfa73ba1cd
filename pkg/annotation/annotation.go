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

// Package annotation holds one reviewer's in-progress pass over a document:
// the active line selection and the comments anchored to line ranges.
package annotation

import (
	"cmp"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rs/xid"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/internal/validation"
	"github.com/quill-wiki/quill/pkg/errors"
	"github.com/quill-wiki/quill/pkg/patch"
)

var (
	// ErrCommentNotFound is returned when the comment is not in the pass.
	ErrCommentNotFound = errors.NotFound("comment not found").WithCode("ErrCommentNotFound")

	// ErrCommentSubmitted is returned when deleting a comment that is already
	// part of a submitted revision.
	ErrCommentSubmitted = errors.FailedPrecond("comment already submitted").WithCode("ErrCommentSubmitted")
)

// Selection is an inclusive, 1-indexed range of lines with Start <= End.
type Selection struct {
	Start int `json:"lineStart"`
	End   int `json:"lineEnd"`
}

// Option configures a Store.
type Option func(*Store)

// WithClock sets the function used to stamp comments.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store is an annotation pass over the lines of a document. It is not safe
// for concurrent use.
type Store struct {
	body      string
	lines     []string
	selection *Selection
	comments  []*types.ReviewComment
	submitted map[types.ID]bool
	now       func() time.Time
}

// New creates an empty pass over body.
func New(body string, opts ...Option) *Store {
	s := &Store{
		body:      body,
		lines:     types.SplitLines(body),
		submitted: make(map[types.ID]bool),
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Body returns the document text the pass was opened on.
func (s *Store) Body() string {
	return s.body
}

// LineCount returns the number of lines of the document.
func (s *Store) LineCount() int {
	return len(s.lines)
}

// SelectRange normalizes the given lines into a selection and makes it the
// active one.
func (s *Store) SelectRange(a, b int) (Selection, error) {
	sel := Selection{Start: min(a, b), End: max(a, b)}

	if sel.Start < 1 {
		return Selection{}, types.NewValidationError("lineStart", "lineStart must be at least 1")
	}
	if sel.End > len(s.lines) {
		return Selection{}, types.NewValidationError(
			"lineEnd",
			fmt.Sprintf("lineEnd must be at most %d", len(s.lines)),
		)
	}

	s.selection = &sel
	return sel, nil
}

// Selection returns the active selection, if any.
func (s *Store) Selection() (Selection, bool) {
	if s.selection == nil {
		return Selection{}, false
	}
	return *s.selection, true
}

// CancelSelection discards the active selection. Comments are untouched.
func (s *Store) CancelSelection() {
	s.selection = nil
}

// DefaultSuggestion returns the original text of the selected lines, used to
// prefill the suggestion of a new comment. It is empty without a selection.
func (s *Store) DefaultSuggestion() string {
	if s.selection == nil {
		return ""
	}
	return strings.Join(s.lines[s.selection.Start-1:s.selection.End], "\n")
}

// AddComment anchors a comment by author to the active selection and clears
// the selection. Comments of type inaccurate and improvement must carry a
// suggested change, the other types must not, and suggested changes of one
// pass must not overlap.
func (s *Store) AddComment(author string, fields types.CommentFields) (*types.ReviewComment, error) {
	if s.selection == nil {
		return nil, types.NewValidationError("selection", "a line range must be selected before commenting")
	}
	if strings.TrimSpace(author) == "" {
		return nil, types.NewValidationError("author", "author is required")
	}
	if err := fields.Validate(); err != nil {
		return nil, fromStructError(err)
	}

	suggestion := fields.SuggestedChange
	if fields.Type.RequiresSuggestion() {
		if suggestion == nil || *suggestion == "" {
			return nil, types.NewValidationError(
				"suggestedChange",
				fmt.Sprintf("suggestedChange is required for %s comments", fields.Type),
			)
		}
	} else if suggestion != nil {
		return nil, types.NewValidationError(
			"suggestedChange",
			fmt.Sprintf("suggestedChange is not allowed for %s comments", fields.Type),
		)
	}

	comment := &types.ReviewComment{
		ID:        types.IDFromBytes(xid.New().Bytes()),
		LineStart: s.selection.Start,
		LineEnd:   s.selection.End,
		Type:      fields.Type,
		Content:   fields.Content,
		Author:    author,
		CreatedAt: s.now(),
	}
	if suggestion != nil {
		text := *suggestion
		comment.SuggestedChange = &text
	}

	if other := patch.Overlapping(comment, s.comments); other != nil {
		return nil, types.NewValidationError(
			"lineStart",
			fmt.Sprintf(
				"lines %d-%d overlap the suggested change on lines %d-%d",
				comment.LineStart, comment.LineEnd, other.LineStart, other.LineEnd,
			),
		)
	}

	s.comments = append(s.comments, comment)
	s.selection = nil
	return comment.DeepCopy(), nil
}

// CommentsTouching returns the comments whose range contains line.
func (s *Store) CommentsTouching(line int) []*types.ReviewComment {
	var touching []*types.ReviewComment
	for _, c := range s.sorted() {
		if c.Touches(line) {
			touching = append(touching, c.DeepCopy())
		}
	}
	return touching
}

// Comments returns all comments ordered by line.
func (s *Store) Comments() []*types.ReviewComment {
	var comments []*types.ReviewComment
	for _, c := range s.sorted() {
		comments = append(comments, c.DeepCopy())
	}
	return comments
}

// Len returns the number of comments.
func (s *Store) Len() int {
	return len(s.comments)
}

// DeleteComment removes the comment unless it was submitted.
// Comments submitted from an earlier pass are reported as submitted too.
func (s *Store) DeleteComment(id types.ID) error {
	if s.submitted[id] {
		return fmt.Errorf("delete comment %s: %w", id, ErrCommentSubmitted)
	}
	idx := slices.IndexFunc(s.comments, func(c *types.ReviewComment) bool {
		return c.ID == id
	})
	if idx < 0 {
		return fmt.Errorf("delete comment %s: %w", id, ErrCommentNotFound)
	}

	s.comments = slices.Delete(s.comments, idx, idx+1)
	return nil
}

// MarkSubmitted locks the given comments against deletion.
func (s *Store) MarkSubmitted(ids ...types.ID) {
	for _, id := range ids {
		s.submitted[id] = true
	}
}

// IsSubmitted returns true if the comment was part of a submitted revision.
func (s *Store) IsSubmitted(id types.ID) bool {
	return s.submitted[id]
}

// Preview returns the document text with every suggested change applied.
func (s *Store) Preview() (string, error) {
	return patch.Apply(s.body, s.comments)
}

func (s *Store) sorted() []*types.ReviewComment {
	sorted := slices.Clone(s.comments)
	slices.SortFunc(sorted, func(a, b *types.ReviewComment) int {
		return cmp.Or(
			cmp.Compare(a.LineStart, b.LineStart),
			a.CreatedAt.Compare(b.CreatedAt),
			cmp.Compare(a.ID, b.ID),
		)
	})
	return sorted
}

func fromStructError(err error) error {
	var structErr *validation.StructError
	if !errors.As(err, &structErr) || len(structErr.Violations) == 0 {
		return err
	}

	v := structErr.Violations[0]
	return types.NewValidationError(v.Field, v.Description)
}
