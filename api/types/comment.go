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

package types

import (
	"time"
)

// MaxCommentContentLength is the maximum number of characters of a comment's
// rationale.
const MaxCommentContentLength = 500

// CommentType is the kind of a review comment.
type CommentType string

const (
	// CommentAccurate confirms the annotated lines.
	CommentAccurate CommentType = "accurate"

	// CommentInaccurate flags the annotated lines as wrong and proposes a fix.
	CommentInaccurate CommentType = "inaccurate"

	// CommentImprovement proposes a better wording for the annotated lines.
	CommentImprovement CommentType = "improvement"

	// CommentQuestion asks about the annotated lines.
	CommentQuestion CommentType = "question"
)

// Valid returns true if t is a known comment type.
func (t CommentType) Valid() bool {
	switch t {
	case CommentAccurate, CommentInaccurate, CommentImprovement, CommentQuestion:
		return true
	}
	return false
}

// RequiresSuggestion returns true if comments of type t must carry a
// suggested change. Other types must not carry one.
func (t CommentType) RequiresSuggestion() bool {
	return t == CommentInaccurate || t == CommentImprovement
}

// ReviewComment is a reviewer's note anchored to an inclusive, 1-indexed line
// range. It is immutable once created except for deletion.
type ReviewComment struct {
	ID              ID          `json:"id"`
	LineStart       int         `json:"lineStart"`
	LineEnd         int         `json:"lineEnd"`
	Type            CommentType `json:"type"`
	Content         string      `json:"content"`
	Author          string      `json:"author"`
	CreatedAt       time.Time   `json:"createdAt"`
	SuggestedChange *string     `json:"suggestedChange,omitempty"`
}

// HasSuggestion returns true if the comment proposes replacement text.
func (c *ReviewComment) HasSuggestion() bool {
	return c.SuggestedChange != nil
}

// Touches returns true if line lies within the comment's range.
func (c *ReviewComment) Touches(line int) bool {
	return c.LineStart <= line && line <= c.LineEnd
}

// Overlaps returns true if the ranges of c and other share at least one line.
func (c *ReviewComment) Overlaps(other *ReviewComment) bool {
	return c.LineStart <= other.LineEnd && other.LineStart <= c.LineEnd
}

// DeepCopy returns a deep copy of the comment.
func (c *ReviewComment) DeepCopy() *ReviewComment {
	if c == nil {
		return nil
	}

	clone := *c
	if c.SuggestedChange != nil {
		s := *c.SuggestedChange
		clone.SuggestedChange = &s
	}
	return &clone
}
