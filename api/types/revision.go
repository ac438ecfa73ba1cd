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

// RevisionStatus is the status of a revision within its review session.
type RevisionStatus string

const (
	// RevisionPending is the status of a revision while its session is open.
	RevisionPending RevisionStatus = "pending"

	// RevisionApproved is reserved for revisions accepted outside of a
	// completed session.
	RevisionApproved RevisionStatus = "approved"

	// RevisionRejected is the status of every non-winning revision of a
	// completed session.
	RevisionRejected RevisionStatus = "rejected"

	// RevisionWinner is the status of the revision merged into the document.
	RevisionWinner RevisionStatus = "winner"
)

// ChangeType is the kind of a single-line change.
type ChangeType string

const (
	// ChangeAdded is a line that exists only in the revision.
	ChangeAdded ChangeType = "added"

	// ChangeRemoved is a line that exists only in the original.
	ChangeRemoved ChangeType = "removed"

	// ChangeModified is a line whose text was replaced.
	ChangeModified ChangeType = "modified"
)

// Change is a single line edit inside a revision. LineNumber refers to the
// original document.
type Change struct {
	LineNumber int        `json:"lineNumber"`
	Type       ChangeType `json:"type"`
	Original   *string    `json:"original,omitempty"`
	Content    string     `json:"content"`
}

// Votes is the vote tally of a revision. UserVote is the direction cast by
// the user the revision is being shown to, if any.
type Votes struct {
	Upvotes   int            `json:"upvotes"`
	Downvotes int            `json:"downvotes"`
	UserVote  *VoteDirection `json:"userVote,omitempty"`
}

// Net returns upvotes minus downvotes.
func (v Votes) Net() int {
	return v.Upvotes - v.Downvotes
}

// Revision is a reviewer-submitted candidate rewrite of a document.
type Revision struct {
	ID          ID               `json:"revisionId"`
	ReviewID    ID               `json:"reviewId"`
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Content     string           `json:"content"`
	Username    string           `json:"username"`
	CreatedAt   time.Time        `json:"createdAt"`
	Status      RevisionStatus   `json:"status"`
	Votes       Votes            `json:"votes"`
	Comments    []*ReviewComment `json:"comments"`
	Changes     []Change         `json:"changes"`
}

// SuggestionCount returns the number of comments carrying a suggested change.
func (r *Revision) SuggestionCount() int {
	count := 0
	for _, c := range r.Comments {
		if c.HasSuggestion() {
			count++
		}
	}
	return count
}

// DeepCopy returns a deep copy of the revision.
func (r *Revision) DeepCopy() *Revision {
	if r == nil {
		return nil
	}

	clone := *r
	if r.Votes.UserVote != nil {
		v := *r.Votes.UserVote
		clone.Votes.UserVote = &v
	}
	clone.Comments = make([]*ReviewComment, len(r.Comments))
	for i, c := range r.Comments {
		clone.Comments[i] = c.DeepCopy()
	}
	clone.Changes = make([]Change, len(r.Changes))
	for i, ch := range r.Changes {
		clone.Changes[i] = ch
		if ch.Original != nil {
			o := *ch.Original
			clone.Changes[i].Original = &o
		}
	}
	return &clone
}
