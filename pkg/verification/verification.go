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

// Package verification implements the lifecycle of a document under review.
//
// A document moves from unverified to verifying when a review session is
// started, and from verifying to verified when the session completes with a
// winning revision. A session that ends without an eligible revision is
// cancelled and the document returns to unverified.
//
// The Machine only validates transitions and mutates the values it is given.
// Persisting them is left to the caller.
package verification

import (
	"fmt"
	"time"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/pkg/patch"
	"github.com/quill-wiki/quill/pkg/ranking"
)

// DefaultWindow is the length of a review session.
const DefaultWindow = 72 * time.Hour

// Machine applies the verification transitions.
type Machine struct {
	window time.Duration
}

// New creates a Machine opening sessions of the given length. A non-positive
// window falls back to DefaultWindow.
func New(window time.Duration) *Machine {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Machine{window: window}
}

// Window returns the length of the sessions opened by the machine.
func (m *Machine) Window() time.Duration {
	return m.window
}

// StartReview moves doc to verifying and returns the new session. active is
// the latest session of the document, if any. The returned session has no ID
// until it is stored.
func (m *Machine) StartReview(
	doc *types.Document,
	active *types.ReviewSession,
	now time.Time,
) (*types.ReviewSession, error) {
	if doc.Status == types.DocumentVerifying || active.IsActive() {
		return nil, fmt.Errorf("start review of %s: %w", doc.ID, types.ErrAlreadyReviewing)
	}
	if doc.Status != types.DocumentUnverified {
		return nil, fmt.Errorf("start review of %s document %s: %w", doc.Status, doc.ID, types.ErrInvalidTransition)
	}

	startedAt := now
	endAt := now.Add(m.window)
	doc.Status = types.DocumentVerifying
	doc.VerificationStartedAt = &startedAt
	doc.VerificationEndAt = &endAt
	doc.Upvotes = 0
	doc.Downvotes = 0
	doc.UpdatedAt = now

	return &types.ReviewSession{
		DocumentID: doc.ID,
		Status:     types.ReviewInProgress,
		StartedAt:  startedAt,
		Deadline:   endAt,
	}, nil
}

// Vote counts a vote on doc. Voting is only allowed while it is verifying.
// Rejecting a second vote by the same voter is the job of the vote store.
func (m *Machine) Vote(doc *types.Document, direction types.VoteDirection) error {
	if !direction.Valid() {
		return types.NewValidationError("direction", "direction must be up or down")
	}
	if doc.Status != types.DocumentVerifying {
		return fmt.Errorf("vote on %s document %s: %w", doc.Status, doc.ID, types.ErrInvalidTransition)
	}

	if direction == types.VoteUp {
		doc.Upvotes++
	} else {
		doc.Downvotes++
	}
	return nil
}

// VoteRevision counts a vote on a revision of an in-review session.
func (m *Machine) VoteRevision(
	session *types.ReviewSession,
	revision *types.Revision,
	direction types.VoteDirection,
) error {
	if !direction.Valid() {
		return types.NewValidationError("direction", "direction must be up or down")
	}
	if !session.IsActive() {
		return fmt.Errorf("vote on revision of %s review %s: %w", session.Status, session.ID, types.ErrInvalidTransition)
	}
	if revision.ReviewID != session.ID {
		return fmt.Errorf(
			"revision %s does not belong to review %s: %w",
			revision.ID, session.ID, types.ErrInvalidTransition,
		)
	}

	if direction == types.VoteUp {
		revision.Votes.Upvotes++
	} else {
		revision.Votes.Downvotes++
	}
	return nil
}

// Outcome is the result of a completed review.
type Outcome struct {
	// Winner is the revision merged into the document.
	Winner *types.Revision

	// Body is the new text of the document.
	Body string

	// Ranked is every revision of the session in rank order.
	Ranked []*types.Revision
}

// CompleteReview selects the winning revision, merges its suggested changes
// into doc and closes the session. Nothing is modified when it fails, in
// particular when no revision is eligible (types.ErrNoSubmissions).
func (m *Machine) CompleteReview(
	doc *types.Document,
	session *types.ReviewSession,
	revisions []*types.Revision,
	now time.Time,
) (*Outcome, error) {
	if err := checkClosable(doc, session); err != nil {
		return nil, fmt.Errorf("complete review: %w", err)
	}

	winner, err := ranking.SelectWinner(revisions)
	if err != nil {
		return nil, fmt.Errorf("complete review %s: %w", session.ID, err)
	}

	body, err := patch.Apply(doc.Body, winner.Comments)
	if err != nil {
		return nil, fmt.Errorf("complete review %s: apply revision %s: %w", session.ID, winner.ID, err)
	}

	completedAt := now
	doc.Body = body
	doc.Status = types.DocumentVerified
	doc.UpdatedAt = now
	session.Status = types.ReviewCompleted
	session.CompletedAt = &completedAt
	session.WinningRevisionID = winner.ID

	for _, revision := range revisions {
		if revision.ID == winner.ID {
			revision.Status = types.RevisionWinner
		} else {
			revision.Status = types.RevisionRejected
		}
	}

	return &Outcome{
		Winner: winner,
		Body:   body,
		Ranked: ranking.Rank(revisions),
	}, nil
}

// CancelReview closes the session without a winner and returns doc to
// unverified.
func (m *Machine) CancelReview(doc *types.Document, session *types.ReviewSession, now time.Time) error {
	if err := checkClosable(doc, session); err != nil {
		return fmt.Errorf("cancel review: %w", err)
	}

	completedAt := now
	session.Status = types.ReviewCancelled
	session.CompletedAt = &completedAt

	doc.Status = types.DocumentUnverified
	doc.VerificationStartedAt = nil
	doc.VerificationEndAt = nil
	doc.UpdatedAt = now
	return nil
}

func checkClosable(doc *types.Document, session *types.ReviewSession) error {
	if !session.IsActive() {
		return fmt.Errorf("%s review %s: %w", session.Status, session.ID, types.ErrInvalidTransition)
	}
	if session.DocumentID != doc.ID {
		return fmt.Errorf("review %s is not on document %s: %w", session.ID, doc.ID, types.ErrInvalidTransition)
	}
	if doc.Status != types.DocumentVerifying {
		return fmt.Errorf("%s document %s: %w", doc.Status, doc.ID, types.ErrInvalidTransition)
	}
	return nil
}
