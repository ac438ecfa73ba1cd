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

// Package events defines the events that occur during a review session.
package events

import (
	"time"

	"github.com/quill-wiki/quill/api/types"
)

// ReviewEventType represents the type of the ReviewEvent.
type ReviewEventType string

const (
	// ReviewStartedEvent is published when a document enters review.
	ReviewStartedEvent ReviewEventType = "review-started"

	// DocumentVotedEvent is published when a vote is cast on the document
	// under review.
	DocumentVotedEvent ReviewEventType = "document-voted"

	// RevisionSubmittedEvent is published when a reviewer submits a revision.
	RevisionSubmittedEvent ReviewEventType = "revision-submitted"

	// RevisionVotedEvent is published when a vote is cast on a revision.
	RevisionVotedEvent ReviewEventType = "revision-voted"

	// ReviewCompletedEvent is published when a winner has been merged.
	ReviewCompletedEvent ReviewEventType = "review-completed"

	// ReviewCancelledEvent is published when a session ends without a winner.
	ReviewCancelledEvent ReviewEventType = "review-cancelled"
)

// IsTerminal returns true if no more events follow an event of type t.
func (t ReviewEventType) IsTerminal() bool {
	return t == ReviewCompletedEvent || t == ReviewCancelledEvent
}

// ReviewEvent represents an event that occurs in a review session.
type ReviewEvent struct {
	Type       ReviewEventType     `json:"type"`
	ReviewID   types.ID            `json:"reviewId"`
	DocumentID types.ID            `json:"documentId"`
	Actor      string              `json:"actor,omitempty"`
	RevisionID types.ID            `json:"revisionId,omitempty"`
	Direction  types.VoteDirection `json:"direction,omitempty"`
	OccurredAt time.Time           `json:"occurredAt"`
}
