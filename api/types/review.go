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

// ReviewStatus is the status of a review session.
type ReviewStatus string

const (
	// ReviewInProgress is the status of a session still accepting revisions
	// and votes.
	ReviewInProgress ReviewStatus = "IN_REVIEW"

	// ReviewCompleted is the status of a session that selected a winner.
	ReviewCompleted ReviewStatus = "COMPLETED"

	// ReviewCancelled is the status of a session that ended without a winner.
	ReviewCancelled ReviewStatus = "CANCELLED"
)

// IsTerminal returns true if no further transition can happen from s.
func (s ReviewStatus) IsTerminal() bool {
	return s == ReviewCompleted || s == ReviewCancelled
}

// ReviewSession is one bounded-time round of verification for a document.
type ReviewSession struct {
	ID                ID           `json:"reviewId"`
	DocumentID        ID           `json:"documentId"`
	Status            ReviewStatus `json:"status"`
	StartedAt         time.Time    `json:"startedAt"`
	Deadline          time.Time    `json:"deadline"`
	CompletedAt       *time.Time   `json:"completedAt,omitempty"`
	WinningRevisionID ID           `json:"winningRevisionId,omitempty"`
}

// IsActive returns true if the session is still in review.
func (s *ReviewSession) IsActive() bool {
	return s != nil && s.Status == ReviewInProgress
}

// IsExpired returns true if the deadline has been reached at now.
func (s *ReviewSession) IsExpired(now time.Time) bool {
	return !now.Before(s.Deadline)
}

// Window returns the configured length of the session.
func (s *ReviewSession) Window() time.Duration {
	return s.Deadline.Sub(s.StartedAt)
}

// DeepCopy returns a deep copy of the session.
func (s *ReviewSession) DeepCopy() *ReviewSession {
	if s == nil {
		return nil
	}

	clone := *s
	clone.CompletedAt = copyTime(s.CompletedAt)
	return &clone
}
