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

// VoteDirection is the direction of a vote.
type VoteDirection string

const (
	// VoteUp is an upvote.
	VoteUp VoteDirection = "up"

	// VoteDown is a downvote.
	VoteDown VoteDirection = "down"
)

// Valid returns true if d is up or down.
func (d VoteDirection) Valid() bool {
	return d == VoteUp || d == VoteDown
}

// VoteTargetType is the kind of entity a vote is cast on.
type VoteTargetType string

const (
	// VoteTargetDocument is a vote on a document under review.
	VoteTargetDocument VoteTargetType = "document"

	// VoteTargetRevision is a vote on a revision.
	VoteTargetRevision VoteTargetType = "revision"
)

// Vote records that VoterID voted Direction on TargetID during ReviewID.
// There is at most one vote per (TargetID, ReviewID, VoterID).
type Vote struct {
	TargetType VoteTargetType `json:"targetType"`
	TargetID   ID             `json:"targetId"`
	ReviewID   ID             `json:"reviewId"`
	VoterID    string         `json:"voterId"`
	Direction  VoteDirection  `json:"direction"`
	CreatedAt  time.Time      `json:"createdAt"`
}
