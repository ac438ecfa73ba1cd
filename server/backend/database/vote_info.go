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

package database

import (
	"time"

	"github.com/quill-wiki/quill/api/types"
)

// VoteInfo is a structure representing a vote. There is at most one vote
// per (TargetID, ReviewID, VoterID), so a document gets a fresh ballot in
// every review session.
type VoteInfo struct {
	ID         types.ID             `bson:"_id"`
	TargetType types.VoteTargetType `bson:"target_type"`
	TargetID   types.ID             `bson:"target_id"`
	ReviewID   types.ID             `bson:"review_id"`
	VoterID    string               `bson:"voter_id"`
	Direction  types.VoteDirection  `bson:"direction"`
	CreatedAt  time.Time            `bson:"created_at"`
}

// DeepCopy returns a deep copy of the VoteInfo.
func (i *VoteInfo) DeepCopy() *VoteInfo {
	if i == nil {
		return nil
	}

	clone := *i
	return &clone
}

// ToVote converts the VoteInfo to a types.Vote.
func (i *VoteInfo) ToVote() *types.Vote {
	return &types.Vote{
		TargetType: i.TargetType,
		TargetID:   i.TargetID,
		ReviewID:   i.ReviewID,
		VoterID:    i.VoterID,
		Direction:  i.Direction,
		CreatedAt:  i.CreatedAt,
	}
}

// CounterField returns the stored name of the counter the vote increments.
func (i *VoteInfo) CounterField() string {
	if i.Direction == types.VoteUp {
		return "upvotes"
	}
	return "downvotes"
}
