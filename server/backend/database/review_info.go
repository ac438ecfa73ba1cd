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

// ReviewInfo is a structure representing information of a review session.
type ReviewInfo struct {
	ID                types.ID           `bson:"_id"`
	DocumentID        types.ID           `bson:"document_id"`
	Status            types.ReviewStatus `bson:"status"`
	StartedAt         time.Time          `bson:"started_at"`
	Deadline          time.Time          `bson:"deadline"`
	CompletedAt       time.Time          `bson:"completed_at"`
	WinningRevisionID types.ID           `bson:"winning_revision_id"`
}

// NewReviewInfo returns the ReviewInfo of a session created by the
// verification machine.
func NewReviewInfo(session *types.ReviewSession) *ReviewInfo {
	info := &ReviewInfo{}
	info.ApplySession(session)
	return info
}

// DeepCopy returns a deep copy of the ReviewInfo.
func (i *ReviewInfo) DeepCopy() *ReviewInfo {
	if i == nil {
		return nil
	}

	clone := *i
	return &clone
}

// ToSession converts the ReviewInfo to a types.ReviewSession.
func (i *ReviewInfo) ToSession() *types.ReviewSession {
	return &types.ReviewSession{
		ID:                i.ID,
		DocumentID:        i.DocumentID,
		Status:            i.Status,
		StartedAt:         i.StartedAt,
		Deadline:          i.Deadline,
		CompletedAt:       optionalTime(i.CompletedAt),
		WinningRevisionID: i.WinningRevisionID,
	}
}

// ApplySession copies session into the ReviewInfo.
func (i *ReviewInfo) ApplySession(session *types.ReviewSession) {
	i.ID = session.ID
	i.DocumentID = session.DocumentID
	i.Status = session.Status
	i.StartedAt = session.StartedAt
	i.Deadline = session.Deadline
	i.CompletedAt = zeroTime(session.CompletedAt)
	i.WinningRevisionID = session.WinningRevisionID
}
