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

// RevisionInfo is a structure representing information of a revision.
// Comments and changes are stored with the revision and never change.
type RevisionInfo struct {
	ID          types.ID               `bson:"_id"`
	ReviewID    types.ID               `bson:"review_id"`
	DocumentID  types.ID               `bson:"document_id"`
	Title       string                 `bson:"title"`
	Description string                 `bson:"description"`
	Content     string                 `bson:"content"`
	Username    string                 `bson:"username"`
	Status      types.RevisionStatus   `bson:"status"`
	Upvotes     int                    `bson:"upvotes"`
	Downvotes   int                    `bson:"downvotes"`
	Comments    []*types.ReviewComment `bson:"comments"`
	Changes     []types.Change         `bson:"changes"`
	CreatedAt   time.Time              `bson:"created_at"`
}

// DeepCopy returns a deep copy of the RevisionInfo.
func (i *RevisionInfo) DeepCopy() *RevisionInfo {
	if i == nil {
		return nil
	}

	revision := i.ToRevision()
	clone := *i
	clone.Comments = revision.Comments
	clone.Changes = revision.Changes
	return &clone
}

// ToRevision converts the RevisionInfo to a types.Revision. The user vote is
// left empty.
func (i *RevisionInfo) ToRevision() *types.Revision {
	revision := &types.Revision{
		ID:          i.ID,
		ReviewID:    i.ReviewID,
		Title:       i.Title,
		Description: i.Description,
		Content:     i.Content,
		Username:    i.Username,
		CreatedAt:   i.CreatedAt,
		Status:      i.Status,
		Votes:       types.Votes{Upvotes: i.Upvotes, Downvotes: i.Downvotes},
		Comments:    i.Comments,
		Changes:     i.Changes,
	}
	return revision.DeepCopy()
}
