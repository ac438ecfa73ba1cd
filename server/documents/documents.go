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

// Package documents provides the operations on wiki documents outside of the
// review lifecycle, and the votes cast on a document under review.
package documents

import (
	"context"
	"fmt"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/api/types/events"
	"github.com/quill-wiki/quill/server/backend"
	"github.com/quill-wiki/quill/server/backend/database"
	"github.com/quill-wiki/quill/server/logging"
)

// CreateDocument stores a new unverified document.
func CreateDocument(
	ctx context.Context,
	be *backend.Backend,
	fields types.DocumentFields,
) (*types.Document, error) {
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	info, err := be.DB.CreateDocInfo(ctx, database.NewDocInfo(fields.Title, fields.Body, be.Now()))
	if err != nil {
		return nil, err
	}

	logging.From(ctx).Infof("document created: %s", info.ID)
	return info.ToDocument(), nil
}

// GetDocument returns the document of the given ID.
func GetDocument(
	ctx context.Context,
	be *backend.Backend,
	id types.ID,
) (*types.Document, error) {
	info, err := be.DB.FindDocInfoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	return info.ToDocument(), nil
}

// ListDocuments returns a page of documents.
func ListDocuments(
	ctx context.Context,
	be *backend.Backend,
	paging types.Paging[types.ID],
) ([]*types.Document, error) {
	if paging.PageSize <= 0 {
		paging.PageSize = types.DefaultPageSize
	}

	infos, err := be.DB.FindDocInfosByPaging(ctx, paging)
	if err != nil {
		return nil, err
	}

	docs := make([]*types.Document, 0, len(infos))
	for _, info := range infos {
		docs = append(docs, info.ToDocument())
	}

	return docs, nil
}

// VoteDocument casts the vote of voter on the document under review and
// returns the updated document. A voter votes at most once per review
// session of the document.
func VoteDocument(
	ctx context.Context,
	be *backend.Backend,
	id types.ID,
	voter string,
	direction types.VoteDirection,
) (*types.Document, error) {
	if err := types.ValidateUsername(voter); err != nil {
		return nil, err
	}

	unlock := be.LockDocument(ctx, id)
	defer unlock()

	info, err := be.DB.FindDocInfoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	doc := info.ToDocument()
	if err := be.Machine.Vote(doc, direction); err != nil {
		return nil, err
	}

	now := be.Now()
	if _, err := be.DB.CreateVoteInfo(ctx, &database.VoteInfo{
		TargetType: types.VoteTargetDocument,
		TargetID:   id,
		ReviewID:   info.ReviewID,
		VoterID:    voter,
		Direction:  direction,
		CreatedAt:  now,
	}); err != nil {
		return nil, fmt.Errorf("vote on document %s: %w", id, err)
	}

	updated, err := be.DB.FindDocInfoByID(ctx, id)
	if err != nil {
		return nil, err
	}

	be.Metrics.AddVote(types.VoteTargetDocument, direction)
	be.PubSub.Publish(ctx, events.ReviewEvent{
		Type:       events.DocumentVotedEvent,
		ReviewID:   info.ReviewID,
		DocumentID: id,
		Actor:      voter,
		Direction:  direction,
		OccurredAt: now,
	})

	return updated.ToDocument(), nil
}
