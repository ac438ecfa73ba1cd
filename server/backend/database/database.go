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

// Package database provides the database interface for the Quill backend.
package database

import (
	"context"
	gotime "time"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/pkg/errors"
)

var (
	// ErrDocumentNotFound is returned when the document could not be found.
	ErrDocumentNotFound = errors.NotFound("document not found").WithCode("ErrDocumentNotFound")

	// ErrReviewNotFound is returned when the review session could not be found.
	ErrReviewNotFound = errors.NotFound("review not found").WithCode("ErrReviewNotFound")

	// ErrRevisionNotFound is returned when the revision could not be found.
	ErrRevisionNotFound = errors.NotFound("revision not found").WithCode("ErrRevisionNotFound")

	// ErrConflictOnUpdate is returned when the stored entity is not in the
	// expected state anymore.
	ErrConflictOnUpdate = errors.FailedPrecond("conflict on update").WithCode("ErrConflictOnUpdate")
)

// Database represents database which reads or saves Quill data. Every write
// is atomic on a single entity, and a vote together with the counter it
// increments.
type Database interface {
	// Close all resources of this database.
	Close() error

	// CreateDocInfo stores a new document and assigns its ID.
	CreateDocInfo(ctx context.Context, info *DocInfo) (*DocInfo, error)

	// FindDocInfoByID returns the document of the given ID.
	FindDocInfoByID(ctx context.Context, id types.ID) (*DocInfo, error)

	// FindDocInfosByPaging returns a page of documents ordered by ID.
	FindDocInfosByPaging(
		ctx context.Context,
		paging types.Paging[types.ID],
	) ([]*DocInfo, error)

	// UpdateDocInfo replaces the document if its stored status is expected.
	UpdateDocInfo(
		ctx context.Context,
		info *DocInfo,
		expected types.DocumentStatus,
	) error

	// CreateReviewInfo stores a new review session and assigns its ID. It
	// fails with types.ErrAlreadyReviewing if the document already has a
	// session in review.
	CreateReviewInfo(ctx context.Context, info *ReviewInfo) (*ReviewInfo, error)

	// FindReviewInfoByID returns the review session of the given ID.
	FindReviewInfoByID(ctx context.Context, id types.ID) (*ReviewInfo, error)

	// FindActiveReviewInfo returns the in-review session of the document.
	FindActiveReviewInfo(ctx context.Context, docID types.ID) (*ReviewInfo, error)

	// FindReviewInfosByDocID returns every session of the document ordered
	// by start time.
	FindReviewInfosByDocID(ctx context.Context, docID types.ID) ([]*ReviewInfo, error)

	// FindExpiredReviewInfos returns at most limit in-review sessions whose
	// deadline is at or before now, earliest deadline first.
	FindExpiredReviewInfos(
		ctx context.Context,
		now gotime.Time,
		limit int,
	) ([]*ReviewInfo, error)

	// UpdateReviewInfo replaces the session if its stored status is expected.
	UpdateReviewInfo(
		ctx context.Context,
		info *ReviewInfo,
		expected types.ReviewStatus,
	) error

	// CreateRevisionInfo stores a new revision and assigns its ID.
	CreateRevisionInfo(ctx context.Context, info *RevisionInfo) (*RevisionInfo, error)

	// FindRevisionInfoByID returns the revision of the given ID.
	FindRevisionInfoByID(ctx context.Context, id types.ID) (*RevisionInfo, error)

	// FindRevisionInfosByReviewID returns the revisions of the session.
	FindRevisionInfosByReviewID(ctx context.Context, reviewID types.ID) ([]*RevisionInfo, error)

	// UpdateRevisionStatuses marks winnerID as the winner of the session and
	// every other revision of the session as rejected.
	UpdateRevisionStatuses(ctx context.Context, reviewID, winnerID types.ID) error

	// CreateVoteInfo records the vote and increments the counter of its
	// target. It fails with types.ErrAlreadyVoted if the voter already voted
	// on the target, and with ErrConflictOnUpdate if the target is no longer
	// open for votes of the vote's session.
	CreateVoteInfo(ctx context.Context, info *VoteInfo) (*VoteInfo, error)

	// FindVoteInfosByVoter returns the votes cast by voter during the session.
	FindVoteInfosByVoter(
		ctx context.Context,
		reviewID types.ID,
		voterID string,
	) ([]*VoteInfo, error)
}
