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

// Package memory implements the database interface using in-memory database.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	gotime "time"

	"github.com/hashicorp/go-memdb"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/server/backend/database"
)

// maxID is greater than or equal to every ObjectID hex string.
const maxID = "ffffffffffffffffffffffff"

// DB is an in-memory database for testing or temporarily.
type DB struct {
	db *memdb.MemDB
}

// New returns a new in-memory database.
func New() (*DB, error) {
	memDB, err := memdb.NewMemDB(schema)
	if err != nil {
		return nil, fmt.Errorf("new memdb: %w", err)
	}

	return &DB{
		db: memDB,
	}, nil
}

// Close closes the database.
func (d *DB) Close() error {
	return nil
}

// CreateDocInfo stores a new document and assigns its ID.
func (d *DB) CreateDocInfo(_ context.Context, info *database.DocInfo) (*database.DocInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info = info.DeepCopy()
	info.ID = newID()
	if err := txn.Insert(tblDocuments, info.DeepCopy()); err != nil {
		return nil, fmt.Errorf("insert document: %w", err)
	}
	txn.Commit()

	return info, nil
}

// FindDocInfoByID returns the document of the given ID.
func (d *DB) FindDocInfoByID(_ context.Context, id types.ID) (*database.DocInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblDocuments, "id", id.String())
	if err != nil {
		return nil, fmt.Errorf("find document by id: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", id, database.ErrDocumentNotFound)
	}

	return raw.(*database.DocInfo).DeepCopy(), nil
}

// FindDocInfosByPaging returns a page of documents ordered by ID.
func (d *DB) FindDocInfosByPaging(
	_ context.Context,
	paging types.Paging[types.ID],
) ([]*database.DocInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	var iterator memdb.ResultIterator
	var err error
	if paging.IsForward {
		iterator, err = txn.LowerBound(tblDocuments, "id", paging.Offset.String())
	} else {
		offset := paging.Offset.String()
		if offset == "" {
			offset = maxID
		}
		iterator, err = txn.ReverseLowerBound(tblDocuments, "id", offset)
	}
	if err != nil {
		return nil, fmt.Errorf("find documents: %w", err)
	}

	var infos []*database.DocInfo
	for raw := iterator.Next(); raw != nil; raw = iterator.Next() {
		// NOTE: PageSize == 0 means no limit, as with MongoDB.
		if paging.PageSize > 0 && len(infos) >= paging.PageSize {
			break
		}

		info := raw.(*database.DocInfo)
		if info.ID != paging.Offset {
			infos = append(infos, info.DeepCopy())
		}
	}

	return infos, nil
}

// UpdateDocInfo replaces the document if its stored status is expected.
func (d *DB) UpdateDocInfo(
	_ context.Context,
	info *database.DocInfo,
	expected types.DocumentStatus,
) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblDocuments, "id", info.ID.String())
	if err != nil {
		return fmt.Errorf("find document by id: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("%s: %w", info.ID, database.ErrDocumentNotFound)
	}
	if stored := raw.(*database.DocInfo); stored.Status != expected {
		return fmt.Errorf("document %s is %s: %w", info.ID, stored.Status, database.ErrConflictOnUpdate)
	}

	if err := txn.Insert(tblDocuments, info.DeepCopy()); err != nil {
		return fmt.Errorf("update document: %w", err)
	}
	txn.Commit()

	return nil
}

// CreateReviewInfo stores a new review session and assigns its ID.
func (d *DB) CreateReviewInfo(_ context.Context, info *database.ReviewInfo) (*database.ReviewInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	active, err := findActiveReview(txn, info.DocumentID)
	if err != nil {
		return nil, err
	}
	if active != nil {
		return nil, fmt.Errorf("document %s: %w", info.DocumentID, types.ErrAlreadyReviewing)
	}

	info = info.DeepCopy()
	info.ID = newID()
	if err := txn.Insert(tblReviews, info.DeepCopy()); err != nil {
		return nil, fmt.Errorf("insert review: %w", err)
	}
	txn.Commit()

	return info, nil
}

// FindReviewInfoByID returns the review session of the given ID.
func (d *DB) FindReviewInfoByID(_ context.Context, id types.ID) (*database.ReviewInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblReviews, "id", id.String())
	if err != nil {
		return nil, fmt.Errorf("find review by id: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", id, database.ErrReviewNotFound)
	}

	return raw.(*database.ReviewInfo).DeepCopy(), nil
}

// FindActiveReviewInfo returns the in-review session of the document.
func (d *DB) FindActiveReviewInfo(_ context.Context, docID types.ID) (*database.ReviewInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	info, err := findActiveReview(txn, docID)
	if err != nil {
		return nil, err
	}
	if info == nil {
		return nil, fmt.Errorf("active review of %s: %w", docID, database.ErrReviewNotFound)
	}

	return info.DeepCopy(), nil
}

// FindReviewInfosByDocID returns every session of the document ordered by
// start time.
func (d *DB) FindReviewInfosByDocID(_ context.Context, docID types.ID) ([]*database.ReviewInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	iterator, err := txn.Get(tblReviews, "document_id", docID.String())
	if err != nil {
		return nil, fmt.Errorf("find reviews of %s: %w", docID, err)
	}

	var infos []*database.ReviewInfo
	for raw := iterator.Next(); raw != nil; raw = iterator.Next() {
		infos = append(infos, raw.(*database.ReviewInfo).DeepCopy())
	}

	slices.SortFunc(infos, func(a, b *database.ReviewInfo) int {
		return cmp.Or(a.StartedAt.Compare(b.StartedAt), cmp.Compare(a.ID, b.ID))
	})
	return infos, nil
}

// FindExpiredReviewInfos returns at most limit in-review sessions whose
// deadline is at or before now.
func (d *DB) FindExpiredReviewInfos(
	_ context.Context,
	now gotime.Time,
	limit int,
) ([]*database.ReviewInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	iterator, err := txn.Get(tblReviews, "status", string(types.ReviewInProgress))
	if err != nil {
		return nil, fmt.Errorf("find reviews in progress: %w", err)
	}

	var infos []*database.ReviewInfo
	for raw := iterator.Next(); raw != nil; raw = iterator.Next() {
		info := raw.(*database.ReviewInfo)
		if !info.Deadline.After(now) {
			infos = append(infos, info.DeepCopy())
		}
	}

	slices.SortFunc(infos, func(a, b *database.ReviewInfo) int {
		return cmp.Or(a.Deadline.Compare(b.Deadline), cmp.Compare(a.ID, b.ID))
	})
	if limit > 0 && len(infos) > limit {
		infos = infos[:limit]
	}
	return infos, nil
}

// UpdateReviewInfo replaces the session if its stored status is expected.
func (d *DB) UpdateReviewInfo(
	_ context.Context,
	info *database.ReviewInfo,
	expected types.ReviewStatus,
) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	raw, err := txn.First(tblReviews, "id", info.ID.String())
	if err != nil {
		return fmt.Errorf("find review by id: %w", err)
	}
	if raw == nil {
		return fmt.Errorf("%s: %w", info.ID, database.ErrReviewNotFound)
	}
	if stored := raw.(*database.ReviewInfo); stored.Status != expected {
		return fmt.Errorf("review %s is %s: %w", info.ID, stored.Status, database.ErrConflictOnUpdate)
	}

	if err := txn.Insert(tblReviews, info.DeepCopy()); err != nil {
		return fmt.Errorf("update review: %w", err)
	}
	txn.Commit()

	return nil
}

// CreateRevisionInfo stores a new revision and assigns its ID.
func (d *DB) CreateRevisionInfo(
	_ context.Context,
	info *database.RevisionInfo,
) (*database.RevisionInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	info = info.DeepCopy()
	info.ID = newID()
	if err := txn.Insert(tblRevisions, info.DeepCopy()); err != nil {
		return nil, fmt.Errorf("insert revision: %w", err)
	}
	txn.Commit()

	return info, nil
}

// FindRevisionInfoByID returns the revision of the given ID.
func (d *DB) FindRevisionInfoByID(_ context.Context, id types.ID) (*database.RevisionInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	raw, err := txn.First(tblRevisions, "id", id.String())
	if err != nil {
		return nil, fmt.Errorf("find revision by id: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%s: %w", id, database.ErrRevisionNotFound)
	}

	return raw.(*database.RevisionInfo).DeepCopy(), nil
}

// FindRevisionInfosByReviewID returns the revisions of the session ordered by
// creation.
func (d *DB) FindRevisionInfosByReviewID(
	_ context.Context,
	reviewID types.ID,
) ([]*database.RevisionInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	iterator, err := txn.Get(tblRevisions, "review_id", reviewID.String())
	if err != nil {
		return nil, fmt.Errorf("find revisions of %s: %w", reviewID, err)
	}

	var infos []*database.RevisionInfo
	for raw := iterator.Next(); raw != nil; raw = iterator.Next() {
		infos = append(infos, raw.(*database.RevisionInfo).DeepCopy())
	}

	slices.SortFunc(infos, func(a, b *database.RevisionInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return infos, nil
}

// UpdateRevisionStatuses marks the winner of the session and rejects the
// other revisions.
func (d *DB) UpdateRevisionStatuses(_ context.Context, reviewID, winnerID types.ID) error {
	txn := d.db.Txn(true)
	defer txn.Abort()

	iterator, err := txn.Get(tblRevisions, "review_id", reviewID.String())
	if err != nil {
		return fmt.Errorf("find revisions of %s: %w", reviewID, err)
	}

	var infos []*database.RevisionInfo
	for raw := iterator.Next(); raw != nil; raw = iterator.Next() {
		infos = append(infos, raw.(*database.RevisionInfo).DeepCopy())
	}

	found := false
	for _, info := range infos {
		if info.ID == winnerID {
			info.Status = types.RevisionWinner
			found = true
		} else {
			info.Status = types.RevisionRejected
		}
		if err := txn.Insert(tblRevisions, info); err != nil {
			return fmt.Errorf("update revision: %w", err)
		}
	}
	if !found {
		return fmt.Errorf("%s of review %s: %w", winnerID, reviewID, database.ErrRevisionNotFound)
	}
	txn.Commit()

	return nil
}

// CreateVoteInfo records the vote and increments the counter of its target
// in one transaction.
func (d *DB) CreateVoteInfo(_ context.Context, info *database.VoteInfo) (*database.VoteInfo, error) {
	txn := d.db.Txn(true)
	defer txn.Abort()

	existing, err := txn.First(
		tblVotes,
		"target_id_review_id_voter_id",
		info.TargetID.String(),
		info.ReviewID.String(),
		info.VoterID,
	)
	if err != nil {
		return nil, fmt.Errorf("find vote: %w", err)
	}
	if existing != nil {
		return nil, fmt.Errorf("%s on %s: %w", info.VoterID, info.TargetID, types.ErrAlreadyVoted)
	}

	switch info.TargetType {
	case types.VoteTargetDocument:
		raw, err := txn.First(tblDocuments, "id", info.TargetID.String())
		if err != nil {
			return nil, fmt.Errorf("find document by id: %w", err)
		}
		if raw == nil {
			return nil, fmt.Errorf("%s: %w", info.TargetID, database.ErrDocumentNotFound)
		}

		doc := raw.(*database.DocInfo).DeepCopy()
		if doc.Status != types.DocumentVerifying || doc.ReviewID != info.ReviewID {
			return nil, fmt.Errorf("vote on document %s: %w", doc.ID, database.ErrConflictOnUpdate)
		}
		if info.Direction == types.VoteUp {
			doc.Upvotes++
		} else {
			doc.Downvotes++
		}
		if err := txn.Insert(tblDocuments, doc); err != nil {
			return nil, fmt.Errorf("update document: %w", err)
		}
	case types.VoteTargetRevision:
		raw, err := txn.First(tblRevisions, "id", info.TargetID.String())
		if err != nil {
			return nil, fmt.Errorf("find revision by id: %w", err)
		}
		if raw == nil {
			return nil, fmt.Errorf("%s: %w", info.TargetID, database.ErrRevisionNotFound)
		}

		revision := raw.(*database.RevisionInfo).DeepCopy()
		if revision.Status != types.RevisionPending || revision.ReviewID != info.ReviewID {
			return nil, fmt.Errorf("vote on revision %s: %w", revision.ID, database.ErrConflictOnUpdate)
		}
		if info.Direction == types.VoteUp {
			revision.Upvotes++
		} else {
			revision.Downvotes++
		}
		if err := txn.Insert(tblRevisions, revision); err != nil {
			return nil, fmt.Errorf("update revision: %w", err)
		}
	default:
		return nil, fmt.Errorf("vote target %q: %w", info.TargetType, types.ErrValidation)
	}

	info = info.DeepCopy()
	info.ID = newID()
	if err := txn.Insert(tblVotes, info.DeepCopy()); err != nil {
		return nil, fmt.Errorf("insert vote: %w", err)
	}
	txn.Commit()

	return info, nil
}

// FindVoteInfosByVoter returns the votes cast by voter during the session.
func (d *DB) FindVoteInfosByVoter(
	_ context.Context,
	reviewID types.ID,
	voterID string,
) ([]*database.VoteInfo, error) {
	txn := d.db.Txn(false)
	defer txn.Abort()

	iterator, err := txn.Get(tblVotes, "review_id_voter_id", reviewID.String(), voterID)
	if err != nil {
		return nil, fmt.Errorf("find votes of %s: %w", voterID, err)
	}

	var infos []*database.VoteInfo
	for raw := iterator.Next(); raw != nil; raw = iterator.Next() {
		infos = append(infos, raw.(*database.VoteInfo).DeepCopy())
	}
	return infos, nil
}

func findActiveReview(txn *memdb.Txn, docID types.ID) (*database.ReviewInfo, error) {
	iterator, err := txn.Get(tblReviews, "document_id", docID.String())
	if err != nil {
		return nil, fmt.Errorf("find reviews of %s: %w", docID, err)
	}

	for raw := iterator.Next(); raw != nil; raw = iterator.Next() {
		if info := raw.(*database.ReviewInfo); info.Status == types.ReviewInProgress {
			return info, nil
		}
	}
	return nil, nil
}

func newID() types.ID {
	return types.ID(bson.NewObjectID().Hex())
}
