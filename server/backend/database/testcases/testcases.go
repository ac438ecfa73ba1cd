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

// Package testcases contains testcases for database. It is used by database
// implementations to test their own implementations with the same testcases.
package testcases

import (
	"context"
	"fmt"
	"testing"
	gotime "time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/server/backend/database"
)

const (
	notExistID = types.ID("000000000000000000000000")
	window     = 72 * gotime.Hour
)

// RunFindDocInfoTest runs the document CRUD tests for the given db.
func RunFindDocInfoTest(t *testing.T, db database.Database) {
	t.Run("find docInfo test", func(t *testing.T) {
		ctx := context.Background()

		_, err := db.FindDocInfoByID(ctx, notExistID)
		assert.ErrorIs(t, err, database.ErrDocumentNotFound)

		now := gotime.Now().UTC().Truncate(gotime.Millisecond)
		created, err := db.CreateDocInfo(ctx, database.NewDocInfo(t.Name(), "A\nB", now))
		require.NoError(t, err)
		assert.NoError(t, created.ID.Validate())

		found, err := db.FindDocInfoByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, t.Name(), found.Title)
		assert.Equal(t, types.DocumentUnverified, found.Status)
		assert.True(t, found.VerificationStartedAt.IsZero())
	})

	t.Run("update docInfo with expected status test", func(t *testing.T) {
		ctx := context.Background()
		now := gotime.Now().UTC().Truncate(gotime.Millisecond)
		info, err := db.CreateDocInfo(ctx, database.NewDocInfo(t.Name(), "A", now))
		require.NoError(t, err)

		info.Status = types.DocumentVerifying
		info.VerificationStartedAt = now
		info.VerificationEndAt = now.Add(window)
		assert.NoError(t, db.UpdateDocInfo(ctx, info, types.DocumentUnverified))

		// the stored status is verifying now, so a second transition from
		// unverified must fail.
		assert.ErrorIs(t, db.UpdateDocInfo(ctx, info, types.DocumentUnverified), database.ErrConflictOnUpdate)

		found, err := db.FindDocInfoByID(ctx, info.ID)
		require.NoError(t, err)
		assert.Equal(t, types.DocumentVerifying, found.Status)
		assert.True(t, now.Add(window).Equal(found.VerificationEndAt))

		missing := info.DeepCopy()
		missing.ID = notExistID
		assert.ErrorIs(t, db.UpdateDocInfo(ctx, missing, types.DocumentVerifying), database.ErrDocumentNotFound)
	})
}

// RunFindDocInfosByPagingTest runs the FindDocInfosByPaging tests for the
// given db.
func RunFindDocInfosByPagingTest(t *testing.T, db database.Database) {
	t.Run("FindDocInfosByPaging test", func(t *testing.T) {
		ctx := context.Background()
		now := gotime.Now().UTC()

		var ids []types.ID
		for i := range 5 {
			info, err := db.CreateDocInfo(ctx, database.NewDocInfo(fmt.Sprintf("%s-%d", t.Name(), i), "", now))
			require.NoError(t, err)
			ids = append(ids, info.ID)
		}

		infos, err := db.FindDocInfosByPaging(ctx, types.Paging[types.ID]{
			Offset:    ids[0],
			PageSize:  2,
			IsForward: true,
		})
		require.NoError(t, err)
		require.Len(t, infos, 2)
		assert.Equal(t, ids[1], infos[0].ID)
		assert.Equal(t, ids[2], infos[1].ID)

		infos, err = db.FindDocInfosByPaging(ctx, types.Paging[types.ID]{
			Offset:   ids[4],
			PageSize: 3,
		})
		require.NoError(t, err)
		require.Len(t, infos, 3)
		assert.Equal(t, ids[3], infos[0].ID)
		assert.Equal(t, ids[1], infos[2].ID)

		infos, err = db.FindDocInfosByPaging(ctx, types.Paging[types.ID]{PageSize: 1})
		require.NoError(t, err)
		require.Len(t, infos, 1)
		assert.Equal(t, ids[4], infos[0].ID)
	})
}

// RunReviewInfoTest runs the review session tests for the given db.
func RunReviewInfoTest(t *testing.T, db database.Database) {
	t.Run("create and find reviewInfo test", func(t *testing.T) {
		ctx := context.Background()
		now := gotime.Now().UTC().Truncate(gotime.Millisecond)
		docID := createDoc(t, db)

		_, err := db.FindActiveReviewInfo(ctx, docID)
		assert.ErrorIs(t, err, database.ErrReviewNotFound)

		info, err := db.CreateReviewInfo(ctx, newReviewInfo(docID, now))
		require.NoError(t, err)

		_, err = db.CreateReviewInfo(ctx, newReviewInfo(docID, now))
		assert.ErrorIs(t, err, types.ErrAlreadyReviewing)

		active, err := db.FindActiveReviewInfo(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, info.ID, active.ID)

		found, err := db.FindReviewInfoByID(ctx, info.ID)
		require.NoError(t, err)
		assert.Equal(t, types.ReviewInProgress, found.Status)
		assert.True(t, found.Deadline.Equal(now.Add(window)))

		_, err = db.FindReviewInfoByID(ctx, notExistID)
		assert.ErrorIs(t, err, database.ErrReviewNotFound)
	})

	t.Run("update reviewInfo with expected status test", func(t *testing.T) {
		ctx := context.Background()
		now := gotime.Now().UTC().Truncate(gotime.Millisecond)
		docID := createDoc(t, db)

		info, err := db.CreateReviewInfo(ctx, newReviewInfo(docID, now))
		require.NoError(t, err)

		info.Status = types.ReviewCompleted
		info.CompletedAt = now.Add(gotime.Hour)
		require.NoError(t, db.UpdateReviewInfo(ctx, info, types.ReviewInProgress))
		assert.ErrorIs(t, db.UpdateReviewInfo(ctx, info, types.ReviewInProgress), database.ErrConflictOnUpdate)

		// a terminal session frees the document for the next review.
		_, err = db.FindActiveReviewInfo(ctx, docID)
		assert.ErrorIs(t, err, database.ErrReviewNotFound)

		next, err := db.CreateReviewInfo(ctx, newReviewInfo(docID, now.Add(2*gotime.Hour)))
		require.NoError(t, err)

		infos, err := db.FindReviewInfosByDocID(ctx, docID)
		require.NoError(t, err)
		require.Len(t, infos, 2)
		assert.Equal(t, info.ID, infos[0].ID)
		assert.Equal(t, next.ID, infos[1].ID)
		assert.Equal(t, types.ReviewCompleted, infos[0].Status)
	})

	t.Run("FindExpiredReviewInfos test", func(t *testing.T) {
		ctx := context.Background()

		// far in the future so that sessions of other tests are not expired.
		base := gotime.Date(2300, 1, 1, 0, 0, 0, 0, gotime.UTC)
		var ids []types.ID
		for i := range 3 {
			info, err := db.CreateReviewInfo(ctx, newReviewInfo(createDoc(t, db), base.Add(gotime.Duration(i)*gotime.Hour)))
			require.NoError(t, err)
			ids = append(ids, info.ID)
		}

		infos, err := db.FindExpiredReviewInfos(ctx, base.Add(window).Add(-gotime.Second), 100)
		require.NoError(t, err)
		for _, info := range infos {
			assert.NotContains(t, ids, info.ID)
		}

		infos, err = db.FindExpiredReviewInfos(ctx, base.Add(window).Add(gotime.Hour), 100)
		require.NoError(t, err)
		var expired []types.ID
		for _, info := range infos {
			if info.Deadline.After(base) {
				expired = append(expired, info.ID)
			}
		}
		assert.Equal(t, ids[:2], expired)

		infos, err = db.FindExpiredReviewInfos(ctx, base.Add(window).Add(10*gotime.Hour), 1)
		require.NoError(t, err)
		assert.Len(t, infos, 1)
	})
}

// RunRevisionInfoTest runs the revision tests for the given db.
func RunRevisionInfoTest(t *testing.T, db database.Database) {
	t.Run("create and update revisionInfo test", func(t *testing.T) {
		ctx := context.Background()
		now := gotime.Now().UTC().Truncate(gotime.Millisecond)
		docID := createDoc(t, db)
		review, err := db.CreateReviewInfo(ctx, newReviewInfo(docID, now))
		require.NoError(t, err)

		suggestion := "B2"
		original := "B"
		var ids []types.ID
		for i := range 3 {
			info, err := db.CreateRevisionInfo(ctx, &database.RevisionInfo{
				ReviewID:   review.ID,
				DocumentID: docID,
				Title:      fmt.Sprintf("revision-%d", i),
				Content:    "A\nB2",
				Username:   "alice",
				Status:     types.RevisionPending,
				Comments: []*types.ReviewComment{{
					ID:              notExistID,
					LineStart:       2,
					LineEnd:         2,
					Type:            types.CommentInaccurate,
					Content:         "fix",
					Author:          "alice",
					SuggestedChange: &suggestion,
				}},
				Changes: []types.Change{{
					LineNumber: 2,
					Type:       types.ChangeModified,
					Original:   &original,
					Content:    suggestion,
				}},
				CreatedAt: now,
			})
			require.NoError(t, err)
			ids = append(ids, info.ID)
		}

		found, err := db.FindRevisionInfoByID(ctx, ids[0])
		require.NoError(t, err)
		require.Len(t, found.Comments, 1)
		assert.Equal(t, suggestion, *found.Comments[0].SuggestedChange)
		assert.Equal(t, original, *found.Changes[0].Original)

		_, err = db.FindRevisionInfoByID(ctx, notExistID)
		assert.ErrorIs(t, err, database.ErrRevisionNotFound)

		require.NoError(t, db.UpdateRevisionStatuses(ctx, review.ID, ids[1]))
		infos, err := db.FindRevisionInfosByReviewID(ctx, review.ID)
		require.NoError(t, err)
		require.Len(t, infos, 3)
		for _, info := range infos {
			if info.ID == ids[1] {
				assert.Equal(t, types.RevisionWinner, info.Status)
			} else {
				assert.Equal(t, types.RevisionRejected, info.Status)
			}
		}

		assert.ErrorIs(t, db.UpdateRevisionStatuses(ctx, review.ID, notExistID), database.ErrRevisionNotFound)
	})
}

// RunVoteInfoTest runs the vote tests for the given db.
func RunVoteInfoTest(t *testing.T, db database.Database) {
	t.Run("vote on document test", func(t *testing.T) {
		ctx := context.Background()
		now := gotime.Now().UTC().Truncate(gotime.Millisecond)
		docID := createDoc(t, db)

		vote := func(voter string, direction types.VoteDirection, reviewID types.ID) error {
			_, err := db.CreateVoteInfo(ctx, &database.VoteInfo{
				TargetType: types.VoteTargetDocument,
				TargetID:   docID,
				ReviewID:   reviewID,
				VoterID:    voter,
				Direction:  direction,
				CreatedAt:  now,
			})
			return err
		}

		// an unverified document is not open for votes.
		assert.ErrorIs(t, vote("alice", types.VoteUp, notExistID), database.ErrConflictOnUpdate)

		review, err := db.CreateReviewInfo(ctx, newReviewInfo(docID, now))
		require.NoError(t, err)
		doc, err := db.FindDocInfoByID(ctx, docID)
		require.NoError(t, err)
		doc.Status = types.DocumentVerifying
		doc.ReviewID = review.ID
		require.NoError(t, db.UpdateDocInfo(ctx, doc, types.DocumentUnverified))

		assert.NoError(t, vote("alice", types.VoteUp, review.ID))
		assert.NoError(t, vote("bob", types.VoteDown, review.ID))
		assert.NoError(t, vote("carol", types.VoteUp, review.ID))
		assert.ErrorIs(t, vote("alice", types.VoteDown, review.ID), types.ErrAlreadyVoted)

		doc, err = db.FindDocInfoByID(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, 2, doc.Upvotes)
		assert.Equal(t, 1, doc.Downvotes)

		// the next session of the same document opens a fresh ballot.
		review.Status = types.ReviewCancelled
		require.NoError(t, db.UpdateReviewInfo(ctx, review, types.ReviewInProgress))
		next, err := db.CreateReviewInfo(ctx, newReviewInfo(docID, now.Add(gotime.Minute)))
		require.NoError(t, err)
		doc.ReviewID = next.ID
		doc.Upvotes, doc.Downvotes = 0, 0
		require.NoError(t, db.UpdateDocInfo(ctx, doc, types.DocumentVerifying))

		assert.NoError(t, vote("alice", types.VoteDown, next.ID))
		assert.ErrorIs(t, vote("alice", types.VoteUp, next.ID), types.ErrAlreadyVoted)

		doc, err = db.FindDocInfoByID(ctx, docID)
		require.NoError(t, err)
		assert.Equal(t, 0, doc.Upvotes)
		assert.Equal(t, 1, doc.Downvotes)
	})

	t.Run("vote on revision test", func(t *testing.T) {
		ctx := context.Background()
		now := gotime.Now().UTC().Truncate(gotime.Millisecond)
		docID := createDoc(t, db)
		review, err := db.CreateReviewInfo(ctx, newReviewInfo(docID, now))
		require.NoError(t, err)

		revision, err := db.CreateRevisionInfo(ctx, &database.RevisionInfo{
			ReviewID:   review.ID,
			DocumentID: docID,
			Title:      t.Name(),
			Username:   "alice",
			Status:     types.RevisionPending,
			CreatedAt:  now,
		})
		require.NoError(t, err)

		vote := func(voter string, direction types.VoteDirection) error {
			_, err := db.CreateVoteInfo(ctx, &database.VoteInfo{
				TargetType: types.VoteTargetRevision,
				TargetID:   revision.ID,
				ReviewID:   review.ID,
				VoterID:    voter,
				Direction:  direction,
				CreatedAt:  now,
			})
			return err
		}

		assert.NoError(t, vote("bob", types.VoteDown))
		assert.NoError(t, vote("carol", types.VoteDown))
		assert.ErrorIs(t, vote("bob", types.VoteUp), types.ErrAlreadyVoted)

		found, err := db.FindRevisionInfoByID(ctx, revision.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, found.Upvotes)
		assert.Equal(t, 2, found.Downvotes)

		votes, err := db.FindVoteInfosByVoter(ctx, review.ID, "bob")
		require.NoError(t, err)
		require.Len(t, votes, 1)
		assert.Equal(t, types.VoteDown, votes[0].Direction)

		// a decided revision is closed for votes.
		require.NoError(t, db.UpdateRevisionStatuses(ctx, review.ID, revision.ID))
		assert.ErrorIs(t, vote("dave", types.VoteUp), database.ErrConflictOnUpdate)
	})
}

func createDoc(t *testing.T, db database.Database) types.ID {
	info, err := db.CreateDocInfo(
		context.Background(),
		database.NewDocInfo(t.Name(), "A\nB\nC", gotime.Now().UTC()),
	)
	require.NoError(t, err)
	return info.ID
}

func newReviewInfo(docID types.ID, startedAt gotime.Time) *database.ReviewInfo {
	return &database.ReviewInfo{
		DocumentID: docID,
		Status:     types.ReviewInProgress,
		StartedAt:  startedAt,
		Deadline:   startedAt.Add(window),
	}
}
