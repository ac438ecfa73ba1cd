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

package verification_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/pkg/verification"
)

var now = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func unverified() *types.Document {
	return &types.Document{
		ID:        "000000000000000000000001",
		Body:      "A\nB\nC",
		Status:    types.DocumentUnverified,
		Upvotes:   4,
		Downvotes: 2,
	}
}

func started(t *testing.T, m *verification.Machine) (*types.Document, *types.ReviewSession) {
	doc := unverified()
	session, err := m.StartReview(doc, nil, now)
	require.NoError(t, err)
	session.ID = "000000000000000000000010"
	doc.ReviewID = session.ID
	return doc, session
}

func suggestion(reviewID types.ID, id string, up int, line int, text string) *types.Revision {
	return &types.Revision{
		ID:        types.ID(id),
		ReviewID:  reviewID,
		Status:    types.RevisionPending,
		CreatedAt: now,
		Votes:     types.Votes{Upvotes: up},
		Comments: []*types.ReviewComment{{
			LineStart:       line,
			LineEnd:         line,
			Type:            types.CommentInaccurate,
			Content:         "fix",
			SuggestedChange: &text,
		}},
	}
}

func TestStartReview(t *testing.T) {
	t.Run("opens a session with the default window test", func(t *testing.T) {
		m := verification.New(0)
		doc := unverified()

		session, err := m.StartReview(doc, nil, now)
		require.NoError(t, err)
		assert.Equal(t, types.DocumentVerifying, doc.Status)
		assert.Equal(t, now, *doc.VerificationStartedAt)
		assert.Equal(t, now.Add(72*time.Hour), *doc.VerificationEndAt)
		assert.Zero(t, doc.Upvotes)
		assert.Zero(t, doc.Downvotes)

		assert.Equal(t, types.ReviewInProgress, session.Status)
		assert.Equal(t, doc.ID, session.DocumentID)
		assert.Equal(t, *doc.VerificationEndAt, session.Deadline)
	})

	t.Run("configured window test", func(t *testing.T) {
		m := verification.New(time.Hour)
		doc := unverified()
		session, err := m.StartReview(doc, nil, now)
		require.NoError(t, err)
		assert.Equal(t, time.Hour, session.Window())
	})

	t.Run("already verifying test", func(t *testing.T) {
		m := verification.New(0)
		doc, session := started(t, m)

		_, err := m.StartReview(doc, session, now)
		assert.ErrorIs(t, err, types.ErrAlreadyReviewing)

		other := unverified()
		_, err = m.StartReview(other, session, now)
		assert.ErrorIs(t, err, types.ErrAlreadyReviewing)
	})

	t.Run("verified document test", func(t *testing.T) {
		m := verification.New(0)
		doc := unverified()
		doc.Status = types.DocumentVerified

		_, err := m.StartReview(doc, nil, now)
		assert.ErrorIs(t, err, types.ErrInvalidTransition)
		assert.Equal(t, types.DocumentVerified, doc.Status)
	})
}

func TestVote(t *testing.T) {
	m := verification.New(0)

	doc := unverified()
	assert.ErrorIs(t, m.Vote(doc, types.VoteUp), types.ErrInvalidTransition)

	doc, session := started(t, m)
	require.NoError(t, m.Vote(doc, types.VoteUp))
	require.NoError(t, m.Vote(doc, types.VoteUp))
	require.NoError(t, m.Vote(doc, types.VoteDown))
	assert.Equal(t, 2, doc.Upvotes)
	assert.Equal(t, 1, doc.Downvotes)
	assert.ErrorIs(t, m.Vote(doc, "sideways"), types.ErrValidation)

	revision := suggestion(session.ID, "r1", 0, 1, "X")
	require.NoError(t, m.VoteRevision(session, revision, types.VoteDown))
	assert.Equal(t, -1, revision.Votes.Net())

	foreign := suggestion("000000000000000000000099", "r2", 0, 1, "X")
	assert.ErrorIs(t, m.VoteRevision(session, foreign, types.VoteUp), types.ErrInvalidTransition)

	doc.Status = types.DocumentVerified
	assert.ErrorIs(t, m.Vote(doc, types.VoteUp), types.ErrInvalidTransition)
}

func TestCompleteReview(t *testing.T) {
	t.Run("merges the top ranked eligible revision test", func(t *testing.T) {
		m := verification.New(0)
		doc, session := started(t, m)

		revisions := []*types.Revision{
			suggestion(session.ID, "r1", 1, 1, "X"),
			suggestion(session.ID, "r2", 5, 2, "Y"),
			{ID: "r3", ReviewID: session.ID, Votes: types.Votes{Upvotes: 9}, Status: types.RevisionPending},
		}

		later := now.Add(time.Hour)
		outcome, err := m.CompleteReview(doc, session, revisions, later)
		require.NoError(t, err)

		assert.Equal(t, types.ID("r2"), outcome.Winner.ID)
		assert.Equal(t, "A\nY\nC", outcome.Body)
		assert.Equal(t, "A\nY\nC", doc.Body)
		assert.Equal(t, types.DocumentVerified, doc.Status)
		assert.Equal(t, types.ReviewCompleted, session.Status)
		assert.Equal(t, later, *session.CompletedAt)
		assert.Equal(t, types.ID("r2"), session.WinningRevisionID)

		assert.Equal(t, types.ID("r2"), outcome.Ranked[0].ID)
		assert.Equal(t, types.RevisionWinner, revisions[1].Status)
		assert.Equal(t, types.RevisionRejected, revisions[0].Status)
		assert.Equal(t, types.RevisionRejected, revisions[2].Status)
	})

	t.Run("no submissions leaves everything untouched test", func(t *testing.T) {
		m := verification.New(0)
		doc, session := started(t, m)
		before := doc.DeepCopy()

		_, err := m.CompleteReview(doc, session, nil, now)
		assert.ErrorIs(t, err, types.ErrNoSubmissions)
		assert.Equal(t, before, doc)
		assert.Equal(t, types.ReviewInProgress, session.Status)
	})

	t.Run("completed session cannot complete again test", func(t *testing.T) {
		m := verification.New(0)
		doc, session := started(t, m)
		revisions := []*types.Revision{suggestion(session.ID, "r1", 0, 1, "X")}
		_, err := m.CompleteReview(doc, session, revisions, now)
		require.NoError(t, err)

		_, err = m.CompleteReview(doc, session, revisions, now)
		assert.ErrorIs(t, err, types.ErrInvalidTransition)
	})
}

func TestCancelReview(t *testing.T) {
	m := verification.New(0)
	doc, session := started(t, m)

	require.NoError(t, m.CancelReview(doc, session, now.Add(72*time.Hour)))
	assert.Equal(t, types.ReviewCancelled, session.Status)
	assert.NotNil(t, session.CompletedAt)
	assert.Equal(t, types.DocumentUnverified, doc.Status)
	assert.Nil(t, doc.VerificationEndAt)

	assert.ErrorIs(t, m.CancelReview(doc, session, now), types.ErrInvalidTransition)

	_, err := m.StartReview(doc, session, now)
	assert.NoError(t, err)
}
