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

package documents_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/api/types/events"
	"github.com/quill-wiki/quill/server/backend/database"
	"github.com/quill-wiki/quill/server/documents"
	"github.com/quill-wiki/quill/server/reviews"
	"github.com/quill-wiki/quill/test/helper"
)

func TestDocuments(t *testing.T) {
	ctx := context.Background()
	clock := helper.NewClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	be := helper.NewBackend(t, clock)

	t.Run("create and get document test", func(t *testing.T) {
		doc, err := documents.CreateDocument(ctx, be, types.DocumentFields{
			Title: "Go channels",
			Body:  "line one\nline two",
		})
		require.NoError(t, err)
		assert.Equal(t, types.DocumentUnverified, doc.Status)
		assert.Equal(t, clock.Now(), doc.CreatedAt)

		found, err := documents.GetDocument(ctx, be, doc.ID)
		require.NoError(t, err)
		assert.Equal(t, "line one\nline two", found.Body)
		assert.Equal(t, []string{"line one", "line two"}, found.Lines())
	})

	t.Run("create document with blank title test", func(t *testing.T) {
		_, err := documents.CreateDocument(ctx, be, types.DocumentFields{Title: "  ", Body: "x"})
		assert.Error(t, err)
	})

	t.Run("get missing document test", func(t *testing.T) {
		_, err := documents.GetDocument(ctx, be, types.ID("000000000000000000000000"))
		assert.ErrorIs(t, err, database.ErrDocumentNotFound)
	})

	t.Run("list documents test", func(t *testing.T) {
		for range 3 {
			_, err := documents.CreateDocument(ctx, be, types.DocumentFields{Title: t.Name(), Body: "x"})
			require.NoError(t, err)
		}

		page, err := documents.ListDocuments(ctx, be, types.Paging[types.ID]{PageSize: 2, IsForward: true})
		require.NoError(t, err)
		assert.Len(t, page, 2)

		next, err := documents.ListDocuments(ctx, be, types.Paging[types.ID]{
			Offset:    page[1].ID,
			PageSize:  2,
			IsForward: true,
		})
		require.NoError(t, err)
		require.NotEmpty(t, next)
		assert.NotEqual(t, page[1].ID, next[0].ID)
	})
}

func TestVoteDocument(t *testing.T) {
	ctx := context.Background()
	clock := helper.NewClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	be := helper.NewBackend(t, clock)

	t.Run("vote on unverified document test", func(t *testing.T) {
		info := helper.CreateDocInfo(t, be, "A")
		_, err := documents.VoteDocument(ctx, be, info.ID, "alice", types.VoteUp)
		assert.ErrorIs(t, err, types.ErrInvalidTransition)
	})

	t.Run("vote once per voter test", func(t *testing.T) {
		info := helper.CreateDocInfo(t, be, "A", "B")
		session, err := reviews.StartReview(ctx, be, info.ID)
		require.NoError(t, err)

		watch, err := reviews.WatchReview(ctx, be, session.ID, "watcher")
		require.NoError(t, err)
		defer watch.Close(ctx)

		doc, err := documents.VoteDocument(ctx, be, info.ID, "alice", types.VoteUp)
		require.NoError(t, err)
		assert.Equal(t, 1, doc.Upvotes)

		doc, err = documents.VoteDocument(ctx, be, info.ID, "bob", types.VoteDown)
		require.NoError(t, err)
		assert.Equal(t, 1, doc.Upvotes)
		assert.Equal(t, 1, doc.Downvotes)

		_, err = documents.VoteDocument(ctx, be, info.ID, "alice", types.VoteDown)
		assert.ErrorIs(t, err, types.ErrAlreadyVoted)

		event := <-watch.Events()
		assert.Equal(t, events.DocumentVotedEvent, event.Type)
		assert.Equal(t, "alice", event.Actor)
		assert.Equal(t, types.VoteUp, event.Direction)
	})

	t.Run("vote again after review restarted test", func(t *testing.T) {
		info := helper.CreateDocInfo(t, be, "A")
		first, err := reviews.StartReview(ctx, be, info.ID)
		require.NoError(t, err)
		_, err = documents.VoteDocument(ctx, be, info.ID, "alice", types.VoteUp)
		require.NoError(t, err)

		// no submissions, so the deadline cancels the session.
		clock.Advance(helper.ReviewWindow)
		result, err := reviews.FinalizeExpired(ctx, be, first.ID)
		require.NoError(t, err)
		assert.Equal(t, types.ReviewCancelled, result.Session.Status)
		assert.Equal(t, types.DocumentUnverified, result.Document.Status)

		second, err := reviews.StartReview(ctx, be, info.ID)
		require.NoError(t, err)
		assert.NotEqual(t, first.ID, second.ID)

		doc, err := documents.VoteDocument(ctx, be, info.ID, "alice", types.VoteDown)
		require.NoError(t, err)
		assert.Equal(t, 0, doc.Upvotes)
		assert.Equal(t, 1, doc.Downvotes)

		_, err = documents.VoteDocument(ctx, be, info.ID, "alice", types.VoteUp)
		assert.ErrorIs(t, err, types.ErrAlreadyVoted)
	})

	t.Run("vote with invalid input test", func(t *testing.T) {
		info := helper.CreateDocInfo(t, be, "A")
		_, err := reviews.StartReview(ctx, be, info.ID)
		require.NoError(t, err)

		_, err = documents.VoteDocument(ctx, be, info.ID, "alice", "sideways")
		assert.ErrorIs(t, err, types.ErrValidation)
		assert.Equal(t, "direction", types.ValidationFieldOf(err))

		_, err = documents.VoteDocument(ctx, be, info.ID, "", types.VoteUp)
		assert.Equal(t, "username", types.ValidationFieldOf(err))
	})
}
