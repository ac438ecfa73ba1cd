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

package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/client"
	"github.com/quill-wiki/quill/server/rpc"
	"github.com/quill-wiki/quill/test/helper"
)

func TestMain(m *testing.M) {
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func newServer(t *testing.T) *httptest.Server {
	be := helper.NewBackend(t, helper.NewClock(time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)))
	server, err := rpc.NewServer(helper.RPCConfig(), be)
	require.NoError(t, err)

	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestClient(t *testing.T) {
	ctx := context.Background()
	ts := newServer(t)

	alice, err := client.Dial(ts.URL, client.WithUser("alice"))
	require.NoError(t, err)
	bob, err := client.Dial(ts.URL, client.WithUser("bob"))
	require.NoError(t, err)

	t.Run("dial invalid address test", func(t *testing.T) {
		_, err := client.Dial("http://")
		assert.ErrorIs(t, err, client.ErrInvalidAddr)
	})

	t.Run("review workflow test", func(t *testing.T) {
		require.NoError(t, alice.Health(ctx))

		doc, err := alice.CreateDocument(ctx, types.DocumentFields{Title: "Go errors", Body: "one\ntwo"})
		require.NoError(t, err)

		session, err := alice.StartReview(ctx, doc.ID)
		require.NoError(t, err)

		remaining, err := alice.Countdown(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, "3 days 0 hours", remaining.Text)

		sel, err := alice.Select(ctx, session.ID, 2, 2)
		require.NoError(t, err)
		assert.Equal(t, "two", sel.DefaultSuggestion)

		_, err = alice.AddComment(ctx, session.ID, types.CommentFields{
			Type:            types.CommentInaccurate,
			Content:         "should be 2",
			SuggestedChange: helper.Suggestion("2"),
		})
		require.NoError(t, err)

		preview, err := alice.Preview(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, "one\n2", preview)

		touching, err := alice.Touching(ctx, session.ID, 2)
		require.NoError(t, err)
		assert.Len(t, touching, 1)

		revision, err := alice.SubmitRevision(ctx, session.ID, types.RevisionFields{Title: "use digits"})
		require.NoError(t, err)

		voted, err := bob.VoteRevision(ctx, revision.ID, types.VoteUp)
		require.NoError(t, err)
		assert.Equal(t, 1, voted.Votes.Upvotes)

		_, err = bob.VoteRevision(ctx, revision.ID, types.VoteUp)
		assert.Equal(t, "ErrAlreadyVoted", client.CodeOf(err))

		_, err = bob.VoteDocument(ctx, doc.ID, types.VoteUp)
		require.NoError(t, err)

		revisions, err := bob.ListRevisions(ctx, doc.ID, session.ID)
		require.NoError(t, err)
		require.Len(t, revisions, 1)

		result, err := alice.CompleteReview(ctx, session.ID)
		require.NoError(t, err)
		assert.Equal(t, "one\n2", result.Document.Body)
		assert.Equal(t, types.DocumentVerified, result.Document.Status)

		entries, err := alice.ReviewHistory(ctx, doc.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, types.ReviewCompleted, entries[0].Session.Status)

		docs, err := alice.ListDocuments(ctx, "", 10, true)
		require.NoError(t, err)
		assert.Len(t, docs, 1)
	})

	t.Run("server error test", func(t *testing.T) {
		_, err := alice.GetDocument(ctx, types.ID("000000000000000000000000"))
		var statusErr *client.StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
		assert.Equal(t, "ErrDocumentNotFound", client.CodeOf(err))
	})
}

func TestRetry(t *testing.T) {
	ctx := context.Background()

	t.Run("retry read request test", func(t *testing.T) {
		var calls atomic.Int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if calls.Add(1) < 3 {
				w.WriteHeader(http.StatusServiceUnavailable)
				return
			}
			_, _ = w.Write([]byte(`{"status":"ok"}`))
		}))
		defer ts.Close()

		cli, err := client.Dial(ts.URL, client.WithRetryInterval(time.Millisecond, 5*time.Millisecond))
		require.NoError(t, err)
		assert.NoError(t, cli.Health(ctx))
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("give up after max retries test", func(t *testing.T) {
		var calls atomic.Int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusTooManyRequests)
		}))
		defer ts.Close()

		cli, err := client.Dial(
			ts.URL,
			client.WithMaxRetries(2),
			client.WithRetryInterval(time.Millisecond, time.Millisecond),
		)
		require.NoError(t, err)
		assert.Error(t, cli.Health(ctx))
		assert.Equal(t, int32(3), calls.Load())
	})

	t.Run("never retry mutations test", func(t *testing.T) {
		var calls atomic.Int32
		ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls.Add(1)
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer ts.Close()

		cli, err := client.Dial(ts.URL, client.WithRetryInterval(time.Millisecond, time.Millisecond))
		require.NoError(t, err)
		_, err = cli.StartReview(ctx, types.ID("000000000000000000000000"))
		assert.Error(t, err)
		assert.Equal(t, int32(1), calls.Load())
	})
}
