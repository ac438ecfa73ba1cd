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

// Package reviews provides the lifecycle of review sessions: starting a
// review, closing it with or without a winner, and reading its countdown
// and history.
package reviews

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/api/types/events"
	"github.com/quill-wiki/quill/pkg/countdown"
	"github.com/quill-wiki/quill/pkg/history"
	"github.com/quill-wiki/quill/server/backend"
	"github.com/quill-wiki/quill/server/backend/database"
	"github.com/quill-wiki/quill/server/drafts"
	"github.com/quill-wiki/quill/server/logging"
)

const (
	// TriggerManual marks a review closed by a user.
	TriggerManual = "manual"

	// TriggerExpired marks a review closed by the housekeeping after its
	// deadline.
	TriggerExpired = "expired"
)

// StartReview puts the document under review and returns the new session.
func StartReview(
	ctx context.Context,
	be *backend.Backend,
	docID types.ID,
) (*types.ReviewSession, error) {
	unlock := be.LockDocument(ctx, docID)
	defer unlock()

	docInfo, err := be.DB.FindDocInfoByID(ctx, docID)
	if err != nil {
		return nil, err
	}

	var active *types.ReviewSession
	activeInfo, err := be.DB.FindActiveReviewInfo(ctx, docID)
	if err != nil && !errors.Is(err, database.ErrReviewNotFound) {
		return nil, err
	}
	if activeInfo != nil {
		active = activeInfo.ToSession()
	}

	now := be.Now()
	doc := docInfo.ToDocument()
	session, err := be.Machine.StartReview(doc, active, now)
	if err != nil {
		return nil, err
	}

	reviewInfo, err := be.DB.CreateReviewInfo(ctx, database.NewReviewInfo(session))
	if err != nil {
		return nil, err
	}

	doc.ReviewID = reviewInfo.ID
	docInfo.ApplyDocument(doc)
	if err := be.DB.UpdateDocInfo(ctx, docInfo, types.DocumentUnverified); err != nil {
		// the document moved on without us, so the session must not stay
		// open.
		reviewInfo.Status = types.ReviewCancelled
		reviewInfo.CompletedAt = now
		if cancelErr := be.DB.UpdateReviewInfo(ctx, reviewInfo, types.ReviewInProgress); cancelErr != nil {
			return nil, errors.Join(err, fmt.Errorf("cancel review %s: %w", reviewInfo.ID, cancelErr))
		}
		return nil, fmt.Errorf("start review of %s: %w", docID, err)
	}

	be.Metrics.AddReviewStarted()
	be.PubSub.Publish(ctx, events.ReviewEvent{
		Type:       events.ReviewStartedEvent,
		ReviewID:   reviewInfo.ID,
		DocumentID: docID,
		OccurredAt: now,
	})
	logging.From(ctx).Infof("review started: %s on %s until %s", reviewInfo.ID, docID, reviewInfo.Deadline)

	return reviewInfo.ToSession(), nil
}

// GetReview returns the review session of the given ID.
func GetReview(
	ctx context.Context,
	be *backend.Backend,
	reviewID types.ID,
) (*types.ReviewSession, error) {
	info, err := be.DB.FindReviewInfoByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	return info.ToSession(), nil
}

// Countdown returns the time left in the review session. It is ended for
// closed sessions.
func Countdown(
	ctx context.Context,
	be *backend.Backend,
	reviewID types.ID,
) (countdown.Remaining, error) {
	info, err := be.DB.FindReviewInfoByID(ctx, reviewID)
	if err != nil {
		return countdown.Remaining{}, err
	}

	if info.Status.IsTerminal() {
		return countdown.Remaining{Ended: true}, nil
	}
	return countdown.Until(info.Deadline, be.Now()), nil
}

// ReviewHistory returns the review sessions of the document, oldest first.
func ReviewHistory(
	ctx context.Context,
	be *backend.Backend,
	docID types.ID,
) ([]history.Entry, error) {
	if _, err := be.DB.FindDocInfoByID(ctx, docID); err != nil {
		return nil, err
	}

	infos, err := be.DB.FindReviewInfosByDocID(ctx, docID)
	if err != nil {
		return nil, err
	}

	sessions := make([]*types.ReviewSession, 0, len(infos))
	counts := make(map[types.ID]int, len(infos))
	for _, info := range infos {
		revisions, err := be.DB.FindRevisionInfosByReviewID(ctx, info.ID)
		if err != nil {
			return nil, err
		}

		sessions = append(sessions, info.ToSession())
		counts[info.ID] = len(revisions)
	}

	return history.Build(sessions, counts, be.Now()), nil
}

// CompleteReview selects the winner of the review and merges it into the
// document. It fails with types.ErrNoSubmissions if no revision proposes a
// change, leaving the review running.
func CompleteReview(
	ctx context.Context,
	be *backend.Backend,
	reviewID types.ID,
) (*types.ReviewResult, error) {
	return finalize(ctx, be, reviewID, TriggerManual)
}

// FinalizeExpired closes a review whose deadline has passed. Without an
// eligible revision the review is cancelled and the document returns to
// unverified.
func FinalizeExpired(
	ctx context.Context,
	be *backend.Backend,
	reviewID types.ID,
) (*types.ReviewResult, error) {
	return finalize(ctx, be, reviewID, TriggerExpired)
}

func finalize(
	ctx context.Context,
	be *backend.Backend,
	reviewID types.ID,
	trigger string,
) (*types.ReviewResult, error) {
	reviewInfo, err := be.DB.FindReviewInfoByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	unlock := be.LockDocument(ctx, reviewInfo.DocumentID)
	defer unlock()

	// read again, the review may have been closed while we were waiting.
	reviewInfo, err = be.DB.FindReviewInfoByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	docInfo, err := be.DB.FindDocInfoByID(ctx, reviewInfo.DocumentID)
	if err != nil {
		return nil, err
	}
	revisionInfos, err := be.DB.FindRevisionInfosByReviewID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	now := be.Now()
	doc := docInfo.ToDocument()
	session := reviewInfo.ToSession()
	revisions := make([]*types.Revision, 0, len(revisionInfos))
	for _, info := range revisionInfos {
		revisions = append(revisions, info.ToRevision())
	}

	if trigger == TriggerExpired && session.IsActive() && session.Deadline.After(now) {
		return nil, fmt.Errorf("finalize review %s before %s: %w", reviewID, session.Deadline, types.ErrInvalidTransition)
	}

	outcome, err := be.Machine.CompleteReview(doc, session, revisions, now)
	if errors.Is(err, types.ErrNoSubmissions) && trigger == TriggerExpired {
		if err := be.Machine.CancelReview(doc, session, now); err != nil {
			return nil, err
		}
		if err := persist(ctx, be, docInfo, reviewInfo, doc, session, ""); err != nil {
			return nil, err
		}

		closed(ctx, be, session, events.ReviewCancelledEvent, trigger, now)
		return &types.ReviewResult{Document: doc, Session: session, Revisions: revisions}, nil
	}
	if err != nil {
		return nil, err
	}

	if err := persist(ctx, be, docInfo, reviewInfo, doc, session, outcome.Winner.ID); err != nil {
		return nil, err
	}

	closed(ctx, be, session, events.ReviewCompletedEvent, trigger, now)
	return &types.ReviewResult{
		Document:  doc,
		Session:   session,
		Winner:    outcome.Winner,
		Revisions: outcome.Ranked,
	}, nil
}

// persist stores a closed session, the statuses of its revisions when there
// is a winner, and then the document. The caller holds the document lock.
func persist(
	ctx context.Context,
	be *backend.Backend,
	docInfo *database.DocInfo,
	reviewInfo *database.ReviewInfo,
	doc *types.Document,
	session *types.ReviewSession,
	winnerID types.ID,
) error {
	reviewInfo.ApplySession(session)
	if err := be.DB.UpdateReviewInfo(ctx, reviewInfo, types.ReviewInProgress); err != nil {
		return fmt.Errorf("close review %s: %w", session.ID, err)
	}

	if winnerID != "" {
		if err := be.DB.UpdateRevisionStatuses(ctx, session.ID, winnerID); err != nil {
			return fmt.Errorf("close review %s: %w", session.ID, err)
		}
	}

	docInfo.ApplyDocument(doc)
	if err := be.DB.UpdateDocInfo(ctx, docInfo, types.DocumentVerifying); err != nil {
		return fmt.Errorf("close review %s: %w", session.ID, err)
	}

	return nil
}

// closed drops what the review kept in memory and tells its watchers.
func closed(
	ctx context.Context,
	be *backend.Backend,
	session *types.ReviewSession,
	eventType events.ReviewEventType,
	trigger string,
	now time.Time,
) {
	drafts.DropReview(be, session.ID)

	be.Metrics.AddReviewFinished(session.Status, trigger)
	be.PubSub.Publish(ctx, events.ReviewEvent{
		Type:       eventType,
		ReviewID:   session.ID,
		DocumentID: session.DocumentID,
		RevisionID: session.WinningRevisionID,
		OccurredAt: now,
	})
	be.PubSub.Close(session.ID)

	logging.From(ctx).Infof("review %s: %s by %s", session.Status, session.ID, trigger)
}
