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

// Package revisions provides the operations on the revisions submitted
// during a review session.
package revisions

import (
	"context"
	"fmt"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/api/types/events"
	"github.com/quill-wiki/quill/pkg/patch"
	"github.com/quill-wiki/quill/pkg/ranking"
	"github.com/quill-wiki/quill/server/backend"
	"github.com/quill-wiki/quill/server/backend/database"
	"github.com/quill-wiki/quill/server/drafts"
	"github.com/quill-wiki/quill/server/logging"
)

// SubmitRevision turns the annotation pass of author into a revision of the
// review. The pass is consumed only if the revision is stored.
func SubmitRevision(
	ctx context.Context,
	be *backend.Backend,
	reviewID types.ID,
	author string,
	fields types.RevisionFields,
) (*types.Revision, error) {
	if err := types.ValidateUsername(author); err != nil {
		return nil, err
	}
	if err := fields.Validate(); err != nil {
		return nil, err
	}

	reviewInfo, err := be.DB.FindReviewInfoByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	unlock := be.LockDocument(ctx, reviewInfo.DocumentID)
	defer unlock()

	reviewInfo, err = be.DB.FindReviewInfoByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if reviewInfo.Status != types.ReviewInProgress {
		return nil, fmt.Errorf("submit to %s review %s: %w", reviewInfo.Status, reviewID, types.ErrInvalidTransition)
	}

	now := be.Now()
	var stored *database.RevisionInfo
	if err := drafts.Submit(ctx, be, reviewID, author, func(
		documentID types.ID,
		body string,
		comments []*types.ReviewComment,
	) error {
		if len(comments) == 0 {
			return types.NewValidationError("comments", "a revision needs at least one comment")
		}

		content, err := patch.Apply(body, comments)
		if err != nil {
			return err
		}
		changes, err := patch.Changes(body, comments)
		if err != nil {
			return err
		}

		stored, err = be.DB.CreateRevisionInfo(ctx, &database.RevisionInfo{
			ReviewID:    reviewID,
			DocumentID:  documentID,
			Title:       fields.Title,
			Description: fields.Description,
			Content:     content,
			Username:    author,
			Status:      types.RevisionPending,
			Comments:    comments,
			Changes:     changes,
			CreatedAt:   now,
		})
		return err
	}); err != nil {
		return nil, err
	}

	be.Metrics.AddRevisionSubmitted()
	be.PubSub.Publish(ctx, events.ReviewEvent{
		Type:       events.RevisionSubmittedEvent,
		ReviewID:   reviewID,
		DocumentID: stored.DocumentID,
		Actor:      author,
		RevisionID: stored.ID,
		OccurredAt: now,
	})
	logging.From(ctx).Infof("revision submitted: %s to %s by %s", stored.ID, reviewID, author)

	return stored.ToRevision(), nil
}

// ListRevisions returns the revisions of the review in rank order. If viewer
// is given, the vote of the viewer is filled in on every revision.
func ListRevisions(
	ctx context.Context,
	be *backend.Backend,
	docID types.ID,
	reviewID types.ID,
	viewer string,
) ([]*types.Revision, error) {
	reviewInfo, err := be.DB.FindReviewInfoByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if reviewInfo.DocumentID != docID {
		return nil, fmt.Errorf("review %s of document %s: %w", reviewID, docID, database.ErrReviewNotFound)
	}

	infos, err := be.DB.FindRevisionInfosByReviewID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	userVotes := make(map[types.ID]types.VoteDirection)
	if viewer != "" {
		votes, err := be.DB.FindVoteInfosByVoter(ctx, reviewID, viewer)
		if err != nil {
			return nil, err
		}
		for _, vote := range votes {
			userVotes[vote.TargetID] = vote.Direction
		}
	}

	revisions := make([]*types.Revision, 0, len(infos))
	for _, info := range infos {
		revision := info.ToRevision()
		if direction, ok := userVotes[revision.ID]; ok {
			revision.Votes.UserVote = &direction
		}
		revisions = append(revisions, revision)
	}

	return ranking.Rank(revisions), nil
}

// VoteRevision casts the vote of voter on a revision of an in-review
// session. A voter votes at most once per revision.
func VoteRevision(
	ctx context.Context,
	be *backend.Backend,
	revisionID types.ID,
	voter string,
	direction types.VoteDirection,
) (*types.Revision, error) {
	if err := types.ValidateUsername(voter); err != nil {
		return nil, err
	}

	revisionInfo, err := be.DB.FindRevisionInfoByID(ctx, revisionID)
	if err != nil {
		return nil, err
	}
	reviewInfo, err := be.DB.FindReviewInfoByID(ctx, revisionInfo.ReviewID)
	if err != nil {
		return nil, err
	}

	unlock := be.LockDocument(ctx, reviewInfo.DocumentID)
	defer unlock()

	reviewInfo, err = be.DB.FindReviewInfoByID(ctx, revisionInfo.ReviewID)
	if err != nil {
		return nil, err
	}
	if err := be.Machine.VoteRevision(reviewInfo.ToSession(), revisionInfo.ToRevision(), direction); err != nil {
		return nil, err
	}

	now := be.Now()
	if _, err := be.DB.CreateVoteInfo(ctx, &database.VoteInfo{
		TargetType: types.VoteTargetRevision,
		TargetID:   revisionID,
		ReviewID:   reviewInfo.ID,
		VoterID:    voter,
		Direction:  direction,
		CreatedAt:  now,
	}); err != nil {
		return nil, fmt.Errorf("vote on revision %s: %w", revisionID, err)
	}

	updated, err := be.DB.FindRevisionInfoByID(ctx, revisionID)
	if err != nil {
		return nil, err
	}

	be.Metrics.AddVote(types.VoteTargetRevision, direction)
	be.PubSub.Publish(ctx, events.ReviewEvent{
		Type:       events.RevisionVotedEvent,
		ReviewID:   reviewInfo.ID,
		DocumentID: reviewInfo.DocumentID,
		Actor:      voter,
		RevisionID: revisionID,
		Direction:  direction,
		OccurredAt: now,
	})

	revision := updated.ToRevision()
	revision.Votes.UserVote = &direction
	return revision, nil
}
