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

// Package drafts keeps the annotation passes of reviewers in memory until
// they are submitted as revisions. A pass is keyed by review and author and
// is bound to the document body read when it was opened.
package drafts

import (
	"context"
	"fmt"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/pkg/annotation"
	"github.com/quill-wiki/quill/server/backend"
)

// Selection is the active selection of a pass with the text that prefills
// the suggestion of the next comment.
type Selection struct {
	annotation.Selection
	DefaultSuggestion string `json:"defaultSuggestion"`
}

// Snapshot is the state of a pass.
type Snapshot struct {
	ReviewID   types.ID               `json:"reviewId"`
	DocumentID types.ID               `json:"documentId"`
	Author     string                 `json:"author"`
	Body       string                 `json:"body"`
	Selection  *Selection             `json:"selection,omitempty"`
	Comments   []*types.ReviewComment `json:"comments"`
	Preview    string                 `json:"preview"`
}

// Select makes the lines between a and b the active selection of the pass.
func Select(
	ctx context.Context,
	be *backend.Backend,
	reviewID types.ID,
	author string,
	a, b int,
) (*Selection, error) {
	var selection *Selection
	err := withDraft(ctx, be, reviewID, author, func(draft *backend.Draft) error {
		sel, err := draft.Store.SelectRange(a, b)
		if err != nil {
			return err
		}

		selection = &Selection{
			Selection:         sel,
			DefaultSuggestion: draft.Store.DefaultSuggestion(),
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return selection, nil
}

// Cancel discards the active selection of the pass.
func Cancel(
	ctx context.Context,
	be *backend.Backend,
	reviewID types.ID,
	author string,
) error {
	return withDraft(ctx, be, reviewID, author, func(draft *backend.Draft) error {
		draft.Store.CancelSelection()
		return nil
	})
}

// AddComment anchors a comment to the active selection of the pass.
func AddComment(
	ctx context.Context,
	be *backend.Backend,
	reviewID types.ID,
	author string,
	fields types.CommentFields,
) (*types.ReviewComment, error) {
	var comment *types.ReviewComment
	err := withDraft(ctx, be, reviewID, author, func(draft *backend.Draft) error {
		var err error
		comment, err = draft.Store.AddComment(author, fields)
		return err
	})
	if err != nil {
		return nil, err
	}

	return comment, nil
}

// DeleteComment removes a comment of the pass.
func DeleteComment(
	ctx context.Context,
	be *backend.Backend,
	reviewID types.ID,
	author string,
	commentID types.ID,
) error {
	return withDraft(ctx, be, reviewID, author, func(draft *backend.Draft) error {
		return draft.Store.DeleteComment(commentID)
	})
}

// Touching returns the comments of the pass whose range contains line.
func Touching(
	ctx context.Context,
	be *backend.Backend,
	reviewID types.ID,
	author string,
	line int,
) ([]*types.ReviewComment, error) {
	var comments []*types.ReviewComment
	err := withDraft(ctx, be, reviewID, author, func(draft *backend.Draft) error {
		if line < 1 || line > draft.Store.LineCount() {
			return types.NewValidationError(
				"line",
				fmt.Sprintf("line must be between 1 and %d", draft.Store.LineCount()),
			)
		}
		comments = draft.Store.CommentsTouching(line)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return comments, nil
}

// Preview returns the document body with the suggested changes of the pass
// applied.
func Preview(
	ctx context.Context,
	be *backend.Backend,
	reviewID types.ID,
	author string,
) (string, error) {
	var preview string
	err := withDraft(ctx, be, reviewID, author, func(draft *backend.Draft) error {
		var err error
		preview, err = draft.Store.Preview()
		return err
	})
	if err != nil {
		return "", err
	}

	return preview, nil
}

// GetSnapshot returns the whole state of the pass.
func GetSnapshot(
	ctx context.Context,
	be *backend.Backend,
	reviewID types.ID,
	author string,
) (*Snapshot, error) {
	var snapshot *Snapshot
	err := withDraft(ctx, be, reviewID, author, func(draft *backend.Draft) error {
		preview, err := draft.Store.Preview()
		if err != nil {
			return err
		}

		snapshot = &Snapshot{
			ReviewID:   reviewID,
			DocumentID: draft.DocumentID,
			Author:     author,
			Body:       draft.Store.Body(),
			Comments:   draft.Store.Comments(),
			Preview:    preview,
		}
		if sel, ok := draft.Store.Selection(); ok {
			snapshot.Selection = &Selection{
				Selection:         sel,
				DefaultSuggestion: draft.Store.DefaultSuggestion(),
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return snapshot, nil
}

// SubmitFunc persists the comments of a pass, and body is the text the pass
// was opened on.
type SubmitFunc func(documentID types.ID, body string, comments []*types.ReviewComment) error

// Submit hands the comments of the pass to submit. The pass is dropped only
// if submit succeeds, otherwise the pass is left as it was. Submitted
// comments stay locked in the next pass of the author.
func Submit(
	ctx context.Context,
	be *backend.Backend,
	reviewID types.ID,
	author string,
	submit SubmitFunc,
) error {
	key := backend.DraftKey{ReviewID: reviewID, Author: author}
	return withDraft(ctx, be, reviewID, author, func(draft *backend.Draft) error {
		if err := submit(draft.DocumentID, draft.Store.Body(), draft.Store.Comments()); err != nil {
			return err
		}

		drop(be, key)
		return nil
	})
}

// DropReview drops every pass of the review and returns how many were
// dropped.
func DropReview(be *backend.Backend, reviewID types.ID) int {
	dropped := 0
	for _, key := range be.Drafts.Keys() {
		if key.ReviewID == reviewID && drop(be, key) {
			dropped++
		}
	}
	return dropped
}

// withDraft runs fn on the locked pass of author, opening the pass if needed.
func withDraft(
	ctx context.Context,
	be *backend.Backend,
	reviewID types.ID,
	author string,
	fn func(draft *backend.Draft) error,
) error {
	draft, err := open(ctx, be, reviewID, author)
	if err != nil {
		return err
	}

	draft.Lock()
	defer draft.Unlock()
	return fn(draft)
}

// open returns the pass of author in the review. A new pass can only be
// opened while the review is in progress, and it starts with the comments
// author already submitted in the review locked against deletion.
func open(
	ctx context.Context,
	be *backend.Backend,
	reviewID types.ID,
	author string,
) (*backend.Draft, error) {
	if err := types.ValidateUsername(author); err != nil {
		return nil, err
	}

	key := backend.DraftKey{ReviewID: reviewID, Author: author}
	if draft, ok := be.Drafts.Get(key); ok {
		return draft, nil
	}

	reviewInfo, err := be.DB.FindReviewInfoByID(ctx, reviewID)
	if err != nil {
		return nil, err
	}
	if reviewInfo.Status != types.ReviewInProgress {
		return nil, fmt.Errorf("annotate %s review %s: %w", reviewInfo.Status, reviewID, types.ErrInvalidTransition)
	}

	docInfo, err := be.DB.FindDocInfoByID(ctx, reviewInfo.DocumentID)
	if err != nil {
		return nil, err
	}

	submitted, err := submittedCommentIDs(ctx, be, reviewID, author)
	if err != nil {
		return nil, err
	}

	draft, existed := be.Drafts.GetOrCreate(key, func() *backend.Draft {
		store := annotation.New(docInfo.Body, annotation.WithClock(be.Now))
		store.MarkSubmitted(submitted...)
		return &backend.Draft{
			DocumentID: docInfo.ID,
			Store:      store,
		}
	})
	if existed {
		return draft, nil
	}
	be.Metrics.SetOpenDrafts(be.Drafts.Len())

	// The review is closed before its passes are dropped, so a pass created
	// after the drop sees the closed status here.
	reviewInfo, err = be.DB.FindReviewInfoByID(ctx, reviewID)
	if err != nil {
		drop(be, key)
		return nil, err
	}
	if reviewInfo.Status != types.ReviewInProgress {
		drop(be, key)
		return nil, fmt.Errorf("annotate %s review %s: %w", reviewInfo.Status, reviewID, types.ErrInvalidTransition)
	}
	return draft, nil
}

// submittedCommentIDs returns the IDs of the comments author submitted in
// the review.
func submittedCommentIDs(
	ctx context.Context,
	be *backend.Backend,
	reviewID types.ID,
	author string,
) ([]types.ID, error) {
	infos, err := be.DB.FindRevisionInfosByReviewID(ctx, reviewID)
	if err != nil {
		return nil, err
	}

	var ids []types.ID
	for _, info := range infos {
		if info.Username != author {
			continue
		}
		for _, comment := range info.Comments {
			ids = append(ids, comment.ID)
		}
	}
	return ids, nil
}

func drop(be *backend.Backend, key backend.DraftKey) bool {
	deleted := be.Drafts.Delete(key, func(_ *backend.Draft, exists bool) bool {
		return exists
	})
	if deleted {
		be.Metrics.SetOpenDrafts(be.Drafts.Len())
	}
	return deleted
}
