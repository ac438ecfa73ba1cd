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

package database

import (
	"time"

	"github.com/quill-wiki/quill/api/types"
)

// DocInfo is a structure representing information of the document.
type DocInfo struct {
	// ID is the unique ID of the document.
	ID types.ID `bson:"_id"`

	// Title is the title of the document.
	Title string `bson:"title"`

	// Body is the text of the document.
	Body string `bson:"body"`

	// Status is the verification status of the document.
	Status types.DocumentStatus `bson:"status"`

	// Upvotes and Downvotes are the votes cast during the current review.
	Upvotes   int `bson:"upvotes"`
	Downvotes int `bson:"downvotes"`

	// ReviewID is the ID of the latest review session.
	ReviewID types.ID `bson:"review_id"`

	// VerificationStartedAt and VerificationEndAt bound the current review.
	// They are zero when the document is not under review.
	VerificationStartedAt time.Time `bson:"verification_started_at"`
	VerificationEndAt     time.Time `bson:"verification_end_at"`

	// CreatedAt is the time when the document is created.
	CreatedAt time.Time `bson:"created_at"`

	// UpdatedAt is the time when the document is updated.
	UpdatedAt time.Time `bson:"updated_at"`
}

// NewDocInfo returns a new unverified document.
func NewDocInfo(title, body string, now time.Time) *DocInfo {
	return &DocInfo{
		Title:     title,
		Body:      body,
		Status:    types.DocumentUnverified,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// DeepCopy returns a deep copy of the DocInfo.
func (i *DocInfo) DeepCopy() *DocInfo {
	if i == nil {
		return nil
	}

	clone := *i
	return &clone
}

// ToDocument converts the DocInfo to a types.Document.
func (i *DocInfo) ToDocument() *types.Document {
	return &types.Document{
		ID:                    i.ID,
		Title:                 i.Title,
		Body:                  i.Body,
		Status:                i.Status,
		Upvotes:               i.Upvotes,
		Downvotes:             i.Downvotes,
		ReviewID:              i.ReviewID,
		VerificationStartedAt: optionalTime(i.VerificationStartedAt),
		VerificationEndAt:     optionalTime(i.VerificationEndAt),
		CreatedAt:             i.CreatedAt,
		UpdatedAt:             i.UpdatedAt,
	}
}

// ApplyDocument copies the mutable fields of doc into the DocInfo.
func (i *DocInfo) ApplyDocument(doc *types.Document) {
	i.Body = doc.Body
	i.Status = doc.Status
	i.Upvotes = doc.Upvotes
	i.Downvotes = doc.Downvotes
	i.ReviewID = doc.ReviewID
	i.VerificationStartedAt = zeroTime(doc.VerificationStartedAt)
	i.VerificationEndAt = zeroTime(doc.VerificationEndAt)
	i.UpdatedAt = doc.UpdatedAt
}

func optionalTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func zeroTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}
