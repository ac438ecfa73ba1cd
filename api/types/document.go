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

package types

import (
	"strings"
	"time"
)

// DocumentStatus is the verification status of a document.
type DocumentStatus string

const (
	// DocumentUnverified is the status of a document that has not been
	// reviewed, or whose last review was cancelled.
	DocumentUnverified DocumentStatus = "unverified"

	// DocumentVerifying is the status of a document with an active review.
	DocumentVerifying DocumentStatus = "verifying"

	// DocumentVerified is the status of a document whose review completed
	// with a winning revision.
	DocumentVerified DocumentStatus = "verified"
)

// Document is a wiki article subject to the verification lifecycle.
type Document struct {
	ID        ID             `json:"id"`
	Title     string         `json:"title"`
	Body      string         `json:"body"`
	Status    DocumentStatus `json:"status"`
	Upvotes   int            `json:"upvotes"`
	Downvotes int            `json:"downvotes"`

	// ReviewID is the ID of the most recent review session, if any.
	ReviewID ID `json:"reviewId,omitempty"`

	VerificationStartedAt *time.Time `json:"verificationStartedAt,omitempty"`
	VerificationEndAt     *time.Time `json:"verificationEndAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Lines returns the body as the ordered list of lines used for annotating
// and patching.
func (d *Document) Lines() []string {
	return SplitLines(d.Body)
}

// DeepCopy returns a deep copy of the document.
func (d *Document) DeepCopy() *Document {
	if d == nil {
		return nil
	}

	clone := *d
	clone.VerificationStartedAt = copyTime(d.VerificationStartedAt)
	clone.VerificationEndAt = copyTime(d.VerificationEndAt)
	return &clone
}

// SplitLines splits text into lines on "\n". The empty text is one empty line.
func SplitLines(text string) []string {
	return strings.Split(text, "\n")
}

// JoinLines is the inverse of SplitLines.
func JoinLines(lines []string) string {
	return strings.Join(lines, "\n")
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
