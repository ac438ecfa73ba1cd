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
	"fmt"

	"github.com/quill-wiki/quill/pkg/errors"
)

var (
	// ErrValidation is returned when a mutation is refused because a field is
	// missing or malformed. The field is attached as "field" metadata.
	ErrValidation = errors.InvalidArgument("validation failed").WithCode("ErrValidation")

	// ErrInvalidTransition is returned when an operation is not allowed in the
	// current status of a document or review session.
	ErrInvalidTransition = errors.FailedPrecond("invalid transition").WithCode("ErrInvalidTransition")

	// ErrAlreadyReviewing is returned when a review is started on a document
	// that already has an active review session.
	ErrAlreadyReviewing = errors.AlreadyExists("document is already under review").WithCode("ErrAlreadyReviewing")

	// ErrNoSubmissions is returned when a review is completed without any
	// revision proposing a concrete edit.
	ErrNoSubmissions = errors.FailedPrecond("no eligible revisions submitted").WithCode("ErrNoSubmissions")

	// ErrAlreadyVoted is returned when a voter votes twice on the same target.
	ErrAlreadyVoted = errors.AlreadyExists("already voted").WithCode("ErrAlreadyVoted")
)

// NewValidationError returns an ErrValidation naming the offending field.
// reason is the human-readable description shown to the reviewer.
func NewValidationError(field, reason string) error {
	return errors.WithMetadata(
		fmt.Errorf("%s: %w", reason, ErrValidation),
		map[string]string{"field": field},
	)
}

// ValidationFieldOf returns the field named by a validation error, or "".
func ValidationFieldOf(err error) string {
	if !errors.Is(err, ErrValidation) {
		return ""
	}
	return errors.Metadata(err)["field"]
}
