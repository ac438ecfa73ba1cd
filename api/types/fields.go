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
	"os"

	"github.com/quill-wiki/quill/internal/validation"
)

// DocumentFields is the set of fields used to create a document.
type DocumentFields struct {
	Title string `json:"title" validate:"required,nonblank,max=200"`
	Body  string `json:"body" validate:"required"`
}

// Validate validates the DocumentFields.
func (f *DocumentFields) Validate() error {
	return validation.ValidateStruct(f)
}

// CommentFields is the set of fields of a comment to be anchored to the
// active selection of an annotation pass.
type CommentFields struct {
	Type            CommentType `json:"type" validate:"required,comment_type"`
	Content         string      `json:"content" validate:"required,nonblank,max=500"`
	SuggestedChange *string     `json:"suggestedChange,omitempty"`
}

// Validate validates the CommentFields.
func (f *CommentFields) Validate() error {
	return validation.ValidateStruct(f)
}

// RevisionFields is the set of fields describing a submitted revision.
type RevisionFields struct {
	Title       string `json:"title" validate:"required,nonblank,max=120"`
	Description string `json:"description" validate:"max=2000"`
}

// Validate validates the RevisionFields.
func (f *RevisionFields) Validate() error {
	return validation.ValidateStruct(f)
}

// VoteFields is the set of fields of a vote request.
type VoteFields struct {
	Direction VoteDirection `json:"direction" validate:"required,vote_direction"`
}

// Validate validates the VoteFields.
func (f *VoteFields) Validate() error {
	return validation.ValidateStruct(f)
}

// ValidateUsername checks the name of the acting reviewer.
func ValidateUsername(username string) error {
	if err := validation.ValidateValue(username, "required,username,min=2,max=30"); err != nil {
		return NewValidationError("username", err.Error())
	}
	return nil
}

func init() {
	if err := validation.RegisterValidation("comment_type", func(level validation.FieldLevel) bool {
		return CommentType(level.Field().String()).Valid()
	}); err != nil {
		fmt.Fprintln(os.Stderr, "validation comment_type:", err)
		os.Exit(1)
	}
	if err := validation.RegisterTranslation(
		"comment_type",
		"{0} must be one of accurate, inaccurate, improvement or question",
	); err != nil {
		fmt.Fprintln(os.Stderr, "validation comment_type:", err)
		os.Exit(1)
	}

	if err := validation.RegisterValidation("vote_direction", func(level validation.FieldLevel) bool {
		return VoteDirection(level.Field().String()).Valid()
	}); err != nil {
		fmt.Fprintln(os.Stderr, "validation vote_direction:", err)
		os.Exit(1)
	}
	if err := validation.RegisterTranslation("vote_direction", "{0} must be up or down"); err != nil {
		fmt.Fprintln(os.Stderr, "validation vote_direction:", err)
		os.Exit(1)
	}
}
