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

package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quill-wiki/quill/pkg/errors"
)

func TestStatusCode(t *testing.T) {
	tests := []struct {
		code   errors.StatusCode
		name   string
		client bool
	}{
		{errors.ErrCodeInvalidArgument, "invalid_argument", true},
		{errors.ErrCodeNotFound, "not_found", true},
		{errors.ErrCodeAlreadyExists, "already_exists", true},
		{errors.ErrCodeResourceExhausted, "resource_exhausted", true},
		{errors.ErrCodeFailedPrecondition, "failed_precondition", true},
		{errors.ErrCodeInternal, "internal", false},
		{errors.ErrCodeUnavailable, "unavailable", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.name, tt.code.String())
			assert.Equal(t, tt.client, tt.code.IsClientError())
			assert.Equal(t, !tt.client, tt.code.IsServerError())
		})
	}

	assert.Equal(t, "code_42", errors.StatusCode(42).String())
}

func TestStatusError(t *testing.T) {
	errAlready := errors.AlreadyExists("review already in progress").WithCode("ErrAlreadyReviewing")

	t.Run("wrapped status test", func(t *testing.T) {
		err := fmt.Errorf("start review of %s: %w", "doc-1", errAlready)
		assert.True(t, errors.Is(err, errAlready))
		assert.Equal(t, errors.ErrCodeAlreadyExists, errors.StatusOf(err))
		assert.Equal(t, "ErrAlreadyReviewing", errors.CodeOf(err))
		assert.True(t, errors.IsStatus(err, errors.ErrCodeAlreadyExists))
	})

	t.Run("plain error test", func(t *testing.T) {
		err := fmt.Errorf("boom")
		assert.Equal(t, errors.StatusCode(0), errors.StatusOf(err))
		assert.Empty(t, errors.CodeOf(err))
		assert.Equal(t, errors.ErrorInfo{}, errors.ErrorInfoOf(nil))
	})

	t.Run("WithCode does not alter the original test", func(t *testing.T) {
		base := errors.NotFound("gone")
		coded := base.WithCode("ErrGone")
		assert.Empty(t, base.Code())
		assert.Equal(t, "ErrGone", coded.Code())
	})
}

func TestMetadata(t *testing.T) {
	base := errors.InvalidArgument("validation failed").WithCode("ErrValidation")

	err := errors.WithMetadata(base, map[string]string{"field": "content"})
	err = errors.WithMetadata(fmt.Errorf("add comment: %w", err), map[string]string{"reason": "empty"})

	info := errors.ErrorInfoOf(err)
	assert.Equal(t, errors.ErrCodeInvalidArgument, info.Status)
	assert.Equal(t, "ErrValidation", info.Code)
	assert.Equal(t, "content", info.Metadata["field"])
	assert.Equal(t, "empty", info.Metadata["reason"])
	assert.True(t, info.IsClient())
	assert.True(t, errors.Is(err, base))

	assert.Nil(t, errors.WithMetadata(nil, map[string]string{"a": "b"}))
	assert.Equal(t, base, errors.WithMetadata(base, nil))
}
