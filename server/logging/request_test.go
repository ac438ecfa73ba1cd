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

package logging

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	quillerrors "github.com/quill-wiki/quill/pkg/errors"
)

func TestToRequestLogLevel(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected RequestLogLevel
	}{
		{
			name:     "nil error",
			err:      nil,
			expected: RequestLogDebug,
		},
		{
			name:     "context canceled",
			err:      fmt.Errorf("watch: %w", context.Canceled),
			expected: RequestLogDebug,
		},
		{
			name:     "invalid argument",
			err:      quillerrors.InvalidArgument("invalid"),
			expected: RequestLogInfo,
		},
		{
			name:     "not found",
			err:      fmt.Errorf("doc: %w", quillerrors.NotFound("not found")),
			expected: RequestLogInfo,
		},
		{
			name:     "already exists",
			err:      quillerrors.AlreadyExists("voted"),
			expected: RequestLogInfo,
		},
		{
			name:     "failed precondition",
			err:      quillerrors.FailedPrecond("not in review"),
			expected: RequestLogWarn,
		},
		{
			name:     "resource exhausted",
			err:      quillerrors.ResourceExhausted("slow down"),
			expected: RequestLogWarn,
		},
		{
			name:     "internal error",
			err:      quillerrors.Internal("internal"),
			expected: RequestLogError,
		},
		{
			name:     "unavailable",
			err:      quillerrors.Unavailable("unavailable"),
			expected: RequestLogError,
		},
		{
			name:     "error without status",
			err:      errors.New("regular error"),
			expected: RequestLogError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, toRequestLogLevel(tt.err))
		})
	}
}

func TestRequestLogLevel_String(t *testing.T) {
	tests := []struct {
		level    RequestLogLevel
		expected string
	}{
		{RequestLogDebug, "debug"},
		{RequestLogInfo, "info"},
		{RequestLogWarn, "warn"},
		{RequestLogError, "error"},
		{RequestLogLevel(999), "warn"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.level.String())
		})
	}
}

func TestSetLogFormat(t *testing.T) {
	assert.NoError(t, SetLogFormat("JSON"))
	assert.NoError(t, SetLogFormat("console"))
	assert.Error(t, SetLogFormat("xml"))
}
