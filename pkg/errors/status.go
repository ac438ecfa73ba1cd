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

// Package errors provides status-coded errors shared by the Quill packages and
// the HTTP layer that reports them.
package errors

import "fmt"

// StatusCode classifies an error independently of the transport that reports
// it. The HTTP layer translates it into a response status.
type StatusCode int

const (
	// ErrCodeInvalidArgument means the caller sent a malformed request.
	ErrCodeInvalidArgument StatusCode = iota + 1

	// ErrCodeNotFound means the requested entity does not exist.
	ErrCodeNotFound

	// ErrCodeAlreadyExists means the entity, or an equivalent one, already exists.
	ErrCodeAlreadyExists

	// ErrCodeResourceExhausted means a quota or rate limit was hit.
	ErrCodeResourceExhausted

	// ErrCodeFailedPrecondition means the system is not in the state the
	// operation requires, e.g. voting on a verified document.
	ErrCodeFailedPrecondition

	// ErrCodeInternal means an invariant of the server was broken.
	ErrCodeInternal

	// ErrCodeUnavailable means a dependency is temporarily unreachable.
	ErrCodeUnavailable
)

// String returns the snake_case name of the code.
func (c StatusCode) String() string {
	switch c {
	case ErrCodeInvalidArgument:
		return "invalid_argument"
	case ErrCodeNotFound:
		return "not_found"
	case ErrCodeAlreadyExists:
		return "already_exists"
	case ErrCodeResourceExhausted:
		return "resource_exhausted"
	case ErrCodeFailedPrecondition:
		return "failed_precondition"
	case ErrCodeInternal:
		return "internal"
	case ErrCodeUnavailable:
		return "unavailable"
	default:
		return fmt.Sprintf("code_%d", int(c))
	}
}

// IsClientError returns true if the code blames the caller.
func (c StatusCode) IsClientError() bool {
	switch c {
	case ErrCodeInvalidArgument, ErrCodeNotFound, ErrCodeAlreadyExists,
		ErrCodeResourceExhausted, ErrCodeFailedPrecondition:
		return true
	default:
		return false
	}
}

// IsServerError returns true if the code blames the server.
func (c StatusCode) IsServerError() bool {
	return c == ErrCodeInternal || c == ErrCodeUnavailable
}
