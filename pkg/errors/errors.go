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

package errors

import (
	"errors"
)

// StatusError is an error carrying a StatusCode and an optional stable code
// string such as "ErrAlreadyReviewing" that clients can match on.
type StatusError interface {
	error
	Status() StatusCode
	Code() string
	WithCode(code string) StatusError
}

type statusError struct {
	err    error
	status StatusCode
	code   string
}

func (e statusError) Error() string {
	return e.err.Error()
}

func (e statusError) Status() StatusCode {
	return e.status
}

func (e statusError) Code() string {
	return e.code
}

func (e statusError) Unwrap() error {
	return e.err
}

// WithCode returns a copy of the error labelled with the given code.
func (e statusError) WithCode(code string) StatusError {
	e.code = code
	return e
}

func newStatusError(message string, status StatusCode) StatusError {
	return statusError{err: errors.New(message), status: status}
}

// InvalidArgument creates an error for a malformed request.
func InvalidArgument(message string) StatusError {
	return newStatusError(message, ErrCodeInvalidArgument)
}

// NotFound creates an error for a missing entity.
func NotFound(message string) StatusError {
	return newStatusError(message, ErrCodeNotFound)
}

// AlreadyExists creates an error for a duplicate entity.
func AlreadyExists(message string) StatusError {
	return newStatusError(message, ErrCodeAlreadyExists)
}

// ResourceExhausted creates an error for an exceeded limit.
func ResourceExhausted(message string) StatusError {
	return newStatusError(message, ErrCodeResourceExhausted)
}

// FailedPrecond creates an error for an operation attempted in the wrong state.
func FailedPrecond(message string) StatusError {
	return newStatusError(message, ErrCodeFailedPrecondition)
}

// Internal creates an error for an unexpected server-side failure.
func Internal(message string) StatusError {
	return newStatusError(message, ErrCodeInternal)
}

// Unavailable creates an error for a dependency that cannot be reached.
func Unavailable(message string) StatusError {
	return newStatusError(message, ErrCodeUnavailable)
}

// StatusOf returns the status of the first StatusError in err's chain, or 0
// if there is none.
func StatusOf(err error) StatusCode {
	var statusErr StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Status()
	}
	return 0
}

// CodeOf returns the code of the first StatusError in err's chain.
func CodeOf(err error) string {
	var statusErr StatusError
	if errors.As(err, &statusErr) {
		return statusErr.Code()
	}
	return ""
}

// IsStatus reports whether err carries the given status.
func IsStatus(err error, status StatusCode) bool {
	return StatusOf(err) == status
}

// ErrorInfo summarizes an error for logs and responses.
type ErrorInfo struct {
	Status   StatusCode
	Code     string
	Message  string
	Metadata map[string]string
}

// IsClient reports whether the error is the caller's fault.
func (i ErrorInfo) IsClient() bool {
	return i.Status.IsClientError()
}

// ErrorInfoOf collects the status, code, message and metadata of err.
func ErrorInfoOf(err error) ErrorInfo {
	if err == nil {
		return ErrorInfo{}
	}

	return ErrorInfo{
		Status:   StatusOf(err),
		Code:     CodeOf(err),
		Message:  err.Error(),
		Metadata: Metadata(err),
	}
}

// Is is a shortcut for the standard errors.Is.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As is a shortcut for the standard errors.As.
func As(err error, target any) bool {
	return errors.As(err, target)
}
