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

// Package httphelper provides helper functions for the HTTP API.
package httphelper

import (
	"context"
	goerrors "errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/internal/validation"
	"github.com/quill-wiki/quill/pkg/countdown"
	"github.com/quill-wiki/quill/pkg/errors"
)

// StatusClientClosedRequest is returned when the client went away before the
// response was written.
const StatusClientClosedRequest = 499

// errorToStatus maps errors without a status to a status.
var errorToStatus = map[error]errors.StatusCode{
	countdown.ErrSchedulerClosed: errors.ErrCodeUnavailable,
}

// statusToHTTP maps a status of pkg/errors to an HTTP status code.
var statusToHTTP = map[errors.StatusCode]int{
	errors.ErrCodeInvalidArgument:    http.StatusBadRequest,
	errors.ErrCodeNotFound:           http.StatusNotFound,
	errors.ErrCodeAlreadyExists:      http.StatusConflict,
	errors.ErrCodeResourceExhausted:  http.StatusTooManyRequests,
	errors.ErrCodeFailedPrecondition: http.StatusConflict,
	errors.ErrCodeInternal:           http.StatusInternalServerError,
	errors.ErrCodeUnavailable:        http.StatusServiceUnavailable,
}

// HTTPStatusOf returns the HTTP status code of the given error.
func HTTPStatusOf(err error) int {
	if err == nil {
		return http.StatusOK
	}

	if goerrors.Is(err, context.Canceled) {
		return StatusClientClosedRequest
	}
	if goerrors.Is(err, context.DeadlineExceeded) {
		return http.StatusGatewayTimeout
	}

	var structErr *validation.StructError
	if goerrors.As(err, &structErr) {
		return http.StatusBadRequest
	}

	if code, ok := statusToHTTP[statusOf(err)]; ok {
		return code
	}

	return http.StatusInternalServerError
}

// ToErrorResponse returns the body describing the given error. The message
// of server errors is hidden from the client.
func ToErrorResponse(err error) types.ErrorResponse {
	var structErr *validation.StructError
	if goerrors.As(err, &structErr) {
		details := make(map[string]string, len(structErr.Violations))
		for _, violation := range structErr.Violations {
			details[violation.Field] = violation.Description
		}
		return types.ErrorResponse{
			Code:    "ErrValidation",
			Message: err.Error(),
			Details: details,
		}
	}

	status := statusOf(err)
	code := errors.CodeOf(err)
	if code == "" {
		code = status.String()
	}

	resp := types.ErrorResponse{
		Code:    code,
		Message: err.Error(),
		Details: errors.Metadata(err),
	}
	if HTTPStatusOf(err) >= http.StatusInternalServerError {
		resp.Message = http.StatusText(http.StatusInternalServerError)
		if status == errors.ErrCodeUnavailable {
			resp.Message = http.StatusText(http.StatusServiceUnavailable)
		}
		resp.Details = nil
	}

	return resp
}

// WriteError records err on the request for the logging middleware and
// writes it as the response.
func WriteError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.AbortWithStatusJSON(HTTPStatusOf(err), ToErrorResponse(err))
}

func statusOf(err error) errors.StatusCode {
	if status := errors.StatusOf(err); status != 0 {
		return status
	}

	for target, status := range errorToStatus {
		if goerrors.Is(err, target) {
			return status
		}
	}

	return errors.ErrCodeInternal
}
