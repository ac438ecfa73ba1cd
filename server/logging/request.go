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
	"time"

	"go.uber.org/zap"

	quillerrors "github.com/quill-wiki/quill/pkg/errors"
)

// RequestLogLevel represents the severity level for request logging.
type RequestLogLevel int

const (
	RequestLogDebug RequestLogLevel = iota
	RequestLogInfo
	RequestLogWarn
	RequestLogError
)

// String returns the string representation of RequestLogLevel.
func (l RequestLogLevel) String() string {
	switch l {
	case RequestLogDebug:
		return "debug"
	case RequestLogInfo:
		return "info"
	case RequestLogError:
		return "error"
	}
	return "warn"
}

// toRequestLogLevel determines the log level of a failed request from the
// status of its error.
func toRequestLogLevel(err error) RequestLogLevel {
	if err == nil {
		return RequestLogDebug
	}

	// the client went away.
	if errors.Is(err, context.Canceled) {
		return RequestLogDebug
	}

	switch quillerrors.StatusOf(err) {
	case quillerrors.ErrCodeInvalidArgument,
		quillerrors.ErrCodeNotFound,
		quillerrors.ErrCodeAlreadyExists:
		return RequestLogInfo
	case quillerrors.ErrCodeFailedPrecondition,
		quillerrors.ErrCodeResourceExhausted:
		return RequestLogWarn
	case quillerrors.ErrCodeInternal,
		quillerrors.ErrCodeUnavailable:
		return RequestLogError
	}

	// errors without a status are unexpected.
	return RequestLogError
}

// LogRequestError logs a failed request with the level of its error.
func LogRequestError(logger *zap.SugaredLogger, route string, duration time.Duration, err error) {
	const template = "HTTP: %q %s => %q"
	switch toRequestLogLevel(err) {
	case RequestLogDebug:
		logger.Debugf(template, route, duration, err)
	case RequestLogInfo:
		logger.Infof(template, route, duration, err)
	case RequestLogWarn:
		logger.Warnf(template, route, duration, err)
	default:
		logger.Errorf(template, route, duration, err)
	}
}

// LogRequestSuccess logs a successful request at debug level.
func LogRequestSuccess(logger *zap.SugaredLogger, route string, duration time.Duration) {
	logger.Debugf("HTTP: %q %s", route, duration)
}
