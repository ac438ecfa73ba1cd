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

package client

import (
	"net/http"
	"time"

	"go.uber.org/zap"
)

// Option configures Options.
type Option func(*Options)

// Options configures how we set up the client.
type Options struct {
	// User is the reviewer acting in every request.
	User string

	// HTTPClient is the client used to send requests.
	HTTPClient *http.Client

	// MaxRetries is the number of retries of a read request that failed with
	// a retryable status.
	MaxRetries uint64

	// BaseRetryInterval is the wait before the first retry. It doubles on
	// every retry up to MaxRetryInterval.
	BaseRetryInterval time.Duration

	// MaxRetryInterval is the longest wait between two retries.
	MaxRetryInterval time.Duration

	// Logger is the Logger of the client.
	Logger *zap.Logger
}

// WithUser configures the reviewer acting in every request.
func WithUser(user string) Option {
	return func(o *Options) { o.User = user }
}

// WithHTTPClient configures the HTTP client used to send requests.
func WithHTTPClient(httpClient *http.Client) Option {
	return func(o *Options) { o.HTTPClient = httpClient }
}

// WithMaxRetries configures the number of retries of read requests.
func WithMaxRetries(maxRetries uint64) Option {
	return func(o *Options) { o.MaxRetries = maxRetries }
}

// WithRetryInterval configures the waits between retries.
func WithRetryInterval(base, max time.Duration) Option {
	return func(o *Options) {
		o.BaseRetryInterval = base
		o.MaxRetryInterval = max
	}
}

// WithLogger configures the Logger of the client.
func WithLogger(logger *zap.Logger) Option {
	return func(o *Options) { o.Logger = logger }
}
