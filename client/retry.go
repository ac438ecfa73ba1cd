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
	"context"
	"errors"
	"math"
	"net/http"
	"syscall"
	"time"

	"go.uber.org/zap"
)

// withExponentialBackoff retries fn while it fails with a retryable status,
// waiting twice as long after each failure.
func (c *Client) withExponentialBackoff(ctx context.Context, fn func() (int, error)) error {
	var retries uint64
	for {
		statusCode, err := fn()
		if retries >= c.options.MaxRetries || !shouldRetry(statusCode, err) {
			return err
		}

		wait := waitInterval(retries, c.options.BaseRetryInterval, c.options.MaxRetryInterval)
		c.logger.Debug("retrying request", zap.Int("status", statusCode), zap.Duration("wait", wait))

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(wait):
		}

		retries++
	}
}

// waitInterval returns the interval of given retries. It is
// 2^retries * baseInterval, capped at maxInterval.
func waitInterval(retries uint64, baseInterval, maxInterval time.Duration) time.Duration {
	interval := time.Duration(math.Pow(2, float64(retries))) * baseInterval
	if maxInterval < interval {
		return maxInterval
	}

	return interval
}

// shouldRetry returns true if the given error should be retried.
func shouldRetry(statusCode int, err error) bool {
	// If the connection is reset, we should retry.
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.ECONNRESET
	}

	return statusCode == http.StatusServiceUnavailable ||
		statusCode == http.StatusGatewayTimeout ||
		statusCode == http.StatusTooManyRequests
}
