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

package backend

import (
	"fmt"
	"time"
)

// Config is the configuration for creating a Backend instance.
type Config struct {
	// ReviewWindow is the length of a review session. Default is "72h".
	ReviewWindow string `yaml:"ReviewWindow"`

	// CountdownTickInterval is the interval at which the countdowns of
	// watched reviews are pushed. Default is "1s".
	CountdownTickInterval string `yaml:"CountdownTickInterval"`

	// MaxWatchersPerReview is the maximum number of watch streams allowed
	// per review session. Zero means unlimited.
	MaxWatchersPerReview int `yaml:"MaxWatchersPerReview"`
}

// Validate validates this config.
func (c *Config) Validate() error {
	window, err := time.ParseDuration(c.ReviewWindow)
	if err != nil {
		return fmt.Errorf(
			`invalid argument "%s" for "--review-window" flag: %w`,
			c.ReviewWindow,
			err,
		)
	}
	if window <= 0 {
		return fmt.Errorf(`invalid argument "%s" for "--review-window" flag: must be positive`, c.ReviewWindow)
	}

	tick, err := time.ParseDuration(c.CountdownTickInterval)
	if err != nil {
		return fmt.Errorf(
			`invalid argument "%s" for "--countdown-tick-interval" flag: %w`,
			c.CountdownTickInterval,
			err,
		)
	}
	if tick <= 0 {
		return fmt.Errorf(
			`invalid argument "%s" for "--countdown-tick-interval" flag: must be positive`,
			c.CountdownTickInterval,
		)
	}

	if c.MaxWatchersPerReview < 0 {
		return fmt.Errorf(
			`invalid argument "%d" for "--max-watchers-per-review" flag: must not be negative`,
			c.MaxWatchersPerReview,
		)
	}

	return nil
}

// ParseReviewWindow returns the length of a review session.
func (c *Config) ParseReviewWindow() (time.Duration, error) {
	window, err := time.ParseDuration(c.ReviewWindow)
	if err != nil {
		return 0, fmt.Errorf("parse review window %s: %w", c.ReviewWindow, err)
	}

	return window, nil
}

// ParseCountdownTickInterval returns the countdown tick interval.
func (c *Config) ParseCountdownTickInterval() (time.Duration, error) {
	tick, err := time.ParseDuration(c.CountdownTickInterval)
	if err != nil {
		return 0, fmt.Errorf("parse countdown tick interval %s: %w", c.CountdownTickInterval, err)
	}

	return tick, nil
}
