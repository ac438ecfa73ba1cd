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

package backend_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quill-wiki/quill/server/backend"
)

func newValidBackendConf() backend.Config {
	return backend.Config{
		ReviewWindow:          "72h",
		CountdownTickInterval: "1s",
		MaxWatchersPerReview:  100,
	}
}

func TestConfig(t *testing.T) {
	t.Run("validate test", func(t *testing.T) {
		validConf := newValidBackendConf()
		assert.NoError(t, validConf.Validate())

		conf1 := validConf
		conf1.ReviewWindow = "3 days"
		assert.Error(t, conf1.Validate())

		conf2 := validConf
		conf2.ReviewWindow = "-1h"
		assert.Error(t, conf2.Validate())

		conf3 := validConf
		conf3.CountdownTickInterval = "0s"
		assert.Error(t, conf3.Validate())

		conf4 := validConf
		conf4.MaxWatchersPerReview = -1
		assert.Error(t, conf4.Validate())
	})

	t.Run("parse test", func(t *testing.T) {
		validConf := newValidBackendConf()

		window, err := validConf.ParseReviewWindow()
		require.NoError(t, err)
		assert.Equal(t, 72*time.Hour, window)

		tick, err := validConf.ParseCountdownTickInterval()
		require.NoError(t, err)
		assert.Equal(t, "1s", tick.String())
	})
}
