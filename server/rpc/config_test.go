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

package rpc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quill-wiki/quill/server/rpc"
)

func TestConfig(t *testing.T) {
	newConfig := func() rpc.Config {
		return rpc.Config{
			Port:              11101,
			ReadHeaderTimeout: "5s",
			RequestsPerSecond: 10,
			RequestBurst:      20,
			LimiterCacheSize:  128,
		}
	}

	t.Run("validate test", func(t *testing.T) {
		conf := newConfig()
		assert.NoError(t, conf.Validate())

		conf.Port = -1
		assert.ErrorIs(t, conf.Validate(), rpc.ErrInvalidRPCPort)

		conf = newConfig()
		conf.CertFile = "noSuchCertFile"
		assert.ErrorIs(t, conf.Validate(), rpc.ErrInvalidCertFile)

		conf = newConfig()
		conf.KeyFile = "noSuchKeyFile"
		assert.ErrorIs(t, conf.Validate(), rpc.ErrInvalidKeyFile)

		conf = newConfig()
		conf.ReadHeaderTimeout = "5 seconds"
		assert.ErrorIs(t, conf.Validate(), rpc.ErrInvalidReadHeaderTimeout)
	})

	t.Run("validate rate limit test", func(t *testing.T) {
		conf := newConfig()
		conf.RequestsPerSecond = -1
		assert.ErrorIs(t, conf.Validate(), rpc.ErrInvalidRateLimit)

		conf = newConfig()
		conf.RequestBurst = 0
		assert.ErrorIs(t, conf.Validate(), rpc.ErrInvalidRateLimit)

		// the burst does not matter once rate limiting is off.
		conf.RequestsPerSecond = 0
		assert.NoError(t, conf.Validate())
	})
}
