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

package mongo_test

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/v2/bson"

	"github.com/quill-wiki/quill/server/backend/database/mongo"
	"github.com/quill-wiki/quill/server/backend/database/testcases"
)

// setupTestClient dials the MongoDB given by QUILL_MONGO_URI with a fresh
// database. Tests are skipped if the variable is not set.
func setupTestClient(t *testing.T) *mongo.Client {
	uri := os.Getenv("QUILL_MONGO_URI")
	if uri == "" {
		t.Skip("QUILL_MONGO_URI is not set")
	}

	config := &mongo.Config{
		ConnectionTimeout: "5s",
		ConnectionURI:     uri,
		QuillDatabase:     "quill-test-" + bson.NewObjectID().Hex(),
		PingTimeout:       "5s",
		ReviewCacheSize:   100,
	}
	require.NoError(t, config.Validate())

	cli, err := mongo.Dial(config)
	require.NoError(t, err)
	t.Cleanup(func() {
		assert.NoError(t, cli.Close())
	})

	return cli
}

func TestClient(t *testing.T) {
	cli := setupTestClient(t)

	t.Run("RunFindDocInfo test", func(t *testing.T) {
		testcases.RunFindDocInfoTest(t, cli)
	})

	t.Run("RunFindDocInfosByPaging test", func(t *testing.T) {
		testcases.RunFindDocInfosByPagingTest(t, cli)
	})

	t.Run("RunReviewInfo test", func(t *testing.T) {
		testcases.RunReviewInfoTest(t, cli)
	})

	t.Run("RunRevisionInfo test", func(t *testing.T) {
		testcases.RunRevisionInfoTest(t, cli)
	})

	t.Run("RunVoteInfo test", func(t *testing.T) {
		testcases.RunVoteInfoTest(t, cli)
	})
}
