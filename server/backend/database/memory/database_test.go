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

package memory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/quill-wiki/quill/server/backend/database/memory"
	"github.com/quill-wiki/quill/server/backend/database/testcases"
)

func TestDB(t *testing.T) {
	db, err := memory.New()
	assert.NoError(t, err)

	t.Run("RunFindDocInfo test", func(t *testing.T) {
		testcases.RunFindDocInfoTest(t, db)
	})

	t.Run("RunFindDocInfosByPaging test", func(t *testing.T) {
		testcases.RunFindDocInfosByPagingTest(t, db)
	})

	t.Run("RunReviewInfo test", func(t *testing.T) {
		testcases.RunReviewInfoTest(t, db)
	})

	t.Run("RunRevisionInfo test", func(t *testing.T) {
		testcases.RunRevisionInfoTest(t, db)
	})

	t.Run("RunVoteInfo test", func(t *testing.T) {
		testcases.RunVoteInfoTest(t, db)
	})
}
