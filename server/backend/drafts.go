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
	"sync"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/pkg/annotation"
)

// DraftKey identifies the annotation pass of one reviewer in a review.
type DraftKey struct {
	ReviewID types.ID
	Author   string
}

// String returns the string representation of the key.
func (k DraftKey) String() string {
	return fmt.Sprintf("%s/%s", k.ReviewID, k.Author)
}

// Draft is an annotation pass bound to the document body captured when it
// was opened. The store must only be used while the draft is locked.
type Draft struct {
	sync.Mutex

	DocumentID types.ID
	Store      *annotation.Store
}
