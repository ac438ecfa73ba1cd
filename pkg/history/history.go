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

// Package history projects the review sessions of a document into a
// timeline with countdown and progress details.
package history

import (
	"cmp"
	"slices"
	"time"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/pkg/countdown"
)

// Entry is one review session of the timeline.
type Entry struct {
	Session       *types.ReviewSession `json:"session"`
	Active        bool                 `json:"active"`
	Remaining     countdown.Remaining  `json:"remaining"`
	Countdown     string               `json:"countdown"`
	Elapsed       time.Duration        `json:"elapsed"`
	Progress      float64              `json:"progress"`
	RevisionCount int                  `json:"revisionCount"`
}

// Build returns the sessions ordered by start time, oldest first, as seen at
// now. revisionCounts maps review IDs to their number of revisions and may be
// nil.
func Build(
	sessions []*types.ReviewSession,
	revisionCounts map[types.ID]int,
	now time.Time,
) []Entry {
	sorted := slices.Clone(sessions)
	slices.SortFunc(sorted, func(a, b *types.ReviewSession) int {
		return cmp.Or(
			a.StartedAt.Compare(b.StartedAt),
			cmp.Compare(a.ID, b.ID),
		)
	})

	entries := make([]Entry, 0, len(sorted))
	for _, session := range sorted {
		entries = append(entries, entryOf(session.DeepCopy(), revisionCounts[session.ID], now))
	}
	return entries
}

func entryOf(session *types.ReviewSession, revisions int, now time.Time) Entry {
	entry := Entry{
		Session:       session,
		Active:        session.IsActive(),
		RevisionCount: revisions,
	}

	if !entry.Active {
		end := session.Deadline
		if session.CompletedAt != nil {
			end = *session.CompletedAt
		}
		entry.Remaining = countdown.Remaining{Ended: true}
		entry.Elapsed = max(end.Sub(session.StartedAt), 0)
		entry.Progress = 1
	} else {
		entry.Remaining = countdown.Until(session.Deadline, now)
		entry.Elapsed = max(now.Sub(session.StartedAt), 0)
		entry.Progress = progress(entry.Elapsed, session.Window())
	}
	entry.Countdown = entry.Remaining.String()

	return entry
}

func progress(elapsed, window time.Duration) float64 {
	if window <= 0 || elapsed >= window {
		return 1
	}
	return float64(elapsed) / float64(window)
}
