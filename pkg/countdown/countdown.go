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

// Package countdown derives the human-readable time left until a review
// deadline and ticks every active countdown from a single shared scheduler.
package countdown

import (
	"fmt"
	"time"
)

// EndedMarker is the text of a countdown whose deadline has passed.
const EndedMarker = "ended"

// Remaining is the time left until a deadline.
type Remaining struct {
	Days       int  `json:"days"`
	Hours      int  `json:"hours"`
	Minutes    int  `json:"minutes"`
	Seconds    int  `json:"seconds"`
	TotalHours int  `json:"totalHours"`
	Ended      bool `json:"ended"`
}

// Until returns the time left from now until deadline. A deadline at or
// before now yields the ended marker. A partial second counts as a whole one,
// so a countdown that has not ended never reads zero.
func Until(deadline, now time.Time) Remaining {
	d := deadline.Sub(now)
	if d <= 0 {
		return Remaining{Ended: true}
	}

	total := int((d + time.Second - 1) / time.Second)
	totalHours := total / 3600
	return Remaining{
		Days:       totalHours / 24,
		Hours:      totalHours % 24,
		Minutes:    total % 3600 / 60,
		Seconds:    total % 60,
		TotalHours: totalHours,
	}
}

// String formats r as "D days H hours" once more than 24 hours are left and
// as "H hours M minutes S seconds" otherwise.
func (r Remaining) String() string {
	if r.Ended {
		return EndedMarker
	}

	if r.TotalHours > 24 {
		return fmt.Sprintf("%d days %d hours", r.Days, r.Hours)
	}
	return fmt.Sprintf("%d hours %d minutes %d seconds", r.TotalHours, r.Minutes, r.Seconds)
}
