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

package types

import "github.com/quill-wiki/quill/pkg/countdown"

// ErrorResponse is the body of a failed request of the HTTP API.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// ReviewResult is the state of a review after it was closed.
type ReviewResult struct {
	Document  *Document      `json:"document"`
	Session   *ReviewSession `json:"session"`
	Winner    *Revision      `json:"winner,omitempty"`
	Revisions []*Revision    `json:"revisions"`
}

// CountdownResponse is the time left in a review with its display text.
type CountdownResponse struct {
	countdown.Remaining
	Text string `json:"text"`
}

// NewCountdownResponse creates a CountdownResponse of r.
func NewCountdownResponse(r countdown.Remaining) CountdownResponse {
	return CountdownResponse{Remaining: r, Text: r.String()}
}

// SelectRequest is the body of a range selection.
type SelectRequest struct {
	LineStart int `json:"lineStart"`
	LineEnd   int `json:"lineEnd"`
}

// SelectResponse is the selected range with its default suggestion.
type SelectResponse struct {
	LineStart         int    `json:"lineStart"`
	LineEnd           int    `json:"lineEnd"`
	DefaultSuggestion string `json:"defaultSuggestion"`
}

// PreviewResponse is the document body with the pending suggestions applied.
type PreviewResponse struct {
	Preview string `json:"preview"`
}

// HealthResponse is the body of the health check.
type HealthResponse struct {
	Status string `json:"status"`
}
