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

// Package prometheus provides a Prometheus metrics exporter.
package prometheus

import (
	"fmt"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/quill-wiki/quill/api/types"
	"github.com/quill-wiki/quill/api/types/events"
	"github.com/quill-wiki/quill/internal/version"
)

const (
	namespace          = "quill"
	methodLabel        = "method"
	routeLabel         = "route"
	codeLabel          = "code"
	taskTypeLabel      = "task_type"
	outcomeLabel       = "outcome"
	triggerLabel       = "trigger"
	targetTypeLabel    = "target_type"
	directionLabel     = "direction"
	reviewEventLabel   = "review_event_type"
	serverVersionLabel = "server_version"
)

// Metrics manages the metric information that Quill is trying to measure.
type Metrics struct {
	registry *prometheus.Registry

	serverVersion *prometheus.GaugeVec

	httpHandledTotal    *prometheus.CounterVec
	httpResponseSeconds *prometheus.HistogramVec

	reviewsStartedTotal     prometheus.Counter
	reviewsFinishedTotal    *prometheus.CounterVec
	revisionsSubmittedTotal prometheus.Counter
	votesTotal              *prometheus.CounterVec
	openDrafts              prometheus.Gauge

	backgroundGoroutinesTotal *prometheus.GaugeVec

	watchReviewConnectionsTotal prometheus.Gauge
	watchReviewEventsTotal      *prometheus.CounterVec
}

// NewMetrics creates a new instance of Metrics.
func NewMetrics() (*Metrics, error) {
	reg := prometheus.NewRegistry()

	if err := reg.Register(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{})); err != nil {
		return nil, fmt.Errorf("register process collector: %w", err)
	}
	if err := reg.Register(collectors.NewGoCollector()); err != nil {
		return nil, fmt.Errorf("register go collector: %w", err)
	}

	metrics := &Metrics{
		registry: reg,
		serverVersion: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "server",
			Name:      "version",
			Help:      "Which version is running. 1 for 'server_version' label with current version.",
		}, []string{serverVersionLabel}),
		httpHandledTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "server_handled_total",
			Help:      "Total number of HTTP requests completed on the server, regardless of success or failure.",
		}, []string{methodLabel, routeLabel, codeLabel}),
		httpResponseSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "response_seconds",
			Help:      "The response time of HTTP requests.",
		}, []string{methodLabel, routeLabel}),
		reviewsStartedTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "review",
			Name:      "started_total",
			Help:      "The total count of review sessions started.",
		}),
		reviewsFinishedTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "review",
			Name:      "finished_total",
			Help:      "The total count of review sessions that reached a terminal status.",
		}, []string{outcomeLabel, triggerLabel}),
		revisionsSubmittedTotal: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "review",
			Name:      "revisions_submitted_total",
			Help:      "The total count of revisions submitted.",
		}),
		votesTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "review",
			Name:      "votes_total",
			Help:      "The total count of votes cast on documents and revisions.",
		}, []string{targetTypeLabel, directionLabel}),
		openDrafts: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "review",
			Name:      "open_drafts",
			Help:      "The number of draft annotation stores held in memory.",
		}),
		backgroundGoroutinesTotal: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "background",
			Name:      "goroutines_total",
			Help:      "The total number of goroutines attached by a particular background task.",
		}, []string{taskTypeLabel}),
		watchReviewConnectionsTotal: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "watchreview",
			Name:      "connections_total",
			Help:      "The number of open review watch streams.",
		}),
		watchReviewEventsTotal: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "watchreview",
			Name:      "events_total",
			Help:      "The total count of events sent to review watchers.",
		}, []string{reviewEventLabel}),
	}

	metrics.serverVersion.With(prometheus.Labels{
		serverVersionLabel: version.Version,
	}).Set(1)

	return metrics, nil
}

// ObserveHTTPRequest records a completed HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, route string, code int, seconds float64) {
	m.httpHandledTotal.With(prometheus.Labels{
		methodLabel: method,
		routeLabel:  route,
		codeLabel:   strconv.Itoa(code),
	}).Inc()
	m.httpResponseSeconds.With(prometheus.Labels{
		methodLabel: method,
		routeLabel:  route,
	}).Observe(seconds)
}

// AddReviewStarted counts a started review session.
func (m *Metrics) AddReviewStarted() {
	m.reviewsStartedTotal.Inc()
}

// AddReviewFinished counts a review session that reached status. trigger
// tells whether a user or the housekeeping finalized it.
func (m *Metrics) AddReviewFinished(status types.ReviewStatus, trigger string) {
	m.reviewsFinishedTotal.With(prometheus.Labels{
		outcomeLabel: string(status),
		triggerLabel: trigger,
	}).Inc()
}

// AddRevisionSubmitted counts a submitted revision.
func (m *Metrics) AddRevisionSubmitted() {
	m.revisionsSubmittedTotal.Inc()
}

// AddVote counts a vote.
func (m *Metrics) AddVote(targetType types.VoteTargetType, direction types.VoteDirection) {
	m.votesTotal.With(prometheus.Labels{
		targetTypeLabel: string(targetType),
		directionLabel:  string(direction),
	}).Inc()
}

// SetOpenDrafts sets the number of draft stores held in memory.
func (m *Metrics) SetOpenDrafts(count int) {
	m.openDrafts.Set(float64(count))
}

// AddBackgroundGoroutines adds the number of goroutines attached by a particular background task.
func (m *Metrics) AddBackgroundGoroutines(taskType string) {
	m.backgroundGoroutinesTotal.With(prometheus.Labels{
		taskTypeLabel: taskType,
	}).Inc()
}

// RemoveBackgroundGoroutines removes the number of goroutines attached by a particular background task.
func (m *Metrics) RemoveBackgroundGoroutines(taskType string) {
	m.backgroundGoroutinesTotal.With(prometheus.Labels{
		taskTypeLabel: taskType,
	}).Dec()
}

// AddWatchReviewConnections adds an open review watch stream.
func (m *Metrics) AddWatchReviewConnections() {
	m.watchReviewConnectionsTotal.Inc()
}

// RemoveWatchReviewConnections removes an open review watch stream.
func (m *Metrics) RemoveWatchReviewConnections() {
	m.watchReviewConnectionsTotal.Dec()
}

// AddWatchReviewEvents counts an event sent to a review watcher.
func (m *Metrics) AddWatchReviewEvents(eventType events.ReviewEventType) {
	m.watchReviewEventsTotal.With(prometheus.Labels{
		reviewEventLabel: string(eventType),
	}).Inc()
}

// RegisterCountdownWatchers exposes the number of active countdown watchers
// as reported by count.
func (m *Metrics) RegisterCountdownWatchers(count func() int) error {
	if err := m.registry.Register(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: "countdown",
		Name:      "watchers",
		Help:      "The number of active countdown watchers.",
	}, func() float64 {
		return float64(count())
	})); err != nil {
		return fmt.Errorf("register countdown watchers: %w", err)
	}
	return nil
}

// Registry returns the registry of this metrics.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}
