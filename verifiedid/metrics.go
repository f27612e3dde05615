/*
 * Copyright (C) 2026 Nuts community
 *
 * This program is free software: you can redistribute it and/or modify
 * it under the terms of the GNU General Public License as published by
 * the Free Software Foundation, either version 3 of the License, or
 * (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU General Public License
 * along with this program.  If not, see <https://www.gnu.org/licenses/>.
 *
 */

package verifiedid

import (
	"time"

	"github.com/nuts-foundation/verifiedid-broker/core"
	"github.com/prometheus/client_golang/prometheus"
)

const (
	outcomeAccepted      = "accepted"
	outcomeUnauthorized  = "unauthorized"
	outcomeMalformed     = "malformed"
	outcomeUnknownStatus = "unknown_status"
	outcomeInvalidState  = "invalid_state"
	outcomeFailed        = "failed"
)

// Metrics provides observability for request initiation and callback reconciliation.
type Metrics struct {
	// Callbacks counts callbacks by flow kind, reported status and outcome.
	Callbacks *prometheus.CounterVec
	// Initiations counts initiated requests by flow kind and outcome.
	Initiations *prometheus.CounterVec
	// APILatency is the duration of calls to the Verified ID API.
	APILatency prometheus.Histogram
}

// NewMetrics creates the metrics of the Verified ID engine. They still need to be registered.
func NewMetrics() *Metrics {
	return &Metrics{
		Callbacks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: core.MetricsNamespace,
			Name:      "callbacks_total",
			Help:      "Total callbacks received by flow kind, reported request status and outcome",
		}, []string{"kind", "status", "outcome"}),
		Initiations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: core.MetricsNamespace,
			Name:      "initiations_total",
			Help:      "Total initiated requests by flow kind and outcome",
		}, []string{"kind", "outcome"}),
		APILatency: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: core.MetricsNamespace,
			Name:      "api_request_duration_seconds",
			Help:      "Duration of calls to the Verified ID API",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// Register registers the metrics with the default prometheus registerer.
func (m *Metrics) Register() error {
	return core.RegisterCollectors(m.Callbacks, m.Initiations, m.APILatency)
}

// IncrementCallback records the outcome of a callback. Statuses that aren't allowed for the kind are recorded as "unknown",
// to keep the cardinality bounded.
func (m *Metrics) IncrementCallback(kind FlowKind, status RequestStatus, outcome string) {
	if m == nil {
		return
	}
	statusLabel := string(status)
	if !kind.Allows(status) {
		statusLabel = "unknown"
	}
	m.Callbacks.WithLabelValues(kind.String(), statusLabel, outcome).Inc()
}

// IncrementInitiation records the outcome of an initiated request.
func (m *Metrics) IncrementInitiation(kind FlowKind, outcome string) {
	if m != nil {
		m.Initiations.WithLabelValues(kind.String(), outcome).Inc()
	}
}

// ObserveAPILatency records the duration of a call to the Verified ID API.
func (m *Metrics) ObserveAPILatency(d time.Duration) {
	if m != nil {
		m.APILatency.Observe(d.Seconds())
	}
}
