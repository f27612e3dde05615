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
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	io_prometheus_client "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func counterValue(t *testing.T, counter prometheus.Counter) float64 {
	t.Helper()
	metric := &io_prometheus_client.Metric{}
	require.NoError(t, counter.Write(metric))
	return metric.GetCounter().GetValue()
}

func TestMetrics_IncrementCallback(t *testing.T) {
	t.Run("allowed status", func(t *testing.T) {
		metrics := NewMetrics()

		metrics.IncrementCallback(PresentationFlow, StatusPresentationVerified, outcomeAccepted)
		metrics.IncrementCallback(PresentationFlow, StatusPresentationVerified, outcomeAccepted)

		assert.Equal(t, 2.0, counterValue(t, metrics.Callbacks.WithLabelValues("presentation", "presentation_verified", "accepted")))
	})
	t.Run("status not allowed for the kind is recorded as unknown", func(t *testing.T) {
		metrics := NewMetrics()

		metrics.IncrementCallback(IssuanceFlow, StatusPresentationVerified, outcomeUnknownStatus)
		metrics.IncrementCallback(IssuanceFlow, "something-else", outcomeUnknownStatus)

		assert.Equal(t, 2.0, counterValue(t, metrics.Callbacks.WithLabelValues("issuance", "unknown", "unknown_status")))
	})
	t.Run("nil metrics", func(t *testing.T) {
		var metrics *Metrics

		assert.NotPanics(t, func() {
			metrics.IncrementCallback(PresentationFlow, StatusRequestRetrieved, outcomeAccepted)
			metrics.IncrementInitiation(PresentationFlow, outcomeAccepted)
			metrics.ObserveAPILatency(time.Second)
		})
	})
}

func TestMetrics_Reconciler(t *testing.T) {
	ctx := context.Background()
	_, store := newTestStore(t, time.Minute)
	metrics := NewMetrics()
	reconciler := NewReconciler(store, testAPIKey, metrics)
	createdRecord(t, store, "state-1")

	require.NoError(t, reconciler.Reconcile(ctx, PresentationFlow, testAPIKey, callbackBody("state-1", StatusRequestRetrieved)))
	_ = reconciler.Reconcile(ctx, PresentationFlow, "wrong", callbackBody("state-1", StatusRequestRetrieved))
	_ = reconciler.Reconcile(ctx, PresentationFlow, testAPIKey, callbackBody("state-2", StatusRequestRetrieved))

	assert.Equal(t, 1.0, counterValue(t, metrics.Callbacks.WithLabelValues("presentation", "request_retrieved", "accepted")))
	assert.Equal(t, 1.0, counterValue(t, metrics.Callbacks.WithLabelValues("presentation", "unknown", "unauthorized")))
	assert.Equal(t, 1.0, counterValue(t, metrics.Callbacks.WithLabelValues("presentation", "request_retrieved", "invalid_state")))
}

func TestMetrics_Register(t *testing.T) {
	metrics := NewMetrics()

	assert.NoError(t, metrics.Register())
	// second registration of equal collectors is ignored
	assert.NoError(t, NewMetrics().Register())
}
