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
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"

	"github.com/nuts-foundation/verifiedid-broker/core"
	"github.com/nuts-foundation/verifiedid-broker/storage"
	"github.com/nuts-foundation/verifiedid-broker/verifiedid/log"
)

const base64Marker = ";base64,"

// Reconciler merges callbacks into the stored state of the request they belong to.
type Reconciler struct {
	store   storage.SessionStore
	apiKey  string
	metrics *Metrics
}

// NewReconciler creates a Reconciler that only accepts callbacks carrying the given API key.
func NewReconciler(store storage.SessionStore, apiKey string, metrics *Metrics) *Reconciler {
	return &Reconciler{store: store, apiKey: apiKey, metrics: metrics}
}

// Reconcile validates a callback of the given flow kind and stores its status and body in the record of its state.
// Only the most recent callback body is kept. If any check fails, nothing is changed.
func (r *Reconciler) Reconcile(ctx context.Context, kind FlowKind, apiKey string, body []byte) error {
	if kind.RequiresAPIKey() && !r.validAPIKey(apiKey) {
		log.Logger().Trace("api-key wrong or missing")
		r.metrics.IncrementCallback(kind, "", outcomeUnauthorized)
		return newFailure(ErrUnauthorized, nil, "api-key wrong or missing")
	}
	return r.reconcile(ctx, kind, body)
}

// ReconcileSelfie reconciles an uploaded selfie (a data URL) as a selfie_taken callback for the given correlation token.
func (r *Reconciler) ReconcileSelfie(ctx context.Context, id string, body []byte) error {
	idx := bytes.Index(body, []byte(base64Marker))
	if idx == -1 {
		r.metrics.IncrementCallback(SelfieFlow, StatusSelfieTaken, outcomeMalformed)
		return newFailure(ErrMalformedInput, nil, "Image must be data:image/jpeg;base64,")
	}
	event := CallbackEvent{
		RequestID:     id,
		State:         id,
		RequestStatus: StatusSelfieTaken,
		Photo:         string(body[idx+len(base64Marker):]),
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.reconcile(ctx, SelfieFlow, data)
}

func (r *Reconciler) reconcile(_ context.Context, kind FlowKind, body []byte) error {
	var event CallbackEvent
	if err := json.Unmarshal(body, &event); err != nil {
		r.metrics.IncrementCallback(kind, "", outcomeMalformed)
		return newFailure(ErrMalformedInput, err, "%s", err)
	}
	if !kind.Allows(event.RequestStatus) {
		r.metrics.IncrementCallback(kind, event.RequestStatus, outcomeUnknownStatus)
		return newFailure(ErrUnknownStatus, nil, "Unknown request status '%s'", event.RequestStatus)
	}
	logger := log.Logger().
		WithField(core.LogFieldState, event.State).
		WithField(core.LogFieldFlowKind, kind.String()).
		WithField(core.LogFieldRequestStatus, event.RequestStatus)

	var record StateRecord
	err := r.store.Update(event.State, &record, func() error {
		record.Status = event.RequestStatus
		record.Callback = string(body)
		return nil
	})
	if errors.Is(err, storage.ErrNotFound) {
		r.metrics.IncrementCallback(kind, event.RequestStatus, outcomeInvalidState)
		return newFailure(ErrInvalidState, err, "Invalid state '%s'", event.State)
	}
	if err != nil {
		r.metrics.IncrementCallback(kind, event.RequestStatus, outcomeFailed)
		logger.WithError(err).Error("Unable to store callback")
		return err
	}
	r.metrics.IncrementCallback(kind, event.RequestStatus, outcomeAccepted)
	logger.Debug("Callback reconciled")
	return nil
}

func (r *Reconciler) validAPIKey(apiKey string) bool {
	if r.apiKey == "" || apiKey == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(r.apiKey), []byte(apiKey)) == 1
}
