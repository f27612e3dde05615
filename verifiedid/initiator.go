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
	"fmt"
	"net/url"
	"time"

	"github.com/google/uuid"
	"github.com/nuts-foundation/verifiedid-broker/core"
	"github.com/nuts-foundation/verifiedid-broker/storage"
	"github.com/nuts-foundation/verifiedid-broker/verifiedid/log"
)

const messageWaitingForScan = "Waiting for QR code to be scanned"
const messageWaitingForSelfie = "Waiting for selfie"

// SelfieRequest is returned when a selfie capture request is created.
type SelfieRequest struct {
	ID     string `json:"id"`
	URL    string `json:"url"`
	Expiry int64  `json:"expiry"`
	Photo  string `json:"photo"`
}

// Initiator starts new flows: it registers a correlation token for every request that is created.
type Initiator struct {
	client  Client
	store   storage.SessionStore
	ttl     time.Duration
	metrics *Metrics
	now     func() time.Time
}

// NewInitiator creates an Initiator that registers correlation records in the given store.
// The ttl is only used to report the expiry of selfie requests, the store applies its own TTL.
func NewInitiator(client Client, store storage.SessionStore, ttl time.Duration, metrics *Metrics) *Initiator {
	return &Initiator{
		client:  client,
		store:   store,
		ttl:     ttl,
		metrics: metrics,
		now:     time.Now,
	}
}

// Initiate sends the payload to the Verified ID API with a fresh correlation token as state.
// On success, a record with status request_created is stored and the API response is returned with the token as "id".
// On failure nothing is stored; API rejections are returned as APIError.
func (i *Initiator) Initiate(ctx context.Context, payload Payload) (RequestResponse, error) {
	kind := payload.Kind()
	state := uuid.NewString()
	payload.SetState(state)

	start := i.now()
	var response RequestResponse
	var err error
	switch p := payload.(type) {
	case *PresentationRequest:
		response, err = i.client.CreatePresentationRequest(ctx, *p)
	case *IssuanceRequest:
		response, err = i.client.CreateIssuanceRequest(ctx, *p)
	default:
		return nil, fmt.Errorf("unsupported payload: %T", payload)
	}
	i.metrics.ObserveAPILatency(time.Since(start))
	if err != nil {
		i.metrics.IncrementInitiation(kind, outcomeFailed)
		return nil, err
	}

	record := StateRecord{
		Status:  StatusRequestCreated,
		Message: messageWaitingForScan,
		Expiry:  response.Expiry(),
	}
	if err := i.store.Put(state, record); err != nil {
		i.metrics.IncrementInitiation(kind, outcomeFailed)
		return nil, fmt.Errorf("unable to store request state: %w", err)
	}
	response["id"] = state
	i.metrics.IncrementInitiation(kind, outcomeAccepted)
	log.Logger().
		WithField(core.LogFieldState, state).
		WithField(core.LogFieldFlowKind, kind.String()).
		Debug("Request created")
	return response, nil
}

// InitiateSelfie creates a local selfie capture request. The browser uploads the photo to the returned URL.
func (i *Initiator) InitiateSelfie(_ context.Context, baseURL string) (*SelfieRequest, error) {
	state := uuid.NewString()
	record := StateRecord{
		Status:  StatusRequestCreated,
		Message: messageWaitingForSelfie,
	}
	if err := i.store.Put(state, record); err != nil {
		i.metrics.IncrementInitiation(SelfieFlow, outcomeFailed)
		return nil, fmt.Errorf("unable to store request state: %w", err)
	}
	i.metrics.IncrementInitiation(SelfieFlow, outcomeAccepted)
	callbackURL := baseURL + "/api/issuer/selfie/" + state
	return &SelfieRequest{
		ID:     state,
		URL:    baseURL + "/selfie.html?callbackUrl=" + url.QueryEscape(callbackURL),
		Expiry: i.now().Add(i.ttl).Unix(),
		Photo:  "",
	}, nil
}
