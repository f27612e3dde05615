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
	"encoding/json"
	"errors"
	"strings"

	"github.com/nuts-foundation/verifiedid-broker/storage"
)

// StatusPayload is the status of a request as reported to the poller.
type StatusPayload struct {
	Status         RequestStatus          `json:"status"`
	Message        string                 `json:"message"`
	Type           string                 `json:"type,omitempty"`
	Claims         map[string]interface{} `json:"claims,omitempty"`
	Subject        string                 `json:"subject,omitempty"`
	Payload        []ClaimsIssuer         `json:"payload,omitempty"`
	ExpirationDate string                 `json:"expirationDate,omitempty"`
	IssuanceDate   string                 `json:"issuanceDate,omitempty"`
	// Photo is a pointer so an empty photo is still reported for selfie_taken.
	Photo *string `json:"photo,omitempty"`
}

// Projector renders the stored state of a request into the payload that is reported to the poller.
type Projector struct {
	store storage.SessionStore
}

// NewProjector creates a Projector that reads from the given store.
func NewProjector(store storage.SessionStore) *Projector {
	return &Projector{store: store}
}

// Project returns the status of the request identified by the correlation token.
// Reading does not refresh the TTL of the record. A PollFailure is returned when the token is empty, unknown or expired,
// or when the record holds an unknown status.
func (p *Projector) Project(_ context.Context, token string) (StatusPayload, error) {
	if token == "" {
		return StatusPayload{}, PollFailure{class: ErrMissingID, Payload: StatusPayload{Status: StatusError, Message: "Missing argument 'id'"}}
	}
	var record StateRecord
	if err := p.store.Get(token, &record); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return StatusPayload{}, PollFailure{class: ErrInvalidState, Payload: StatusPayload{Status: StatusRequestNotCreated, Message: "No data"}}
		}
		return StatusPayload{}, err
	}
	switch record.Status {
	case StatusRequestCreated:
		return StatusPayload{Status: record.Status, Message: "Waiting to scan QR code"}, nil
	case StatusRequestRetrieved:
		return StatusPayload{Status: record.Status, Message: "QR code is scanned. Waiting for user action..."}, nil
	case StatusIssuanceSuccessful:
		return StatusPayload{Status: record.Status, Message: "Issuance successful"}, nil
	case StatusIssuanceError:
		event, err := record.callbackEvent()
		if err != nil {
			return StatusPayload{}, err
		}
		return StatusPayload{Status: record.Status, Message: "Issuance failed: " + event.errorMessage()}, nil
	case StatusPresentationError:
		event, err := record.callbackEvent()
		if err != nil {
			return StatusPayload{}, err
		}
		return StatusPayload{Status: record.Status, Message: "Presentation failed: " + event.errorMessage()}, nil
	case StatusPresentationVerified:
		event, err := record.callbackEvent()
		if err != nil {
			return StatusPayload{}, err
		}
		return projectPresentation(*event)
	case StatusSelfieTaken:
		event, err := record.callbackEvent()
		if err != nil {
			return StatusPayload{}, err
		}
		photo := event.Photo
		return StatusPayload{Status: record.Status, Message: "Selfie taken", Photo: &photo}, nil
	default:
		return StatusPayload{}, PollFailure{class: ErrUnknownStatus, Payload: StatusPayload{Status: StatusError, Message: "Invalid requestStatus '" + string(record.Status) + "'"}}
	}
}

func projectPresentation(event CallbackEvent) (StatusPayload, error) {
	if len(event.VerifiedCredentialsData) == 0 {
		return StatusPayload{}, newFailure(ErrMalformedInput, nil, "callback does not contain verified credentials")
	}
	first := event.VerifiedCredentialsData[0]
	result := StatusPayload{
		Status:  StatusPresentationVerified,
		Message: "Presentation verified",
		Claims:  first.Claims,
		Subject: event.Subject,
		Payload: event.VerifiedCredentialsData,
	}
	if len(first.Type) > 0 {
		result.Type = first.Type[len(first.Type)-1]
	}
	if strings.TrimSpace(first.ExpirationDate) != "" {
		result.ExpirationDate = first.ExpirationDate
	}
	if strings.TrimSpace(first.IssuanceDate) != "" {
		result.IssuanceDate = first.IssuanceDate
	}
	return result, nil
}

func (s StateRecord) callbackEvent() (*CallbackEvent, error) {
	if s.Callback == "" {
		return nil, newFailure(ErrMalformedInput, nil, "no callback stored for status '%s'", s.Status)
	}
	var event CallbackEvent
	if err := json.Unmarshal([]byte(s.Callback), &event); err != nil {
		return nil, newFailure(ErrMalformedInput, err, "invalid stored callback: %s", err)
	}
	return &event, nil
}

func (e CallbackEvent) errorMessage() string {
	if e.Error == nil {
		return ""
	}
	return e.Error.Message
}
