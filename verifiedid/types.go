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
	"encoding/json"
)

// FlowKind identifies which credential operation a callback belongs to.
type FlowKind int

const (
	// PresentationFlow is a verifiable presentation requested by this verifier.
	PresentationFlow FlowKind = iota + 1
	// IssuanceFlow is a credential issued by this issuer.
	IssuanceFlow
	// SelfieFlow is the local selfie capture step, which is not reported by the Verified ID API but by the browser.
	SelfieFlow
)

// RequestStatus is the status of a request as reported in callbacks and stored in the StateRecord.
type RequestStatus string

const (
	StatusRequestCreated       RequestStatus = "request_created"
	StatusRequestRetrieved     RequestStatus = "request_retrieved"
	StatusRequestNotCreated    RequestStatus = "request_not_created"
	StatusPresentationVerified RequestStatus = "presentation_verified"
	StatusPresentationError    RequestStatus = "presentation_error"
	StatusIssuanceSuccessful   RequestStatus = "issuance_successful"
	StatusIssuanceError        RequestStatus = "issuance_error"
	StatusSelfieTaken          RequestStatus = "selfie_taken"
	// StatusError is only reported by the status projector, it is never stored.
	StatusError RequestStatus = "error"
)

var allowedStatuses = map[FlowKind][]RequestStatus{
	PresentationFlow: {StatusRequestRetrieved, StatusPresentationVerified, StatusPresentationError},
	IssuanceFlow:     {StatusRequestRetrieved, StatusIssuanceSuccessful, StatusIssuanceError},
	SelfieFlow:       {StatusSelfieTaken},
}

// AllowedStatuses returns the request statuses a callback of this kind may report.
func (k FlowKind) AllowedStatuses() []RequestStatus {
	return allowedStatuses[k]
}

// Allows returns true if a callback of this kind may report the given status.
func (k FlowKind) Allows(status RequestStatus) bool {
	for _, curr := range allowedStatuses[k] {
		if curr == status {
			return true
		}
	}
	return false
}

// RequiresAPIKey returns whether callbacks of this kind must carry the configured API key.
func (k FlowKind) RequiresAPIKey() bool {
	return k != SelfieFlow
}

func (k FlowKind) String() string {
	switch k {
	case PresentationFlow:
		return "presentation"
	case IssuanceFlow:
		return "issuance"
	case SelfieFlow:
		return "selfie"
	default:
		return "unknown"
	}
}

// Terminal returns true if no further useful polling is expected after this status.
func (s RequestStatus) Terminal() bool {
	switch s {
	case StatusPresentationVerified, StatusPresentationError, StatusIssuanceSuccessful, StatusIssuanceError, StatusSelfieTaken:
		return true
	}
	return false
}

// StateRecord is the value stored per correlation token.
type StateRecord struct {
	Status  RequestStatus `json:"status"`
	Message string        `json:"message,omitempty"`
	// Expiry is the expiry of the request as stated by the Verified ID API, kept as received.
	Expiry string `json:"expiry,omitempty"`
	// Callback holds the raw body of the most recently received callback.
	Callback string `json:"callback,omitempty"`
}

// CallbackEvent is the body of a callback sent by the Verified ID API.
type CallbackEvent struct {
	RequestID               string          `json:"requestId"`
	RequestStatus           RequestStatus   `json:"requestStatus"`
	Error                   *CallbackError  `json:"error,omitempty"`
	State                   string          `json:"state"`
	Subject                 string          `json:"subject,omitempty"`
	VerifiedCredentialsData []ClaimsIssuer  `json:"verifiedCredentialsData,omitempty"`
	Receipt                 json.RawMessage `json:"receipt,omitempty"`
	Photo                   string          `json:"photo,omitempty"`
}

// CallbackError is set on a callback when the flow failed.
type CallbackError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ClaimsIssuer contains the details of a presented credential.
type ClaimsIssuer struct {
	Issuer           string                 `json:"issuer,omitempty"`
	Domain           string                 `json:"domain,omitempty"`
	Verified         string                 `json:"verified,omitempty"`
	Type             []string               `json:"type,omitempty"`
	Claims           map[string]interface{} `json:"claims,omitempty"`
	CredentialState  *CredentialState       `json:"credentialState,omitempty"`
	FaceCheck        *FaceCheckResult       `json:"faceCheck,omitempty"`
	DomainValidation *DomainValidation      `json:"domainValidation,omitempty"`
	ExpirationDate   string                 `json:"expirationDate,omitempty"`
	IssuanceDate     string                 `json:"issuanceDate,omitempty"`
}

// CredentialState holds the revocation status of a presented credential.
type CredentialState struct {
	RevocationStatus string `json:"revocationStatus,omitempty"`
}

// IsValid returns true if the credential is not revoked.
func (c CredentialState) IsValid() bool {
	return c.RevocationStatus == "VALID"
}

// DomainValidation holds the linked domain of the issuer.
type DomainValidation struct {
	URL string `json:"url,omitempty"`
}

// FaceCheckResult holds the outcome of a face check.
type FaceCheckResult struct {
	MatchConfidenceScore float64 `json:"matchConfidenceScore"`
}
