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

// Payload is a request that is sent to the Verified ID API for a new flow.
type Payload interface {
	// Kind returns the flow the payload initiates.
	Kind() FlowKind
	// SetState sets the correlation token, which the Verified ID API returns in every callback.
	SetState(state string)
}

var _ Payload = (*PresentationRequest)(nil)
var _ Payload = (*IssuanceRequest)(nil)

// PresentationRequest is the payload of createPresentationRequest.
type PresentationRequest struct {
	Authority            string                `json:"authority"`
	IncludeQRCode        bool                  `json:"includeQRCode"`
	Registration         Registration          `json:"registration"`
	Callback             Callback              `json:"callback"`
	IncludeReceipt       bool                  `json:"includeReceipt"`
	RequestedCredentials []RequestedCredential `json:"requestedCredentials"`
}

func (p *PresentationRequest) Kind() FlowKind {
	return PresentationFlow
}

func (p *PresentationRequest) SetState(state string) {
	p.Callback.State = state
}

// IssuanceRequest is the payload of createIssuanceRequest.
type IssuanceRequest struct {
	Authority      string                 `json:"authority"`
	IncludeQRCode  bool                   `json:"includeQRCode"`
	Registration   Registration           `json:"registration"`
	Callback       Callback               `json:"callback"`
	Type           string                 `json:"type"`
	Manifest       string                 `json:"manifest"`
	Pin            *Pin                   `json:"pin,omitempty"`
	Claims         map[string]interface{} `json:"claims,omitempty"`
	ExpirationDate string                 `json:"expirationDate,omitempty"`
}

func (i *IssuanceRequest) Kind() FlowKind {
	return IssuanceFlow
}

func (i *IssuanceRequest) SetState(state string) {
	i.Callback.State = state
}

// Registration gives the app a display name in the wallet.
type Registration struct {
	ClientName string `json:"clientName"`
	Purpose    string `json:"purpose,omitempty"`
}

// Callback defines where and how the Verified ID API reports progress of a request.
// Headers are sent back as HTTP headers in every callback.
type Callback struct {
	URL     string            `json:"url"`
	State   string            `json:"state"`
	Headers map[string]string `json:"headers,omitempty"`
}

// Pin is the PIN code the holder must enter during issuance.
// Value is a string, so it may have leading zeros.
type Pin struct {
	Value  string `json:"value"`
	Length int    `json:"length"`
}

// RequestedCredential is a credential asked for in a presentation request.
type RequestedCredential struct {
	Type            string         `json:"type"`
	Purpose         string         `json:"purpose,omitempty"`
	AcceptedIssuers []string       `json:"acceptedIssuers,omitempty"`
	Configuration   *Configuration `json:"configuration,omitempty"`
	Constraints     []Constraint   `json:"constraints,omitempty"`
}

// Configuration holds the validation settings of a requested credential.
type Configuration struct {
	Validation *Validation `json:"validation,omitempty"`
}

// Validation specifies how a presented credential is validated.
type Validation struct {
	AllowRevoked         bool       `json:"allowRevoked"`
	ValidateLinkedDomain bool       `json:"validateLinkedDomain"`
	FaceCheck            *FaceCheck `json:"faceCheck,omitempty"`
}

// FaceCheck asks the wallet to match the holder's face against a photo claim.
type FaceCheck struct {
	SourcePhotoClaimName     string `json:"sourcePhotoClaimName"`
	MatchConfidenceThreshold int    `json:"matchConfidenceThreshold"`
}

// Constraint restricts the accepted value of a claim. Exactly one of Values, Contains or StartsWith is set.
type Constraint struct {
	ClaimName  string   `json:"claimName"`
	Values     []string `json:"values,omitempty"`
	Contains   string   `json:"contains,omitempty"`
	StartsWith string   `json:"startsWith,omitempty"`
}
