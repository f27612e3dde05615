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
	"crypto/rand"
	"math/big"
	"strings"
)

// apiKeyHeader is the header that carries the API key in callbacks.
const apiKeyHeader = "api-key"

// Settings are the request independent values of outbound payloads.
type Settings struct {
	Authority          string
	ClientName         string
	Purpose            string
	IncludeQRCode      bool
	IncludeReceipt     bool
	CredentialType     string
	CredentialManifest string
	UseFaceCheck       bool
	PhotoClaimName     string
	FaceCheckThreshold int
	PinLength          int
	Claims             map[string]string
	ExpirationDate     string
	APIKey             string
}

func settingsFromConfig(config Config, apiKey string) Settings {
	return Settings{
		Authority:          config.DIDAuthority,
		ClientName:         config.ClientName,
		Purpose:            config.Purpose,
		IncludeQRCode:      config.IncludeQRCode,
		IncludeReceipt:     config.IncludeReceipt,
		CredentialType:     config.CredentialType,
		CredentialManifest: config.CredentialManifest,
		UseFaceCheck:       config.UseFaceCheck,
		PhotoClaimName:     config.PhotoClaimName,
		FaceCheckThreshold: config.FaceCheckThreshold,
		PinLength:          config.IssuancePinLength,
		Claims:             config.IssuanceClaims,
		ExpirationDate:     config.IssuanceExpirationDate,
		APIKey:             apiKey,
	}
}

// PresentationOptions customizes a presentation request.
type PresentationOptions struct {
	// CredentialType overrides the configured credential type.
	CredentialType string
	// FaceCheck asks for a face check, regardless of the configuration.
	FaceCheck bool
	// PhotoClaimName overrides the configured photo claim name.
	PhotoClaimName  string
	AcceptedIssuers []string
	Constraints     []Constraint
}

func (s Settings) callback(url string) Callback {
	return Callback{
		URL:     url,
		Headers: map[string]string{apiKeyHeader: s.APIKey},
	}
}

// BuildPresentationRequest builds a presentation request for a single credential.
// The state of the callback is left empty; it is set when the request is initiated.
func BuildPresentationRequest(settings Settings, callbackURL string, options PresentationOptions) PresentationRequest {
	credentialType := options.CredentialType
	if credentialType == "" {
		credentialType = settings.CredentialType
	}
	request := PresentationRequest{
		Authority:     settings.Authority,
		IncludeQRCode: settings.IncludeQRCode,
		Registration: Registration{
			ClientName: settings.ClientName,
			Purpose:    settings.Purpose,
		},
		Callback:       settings.callback(callbackURL),
		IncludeReceipt: settings.IncludeReceipt,
		RequestedCredentials: []RequestedCredential{
			{
				Type:            credentialType,
				AcceptedIssuers: options.AcceptedIssuers,
				Configuration: &Configuration{
					Validation: &Validation{
						AllowRevoked:         true,
						ValidateLinkedDomain: false,
					},
				},
				Constraints: options.Constraints,
			},
		},
	}
	if !HasFaceCheck(request) && (options.FaceCheck || settings.UseFaceCheck) {
		photoClaimName := options.PhotoClaimName
		if photoClaimName == "" {
			photoClaimName = settings.PhotoClaimName
		}
		AddFaceCheck(&request, "", photoClaimName, settings.FaceCheckThreshold)
	}
	return request
}

// AddFaceCheck asks for a face check on every requested credential of the given type, or on all requested credentials
// if credentialType is empty. Receipts are not supported in combination with face checks, so they're disabled.
func AddFaceCheck(request *PresentationRequest, credentialType string, photoClaimName string, threshold int) {
	if photoClaimName == "" {
		photoClaimName = defaultPhotoClaimName
	}
	if threshold <= 0 {
		threshold = defaultFaceCheckThreshold
	}
	for i := range request.RequestedCredentials {
		requested := &request.RequestedCredentials[i]
		if credentialType != "" && requested.Type != credentialType {
			continue
		}
		if requested.Configuration == nil {
			requested.Configuration = &Configuration{}
		}
		if requested.Configuration.Validation == nil {
			requested.Configuration.Validation = &Validation{}
		}
		requested.Configuration.Validation.FaceCheck = &FaceCheck{
			SourcePhotoClaimName:     photoClaimName,
			MatchConfidenceThreshold: threshold,
		}
		request.IncludeReceipt = false
	}
}

// HasFaceCheck returns true if any of the requested credentials asks for a face check.
func HasFaceCheck(request PresentationRequest) bool {
	for _, requested := range request.RequestedCredentials {
		if requested.Configuration != nil && requested.Configuration.Validation != nil && requested.Configuration.Validation.FaceCheck != nil {
			return true
		}
	}
	return false
}

// ParseConstraint creates a constraint from its name, operator and value as entered in the UI.
// The "value" operator accepts multiple values separated by ';'. It returns nil if name or value is empty.
func ParseConstraint(name string, op string, value string) *Constraint {
	if name == "" || value == "" {
		return nil
	}
	result := Constraint{ClaimName: name}
	switch op {
	case "contains":
		result.Contains = value
	case "startsWith":
		result.StartsWith = value
	default:
		result.Values = strings.Split(value, ";")
	}
	return &result
}

// BuildIssuanceRequest builds an issuance request. The configured claims are overridden by claimOverrides,
// keys that are not configured are ignored. If a PIN length is configured, a random PIN code is generated.
func BuildIssuanceRequest(settings Settings, callbackURL string, claimOverrides map[string]string) (IssuanceRequest, error) {
	request := IssuanceRequest{
		Authority:     settings.Authority,
		IncludeQRCode: settings.IncludeQRCode,
		Registration: Registration{
			ClientName: settings.ClientName,
		},
		Callback:       settings.callback(callbackURL),
		Type:           settings.CredentialType,
		Manifest:       settings.CredentialManifest,
		ExpirationDate: settings.ExpirationDate,
	}
	if len(settings.Claims) > 0 {
		request.Claims = make(map[string]interface{}, len(settings.Claims))
		for key, value := range settings.Claims {
			if override, ok := claimOverrides[key]; ok && override != "" {
				value = override
			}
			request.Claims[key] = value
		}
	}
	if settings.PinLength > 0 {
		pin, err := generatePin(settings.PinLength)
		if err != nil {
			return IssuanceRequest{}, err
		}
		request.Pin = &Pin{Value: pin, Length: settings.PinLength}
	}
	return request, nil
}

func generatePin(length int) (string, error) {
	var sb strings.Builder
	ten := big.NewInt(10)
	for i := 0; i < length; i++ {
		digit, err := rand.Int(rand.Reader, ten)
		if err != nil {
			return "", err
		}
		sb.WriteByte(byte('0' + digit.Int64()))
	}
	return sb.String(), nil
}
