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
	_ "embed"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/nuts-foundation/verifiedid-broker/core"
	"github.com/santhosh-tekuri/jsonschema"
)

//go:embed presentation-template-schema.json
var presentationTemplateSchemaData []byte

var presentationTemplateSchema *jsonschema.Schema

func init() {
	const schemaURL = "https://verifiedid-broker.nuts.nl/schemas/presentation-template.json"
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft7
	if err := compiler.AddResource(schemaURL, bytes.NewReader(presentationTemplateSchemaData)); err != nil {
		panic(err)
	}
	presentationTemplateSchema = compiler.MustCompile(schemaURL)
}

// ParsePresentationTemplate validates the template against the JSON schema for presentation templates and parses it.
func ParsePresentationTemplate(template []byte) (*PresentationRequest, error) {
	if err := presentationTemplateSchema.Validate(bytes.NewReader(template)); err != nil {
		return nil, newFailure(ErrMalformedInput, err, "invalid presentation template: %s", err)
	}
	var result PresentationRequest
	if err := json.Unmarshal(template, &result); err != nil {
		return nil, newFailure(ErrMalformedInput, err, "invalid presentation template: %s", err)
	}
	return &result, nil
}

// MergePresentationTemplate parses the template and overlays the callback of this service.
// Authority and client name are taken from the settings when the template doesn't specify them.
func MergePresentationTemplate(template []byte, settings Settings, callbackURL string) (PresentationRequest, error) {
	request, err := ParsePresentationTemplate(template)
	if err != nil {
		return PresentationRequest{}, err
	}
	request.Callback = settings.callback(callbackURL)
	if request.Authority == "" {
		request.Authority = settings.Authority
	}
	if request.Registration.ClientName == "" {
		request.Registration.ClientName = settings.ClientName
	}
	return *request, nil
}

// LoadTemplate reads a template from a https:// URL, a file:// URL or a file path.
func LoadTemplate(ctx context.Context, location string, client core.HTTPRequestDoer) ([]byte, error) {
	var data []byte
	if strings.HasPrefix(location, "https://") {
		request, err := http.NewRequestWithContext(ctx, http.MethodGet, location, nil)
		if err != nil {
			return nil, err
		}
		response, err := client.Do(request)
		if err != nil {
			return nil, fmt.Errorf("error getting template link: %s: %w", location, err)
		}
		defer response.Body.Close()
		if err := core.TestResponseCode(http.StatusOK, response); err != nil {
			return nil, fmt.Errorf("template link not found: %s: %w", location, err)
		}
		if data, err = io.ReadAll(response.Body); err != nil {
			return nil, err
		}
	} else {
		var err error
		if data, err = os.ReadFile(strings.TrimPrefix(location, "file://")); err != nil {
			return nil, fmt.Errorf("error getting template link: %w", err)
		}
	}
	if _, err := ParsePresentationTemplate(data); err != nil {
		return nil, fmt.Errorf("template link is not a presentation request: %s: %w", location, err)
	}
	return data, nil
}

// PublicConfiguration are the settings the UI uses to render the presentation page.
type PublicConfiguration struct {
	ClientName      string   `json:"clientName"`
	DIDAuthority    string   `json:"didAuthority"`
	CredentialType  string   `json:"credentialType"`
	AcceptedIssuers []string `json:"acceptedIssuers"`
	UseFaceCheck    bool     `json:"useFaceCheck"`
	PhotoClaimName  string   `json:"photoClaimName"`
	UseConstraints  bool     `json:"useConstraints"`
	ConstraintName  string   `json:"constraintName"`
	ConstraintOp    string   `json:"constraintOp"`
	ConstraintValue string   `json:"constraintValue"`
}

func publicConfiguration(settings Settings, template *PresentationRequest) PublicConfiguration {
	result := PublicConfiguration{
		ClientName:      settings.ClientName,
		DIDAuthority:    settings.Authority,
		CredentialType:  settings.CredentialType,
		AcceptedIssuers: []string{settings.Authority},
		UseFaceCheck:    settings.UseFaceCheck,
		PhotoClaimName:  settings.PhotoClaimName,
		ConstraintOp:    "value",
	}
	if template == nil || len(template.RequestedCredentials) == 0 {
		return result
	}
	if template.Authority != "" {
		result.DIDAuthority = template.Authority
	}
	requested := template.RequestedCredentials[0]
	result.CredentialType = requested.Type
	result.AcceptedIssuers = requested.AcceptedIssuers
	if requested.Configuration != nil && requested.Configuration.Validation != nil && requested.Configuration.Validation.FaceCheck != nil {
		result.UseFaceCheck = true
		result.PhotoClaimName = requested.Configuration.Validation.FaceCheck.SourcePhotoClaimName
	}
	if len(requested.Constraints) > 0 {
		constraint := requested.Constraints[0]
		result.UseConstraints = true
		result.ConstraintName = constraint.ClaimName
		switch {
		case constraint.StartsWith != "":
			result.ConstraintOp = "startsWith"
			result.ConstraintValue = constraint.StartsWith
		case constraint.Contains != "":
			result.ConstraintOp = "contains"
			result.ConstraintValue = constraint.Contains
		default:
			result.ConstraintValue = strings.Join(constraint.Values, ";")
		}
	}
	return result
}
