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
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/nuts-foundation/verifiedid-broker/core"
	"github.com/nuts-foundation/verifiedid-broker/verifiedid/log"
)

// Client is a client for the Verified ID Request Service REST API.
type Client interface {
	// CreatePresentationRequest creates a presentation request and returns the response of the API.
	CreatePresentationRequest(ctx context.Context, request PresentationRequest) (RequestResponse, error)
	// CreateIssuanceRequest creates an issuance request and returns the response of the API.
	CreateIssuanceRequest(ctx context.Context, request IssuanceRequest) (RequestResponse, error)
}

// RequestResponse is the response of the Verified ID API to a new request.
// It contains the URL of the request, optionally a QR code, and the expiry of the request.
type RequestResponse map[string]interface{}

// Expiry returns the expiry of the request as string, or an empty string if the response doesn't contain it.
func (r RequestResponse) Expiry() string {
	value, ok := r["expiry"]
	if !ok || value == nil {
		return ""
	}
	return fmt.Sprintf("%v", value)
}

var _ Client = (*HTTPClient)(nil)

// NewHTTPClient creates a Client that calls the API at the given endpoint, authenticating with tokens from the token source.
func NewHTTPClient(endpoint string, tokenSource AccessTokenSource, httpClient core.HTTPRequestDoer) *HTTPClient {
	if !strings.HasSuffix(endpoint, "/") {
		endpoint += "/"
	}
	return &HTTPClient{
		endpoint:    endpoint,
		tokenSource: tokenSource,
		httpClient:  httpClient,
	}
}

// HTTPClient implements Client over HTTP.
type HTTPClient struct {
	endpoint    string
	tokenSource AccessTokenSource
	httpClient  core.HTTPRequestDoer
}

func (h HTTPClient) CreatePresentationRequest(ctx context.Context, request PresentationRequest) (RequestResponse, error) {
	return h.post(ctx, "createPresentationRequest", request)
}

func (h HTTPClient) CreateIssuanceRequest(ctx context.Context, request IssuanceRequest) (RequestResponse, error) {
	return h.post(ctx, "createIssuanceRequest", request)
}

func (h HTTPClient) post(ctx context.Context, operation string, payload interface{}) (RequestResponse, error) {
	token, err := h.tokenSource.AccessToken(ctx)
	if err != nil {
		log.Logger().WithError(err).Error("Failed to acquire access token")
		return nil, err
	}
	requestBody, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	log.Logger().Tracef("Request API payload: %s", requestBody)
	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodPost, h.endpoint+operation, bytes.NewReader(requestBody))
	if err != nil {
		return nil, err
	}
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Authorization", "Bearer "+token)
	httpResponse, err := h.httpClient.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("calling Verified ID API (%s): %w", operation, err)
	}
	defer httpResponse.Body.Close()
	if err := core.TestResponseCodeWithLog(http.StatusCreated, httpResponse, log.Logger()); err != nil {
		return nil, APIError{HttpError: err.(core.HttpError), Request: requestBody}
	}
	responseData, err := io.ReadAll(httpResponse.Body)
	if err != nil {
		return nil, err
	}
	decoder := json.NewDecoder(bytes.NewReader(responseData))
	decoder.UseNumber()
	var result RequestResponse
	if err := decoder.Decode(&result); err != nil {
		return nil, newFailure(ErrExternalAPI, err, "Verified ID API returned invalid response: %s", err)
	}
	if result == nil {
		return nil, newFailure(ErrExternalAPI, nil, "Verified ID API returned an empty response")
	}
	return result, nil
}
