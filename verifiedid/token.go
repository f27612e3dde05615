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
	"io"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/nuts-foundation/verifiedid-broker/core"
)

// AccessTokenSource acquires access tokens for the Verified ID Request Service REST API.
type AccessTokenSource interface {
	// AccessToken returns a bearer token. Failures are returned as TokenError.
	AccessToken(ctx context.Context) (string, error)
}

var _ AccessTokenSource = (*clientSecretTokenSource)(nil)

type clientSecretTokenSource struct {
	credential azcore.TokenCredential
	scope      string
}

// NewClientSecretTokenSource creates an AccessTokenSource that uses the client credentials flow of the given app registration.
// Token requests are sent through the given HTTP client.
func NewClientSecretTokenSource(tenantID, clientID, clientSecret, scope string, httpClient core.HTTPRequestDoer) (AccessTokenSource, error) {
	options := &azidentity.ClientSecretCredentialOptions{
		ClientOptions: azcore.ClientOptions{Transport: httpClient},
	}
	credential, err := azidentity.NewClientSecretCredential(tenantID, clientID, clientSecret, options)
	if err != nil {
		return nil, err
	}
	return &clientSecretTokenSource{credential: credential, scope: scope}, nil
}

func (c clientSecretTokenSource) AccessToken(ctx context.Context) (string, error) {
	token, err := c.credential.GetToken(ctx, policy.TokenRequestOptions{Scopes: []string{c.scope}})
	if err != nil {
		return "", toTokenError(err)
	}
	return token.Token, nil
}

// toTokenError extracts the OAuth2 error code and description of a failed token request, if present.
func toTokenError(err error) TokenError {
	result := TokenError{Code: "token_error", Description: err.Error(), cause: err}
	var authErr *azidentity.AuthenticationFailedError
	if !errors.As(err, &authErr) || authErr.RawResponse == nil || authErr.RawResponse.Body == nil {
		return result
	}
	data, readErr := io.ReadAll(authErr.RawResponse.Body)
	if readErr != nil {
		return result
	}
	var body struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if json.Unmarshal(data, &body) == nil && body.Error != "" {
		result.Code = body.Error
		result.Description = body.ErrorDescription
	}
	return result
}
