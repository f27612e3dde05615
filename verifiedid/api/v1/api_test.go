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

package v1

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/verifiedid-broker/core"
	"github.com/nuts-foundation/verifiedid-broker/test"
	"github.com/nuts-foundation/verifiedid-broker/verifiedid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testContext struct {
	echo    *echo.Echo
	service *verifiedid.MockService
	config  *core.ServerConfig
}

func newTestContext(t *testing.T, rateLimit int) testContext {
	ctrl := gomock.NewController(t)
	service := verifiedid.NewMockService(ctrl)
	service.EXPECT().InitiationRateLimit().Return(rateLimit).AnyTimes()
	e := echo.New()
	e.HTTPErrorHandler = core.CreateHTTPErrorHandler()
	config := core.NewServerConfig()
	wrapper := &Wrapper{Service: service, ServerConfig: config}
	wrapper.Routes(e)
	return testContext{echo: e, service: service, config: config}
}

func (c testContext) do(method string, target string, body string, headers map[string]string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, target, strings.NewReader(body))
	request.Host = "broker.example.com"
	for key, value := range headers {
		request.Header.Set(key, value)
	}
	recorder := httptest.NewRecorder()
	c.echo.ServeHTTP(recorder, request)
	return recorder
}

func errorBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]string {
	var result map[string]string
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &result))
	return result
}

func TestWrapper_CreatePresentationRequest(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctx := newTestContext(t, 0)
		expectedOptions := verifiedid.PresentationOptions{
			CredentialType:  "Employee",
			FaceCheck:       true,
			PhotoClaimName:  "portrait",
			AcceptedIssuers: []string{"did:web:a", "did:web:b"},
			Constraints:     []verifiedid.Constraint{{ClaimName: "name", Contains: "Ali"}},
		}
		ctx.service.EXPECT().InitiatePresentation(gomock.Any(), "https://broker.example.com", expectedOptions).
			Return(verifiedid.RequestResponse{"id": "token", "url": "openid-vc://"}, nil)

		recorder := ctx.do(http.MethodGet, "/api/verifier/presentation-request?credentialType=Employee&faceCheck=1&photoClaimName=portrait"+
			"&acceptedIssuers=did:web:a,did:web:b&constraintName=name&constraintOp=contains&constraintValue=Ali", "", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"id":"token","url":"openid-vc://"}`, recorder.Body.String())
	})
	t.Run("base URL from x-original-host", func(t *testing.T) {
		ctx := newTestContext(t, 0)
		ctx.service.EXPECT().InitiatePresentation(gomock.Any(), "https://public.example.com", verifiedid.PresentationOptions{}).
			Return(verifiedid.RequestResponse{}, nil)

		recorder := ctx.do(http.MethodGet, "/api/verifier/presentation-request", "", map[string]string{"x-original-host": "public.example.com"})

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("base URL from config", func(t *testing.T) {
		ctx := newTestContext(t, 0)
		ctx.config.PublicURL = "https://configured.example.com/"
		ctx.service.EXPECT().InitiatePresentation(gomock.Any(), "https://configured.example.com", verifiedid.PresentationOptions{FaceCheck: true}).
			Return(verifiedid.RequestResponse{}, nil)

		recorder := ctx.do(http.MethodGet, "/api/verifier/presentation-request?faceCheck=true", "", map[string]string{"x-original-host": "public.example.com"})

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("token error", func(t *testing.T) {
		ctx := newTestContext(t, 0)
		ctx.service.EXPECT().InitiatePresentation(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, verifiedid.TokenError{Code: "invalid_client", Description: "bad secret"})

		recorder := ctx.do(http.MethodGet, "/api/verifier/presentation-request", "", nil)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, map[string]string{"error": "invalid_client", "error_description": "bad secret"}, errorBody(t, recorder))
	})
	t.Run("API error", func(t *testing.T) {
		ctx := newTestContext(t, 0)
		apiErr := verifiedid.APIError{HttpError: core.HttpError{StatusCode: 400, ResponseBody: []byte("denied")}, Request: []byte(`{"a":1}`)}
		ctx.service.EXPECT().InitiatePresentation(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, apiErr)

		recorder := ctx.do(http.MethodGet, "/api/verifier/presentation-request", "", nil)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, map[string]string{
			"error":             "400",
			"error_description": "Verified ID API error response: denied",
			"request":           `{"a":1}`,
		}, errorBody(t, recorder))
	})
	t.Run("rate limited", func(t *testing.T) {
		ctx := newTestContext(t, 1)
		ctx.service.EXPECT().InitiatePresentation(gomock.Any(), gomock.Any(), gomock.Any()).Return(verifiedid.RequestResponse{}, nil)

		first := ctx.do(http.MethodGet, "/api/verifier/presentation-request", "", nil)
		second := ctx.do(http.MethodGet, "/api/verifier/presentation-request", "", nil)

		assert.Equal(t, http.StatusOK, first.Code)
		assert.Equal(t, http.StatusTooManyRequests, second.Code)
	})
}

func TestWrapper_CreatePresentationRequestFromTemplate(t *testing.T) {
	ctx := newTestContext(t, 0)
	const template = `{"requestedCredentials":[{"type":"A"}]}`
	ctx.service.EXPECT().InitiatePresentationFromTemplate(gomock.Any(), "https://broker.example.com", test.JSONEq(template)).
		Return(verifiedid.RequestResponse{"id": "token"}, nil)

	recorder := ctx.do(http.MethodPost, "/api/verifier/presentation-request", template, nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestWrapper_CreateIssuanceRequest(t *testing.T) {
	ctx := newTestContext(t, 0)
	ctx.service.EXPECT().InitiateIssuance(gomock.Any(), "https://broker.example.com", map[string]string{"given_name": "Alice"}).
		Return(verifiedid.RequestResponse{"id": "token", "pin": "1234"}, nil)

	recorder := ctx.do(http.MethodGet, "/api/issuer/issuance-request?given_name=Alice", "", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"id":"token","pin":"1234"}`, recorder.Body.String())
}

func TestWrapper_CreateSelfieRequest(t *testing.T) {
	ctx := newTestContext(t, 0)
	ctx.service.EXPECT().InitiateSelfie(gomock.Any(), "https://broker.example.com").
		Return(&verifiedid.SelfieRequest{ID: "token", URL: "https://broker.example.com/selfie.html", Expiry: 100}, nil)

	recorder := ctx.do(http.MethodGet, "/api/issuer/selfie-request", "", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"id":"token","url":"https://broker.example.com/selfie.html","expiry":100,"photo":""}`, recorder.Body.String())
}

func TestWrapper_Callbacks(t *testing.T) {
	const body = `{"requestStatus":"request_retrieved","state":"token"}`

	t.Run("presentation", func(t *testing.T) {
		ctx := newTestContext(t, 0)
		ctx.service.EXPECT().Reconcile(gomock.Any(), verifiedid.PresentationFlow, "secret", []byte(body)).Return(nil)

		recorder := ctx.do(http.MethodPost, "/api/verifier/presentationcallback", body, map[string]string{"api-key": "secret"})

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Empty(t, recorder.Body.String())
	})
	t.Run("issuance", func(t *testing.T) {
		ctx := newTestContext(t, 0)
		ctx.service.EXPECT().Reconcile(gomock.Any(), verifiedid.IssuanceFlow, "secret", []byte(body)).Return(nil)

		recorder := ctx.do(http.MethodPost, "/api/issuer/issuecallback", body, map[string]string{"api-key": "secret"})

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
	t.Run("unauthorized", func(t *testing.T) {
		ctx := newTestContext(t, 0)
		ctx.service.EXPECT().Reconcile(gomock.Any(), verifiedid.PresentationFlow, "", []byte(body)).
			Return(verifiedid.ErrUnauthorized)

		recorder := ctx.do(http.MethodPost, "/api/verifier/presentationcallback", body, nil)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.Equal(t, "401", errorBody(t, recorder)["error"])
	})
	t.Run("invalid state", func(t *testing.T) {
		ctx := newTestContext(t, 0)
		ctx.service.EXPECT().Reconcile(gomock.Any(), verifiedid.PresentationFlow, "secret", gomock.Any()).
			Return(errors.New("Invalid state 'token'"))

		recorder := ctx.do(http.MethodPost, "/api/verifier/presentationcallback", body, map[string]string{"api-key": "secret"})

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Equal(t, map[string]string{"error": "400", "error_description": "Invalid state 'token'"}, errorBody(t, recorder))
	})
	t.Run("selfie", func(t *testing.T) {
		ctx := newTestContext(t, 0)
		ctx.service.EXPECT().ReconcileSelfie(gomock.Any(), "tok1", test.Contains(";base64,QUJD")).Return(nil)

		recorder := ctx.do(http.MethodPost, "/api/issuer/selfie/tok1", "data:image/jpeg;base64,QUJD", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})
}

func TestWrapper_RequestStatus(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ctx := newTestContext(t, 0)
		ctx.service.EXPECT().Project(gomock.Any(), "token").
			Return(verifiedid.StatusPayload{Status: verifiedid.StatusRequestCreated, Message: "Waiting to scan QR code"}, nil)

		recorder := ctx.do(http.MethodGet, "/api/request-status?id=token", "", nil)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"status":"request_created","message":"Waiting to scan QR code"}`, recorder.Body.String())
	})
	t.Run("poll failure", func(t *testing.T) {
		ctx := newTestContext(t, 0)
		failure := verifiedid.PollFailure{Payload: verifiedid.StatusPayload{Status: verifiedid.StatusRequestNotCreated, Message: "No data"}}
		ctx.service.EXPECT().Project(gomock.Any(), "token").Return(verifiedid.StatusPayload{}, failure)

		recorder := ctx.do(http.MethodGet, "/api/request-status?id=token", "", nil)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		body := errorBody(t, recorder)
		assert.Equal(t, "400", body["error"])
		assert.JSONEq(t, `{"status":"request_not_created","message":"No data"}`, body["error_description"])
	})
}

func TestWrapper_GetConfiguration(t *testing.T) {
	ctx := newTestContext(t, 0)
	ctx.service.EXPECT().PublicConfiguration().Return(verifiedid.PublicConfiguration{CredentialType: "A", ConstraintOp: "value"})

	recorder := ctx.do(http.MethodGet, "/api/configuration", "", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	var actual verifiedid.PublicConfiguration
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &actual))
	assert.Equal(t, "A", actual.CredentialType)
}

func TestWrapper_LandingPage(t *testing.T) {
	ctx := newTestContext(t, 0)
	ctx.service.EXPECT().PublicConfiguration().Return(verifiedid.PublicConfiguration{
		ClientName:      "Contoso broker",
		DIDAuthority:    "did:web:verifier.example.com",
		CredentialType:  "VerifiedEmployee",
		AcceptedIssuers: []string{"did:web:issuer.example.com"},
	})

	recorder := ctx.do(http.MethodGet, "/", "", nil)

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.Contains(t, recorder.Header().Get("Content-Type"), "text/html")
	assert.Contains(t, recorder.Body.String(), "<h1>Contoso broker</h1>")
	assert.Contains(t, recorder.Body.String(), "did:web:verifier.example.com")
	assert.Contains(t, recorder.Body.String(), "VerifiedEmployee")
	assert.Contains(t, recorder.Body.String(), "did:web:issuer.example.com")
	assert.Contains(t, recorder.Body.String(), "/api/request-status")
	assert.NotContains(t, recorder.Body.String(), "Face check is enabled")
}

func TestWrapper_ResolveStatusCode(t *testing.T) {
	w := &Wrapper{}

	assert.Equal(t, http.StatusUnauthorized, w.ResolveStatusCode(verifiedid.ErrUnauthorized))
	assert.Equal(t, http.StatusBadRequest, w.ResolveStatusCode(verifiedid.ErrInvalidState))
	assert.Equal(t, http.StatusBadRequest, w.ResolveStatusCode(errors.New("other")))
}
