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
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nuts-foundation/verifiedid-broker/core"
	"github.com/nuts-foundation/verifiedid-broker/verifiedid"
	"github.com/nuts-foundation/verifiedid-broker/verifiedid/log"
	"golang.org/x/time/rate"
)

const apiKeyHeader = "api-key"
const originalHostHeader = "x-original-host"

var _ core.ErrorStatusCodeResolver = (*Wrapper)(nil)
var _ core.Routable = (*Wrapper)(nil)

// Wrapper exposes the Verified ID service over HTTP.
type Wrapper struct {
	Service verifiedid.Service
	// ServerConfig is used to determine the public URL of this service.
	ServerConfig *core.ServerConfig
}

// ResolveStatusCode maps errors returned by the Verified ID service to HTTP status codes.
// Every failure other than a missing or wrong API key is reported as 400 Bad Request.
func (w *Wrapper) ResolveStatusCode(err error) int {
	if errors.Is(err, verifiedid.ErrUnauthorized) {
		return http.StatusUnauthorized
	}
	return http.StatusBadRequest
}

// Routes registers the API routes. Initiation endpoints are rate limited when configured.
func (w *Wrapper) Routes(router core.EchoRouter) {
	var initiation []echo.MiddlewareFunc
	if limit := w.Service.InitiationRateLimit(); limit > 0 {
		initiation = append(initiation, rateLimiter(limit))
	}
	router.GET("/", w.operation("LandingPage", w.LandingPage))
	router.GET("/api/configuration", w.operation("GetConfiguration", w.GetConfiguration))
	router.GET("/api/verifier/presentation-request", w.operation("CreatePresentationRequest", w.CreatePresentationRequest), initiation...)
	router.POST("/api/verifier/presentation-request", w.operation("CreatePresentationRequestFromTemplate", w.CreatePresentationRequestFromTemplate), initiation...)
	router.GET("/api/issuer/issuance-request", w.operation("CreateIssuanceRequest", w.CreateIssuanceRequest), initiation...)
	router.GET("/api/issuer/selfie-request", w.operation("CreateSelfieRequest", w.CreateSelfieRequest), initiation...)
	router.POST("/api/verifier/presentationcallback", w.operation("PresentationCallback", w.PresentationCallback))
	router.POST("/api/issuer/issuecallback", w.operation("IssuanceCallback", w.IssuanceCallback))
	router.POST("/api/issuer/selfie/:id", w.operation("SetSelfie", w.SetSelfie))
	router.GET("/api/request-status", w.operation("RequestStatus", w.RequestStatus))
}

func (w *Wrapper) operation(operationID string, handler echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		ctx.Set(core.OperationIDContextKey, operationID)
		ctx.Set(core.ModuleNameContextKey, verifiedid.ModuleName)
		ctx.Set(core.StatusCodeResolverContextKey, w)
		ctx.Set(core.ErrorWriterContextKey, &errorWriter{})
		log.Logger().Trace(ctx.Request().URL.String())
		return handler(ctx)
	}
}

func rateLimiter(perMinute int) echo.MiddlewareFunc {
	store := middleware.NewRateLimiterMemoryStoreWithConfig(middleware.RateLimiterMemoryStoreConfig{
		Rate:      rate.Limit(float64(perMinute) / time.Minute.Seconds()),
		Burst:     perMinute,
		ExpiresIn: 3 * time.Minute,
	})
	return middleware.RateLimiterWithConfig(middleware.RateLimiterConfig{
		Store: store,
		DenyHandler: func(ctx echo.Context, _ string, _ error) error {
			return ctx.JSON(http.StatusTooManyRequests, errorResponse{
				Error:            strconv.Itoa(http.StatusTooManyRequests),
				ErrorDescription: "too many requests",
			})
		},
	})
}

// CreatePresentationRequest initiates a presentation flow.
func (w *Wrapper) CreatePresentationRequest(ctx echo.Context) error {
	options := verifiedid.PresentationOptions{
		CredentialType: ctx.QueryParam("credentialType"),
		FaceCheck:      isTrue(ctx.QueryParam("faceCheck")),
		PhotoClaimName: ctx.QueryParam("photoClaimName"),
	}
	if issuers := ctx.QueryParam("acceptedIssuers"); issuers != "" {
		options.AcceptedIssuers = strings.Split(issuers, ",")
	}
	if constraint := verifiedid.ParseConstraint(ctx.QueryParam("constraintName"), ctx.QueryParam("constraintOp"), ctx.QueryParam("constraintValue")); constraint != nil {
		options.Constraints = []verifiedid.Constraint{*constraint}
	}
	response, err := w.Service.InitiatePresentation(ctx.Request().Context(), w.baseURL(ctx), options)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreatePresentationRequestFromTemplate initiates a presentation flow from the JSON template in the request body.
func (w *Wrapper) CreatePresentationRequestFromTemplate(ctx echo.Context) error {
	template, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return err
	}
	response, err := w.Service.InitiatePresentationFromTemplate(ctx.Request().Context(), w.baseURL(ctx), template)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateIssuanceRequest initiates an issuance flow. Query parameters override the configured claims with the same name.
func (w *Wrapper) CreateIssuanceRequest(ctx echo.Context) error {
	overrides := make(map[string]string)
	for key, values := range ctx.QueryParams() {
		if len(values) > 0 {
			overrides[key] = values[0]
		}
	}
	response, err := w.Service.InitiateIssuance(ctx.Request().Context(), w.baseURL(ctx), overrides)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, response)
}

// CreateSelfieRequest creates a selfie capture request.
func (w *Wrapper) CreateSelfieRequest(ctx echo.Context) error {
	response, err := w.Service.InitiateSelfie(ctx.Request().Context(), w.baseURL(ctx))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, response)
}

// PresentationCallback receives callbacks of presentation flows.
func (w *Wrapper) PresentationCallback(ctx echo.Context) error {
	return w.callback(ctx, verifiedid.PresentationFlow)
}

// IssuanceCallback receives callbacks of issuance flows.
func (w *Wrapper) IssuanceCallback(ctx echo.Context) error {
	return w.callback(ctx, verifiedid.IssuanceFlow)
}

func (w *Wrapper) callback(ctx echo.Context, kind verifiedid.FlowKind) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return err
	}
	log.Logger().Tracef("%s callback: %s", kind, body)
	if err := w.Service.Reconcile(ctx.Request().Context(), kind, ctx.Request().Header.Get(apiKeyHeader), body); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusOK)
}

// SetSelfie receives the photo of a selfie capture request as data URL.
func (w *Wrapper) SetSelfie(ctx echo.Context) error {
	body, err := io.ReadAll(ctx.Request().Body)
	if err != nil {
		return err
	}
	if err := w.Service.ReconcileSelfie(ctx.Request().Context(), ctx.Param("id"), body); err != nil {
		return err
	}
	return ctx.NoContent(http.StatusOK)
}

// RequestStatus returns the status of the request identified by the id query parameter.
func (w *Wrapper) RequestStatus(ctx echo.Context) error {
	payload, err := w.Service.Project(ctx.Request().Context(), ctx.QueryParam("id"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, payload)
}

// GetConfiguration returns the settings the UI needs to render its pages.
func (w *Wrapper) GetConfiguration(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, w.Service.PublicConfiguration())
}

// baseURL returns the configured public URL or, if not configured, the URL derived from the request, always using https.
func (w *Wrapper) baseURL(ctx echo.Context) string {
	if w.ServerConfig != nil && w.ServerConfig.PublicURL != "" {
		return strings.TrimSuffix(w.ServerConfig.PublicURL, "/")
	}
	host := ctx.Request().Header.Get(originalHostHeader)
	if host == "" {
		host = ctx.Request().Host
	}
	return fmt.Sprintf("https://%s", host)
}

func isTrue(value string) bool {
	return value == "1" || value == "true"
}

type errorResponse struct {
	Error            string `json:"error"`
	ErrorDescription string `json:"error_description"`
	// Request holds the payload that was rejected by the Verified ID API.
	Request string `json:"request,omitempty"`
}

// errorWriter writes errors in the {"error": ..., "error_description": ...} shape the UI expects.
type errorWriter struct{}

func (e errorWriter) Write(echoContext echo.Context, statusCode int, _ string, err error) error {
	response := errorResponse{
		Error:            strconv.Itoa(statusCode),
		ErrorDescription: err.Error(),
	}
	var tokenErr verifiedid.TokenError
	var apiErr verifiedid.APIError
	switch {
	case errors.As(err, &tokenErr):
		response.Error = tokenErr.Code
		response.ErrorDescription = tokenErr.Description
	case errors.As(err, &apiErr):
		response.Request = string(apiErr.Request)
	}
	return echoContext.JSON(statusCode, response)
}
