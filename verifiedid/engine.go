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
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"

	"github.com/nuts-foundation/verifiedid-broker/core"
	"github.com/nuts-foundation/verifiedid-broker/storage"
	"github.com/nuts-foundation/verifiedid-broker/verifiedid/log"
)

// ModuleName is the name of the Verified ID engine.
const ModuleName = "VerifiedID"

const (
	presentationCallbackPath = "/api/verifier/presentationcallback"
	issuanceCallbackPath     = "/api/issuer/issuecallback"
)

var _ Service = (*Engine)(nil)
var _ core.Injectable = (*Engine)(nil)
var _ core.Configurable = (*Engine)(nil)
var _ core.ViewableDiagnostics = (*Engine)(nil)

// Engine is the Verified ID engine. It ties the initiator, reconciler and projector to a shared correlation store.
type Engine struct {
	config          Config
	storageInstance storage.Engine
	client          Client
	metrics         *Metrics
	apiKeySource    string
	settings        Settings
	defaultTemplate []byte
	initiator       *Initiator
	reconciler      *Reconciler
	projector       *Projector
}

// New creates a new Verified ID engine that keeps correlation records in the session database of the storage engine.
func New(storageInstance storage.Engine) *Engine {
	return &Engine{
		config:          DefaultConfig(),
		storageInstance: storageInstance,
		metrics:         NewMetrics(),
	}
}

func (e *Engine) Name() string {
	return ModuleName
}

func (e *Engine) Config() interface{} {
	return &e.config
}

// Configure resolves the API key, creates the API client and loads the default presentation template.
// The storage engine must be configured first.
func (e *Engine) Configure(serverConfig core.ServerConfig) error {
	if e.config.Timeout <= 0 {
		return errors.New("verifiedid.timeout must be positive")
	}
	apiKey, err := e.resolveAPIKey()
	if err != nil {
		return err
	}
	e.settings = settingsFromConfig(e.config, apiKey)

	httpClient := core.NewStrictHTTPClient(serverConfig.Strictmode, e.config.Timeout, nil)
	if e.client == nil {
		var tokenSource AccessTokenSource
		if e.config.TenantID == "" || e.config.ClientID == "" || e.config.ClientSecret == "" {
			log.Logger().Warn("Verified ID client credentials not configured (verifiedid.tenantid, verifiedid.clientid, verifiedid.clientsecret), requests can't be initiated")
			tokenSource = unconfiguredTokenSource{}
		} else if tokenSource, err = NewClientSecretTokenSource(e.config.TenantID, e.config.ClientID, e.config.ClientSecret, e.config.Scope, httpClient); err != nil {
			return fmt.Errorf("unable to create Verified ID token source: %w", err)
		}
		e.client = NewHTTPClient(e.config.APIEndpoint, tokenSource, httpClient)
	}

	if e.config.PresentationTemplate != "" {
		ctx, cancel := context.WithTimeout(context.Background(), e.config.Timeout)
		defer cancel()
		if e.defaultTemplate, err = LoadTemplate(ctx, e.config.PresentationTemplate, httpClient); err != nil {
			return err
		}
	}

	if err := e.metrics.Register(); err != nil {
		return err
	}

	store := e.storageInstance.GetSessionDatabase().GetStore(e.storageInstance.SessionTTL(), "verifiedid", "requests")
	e.initiator = NewInitiator(e.client, store, e.storageInstance.SessionTTL(), e.metrics)
	e.reconciler = NewReconciler(store, apiKey, e.metrics)
	e.projector = NewProjector(store)
	return nil
}

func (e *Engine) resolveAPIKey() (string, error) {
	if e.config.APIKey != "" {
		e.apiKeySource = "config"
		return e.config.APIKey, nil
	}
	if value := os.Getenv(apiKeyEnv); value != "" {
		e.apiKeySource = "environment"
		return value, nil
	}
	data := make([]byte, 32)
	if _, err := rand.Read(data); err != nil {
		return "", err
	}
	e.apiKeySource = "generated"
	log.Logger().Warnf("No callback API key configured (verifiedid.apikey or %s), generated a random key", apiKeyEnv)
	return hex.EncodeToString(data), nil
}

func (e *Engine) InitiatePresentation(ctx context.Context, baseURL string, options PresentationOptions) (RequestResponse, error) {
	if e.defaultTemplate != nil {
		request, err := MergePresentationTemplate(e.defaultTemplate, e.settings, baseURL+presentationCallbackPath)
		if err != nil {
			return nil, err
		}
		if !HasFaceCheck(request) && (options.FaceCheck || e.settings.UseFaceCheck) {
			AddFaceCheck(&request, "", options.PhotoClaimName, e.settings.FaceCheckThreshold)
		}
		return e.initiator.Initiate(ctx, &request)
	}
	request := BuildPresentationRequest(e.settings, baseURL+presentationCallbackPath, options)
	return e.initiator.Initiate(ctx, &request)
}

func (e *Engine) InitiatePresentationFromTemplate(ctx context.Context, baseURL string, template []byte) (RequestResponse, error) {
	request, err := MergePresentationTemplate(template, e.settings, baseURL+presentationCallbackPath)
	if err != nil {
		return nil, err
	}
	return e.initiator.Initiate(ctx, &request)
}

func (e *Engine) InitiateIssuance(ctx context.Context, baseURL string, claimOverrides map[string]string) (RequestResponse, error) {
	request, err := BuildIssuanceRequest(e.settings, baseURL+issuanceCallbackPath, claimOverrides)
	if err != nil {
		return nil, err
	}
	response, err := e.initiator.Initiate(ctx, &request)
	if err != nil {
		return nil, err
	}
	if request.Pin != nil {
		response["pin"] = request.Pin.Value
	}
	return response, nil
}

func (e *Engine) InitiateSelfie(ctx context.Context, baseURL string) (*SelfieRequest, error) {
	return e.initiator.InitiateSelfie(ctx, baseURL)
}

func (e *Engine) Reconcile(ctx context.Context, kind FlowKind, apiKey string, body []byte) error {
	return e.reconciler.Reconcile(ctx, kind, apiKey, body)
}

func (e *Engine) ReconcileSelfie(ctx context.Context, id string, body []byte) error {
	return e.reconciler.ReconcileSelfie(ctx, id, body)
}

func (e *Engine) Project(ctx context.Context, token string) (StatusPayload, error) {
	return e.projector.Project(ctx, token)
}

func (e *Engine) PublicConfiguration() PublicConfiguration {
	var template *PresentationRequest
	if e.defaultTemplate != nil {
		// validated at Configure
		template, _ = ParsePresentationTemplate(e.defaultTemplate)
	}
	return publicConfiguration(e.settings, template)
}

func (e *Engine) InitiationRateLimit() int {
	return e.config.RateLimit
}

func (e *Engine) Diagnostics() []core.DiagnosticResult {
	template := "none"
	if e.config.PresentationTemplate != "" {
		template = e.config.PresentationTemplate
	}
	return []core.DiagnosticResult{
		&core.GenericDiagnosticResult{Title: "api_endpoint", Value: e.config.APIEndpoint},
		&core.GenericDiagnosticResult{Title: "api_key_source", Value: e.apiKeySource},
		&core.GenericDiagnosticResult{Title: "presentation_template", Value: template},
	}
}

type unconfiguredTokenSource struct{}

func (unconfiguredTokenSource) AccessToken(_ context.Context) (string, error) {
	return "", TokenError{Code: "invalid_configuration", Description: "Verified ID client credentials are not configured"}
}
