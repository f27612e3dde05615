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
)

// Service brokers presentation and issuance flows with the Verified ID Request Service REST API.
type Service interface {
	// InitiatePresentation creates a presentation request. When a default presentation template is configured,
	// it is used instead of the options, except for the face check flag.
	InitiatePresentation(ctx context.Context, baseURL string, options PresentationOptions) (RequestResponse, error)
	// InitiatePresentationFromTemplate creates a presentation request from a JSON template.
	InitiatePresentationFromTemplate(ctx context.Context, baseURL string, template []byte) (RequestResponse, error)
	// InitiateIssuance creates an issuance request. The generated PIN code, if any, is returned as "pin".
	InitiateIssuance(ctx context.Context, baseURL string, claimOverrides map[string]string) (RequestResponse, error)
	// InitiateSelfie creates a local selfie capture request.
	InitiateSelfie(ctx context.Context, baseURL string) (*SelfieRequest, error)
	// Reconcile processes a callback of the Verified ID API.
	Reconcile(ctx context.Context, kind FlowKind, apiKey string, body []byte) error
	// ReconcileSelfie processes an uploaded selfie.
	ReconcileSelfie(ctx context.Context, id string, body []byte) error
	// Project returns the status of a request.
	Project(ctx context.Context, token string) (StatusPayload, error)
	// PublicConfiguration returns the settings the UI needs to render its pages.
	PublicConfiguration() PublicConfiguration
	// InitiationRateLimit returns the maximum number of initiated requests per minute, 0 means unlimited.
	InitiationRateLimit() int
}
