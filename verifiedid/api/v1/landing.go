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
	_ "embed"
	"net/http"

	"github.com/cbroglie/mustache"
	"github.com/labstack/echo/v4"
)

//go:embed landing.mustache
var landingTemplateSource string

var landingTemplate *mustache.Template

func init() {
	var err error
	if landingTemplate, err = mustache.ParseString(landingTemplateSource); err != nil {
		panic(err)
	}
}

var endpoints = []map[string]string{
	{"method": http.MethodGet, "path": "/api/verifier/presentation-request", "description": "start a presentation"},
	{"method": http.MethodPost, "path": "/api/verifier/presentation-request", "description": "start a presentation from a JSON template"},
	{"method": http.MethodGet, "path": "/api/issuer/issuance-request", "description": "start an issuance"},
	{"method": http.MethodGet, "path": "/api/issuer/selfie-request", "description": "start a selfie capture"},
	{"method": http.MethodGet, "path": "/api/request-status?id={id}", "description": "poll the status of a request"},
	{"method": http.MethodGet, "path": "/api/configuration", "description": "settings of this service"},
}

// LandingPage renders an HTML page describing this service.
func (w *Wrapper) LandingPage(ctx echo.Context) error {
	configuration := w.Service.PublicConfiguration()
	rendered, err := landingTemplate.Render(map[string]interface{}{
		"clientName":      configuration.ClientName,
		"didAuthority":    configuration.DIDAuthority,
		"credentialType":  configuration.CredentialType,
		"acceptedIssuers": configuration.AcceptedIssuers,
		"useFaceCheck":    configuration.UseFaceCheck,
		"photoClaimName":  configuration.PhotoClaimName,
		"endpoints":       endpoints,
	})
	if err != nil {
		return err
	}
	return ctx.HTML(http.StatusOK, rendered)
}
