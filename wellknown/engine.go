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

package wellknown

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/go-did/did"
	"github.com/nuts-foundation/verifiedid-broker/core"
	"github.com/nuts-foundation/verifiedid-broker/wellknown/log"
)

// ModuleName is the name of the engine.
const ModuleName = "WellKnown"

const (
	didDocumentFile      = "did.json"
	didConfigurationFile = "did-configuration.json"
	didDocumentPath      = "/.well-known/" + didDocumentFile
	didConfigurationPath = "/.well-known/" + didConfigurationFile
)

var _ core.Injectable = (*Engine)(nil)
var _ core.Configurable = (*Engine)(nil)
var _ core.Routable = (*Engine)(nil)
var _ core.ViewableDiagnostics = (*Engine)(nil)

// Engine serves the did:web DID document and the DID configuration (Well Known DID Configuration) used for linked domain verification.
type Engine struct {
	config           Config
	didDocument      []byte
	documentID       string
	didConfiguration []byte
}

// New creates a new well-known documents engine.
func New() *Engine {
	return &Engine{config: DefaultConfig()}
}

func (e *Engine) Name() string {
	return ModuleName
}

func (e *Engine) Config() interface{} {
	return &e.config
}

// Configure loads and validates the documents. Documents that are absent are not served.
func (e *Engine) Configure(_ core.ServerConfig) error {
	var err error
	if e.didDocument, err = readOptional(e.config.Directory, didDocumentFile); err != nil {
		return err
	}
	if e.didDocument != nil {
		document := did.Document{}
		if err := json.Unmarshal(e.didDocument, &document); err != nil {
			return fmt.Errorf("invalid DID document %s: %w", didDocumentFile, err)
		}
		if document.ID.Method != "web" {
			return fmt.Errorf("invalid DID document %s: expected did:web, got %s", didDocumentFile, document.ID.String())
		}
		e.documentID = document.ID.String()
		log.Logger().Infof("Serving DID document of %s", e.documentID)
	}
	if e.didConfiguration, err = readOptional(e.config.Directory, didConfigurationFile); err != nil {
		return err
	}
	if e.didConfiguration != nil {
		configuration := struct {
			Context    string            `json:"@context"`
			LinkedDIDs []json.RawMessage `json:"linked_dids"`
		}{}
		if err := json.Unmarshal(e.didConfiguration, &configuration); err != nil {
			return fmt.Errorf("invalid DID configuration %s: %w", didConfigurationFile, err)
		}
		if len(configuration.LinkedDIDs) == 0 {
			return fmt.Errorf("invalid DID configuration %s: no linked_dids", didConfigurationFile)
		}
	}
	return nil
}

func readOptional(directory string, name string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(directory, name))
	if errors.Is(err, fs.ErrNotExist) {
		log.Logger().Infof("%s not found in %s, it will not be served", name, directory)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read %s: %w", name, err)
	}
	return data, nil
}

func (e *Engine) Routes(router core.EchoRouter) {
	router.GET(didDocumentPath, e.serve(didDocumentFile, func() []byte { return e.didDocument }))
	router.GET(didConfigurationPath, e.serve(didConfigurationFile, func() []byte { return e.didConfiguration }))
}

func (e *Engine) serve(name string, document func() []byte) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		ctx.Set(core.OperationIDContextKey, "Get"+name)
		ctx.Set(core.ModuleNameContextKey, ModuleName)
		data := document()
		if data == nil {
			return core.NotFoundError("%s not configured", name)
		}
		return ctx.Blob(http.StatusOK, echo.MIMEApplicationJSON, data)
	}
}

func (e *Engine) Diagnostics() []core.DiagnosticResult {
	documentID := e.documentID
	if documentID == "" {
		documentID = "none"
	}
	return []core.DiagnosticResult{
		&core.GenericDiagnosticResult{Title: "did", Value: documentID},
		&core.GenericDiagnosticResult{Title: "did_configuration", Value: e.didConfiguration != nil},
	}
}
