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
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/verifiedid-broker/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDIDDocument = `{
  "@context": "https://www.w3.org/ns/did/v1",
  "id": "did:web:verifier.example.com"
}`

const testDIDConfiguration = `{
  "@context": "https://identity.foundation/.well-known/did-configuration/v1",
  "linked_dids": ["eyJhbGciOiJFUzI1NiJ9.e30.c2ln"]
}`

func newTestEngine(t *testing.T, files map[string]string) *Engine {
	t.Helper()
	directory := t.TempDir()
	for name, contents := range files {
		require.NoError(t, os.WriteFile(filepath.Join(directory, name), []byte(contents), 0600))
	}
	engine := New()
	engine.config.Directory = directory
	return engine
}

func get(engine *Engine, path string) *httptest.ResponseRecorder {
	e := echo.New()
	e.HTTPErrorHandler = core.CreateHTTPErrorHandler()
	engine.Routes(e)
	recorder := httptest.NewRecorder()
	e.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, path, nil))
	return recorder
}

func TestEngine_Configure(t *testing.T) {
	t.Run("both documents", func(t *testing.T) {
		engine := newTestEngine(t, map[string]string{
			didDocumentFile:      testDIDDocument,
			didConfigurationFile: testDIDConfiguration,
		})

		err := engine.Configure(*core.NewServerConfig())

		require.NoError(t, err)
		assert.Equal(t, "did:web:verifier.example.com", engine.documentID)
		assert.NotNil(t, engine.didConfiguration)
	})
	t.Run("no documents", func(t *testing.T) {
		engine := newTestEngine(t, nil)

		err := engine.Configure(*core.NewServerConfig())

		require.NoError(t, err)
		assert.Nil(t, engine.didDocument)
		assert.Nil(t, engine.didConfiguration)
	})
	t.Run("sample resources", func(t *testing.T) {
		engine := New()
		engine.config.Directory = "../resources"

		err := engine.Configure(*core.NewServerConfig())

		require.NoError(t, err)
		assert.Equal(t, "did:web:verifier.example.com", engine.documentID)
	})
	t.Run("invalid JSON", func(t *testing.T) {
		engine := newTestEngine(t, map[string]string{didDocumentFile: "{"})

		err := engine.Configure(*core.NewServerConfig())

		assert.ErrorContains(t, err, "invalid DID document did.json")
	})
	t.Run("invalid DID", func(t *testing.T) {
		engine := newTestEngine(t, map[string]string{didDocumentFile: `{"id": "not a DID"}`})

		err := engine.Configure(*core.NewServerConfig())

		assert.ErrorContains(t, err, "invalid DID document did.json")
	})
	t.Run("not a did:web", func(t *testing.T) {
		engine := newTestEngine(t, map[string]string{didDocumentFile: `{"id": "did:example:123"}`})

		err := engine.Configure(*core.NewServerConfig())

		assert.EqualError(t, err, "invalid DID document did.json: expected did:web, got did:example:123")
	})
	t.Run("DID configuration without linked DIDs", func(t *testing.T) {
		engine := newTestEngine(t, map[string]string{didConfigurationFile: `{"linked_dids": []}`})

		err := engine.Configure(*core.NewServerConfig())

		assert.EqualError(t, err, "invalid DID configuration did-configuration.json: no linked_dids")
	})
}

func TestEngine_Routes(t *testing.T) {
	t.Run("serves documents", func(t *testing.T) {
		engine := newTestEngine(t, map[string]string{
			didDocumentFile:      testDIDDocument,
			didConfigurationFile: testDIDConfiguration,
		})
		require.NoError(t, engine.Configure(*core.NewServerConfig()))

		document := get(engine, "/.well-known/did.json")
		configuration := get(engine, "/.well-known/did-configuration.json")

		assert.Equal(t, http.StatusOK, document.Code)
		assert.Equal(t, echo.MIMEApplicationJSON, document.Header().Get(echo.HeaderContentType))
		assert.JSONEq(t, testDIDDocument, document.Body.String())
		assert.Equal(t, http.StatusOK, configuration.Code)
		assert.JSONEq(t, testDIDConfiguration, configuration.Body.String())
	})
	t.Run("404 when absent", func(t *testing.T) {
		engine := newTestEngine(t, nil)
		require.NoError(t, engine.Configure(*core.NewServerConfig()))

		recorder := get(engine, "/.well-known/did.json")

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "did.json not configured")
	})
}

func TestEngine_Diagnostics(t *testing.T) {
	engine := newTestEngine(t, map[string]string{didDocumentFile: testDIDDocument})
	require.NoError(t, engine.Configure(*core.NewServerConfig()))

	diagnostics := engine.Diagnostics()

	require.Len(t, diagnostics, 2)
	assert.Equal(t, "did:web:verifier.example.com", diagnostics[0].Result())
	assert.Equal(t, false, diagnostics[1].Result())
}
