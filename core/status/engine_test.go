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

package status

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/verifiedid-broker/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEcho() (*echo.Echo, *core.System) {
	system := core.NewSystem()
	engine := NewStatusEngine(system)
	system.RegisterEngine(engine)
	e := echo.New()
	engine.(core.Routable).Routes(e)
	return e, system
}

func TestStatus_Name(t *testing.T) {
	assert.Equal(t, "Status", NewStatusEngine(core.NewSystem()).(core.Named).Name())
}

func TestStatus_Routes(t *testing.T) {
	e, _ := newTestEcho()

	t.Run("status", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "OK", rec.Body.String())
	})
	t.Run("health", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.JSONEq(t, `{"status":"UP"}`, rec.Body.String())
	})
	t.Run("diagnostics as text", func(t *testing.T) {
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status/diagnostics", nil))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "Status\n\tregistered_engines: [Status]")
	})
	t.Run("diagnostics as JSON", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/status/diagnostics", nil)
		req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)
		var result map[string]map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, []interface{}{"Status"}, result["status"]["registered_engines"])
	})
}
