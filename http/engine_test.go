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

package http

import (
	"fmt"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nuts-foundation/verifiedid-broker/core"
	"github.com/nuts-foundation/verifiedid-broker/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/atomic"
)

func TestEngine_Configure(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		engine := New(nil)

		err := engine.Configure(*core.NewServerConfig())

		require.NoError(t, err)
		assert.NotNil(t, engine.Router())
	})
	t.Run("wildcard CORS origin in strict mode", func(t *testing.T) {
		engine := New(nil)
		engine.config.CORS.Origin = []string{"https://example.com", " * "}

		err := engine.Configure(core.TestServerConfig(core.ServerConfig{Strictmode: true}))

		assert.EqualError(t, err, "wildcard CORS origin is not allowed in strict mode")
	})
	t.Run("wildcard CORS origin in non-strict mode", func(t *testing.T) {
		engine := New(nil)
		engine.config.CORS.Origin = []string{"*"}

		err := engine.Configure(*core.NewServerConfig())

		assert.NoError(t, err)
	})
	t.Run("invalid log level", func(t *testing.T) {
		engine := New(nil)
		engine.config.Log = "everything"

		err := engine.Configure(*core.NewServerConfig())

		assert.EqualError(t, err, "invalid value for http.default.log: everything")
	})
	t.Run("empty address", func(t *testing.T) {
		engine := New(nil)
		engine.config.Address = ""

		err := engine.Configure(*core.NewServerConfig())

		assert.EqualError(t, err, "empty address")
	})
}

func TestEngine_StartAndShutdown(t *testing.T) {
	shutdownCalled := atomic.NewBool(false)
	engine := New(func() {
		shutdownCalled.Store(true)
	})
	address := fmt.Sprintf("localhost:%d", test.FreeTCPPort(t))
	engine.config.Address = address
	engine.config.CORS.Origin = []string{"https://app.example.com"}
	require.NoError(t, engine.Configure(*core.NewServerConfig()))
	engine.Router().GET("/hello/:name", func(c echo.Context) error {
		return c.String(http.StatusOK, "hello "+c.Param("name"))
	})
	engine.Router().GET("/panic", func(c echo.Context) error {
		panic("boom")
	})

	require.NoError(t, engine.Start())
	baseURL := "http://" + address
	test.WaitFor(t, func() (bool, error) {
		response, err := http.Get(baseURL + "/hello/x")
		if err != nil {
			return false, nil
		}
		_ = response.Body.Close()
		return true, nil
	}, 5*time.Second, "server did not start")

	t.Run("path parameters are decoded", func(t *testing.T) {
		response, err := http.Get(baseURL + "/hello/did%3Aweb%3Aexample.com")
		require.NoError(t, err)
		defer response.Body.Close()
		body, _ := io.ReadAll(response.Body)

		assert.Equal(t, http.StatusOK, response.StatusCode)
		assert.Equal(t, "hello did:web:example.com", string(body))
	})
	t.Run("panics are recovered", func(t *testing.T) {
		response, err := http.Get(baseURL + "/panic")
		require.NoError(t, err)
		_ = response.Body.Close()

		assert.Equal(t, http.StatusInternalServerError, response.StatusCode)
	})
	t.Run("CORS", func(t *testing.T) {
		request, _ := http.NewRequest(http.MethodGet, baseURL+"/hello/x", nil)
		request.Header.Set("Origin", "https://app.example.com")
		response, err := http.DefaultClient.Do(request)
		require.NoError(t, err)
		_ = response.Body.Close()

		assert.Equal(t, "https://app.example.com", response.Header.Get("Access-Control-Allow-Origin"))
	})

	require.NoError(t, engine.Shutdown())
	test.WaitFor(t, func() (bool, error) {
		return shutdownCalled.Load(), nil
	}, 5*time.Second, "shutdown callback not called")
}

func Test_matchesPath(t *testing.T) {
	assert.True(t, matchesPath("/status", "/status"))
	assert.True(t, matchesPath("/status/diagnostics", "/status"))
	assert.True(t, matchesPath("/metrics/", "/metrics"))
	assert.False(t, matchesPath("/statusx", "/status"))
	assert.False(t, matchesPath("/api/request-status", "/status"))
}
