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
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/nuts-foundation/verifiedid-broker/core"
	"github.com/nuts-foundation/verifiedid-broker/http/log"
)

const moduleName = "HTTP"

const shutdownTimeout = 10 * time.Second

// unloggedPaths are never logged by the request logger.
var unloggedPaths = []string{"/metrics", "/status", "/health"}

// New returns a new HTTP engine. The callback is called when the HTTP interface shuts down unexpectedly.
func New(serverShutdownCb func()) *Engine {
	return &Engine{
		serverShutdownCb: serverShutdownCb,
		config:           DefaultConfig(),
	}
}

// Engine is the HTTP engine.
type Engine struct {
	server           core.EchoServer
	serverShutdownCb func()
	config           Config
}

// Router returns the router of the HTTP engine, which can be used by other engines to register HTTP handlers.
func (h Engine) Router() core.EchoRouter {
	return h.server
}

// Configure creates the Echo server and applies the middleware for the configured interface.
func (h *Engine) Configure(serverConfig core.ServerConfig) error {
	if len(h.config.Address) == 0 {
		return errors.New("empty address")
	}
	if !h.config.Log.valid() {
		return fmt.Errorf("invalid value for http.default.log: %s", h.config.Log)
	}
	if h.config.CORS.Enabled() && serverConfig.Strictmode {
		for _, origin := range h.config.CORS.Origin {
			if strings.TrimSpace(origin) == "*" {
				return errors.New("wildcard CORS origin is not allowed in strict mode")
			}
		}
	}
	log.Logger().Infof("Binding / -> %s", h.config.Address)
	h.server = h.createEchoServer()
	return nil
}

func (h *Engine) createEchoServer() *echo.Echo {
	echoServer := echo.New()
	echoServer.HideBanner = true
	echoServer.HidePort = true
	echoServer.HTTPErrorHandler = core.CreateHTTPErrorHandler()
	// Reverse proxies must set the X-Forwarded-For header to the original client IP.
	echoServer.IPExtractor = echo.ExtractIPFromXFFHeader()

	// Logging
	if h.config.Log != LogNothingLevel {
		echoServer.Use(requestLoggerMiddleware(skipLogging, log.Logger()))
	}
	if h.config.Log == LogMetadataAndBodyLevel {
		echoServer.Use(bodyLoggerMiddleware(skipLogging, log.Logger()))
	}
	echoServer.Use(middleware.Recover())
	// Use middleware to decode URL encoded path parameters
	echoServer.Use(decodeURIPath)
	if h.config.CORS.Enabled() {
		log.Logger().Infof("Enabling CORS for HTTP endpoint: %s", h.config.Address)
		echoServer.Use(middleware.CORSWithConfig(middleware.CORSConfig{AllowOrigins: h.config.CORS.Origin}))
	}
	return echoServer
}

// Name returns the name of the engine.
func (h *Engine) Name() string {
	return moduleName
}

// Config returns the configuration of the HTTP engine.
func (h *Engine) Config() interface{} {
	return &h.config
}

// Start starts the HTTP engine.
func (h *Engine) Start() error {
	go func(server core.EchoServer, address string, cancel func()) {
		if err := server.Start(address); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				log.Logger().
					WithError(err).
					Error("HTTP server stopped due to error")
			}
		}
		if cancel != nil {
			cancel()
		}
	}(h.server, h.config.Address, h.serverShutdownCb)
	return nil
}

// Shutdown shuts down the HTTP engine.
func (h *Engine) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return h.server.Shutdown(ctx)
}

// decodeURIPath is echo middleware that decodes path parameters
func decodeURIPath(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		newValues := make([]string, len(c.ParamValues()))
		for i, value := range c.ParamValues() {
			path, err := url.PathUnescape(value)
			if err != nil {
				path = value
			}
			newValues[i] = path
		}
		c.SetParamNames(c.ParamNames()...)
		c.SetParamValues(newValues...)
		return next(c)
	}
}

func skipLogging(c echo.Context) bool {
	for _, path := range unloggedPaths {
		if matchesPath(c.Request().URL.Path, path) {
			return true
		}
	}
	return false
}

// matchesPath checks whether the request URI path hierarchically matches the given path.
// Examples:
// /status matches /status
// /status/diagnostics matches /status
// /statusx does not match /status
func matchesPath(requestURI string, path string) bool {
	if !strings.HasSuffix(requestURI, "/") {
		requestURI += "/"
	}
	if !strings.HasSuffix(path, "/") {
		path += "/"
	}
	return strings.HasPrefix(requestURI, path)
}
