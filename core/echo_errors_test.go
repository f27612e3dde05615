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

package core

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"schneider.vip/problem"
)

type stubResolver map[error]int

func (s stubResolver) ResolveStatusCode(err error) int {
	return ResolveStatusCode(err, s)
}

type stubErrorWriter struct{}

func (s stubErrorWriter) Write(ctx echo.Context, statusCode int, _ string, err error) error {
	return ctx.String(statusCode, "custom: "+err.Error())
}

func TestHttpErrorHandler(t *testing.T) {
	err1 := errors.New("error 1")
	e := echo.New()
	e.HTTPErrorHandler = CreateHTTPErrorHandler()
	server := httptest.NewServer(e)
	defer server.Close()
	client := http.Client{}
	call := func(t *testing.T, path string) (*http.Response, string) {
		req, _ := http.NewRequest(http.MethodGet, server.URL+path, nil)
		resp, err := client.Do(req)
		if !assert.NoError(t, err) {
			t.FailNow()
		}
		bodyBytes, _ := io.ReadAll(resp.Body)
		return resp, string(bodyBytes)
	}

	t.Run("is echo HTTPError", func(t *testing.T) {
		e.GET("/echo", func(c echo.Context) error {
			err := errors.New("failed")
			return &echo.HTTPError{
				Code:     http.StatusForbidden,
				Message:  err.Error(),
				Internal: err,
			}
		})

		resp, body := call(t, "/echo")

		assert.Equal(t, 403, resp.StatusCode)
		assert.Equal(t, problem.ContentTypeJSON, resp.Header.Get("Content-Type"))
		assert.Equal(t, "{\"detail\":\"failed\",\"status\":403,\"title\":\"Operation failed\"}", body)
	})
	t.Run("error mapping from context resolver", func(t *testing.T) {
		e.GET("/mapped", func(c echo.Context) error {
			c.Set(OperationIDContextKey, "test")
			c.Set(StatusCodeResolverContextKey, stubResolver{err1: http.StatusUnauthorized})
			return err1
		})

		resp, body := call(t, "/mapped")

		assert.Equal(t, 401, resp.StatusCode)
		assert.Equal(t, "{\"detail\":\"error 1\",\"status\":401,\"title\":\"test failed\"}", body)
	})
	t.Run("predefined status code", func(t *testing.T) {
		e.GET("/predefined", func(c echo.Context) error {
			return InvalidInputError("bad %s", "input")
		})

		resp, body := call(t, "/predefined")

		assert.Equal(t, 400, resp.StatusCode)
		assert.Contains(t, body, "bad input")
	})
	t.Run("custom error writer", func(t *testing.T) {
		e.GET("/custom", func(c echo.Context) error {
			c.Set(ErrorWriterContextKey, stubErrorWriter{})
			return UnauthorizedError("nope")
		})

		resp, body := call(t, "/custom")

		assert.Equal(t, 401, resp.StatusCode)
		assert.Equal(t, "custom: nope", body)
	})
	t.Run("unmapped", func(t *testing.T) {
		e.GET("/unmapped", func(c echo.Context) error {
			c.Set(OperationIDContextKey, "test")
			return errors.New("other error")
		})

		resp, body := call(t, "/unmapped")

		assert.Equal(t, 500, resp.StatusCode)
		assert.Equal(t, "{\"detail\":\"other error\",\"status\":500,\"title\":\"test failed\"}", body)
	})
}

func Test_NotFoundError(t *testing.T) {
	err := NotFoundError("failed: %s", "oops").(httpStatusCodeError)
	assert.EqualError(t, err, "failed: oops")
	assert.Equal(t, http.StatusNotFound, err.statusCode)
	assert.ErrorIs(t, err, NotFoundError(""))
}

func Test_InvalidInputError(t *testing.T) {
	err := InvalidInputError("failed: %s", "oops").(httpStatusCodeError)
	assert.EqualError(t, err, "failed: oops")
	assert.Equal(t, http.StatusBadRequest, err.statusCode)
	assert.ErrorIs(t, err, InvalidInputError(""))
}

func Test_UnauthorizedError(t *testing.T) {
	cause := errors.New("cause")
	err := UnauthorizedError("failed: %w", cause).(httpStatusCodeError)
	assert.EqualError(t, err, "failed: cause")
	assert.Equal(t, http.StatusUnauthorized, err.StatusCode())
	assert.ErrorIs(t, err, cause)
}

func TestResolveStatusCode(t *testing.T) {
	err1 := errors.New("1")
	assert.Equal(t, 401, ResolveStatusCode(WrapError(err1, errors.New("cause")), map[error]int{err1: 401}))
	assert.Equal(t, 0, ResolveStatusCode(errors.New("other"), map[error]int{err1: 401}))
}
