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
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTestResponseCode(t *testing.T) {
	assert.NoError(t, TestResponseCode(http.StatusOK, &http.Response{StatusCode: http.StatusOK}))

	err := TestResponseCode(http.StatusCreated, &http.Response{
		StatusCode: http.StatusBadRequest,
		Body:       io.NopCloser(strings.NewReader("body")),
	})

	var httpErr HttpError
	require.ErrorAs(t, err, &httpErr)
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Equal(t, "body", string(httpErr.ResponseBody))
	assert.EqualError(t, err, "server returned HTTP 400 (expected: 201)")
}

func TestTestResponseCodeWithLog(t *testing.T) {
	request, _ := http.NewRequest(http.MethodGet, "https://example.com/path", nil)

	err := TestResponseCodeWithLog(http.StatusOK, &http.Response{
		StatusCode: http.StatusInternalServerError,
		Body:       io.NopCloser(strings.NewReader(strings.Repeat("a", 200))),
		Request:    request,
	}, logrus.NewEntry(logrus.New()))

	assert.Error(t, err)
}

func TestStrictHTTPClient(t *testing.T) {
	var userAgent string
	server := httptest.NewServer(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		userAgent = request.UserAgent()
		writer.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	t.Run("strict mode refuses plain HTTP", func(t *testing.T) {
		client := NewStrictHTTPClient(true, time.Second, nil)
		request, _ := http.NewRequest(http.MethodGet, server.URL, nil)

		_, err := client.Do(request)

		assert.EqualError(t, err, "strictmode is enabled, but request is not over HTTPS")
	})
	t.Run("non-strict allows plain HTTP and sets User-Agent", func(t *testing.T) {
		GitVersion = ""
		client := NewStrictHTTPClient(false, time.Second, nil)
		request, _ := http.NewRequest(http.MethodGet, server.URL, nil)

		response, err := client.Do(request)

		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, response.StatusCode)
		assert.Equal(t, "verifiedid-broker/development", userAgent)
	})
}
