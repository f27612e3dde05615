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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/nuts-foundation/verifiedid-broker/core"
)

// ErrUnauthorized is returned when a callback does not carry the configured API key.
var ErrUnauthorized = errors.New("api-key wrong or missing")

// ErrMalformedInput is returned when a request body or stored callback can't be parsed.
var ErrMalformedInput = errors.New("malformed input")

// ErrUnknownStatus is returned when a callback reports a status that is not allowed for its flow kind,
// or when a stored record holds an unknown status.
var ErrUnknownStatus = errors.New("unknown request status")

// ErrInvalidState is returned when the correlation token of a callback or poll is unknown or expired.
var ErrInvalidState = errors.New("invalid state")

// ErrMissingID is returned when a poll does not specify a correlation token.
var ErrMissingID = errors.New("missing id")

// ErrExternalAPI is returned when the Verified ID API (or its token endpoint) returned an error.
var ErrExternalAPI = errors.New("Verified ID API error")

// failure is an error of one of the classes above, with a description meant for the caller.
type failure struct {
	class       error
	description string
	cause       error
}

func newFailure(class error, cause error, format string, args ...interface{}) error {
	return failure{class: class, cause: cause, description: fmt.Sprintf(format, args...)}
}

func (f failure) Error() string {
	return f.description
}

func (f failure) Is(target error) bool {
	return errors.Is(f.class, target)
}

func (f failure) Unwrap() error {
	return f.cause
}

// PollFailure is returned by the status projector when no status payload can be rendered for a token.
// Its Error() returns the JSON-encoded payload, which is reported to the caller as error description.
type PollFailure struct {
	class   error
	Payload StatusPayload
}

func (p PollFailure) Error() string {
	data, _ := json.Marshal(p.Payload)
	return string(data)
}

func (p PollFailure) Is(target error) bool {
	return errors.Is(p.class, target)
}

// TokenError is returned when no access token for the Verified ID API could be acquired.
type TokenError struct {
	Code        string
	Description string
	cause       error
}

func (t TokenError) Error() string {
	return t.Description
}

func (t TokenError) Is(target error) bool {
	return target == ErrExternalAPI
}

func (t TokenError) Unwrap() error {
	return t.cause
}

// APIError is returned when the Verified ID API rejected a request.
type APIError struct {
	core.HttpError
	// Request holds the JSON payload that was rejected.
	Request []byte
}

func (a APIError) Error() string {
	return "Verified ID API error response: " + string(a.ResponseBody)
}

func (a APIError) Is(target error) bool {
	return target == ErrExternalAPI
}

func (a APIError) Unwrap() error {
	return a.HttpError
}
