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

	"github.com/spf13/pflag"
)

// DefaultConfig returns the default configuration for the HTTP engine.
func DefaultConfig() Config {
	return Config{
		InterfaceConfig: InterfaceConfig{
			Address: ":5000",
			Log:     LogMetadataLevel,
		},
	}
}

// Config is the top-level config struct for HTTP interfaces.
type Config struct {
	// InterfaceConfig contains the config for the default HTTP interface.
	InterfaceConfig `koanf:"default"`
}

// InterfaceConfig contains configuration for an HTTP interface, e.g. address.
type InterfaceConfig struct {
	// Address holds the interface address the HTTP service must be bound to, in the format of `interface:port` (e.g. localhost:5555).
	Address string `koanf:"address"`
	// CORS holds the configuration for Cross Origin Resource Sharing.
	CORS CORSConfig `koanf:"cors"`
	// Log specifies what should be logged of HTTP requests.
	Log LogLevel `koanf:"log"`
}

// LogLevel specifies what to log for incoming HTTP traffic.
type LogLevel string

const (
	// LogNothingLevel indicates nothing will be logged for incoming HTTP traffic.
	LogNothingLevel LogLevel = "nothing"
	// LogMetadataLevel indicates that only metadata (HTTP URI, method, response code, etc) will be logged for incoming HTTP traffic.
	LogMetadataLevel LogLevel = "metadata"
	// LogMetadataAndBodyLevel indicates that metadata and full request/reply bodies will be logged for incoming HTTP traffic.
	LogMetadataAndBodyLevel LogLevel = "metadata-and-body"
)

func (l LogLevel) valid() bool {
	switch l {
	case LogNothingLevel, LogMetadataLevel, LogMetadataAndBodyLevel:
		return true
	}
	return false
}

// CORSConfig contains configuration for Cross Origin Resource Sharing.
type CORSConfig struct {
	// Origin specifies the AllowOrigin option. If no origins are given CORS is considered to be disabled.
	Origin []string `koanf:"origin"`
}

// Enabled returns whether CORS is enabled according to this configuration.
func (cors CORSConfig) Enabled() bool {
	return len(cors.Origin) > 0
}

// FlagSet defines the set of flags that sets the HTTP engine configuration.
func FlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("http", pflag.ContinueOnError)
	defs := DefaultConfig()
	flags.String("http.default.address", defs.Address, "Address and port the server will be listening to.")
	flags.StringSlice("http.default.cors.origin", defs.CORS.Origin, "When set, enables CORS from the specified origins.")
	flags.String("http.default.log", string(defs.Log), fmt.Sprintf("What to log about HTTP requests. Options are '%s', '%s' (log request method, URI, IP and response code), and '%s' (log the request and response body, in addition to the metadata).", LogNothingLevel, LogMetadataLevel, LogMetadataAndBodyLevel))
	return flags
}
