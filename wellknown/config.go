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

import "github.com/spf13/pflag"

// Config holds the configuration of the well-known documents engine.
type Config struct {
	// Directory contains did.json and did-configuration.json.
	Directory string `koanf:"directory"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{Directory: "./resources"}
}

// FlagSet defines the set of flags that sets the well-known documents configuration.
func FlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("wellknown", pflag.ContinueOnError)
	flags.String("wellknown.directory", DefaultConfig().Directory, "Directory containing the did.json and did-configuration.json documents "+
		"served under /.well-known. Missing documents are answered with 404.")
	return flags
}
