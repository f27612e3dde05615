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

package storage

import (
	"time"

	"github.com/spf13/pflag"
)

// DefaultSessionTTL is the default time-to-live of session entries.
const DefaultSessionTTL = 300 * time.Second

// Config specifies config for the storage engine.
type Config struct {
	Session SessionConfig `koanf:"session"`
	Redis   RedisConfig   `koanf:"redis"`
}

// SessionConfig specifies config for session data.
type SessionConfig struct {
	// TTL is the time-to-live of session entries, refreshed on every write.
	TTL time.Duration `koanf:"ttl"`
}

// DefaultConfig returns the default configuration for the storage engine.
func DefaultConfig() Config {
	return Config{
		Session: SessionConfig{TTL: DefaultSessionTTL},
	}
}

// FlagSet defines the set of flags that sets the storage engine configuration.
func FlagSet() *pflag.FlagSet {
	flags := pflag.NewFlagSet("storage", pflag.ContinueOnError)
	defs := DefaultConfig()
	flags.Duration("storage.session.ttl", defs.Session.TTL, "Time-to-live of correlation records. It is refreshed every time a callback updates a record.")
	flags.String("storage.redis.address", defs.Redis.Address, "Redis database server address. This can be a simple 'host:port' or a Redis connection URL with scheme, auth and other options. "+
		"If not set, session data is kept in memory.")
	flags.String("storage.redis.username", defs.Redis.Username, "Redis database username. If set, it overrides the username in the connection URL.")
	flags.String("storage.redis.password", defs.Redis.Password, "Redis database password. If set, it overrides the password in the connection URL.")
	flags.String("storage.redis.database", defs.Redis.Database, "Redis database name, which is used as prefix every key. Can be used to have multiple instances use the same Redis instance.")
	return flags
}
