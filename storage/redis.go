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
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/nuts-foundation/verifiedid-broker/core"
	"github.com/nuts-foundation/verifiedid-broker/storage/log"
	"github.com/redis/go-redis/v9"
)

// redisPingTimeout bounds the connectivity check performed when the Redis session database is created.
var redisPingTimeout = 5 * time.Second

// RedisConfig specifies config for Redis databases.
type RedisConfig struct {
	Address  string `koanf:"address"`
	Username string `koanf:"username"`
	Password string `koanf:"password"`
	// Database is used as key prefix, so multiple deployments can share a Redis server.
	Database string `koanf:"database"`
}

// isConfigured returns true if config the indicates Redis support should be enabled.
func (r RedisConfig) isConfigured() bool {
	return len(r.Address) > 0
}

func (r RedisConfig) parse() (*redis.Options, error) {
	// If not an address URL, assume simply TCP with host:port
	addr := r.Address
	if !isRedisURL(addr) {
		addr = "redis://" + addr
	}

	opts, err := redis.ParseURL(addr)
	if err != nil {
		return nil, err
	}

	if len(r.Username) > 0 {
		opts.Username = r.Username
	}
	if len(r.Password) > 0 {
		opts.Password = r.Password
	}
	return opts, nil
}

func isRedisURL(address string) bool {
	return strings.HasPrefix(address, "redis://") ||
		strings.HasPrefix(address, "rediss://") ||
		strings.HasPrefix(address, "unix://")
}

// createRedisSessionDatabase connects to the configured Redis server and verifies it is reachable.
func createRedisSessionDatabase(config RedisConfig) (*RedisSessionDatabase, error) {
	opts, err := config.parse()
	if err != nil {
		return nil, fmt.Errorf("invalid Redis address: %w", err)
	}
	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("unable to connect to Redis (address=%s): %w", opts.Addr, err)
	}
	log.Logger().
		WithField(core.LogFieldStore, config.Database).
		Infof("Connected to Redis database (address=%s)", opts.Addr)
	return NewRedisSessionDatabase(client, config.Database), nil
}
