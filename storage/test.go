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
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/nuts-foundation/verifiedid-broker/core"
)

// NewTestInMemorySessionDatabase creates an in-memory session database that is closed when the test finishes.
func NewTestInMemorySessionDatabase(t *testing.T) *InMemorySessionDatabase {
	db := NewInMemorySessionDatabase()
	t.Cleanup(func() {
		db.Close()
	})
	return db
}

// NewTestStorageEngine creates a configured storage engine with in-memory session storage and the given TTL.
// It is shut down when the test finishes.
func NewTestStorageEngine(t *testing.T, ttl time.Duration) Engine {
	result := New().(*engine)
	result.config.Session.TTL = ttl
	if err := result.Configure(core.TestServerConfig(core.ServerConfig{})); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = result.Shutdown()
	})
	return result
}

// NewTestStorageEngineRedis creates a storage engine backed by an in-process Redis server (miniredis).
// The server is returned so tests can manipulate time.
func NewTestStorageEngineRedis(t *testing.T) (Engine, *miniredis.Miniredis) {
	redis := miniredis.RunT(t)
	result := New().(*engine)
	result.config.Redis = RedisConfig{Address: redis.Addr()}
	if err := result.Configure(core.TestServerConfig(core.ServerConfig{})); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		_ = result.Shutdown()
	})
	return result, redis
}
