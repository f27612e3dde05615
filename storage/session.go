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
	"errors"
	"time"
)

// ErrNotFound is returned when an entry is not present in a store, or when it has expired.
var ErrNotFound = errors.New("not found")

// ErrUpdateConflict is returned when an atomic update could not be completed because of concurrent writes.
var ErrUpdateConflict = errors.New("update conflict")

// SessionDatabase is a non-persistent database that holds session data on a KV basis.
// Keys could be correlation tokens, nonce's, etc.
// All entries are stored with a TTL, so they will be removed automatically.
type SessionDatabase interface {
	// GetStore returns a SessionStore with the given keys as key prefixes.
	// The keys are used to logically partition the store, eg: tenants and/or flows that are not allowed to overlap.
	// The TTL is applied to every value written through the store.
	GetStore(ttl time.Duration, keys ...string) SessionStore
	// Backend returns the name of the underlying storage technology, for diagnostics.
	Backend() string
	// Close stops any background processes and closes the underlying connections.
	Close()
}

// SessionStore is a key-value store that holds session data.
// The SessionStore is an abstraction for underlying storage, it automatically adds prefixes for logical partitions.
// Values are stored as JSON, the store never inspects them.
type SessionStore interface {
	// Delete deletes the entry for the given key.
	// It does not return an error if the key does not exist.
	Delete(key string) error
	// Exists returns true if the key exists.
	Exists(key string) bool
	// Get returns the value for the given key.
	// Returns ErrNotFound if the key does not exist or has expired.
	Get(key string, target interface{}) error
	// Put stores the given value for the given key, replacing any existing value.
	// The TTL of the entry starts anew.
	Put(key string, value interface{}) error
	// Update atomically reads the value for the given key into target, calls fn and writes target back with a refreshed TTL.
	// No other Update or Put for the same key can interleave. If fn returns an error, nothing is written and that error is returned.
	// Returns ErrNotFound if the key does not exist or has expired, in which case fn is not called and nothing is created.
	Update(key string, target interface{}, fn func() error) error
}
