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
	"encoding/json"
	"hash/fnv"
	"strings"
	"sync"
	"time"

	"github.com/nuts-foundation/verifiedid-broker/storage/log"
)

var _ SessionDatabase = (*InMemorySessionDatabase)(nil)
var _ SessionStore = (*InMemorySessionStore)(nil)

var sessionStorePruneInterval = 10 * time.Minute

// keyLockStripes is the number of mutexes that serialize writers per key.
const keyLockStripes = 64

type expiringEntry struct {
	// Value stores the actual value as JSON
	Value  string
	Expiry time.Time
}

// InMemorySessionDatabase is an in memory database that holds session data on a KV basis.
// The entries map is guarded by mux, writers of the same key are additionally serialized through a striped lock,
// so that a read-modify-write of one key does not block writers of other keys.
type InMemorySessionDatabase struct {
	cancel   context.CancelFunc
	ctx      context.Context
	mux      sync.RWMutex
	keyLocks [keyLockStripes]sync.Mutex
	routines sync.WaitGroup
	entries  map[string]expiringEntry
}

// NewInMemorySessionDatabase creates a new in memory session database and starts pruning expired entries.
func NewInMemorySessionDatabase() *InMemorySessionDatabase {
	result := &InMemorySessionDatabase{
		entries: map[string]expiringEntry{},
	}
	result.ctx, result.cancel = context.WithCancel(context.Background())
	result.startPruning(sessionStorePruneInterval)
	return result
}

func (i *InMemorySessionDatabase) GetStore(ttl time.Duration, keys ...string) SessionStore {
	return InMemorySessionStore{
		ttl:      ttl,
		prefixes: keys,
		db:       i,
	}
}

func (i *InMemorySessionDatabase) Backend() string {
	return "memory"
}

// Len returns the number of entries currently held, including expired entries that have not been pruned yet.
func (i *InMemorySessionDatabase) Len() int {
	i.mux.RLock()
	defer i.mux.RUnlock()
	return len(i.entries)
}

func (i *InMemorySessionDatabase) Close() {
	// Signal pruner to stop and wait for it to finish
	i.cancel()
	i.routines.Wait()
}

func (i *InMemorySessionDatabase) startPruning(interval time.Duration) {
	ticker := time.NewTicker(interval)
	i.routines.Add(1)
	go func(ctx context.Context) {
		defer i.routines.Done()
		for {
			select {
			case <-ctx.Done():
				ticker.Stop()
				return
			case <-ticker.C:
				valsPruned := i.prune()
				if valsPruned > 0 {
					log.Logger().Debugf("Pruned %d expired session variables", valsPruned)
				}
			}
		}
	}(i.ctx)
}

func (i *InMemorySessionDatabase) prune() int {
	i.mux.Lock()
	defer i.mux.Unlock()

	moment := time.Now()

	var count int
	for key, entry := range i.entries {
		if entry.Expiry.Before(moment) {
			count++
			delete(i.entries, key)
		}
	}

	return count
}

func (i *InMemorySessionDatabase) keyLock(fullKey string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(fullKey))
	return &i.keyLocks[h.Sum32()%keyLockStripes]
}

// read returns the raw value for the given key, or false if it is absent or expired.
func (i *InMemorySessionDatabase) read(fullKey string) (string, bool) {
	i.mux.RLock()
	entry, ok := i.entries[fullKey]
	i.mux.RUnlock()
	if !ok {
		return "", false
	}
	if entry.Expiry.Before(time.Now()) {
		i.mux.Lock()
		// re-check, it might have been replaced in the meantime
		if current, ok := i.entries[fullKey]; ok && current.Expiry.Before(time.Now()) {
			delete(i.entries, fullKey)
		}
		i.mux.Unlock()
		return "", false
	}
	return entry.Value, true
}

// InMemorySessionStore is a SessionStore backed by an InMemorySessionDatabase.
type InMemorySessionStore struct {
	ttl      time.Duration
	prefixes []string
	db       *InMemorySessionDatabase
}

func (i InMemorySessionStore) Delete(key string) error {
	fullKey := i.getFullKey(key)
	lock := i.db.keyLock(fullKey)
	lock.Lock()
	defer lock.Unlock()

	i.db.mux.Lock()
	defer i.db.mux.Unlock()
	delete(i.db.entries, fullKey)
	return nil
}

func (i InMemorySessionStore) Exists(key string) bool {
	_, ok := i.db.read(i.getFullKey(key))
	return ok
}

func (i InMemorySessionStore) Get(key string, target interface{}) error {
	value, ok := i.db.read(i.getFullKey(key))
	if !ok {
		return ErrNotFound
	}
	return json.Unmarshal([]byte(value), target)
}

func (i InMemorySessionStore) Put(key string, value interface{}) error {
	bytes, err := json.Marshal(value)
	if err != nil {
		return err
	}
	fullKey := i.getFullKey(key)
	lock := i.db.keyLock(fullKey)
	lock.Lock()
	defer lock.Unlock()

	i.write(fullKey, bytes)
	return nil
}

func (i InMemorySessionStore) Update(key string, target interface{}, fn func() error) error {
	fullKey := i.getFullKey(key)
	lock := i.db.keyLock(fullKey)
	lock.Lock()
	defer lock.Unlock()

	value, ok := i.db.read(fullKey)
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal([]byte(value), target); err != nil {
		return err
	}
	if err := fn(); err != nil {
		return err
	}
	bytes, err := json.Marshal(target)
	if err != nil {
		return err
	}
	// the entry may have been pruned while fn was running
	if _, ok := i.db.read(fullKey); !ok {
		return ErrNotFound
	}
	i.write(fullKey, bytes)
	return nil
}

func (i InMemorySessionStore) write(fullKey string, bytes []byte) {
	i.db.mux.Lock()
	defer i.db.mux.Unlock()
	i.db.entries[fullKey] = expiringEntry{
		Value:  string(bytes),
		Expiry: time.Now().Add(i.ttl),
	}
}

func (i InMemorySessionStore) getFullKey(key string) string {
	return strings.Join(append(i.prefixes, key), "/")
}
