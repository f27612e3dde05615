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
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/nuts-foundation/verifiedid-broker/storage/log"
	"github.com/redis/go-redis/v9"
)

var _ SessionDatabase = (*RedisSessionDatabase)(nil)
var _ SessionStore = (*redisSessionStore)(nil)

// maxUpdateAttempts is the number of optimistic transactions tried by Update before giving up with ErrUpdateConflict.
const maxUpdateAttempts = 10

// NewRedisSessionDatabase creates a SessionDatabase on top of the given Redis client.
// The prefix (may be empty) is prepended to every key.
func NewRedisSessionDatabase(client redis.UniversalClient, prefix string) *RedisSessionDatabase {
	return &RedisSessionDatabase{
		client: client,
		prefix: prefix,
	}
}

// RedisSessionDatabase is a SessionDatabase that stores entries in Redis, using Redis' native key expiry.
type RedisSessionDatabase struct {
	client redis.UniversalClient
	prefix string
}

func (s *RedisSessionDatabase) GetStore(ttl time.Duration, keys ...string) SessionStore {
	var prefixParts []string
	if len(s.prefix) > 0 {
		prefixParts = append(prefixParts, s.prefix)
	}
	prefixParts = append(prefixParts, keys...)
	return redisSessionStore{
		client:    s.client,
		ttl:       ttl,
		storeName: strings.Join(prefixParts, "."),
	}
}

func (s *RedisSessionDatabase) Backend() string {
	return "redis"
}

func (s *RedisSessionDatabase) Close() {
	if err := s.client.Close(); err != nil {
		log.Logger().WithError(err).Error("Failed to close Redis client")
	}
}

type redisSessionStore struct {
	client    redis.UniversalClient
	ttl       time.Duration
	storeName string
}

func (s redisSessionStore) Delete(key string) error {
	return s.client.Del(context.Background(), s.getFullKey(key)).Err()
}

func (s redisSessionStore) Exists(key string) bool {
	result, err := s.client.Exists(context.Background(), s.getFullKey(key)).Result()
	if err != nil {
		log.Logger().WithError(err).Error("Failed to check whether key exists in Redis")
		return false
	}
	return result > 0
}

func (s redisSessionStore) Get(key string, target interface{}) error {
	data, err := s.client.Get(context.Background(), s.getFullKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return err
	}
	return json.Unmarshal(data, target)
}

func (s redisSessionStore) Put(key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return s.client.Set(context.Background(), s.getFullKey(key), string(data), s.ttl).Err()
}

func (s redisSessionStore) Update(key string, target interface{}, fn func() error) error {
	ctx := context.Background()
	fullKey := s.getFullKey(key)
	txFn := func(tx *redis.Tx) error {
		data, err := tx.Get(ctx, fullKey).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrNotFound
			}
			return err
		}
		resetTarget(target)
		if err := json.Unmarshal(data, target); err != nil {
			return err
		}
		if err := fn(); err != nil {
			return err
		}
		updated, err := json.Marshal(target)
		if err != nil {
			return err
		}
		// XX: only write if the key still exists, so an entry that expired in the meantime is not recreated
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.SetArgs(ctx, fullKey, string(updated), redis.SetArgs{Mode: "XX", TTL: s.ttl})
			return nil
		})
		if errors.Is(err, redis.Nil) {
			return ErrNotFound
		}
		return err
	}
	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		err := s.client.Watch(ctx, txFn, fullKey)
		if !errors.Is(err, redis.TxFailedErr) {
			return err
		}
		log.Logger().Debugf("Optimistic Redis transaction failed, retrying (attempt=%d)", attempt)
	}
	return ErrUpdateConflict
}

func (s redisSessionStore) getFullKey(key string) string {
	if s.storeName == "" {
		return key
	}
	return s.storeName + "." + key
}

// resetTarget zeroes the value target points to, so a retried transaction does not see fields of an earlier attempt.
func resetTarget(target interface{}) {
	value := reflect.ValueOf(target)
	if value.Kind() == reflect.Ptr && !value.IsNil() {
		value.Elem().Set(reflect.Zero(value.Elem().Type()))
	}
}
