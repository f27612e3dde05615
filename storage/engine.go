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

	"github.com/nuts-foundation/verifiedid-broker/core"
	"github.com/nuts-foundation/verifiedid-broker/storage/log"
)

const moduleName = "Storage"

var _ Engine = (*engine)(nil)
var _ core.Injectable = (*engine)(nil)
var _ core.ViewableDiagnostics = (*engine)(nil)

// New creates a new instance of the storage engine.
func New() Engine {
	return &engine{
		config: DefaultConfig(),
	}
}

type engine struct {
	config          Config
	sessionDatabase SessionDatabase
}

func (e *engine) Name() string {
	return moduleName
}

func (e *engine) Config() interface{} {
	return &e.config
}

// Configure creates the session database, backed by Redis when configured, in memory otherwise.
func (e *engine) Configure(_ core.ServerConfig) error {
	if e.config.Session.TTL <= 0 {
		return errors.New("storage.session.ttl must be positive")
	}
	if e.config.Redis.isConfigured() {
		db, err := createRedisSessionDatabase(e.config.Redis)
		if err != nil {
			return err
		}
		e.sessionDatabase = db
		return nil
	}
	log.Logger().Info("Redis not configured, using in-memory session storage")
	e.sessionDatabase = NewInMemorySessionDatabase()
	return nil
}

func (e *engine) Start() error {
	return nil
}

func (e *engine) Shutdown() error {
	if e.sessionDatabase != nil {
		e.sessionDatabase.Close()
	}
	return nil
}

// GetSessionDatabase returns the session database. Configure must have been called.
func (e *engine) GetSessionDatabase() SessionDatabase {
	return e.sessionDatabase
}

// SessionTTL returns the configured time-to-live of session entries.
func (e *engine) SessionTTL() time.Duration {
	return e.config.Session.TTL
}

func (e *engine) Diagnostics() []core.DiagnosticResult {
	if e.sessionDatabase == nil {
		return nil
	}
	results := []core.DiagnosticResult{
		&core.GenericDiagnosticResult{Title: "session_backend", Value: e.sessionDatabase.Backend()},
		&core.GenericDiagnosticResult{Title: "session_ttl", Value: e.config.Session.TTL.String()},
	}
	if inMemory, ok := e.sessionDatabase.(*InMemorySessionDatabase); ok {
		results = append(results, &core.GenericDiagnosticResult{Title: "session_entries", Value: inMemory.Len()})
	}
	return results
}
