// Copyright © 2016 Abcum Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package catalog holds the process-wide set of tables, guarded by a
// single reader/writer lock so SELECT/DESCRIBE readers do not serialize
// against each other.
package catalog

import (
	"sync"

	"github.com/ebobrow/sequel/internal/table"
)

// ErrNoSuchTable is returned by View/Update callbacks that look up an
// unknown table name.
type ErrNoSuchTable struct{ Name string }

func (e *ErrNoSuchTable) Error() string { return "no such table: " + e.Name }

// Catalog is the shared registry of tables, safe for concurrent use by
// every connection's executor.
type Catalog struct {
	mu     sync.RWMutex
	tables map[string]*table.Table
}

// New returns an empty catalog.
func New() *Catalog {
	return &Catalog{tables: make(map[string]*table.Table)}
}

// View runs fn with a read lock held for its duration, used by the
// executor's read-only statements (SELECT, DESCRIBE). fn must not
// retain the map beyond its call.
func (c *Catalog) View(fn func(tables map[string]*table.Table) error) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return fn(c.tables)
}

// Update runs fn with the write lock held for its duration, used by the
// executor's mutating statements (INSERT, CREATE TABLE).
// Because CREATE TABLE AS SELECT both reads an existing table and
// writes a new one, it also uses Update so the whole statement is atomic.
func (c *Catalog) Update(fn func(tables map[string]*table.Table) error) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fn(c.tables)
}

// Lookup finds name in tables, or reports ErrNoSuchTable. A small helper
// shared by View/Update callbacks.
func Lookup(tables map[string]*table.Table, name string) (*table.Table, error) {
	t, ok := tables[name]
	if !ok {
		return nil, &ErrNoSuchTable{Name: name}
	}
	return t, nil
}
