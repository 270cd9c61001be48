// Copyright 2026 The Quill Authors.
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

package sql

// Table is the storage interface the core depends on: an identity-keyed
// association from row id to Row with bulk get/put/remove. Any storage
// implementation honoring this contract may back the engine; quill/mem
// provides the in-memory one.
//
// Every operation reports success/failure; failures are always
// storage-level (wrapped as ErrStorage by callers), never user errors.
type Table interface {
	// Get returns rows by id. If ids is empty, it returns a snapshot of
	// every currently stored row in unspecified order. Otherwise it
	// returns exactly those rows whose id is present in ids, in
	// unspecified order, silently skipping ids that aren't stored.
	Get(ctx *Context, ids []int64) ([]Row, error)

	// Put upserts each row by its id, overwriting any existing row with
	// the same id. A single call is atomic: either every row becomes
	// visible or none do.
	Put(ctx *Context, rows []Row) error

	// Remove deletes rows by id. If ids is empty, or its length equals the
	// table's current row count, the entire table is cleared; otherwise
	// exactly the listed ids are removed, skipping ids that are absent.
	// This "empty means all" convention is a deliberate, if unusual,
	// property of the core and must be preserved by every implementation.
	Remove(ctx *Context, ids []int64) error

	// Len reports the table's current row count.
	Len(ctx *Context) (int, error)
}

// Database binds a TableSchema to the Table (storage) that backs it.
type Database struct {
	Schema  *TableSchema
	Storage Table
}

// Catalog is the read-only-after-construction schema model: the set of
// registered tables, with lookup by name. It is the sole source of truth
// for name resolution used by the planner.
type Catalog struct {
	dbs map[string]*Database
	// order preserves registration order for deterministic iteration in
	// Tables(), which callers rely on for stable error messages and plans.
	order []string
}

// NewCatalog returns an empty Catalog.
func NewCatalog() *Catalog {
	return &Catalog{dbs: make(map[string]*Database)}
}

// Register adds a table (schema + storage) to the catalog. It returns an
// error if a table with the same name is already registered.
func (c *Catalog) Register(schema *TableSchema, storage Table) error {
	if _, ok := c.dbs[schema.Name]; ok {
		return ErrValidation.New("table already registered: " + schema.Name)
	}
	c.dbs[schema.Name] = &Database{Schema: schema, Storage: storage}
	c.order = append(c.order, schema.Name)
	return nil
}

// Table looks up a table's schema and storage by name.
func (c *Catalog) Table(name string) (*TableSchema, Table, bool) {
	db, ok := c.dbs[name]
	if !ok {
		return nil, nil, false
	}
	return db.Schema, db.Storage, true
}

// Tables returns every registered table's schema, in registration order.
func (c *Catalog) Tables() []*TableSchema {
	out := make([]*TableSchema, 0, len(c.order))
	for _, name := range c.order {
		out = append(out, c.dbs[name].Schema)
	}
	return out
}
