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

// Package mem provides the engine's in-memory Table: the only storage
// implementation the core itself ships. It is an identity-keyed map from
// row id to sql.Row, guarded by a single mutex so that each Get/Put/Remove
// call is atomic, matching the single-threaded cooperative scheduling
// model the core assumes (spec §5: the Memory Table is the only shared
// mutable state, and the single-threaded model makes atomicity-per-call
// sufficient without a reader-writer protocol being mandated by the core).
package mem

import (
	"sync"

	"github.com/quillsql/quill/sql"
)

// Table is an in-memory, identity-keyed row store.
type Table struct {
	mu   sync.RWMutex
	rows map[int64]sql.Row
}

// NewTable returns an empty Table.
func NewTable() *Table {
	return &Table{rows: make(map[int64]sql.Row)}
}

// Get implements sql.Table. An empty ids slice returns a snapshot of every
// row currently stored, in unspecified (map iteration) order.
func (t *Table) Get(ctx *sql.Context, ids []int64) ([]sql.Row, error) {
	if err := ctx.CheckCancelled(); err != nil {
		return nil, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()

	if len(ids) == 0 {
		out := make([]sql.Row, 0, len(t.rows))
		for _, r := range t.rows {
			out = append(out, r.Clone())
		}
		return out, nil
	}

	out := make([]sql.Row, 0, len(ids))
	for _, id := range ids {
		if r, ok := t.rows[id]; ok {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

// Put implements sql.Table. All rows become visible atomically with
// respect to any concurrent Get/Remove.
func (t *Table) Put(ctx *sql.Context, rows []sql.Row) error {
	if err := ctx.CheckCancelled(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	for _, r := range rows {
		t.rows[r.ID] = r.Clone()
	}
	return nil
}

// Remove implements sql.Table, including the "empty or full-length means
// remove everything" convention: a deliberate, if unusual, property of the
// core that must be preserved rather than quietly special-cased away.
func (t *Table) Remove(ctx *sql.Context, ids []int64) error {
	if err := ctx.CheckCancelled(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if len(ids) == 0 || len(ids) == len(t.rows) {
		t.rows = make(map[int64]sql.Row)
		return nil
	}
	for _, id := range ids {
		delete(t.rows, id)
	}
	return nil
}

// Len implements sql.Table.
func (t *Table) Len(ctx *sql.Context) (int, error) {
	if err := ctx.CheckCancelled(); err != nil {
		return 0, err
	}
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.rows), nil
}

var _ sql.Table = (*Table)(nil)
