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

import "fmt"

// Row is the unit of storage: a non-negative integer identity, unique
// within its table, plus a payload addressable by column name.
type Row struct {
	ID     int64
	Values map[string]Value
}

// NewRow creates an empty-payload Row with the given id.
func NewRow(id int64) Row {
	return Row{ID: id, Values: make(map[string]Value)}
}

// RowWithValues creates a Row from an id and a payload map. The map is
// copied so the caller's map may be reused.
func RowWithValues(id int64, values map[string]Value) Row {
	r := NewRow(id)
	for k, v := range values {
		r.Values[k] = v
	}
	return r
}

// Get returns the value of the named column, or Absent() if the payload
// does not carry that column.
func (r Row) Get(column string) Value {
	if v, ok := r.Values[column]; ok {
		return v
	}
	return Absent()
}

// With returns a copy of r with column set to v.
func (r Row) With(column string, v Value) Row {
	out := r.Clone()
	out.Values[column] = v
	return out
}

// Clone returns a deep-enough copy of r (the Values map is copied; Value is
// itself immutable).
func (r Row) Clone() Row {
	out := Row{ID: r.ID, Values: make(map[string]Value, len(r.Values))}
	for k, v := range r.Values {
		out.Values[k] = v
	}
	return out
}

func (r Row) String() string {
	return fmt.Sprintf("Row(%d, %v)", r.ID, r.Values)
}

// CompositeRow is a result row produced mid-plan: a mapping from table name
// to that table's contributed Row, per spec's definition of a Relation's
// element. Projection collapses this into a flat or nested OutputRow
// depending on how many tables are in scope.
type CompositeRow struct {
	byTable map[string]Row
}

// NewCompositeRow returns an empty CompositeRow.
func NewCompositeRow() CompositeRow {
	return CompositeRow{byTable: make(map[string]Row)}
}

// With returns a copy of c with table's contribution set to row.
func (c CompositeRow) With(table string, row Row) CompositeRow {
	out := CompositeRow{byTable: make(map[string]Row, len(c.byTable)+1)}
	for k, v := range c.byTable {
		out.byTable[k] = v
	}
	out.byTable[table] = row
	return out
}

// Get returns the Row contributed by the named table, if present.
func (c CompositeRow) Get(table string) (Row, bool) {
	r, ok := c.byTable[table]
	return r, ok
}

// Tables returns the names of every table contributing a Row to c.
func (c CompositeRow) Tables() []string {
	out := make([]string, 0, len(c.byTable))
	for k := range c.byTable {
		out = append(out, k)
	}
	return out
}

// TableCount returns how many tables are in scope for this composite row.
func (c CompositeRow) TableCount() int {
	return len(c.byTable)
}

// Merge returns a copy of c with every table contribution of o added,
// overwriting on name collision. Used by CrossProduct and Join to combine
// one row from each side into a single wider composite row.
func (c CompositeRow) Merge(o CompositeRow) CompositeRow {
	out := CompositeRow{byTable: make(map[string]Row, len(c.byTable)+len(o.byTable))}
	for k, v := range c.byTable {
		out.byTable[k] = v
	}
	for k, v := range o.byTable {
		out.byTable[k] = v
	}
	return out
}

// Resolve looks up a (possibly unqualified) column reference. If table is
// empty and exactly one table is in scope, that table is used; if table is
// empty and more than one table is in scope, the column is ambiguous and
// ok is false.
func (c CompositeRow) Resolve(table, column string) (Value, bool) {
	if table != "" {
		r, ok := c.byTable[table]
		if !ok {
			return Absent(), false
		}
		v, ok := r.Values[column]
		if !ok {
			return Absent(), true
		}
		return v, true
	}
	if len(c.byTable) == 1 {
		for _, r := range c.byTable {
			v, ok := r.Values[column]
			if !ok {
				return Absent(), true
			}
			return v, true
		}
	}
	return Absent(), false
}

// Relation is a finite sequence of composite result rows, the output of a
// physical operator.
type Relation []CompositeRow
