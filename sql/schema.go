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

// Column is schema metadata: a name, a declared Kind, and optional
// nullable/unique flags. Columns carry a stable back-reference to their
// parent TableSchema so predicate expressions can resolve qualified names.
type Column struct {
	Name     string
	Type     Kind
	Nullable bool
	Unique   bool
	Table    *TableSchema
}

func (c *Column) String() string {
	return fmt.Sprintf("Column(%s, %s, nullable=%v)", c.Name, c.Type, c.Nullable)
}

// Reference is a declared foreign-key-like reference from one table's
// column to another table's column. The core does not enforce referential
// integrity; it only exposes references for the schema model.
type Reference struct {
	Column      string
	RefTable    string
	RefColumn   string
}

// TableSchema is read-only metadata describing a table's shape: its
// columns, primary key, and declared references. It is the sole source of
// truth for name resolution in predicates and projections.
type TableSchema struct {
	Name       string
	Columns    []*Column
	PrimaryKey string
	References []Reference
}

// NewTableSchema builds a TableSchema and back-links each Column to it.
func NewTableSchema(name string, primaryKey string, columns ...*Column) *TableSchema {
	t := &TableSchema{Name: name, PrimaryKey: primaryKey, Columns: columns}
	for _, c := range columns {
		c.Table = t
	}
	return t
}

// Column looks up a column by name.
func (t *TableSchema) Column(name string) (*Column, bool) {
	for _, c := range t.Columns {
		if c.Name == name {
			return c, true
		}
	}
	return nil, false
}

// ColumnNames returns the schema's column names in declaration order.
func (t *TableSchema) ColumnNames() []string {
	out := make([]string, len(t.Columns))
	for i, c := range t.Columns {
		out[i] = c.Name
	}
	return out
}

func (t *TableSchema) String() string {
	s := fmt.Sprintf("Table(%s)\n", t.Name)
	for i, c := range t.Columns {
		branch := "├─"
		if i == len(t.Columns)-1 {
			branch = "└─"
		}
		s += fmt.Sprintf(" %s %s\n", branch, c)
	}
	return s
}
