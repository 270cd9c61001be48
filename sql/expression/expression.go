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

// Package expression implements predicate expressions: a tree of
// comparison and boolean nodes, each exposing a pure Evaluate(row) -> bool
// (more generally, Evaluate(row) -> Value, with boolean predicates wrapping
// a Value of Kind Bool).
package expression

import (
	"fmt"

	"github.com/quillsql/quill/sql"
)

// ColumnRef names a column a predicate or projection references, optionally
// qualified by table name (qualification is required once more than one
// table is in scope).
type ColumnRef struct {
	Table  string
	Column string
}

func (c ColumnRef) String() string {
	if c.Table == "" {
		return c.Column
	}
	return c.Table + "." + c.Column
}

// Expression is a node in a predicate or value-computation tree.
type Expression interface {
	fmt.Stringer
	// Evaluate computes this expression's value against one composite row.
	Evaluate(ctx *sql.Context, row sql.CompositeRow) (sql.Value, error)
	// Columns returns every column this expression (transitively)
	// references, used by the planner's push-down rewrites.
	Columns() []ColumnRef
	// Children returns the expression's immediate subexpressions.
	Children() []Expression
}

// Literal is a constant Value.
type Literal struct {
	Value sql.Value
}

// NewLiteral returns a Literal expression wrapping v.
func NewLiteral(v sql.Value) *Literal { return &Literal{Value: v} }

func (l *Literal) Evaluate(ctx *sql.Context, row sql.CompositeRow) (sql.Value, error) {
	return l.Value, nil
}
func (l *Literal) Columns() []ColumnRef   { return nil }
func (l *Literal) Children() []Expression { return nil }
func (l *Literal) String() string         { return l.Value.String() }

// GetField resolves a (possibly table-qualified) column reference against
// the composite row in scope.
type GetField struct {
	Ref ColumnRef
}

// NewGetField returns a GetField for the given table/column.
func NewGetField(table, column string) *GetField {
	return &GetField{Ref: ColumnRef{Table: table, Column: column}}
}

func (g *GetField) Evaluate(ctx *sql.Context, row sql.CompositeRow) (sql.Value, error) {
	v, ok := row.Resolve(g.Ref.Table, g.Ref.Column)
	if !ok {
		return sql.Absent(), sql.ErrPlan.New(fmt.Sprintf("ambiguous or unresolved column reference %s", g.Ref))
	}
	return v, nil
}
func (g *GetField) Columns() []ColumnRef   { return []ColumnRef{g.Ref} }
func (g *GetField) Children() []Expression { return nil }
func (g *GetField) String() string         { return g.Ref.String() }

func childColumns(children ...Expression) []ColumnRef {
	var out []ColumnRef
	for _, c := range children {
		out = append(out, c.Columns()...)
	}
	return out
}
