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

package expression

import (
	"fmt"

	"github.com/quillsql/quill/sql"
)

// And is a conjunction of two boolean subexpressions.
type And struct {
	Left, Right Expression
}

// NewAnd builds an And node.
func NewAnd(left, right Expression) *And { return &And{Left: left, Right: right} }

func (a *And) Evaluate(ctx *sql.Context, row sql.CompositeRow) (sql.Value, error) {
	lv, err := a.Left.Evaluate(ctx, row)
	if err != nil {
		return sql.Absent(), err
	}
	if lv.Kind() == sql.KindBool && !lv.Bool() {
		return sql.Bool(false), nil
	}
	rv, err := a.Right.Evaluate(ctx, row)
	if err != nil {
		return sql.Absent(), err
	}
	return sql.Bool(boolOf(lv) && boolOf(rv)), nil
}
func (a *And) Columns() []ColumnRef   { return childColumns(a.Left, a.Right) }
func (a *And) Children() []Expression { return []Expression{a.Left, a.Right} }
func (a *And) String() string         { return fmt.Sprintf("(%s AND %s)", a.Left, a.Right) }

// Or is a disjunction of two boolean subexpressions.
type Or struct {
	Left, Right Expression
}

// NewOr builds an Or node.
func NewOr(left, right Expression) *Or { return &Or{Left: left, Right: right} }

func (o *Or) Evaluate(ctx *sql.Context, row sql.CompositeRow) (sql.Value, error) {
	lv, err := o.Left.Evaluate(ctx, row)
	if err != nil {
		return sql.Absent(), err
	}
	if lv.Kind() == sql.KindBool && lv.Bool() {
		return sql.Bool(true), nil
	}
	rv, err := o.Right.Evaluate(ctx, row)
	if err != nil {
		return sql.Absent(), err
	}
	return sql.Bool(boolOf(lv) || boolOf(rv)), nil
}
func (o *Or) Columns() []ColumnRef   { return childColumns(o.Left, o.Right) }
func (o *Or) Children() []Expression { return []Expression{o.Left, o.Right} }
func (o *Or) String() string         { return fmt.Sprintf("(%s OR %s)", o.Left, o.Right) }

// Not negates a single boolean subexpression.
type Not struct {
	Child Expression
}

// NewNot builds a Not node.
func NewNot(child Expression) *Not { return &Not{Child: child} }

func (n *Not) Evaluate(ctx *sql.Context, row sql.CompositeRow) (sql.Value, error) {
	v, err := n.Child.Evaluate(ctx, row)
	if err != nil {
		return sql.Absent(), err
	}
	return sql.Bool(!boolOf(v)), nil
}
func (n *Not) Columns() []ColumnRef   { return n.Child.Columns() }
func (n *Not) Children() []Expression { return []Expression{n.Child} }
func (n *Not) String() string         { return fmt.Sprintf("(NOT %s)", n.Child) }

func boolOf(v sql.Value) bool {
	return v.Kind() == sql.KindBool && v.Bool()
}

// SplitConjunction decomposes a top-level chain of And nodes into its leaf
// conjuncts, used by the predicate push-down rewrite rule.
func SplitConjunction(e Expression) []Expression {
	and, ok := e.(*And)
	if !ok {
		return []Expression{e}
	}
	return append(SplitConjunction(and.Left), SplitConjunction(and.Right)...)
}

// JoinConjuncts rebuilds a single expression from a non-empty slice of
// conjuncts, the inverse of SplitConjunction.
func JoinConjuncts(exprs []Expression) Expression {
	if len(exprs) == 0 {
		return nil
	}
	out := exprs[0]
	for _, e := range exprs[1:] {
		out = NewAnd(out, e)
	}
	return out
}
