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

// CompareOp enumerates the comparison operators a Comparison node may use.
type CompareOp int

const (
	OpEqual CompareOp = iota
	OpNotEqual
	OpLessThan
	OpLessOrEqual
	OpGreaterThan
	OpGreaterOrEqual
)

func (op CompareOp) String() string {
	switch op {
	case OpEqual:
		return "="
	case OpNotEqual:
		return "<>"
	case OpLessThan:
		return "<"
	case OpLessOrEqual:
		return "<="
	case OpGreaterThan:
		return ">"
	case OpGreaterOrEqual:
		return ">="
	default:
		return "?"
	}
}

// Comparison is a leaf predicate node comparing two subexpressions, each
// typically a GetField or a Literal (join predicates compare two
// GetFields from different tables; filter predicates compare a GetField
// against a Literal).
type Comparison struct {
	Op          CompareOp
	Left, Right Expression
}

// NewComparison builds a Comparison node.
func NewComparison(op CompareOp, left, right Expression) *Comparison {
	return &Comparison{Op: op, Left: left, Right: right}
}

func (c *Comparison) Evaluate(ctx *sql.Context, row sql.CompositeRow) (sql.Value, error) {
	lv, err := c.Left.Evaluate(ctx, row)
	if err != nil {
		return sql.Absent(), err
	}
	rv, err := c.Right.Evaluate(ctx, row)
	if err != nil {
		return sql.Absent(), err
	}

	switch c.Op {
	case OpEqual:
		return sql.Bool(lv.Equal(rv)), nil
	case OpNotEqual:
		return sql.Bool(!lv.Equal(rv)), nil
	}

	cmp, ok := lv.Compare(rv)
	if !ok {
		// Incomparable operands (including either side Absent, for the
		// ordering operators) never satisfy an ordering comparison -- this
		// is the engine's decided strict behaviour rather than SQL's
		// three-valued NULL propagation (see spec's Non-goals).
		return sql.Bool(false), nil
	}
	switch c.Op {
	case OpLessThan:
		return sql.Bool(cmp < 0), nil
	case OpLessOrEqual:
		return sql.Bool(cmp <= 0), nil
	case OpGreaterThan:
		return sql.Bool(cmp > 0), nil
	case OpGreaterOrEqual:
		return sql.Bool(cmp >= 0), nil
	default:
		return sql.Absent(), sql.ErrPlan.New(fmt.Sprintf("unknown comparison operator %v", c.Op))
	}
}

func (c *Comparison) Columns() []ColumnRef   { return childColumns(c.Left, c.Right) }
func (c *Comparison) Children() []Expression { return []Expression{c.Left, c.Right} }
func (c *Comparison) String() string {
	return fmt.Sprintf("(%s %s %s)", c.Left, c.Op, c.Right)
}

// WithChildren returns a copy of c with new Left/Right subexpressions.
func (c *Comparison) WithChildren(left, right Expression) *Comparison {
	return &Comparison{Op: c.Op, Left: left, Right: right}
}

// IsAbsent tests whether its child evaluates to the Absent marker. This is
// the one null-aware primitive the predicate tree exposes (spec's
// Non-goals explicitly scope out general three-valued logic beyond this).
type IsAbsent struct {
	Child Expression
	Negate bool
}

// NewIsAbsent returns an IS ABSENT predicate; negate=true gives IS NOT
// ABSENT.
func NewIsAbsent(child Expression, negate bool) *IsAbsent {
	return &IsAbsent{Child: child, Negate: negate}
}

func (n *IsAbsent) Evaluate(ctx *sql.Context, row sql.CompositeRow) (sql.Value, error) {
	v, err := n.Child.Evaluate(ctx, row)
	if err != nil {
		return sql.Absent(), err
	}
	result := v.IsAbsent()
	if n.Negate {
		result = !result
	}
	return sql.Bool(result), nil
}
func (n *IsAbsent) Columns() []ColumnRef   { return n.Child.Columns() }
func (n *IsAbsent) Children() []Expression { return []Expression{n.Child} }
func (n *IsAbsent) String() string {
	if n.Negate {
		return fmt.Sprintf("(%s IS NOT ABSENT)", n.Child)
	}
	return fmt.Sprintf("(%s IS ABSENT)", n.Child)
}
