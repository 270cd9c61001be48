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

package plan

import (
	"fmt"

	"github.com/quillsql/quill/sql"
	"github.com/quillsql/quill/sql/expression"
)

// Node is a logical relational-algebra node. It owns 0, 1, or 2 children;
// the tree has exactly one root, and each node's output schema is
// derivable from its inputs and its own kind.
type Node interface {
	fmt.Stringer
	Children() []Node
	// WithChildren returns a copy of this node with the given children,
	// used by the rewrite passes to rebuild the tree bottom-up.
	WithChildren(children ...Node) (Node, error)
}

// TableAccess is a leaf node reading every row of one table.
type TableAccess struct {
	Table string
}

func NewTableAccess(table string) *TableAccess { return &TableAccess{Table: table} }

func (n *TableAccess) Children() []Node { return nil }
func (n *TableAccess) WithChildren(children ...Node) (Node, error) {
	if len(children) != 0 {
		return nil, childCountErr("TableAccess", 0, len(children))
	}
	return n, nil
}
func (n *TableAccess) String() string { return fmt.Sprintf("TableAccess(%s)", n.Table) }

// Select is a one-child filter node.
type Select struct {
	Predicate expression.Expression
	Child     Node
}

func NewSelect(pred expression.Expression, child Node) *Select {
	return &Select{Predicate: pred, Child: child}
}

func (n *Select) Children() []Node { return []Node{n.Child} }
func (n *Select) WithChildren(children ...Node) (Node, error) {
	if len(children) != 1 {
		return nil, childCountErr("Select", 1, len(children))
	}
	return &Select{Predicate: n.Predicate, Child: children[0]}, nil
}
func (n *Select) String() string { return fmt.Sprintf("Select(%s)", n.Predicate) }

// Project is a one-child node restricting (and possibly aggregating) the
// output columns.
type Project struct {
	Columns []ProjectedColumn
	Child   Node
}

func NewProject(cols []ProjectedColumn, child Node) *Project {
	return &Project{Columns: cols, Child: child}
}

func (n *Project) Children() []Node { return []Node{n.Child} }
func (n *Project) WithChildren(children ...Node) (Node, error) {
	if len(children) != 1 {
		return nil, childCountErr("Project", 1, len(children))
	}
	return &Project{Columns: n.Columns, Child: children[0]}, nil
}
func (n *Project) String() string { return fmt.Sprintf("Project(%v)", n.Columns) }

// HasAggregate reports whether any projected column is an aggregate.
func (n *Project) HasAggregate() bool {
	for _, c := range n.Columns {
		if c.IsAggregate() {
			return true
		}
	}
	return false
}

// CrossProduct is a two-child node producing the Cartesian product of its
// children.
type CrossProduct struct {
	Left, Right Node
}

func NewCrossProduct(left, right Node) *CrossProduct {
	return &CrossProduct{Left: left, Right: right}
}

func (n *CrossProduct) Children() []Node { return []Node{n.Left, n.Right} }
func (n *CrossProduct) WithChildren(children ...Node) (Node, error) {
	if len(children) != 2 {
		return nil, childCountErr("CrossProduct", 2, len(children))
	}
	return &CrossProduct{Left: children[0], Right: children[1]}, nil
}
func (n *CrossProduct) String() string { return "CrossProduct" }

// Join is a two-child node keeping only tuples satisfying Predicate.
// LeftOuter marks a LEFT JOIN (unmatched left rows survive with the right
// side's columns Absent); false means an INNER JOIN.
type Join struct {
	Predicate   expression.Expression
	LeftOuter   bool
	Left, Right Node
}

func NewJoin(pred expression.Expression, left, right Node, leftOuter bool) *Join {
	return &Join{Predicate: pred, LeftOuter: leftOuter, Left: left, Right: right}
}

func (n *Join) Children() []Node { return []Node{n.Left, n.Right} }
func (n *Join) WithChildren(children ...Node) (Node, error) {
	if len(children) != 2 {
		return nil, childCountErr("Join", 2, len(children))
	}
	return &Join{Predicate: n.Predicate, LeftOuter: n.LeftOuter, Left: children[0], Right: children[1]}, nil
}
func (n *Join) String() string { return fmt.Sprintf("Join(%s)", n.Predicate) }

// OrderBy is a one-child node imposing a stable multi-column sort.
type OrderBy struct {
	Specs []OrderSpec
	Child Node
}

func NewOrderBy(specs []OrderSpec, child Node) *OrderBy {
	return &OrderBy{Specs: specs, Child: child}
}

func (n *OrderBy) Children() []Node { return []Node{n.Child} }
func (n *OrderBy) WithChildren(children ...Node) (Node, error) {
	if len(children) != 1 {
		return nil, childCountErr("OrderBy", 1, len(children))
	}
	return &OrderBy{Specs: n.Specs, Child: children[0]}, nil
}
func (n *OrderBy) String() string { return fmt.Sprintf("OrderBy(%v)", n.Specs) }

// Skip drops the first N rows of its child's output.
type Skip struct {
	N     int
	Child Node
}

func NewSkip(n int, child Node) *Skip { return &Skip{N: n, Child: child} }

func (n *Skip) Children() []Node { return []Node{n.Child} }
func (n *Skip) WithChildren(children ...Node) (Node, error) {
	if len(children) != 1 {
		return nil, childCountErr("Skip", 1, len(children))
	}
	return &Skip{N: n.N, Child: children[0]}, nil
}
func (n *Skip) String() string { return fmt.Sprintf("Skip(%d)", n.N) }

// Limit takes at most N rows of its child's output.
type Limit struct {
	N     int
	Child Node
}

func NewLimit(n int, child Node) *Limit { return &Limit{N: n, Child: child} }

func (n *Limit) Children() []Node { return []Node{n.Child} }
func (n *Limit) WithChildren(children ...Node) (Node, error) {
	if len(children) != 1 {
		return nil, childCountErr("Limit", 1, len(children))
	}
	return &Limit{N: n.N, Child: children[0]}, nil
}
func (n *Limit) String() string { return fmt.Sprintf("Limit(%d)", n.N) }

// Aggregate is a one-child node reducing the child's rows to one or more
// scalars (spec.md's Aggregate(fn, column, distinct?) variant). When
// NonAggregate is non-empty, each accompanying non-aggregated column is
// broadcast alongside the computed scalar(s) onto every input row rather
// than collapsing to a single output row (spec's documented deviation from
// standard SQL GROUP BY semantics).
type Aggregate struct {
	Aggregates   []ProjectedColumn
	NonAggregate []ProjectedColumn
	Child        Node
}

func NewAggregate(aggregates, nonAggregate []ProjectedColumn, child Node) *Aggregate {
	return &Aggregate{Aggregates: aggregates, NonAggregate: nonAggregate, Child: child}
}

func (n *Aggregate) Children() []Node { return []Node{n.Child} }
func (n *Aggregate) WithChildren(children ...Node) (Node, error) {
	if len(children) != 1 {
		return nil, childCountErr("Aggregate", 1, len(children))
	}
	return &Aggregate{Aggregates: n.Aggregates, NonAggregate: n.NonAggregate, Child: children[0]}, nil
}
func (n *Aggregate) String() string { return fmt.Sprintf("Aggregate(%v)", n.Aggregates) }

// Distinct is a one-child node producing one output row per distinct value
// of Column, in order of first occurrence.
type Distinct struct {
	Table, Column string
	Child         Node
}

func NewDistinct(table, column string, child Node) *Distinct {
	return &Distinct{Table: table, Column: column, Child: child}
}

func (n *Distinct) Children() []Node { return []Node{n.Child} }
func (n *Distinct) WithChildren(children ...Node) (Node, error) {
	if len(children) != 1 {
		return nil, childCountErr("Distinct", 1, len(children))
	}
	return &Distinct{Table: n.Table, Column: n.Column, Child: children[0]}, nil
}
func (n *Distinct) String() string { return fmt.Sprintf("Distinct(%s)", n.Column) }

// Insert is a leaf write node.
type Insert struct {
	Table  string
	Rows   []sql.Row
	Policy ConflictPolicy
}

func (n *Insert) Children() []Node { return nil }
func (n *Insert) WithChildren(children ...Node) (Node, error) {
	if len(children) != 0 {
		return nil, childCountErr("Insert", 0, len(children))
	}
	return n, nil
}
func (n *Insert) String() string { return fmt.Sprintf("Insert(%s, %d rows)", n.Table, len(n.Rows)) }

// Update is a one-child write node: Select(pred) <- TableAccess(table),
// with the SET assignments applied on the way out.
type Update struct {
	Assignments []Assignment
	Child       Node
	Table       string
}

func (n *Update) Children() []Node { return []Node{n.Child} }
func (n *Update) WithChildren(children ...Node) (Node, error) {
	if len(children) != 1 {
		return nil, childCountErr("Update", 1, len(children))
	}
	return &Update{Assignments: n.Assignments, Child: children[0], Table: n.Table}, nil
}
func (n *Update) String() string { return fmt.Sprintf("Update(%s)", n.Table) }

// Delete is a one-child write node: Select(pred) <- TableAccess(table).
type Delete struct {
	Child Node
	Table string
}

func (n *Delete) Children() []Node { return []Node{n.Child} }
func (n *Delete) WithChildren(children ...Node) (Node, error) {
	if len(children) != 1 {
		return nil, childCountErr("Delete", 1, len(children))
	}
	return &Delete{Child: children[0], Table: n.Table}, nil
}
func (n *Delete) String() string { return fmt.Sprintf("Delete(%s)", n.Table) }

func childCountErr(node string, want, got int) error {
	return sql.ErrPlan.New(fmt.Sprintf("%s expects %d children, got %d", node, want, got))
}

// Walk applies visit to every node in the tree rooted at n, post-order
// (children before parent). It always visits every node.
func Walk(n Node, visit func(Node)) {
	for _, c := range n.Children() {
		Walk(c, visit)
	}
	visit(n)
}

// Transform rebuilds the tree bottom-up, replacing each node with the
// result of applying fn to it after its (already-transformed) children.
func Transform(n Node, fn func(Node) (Node, error)) (Node, error) {
	children := n.Children()
	if len(children) > 0 {
		newChildren := make([]Node, len(children))
		for i, c := range children {
			nc, err := Transform(c, fn)
			if err != nil {
				return nil, err
			}
			newChildren[i] = nc
		}
		var err error
		n, err = n.WithChildren(newChildren...)
		if err != nil {
			return nil, err
		}
	}
	return fn(n)
}
