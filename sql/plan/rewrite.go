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
	"github.com/quillsql/quill/sql"
	"github.com/quillsql/quill/sql/expression"
)

// Rewrite applies the logical rewrite rules to fixpoint, in the fixed
// order spec.md §4.4 mandates: predicate push-down, then join inference
// (so join predicates have surfaced as standalone Selects before being
// lifted), then projection push-down, then constant folding.
func Rewrite(ctx *sql.Context, root Node) (Node, error) {
	for {
		changed := false

		n, err := applyPredicatePushdown(root)
		if err != nil {
			return nil, err
		}
		if !nodeEqual(n, root) {
			changed = true
		}
		root = n

		n, err = applyJoinInference(root)
		if err != nil {
			return nil, err
		}
		if !nodeEqual(n, root) {
			changed = true
		}
		root = n

		n, err = applyProjectionPushdown(root)
		if err != nil {
			return nil, err
		}
		if !nodeEqual(n, root) {
			changed = true
		}
		root = n

		n, err = applyConstantFolding(ctx, root)
		if err != nil {
			return nil, err
		}
		if !nodeEqual(n, root) {
			changed = true
		}
		root = n

		if !changed {
			return root, nil
		}
	}
}

// nodeEqual compares two plan trees by their printed shape; it is a cheap,
// conservative fixpoint check (a false negative -- reporting "changed"
// when nothing really did -- only costs one extra harmless iteration).
func nodeEqual(a, b Node) bool {
	return a.String() == b.String() && childrenEqual(a.Children(), b.Children())
}

func childrenEqual(a, b []Node) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if !nodeEqual(a[i], b[i]) {
			return false
		}
	}
	return true
}

// tablesUnder collects every TableAccess name reachable under n.
func tablesUnder(n Node) []string {
	var out []string
	Walk(n, func(cur Node) {
		if ta, ok := cur.(*TableAccess); ok {
			out = append(out, ta.Table)
		}
	})
	return out
}

func tableSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

// --- Rule 1: predicate push-down ---

func applyPredicatePushdown(root Node) (Node, error) {
	return Transform(root, func(n Node) (Node, error) {
		sel, ok := n.(*Select)
		if !ok {
			return n, nil
		}
		conjuncts := expression.SplitConjunction(sel.Predicate)
		return pushConjuncts(conjuncts, sel.Child), nil
	})
}

// pushConjuncts pushes each conjunct as far toward the leaves as the
// columns it references allow, recombining whatever cannot be pushed
// further into a Select wrapping the node it stopped at.
func pushConjuncts(conjuncts []expression.Expression, node Node) Node {
	switch n := node.(type) {
	case *CrossProduct:
		leftTables := tableSet(tablesUnder(n.Left))
		rightTables := tableSet(tablesUnder(n.Right))
		var leftConj, rightConj, stay []expression.Expression
		for _, c := range conjuncts {
			switch {
			case expression.TablesOnly(c, leftTables):
				leftConj = append(leftConj, c)
			case expression.TablesOnly(c, rightTables):
				rightConj = append(rightConj, c)
			default:
				stay = append(stay, c)
			}
		}
		newLeft, newRight := n.Left, n.Right
		if len(leftConj) > 0 {
			newLeft = pushConjuncts(leftConj, n.Left)
		}
		if len(rightConj) > 0 {
			newRight = pushConjuncts(rightConj, n.Right)
		}
		var result Node = &CrossProduct{Left: newLeft, Right: newRight}
		if len(stay) > 0 {
			result = NewSelect(expression.JoinConjuncts(stay), result)
		}
		return result
	case *Join:
		leftTables := tableSet(tablesUnder(n.Left))
		rightTables := tableSet(tablesUnder(n.Right))
		var leftConj, rightConj, stay []expression.Expression
		for _, c := range conjuncts {
			switch {
			case expression.TablesOnly(c, leftTables):
				leftConj = append(leftConj, c)
			case expression.TablesOnly(c, rightTables):
				rightConj = append(rightConj, c)
			default:
				stay = append(stay, c)
			}
		}
		newLeft, newRight := n.Left, n.Right
		if len(leftConj) > 0 {
			newLeft = pushConjuncts(leftConj, n.Left)
		}
		if len(rightConj) > 0 {
			newRight = pushConjuncts(rightConj, n.Right)
		}
		var result Node = &Join{Predicate: n.Predicate, LeftOuter: n.LeftOuter, Left: newLeft, Right: newRight}
		if len(stay) > 0 {
			result = NewSelect(expression.JoinConjuncts(stay), result)
		}
		return result
	default:
		return NewSelect(expression.JoinConjuncts(conjuncts), node)
	}
}

// --- Rule 2: join inference ---

func applyJoinInference(root Node) (Node, error) {
	return Transform(root, func(n Node) (Node, error) {
		sel, ok := n.(*Select)
		if !ok {
			return n, nil
		}
		cp, ok := sel.Child.(*CrossProduct)
		if !ok {
			return n, nil
		}

		leftTables := tableSet(tablesUnder(cp.Left))
		rightTables := tableSet(tablesUnder(cp.Right))

		var joinConj, otherConj []expression.Expression
		for _, c := range expression.SplitConjunction(sel.Predicate) {
			if isCrossSideEquality(c, leftTables, rightTables) {
				joinConj = append(joinConj, c)
			} else {
				otherConj = append(otherConj, c)
			}
		}

		if len(joinConj) == 0 {
			return n, nil
		}

		var result Node = NewJoin(expression.JoinConjuncts(joinConj), cp.Left, cp.Right, false)
		if len(otherConj) > 0 {
			result = NewSelect(expression.JoinConjuncts(otherConj), result)
		}
		return result, nil
	})
}

func isCrossSideEquality(e expression.Expression, leftTables, rightTables map[string]bool) bool {
	cmp, ok := e.(*expression.Comparison)
	if !ok || cmp.Op != expression.OpEqual {
		return false
	}
	lcols := cmp.Left.Columns()
	rcols := cmp.Right.Columns()
	if len(lcols) != 1 || len(rcols) != 1 {
		return false
	}
	l, r := lcols[0], rcols[0]
	if l.Table == "" || r.Table == "" {
		return false
	}
	return (leftTables[l.Table] && rightTables[r.Table]) || (leftTables[r.Table] && rightTables[l.Table])
}

// --- Rule 3: projection push-down ---

// applyProjectionPushdown computes, for every table-qualified column
// reference anywhere in the tree (predicates, join conditions, the final
// projection/aggregate/order-by), the minimal column set that table must
// retain, then inserts a narrowing Project directly above each
// TableAccess whose table has such a restriction recorded. The rule only
// fires when a Project, Aggregate or Distinct sits in the tree; without one
// every column of every table reaches the output. Unqualified references
// are not recorded (CompositeRow.Resolve only resolves them when a single
// table is in scope).
func applyProjectionPushdown(root Node) (Node, error) {
	required := map[string]map[string]bool{}
	note := func(refs []expression.ColumnRef) {
		for _, r := range refs {
			if r.Table == "" {
				continue
			}
			if required[r.Table] == nil {
				required[r.Table] = map[string]bool{}
			}
			required[r.Table][r.Column] = true
		}
	}

	projected := false
	Walk(root, func(n Node) {
		switch t := n.(type) {
		case *Select:
			note(t.Predicate.Columns())
		case *Join:
			note(t.Predicate.Columns())
		case *Project:
			projected = true
			for _, c := range t.Columns {
				note([]expression.ColumnRef{{Table: c.Table, Column: c.Column}})
			}
		case *Aggregate:
			projected = true
			for _, c := range append(append([]ProjectedColumn{}, t.Aggregates...), t.NonAggregate...) {
				note([]expression.ColumnRef{{Table: c.Table, Column: c.Column}})
			}
		case *Distinct:
			projected = true
			note([]expression.ColumnRef{{Table: t.Table, Column: t.Column}})
		case *OrderBy:
			for _, s := range t.Specs {
				note([]expression.ColumnRef{{Table: s.Table, Column: s.Column}})
			}
		}
	})

	// Only worth pushing when more than one table is in the tree -- a
	// single-table query has no join to speed up and "select *" is the
	// common case there.
	if len(tableSet(tablesUnder(root))) < 2 {
		return root, nil
	}
	// With no projection above the scans, the full composite rows are the
	// output, so no table may be narrowed.
	if !projected {
		return root, nil
	}

	return insertNarrowingProjections(root, required), nil
}

// insertNarrowingProjections walks the tree looking for a TableAccess that
// is a direct child of some other node and wraps it with a narrowing
// Project. It never recurses below a node whose child is already a bare
// TableAccess (whether that shape was just inserted by this same pass, or
// is this query's own top-level single-table projection): re-examining that
// shape on every fixpoint iteration would re-wrap it again each time and
// the rule would never reach a fixpoint.
func insertNarrowingProjections(n Node, required map[string]map[string]bool) Node {
	children := n.Children()
	if len(children) == 0 {
		return n
	}

	newChildren := make([]Node, len(children))
	for i, c := range children {
		switch child := c.(type) {
		case *TableAccess:
			cols, ok := required[child.Table]
			if !ok || len(cols) == 0 {
				newChildren[i] = c
				continue
			}
			projected := make([]ProjectedColumn, 0, len(cols))
			for col := range cols {
				projected = append(projected, ProjectedColumn{Table: child.Table, Column: col})
			}
			newChildren[i] = NewProject(projected, child)
		case *Project:
			if _, ok := child.Child.(*TableAccess); ok {
				newChildren[i] = c
				continue
			}
			newChildren[i] = insertNarrowingProjections(c, required)
		default:
			newChildren[i] = insertNarrowingProjections(c, required)
		}
	}

	rebuilt, err := n.WithChildren(newChildren...)
	if err != nil {
		return n
	}
	return rebuilt
}

// --- Rule 4: constant folding (optional, behaviour-preserving) ---

func applyConstantFolding(ctx *sql.Context, root Node) (Node, error) {
	return Transform(root, func(n Node) (Node, error) {
		switch t := n.(type) {
		case *Select:
			return &Select{Predicate: expression.FoldConstants(ctx, t.Predicate), Child: t.Child}, nil
		case *Join:
			return &Join{Predicate: expression.FoldConstants(ctx, t.Predicate), LeftOuter: t.LeftOuter, Left: t.Left, Right: t.Right}, nil
		default:
			return n, nil
		}
	})
}
