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

package rowexec

import (
	"fmt"

	"github.com/quillsql/quill/sql"
	"github.com/quillsql/quill/sql/expression"
	"github.com/quillsql/quill/sql/plan"
)

// Plan translates a (already rewritten) logical tree into a physical
// operator tree, making the decisions the logical layer leaves open: join
// strategy (equi-join keys drive a hash join; anything else falls back to
// a nested-loop join that simply re-evaluates the full predicate), a
// constant-false Select short-circuits to an empty result without
// touching storage, and an adjacent Limit-over-Skip fuses into one
// operator.
func Plan(cat *sql.Catalog, root plan.Node) (Operator, error) {
	return planNode(cat, root)
}

func planNode(cat *sql.Catalog, n plan.Node) (Operator, error) {
	switch node := n.(type) {
	case *plan.TableAccess:
		_, storage, ok := cat.Table(node.Table)
		if !ok {
			return nil, sql.ErrPlan.New(sql.ErrUnknownTable.New(node.Table).Error())
		}
		return &tableAccessOp{table: node.Table, storage: storage}, nil

	case *plan.Select:
		if lit, ok := node.Predicate.(*expression.Literal); ok && lit.Value.Kind() == sql.KindBool {
			if !lit.Value.Bool() {
				return emptyOp{}, nil
			}
			return planNode(cat, node.Child)
		}
		child, err := planNode(cat, node.Child)
		if err != nil {
			return nil, err
		}
		return &selectOp{pred: node.Predicate, child: child}, nil

	case *plan.CrossProduct:
		left, err := planNode(cat, node.Left)
		if err != nil {
			return nil, err
		}
		right, err := planNode(cat, node.Right)
		if err != nil {
			return nil, err
		}
		return &crossProductOp{left: left, right: right}, nil

	case *plan.Join:
		left, err := planNode(cat, node.Left)
		if err != nil {
			return nil, err
		}
		right, err := planNode(cat, node.Right)
		if err != nil {
			return nil, err
		}
		leftTables := tableSet(tablesUnder(node.Left))
		rightTables := tableSet(tablesUnder(node.Right))
		leftKeys, rightKeys, _ := equiJoinKeys(node.Predicate, leftTables, rightTables)
		return &joinOp{
			predicate:   node.Predicate,
			leftOuter:   node.LeftOuter,
			left:        left,
			right:       right,
			leftKeys:    leftKeys,
			rightKeys:   rightKeys,
			rightTables: tablesUnder(node.Right),
		}, nil

	case *plan.Project:
		if ta, cols, ok := asPushdownNarrowing(node); ok {
			child, err := planNode(cat, ta)
			if err != nil {
				return nil, err
			}
			return &narrowOp{table: ta.Table, columns: cols, child: child}, nil
		}
		child, err := planNode(cat, node.Child)
		if err != nil {
			return nil, err
		}
		return &projectOp{cols: node.Columns, child: child}, nil

	case *plan.Aggregate:
		child, err := planNode(cat, node.Child)
		if err != nil {
			return nil, err
		}
		return &aggregateOp{aggregates: node.Aggregates, nonAggregate: node.NonAggregate, child: child}, nil

	case *plan.Distinct:
		child, err := planNode(cat, node.Child)
		if err != nil {
			return nil, err
		}
		return &distinctOp{table: node.Table, column: node.Column, child: child}, nil

	case *plan.OrderBy:
		child, err := planNode(cat, node.Child)
		if err != nil {
			return nil, err
		}
		return &orderByOp{specs: node.Specs, child: child}, nil

	case *plan.Limit:
		if skip, ok := node.Child.(*plan.Skip); ok {
			child, err := planNode(cat, skip.Child)
			if err != nil {
				return nil, err
			}
			return &skipLimitOp{skip: skip.N, limit: node.N, child: child}, nil
		}
		child, err := planNode(cat, node.Child)
		if err != nil {
			return nil, err
		}
		return &limitOp{n: node.N, child: child}, nil

	case *plan.Skip:
		child, err := planNode(cat, node.Child)
		if err != nil {
			return nil, err
		}
		return &skipOp{n: node.N, child: child}, nil

	case *plan.Insert:
		_, storage, ok := cat.Table(node.Table)
		if !ok {
			return nil, sql.ErrPlan.New(sql.ErrUnknownTable.New(node.Table).Error())
		}
		return &insertOp{table: node.Table, rows: node.Rows, policy: node.Policy, storage: storage}, nil

	case *plan.Update:
		child, err := planNode(cat, node.Child)
		if err != nil {
			return nil, err
		}
		_, storage, ok := cat.Table(node.Table)
		if !ok {
			return nil, sql.ErrPlan.New(sql.ErrUnknownTable.New(node.Table).Error())
		}
		return &updateOp{table: node.Table, assignments: node.Assignments, child: child, storage: storage}, nil

	case *plan.Delete:
		child, err := planNode(cat, node.Child)
		if err != nil {
			return nil, err
		}
		_, storage, ok := cat.Table(node.Table)
		if !ok {
			return nil, sql.ErrPlan.New(sql.ErrUnknownTable.New(node.Table).Error())
		}
		return &deleteOp{table: node.Table, child: child, storage: storage}, nil

	default:
		return nil, sql.ErrPlan.New(fmt.Sprintf("unsupported logical node %T", n))
	}
}

// asPushdownNarrowing recognises the shape applyProjectionPushdown inserts:
// a Project whose every column is plain (no aggregate, no DISTINCT) and
// qualified by the same table as its direct TableAccess child. It is
// translated to the table-preserving narrowOp instead of the flattening
// projectOp. A single-table query's own qualified, un-aliased projection
// directly over its scan has the same shape and also runs as narrowOp;
// its rows still carry a single table key, so the output is still flat.
func asPushdownNarrowing(node *plan.Project) (*plan.TableAccess, map[string]bool, bool) {
	ta, ok := node.Child.(*plan.TableAccess)
	if !ok || len(node.Columns) == 0 {
		return nil, nil, false
	}
	cols := make(map[string]bool, len(node.Columns))
	for _, c := range node.Columns {
		if c.IsAggregate() || c.Distinct || c.Alias != "" || c.Table != ta.Table {
			return nil, nil, false
		}
		cols[c.Column] = true
	}
	return ta, cols, true
}

func tablesUnder(n plan.Node) []string {
	var out []string
	var walk func(plan.Node)
	walk = func(cur plan.Node) {
		if ta, ok := cur.(*plan.TableAccess); ok {
			out = append(out, ta.Table)
		}
		for _, c := range cur.Children() {
			walk(c)
		}
	}
	walk(n)
	return out
}

func tableSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

// equiJoinKeys reports whether pred decomposes entirely into a conjunction
// of single-column equalities, one side referencing only leftTables and
// the other only rightTables. If so it returns, in matching order, the
// expression to evaluate against the left-assigned row and the expression
// to evaluate against the right-assigned row for each conjunct -- the key
// tuples a hash join hashes and probes with. Any other shape of predicate
// (a range comparison, an OR, a cross-side condition that isn't equality)
// makes hash-join strategy inapplicable; the join falls back to a
// nested-loop evaluation of the whole predicate.
func equiJoinKeys(pred expression.Expression, leftTables, rightTables map[string]bool) (leftExprs, rightExprs []expression.Expression, ok bool) {
	if pred == nil {
		return nil, nil, false
	}
	for _, c := range expression.SplitConjunction(pred) {
		cmp, isCmp := c.(*expression.Comparison)
		if !isCmp || cmp.Op != expression.OpEqual {
			return nil, nil, false
		}
		lcols := cmp.Left.Columns()
		rcols := cmp.Right.Columns()
		if len(lcols) != 1 || len(rcols) != 1 {
			return nil, nil, false
		}
		switch {
		case leftTables[lcols[0].Table] && rightTables[rcols[0].Table]:
			leftExprs = append(leftExprs, cmp.Left)
			rightExprs = append(rightExprs, cmp.Right)
		case rightTables[lcols[0].Table] && leftTables[rcols[0].Table]:
			leftExprs = append(leftExprs, cmp.Right)
			rightExprs = append(rightExprs, cmp.Left)
		default:
			return nil, nil, false
		}
	}
	if len(leftExprs) == 0 {
		return nil, nil, false
	}
	return leftExprs, rightExprs, true
}
