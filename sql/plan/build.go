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

import "github.com/quillsql/quill/sql"

// Build constructs the initial logical plan tree for q, then applies the
// rewrite rules to fixpoint (see rewrite.go). Validate must have already
// been called and returned nil.
func Build(ctx *sql.Context, cat *sql.Catalog, q QueryDescription) (Node, error) {
	var root Node
	var err error

	switch query := q.(type) {
	case SelectQuery:
		root, err = buildSelect(query)
	case InsertQuery:
		root = &Insert{Table: query.Table, Rows: query.Rows, Policy: query.Policy}
	case UpdateQuery:
		root = buildUpdate(query)
	case DeleteQuery:
		root = buildDelete(query)
	default:
		return nil, sql.ErrPlan.New("unknown query description")
	}
	if err != nil {
		return nil, err
	}

	return Rewrite(ctx, root)
}

func buildSelect(q SelectQuery) (Node, error) {
	if len(q.Tables) == 0 {
		return nil, sql.ErrPlan.New("select requires at least one table")
	}

	joinsByTable := make(map[string]JoinPredicate, len(q.Joins))
	for _, j := range q.Joins {
		joinsByTable[j.Table] = j
	}

	var root Node = NewTableAccess(q.Tables[0])
	for _, t := range q.Tables[1:] {
		if j, ok := joinsByTable[t]; ok {
			root = NewJoin(j.Predicate, root, NewTableAccess(t), j.LeftOuter)
		} else {
			root = NewCrossProduct(root, NewTableAccess(t))
		}
	}

	if q.Where != nil {
		root = NewSelect(q.Where, root)
	}

	root = buildProjection(q.Columns, root)

	if len(q.OrderBy) > 0 {
		root = NewOrderBy(q.OrderBy, root)
	}
	if q.Skip != nil && *q.Skip > 0 {
		root = NewSkip(*q.Skip, root)
	}
	if q.Limit != nil {
		root = NewLimit(*q.Limit, root)
	}

	return root, nil
}

// buildProjection chooses between a plain Project, an Aggregate (when any
// column is an aggregate function), or a Distinct (a single bare
// DISTINCT(column) projection with no aggregate function applied).
func buildProjection(cols []ProjectedColumn, child Node) Node {
	if len(cols) == 0 {
		return child
	}

	var aggregates, nonAggregate []ProjectedColumn
	for _, c := range cols {
		if c.IsAggregate() {
			aggregates = append(aggregates, c)
		} else {
			nonAggregate = append(nonAggregate, c)
		}
	}

	if len(aggregates) > 0 {
		return NewAggregate(aggregates, nonAggregate, child)
	}

	if len(cols) == 1 && cols[0].Distinct {
		return NewDistinct(cols[0].Table, cols[0].Column, child)
	}

	return NewProject(cols, child)
}

func buildUpdate(q UpdateQuery) Node {
	var child Node = NewTableAccess(q.Table)
	if q.Where != nil {
		child = NewSelect(q.Where, child)
	}
	return &Update{Assignments: q.Assignments, Child: child, Table: q.Table}
}

func buildDelete(q DeleteQuery) Node {
	var child Node = NewTableAccess(q.Table)
	if q.Where != nil {
		child = NewSelect(q.Where, child)
	}
	return &Delete{Child: child, Table: q.Table}
}
