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

package quill_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillsql/quill"
	"github.com/quillsql/quill/mem"
	"github.com/quillsql/quill/metrics"
	"github.com/quillsql/quill/sql"
	"github.com/quillsql/quill/sql/expression"
	"github.com/quillsql/quill/sql/plan"
)

// newJobsCatalog builds the employees/departments fixture end-to-end
// scenarios exercise: three employees across two departments, one
// employee with no department assigned.
func newJobsCatalog(t *testing.T) *sql.Catalog {
	t.Helper()
	cat := sql.NewCatalog()
	ctx := sql.NewEmptyContext()

	employees := sql.NewTableSchema("employees", "id",
		&sql.Column{Name: "id", Type: sql.KindInt},
		&sql.Column{Name: "name", Type: sql.KindText},
		&sql.Column{Name: "dept_id", Type: sql.KindInt, Nullable: true},
		&sql.Column{Name: "salary", Type: sql.KindFloat},
	)
	empStorage := mem.NewTable()
	require.NoError(t, empStorage.Put(ctx, []sql.Row{
		sql.RowWithValues(1, map[string]sql.Value{"name": sql.Text("alice"), "dept_id": sql.Int(10), "salary": sql.Float(1000)}),
		sql.RowWithValues(2, map[string]sql.Value{"name": sql.Text("bob"), "dept_id": sql.Int(20), "salary": sql.Float(2000)}),
		sql.RowWithValues(3, map[string]sql.Value{"name": sql.Text("carol"), "dept_id": sql.Absent(), "salary": sql.Float(1500)}),
	}))
	require.NoError(t, cat.Register(employees, empStorage))

	departments := sql.NewTableSchema("departments", "id",
		&sql.Column{Name: "id", Type: sql.KindInt},
		&sql.Column{Name: "name", Type: sql.KindText},
	)
	deptStorage := mem.NewTable()
	require.NoError(t, deptStorage.Put(ctx, []sql.Row{
		sql.RowWithValues(10, map[string]sql.Value{"id": sql.Int(10), "name": sql.Text("engineering")}),
		sql.RowWithValues(20, map[string]sql.Value{"id": sql.Int(20), "name": sql.Text("sales")}),
	}))
	require.NoError(t, cat.Register(departments, deptStorage))

	return cat
}

func TestEndToEndSelectWithFilterIsFlat(t *testing.T) {
	cat := newJobsCatalog(t)
	e := quill.New(cat, quill.WithMetrics(metrics.New()))
	ctx := sql.NewEmptyContext()

	result, err := e.ExecuteQuery(ctx, plan.SelectQuery{
		Tables:  []string{"employees"},
		Columns: []plan.ProjectedColumn{{Column: "name"}, {Column: "salary"}},
		Where: expression.NewComparison(expression.OpGreaterThan,
			expression.NewGetField("employees", "salary"), expression.NewLiteral(sql.Float(1200))),
		OrderBy: []plan.OrderSpec{{Column: "salary", Direction: plan.Ascending}},
	})
	require.NoError(t, err)
	require.Equal(t, quill.SelectKind, result.Kind)
	require.Len(t, result.Rows, 2)
	for _, row := range result.Rows {
		assert.False(t, row.Composite)
	}
	first := result.Rows[0].Flat["name"]
	assert.Equal(t, sql.Text("carol"), first)
}

func TestEndToEndLeftJoinIsCompositeAndKeepsUnmatched(t *testing.T) {
	cat := newJobsCatalog(t)
	e := quill.New(cat)
	ctx := sql.NewEmptyContext()

	pred := expression.NewComparison(expression.OpEqual,
		expression.NewGetField("employees", "dept_id"), expression.NewGetField("departments", "id"))
	result, err := e.ExecuteQuery(ctx, plan.SelectQuery{
		Tables: []string{"employees", "departments"},
		Joins:  []plan.JoinPredicate{{Table: "departments", Predicate: pred, LeftOuter: true}},
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, 3)

	var sawUnmatched bool
	for _, row := range result.Rows {
		require.True(t, row.Composite)
		dept := row.ByTable["departments"]
		if dept["name"].IsAbsent() {
			sawUnmatched = true
		}
	}
	assert.True(t, sawUnmatched)
}

func TestEndToEndAggregateBareScalar(t *testing.T) {
	cat := newJobsCatalog(t)
	e := quill.New(cat)
	ctx := sql.NewEmptyContext()

	result, err := e.ExecuteQuery(ctx, plan.SelectQuery{
		Tables:  []string{"employees"},
		Columns: []plan.ProjectedColumn{{Column: "salary", Aggregate: sql.AggAvg}},
	})
	require.NoError(t, err)
	require.Len(t, result.Rows, 1)
	assert.Equal(t, sql.Float(1500), result.Rows[0].Flat["AVG(salary)"])
}

func TestEndToEndInsertThenSelectRoundTrips(t *testing.T) {
	cat := newJobsCatalog(t)
	e := quill.New(cat)
	ctx := sql.NewEmptyContext()

	insertResult, err := e.ExecuteQuery(ctx, plan.InsertQuery{
		Table: "employees",
		Rows:  []sql.Row{sql.RowWithValues(4, map[string]sql.Value{"name": sql.Text("dave"), "dept_id": sql.Int(10), "salary": sql.Float(1700)})},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, insertResult.Affected)

	selectResult, err := e.ExecuteQuery(ctx, plan.SelectQuery{
		Tables:  []string{"employees"},
		Columns: []plan.ProjectedColumn{{Column: "name"}},
		Where:   expression.NewComparison(expression.OpEqual, expression.NewGetField("employees", "name"), expression.NewLiteral(sql.Text("dave"))),
	})
	require.NoError(t, err)
	require.Len(t, selectResult.Rows, 1)
	assert.Equal(t, sql.Text("dave"), selectResult.Rows[0].Flat["name"])
}

func TestEndToEndUpdateThenDelete(t *testing.T) {
	cat := newJobsCatalog(t)
	e := quill.New(cat)
	ctx := sql.NewEmptyContext()

	updateResult, err := e.ExecuteQuery(ctx, plan.UpdateQuery{
		Table: "employees",
		Where: expression.NewComparison(expression.OpEqual, expression.NewGetField("employees", "name"), expression.NewLiteral(sql.Text("bob"))),
		Assignments: []plan.Assignment{
			{Column: "salary", Value: expression.NewLiteral(sql.Float(2500))},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, updateResult.Affected)

	deleteResult, err := e.ExecuteQuery(ctx, plan.DeleteQuery{
		Table: "employees",
		Where: expression.NewComparison(expression.OpEqual, expression.NewGetField("employees", "name"), expression.NewLiteral(sql.Text("bob"))),
	})
	require.NoError(t, err)
	assert.Equal(t, 1, deleteResult.Affected)

	selectResult, err := e.ExecuteQuery(ctx, plan.SelectQuery{Tables: []string{"employees"}})
	require.NoError(t, err)
	assert.Len(t, selectResult.Rows, 2, "bob must be gone, alice and carol remain")
}

func TestEndToEndValidationErrorNeverTouchesStorage(t *testing.T) {
	cat := newJobsCatalog(t)
	e := quill.New(cat)
	ctx := sql.NewEmptyContext()

	_, err := e.ExecuteQuery(ctx, plan.SelectQuery{Tables: []string{"ghosts"}})
	assert.Error(t, err)
}

func TestEndToEndPlanIsReusableAcrossExecutions(t *testing.T) {
	cat := newJobsCatalog(t)
	e := quill.New(cat)
	ctx := sql.NewEmptyContext()

	p, err := e.Plan(ctx, plan.SelectQuery{Tables: []string{"departments"}})
	require.NoError(t, err)

	first, err := e.Execute(ctx, p)
	require.NoError(t, err)
	second, err := e.Execute(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, len(first.Rows), len(second.Rows))
}
