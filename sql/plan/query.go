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

// Package plan builds and rewrites the logical plan tree from a query
// description, and holds the query description shapes themselves (the
// core's input, consumed fully-formed from an out-of-scope query builder).
package plan

import (
	"fmt"

	"github.com/quillsql/quill/sql"
	"github.com/quillsql/quill/sql/expression"
)

// SortDirection is the direction of an OrderBy spec.
type SortDirection int

const (
	Ascending SortDirection = iota
	Descending
)

// OrderSpec is one column of a (possibly multi-column) ORDER BY.
type OrderSpec struct {
	Table     string
	Column    string
	Direction SortDirection
}

// ProjectedColumn is one entry of a SELECT's column list: either a plain
// column reference, or an aggregate function applied to one (optionally
// with the DISTINCT modifier).
type ProjectedColumn struct {
	Table     string
	Column    string // "*" for COUNT(*)
	Aggregate sql.AggregateFunc
	Distinct  bool
	Alias     string
}

// OutputName is the key this column will appear under in the result.
func (p ProjectedColumn) OutputName() string {
	if p.Alias != "" {
		return p.Alias
	}
	if p.Aggregate != sql.AggNone {
		return fmt.Sprintf("%s(%s)", p.Aggregate, p.Column)
	}
	return p.Column
}

// IsAggregate reports whether this column computes a reduction.
func (p ProjectedColumn) IsAggregate() bool { return p.Aggregate != sql.AggNone }

// JoinPredicate is an explicit inner- or left-join clause naming the right
// side table and the join condition.
type JoinPredicate struct {
	Table      string
	Predicate  expression.Expression
	LeftOuter  bool
}

// SelectQuery describes a SELECT: the tables involved, an optional filter
// predicate, the projected columns (may include aggregates), ordering,
// limit/skip, and any explicit join predicates.
type SelectQuery struct {
	Tables  []string
	Where   expression.Expression
	Columns []ProjectedColumn
	OrderBy []OrderSpec
	Limit   *int
	Skip    *int
	Joins   []JoinPredicate
}

// ConflictPolicy governs Insert's behaviour on an id collision.
type ConflictPolicy int

const (
	ConflictError ConflictPolicy = iota
	ConflictReplace
)

// InsertQuery describes an INSERT.
type InsertQuery struct {
	Table  string
	Rows   []sql.Row
	Policy ConflictPolicy
}

// Assignment is one column-to-new-value entry of an UPDATE's SET clause.
type Assignment struct {
	Column string
	Value  expression.Expression
}

// UpdateQuery describes an UPDATE.
type UpdateQuery struct {
	Table       string
	Where       expression.Expression
	Assignments []Assignment
}

// DeleteQuery describes a DELETE.
type DeleteQuery struct {
	Table string
	Where expression.Expression
}

// QueryDescription is the engine's sole input: one of the four tagged
// shapes above, fully formed by an out-of-scope query builder.
type QueryDescription interface {
	queryDescription()
}

func (SelectQuery) queryDescription() {}
func (InsertQuery) queryDescription() {}
func (UpdateQuery) queryDescription() {}
func (DeleteQuery) queryDescription() {}

// Validate enforces the query description invariants spec.md §4.3 lists,
// before any planning is attempted: every referenced column exists, every
// projected column belongs to a table in scope, aggregators are only
// applied to numeric columns where required, and limit/skip are
// non-negative.
func Validate(cat *sql.Catalog, q QueryDescription) error {
	switch query := q.(type) {
	case SelectQuery:
		return validateSelect(cat, query)
	case InsertQuery:
		return validateInsert(cat, query)
	case UpdateQuery:
		return validateUpdate(cat, query)
	case DeleteQuery:
		return validateDelete(cat, query)
	default:
		return sql.ErrValidation.New(fmt.Sprintf("unknown query description type %T", q))
	}
}

func tableSet(names []string) map[string]bool {
	out := make(map[string]bool, len(names))
	for _, n := range names {
		out[n] = true
	}
	return out
}

func requireTable(cat *sql.Catalog, name string) (*sql.TableSchema, error) {
	schema, _, ok := cat.Table(name)
	if !ok {
		return nil, sql.ErrValidation.New(sql.ErrUnknownTable.New(name).Error())
	}
	return schema, nil
}

func requireColumn(schema *sql.TableSchema, column string) error {
	if column == "*" {
		return nil
	}
	if _, ok := schema.Column(column); !ok {
		return sql.ErrValidation.New(sql.ErrUnknownColumn.New(schema.Name + "." + column).Error())
	}
	return nil
}

func validatePredicateColumns(cat *sql.Catalog, in map[string]bool, pred expression.Expression) error {
	if pred == nil {
		return nil
	}
	for _, ref := range pred.Columns() {
		if ref.Table != "" {
			if !in[ref.Table] {
				return sql.ErrValidation.New(fmt.Sprintf("predicate references table %q not in scope", ref.Table))
			}
			schema, err := requireTable(cat, ref.Table)
			if err != nil {
				return err
			}
			if err := requireColumn(schema, ref.Column); err != nil {
				return err
			}
			continue
		}
		// Unqualified: must resolve in exactly one in-scope table.
		found := 0
		for t := range in {
			schema, err := requireTable(cat, t)
			if err != nil {
				return err
			}
			if _, ok := schema.Column(ref.Column); ok {
				found++
			}
		}
		if found == 0 {
			return sql.ErrValidation.New(sql.ErrUnknownColumn.New(ref.Column).Error())
		}
		if found > 1 {
			return sql.ErrValidation.New(fmt.Sprintf("ambiguous column reference %q", ref.Column))
		}
	}
	return nil
}

func validateSelect(cat *sql.Catalog, q SelectQuery) error {
	if len(q.Tables) == 0 {
		return sql.ErrValidation.New("select requires at least one table")
	}
	in := tableSet(q.Tables)
	for _, t := range q.Tables {
		if _, err := requireTable(cat, t); err != nil {
			return err
		}
	}
	for _, j := range q.Joins {
		if !in[j.Table] {
			return sql.ErrValidation.New(fmt.Sprintf("join references table %q not in the from list", j.Table))
		}
		if err := validatePredicateColumns(cat, in, j.Predicate); err != nil {
			return err
		}
	}
	if err := validatePredicateColumns(cat, in, q.Where); err != nil {
		return err
	}
	for _, c := range q.Columns {
		if c.Table != "" {
			if !in[c.Table] {
				return sql.ErrValidation.New(fmt.Sprintf("projected column references table %q not in scope", c.Table))
			}
			schema, err := requireTable(cat, c.Table)
			if err != nil {
				return err
			}
			if err := requireColumn(schema, c.Column); err != nil {
				return err
			}
		} else if c.Column != "*" {
			found := 0
			for t := range in {
				schema, _ := requireTable(cat, t)
				if _, ok := schema.Column(c.Column); ok {
					found++
				}
			}
			if found == 0 {
				return sql.ErrValidation.New(sql.ErrUnknownColumn.New(c.Column).Error())
			}
			if found > 1 {
				return sql.ErrValidation.New(fmt.Sprintf("ambiguous projected column %q", c.Column))
			}
		}
		if c.IsAggregate() && c.Aggregate != sql.AggCount && c.Column == "*" {
			return sql.ErrValidation.New("only COUNT may be applied to *")
		}
		if c.Aggregate == sql.AggSum || c.Aggregate == sql.AggAvg || c.Aggregate == sql.AggStdDev {
			for t := range in {
				if c.Table != "" && t != c.Table {
					continue
				}
				schema, _ := requireTable(cat, t)
				if col, ok := schema.Column(c.Column); ok && col.Type != sql.KindInt && col.Type != sql.KindFloat {
					return sql.ErrValidation.New(fmt.Sprintf("%v requires a numeric column, %s is %v", c.Aggregate, c.Column, col.Type))
				}
			}
		}
	}
	for _, o := range q.OrderBy {
		if o.Table != "" && !in[o.Table] {
			return sql.ErrValidation.New(fmt.Sprintf("order by references table %q not in scope", o.Table))
		}
	}
	if q.Limit != nil && *q.Limit < 0 {
		return sql.ErrValidation.New("limit must be non-negative")
	}
	if q.Skip != nil && *q.Skip < 0 {
		return sql.ErrValidation.New("skip must be non-negative")
	}
	return nil
}

func validateInsert(cat *sql.Catalog, q InsertQuery) error {
	schema, err := requireTable(cat, q.Table)
	if err != nil {
		return err
	}
	for _, r := range q.Rows {
		for col, v := range r.Values {
			c, ok := schema.Column(col)
			if !ok {
				return sql.ErrValidation.New(sql.ErrUnknownColumn.New(schema.Name + "." + col).Error())
			}
			if v.Kind() != sql.KindAbsent && v.Kind() != c.Type {
				return sql.ErrValidation.New(fmt.Sprintf("column %s.%s expects %s, got %s", schema.Name, col, c.Type, v.Kind()))
			}
			if v.Kind() == sql.KindAbsent && !c.Nullable {
				return sql.ErrValidation.New(fmt.Sprintf("column %s.%s is not nullable", schema.Name, col))
			}
		}
	}
	return nil
}

func validateUpdate(cat *sql.Catalog, q UpdateQuery) error {
	schema, err := requireTable(cat, q.Table)
	if err != nil {
		return err
	}
	in := tableSet([]string{q.Table})
	if err := validatePredicateColumns(cat, in, q.Where); err != nil {
		return err
	}
	for _, a := range q.Assignments {
		if err := requireColumn(schema, a.Column); err != nil {
			return err
		}
	}
	return nil
}

func validateDelete(cat *sql.Catalog, q DeleteQuery) error {
	if _, err := requireTable(cat, q.Table); err != nil {
		return err
	}
	in := tableSet([]string{q.Table})
	return validatePredicateColumns(cat, in, q.Where)
}
