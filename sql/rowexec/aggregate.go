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
	"github.com/mitchellh/hashstructure"

	"github.com/quillsql/quill/sql"
	"github.com/quillsql/quill/sql/plan"
)

// aggregateOp reduces its child's rows to one or more scalars. When
// nonAggregate is empty it produces exactly one output row (the classic
// bare-scalar shape). When nonAggregate is non-empty, the computed
// scalar(s) are instead broadcast onto every input row alongside that
// row's non-aggregated columns -- the engine's deliberate departure from
// SQL's GROUP BY collapsing.
type aggregateOp struct {
	aggregates   []plan.ProjectedColumn
	nonAggregate []plan.ProjectedColumn
	child        Operator
}

func (o *aggregateOp) Execute(ctx *sql.Context) (sql.Relation, error) {
	rel, err := o.child.Execute(ctx)
	if err != nil {
		return nil, err
	}

	aggValues := make(map[string]sql.Value, len(o.aggregates))
	for _, col := range o.aggregates {
		v, err := computeAggregate(col, rel)
		if err != nil {
			return nil, err
		}
		aggValues[col.OutputName()] = v
	}

	if len(o.nonAggregate) == 0 {
		values := make(map[string]sql.Value, len(aggValues))
		for k, v := range aggValues {
			values[k] = v
		}
		return sql.Relation{sql.NewCompositeRow().With(resultTable, sql.RowWithValues(0, values))}, nil
	}

	out := make(sql.Relation, 0, len(rel))
	for _, row := range rel {
		values := make(map[string]sql.Value, len(aggValues)+len(o.nonAggregate))
		for k, v := range aggValues {
			values[k] = v
		}
		for _, c := range o.nonAggregate {
			v, ok := row.Resolve(c.Table, c.Column)
			if !ok {
				v = sql.Absent()
			}
			values[c.OutputName()] = v
		}
		out = append(out, sql.NewCompositeRow().With(resultTable, sql.RowWithValues(0, values)))
	}
	return out, nil
}

func computeAggregate(col plan.ProjectedColumn, rel sql.Relation) (sql.Value, error) {
	if col.Column == "*" {
		return sql.Int(int64(len(rel))), nil
	}

	acc := sql.NewAccumulator(col.Aggregate)
	if col.Distinct {
		seen := map[uint64]bool{}
		for _, row := range rel {
			v, ok := row.Resolve(col.Table, col.Column)
			if !ok {
				continue
			}
			h, err := hashstructure.Hash(v.Raw(), nil)
			if err != nil {
				return sql.Absent(), sql.ErrExec.New(err.Error())
			}
			if seen[h] {
				continue
			}
			seen[h] = true
			acc.Add(v)
		}
		return acc.Result(), nil
	}

	for _, row := range rel {
		v, ok := row.Resolve(col.Table, col.Column)
		if !ok {
			v = sql.Absent()
		}
		acc.Add(v)
	}
	return acc.Result(), nil
}
