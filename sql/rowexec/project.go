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
	"github.com/quillsql/quill/sql"
	"github.com/quillsql/quill/sql/plan"
)

// projectOp narrows (and renames, via OutputName) its child's rows to a
// flat, single synthetic-table result -- a projection always collapses
// its source tables into one named output row, which is why its result
// is flat even when the child was a join of several tables.
type projectOp struct {
	cols  []plan.ProjectedColumn
	child Operator
}

func (o *projectOp) Execute(ctx *sql.Context) (sql.Relation, error) {
	rel, err := o.child.Execute(ctx)
	if err != nil {
		return nil, err
	}
	out := make(sql.Relation, 0, len(rel))
	for _, row := range rel {
		values := make(map[string]sql.Value, len(o.cols))
		for _, c := range o.cols {
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
