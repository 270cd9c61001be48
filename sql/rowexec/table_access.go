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
	"github.com/pkg/errors"

	"github.com/quillsql/quill/sql"
)

// wrapStorageErr attaches op context to a raw storage failure before
// classifying it, so the returned error's message survives past the
// ErrStorage kind wrapper, the way engine.go wraps transaction cleanup
// failures with their call-site context.
func wrapStorageErr(err error, op, table string) error {
	return sql.ErrStorage.New(errors.Wrapf(err, "%s table %s", op, table).Error())
}

// tableAccessOp reads every row of one table (an empty id list to Get
// means "everything").
type tableAccessOp struct {
	table   string
	storage sql.Table
}

func (o *tableAccessOp) Execute(ctx *sql.Context) (sql.Relation, error) {
	rows, err := o.storage.Get(ctx, nil)
	if err != nil {
		return nil, wrapStorageErr(err, "reading", o.table)
	}
	rel := make(sql.Relation, len(rows))
	for i, r := range rows {
		rel[i] = sql.NewCompositeRow().With(o.table, r)
	}
	return rel, nil
}

// narrowOp implements the projection push-down rule's inserted column
// restriction: unlike projectOp, it keeps its single source table's name as
// the composite row key, since it sits mid-tree above a TableAccess rather
// than at the query's final projection. Dropping unreferenced columns here
// only shrinks what a join or predicate further up carries; it never
// changes which table a later GetField resolves against.
type narrowOp struct {
	table   string
	columns map[string]bool
	child   Operator
}

func (o *narrowOp) Execute(ctx *sql.Context) (sql.Relation, error) {
	rel, err := o.child.Execute(ctx)
	if err != nil {
		return nil, err
	}
	out := make(sql.Relation, len(rel))
	for i, crow := range rel {
		row, ok := crow.Get(o.table)
		if !ok {
			out[i] = crow
			continue
		}
		values := make(map[string]sql.Value, len(o.columns))
		for col := range o.columns {
			if v, ok := row.Values[col]; ok {
				values[col] = v
			}
		}
		out[i] = sql.NewCompositeRow().With(o.table, sql.RowWithValues(row.ID, values))
	}
	return out, nil
}
