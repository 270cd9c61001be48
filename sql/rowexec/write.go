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

// affectedRow wraps a write operator's row count in the same Relation
// shape Select results use, so the engine facade can read it back
// uniformly: one synthetic row under resultTable with an "affected" column.
func affectedRow(n int) sql.Relation {
	return sql.Relation{sql.NewCompositeRow().With(resultTable, sql.RowWithValues(0, map[string]sql.Value{
		"affected": sql.Int(int64(n)),
	}))}
}

// insertOp writes new rows, honouring the conflict policy on an id
// collision with an already-stored row.
type insertOp struct {
	table   string
	rows    []sql.Row
	policy  plan.ConflictPolicy
	storage sql.Table
}

func (o *insertOp) Execute(ctx *sql.Context) (sql.Relation, error) {
	if o.policy == plan.ConflictError {
		existing, err := o.storage.Get(ctx, nil)
		if err != nil {
			return nil, wrapStorageErr(err, "reading", o.table)
		}
		existingIDs := make(map[int64]bool, len(existing))
		for _, r := range existing {
			existingIDs[r.ID] = true
		}
		for _, r := range o.rows {
			if existingIDs[r.ID] {
				return nil, sql.ErrExec.New(sql.ErrDuplicateID.New(r.ID, o.table).Error())
			}
		}
	}
	if err := o.storage.Put(ctx, o.rows); err != nil {
		return nil, wrapStorageErr(err, "writing", o.table)
	}
	return affectedRow(len(o.rows)), nil
}

// updateOp applies a SET clause's assignments to every row its child
// (a Select filtering a TableAccess, or a bare TableAccess) selected, then
// writes the modified rows back.
type updateOp struct {
	table       string
	assignments []plan.Assignment
	child       Operator
	storage     sql.Table
}

func (o *updateOp) Execute(ctx *sql.Context) (sql.Relation, error) {
	rel, err := o.child.Execute(ctx)
	if err != nil {
		return nil, err
	}
	newRows := make([]sql.Row, 0, len(rel))
	for _, crow := range rel {
		row, ok := crow.Get(o.table)
		if !ok {
			continue
		}
		updated := row.Clone()
		for _, a := range o.assignments {
			v, err := a.Value.Evaluate(ctx, crow)
			if err != nil {
				return nil, err
			}
			updated = updated.With(a.Column, v)
		}
		newRows = append(newRows, updated)
	}
	if len(newRows) > 0 {
		if err := o.storage.Put(ctx, newRows); err != nil {
			return nil, wrapStorageErr(err, "writing", o.table)
		}
	}
	return affectedRow(len(newRows)), nil
}

// deleteOp removes every row its child selected. It always computes an
// explicit id list and skips the storage call entirely when that list is
// empty, so a DELETE matching zero rows can never be misread as the
// storage contract's "empty ids removes everything" convention.
type deleteOp struct {
	table   string
	child   Operator
	storage sql.Table
}

func (o *deleteOp) Execute(ctx *sql.Context) (sql.Relation, error) {
	rel, err := o.child.Execute(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int64, 0, len(rel))
	for _, crow := range rel {
		row, ok := crow.Get(o.table)
		if !ok {
			continue
		}
		ids = append(ids, row.ID)
	}
	if len(ids) > 0 {
		if err := o.storage.Remove(ctx, ids); err != nil {
			return nil, wrapStorageErr(err, "deleting from", o.table)
		}
	}
	return affectedRow(len(ids)), nil
}
