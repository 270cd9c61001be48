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
)

// distinctOp produces one output row per distinct value of column, in
// order of first occurrence, deduped by a hashstructure hash of the
// value's underlying Go representation.
type distinctOp struct {
	table, column string
	child         Operator
}

func (o *distinctOp) Execute(ctx *sql.Context) (sql.Relation, error) {
	rel, err := o.child.Execute(ctx)
	if err != nil {
		return nil, err
	}
	seen := map[uint64]bool{}
	var out sql.Relation
	for _, row := range rel {
		v, ok := row.Resolve(o.table, o.column)
		if !ok {
			continue
		}
		h, err := hashstructure.Hash(v.Raw(), nil)
		if err != nil {
			return nil, sql.ErrExec.New(err.Error())
		}
		if seen[h] {
			continue
		}
		seen[h] = true
		out = append(out, sql.NewCompositeRow().With(resultTable, sql.RowWithValues(0, map[string]sql.Value{o.column: v})))
	}
	return out, nil
}
