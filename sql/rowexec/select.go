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
	"github.com/quillsql/quill/sql/expression"
)

// selectOp filters its child's rows by a predicate, keeping order.
type selectOp struct {
	pred  expression.Expression
	child Operator
}

func (o *selectOp) Execute(ctx *sql.Context) (sql.Relation, error) {
	rel, err := o.child.Execute(ctx)
	if err != nil {
		return nil, err
	}
	out := make(sql.Relation, 0, len(rel))
	for _, row := range rel {
		ok, err := evalBool(ctx, o.pred, row)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, row)
		}
	}
	return out, nil
}

func evalBool(ctx *sql.Context, e expression.Expression, row sql.CompositeRow) (bool, error) {
	v, err := e.Evaluate(ctx, row)
	if err != nil {
		return false, err
	}
	return v.Kind() == sql.KindBool && v.Bool(), nil
}
