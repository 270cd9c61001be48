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

import "github.com/quillsql/quill/sql"

// skipOp drops the first n rows of its child's output.
type skipOp struct {
	n     int
	child Operator
}

func (o *skipOp) Execute(ctx *sql.Context) (sql.Relation, error) {
	rel, err := o.child.Execute(ctx)
	if err != nil {
		return nil, err
	}
	if o.n >= len(rel) {
		return nil, nil
	}
	return rel[o.n:], nil
}

// limitOp takes at most n rows of its child's output.
type limitOp struct {
	n     int
	child Operator
}

func (o *limitOp) Execute(ctx *sql.Context) (sql.Relation, error) {
	rel, err := o.child.Execute(ctx)
	if err != nil {
		return nil, err
	}
	if o.n >= len(rel) {
		return rel, nil
	}
	return rel[:o.n], nil
}

// skipLimitOp fuses an adjacent Skip followed by a Limit into a single
// slice operation, the physical planner's fusion optimisation.
type skipLimitOp struct {
	skip, limit int
	child       Operator
}

func (o *skipLimitOp) Execute(ctx *sql.Context) (sql.Relation, error) {
	rel, err := o.child.Execute(ctx)
	if err != nil {
		return nil, err
	}
	if o.skip >= len(rel) {
		return nil, nil
	}
	rel = rel[o.skip:]
	if o.limit >= len(rel) {
		return rel, nil
	}
	return rel[:o.limit], nil
}
