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

// crossProductOp pairs every row of its left child with every row of its
// right child.
type crossProductOp struct {
	left, right Operator
}

func (o *crossProductOp) Execute(ctx *sql.Context) (sql.Relation, error) {
	left, err := o.left.Execute(ctx)
	if err != nil {
		return nil, err
	}
	right, err := o.right.Execute(ctx)
	if err != nil {
		return nil, err
	}
	out := make(sql.Relation, 0, len(left)*len(right))
	for _, l := range left {
		for _, r := range right {
			out = append(out, l.Merge(r))
		}
	}
	return out, nil
}
