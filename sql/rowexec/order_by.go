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
	"sort"

	"github.com/quillsql/quill/sql"
	"github.com/quillsql/quill/sql/plan"
)

// orderByOp imposes a stable multi-key sort. Within one key, Absent sorts
// before every other value in ascending order (sql.Value.Compare's rule);
// a descending spec reverses the comparison for that key, so there Absent
// sorts after every other value.
type orderByOp struct {
	specs []plan.OrderSpec
	child Operator
}

func (o *orderByOp) Execute(ctx *sql.Context) (sql.Relation, error) {
	rel, err := o.child.Execute(ctx)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(rel, func(i, j int) bool {
		for _, spec := range o.specs {
			vi, _ := rel[i].Resolve(spec.Table, spec.Column)
			vj, _ := rel[j].Resolve(spec.Table, spec.Column)
			cmp, ok := vi.Compare(vj)
			if !ok || cmp == 0 {
				continue
			}
			if spec.Direction == plan.Descending {
				return cmp > 0
			}
			return cmp < 0
		}
		return false
	})
	return rel, nil
}
