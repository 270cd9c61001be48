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
	"github.com/quillsql/quill/sql/expression"
)

// joinOp keeps only the left/right row pairs satisfying predicate.
// leftKeys/rightKeys are non-nil only when the planner proved predicate is
// a pure equi-join, enabling the hash-join strategy; otherwise Execute
// falls back to a nested-loop evaluation of the full predicate.
// LeftOuter marks a LEFT JOIN: an unmatched left row survives with every
// column of rightTables resolving Absent.
type joinOp struct {
	predicate            expression.Expression
	leftOuter            bool
	left, right          Operator
	leftKeys, rightKeys  []expression.Expression
	rightTables          []string
}

func (o *joinOp) Execute(ctx *sql.Context) (sql.Relation, error) {
	leftRel, err := o.left.Execute(ctx)
	if err != nil {
		return nil, err
	}
	rightRel, err := o.right.Execute(ctx)
	if err != nil {
		return nil, err
	}

	if len(o.leftKeys) > 0 {
		return o.hashJoin(ctx, leftRel, rightRel)
	}
	return o.nestedLoopJoin(ctx, leftRel, rightRel)
}

func (o *joinOp) hashJoin(ctx *sql.Context, leftRel, rightRel sql.Relation) (sql.Relation, error) {
	// A LEFT JOIN must probe with every left row, so the hash table always
	// builds on the right side in that case. An INNER JOIN is free to pick
	// whichever side is smaller.
	buildOnRight := true
	if !o.leftOuter && len(leftRel) < len(rightRel) {
		buildOnRight = false
	}

	var buildRel, probeRel sql.Relation
	var buildKeys, probeKeys []expression.Expression
	if buildOnRight {
		buildRel, probeRel = rightRel, leftRel
		buildKeys, probeKeys = o.rightKeys, o.leftKeys
	} else {
		buildRel, probeRel = leftRel, rightRel
		buildKeys, probeKeys = o.leftKeys, o.rightKeys
	}

	index := map[uint64][]int{}
	for i, row := range buildRel {
		h, err := hashKey(ctx, buildKeys, row)
		if err != nil {
			return nil, err
		}
		index[h] = append(index[h], i)
	}

	var out sql.Relation
	for _, prow := range probeRel {
		h, err := hashKey(ctx, probeKeys, prow)
		if err != nil {
			return nil, err
		}
		matched := false
		for _, bi := range index[h] {
			brow := buildRel[bi]
			var merged sql.CompositeRow
			if buildOnRight {
				merged = prow.Merge(brow)
			} else {
				merged = brow.Merge(prow)
			}
			ok, err := evalBool(ctx, o.predicate, merged)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, merged)
				matched = true
			}
		}
		if !matched && o.leftOuter {
			out = append(out, withAbsentRight(prow, o.rightTables))
		}
	}
	return out, nil
}

func (o *joinOp) nestedLoopJoin(ctx *sql.Context, leftRel, rightRel sql.Relation) (sql.Relation, error) {
	var out sql.Relation
	for _, l := range leftRel {
		matched := false
		for _, r := range rightRel {
			merged := l.Merge(r)
			ok, err := evalBool(ctx, o.predicate, merged)
			if err != nil {
				return nil, err
			}
			if ok {
				out = append(out, merged)
				matched = true
			}
		}
		if !matched && o.leftOuter {
			out = append(out, withAbsentRight(l, o.rightTables))
		}
	}
	return out, nil
}

// withAbsentRight attaches an empty Row for every right-side table name so
// column resolution against them yields Absent rather than "unresolved".
func withAbsentRight(row sql.CompositeRow, rightTables []string) sql.CompositeRow {
	out := row
	for _, t := range rightTables {
		out = out.With(t, sql.NewRow(0))
	}
	return out
}

func hashKey(ctx *sql.Context, exprs []expression.Expression, row sql.CompositeRow) (uint64, error) {
	vals := make([]interface{}, len(exprs))
	for i, e := range exprs {
		v, err := e.Evaluate(ctx, row)
		if err != nil {
			return 0, err
		}
		vals[i] = v.Raw()
	}
	h, err := hashstructure.Hash(vals, nil)
	if err != nil {
		return 0, sql.ErrExec.New(err.Error())
	}
	return h, nil
}
