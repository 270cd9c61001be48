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

package expression

import "github.com/quillsql/quill/sql"

// FoldConstants evaluates subexpressions that reference no columns at all
// down to a Literal, behaviour-preserving per the spec's constant-folding
// rewrite rule. It recurses bottom-up and is a best-effort optimisation: a
// failure to evaluate (e.g. a runtime-only function) just leaves the node
// as-is.
func FoldConstants(ctx *sql.Context, e Expression) Expression {
	switch n := e.(type) {
	case *Literal:
		return n
	case *GetField:
		return n
	case *And:
		l := FoldConstants(ctx, n.Left)
		r := FoldConstants(ctx, n.Right)
		if isFoldedBool(l, false) || isFoldedBool(r, false) {
			return NewLiteral(sql.Bool(false))
		}
		if lb, ok := asFoldedBool(l); ok && lb {
			return r
		}
		if rb, ok := asFoldedBool(r); ok && rb {
			return l
		}
		return &And{Left: l, Right: r}
	case *Or:
		l := FoldConstants(ctx, n.Left)
		r := FoldConstants(ctx, n.Right)
		if isFoldedBool(l, true) || isFoldedBool(r, true) {
			return NewLiteral(sql.Bool(true))
		}
		if lb, ok := asFoldedBool(l); ok && !lb {
			return r
		}
		if rb, ok := asFoldedBool(r); ok && !rb {
			return l
		}
		return &Or{Left: l, Right: r}
	case *Not:
		c := FoldConstants(ctx, n.Child)
		if b, ok := asFoldedBool(c); ok {
			return NewLiteral(sql.Bool(!b))
		}
		return &Not{Child: c}
	case *Comparison:
		l := FoldConstants(ctx, n.Left)
		r := FoldConstants(ctx, n.Right)
		folded := &Comparison{Op: n.Op, Left: l, Right: r}
		if isLiteral(l) && isLiteral(r) {
			if v, err := folded.Evaluate(ctx, sql.NewCompositeRow()); err == nil {
				return NewLiteral(v)
			}
		}
		return folded
	case *IsAbsent:
		c := FoldConstants(ctx, n.Child)
		folded := &IsAbsent{Child: c, Negate: n.Negate}
		if isLiteral(c) {
			if v, err := folded.Evaluate(ctx, sql.NewCompositeRow()); err == nil {
				return NewLiteral(v)
			}
		}
		return folded
	default:
		return e
	}
}

func isLiteral(e Expression) bool {
	_, ok := e.(*Literal)
	return ok
}

func asFoldedBool(e Expression) (bool, bool) {
	lit, ok := e.(*Literal)
	if !ok || lit.Value.Kind() != sql.KindBool {
		return false, false
	}
	return lit.Value.Bool(), true
}

func isFoldedBool(e Expression, want bool) bool {
	b, ok := asFoldedBool(e)
	return ok && b == want
}

// TablesOnly reports whether every column e references belongs to one of
// the given tables (used by projection/predicate push-down to decide which
// side of a join a predicate or column list can be pushed into).
func TablesOnly(e Expression, tables map[string]bool) bool {
	for _, c := range e.Columns() {
		if c.Table == "" {
			return false
		}
		if !tables[c.Table] {
			return false
		}
	}
	return true
}
