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

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillsql/quill/sql"
)

func TestFoldConstantsComparisonOfTwoLiterals(t *testing.T) {
	ctx := sql.NewEmptyContext()
	e := NewComparison(OpEqual, NewLiteral(sql.Int(1)), NewLiteral(sql.Int(1)))

	folded := FoldConstants(ctx, e)
	lit, ok := folded.(*Literal)
	require.True(t, ok)
	assert.Equal(t, sql.Bool(true), lit.Value)
}

func TestFoldConstantsLeavesColumnReferencesAlone(t *testing.T) {
	ctx := sql.NewEmptyContext()
	e := NewComparison(OpEqual, NewGetField("t", "a"), NewLiteral(sql.Int(1)))

	folded := FoldConstants(ctx, e)
	_, isLiteral := folded.(*Literal)
	assert.False(t, isLiteral, "a predicate referencing a column can never fold to a constant")
}

func TestFoldConstantsAndShortCircuitsOnFalse(t *testing.T) {
	ctx := sql.NewEmptyContext()
	e := NewAnd(boolLit(false), NewGetField("t", "a"))

	folded := FoldConstants(ctx, e)
	lit, ok := folded.(*Literal)
	require.True(t, ok)
	assert.Equal(t, sql.Bool(false), lit.Value)
}

func TestFoldConstantsAndDropsTrueOperand(t *testing.T) {
	ctx := sql.NewEmptyContext()
	gf := NewGetField("t", "a")
	e := NewAnd(boolLit(true), gf)

	folded := FoldConstants(ctx, e)
	assert.Same(t, gf, folded)
}

func TestFoldConstantsOrShortCircuitsOnTrue(t *testing.T) {
	ctx := sql.NewEmptyContext()
	e := NewOr(boolLit(true), NewGetField("t", "a"))

	folded := FoldConstants(ctx, e)
	lit, ok := folded.(*Literal)
	require.True(t, ok)
	assert.Equal(t, sql.Bool(true), lit.Value)
}

func TestTablesOnly(t *testing.T) {
	tables := map[string]bool{"t1": true}
	e := NewComparison(OpEqual, NewGetField("t1", "a"), NewLiteral(sql.Int(1)))
	assert.True(t, TablesOnly(e, tables))

	e2 := NewComparison(OpEqual, NewGetField("t2", "a"), NewLiteral(sql.Int(1)))
	assert.False(t, TablesOnly(e2, tables))

	e3 := NewComparison(OpEqual, NewGetField("", "a"), NewLiteral(sql.Int(1)))
	assert.False(t, TablesOnly(e3, tables), "an unqualified reference cannot be proven to belong to one side")
}
