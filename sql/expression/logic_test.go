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

func boolLit(b bool) *Literal { return NewLiteral(sql.Bool(b)) }

func TestAndShortCircuits(t *testing.T) {
	ctx := sql.NewEmptyContext()
	r := sql.NewCompositeRow()

	v, err := NewAnd(boolLit(false), boolLit(true)).Evaluate(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, sql.Bool(false), v)

	v, err = NewAnd(boolLit(true), boolLit(true)).Evaluate(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, sql.Bool(true), v)
}

func TestOrShortCircuits(t *testing.T) {
	ctx := sql.NewEmptyContext()
	r := sql.NewCompositeRow()

	v, err := NewOr(boolLit(true), boolLit(false)).Evaluate(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, sql.Bool(true), v)

	v, err = NewOr(boolLit(false), boolLit(false)).Evaluate(ctx, r)
	require.NoError(t, err)
	assert.Equal(t, sql.Bool(false), v)
}

func TestNot(t *testing.T) {
	ctx := sql.NewEmptyContext()
	v, err := NewNot(boolLit(false)).Evaluate(ctx, sql.NewCompositeRow())
	require.NoError(t, err)
	assert.Equal(t, sql.Bool(true), v)
}

func TestSplitAndJoinConjunction(t *testing.T) {
	a := boolLit(true)
	b := boolLit(false)
	c := boolLit(true)

	combined := NewAnd(NewAnd(a, b), c)
	parts := SplitConjunction(combined)
	require.Len(t, parts, 3)

	rejoined := JoinConjuncts(parts)
	assert.Equal(t, "((true AND false) AND true)", rejoined.String())
}

func TestJoinConjunctsEmpty(t *testing.T) {
	assert.Nil(t, JoinConjuncts(nil))
}
