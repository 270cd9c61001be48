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

package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRowWithIsCopyOnWrite(t *testing.T) {
	r1 := RowWithValues(1, map[string]Value{"a": Int(1)})
	r2 := r1.With("a", Int(2))

	assert.Equal(t, Int(1), r1.Get("a"), "original row must not be mutated")
	assert.Equal(t, Int(2), r2.Get("a"))
}

func TestRowGetAbsentColumn(t *testing.T) {
	r := RowWithValues(1, map[string]Value{"a": Int(1)})
	assert.True(t, r.Get("missing").IsAbsent())
}

func TestCompositeRowResolveSingleTable(t *testing.T) {
	c := NewCompositeRow().With("t", RowWithValues(1, map[string]Value{"a": Int(7)}))
	v, ok := c.Resolve("", "a")
	require.True(t, ok)
	assert.Equal(t, Int(7), v)

	v, ok = c.Resolve("t", "a")
	require.True(t, ok)
	assert.Equal(t, Int(7), v)
}

func TestCompositeRowResolveAmbiguous(t *testing.T) {
	c := NewCompositeRow().
		With("t1", RowWithValues(1, map[string]Value{"a": Int(1)})).
		With("t2", RowWithValues(1, map[string]Value{"b": Int(2)}))

	_, ok := c.Resolve("", "a")
	assert.False(t, ok, "unqualified lookup with more than one table in scope is ambiguous")

	v, ok := c.Resolve("t1", "a")
	require.True(t, ok)
	assert.Equal(t, Int(1), v)
}

func TestCompositeRowMerge(t *testing.T) {
	left := NewCompositeRow().With("t1", RowWithValues(1, map[string]Value{"a": Int(1)}))
	right := NewCompositeRow().With("t2", RowWithValues(2, map[string]Value{"b": Int(2)}))

	merged := left.Merge(right)
	assert.ElementsMatch(t, []string{"t1", "t2"}, merged.Tables())

	v, ok := merged.Resolve("t2", "b")
	require.True(t, ok)
	assert.Equal(t, Int(2), v)
}

func TestCompositeRowMergeOverwritesOnCollision(t *testing.T) {
	left := NewCompositeRow().With("t", RowWithValues(1, map[string]Value{"a": Int(1)}))
	right := NewCompositeRow().With("t", RowWithValues(2, map[string]Value{"a": Int(2)}))

	merged := left.Merge(right)
	v, ok := merged.Resolve("t", "a")
	require.True(t, ok)
	assert.Equal(t, Int(2), v, "Merge's argument wins over the receiver on table-name collision")
}
