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
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueEqual(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Value
		expected bool
	}{
		{"equal ints", Int(4), Int(4), true},
		{"different ints", Int(4), Int(5), false},
		{"int vs float coerce", Int(4), Float(4.0), true},
		{"text mismatch", Text("a"), Text("b"), false},
		{"absent never equals absent", Absent(), Absent(), false},
		{"absent never equals value", Absent(), Int(0), false},
		{"bool equal", Bool(true), Bool(true), true},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			assert.Equal(t, test.expected, test.a.Equal(test.b))
		})
	}
}

func TestValueCompare(t *testing.T) {
	cmp, ok := Int(1).Compare(Int(2))
	require.True(t, ok)
	assert.Less(t, cmp, 0)

	cmp, ok = Absent().Compare(Int(-100))
	require.True(t, ok)
	assert.Less(t, cmp, 0, "Absent sorts before any value in ascending order")

	cmp, ok = Int(5).Compare(Absent())
	require.True(t, ok)
	assert.Greater(t, cmp, 0)

	cmp, ok = Absent().Compare(Absent())
	require.True(t, ok)
	assert.Equal(t, 0, cmp)

	_, ok = Text("x").Compare(Blob([]byte{1}))
	assert.False(t, ok, "text and blob are not meaningfully ordered against each other")

	cmp, ok = Int(3).Compare(Float(3.5))
	require.True(t, ok)
	assert.Less(t, cmp, 0, "numeric kinds compare across int/float")
}

func TestValueTimestampCompare(t *testing.T) {
	now := time.Now()
	later := now.Add(time.Hour)
	cmp, ok := Timestamp(now).Compare(Timestamp(later))
	require.True(t, ok)
	assert.Less(t, cmp, 0)
}

func TestValueKindRoundTrip(t *testing.T) {
	assert.Equal(t, KindInt, Int(1).Kind())
	assert.Equal(t, KindFloat, Float(1).Kind())
	assert.Equal(t, KindText, Text("x").Kind())
	assert.Equal(t, KindBool, Bool(true).Kind())
	assert.Equal(t, KindBlob, Blob([]byte("x")).Kind())
	assert.True(t, Absent().IsAbsent())
	assert.False(t, Int(0).IsAbsent())
}
