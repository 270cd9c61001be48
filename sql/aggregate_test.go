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
)

func TestAccumulatorEmptyInput(t *testing.T) {
	tests := []struct {
		fn       AggregateFunc
		expected Value
	}{
		{AggCount, Int(0)},
		{AggSum, Int(0)},
		{AggMin, Absent()},
		{AggMax, Absent()},
		{AggAvg, Absent()},
		{AggStdDev, Absent()},
	}
	for _, test := range tests {
		t.Run(test.fn.String(), func(t *testing.T) {
			acc := NewAccumulator(test.fn)
			assert.Equal(t, test.expected, acc.Result())
		})
	}
}

func TestAccumulatorCountSkipsAbsent(t *testing.T) {
	acc := NewAccumulator(AggCount)
	acc.Add(Int(1))
	acc.Add(Absent())
	acc.Add(Int(2))
	assert.Equal(t, Int(2), acc.Result())
}

func TestAccumulatorCountStarCountsEveryRow(t *testing.T) {
	acc := NewAccumulator(AggCount)
	acc.Add(Int(1))
	acc.Add(Absent())
	assert.Equal(t, Int(2), acc.CountStar())
}

func TestAccumulatorSumAvgMinMax(t *testing.T) {
	acc := NewAccumulator(AggSum)
	for _, v := range []int64{10, 20, 30} {
		acc.Add(Int(v))
	}
	assert.Equal(t, Float(60), acc.Result())

	acc = NewAccumulator(AggAvg)
	for _, v := range []int64{10, 20, 30} {
		acc.Add(Int(v))
	}
	assert.Equal(t, Float(20), acc.Result())

	acc = NewAccumulator(AggMin)
	acc.Add(Int(5))
	acc.Add(Int(1))
	acc.Add(Int(3))
	assert.Equal(t, Int(1), acc.Result())

	acc = NewAccumulator(AggMax)
	acc.Add(Int(5))
	acc.Add(Int(1))
	acc.Add(Int(3))
	assert.Equal(t, Int(5), acc.Result())
}

func TestAccumulatorStdDevSampleVariance(t *testing.T) {
	acc := NewAccumulator(AggStdDev)
	for _, v := range []int64{2, 4, 4, 4, 5, 5, 7, 9} {
		acc.Add(Int(v))
	}
	result := acc.Result()
	assert.Equal(t, KindFloat, result.Kind())
	assert.InDelta(t, 2.138, result.Float(), 0.01)
}

func TestAccumulatorStdDevSingleValueIsAbsent(t *testing.T) {
	acc := NewAccumulator(AggStdDev)
	acc.Add(Int(5))
	assert.True(t, acc.Result().IsAbsent(), "sample stddev needs at least two data points")
}
