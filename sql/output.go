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

// OutputRow is what a caller actually sees out of a Select. When only one
// table was in scope, it is a flat map of selected columns to values. When
// multiple tables were in scope (a join), it is a map from table name to
// that table's column map. Which shape is in play is always observable via
// Composite.
type OutputRow struct {
	Composite bool
	Flat      map[string]Value
	ByTable   map[string]map[string]Value
}

// NewFlatOutputRow builds a single-table OutputRow.
func NewFlatOutputRow(values map[string]Value) OutputRow {
	return OutputRow{Flat: values}
}

// NewCompositeOutputRow builds a multi-table OutputRow.
func NewCompositeOutputRow(byTable map[string]map[string]Value) OutputRow {
	return OutputRow{Composite: true, ByTable: byTable}
}
