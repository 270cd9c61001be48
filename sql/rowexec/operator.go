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

// Package rowexec turns a logical plan tree into a physical operator tree
// and runs it. Only storage-touching operators (TableAccess, Insert,
// Update, Delete) suspend on cooperative cancellation -- that check lives
// inside mem.Table itself, so the pure in-memory operators below never
// re-check it.
package rowexec

import "github.com/quillsql/quill/sql"

// Operator is one node of the physical plan: a producer of a Relation. An
// Operator tree holds no per-run state, so a compiled plan's tree may be
// executed any number of times.
type Operator interface {
	Execute(ctx *sql.Context) (sql.Relation, error)
}

// resultTable is the synthetic table key Project, Aggregate, and Distinct
// emit their output rows under. A Relation whose rows all carry exactly
// one table key -- real or synthetic -- becomes a flat OutputRow; only an
// un-projected multi-table join stays Composite.
const resultTable = ""

// emptyOp produces no rows, used by the constant-false predicate
// short-circuit.
type emptyOp struct{}

func (emptyOp) Execute(ctx *sql.Context) (sql.Relation, error) { return nil, nil }
