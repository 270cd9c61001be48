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

package quill

import (
	"github.com/quillsql/quill/sql"
	"github.com/quillsql/quill/sql/plan"
)

// QueryKind identifies which of the four query description shapes a
// Result was produced from.
type QueryKind int

const (
	SelectKind QueryKind = iota
	InsertKind
	UpdateKind
	DeleteKind
)

func (k QueryKind) String() string {
	switch k {
	case SelectKind:
		return "select"
	case InsertKind:
		return "insert"
	case UpdateKind:
		return "update"
	case DeleteKind:
		return "delete"
	default:
		return "unknown"
	}
}

// Result is the engine's discriminated output shape: a sequence of rows
// for Select, an affected-row count for Insert/Update/Delete.
type Result struct {
	Kind     QueryKind
	Rows     []sql.OutputRow
	Affected int
}

func kindOf(q plan.QueryDescription) QueryKind {
	switch q.(type) {
	case plan.SelectQuery:
		return SelectKind
	case plan.InsertQuery:
		return InsertKind
	case plan.UpdateQuery:
		return UpdateKind
	case plan.DeleteQuery:
		return DeleteKind
	default:
		return SelectKind
	}
}

// toResult converts one physical operator's Relation into the façade's
// Result shape, dispatching on the originating query kind.
func toResult(kind QueryKind, rel sql.Relation) *Result {
	if kind != SelectKind {
		affected := 0
		if len(rel) == 1 {
			if v, ok := rel[0].Resolve("", "affected"); ok && v.Kind() == sql.KindInt {
				affected = int(v.Int())
			}
		}
		return &Result{Kind: kind, Affected: affected}
	}

	rows := make([]sql.OutputRow, len(rel))
	for i, crow := range rel {
		rows[i] = toOutputRow(crow)
	}
	return &Result{Kind: kind, Rows: rows}
}

func toOutputRow(row sql.CompositeRow) sql.OutputRow {
	tables := row.Tables()
	if len(tables) == 1 {
		r, _ := row.Get(tables[0])
		return sql.NewFlatOutputRow(r.Values)
	}
	byTable := make(map[string]map[string]sql.Value, len(tables))
	for _, t := range tables {
		r, _ := row.Get(t)
		byTable[t] = r.Values
	}
	return sql.NewCompositeOutputRow(byTable)
}
