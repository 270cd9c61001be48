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

package mem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quillsql/quill/sql"
)

func TestTablePutAndGetByID(t *testing.T) {
	tbl := NewTable()
	ctx := sql.NewEmptyContext()

	require.NoError(t, tbl.Put(ctx, []sql.Row{
		sql.RowWithValues(1, map[string]sql.Value{"name": sql.Text("alice")}),
		sql.RowWithValues(2, map[string]sql.Value{"name": sql.Text("bob")}),
	}))

	rows, err := tbl.Get(ctx, []int64{2})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, sql.Text("bob"), rows[0].Get("name"))
}

func TestTableGetEmptyIDsReturnsSnapshot(t *testing.T) {
	tbl := NewTable()
	ctx := sql.NewEmptyContext()
	require.NoError(t, tbl.Put(ctx, []sql.Row{
		sql.NewRow(1), sql.NewRow(2), sql.NewRow(3),
	}))

	rows, err := tbl.Get(ctx, nil)
	require.NoError(t, err)
	assert.Len(t, rows, 3)
}

func TestTableGetSkipsMissingIDs(t *testing.T) {
	tbl := NewTable()
	ctx := sql.NewEmptyContext()
	require.NoError(t, tbl.Put(ctx, []sql.Row{sql.NewRow(1)}))

	rows, err := tbl.Get(ctx, []int64{1, 99})
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestTablePutIsUpsert(t *testing.T) {
	tbl := NewTable()
	ctx := sql.NewEmptyContext()
	require.NoError(t, tbl.Put(ctx, []sql.Row{
		sql.RowWithValues(1, map[string]sql.Value{"n": sql.Int(1)}),
	}))
	require.NoError(t, tbl.Put(ctx, []sql.Row{
		sql.RowWithValues(1, map[string]sql.Value{"n": sql.Int(2)}),
	}))

	rows, err := tbl.Get(ctx, []int64{1})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, sql.Int(2), rows[0].Get("n"))
}

func TestTableRemoveSpecificIDs(t *testing.T) {
	tbl := NewTable()
	ctx := sql.NewEmptyContext()
	require.NoError(t, tbl.Put(ctx, []sql.Row{sql.NewRow(1), sql.NewRow(2), sql.NewRow(3)}))

	require.NoError(t, tbl.Remove(ctx, []int64{2}))

	n, err := tbl.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestTableRemoveEmptyIDsClearsEverything(t *testing.T) {
	tbl := NewTable()
	ctx := sql.NewEmptyContext()
	require.NoError(t, tbl.Put(ctx, []sql.Row{sql.NewRow(1), sql.NewRow(2)}))

	require.NoError(t, tbl.Remove(ctx, nil))

	n, err := tbl.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n, "empty ids is the documented remove-everything convention")
}

func TestTableLen(t *testing.T) {
	tbl := NewTable()
	ctx := sql.NewEmptyContext()
	n, err := tbl.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	require.NoError(t, tbl.Put(ctx, []sql.Row{sql.NewRow(1)}))
	n, err = tbl.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}

func TestTableImplementsStorageInterface(t *testing.T) {
	var _ sql.Table = NewTable()
}
