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

package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValues(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "", cfg.MetricsListenAddr)
	assert.Equal(t, 1000, cfg.CancellationPollEvery)
	assert.Equal(t, int64(0), cfg.MemorySoftLimitBytes)
	assert.Equal(t, 500, cfg.DefaultScanBatchSize)
}

func TestLoadOverridesOnlySpecifiedFields(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "quill.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte("metrics_listen_addr: \":9090\"\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9090", cfg.MetricsListenAddr)
	assert.Equal(t, 1000, cfg.CancellationPollEvery, "unspecified fields must keep their Default() value")
}

func TestLoadMissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
	assert.True(t, os.IsNotExist(err))
}

func TestLoadMalformedYAMLErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte("cancellation_poll_every: [not, a, number]\n"), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
