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

// Package config loads the engine's ambient settings -- everything that
// tunes the façade without changing query semantics.
package config

import (
	"io/ioutil"

	"gopkg.in/yaml.v2"
)

// EngineConfig is the façade's tunable knobs, loaded from YAML. None of
// these affect query results; they govern operational behaviour only.
type EngineConfig struct {
	// MetricsListenAddr is the address the debug/metrics HTTP server binds
	// to. Empty disables it.
	MetricsListenAddr string `yaml:"metrics_listen_addr"`

	// CancellationPollEvery is a row count between cooperative cancellation
	// checks. The façade stores it but no operator reads it: cancellation
	// is checked only inside the storage calls.
	CancellationPollEvery int `yaml:"cancellation_poll_every"`

	// MemorySoftLimitBytes is an advisory memory ceiling. The façade stores
	// it but neither logs against it nor enforces it.
	MemorySoftLimitBytes int64 `yaml:"memory_soft_limit_bytes"`

	// DefaultScanBatchSize is the hint a caller-supplied storage
	// implementation may use for its own internal batching; the engine
	// itself always reads a table in one Get(nil) call.
	DefaultScanBatchSize int `yaml:"default_scan_batch_size"`
}

// Default returns the configuration the façade uses when the caller does
// not load one explicitly.
func Default() *EngineConfig {
	return &EngineConfig{
		MetricsListenAddr:     "",
		CancellationPollEvery: 1000,
		MemorySoftLimitBytes:  0,
		DefaultScanBatchSize:  500,
	}
}

// Load reads and parses an EngineConfig from a YAML file, starting from
// Default() so an omitted field keeps its default value.
func Load(path string) (*EngineConfig, error) {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
