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

// Package quill is the query engine façade: it turns a query description
// into a physical plan and runs that plan against the tables registered
// in its Catalog. Schema definition, the fluent query builder, and
// durable storage are all out-of-scope collaborators the caller supplies.
package quill

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/quillsql/quill/config"
	"github.com/quillsql/quill/metrics"
	"github.com/quillsql/quill/sql"
	"github.com/quillsql/quill/sql/plan"
	"github.com/quillsql/quill/sql/rowexec"
)

// Engine binds a Catalog to the ambient services (config, metrics,
// logging) that observe, but never influence, query semantics.
type Engine struct {
	cat     *sql.Catalog
	cfg     *config.EngineConfig
	metrics *metrics.Recorder
	logger  *logrus.Entry

	mu sync.Mutex
}

// Option configures an Engine at construction.
type Option func(*Engine)

// WithConfig overrides the engine's ambient configuration.
func WithConfig(cfg *config.EngineConfig) Option {
	return func(e *Engine) { e.cfg = cfg }
}

// WithMetrics attaches a metrics.Recorder. Without this option the engine
// runs unobserved.
func WithMetrics(r *metrics.Recorder) Option {
	return func(e *Engine) { e.metrics = r }
}

// WithLogger overrides the engine's logger.
func WithLogger(l *logrus.Entry) Option {
	return func(e *Engine) { e.logger = l }
}

// New builds an Engine over the given Catalog.
func New(cat *sql.Catalog, opts ...Option) *Engine {
	e := &Engine{
		cat:    cat,
		cfg:    config.Default(),
		logger: logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Catalog returns the engine's schema/storage registry.
func (e *Engine) Catalog() *sql.Catalog { return e.cat }

// Plan is a compiled, reusable physical plan, the engine's pure
// compilation output -- building one never touches storage.
type Plan struct {
	kind     QueryKind
	operator rowexec.Operator
}

// Plan validates q and compiles it into a physical Plan. It performs no
// storage access.
func (e *Engine) Plan(ctx *sql.Context, q plan.QueryDescription) (*Plan, error) {
	start := time.Now()

	if err := plan.Validate(e.cat, q); err != nil {
		return nil, err
	}

	logical, err := plan.Build(ctx, e.cat, q)
	if err != nil {
		return nil, err
	}

	operator, err := rowexec.Plan(e.cat, logical)
	if err != nil {
		return nil, err
	}

	if e.metrics != nil {
		e.metrics.ObservePlanCompile(time.Since(start))
	}

	return &Plan{kind: kindOf(q), operator: operator}, nil
}

// Execute runs a previously compiled Plan against this engine's Catalog.
func (e *Engine) Execute(ctx *sql.Context, p *Plan) (*Result, error) {
	rel, err := p.operator.Execute(ctx)
	if err != nil {
		if e.metrics != nil {
			e.metrics.ObserveQuery(p.kind.String(), "error")
		}
		e.logger.WithField("kind", p.kind.String()).WithError(err).Warn("query execution failed")
		return nil, err
	}
	if e.metrics != nil {
		e.metrics.ObserveQuery(p.kind.String(), "ok")
	}
	return toResult(p.kind, rel), nil
}

// ExecuteQuery is the one-shot convenience combining Plan and Execute.
func (e *Engine) ExecuteQuery(ctx *sql.Context, q plan.QueryDescription) (*Result, error) {
	p, err := e.Plan(ctx, q)
	if err != nil {
		return nil, err
	}
	return e.Execute(ctx, p)
}
