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
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/sirupsen/logrus"
	uuid "github.com/satori/go.uuid"
)

// Context is threaded through every storage call and every physical
// operator's Execute. It carries the cooperative cancellation signal (via
// the embedded context.Context's Done channel, checked at each suspension
// point), a correlation id, a logger, and an optional tracing span.
//
// A single Context is private to one in-flight query; the engine makes no
// ordering guarantee across Contexts used concurrently by separate queries.
type Context struct {
	context.Context

	// QueryID correlates log lines, trace spans, and returned errors back
	// to one Engine.Execute call.
	QueryID uuid.UUID

	logger *logrus.Entry
	span   opentracing.Span
}

// ContextOption configures a new Context.
type ContextOption func(*Context)

// WithLogger attaches a logger to the Context.
func WithLogger(l *logrus.Entry) ContextOption {
	return func(c *Context) { c.logger = l }
}

// WithSpan attaches a tracing span to the Context.
func WithSpan(s opentracing.Span) ContextOption {
	return func(c *Context) { c.span = s }
}

// NewContext builds a Context wrapping parent, stamping it with a fresh
// query correlation id.
func NewContext(parent context.Context, opts ...ContextOption) *Context {
	if parent == nil {
		parent = context.Background()
	}
	c := &Context{
		Context: parent,
		QueryID: uuid.NewV4(),
		logger:  logrus.NewEntry(logrus.StandardLogger()),
	}
	for _, opt := range opts {
		opt(c)
	}
	c.logger = c.logger.WithField("query_id", c.QueryID.String())
	return c
}

// NewEmptyContext returns a Context suitable for tests and one-off calls
// that don't need cancellation or a caller-supplied logger.
func NewEmptyContext() *Context {
	return NewContext(context.Background())
}

// GetLogger returns this Context's logger, always non-nil.
func (c *Context) GetLogger() *logrus.Entry {
	if c.logger == nil {
		return logrus.NewEntry(logrus.StandardLogger())
	}
	return c.logger
}

// Span returns the tracing span attached to this Context, or nil.
func (c *Context) Span() opentracing.Span {
	return c.span
}

// Cancelled reports whether cooperative cancellation has been observed.
// Callers check this at each suspension point (the storage Get/Put/Remove
// and Len calls); the physical operators themselves do not check it.
func (c *Context) Cancelled() bool {
	select {
	case <-c.Done():
		return true
	default:
		return false
	}
}

// CheckCancelled returns ErrCancelled.New() if cancellation has been
// observed, nil otherwise. Suspension points call this before doing any
// work.
func (c *Context) CheckCancelled() error {
	if c.Cancelled() {
		return ErrCancelled.New()
	}
	return nil
}
