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

import "gopkg.in/src-d/go-errors.v1"

var (
	// ErrValidation marks a malformed query description: an unknown column,
	// a type mismatch, or an aggregator applied where it cannot be.
	ErrValidation = errors.NewKind("validation error: %s")

	// ErrPlan marks a planner that could not produce a plan, e.g. an
	// ambiguous column reference surviving past resolution.
	ErrPlan = errors.NewKind("plan error: %s")

	// ErrExec marks a runtime operator failure: a constraint violation, or
	// any other failure raised while a physical plan is executing.
	ErrExec = errors.NewKind("execution error: %s")

	// ErrStorage marks an underlying Table reporting failure. Always fatal
	// to the running query.
	ErrStorage = errors.NewKind("storage error: %s")

	// ErrCancelled marks cooperative cancellation observed at a suspension
	// point.
	ErrCancelled = errors.NewKind("query cancelled")

	// ErrUnknownTable is a specific ValidationError cause.
	ErrUnknownTable = errors.NewKind("unknown table: %s")

	// ErrUnknownColumn is a specific ValidationError cause.
	ErrUnknownColumn = errors.NewKind("unknown column: %s")

	// ErrRowNotFound is a specific ExecError cause for a row that vanished
	// between read and write. It is declared here; the Update and Delete
	// operators do not raise it.
	ErrRowNotFound = errors.NewKind("row not found: table %s id %d")

	// ErrDuplicateID is a specific ExecError cause raised by Insert with the
	// error conflict policy.
	ErrDuplicateID = errors.NewKind("duplicate row id %d in table %s")
)
