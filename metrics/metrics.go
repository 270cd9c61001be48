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

// Package metrics instruments the façade: plan compile time and per-query
// row counts via armon/go-metrics, and a Prometheus scrape endpoint for
// long-running processes that embed the engine.
package metrics

import (
	"time"

	gometrics "github.com/armon/go-metrics"
	"github.com/prometheus/client_golang/prometheus"
)

// Recorder is the engine's metrics sink. A nil *Recorder is valid and
// records nothing, so instrumentation call sites never need a nil check.
type Recorder struct {
	sink *gometrics.InmemSink
	m    *gometrics.Metrics

	planDuration prometheus.Histogram
	rowsOut      *prometheus.CounterVec
	queriesTotal *prometheus.CounterVec
}

// New returns a Recorder backed by an in-memory go-metrics sink (for
// local inspection) and a set of Prometheus collectors (for scraping).
func New() *Recorder {
	sink := gometrics.NewInmemSink(10*time.Second, time.Minute)
	m, _ := gometrics.NewGlobal(gometrics.DefaultConfig("quill"), sink)

	return &Recorder{
		sink: sink,
		m:    m,
		planDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "quill",
			Name:      "plan_compile_seconds",
			Help:      "Time spent compiling a query description into a physical plan.",
			Buckets:   prometheus.DefBuckets,
		}),
		rowsOut: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quill",
			Name:      "operator_rows_total",
			Help:      "Rows produced by each physical operator kind, summed across queries.",
		}, []string{"operator"}),
		queriesTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "quill",
			Name:      "queries_total",
			Help:      "Queries executed, by kind and outcome.",
		}, []string{"kind", "outcome"}),
	}
}

// Collectors returns every Prometheus collector this Recorder owns, for
// registration against a prometheus.Registerer.
func (r *Recorder) Collectors() []prometheus.Collector {
	if r == nil {
		return nil
	}
	return []prometheus.Collector{r.planDuration, r.rowsOut, r.queriesTotal}
}

// ObservePlanCompile records how long Plan took to build a physical plan.
func (r *Recorder) ObservePlanCompile(d time.Duration) {
	if r == nil {
		return
	}
	r.planDuration.Observe(d.Seconds())
	r.m.AddSample([]string{"plan", "compile_ms"}, float32(d.Milliseconds()))
}

// ObserveOperatorRows records how many rows one operator kind produced.
func (r *Recorder) ObserveOperatorRows(operator string, n int) {
	if r == nil {
		return
	}
	r.rowsOut.WithLabelValues(operator).Add(float64(n))
	r.m.IncrCounter([]string{"operator", operator, "rows"}, float32(n))
}

// ObserveQuery records one query's kind and outcome (e.g. "select"/"ok",
// "delete"/"error").
func (r *Recorder) ObserveQuery(kind, outcome string) {
	if r == nil {
		return
	}
	r.queriesTotal.WithLabelValues(kind, outcome).Inc()
	r.m.IncrCounter([]string{"queries", kind, outcome}, 1)
}
