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

package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewReturnsUsableRecorder(t *testing.T) {
	r := New()
	require.NotNil(t, r)
	assert.Len(t, r.Collectors(), 3)
}

func TestNilRecorderMethodsAreNoOps(t *testing.T) {
	var r *Recorder
	assert.NotPanics(t, func() {
		r.ObservePlanCompile(time.Millisecond)
		r.ObserveOperatorRows("select", 10)
		r.ObserveQuery("select", "ok")
	})
	assert.Nil(t, r.Collectors())
}

func TestObserveQueryIncrementsCounter(t *testing.T) {
	r := New()
	r.ObserveQuery("select", "ok")
	r.ObserveQuery("select", "ok")
	r.ObserveQuery("delete", "error")

	m := &dto.Metric{}
	require.NoError(t, r.queriesTotal.WithLabelValues("select", "ok").Write(m))
	assert.Equal(t, float64(2), m.GetCounter().GetValue())

	require.NoError(t, r.queriesTotal.WithLabelValues("delete", "error").Write(m))
	assert.Equal(t, float64(1), m.GetCounter().GetValue())
}

func TestNewServerExposesMetricsAndHealthz(t *testing.T) {
	r := New()
	r.ObserveQuery("select", "ok")
	srv := NewServer(r)

	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestNewServerWithNilRecorderStillServes(t *testing.T) {
	srv := NewServer(nil)
	ts := httptest.NewServer(srv.Handler)
	defer ts.Close()

	resp, err := http.Get(ts.URL + "/healthz")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
