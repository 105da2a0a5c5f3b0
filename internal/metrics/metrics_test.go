// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestRecordRecommendRequest(t *testing.T) {
	tests := []struct {
		name       string
		scorer     string
		duration   time.Duration
		candidates int
		err        error
		outcome    string
	}{
		{
			name:       "successful hybrid request",
			scorer:     "test-hybrid",
			duration:   2 * time.Millisecond,
			candidates: 120,
			outcome:    "ok",
		},
		{
			name:     "failed request",
			scorer:   "test-hybrid",
			duration: time.Millisecond,
			err:      errors.New("invalid configuration"),
			outcome:  "error",
		},
		{
			name:       "knn request",
			scorer:     "test-knn",
			duration:   500 * time.Microsecond,
			candidates: 10,
			outcome:    "ok",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counter := RecommendRequestsTotal.WithLabelValues(tt.scorer, tt.outcome)
			before := testutil.ToFloat64(counter)

			RecordRecommendRequest(tt.scorer, tt.duration, tt.candidates, tt.err)

			if got := testutil.ToFloat64(counter) - before; got != 1 {
				t.Errorf("requests{%s,%s} delta = %v, want 1", tt.scorer, tt.outcome, got)
			}
		})
	}
}

func TestRecordColdStart(t *testing.T) {
	counter := ColdStartTotal.WithLabelValues("test-cold")
	before := testutil.ToFloat64(counter)

	RecordColdStart("test-cold")
	RecordColdStart("test-cold")

	if got := testutil.ToFloat64(counter) - before; got != 2 {
		t.Errorf("cold start delta = %v, want 2", got)
	}
}

func TestRecordCache(t *testing.T) {
	hits := testutil.ToFloat64(CacheHits)
	misses := testutil.ToFloat64(CacheMisses)

	RecordCacheHit()
	RecordCacheMiss()
	RecordCacheMiss()

	if got := testutil.ToFloat64(CacheHits) - hits; got != 1 {
		t.Errorf("cache hits delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CacheMisses) - misses; got != 2 {
		t.Errorf("cache misses delta = %v, want 2", got)
	}
}

func TestRecordDatasetLoad(t *testing.T) {
	RecordDatasetLoad("test_ratings", 42, 1500*time.Millisecond)

	if got := testutil.ToFloat64(DatasetRows.WithLabelValues("test_ratings")); got != 42 {
		t.Errorf("dataset rows = %v, want 42", got)
	}
	if got := testutil.ToFloat64(DatasetLoadDuration.WithLabelValues("test_ratings")); got != 1.5 {
		t.Errorf("dataset load duration = %v, want 1.5", got)
	}
}

func TestSetEvaluationMetric(t *testing.T) {
	tests := []struct {
		name   string
		k      int
		label  string
		metric string
		value  float64
	}{
		{"precision at 5", 5, "5", "precision", 0.25},
		{"overall mrr", 0, "all", "mrr", 0.5},
		{"negative k treated as all", -3, "all", "coverage", 0.75},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetEvaluationMetric("test-eval", tt.metric, tt.k, tt.value)

			got := testutil.ToFloat64(EvaluationMetric.WithLabelValues("test-eval", tt.metric, tt.label))
			if got != tt.value {
				t.Errorf("metric{%s,k=%s} = %v, want %v", tt.metric, tt.label, got, tt.value)
			}
		})
	}
}

func TestRecordEvaluationUser(t *testing.T) {
	RecordEvaluationUser("test-users", "evaluated")
	RecordEvaluationUser("test-users", "malformed")

	families, err := Registry.Gather()
	if err != nil {
		t.Fatalf("Gather() error = %v", err)
	}

	var family *dto.MetricFamily
	for _, mf := range families {
		if mf.GetName() == "trackrec_evaluation_users_total" {
			family = mf
			break
		}
	}
	if family == nil {
		t.Fatal("trackrec_evaluation_users_total not gathered")
	}

	outcomes := make(map[string]float64)
	for _, m := range family.GetMetric() {
		labels := make(map[string]string)
		for _, lp := range m.GetLabel() {
			labels[lp.GetName()] = lp.GetValue()
		}
		if labels["scorer"] == "test-users" {
			outcomes[labels["outcome"]] = m.GetCounter().GetValue()
		}
	}

	if outcomes["evaluated"] < 1 || outcomes["malformed"] < 1 {
		t.Errorf("outcomes = %v, want evaluated and malformed recorded", outcomes)
	}
}

func TestWriteTextfile(t *testing.T) {
	RecordCacheHit()

	path := filepath.Join(t.TempDir(), "trackrec.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), "trackrec_cache_hits_total") {
		t.Errorf("textfile missing trackrec_cache_hits_total:\n%s", data)
	}
}

func TestWriteTextfile_BadPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing-dir", "trackrec.prom")
	if err := WriteTextfile(path); err == nil {
		t.Error("WriteTextfile() into missing directory should fail")
	}
}
