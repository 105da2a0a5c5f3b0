// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package metrics

import (
	"fmt"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds every trackrec collector.
var Registry = prometheus.NewRegistry()

var factory = promauto.With(Registry)

var (
	// Recommendation Metrics
	RecommendRequestsTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trackrec_recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"scorer", "outcome"},
	)

	RecommendDuration = factory.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trackrec_recommend_duration_seconds",
			Help:    "Duration of recommendation scoring in seconds",
			Buckets: []float64{.0001, .0005, .001, .005, .01, .05, .1, .5, 1},
		},
		[]string{"scorer"},
	)

	RecommendCandidates = factory.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "trackrec_recommend_candidates",
			Help:    "Number of candidate items scored per request",
			Buckets: prometheus.ExponentialBuckets(10, 4, 8), // 10 .. 163840
		},
	)

	ColdStartTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trackrec_cold_start_total",
			Help: "Total number of requests for users without training history",
		},
		[]string{"scorer"},
	)

	// Result Cache Metrics
	CacheHits = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "trackrec_cache_hits_total",
			Help: "Total number of recommendation cache hits",
		},
	)

	CacheMisses = factory.NewCounter(
		prometheus.CounterOpts{
			Name: "trackrec_cache_misses_total",
			Help: "Total number of recommendation cache misses",
		},
	)

	// Dataset Metrics
	DatasetRows = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trackrec_dataset_rows",
			Help: "Number of rows loaded per table",
		},
		[]string{"table"},
	)

	DatasetLoadDuration = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trackrec_dataset_load_duration_seconds",
			Help: "Time spent loading each table in seconds",
		},
		[]string{"table"},
	)

	// Evaluation Metrics
	EvaluationUsersTotal = factory.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trackrec_evaluation_users_total",
			Help: "Total number of users processed by the evaluator, by outcome",
		},
		[]string{"scorer", "outcome"},
	)

	EvaluationMetric = factory.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "trackrec_evaluation_metric",
			Help: "Aggregate ranking metric of the last evaluation run",
		},
		[]string{"scorer", "metric", "k"},
	)
)

// RecordRecommendRequest records one scoring request.
func RecordRecommendRequest(scorer string, duration time.Duration, candidates int, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	RecommendRequestsTotal.WithLabelValues(scorer, outcome).Inc()
	RecommendDuration.WithLabelValues(scorer).Observe(duration.Seconds())
	if err == nil {
		RecommendCandidates.Observe(float64(candidates))
	}
}

// RecordColdStart records a request for a user with no training history.
func RecordColdStart(scorer string) {
	ColdStartTotal.WithLabelValues(scorer).Inc()
}

// RecordCacheHit records a result cache hit.
func RecordCacheHit() {
	CacheHits.Inc()
}

// RecordCacheMiss records a result cache miss.
func RecordCacheMiss() {
	CacheMisses.Inc()
}

// RecordDatasetLoad records the size and load time of a table.
func RecordDatasetLoad(table string, rows int, duration time.Duration) {
	DatasetRows.WithLabelValues(table).Set(float64(rows))
	DatasetLoadDuration.WithLabelValues(table).Set(duration.Seconds())
}

// RecordEvaluationUser records the outcome of evaluating one user.
func RecordEvaluationUser(scorer, outcome string) {
	EvaluationUsersTotal.WithLabelValues(scorer, outcome).Inc()
}

// SetEvaluationMetric publishes an aggregate metric. k <= 0 is reported as "all".
func SetEvaluationMetric(scorer, metric string, k int, value float64) {
	EvaluationMetric.WithLabelValues(scorer, metric, kLabel(k)).Set(value)
}

func kLabel(k int) string {
	if k <= 0 {
		return "all"
	}
	return strconv.Itoa(k)
}

// WriteTextfile writes the registry to path in Prometheus text format.
// The file is written atomically so a concurrent scrape never sees a partial file.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, Registry); err != nil {
		return fmt.Errorf("write metrics textfile %s: %w", path, err)
	}
	return nil
}
