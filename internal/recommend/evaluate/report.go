// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package evaluate

import (
	"fmt"
	"io"
	"time"

	"github.com/goccy/go-json"
)

// MetricSummary is the mean of a metric over the users where it is defined.
type MetricSummary struct {
	// Mean is 0 when no user has a defined value.
	Mean float64 `json:"mean"`

	// Users is the number of users averaged.
	Users int `json:"users"`

	// Undefined is the number of users excluded because the value is undefined.
	Undefined int `json:"undefined,omitempty"`
}

// KReport holds the aggregates at one cutoff.
type KReport struct {
	K         int           `json:"k"`
	Precision MetricSummary `json:"precision"`
	Recall    MetricSummary `json:"recall"`
	MRR       MetricSummary `json:"mrr"`
	HitRate   MetricSummary `json:"hit_rate"`
	NDCG      MetricSummary `json:"ndcg"`
}

// Metric returns the summary of the named metric.
func (k KReport) Metric(name string) (MetricSummary, bool) {
	switch name {
	case MetricPrecision:
		return k.Precision, true
	case MetricRecall:
		return k.Recall, true
	case MetricMRR:
		return k.MRR, true
	case MetricHitRate:
		return k.HitRate, true
	case MetricNDCG:
		return k.NDCG, true
	default:
		return MetricSummary{}, false
	}
}

// Report is the evaluation of one scorer. It is not modified after creation.
type Report struct {
	Scorer string `json:"scorer,omitempty"`

	// Users is the number of users evaluated.
	Users int `json:"users"`

	// PerK holds the aggregates in ascending K order.
	PerK []KReport `json:"per_k"`

	// MRR is the mean reciprocal rank over the full ranked lists.
	MRR MetricSummary `json:"mrr"`

	// Skipped counts skipped users by reason.
	Skipped map[string]int `json:"skipped,omitempty"`

	// Failures lists skipped users in ascending id order.
	Failures []UserFailure `json:"failures,omitempty"`
}

// At returns the aggregates at cutoff k.
func (r *Report) At(k int) (KReport, bool) {
	for _, kr := range r.PerK {
		if kr.K == k {
			return kr, true
		}
	}
	return KReport{}, false
}

// SkippedTotal returns the number of skipped users.
func (r *Report) SkippedTotal() int {
	var n int
	for _, c := range r.Skipped {
		n += c
	}
	return n
}

// Summary is the outcome of a multi-scorer evaluation run.
type Summary struct {
	// Alpha is the hybrid blend weight used.
	Alpha float64 `json:"alpha"`

	// Ks are the cutoffs in ascending order.
	Ks []int `json:"ks"`

	// Users is the number of users with held-out items.
	Users int `json:"users"`

	// Reports holds one report per scorer in run order.
	Reports []*Report `json:"reports"`

	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration_ns"`
}

// Report returns the report of the named scorer.
func (s *Summary) Report(scorer string) (*Report, bool) {
	for _, r := range s.Reports {
		if r.Scorer == scorer {
			return r, true
		}
	}
	return nil, false
}

// WriteJSON writes the summary as indented JSON.
func (s *Summary) WriteJSON(w io.Writer) error {
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("write summary: %w", err)
	}
	return nil
}
