// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package evaluate

import (
	"errors"
	"fmt"
	"sort"

	"github.com/lspp60/trackrec/internal/recommend"
)

var (
	// ErrMalformedRanking is returned for a ranked list with repeated item ids.
	ErrMalformedRanking = errors.New("malformed ranking")

	// ErrMissingRanking is returned for a user with relevant items but no ranked list.
	ErrMissingRanking = errors.New("missing ranking")
)

// Skip reasons used in reports and metrics labels.
const (
	ReasonMalformedRanking = "malformed_ranking"
	ReasonMissingRanking   = "missing_ranking"
	ReasonScorerError      = "scorer_error"
)

// reasonFor classifies a per-user error.
func reasonFor(err error) string {
	switch {
	case errors.Is(err, ErrMalformedRanking):
		return ReasonMalformedRanking
	case errors.Is(err, ErrMissingRanking):
		return ReasonMissingRanking
	default:
		return ReasonScorerError
	}
}

// Evaluator computes ranking metrics at a fixed set of cutoffs.
// It holds no per-run state and is safe for concurrent use.
type Evaluator struct {
	ks []int
}

// NewEvaluator creates an evaluator for the cutoffs ks, reported in
// ascending order. An empty list, a non-positive K or a repeated K
// returns an error matching recommend.ErrInvalidConfiguration.
func NewEvaluator(ks []int) (*Evaluator, error) {
	if len(ks) == 0 {
		return nil, &recommend.ConfigError{Field: "ks", Reason: "at least one K is required"}
	}

	sorted := make([]int, len(ks))
	copy(sorted, ks)
	sort.Ints(sorted)
	for i, k := range sorted {
		if k <= 0 {
			return nil, &recommend.ConfigError{Field: "ks", Reason: fmt.Sprintf("K must be positive, got %d", k)}
		}
		if i > 0 && sorted[i-1] == k {
			return nil, &recommend.ConfigError{Field: "ks", Reason: fmt.Sprintf("K %d listed twice", k)}
		}
	}
	return &Evaluator{ks: sorted}, nil
}

// Ks returns the cutoffs in ascending order.
func (e *Evaluator) Ks() []int {
	out := make([]int, len(e.ks))
	copy(out, e.ks)
	return out
}

// MaxK returns the largest cutoff, the list length needed for evaluation.
func (e *Evaluator) MaxK() int {
	return e.ks[len(e.ks)-1]
}

// UserMetrics are one user's values at one cutoff.
type UserMetrics struct {
	K             int
	Precision     float64
	Recall        float64
	RecallDefined bool
	MRR           float64
	HitRate       float64
	NDCG          float64
	NDCGDefined   bool
}

// UserResult is the evaluation of one user's ranked list.
type UserResult struct {
	UserID   int
	Relevant int
	PerK     []UserMetrics

	// MRR is the reciprocal rank over the full list.
	MRR float64
}

// UserFailure records a skipped user.
type UserFailure struct {
	UserID int    `json:"user_id"`
	Reason string `json:"reason"`
	Error  string `json:"error"`
}

// EvaluateUser scores one ranked list against the user's relevant items.
// An empty relevant set is valid: recall and NDCG are then undefined.
// A list with repeated ids returns ErrMalformedRanking.
func (e *Evaluator) EvaluateUser(userID int, ranked, relevant []int) (*UserResult, error) {
	seen := make(map[int]struct{}, len(ranked))
	for pos, id := range ranked {
		if _, dup := seen[id]; dup {
			return nil, fmt.Errorf("user %d: item %d repeated at position %d: %w", userID, id, pos+1, ErrMalformedRanking)
		}
		seen[id] = struct{}{}
	}

	rel := NewRelevantSet(relevant...)
	res := &UserResult{
		UserID:   userID,
		Relevant: len(rel),
		PerK:     make([]UserMetrics, len(e.ks)),
		MRR:      ReciprocalRankAtK(ranked, rel, 0),
	}
	for i, k := range e.ks {
		m := UserMetrics{
			K:         k,
			Precision: PrecisionAtK(ranked, rel, k),
			MRR:       ReciprocalRankAtK(ranked, rel, k),
			HitRate:   HitRateAtK(ranked, rel, k),
		}
		m.Recall, m.RecallDefined = RecallAtK(ranked, rel, k)
		m.NDCG, m.NDCGDefined = NDCGAtK(ranked, rel, k)
		res.PerK[i] = m
	}
	return res, nil
}

// Evaluate scores every user appearing in ranked or truth. A user with
// held-out items but no ranked list is skipped with ErrMissingRanking. A
// truth user with neither is ignored. A user with a
// ranked list but no truth entry has an empty relevant set.
func (e *Evaluator) Evaluate(ranked, truth map[int][]int) *Report {
	users := make([]int, 0, len(ranked)+len(truth))
	seen := make(map[int]struct{}, len(ranked)+len(truth))
	for _, m := range []map[int][]int{ranked, truth} {
		for u := range m {
			if _, ok := seen[u]; !ok {
				seen[u] = struct{}{}
				users = append(users, u)
			}
		}
	}
	sort.Ints(users)

	results := make([]*UserResult, 0, len(users))
	var failures []UserFailure
	for _, u := range users {
		list, ok := ranked[u]
		if !ok {
			if len(truth[u]) == 0 {
				continue
			}
			failures = append(failures, newFailure(u, fmt.Errorf("user %d: %w", u, ErrMissingRanking)))
			continue
		}
		res, err := e.EvaluateUser(u, list, truth[u])
		if err != nil {
			failures = append(failures, newFailure(u, err))
			continue
		}
		results = append(results, res)
	}

	return e.Aggregate(results, failures)
}

func newFailure(userID int, err error) UserFailure {
	return UserFailure{UserID: userID, Reason: reasonFor(err), Error: err.Error()}
}

// Aggregate averages per-user results into a report. Results and failures
// are ordered by user id first, so the sums do not depend on the order
// in which users finished.
func (e *Evaluator) Aggregate(results []*UserResult, failures []UserFailure) *Report {
	sorted := make([]*UserResult, 0, len(results))
	for _, r := range results {
		if r != nil {
			sorted = append(sorted, r)
		}
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].UserID < sorted[j].UserID })

	fails := make([]UserFailure, len(failures))
	copy(fails, failures)
	sort.SliceStable(fails, func(i, j int) bool { return fails[i].UserID < fails[j].UserID })

	report := &Report{
		Users:    len(sorted),
		Skipped:  make(map[string]int),
		Failures: fails,
		PerK:     make([]KReport, len(e.ks)),
	}
	for _, f := range fails {
		report.Skipped[f.Reason]++
	}

	acc := make([]kAccumulator, len(e.ks))
	var overall meanAccumulator
	for _, r := range sorted {
		overall.add(r.MRR, true)
		for i, m := range r.PerK {
			acc[i].precision.add(m.Precision, true)
			acc[i].recall.add(m.Recall, m.RecallDefined)
			acc[i].mrr.add(m.MRR, true)
			acc[i].hitRate.add(m.HitRate, true)
			acc[i].ndcg.add(m.NDCG, m.NDCGDefined)
		}
	}

	report.MRR = overall.summary()
	for i, k := range e.ks {
		report.PerK[i] = KReport{
			K:         k,
			Precision: acc[i].precision.summary(),
			Recall:    acc[i].recall.summary(),
			MRR:       acc[i].mrr.summary(),
			HitRate:   acc[i].hitRate.summary(),
			NDCG:      acc[i].ndcg.summary(),
		}
	}
	return report
}

type kAccumulator struct {
	precision, recall, mrr, hitRate, ndcg meanAccumulator
}

// meanAccumulator averages defined values and counts undefined ones.
type meanAccumulator struct {
	sum       float64
	defined   int
	undefined int
}

func (a *meanAccumulator) add(v float64, defined bool) {
	if !defined {
		a.undefined++
		return
	}
	a.sum += v
	a.defined++
}

func (a *meanAccumulator) summary() MetricSummary {
	s := MetricSummary{Users: a.defined, Undefined: a.undefined}
	if a.defined > 0 {
		s.Mean = a.sum / float64(a.defined)
	}
	return s
}
