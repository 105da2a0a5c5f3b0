// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package evaluate

import "math"

// Metric names used in reports and metrics labels.
const (
	MetricPrecision = "precision"
	MetricRecall    = "recall"
	MetricMRR       = "mrr"
	MetricHitRate   = "hit_rate"
	MetricNDCG      = "ndcg"
)

// RelevantSet is the set of held-out relevant item ids of one user.
type RelevantSet map[int]struct{}

// NewRelevantSet builds a set from ids. Repeated ids count once.
func NewRelevantSet(ids ...int) RelevantSet {
	s := make(RelevantSet, len(ids))
	for _, id := range ids {
		s[id] = struct{}{}
	}
	return s
}

func (s RelevantSet) has(id int) bool {
	_, ok := s[id]
	return ok
}

// prefix returns ranked[:k], or all of ranked when it is shorter or k <= 0.
func prefix(ranked []int, k int) []int {
	if k <= 0 || k >= len(ranked) {
		return ranked
	}
	return ranked[:k]
}

func hits(ranked []int, relevant RelevantSet, k int) int {
	var n int
	for _, id := range prefix(ranked, k) {
		if relevant.has(id) {
			n++
		}
	}
	return n
}

// PrecisionAtK is the share of the K slots holding a relevant item.
// A list shorter than K still divides by K.
func PrecisionAtK(ranked []int, relevant RelevantSet, k int) float64 {
	if k <= 0 {
		return 0
	}
	return float64(hits(ranked, relevant, k)) / float64(k)
}

// RecallAtK is the share of relevant items found in the top K.
// It is undefined (ok == false) for an empty relevant set.
func RecallAtK(ranked []int, relevant RelevantSet, k int) (float64, bool) {
	if len(relevant) == 0 {
		return 0, false
	}
	return float64(hits(ranked, relevant, k)) / float64(len(relevant)), true
}

// ReciprocalRankAtK is 1/rank of the first relevant item in the top K,
// or 0 when none is. k <= 0 considers the whole list.
func ReciprocalRankAtK(ranked []int, relevant RelevantSet, k int) float64 {
	for i, id := range prefix(ranked, k) {
		if relevant.has(id) {
			return 1 / float64(i+1)
		}
	}
	return 0
}

// HitRateAtK is 1 when any relevant item is in the top K, else 0.
func HitRateAtK(ranked []int, relevant RelevantSet, k int) float64 {
	if hits(ranked, relevant, k) > 0 {
		return 1
	}
	return 0
}

// NDCGAtK is the binary-relevance DCG of the top K normalized by the ideal
// DCG over min(|relevant|, K) positions. It is undefined (ok == false) for
// an empty relevant set.
func NDCGAtK(ranked []int, relevant RelevantSet, k int) (float64, bool) {
	if len(relevant) == 0 {
		return 0, false
	}

	var dcg float64
	for i, id := range prefix(ranked, k) {
		if relevant.has(id) {
			dcg += discount(i)
		}
	}

	ideal := len(relevant)
	if k > 0 && k < ideal {
		ideal = k
	}
	var idcg float64
	for i := 0; i < ideal; i++ {
		idcg += discount(i)
	}
	if idcg == 0 {
		return 0, true
	}
	return dcg / idcg, true
}

// discount is the log2 position discount of the 0-based position i.
func discount(i int) float64 {
	return 1 / math.Log2(float64(i)+2)
}
