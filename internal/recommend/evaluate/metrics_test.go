// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package evaluate

import (
	"math"
	"math/rand"
	"testing"
)

// Items of the worked example.
const (
	itemC = 3
	itemD = 4
	itemE = 5
	itemF = 6
)

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRankingMetrics_WorkedExample(t *testing.T) {
	t.Parallel()

	ranked := []int{itemC, itemD, itemE, itemF}
	relevant := NewRelevantSet(itemD)

	tests := []struct {
		k         int
		precision float64
		recall    float64
		mrr       float64
		hitRate   float64
		ndcg      float64
	}{
		{k: 1, precision: 0, recall: 0, mrr: 0, hitRate: 0, ndcg: 0},
		{k: 2, precision: 0.5, recall: 1, mrr: 0.5, hitRate: 1, ndcg: 1 / math.Log2(3)},
		{k: 4, precision: 0.25, recall: 1, mrr: 0.5, hitRate: 1, ndcg: 1 / math.Log2(3)},
	}

	for _, tt := range tests {
		if got := PrecisionAtK(ranked, relevant, tt.k); !approxEqual(got, tt.precision) {
			t.Errorf("PrecisionAtK(%d) = %v, want %v", tt.k, got, tt.precision)
		}
		if got, ok := RecallAtK(ranked, relevant, tt.k); !ok || !approxEqual(got, tt.recall) {
			t.Errorf("RecallAtK(%d) = %v, %v, want %v", tt.k, got, ok, tt.recall)
		}
		if got := ReciprocalRankAtK(ranked, relevant, tt.k); !approxEqual(got, tt.mrr) {
			t.Errorf("ReciprocalRankAtK(%d) = %v, want %v", tt.k, got, tt.mrr)
		}
		if got := HitRateAtK(ranked, relevant, tt.k); got != tt.hitRate {
			t.Errorf("HitRateAtK(%d) = %v, want %v", tt.k, got, tt.hitRate)
		}
		if got, ok := NDCGAtK(ranked, relevant, tt.k); !ok || !approxEqual(got, tt.ndcg) {
			t.Errorf("NDCGAtK(%d) = %v, %v, want %v", tt.k, got, ok, tt.ndcg)
		}
	}
}

func TestRankingMetrics_EmptyRelevant(t *testing.T) {
	t.Parallel()

	ranked := []int{1, 2, 3}
	relevant := NewRelevantSet()

	if _, ok := RecallAtK(ranked, relevant, 2); ok {
		t.Error("RecallAtK() defined for empty relevant set")
	}
	if _, ok := NDCGAtK(ranked, relevant, 2); ok {
		t.Error("NDCGAtK() defined for empty relevant set")
	}
	if got := PrecisionAtK(ranked, relevant, 2); got != 0 {
		t.Errorf("PrecisionAtK() = %v, want 0", got)
	}
	if got := HitRateAtK(ranked, relevant, 2); got != 0 {
		t.Errorf("HitRateAtK() = %v, want 0", got)
	}
}

func TestRankingMetrics_ShortList(t *testing.T) {
	t.Parallel()

	ranked := []int{7}
	relevant := NewRelevantSet(7, 8)

	if got := PrecisionAtK(ranked, relevant, 5); !approxEqual(got, 0.2) {
		t.Errorf("PrecisionAtK() = %v, want 0.2", got)
	}
	if got, _ := RecallAtK(ranked, relevant, 5); !approxEqual(got, 0.5) {
		t.Errorf("RecallAtK() = %v, want 0.5", got)
	}
	// Ideal DCG covers two positions.
	want := 1 / (1 + 1/math.Log2(3))
	if got, _ := NDCGAtK(ranked, relevant, 5); !approxEqual(got, want) {
		t.Errorf("NDCGAtK() = %v, want %v", got, want)
	}
	if got := PrecisionAtK(nil, relevant, 3); got != 0 {
		t.Errorf("PrecisionAtK(empty list) = %v, want 0", got)
	}
}

func TestNDCGAtK_IdealCutoff(t *testing.T) {
	t.Parallel()

	// Three relevant items, K=2: the ideal DCG covers two positions only,
	// so a perfect top-2 scores 1.
	got, ok := NDCGAtK([]int{1, 2, 9}, NewRelevantSet(1, 2, 3), 2)
	if !ok || !approxEqual(got, 1) {
		t.Errorf("NDCGAtK() = %v, %v, want 1", got, ok)
	}
}

func TestRankingMetrics_Bounds(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 200; trial++ {
		ranked := rng.Perm(30)[:rng.Intn(30)]
		var rel []int
		for i, n := 0, rng.Intn(10); i < n; i++ {
			rel = append(rel, rng.Intn(40))
		}
		relevant := NewRelevantSet(rel...)

		for _, k := range []int{1, 3, 10, 50} {
			if p := PrecisionAtK(ranked, relevant, k); p < 0 || p > 1 {
				t.Fatalf("precision %v out of [0,1]", p)
			}
			if r, ok := RecallAtK(ranked, relevant, k); ok && (r < 0 || r > 1) {
				t.Fatalf("recall %v out of [0,1]", r)
			}
			if n, ok := NDCGAtK(ranked, relevant, k); ok && (n < 0 || n > 1+1e-12) {
				t.Fatalf("ndcg %v out of [0,1]", n)
			}
			if h := HitRateAtK(ranked, relevant, k); h != 0 && h != 1 {
				t.Fatalf("hit rate %v not in {0,1}", h)
			}
		}
	}
}
