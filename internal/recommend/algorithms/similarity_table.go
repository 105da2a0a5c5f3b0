// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package algorithms

import (
	"fmt"
	"math"

	"github.com/lspp60/trackrec/internal/recommend"
)

// SimilarityTable serves externally computed item-item similarities.
// Pairs are unordered; missing pairs score 0 and every item is fully
// similar to itself.
type SimilarityTable struct {
	scores map[pairKey]float64
}

// NewSimilarityTable builds a table from entries. A later entry for the
// same pair replaces an earlier one. Non-finite scores are rejected.
//
//nolint:gocritic // rangeValCopy: SimilarityEntry is small
func NewSimilarityTable(entries []recommend.SimilarityEntry) (*SimilarityTable, error) {
	t := &SimilarityTable{scores: make(map[pairKey]float64, len(entries))}
	for i, e := range entries {
		if math.IsNaN(e.Score) || math.IsInf(e.Score, 0) {
			return nil, fmt.Errorf("similarity entry %d (%d, %d): score is not finite", i, e.ItemA, e.ItemB)
		}
		if e.ItemA == e.ItemB {
			continue
		}
		t.scores[makePairKey(e.ItemA, e.ItemB)] = e.Score
	}
	return t, nil
}

// Similarity returns the stored score clamped to [0,1].
func (t *SimilarityTable) Similarity(a, b int) float64 {
	if a == b {
		return 1
	}
	return math.Max(0, math.Min(1, t.scores[makePairKey(a, b)]))
}

// Len returns the number of stored pairs.
func (t *SimilarityTable) Len() int {
	return len(t.scores)
}
