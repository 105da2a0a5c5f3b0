// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package algorithms

import (
	"context"
	"math"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/lspp60/trackrec/internal/recommend"
)

// SimilarityMatrix is a dense precomputed item-item similarity matrix.
// It is symmetric with a unit diagonal.
type SimilarityMatrix struct {
	ids    []int
	index  map[int]int
	values []float32
}

// NewSimilarityMatrix evaluates sim for every pair of ids, computing rows
// on up to workers goroutines (0 uses runtime.NumCPU()).
// Scores are clamped to [0,1].
func NewSimilarityMatrix(ctx context.Context, ids []int, sim recommend.SimilarityProvider, workers int) (*SimilarityMatrix, error) {
	unique := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; !ok {
			seen[id] = struct{}{}
			unique = append(unique, id)
		}
	}
	sort.Ints(unique)

	n := len(unique)
	m := &SimilarityMatrix{
		ids:    unique,
		index:  make(map[int]int, n),
		values: make([]float32, n*n),
	}
	for i, id := range unique {
		m.index[id] = i
		m.values[i*n+i] = 1
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultWorkers(workers))

	for i := 0; i < n; i++ {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if ContextCancelled(gctx) {
				return gctx.Err()
			}
			// Row i owns cells (i, j) and (j, i) for j > i.
			for j := i + 1; j < n; j++ {
				s := float32(math.Max(0, math.Min(1, finiteOr(sim.Similarity(unique[i], unique[j]), 0))))
				m.values[i*n+j] = s
				m.values[j*n+i] = s
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return m, nil
}

// Similarity returns the stored similarity, or 0 for unknown items.
func (m *SimilarityMatrix) Similarity(a, b int) float64 {
	i, ok := m.index[a]
	if !ok {
		return 0
	}
	j, ok := m.index[b]
	if !ok {
		return 0
	}
	return float64(m.values[i*len(m.ids)+j])
}

// Len returns the number of items in the matrix.
func (m *SimilarityMatrix) Len() int {
	return len(m.ids)
}

// Entries returns the upper triangle as similarity entries with a positive score,
// ordered by (ItemA, ItemB).
func (m *SimilarityMatrix) Entries() []recommend.SimilarityEntry {
	n := len(m.ids)
	var out []recommend.SimilarityEntry
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			if s := m.values[i*n+j]; s > 0 {
				out = append(out, recommend.SimilarityEntry{ItemA: m.ids[i], ItemB: m.ids[j], Score: float64(s)})
			}
		}
	}
	return out
}
