// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package recommend

import (
	"context"
	"fmt"
	"sort"
)

// KnnScorer scores a candidate from its k most similar rated items only:
//
//	knn(i|u) = sum_{j in N_k(i)} sim(i, j) * (r_j / max_rating) / |N_k(i)|
//
// N_k(i) holds the rated items with positive similarity to i, best first,
// ties by ascending item id. With k = 1 only the single closest rated item counts.
type KnnScorer struct {
	sim   SimilarityProvider
	scale RatingScale
	k     int
}

// NewKnnScorer creates a neighborhood scorer with k neighbors.
func NewKnnScorer(sim SimilarityProvider, scale RatingScale, k int) (*KnnScorer, error) {
	if sim == nil {
		return nil, fmt.Errorf("knn scorer: similarity provider is nil")
	}
	if err := scale.Validate(); err != nil {
		return nil, err
	}
	if k <= 0 {
		return nil, invalidConfig("knn.neighbors", "must be positive, got %d", k)
	}
	return &KnnScorer{sim: sim, scale: scale, k: k}, nil
}

// Name returns "knn".
func (s *KnnScorer) Name() string {
	return ScorerKNN
}

// neighbor is a rated item with its similarity to the candidate.
type neighbor struct {
	ID         int
	Similarity float64
	Weight     float64
}

// Score returns the neighborhood score of every candidate.
func (s *KnnScorer) Score(ctx context.Context, q Query) ([]CandidateScore, error) {
	out := make([]CandidateScore, len(q.Candidates))
	neighbors := make([]neighbor, 0, len(q.Rated))

	for i, id := range q.Candidates {
		if i%256 == 0 {
			if err := ctx.Err(); err != nil {
				return nil, scorerFailed(s.Name(), err)
			}
		}

		neighbors = neighbors[:0]
		for _, r := range q.Rated {
			if sim := clamp01(s.sim.Similarity(id, r.ItemID)); sim > 0 {
				neighbors = append(neighbors, neighbor{ID: r.ItemID, Similarity: sim, Weight: s.scale.Normalize(r.Value)})
			}
		}

		out[i] = CandidateScore{UserID: q.UserID, ItemID: id, Score: s.aggregate(neighbors)}
	}
	return out, nil
}

// aggregate averages the k best neighbors. It reorders neighbors in place.
func (s *KnnScorer) aggregate(neighbors []neighbor) float64 {
	if len(neighbors) == 0 {
		return 0
	}

	sort.Slice(neighbors, func(a, b int) bool {
		if neighbors[a].Similarity != neighbors[b].Similarity {
			return neighbors[a].Similarity > neighbors[b].Similarity
		}
		return neighbors[a].ID < neighbors[b].ID
	})
	if len(neighbors) > s.k {
		neighbors = neighbors[:s.k]
	}

	var sum float64
	for _, n := range neighbors {
		sum += n.Similarity * n.Weight
	}
	return clamp01(sum / float64(len(neighbors)))
}
