// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package recommend

import (
	"context"
	"fmt"
)

// ContentScorer ranks candidates by their similarity to the user's whole rated history.
//
// For a user u with rated items R(u) and candidate i:
//
//	content(i|u) = sum_{j in R(u)} sim(i, j) * (r_j / max_rating) / |R(u)|
//
// Every rated item contributes; a user without history scores 0 everywhere.
type ContentScorer struct {
	sim   SimilarityProvider
	scale RatingScale
}

// NewContentScorer creates a content scorer over a similarity provider.
func NewContentScorer(sim SimilarityProvider, scale RatingScale) (*ContentScorer, error) {
	if sim == nil {
		return nil, fmt.Errorf("content scorer: similarity provider is nil")
	}
	if err := scale.Validate(); err != nil {
		return nil, err
	}
	return &ContentScorer{sim: sim, scale: scale}, nil
}

// Name returns "content".
func (s *ContentScorer) Name() string {
	return ScorerContent
}

// Score returns the content score of every candidate.
func (s *ContentScorer) Score(ctx context.Context, q Query) ([]CandidateScore, error) {
	m, err := s.contentScores(ctx, q.Rated, q.Candidates)
	if err != nil {
		return nil, scorerFailed(s.Name(), err)
	}

	out := m.Candidates(q.UserID)
	for i := range out {
		out[i].Content = out[i].Score
	}
	return out, nil
}

// contentScores accumulates the weighted similarity of each candidate to the rated history.
func (s *ContentScorer) contentScores(ctx context.Context, rated []Rating, candidates []int) (*ScoreMap, error) {
	m := NewScoreMap(len(candidates))
	for _, id := range candidates {
		m.Set(id, 0)
	}
	if len(rated) == 0 {
		return m, nil
	}

	for _, r := range rated {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		weight := s.scale.Normalize(r.Value)
		if weight == 0 {
			continue
		}
		for _, id := range candidates {
			if sim := clamp01(s.sim.Similarity(id, r.ItemID)); sim > 0 {
				m.Add(id, sim*weight)
			}
		}
	}

	m.Scale(1 / float64(len(rated)))
	return m, nil
}
