// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package recommend

import (
	"context"
)

// HybridScorer blends collaborative and content scores:
//
//	hybrid(i|u) = alpha * cf(i|u) + (1 - alpha) * content(i|u)
//
// alpha = 1 reproduces the collaborative order, alpha = 0 the content order.
type HybridScorer struct {
	content *ContentScorer
	cf      *CollaborativeScorer
}

// NewHybridScorer creates a hybrid scorer from its two components.
func NewHybridScorer(content *ContentScorer, cf *CollaborativeScorer) *HybridScorer {
	return &HybridScorer{content: content, cf: cf}
}

// Name returns "hybrid".
func (s *HybridScorer) Name() string {
	return ScorerHybrid
}

// Score returns the blended score of every candidate with both components filled in.
func (s *HybridScorer) Score(ctx context.Context, q Query) ([]CandidateScore, error) {
	if err := checkAlpha(q.Alpha); err != nil {
		return nil, err
	}

	content, err := s.content.contentScores(ctx, q.Rated, q.Candidates)
	if err != nil {
		return nil, scorerFailed(s.Name(), err)
	}

	out := make([]CandidateScore, len(q.Candidates))
	for i, id := range q.Candidates {
		cs, _ := content.Get(id)
		cf := s.cf.cfScore(q.UserID, id)
		out[i] = CandidateScore{
			UserID:  q.UserID,
			ItemID:  id,
			CF:      cf,
			Content: cs,
			Score:   q.Alpha*cf + (1-q.Alpha)*cs,
		}
	}
	return out, nil
}
