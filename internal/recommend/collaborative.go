// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package recommend

import (
	"context"
	"fmt"
)

// CollaborativeScorer ranks candidates by the predictor's rating estimate:
//
//	cf(i|u) = clamp(predict(u, i) / max_rating, 0, 1)
type CollaborativeScorer struct {
	pred  Predictor
	scale RatingScale
}

// NewCollaborativeScorer creates a collaborative scorer over a predictor.
func NewCollaborativeScorer(pred Predictor, scale RatingScale) (*CollaborativeScorer, error) {
	if pred == nil {
		return nil, fmt.Errorf("collaborative scorer: predictor is nil")
	}
	if err := scale.Validate(); err != nil {
		return nil, err
	}
	return &CollaborativeScorer{pred: pred, scale: scale}, nil
}

// Name returns "collaborative".
func (s *CollaborativeScorer) Name() string {
	return ScorerCollaborative
}

// Score returns the normalized prediction of every candidate.
func (s *CollaborativeScorer) Score(ctx context.Context, q Query) ([]CandidateScore, error) {
	if err := ctx.Err(); err != nil {
		return nil, scorerFailed(s.Name(), err)
	}

	out := make([]CandidateScore, len(q.Candidates))
	for i, id := range q.Candidates {
		cf := s.cfScore(q.UserID, id)
		out[i] = CandidateScore{UserID: q.UserID, ItemID: id, CF: cf, Score: cf}
	}
	return out, nil
}

func (s *CollaborativeScorer) cfScore(userID, itemID int) float64 {
	return s.scale.Normalize(s.pred.Predict(userID, itemID))
}
