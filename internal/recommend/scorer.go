// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package recommend

import (
	"context"
	"fmt"
)

// Scorer names.
const (
	ScorerHybrid        = "hybrid"
	ScorerContent       = "content"
	ScorerCollaborative = "collaborative"
	ScorerKNN           = "knn"
)

// Query is the input of one scoring call.
type Query struct {
	// UserID is the user being scored.
	UserID int

	// Alpha is the collaborative weight. Only the hybrid scorer reads it.
	Alpha float64

	// Rated is the user's training history. Empty for a cold-start user.
	Rated []Rating

	// Candidates are the item ids to score.
	Candidates []int
}

// Scorer scores candidate items for one user.
// Implementations are pure functions of their immutable providers and the query,
// and are safe for concurrent use.
type Scorer interface {
	// Name returns the scorer identifier (e.g., "hybrid", "knn").
	Name() string

	// Score returns one CandidateScore per candidate, in candidate order.
	// Every Score lies in [0,1].
	Score(ctx context.Context, q Query) ([]CandidateScore, error)
}

// checkAlpha validates the blend weight.
func checkAlpha(alpha float64) error {
	if !(alpha >= 0 && alpha <= 1) {
		return invalidConfig("alpha", "must be within [0, 1], got %g", alpha)
	}
	return nil
}

// scorerFailed wraps an error raised while scoring.
func scorerFailed(name string, err error) error {
	return fmt.Errorf("%s scorer: %w", name, err)
}
