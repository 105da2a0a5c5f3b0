// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package algorithms

import (
	"context"

	"github.com/lspp60/trackrec/internal/recommend"
)

// BaselineConfig contains configuration for the baseline predictor.
type BaselineConfig struct {
	// UserDamping shrinks user biases toward zero for users with few ratings.
	// Default: 10.
	UserDamping float64

	// ItemDamping shrinks item biases toward zero for items with few ratings.
	// Default: 25.
	ItemDamping float64
}

// DefaultBaselineConfig returns default baseline configuration.
func DefaultBaselineConfig() BaselineConfig {
	return BaselineConfig{
		UserDamping: 10,
		ItemDamping: 25,
	}
}

// BaselinePredictor estimates ratings as
//
//	r(u, i) = mu + b_u + b_i
//
// where mu is the global mean and the biases are damped means of residuals:
//
//	b_i = sum_{u in U(i)} (r_ui - mu) / (|U(i)| + item_damping)
//	b_u = sum_{i in I(u)} (r_ui - mu - b_i) / (|I(u)| + user_damping)
//
// Estimates are clamped to the rating scale. Unknown users and items have
// zero bias, so a cold-start user gets mu + b_i.
type BaselinePredictor struct {
	scale    recommend.RatingScale
	mean     float64
	userBias map[int]float64
	itemBias map[int]float64
}

// FitBaseline computes the global mean and biases from training interactions.
// With no interactions the mean is the midpoint of the scale.
//
//nolint:gocritic // rangeValCopy: Interaction passed by value in range, acceptable for clarity
func FitBaseline(ctx context.Context, interactions []recommend.Interaction, scale recommend.RatingScale, cfg BaselineConfig) (*BaselinePredictor, error) {
	if err := scale.Validate(); err != nil {
		return nil, err
	}
	if cfg.UserDamping < 0 {
		cfg.UserDamping = 0
	}
	if cfg.ItemDamping < 0 {
		cfg.ItemDamping = 0
	}

	b := &BaselinePredictor{
		scale:    scale,
		mean:     (scale.Min + scale.Max) / 2,
		userBias: make(map[int]float64),
		itemBias: make(map[int]float64),
	}
	if len(interactions) == 0 {
		return b, nil
	}

	var sum float64
	for _, inter := range interactions {
		sum += inter.Rating
	}
	b.mean = sum / float64(len(interactions))

	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	itemSum := make(map[int]float64)
	itemCount := make(map[int]int)
	for _, inter := range interactions {
		itemSum[inter.ItemID] += inter.Rating - b.mean
		itemCount[inter.ItemID]++
	}
	for id, s := range itemSum {
		b.itemBias[id] = s / (float64(itemCount[id]) + cfg.ItemDamping)
	}

	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	userSum := make(map[int]float64)
	userCount := make(map[int]int)
	for _, inter := range interactions {
		userSum[inter.UserID] += inter.Rating - b.mean - b.itemBias[inter.ItemID]
		userCount[inter.UserID]++
	}
	for id, s := range userSum {
		b.userBias[id] = s / (float64(userCount[id]) + cfg.UserDamping)
	}

	return b, nil
}

// Predict returns the clamped baseline estimate.
func (b *BaselinePredictor) Predict(userID, itemID int) float64 {
	return b.scale.Clamp(b.mean + b.userBias[userID] + b.itemBias[itemID])
}

// Mean returns the global mean rating.
func (b *BaselinePredictor) Mean() float64 {
	return b.mean
}
