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

type userItem struct {
	user, item int
}

// PredictionTable serves rating estimates of an externally trained model.
// Pairs the model did not score fall back to another predictor, typically
// a BaselinePredictor, which also covers cold-start users.
type PredictionTable struct {
	estimates map[userItem]float64
	fallback  recommend.Predictor
}

// NewPredictionTable builds a table from predictions. A later prediction
// for the same pair replaces an earlier one. Non-finite estimates are rejected.
func NewPredictionTable(predictions []recommend.Prediction, fallback recommend.Predictor) (*PredictionTable, error) {
	if fallback == nil {
		return nil, fmt.Errorf("prediction table: fallback predictor is nil")
	}

	t := &PredictionTable{
		estimates: make(map[userItem]float64, len(predictions)),
		fallback:  fallback,
	}
	for i, p := range predictions {
		if math.IsNaN(p.Estimate) || math.IsInf(p.Estimate, 0) {
			return nil, fmt.Errorf("prediction %d (%d, %d): estimate is not finite", i, p.UserID, p.ItemID)
		}
		t.estimates[userItem{user: p.UserID, item: p.ItemID}] = p.Estimate
	}
	return t, nil
}

// Predict returns the stored estimate or the fallback's.
func (t *PredictionTable) Predict(userID, itemID int) float64 {
	if v, ok := t.estimates[userItem{user: userID, item: itemID}]; ok {
		return v
	}
	return t.fallback.Predict(userID, itemID)
}

// Len returns the number of stored estimates.
func (t *PredictionTable) Len() int {
	return len(t.estimates)
}
