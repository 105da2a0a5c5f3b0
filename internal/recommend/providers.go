// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package recommend

// SimilarityProvider is a read-only item-item similarity lookup.
// Implementations return values in [0,1], are symmetric, and return 1 for Similarity(x, x).
// Unknown pairs score 0.
type SimilarityProvider interface {
	Similarity(a, b int) float64
}

// Predictor is a read-only rating estimator.
// Unknown users or items receive the predictor's cold estimate rather than an error.
type Predictor interface {
	Predict(userID, itemID int) float64
}

// History exposes a user's training-split ratings.
// Unknown users have an empty history.
type History interface {
	RatedItems(userID int) []Rating
}

// Catalog exposes the candidate universe.
type Catalog interface {
	// AllItems returns every known item id in ascending order.
	AllItems() []int

	// HasItem reports whether itemID is known.
	HasItem(itemID int) bool
}

// DataProvider is the training view the engine reads candidates and histories from.
// It is typically implemented by dataset.Dataset.
type DataProvider interface {
	Catalog
	History
}

// SimilarityFunc adapts a function to SimilarityProvider.
type SimilarityFunc func(a, b int) float64

// Similarity calls f(a, b).
func (f SimilarityFunc) Similarity(a, b int) float64 {
	return f(a, b)
}

// PredictorFunc adapts a function to Predictor.
type PredictorFunc func(userID, itemID int) float64

// Predict calls f(userID, itemID).
func (f PredictorFunc) Predict(userID, itemID int) float64 {
	return f(userID, itemID)
}
