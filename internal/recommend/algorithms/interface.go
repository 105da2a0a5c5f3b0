// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

// Package algorithms implements the similarity and prediction models behind
// the recommend scorers.
//
// # Models
//
//   - TFIDF: text vectors of title, genre and artist (unigrams and bigrams)
//   - SimilarityMatrix: dense item-item similarity precomputed from any provider
//   - SimilarityTable: externally computed item-item similarities
//   - CoRatingSimilarity: item-item cosine over co-rating users
//   - BaselinePredictor: global mean plus damped user and item biases
//   - PredictionTable: externally trained estimates with a baseline fallback
//
// Every model implements recommend.SimilarityProvider or recommend.Predictor.
//
// # Thread Safety
//
// Models are immutable once built and safe for concurrent use.
package algorithms

import (
	"context"
	"math"
	"runtime"

	"github.com/lspp60/trackrec/internal/recommend"
)

// Ensure all models implement the provider interfaces.
var (
	_ recommend.SimilarityProvider = (*TFIDF)(nil)
	_ recommend.SimilarityProvider = (*SimilarityMatrix)(nil)
	_ recommend.SimilarityProvider = (*SimilarityTable)(nil)
	_ recommend.SimilarityProvider = (*CoRatingSimilarity)(nil)
	_ recommend.Predictor          = (*BaselinePredictor)(nil)
	_ recommend.Predictor          = (*PredictionTable)(nil)
)

// pairKey orders an unordered item pair.
type pairKey struct {
	lo, hi int
}

func makePairKey(a, b int) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{lo: a, hi: b}
}

// sparseVector is a vector with ascending indices.
type sparseVector struct {
	indices []int
	values  []float64
}

// dot computes the inner product by merging the index lists.
func (v sparseVector) dot(o sparseVector) float64 {
	var sum float64
	i, j := 0, 0
	for i < len(v.indices) && j < len(o.indices) {
		switch {
		case v.indices[i] == o.indices[j]:
			sum += v.values[i] * o.values[j]
			i++
			j++
		case v.indices[i] < o.indices[j]:
			i++
		default:
			j++
		}
	}
	return sum
}

func (v sparseVector) norm() float64 {
	var sum float64
	for _, x := range v.values {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// finiteOr returns v, or def when v is NaN or infinite.
func finiteOr(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}

func defaultWorkers(n int) int {
	if n > 0 {
		return n
	}
	return runtime.NumCPU()
}

// ContextCancelled checks if the context has been canceled.
func ContextCancelled(ctx context.Context) bool {
	select {
	case <-ctx.Done():
		return true
	default:
		return false
	}
}
