// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

// Package recommend implements the hybrid track recommendation engine.
//
// # Scoring
//
// A candidate item i is scored for user u by blending two signals:
//
//	hybrid(i|u) = alpha * cf(i|u) + (1 - alpha) * content(i|u)
//
// where cf is the collaborative predictor's estimate divided by the maximum
// rating and clamped to [0,1], and content is the similarity of i to the
// user's rated history weighted by normalized rating:
//
//	content(i|u) = sum_{j in R(u)} sim(i, j) * (r_j / max_rating) / |R(u)|
//
// Four scorers are available:
//
//   - hybrid: the blend above
//   - content: content only (alpha = 0 behavior, without consulting the predictor)
//   - collaborative: cf only
//   - knn: average of sim*rating over the k most similar rated items
//
// # Ranking
//
// Items the user rated in the training data are never returned. Scores are
// sorted descending with ties broken by ascending item id, so output is fully
// deterministic.
//
// # Cold Start
//
// A user without training history gets content 0 for every candidate and the
// predictor's cold estimate for cf. This is flagged on the Result, not
// returned as an error.
//
// # Errors
//
//   - ErrInvalidConfiguration: alpha outside [0,1], non-positive top_n,
//     bad rating scale, unknown scorer (wrapped in *ConfigError)
//   - ErrNotFound: single-item lookups (Score, Similar) for unknown items
//
// # Usage
//
//	engine, err := recommend.NewEngine(recommend.DefaultConfig(), data, logger)
//	if err != nil {
//		return err
//	}
//	engine.RegisterScorer(hybrid)
//	result, err := engine.Recommend(ctx, engine.NewRequest(userID))
//
// # Thread Safety
//
// Engine and all scorers are safe for concurrent use. Providers are read-only
// after construction.
package recommend
