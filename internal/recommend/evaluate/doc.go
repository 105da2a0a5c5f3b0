// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

// Package evaluate measures ranking quality of recommendation lists
// against held-out relevant items.
//
// # Metrics
//
// For a ranked list L, relevant set R and cutoff K:
//
//   - Precision@K = |L[:K] ∩ R| / K
//   - Recall@K = |L[:K] ∩ R| / |R|, undefined when R is empty
//   - MRR@K = 1 / rank of the first relevant item within L[:K], else 0
//   - HitRate@K = 1 if L[:K] ∩ R is non-empty, else 0
//   - NDCG@K = DCG@K / IDCG@K with binary relevance and a log2 discount,
//     undefined when R is empty
//
// The overall MRR uses the full list instead of a K prefix.
//
// Aggregates are arithmetic means over the users with a defined value;
// users are always visited in ascending id order so results are
// bit-reproducible.
//
// # Failures
//
// A user whose ranked list contains duplicate ids (ErrMalformedRanking),
// who has no ranked list (ErrMissingRanking) or whose scorer failed is
// skipped and counted by reason. Evaluation of the others continues.
package evaluate
