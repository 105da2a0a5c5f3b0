// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package recommend

import (
	"math"
	"sort"
	"strings"
	"time"
)

// Interaction is one rating of an item by a user.
type Interaction struct {
	// UserID is the user identifier.
	UserID int `json:"user_id"`

	// ItemID is the track identifier.
	ItemID int `json:"item_id"`

	// Rating is the explicit rating (or play count) on the configured scale.
	Rating float64 `json:"rating"`

	// Timestamp is when the rating was given. Zero when the dataset has no timestamps.
	Timestamp time.Time `json:"timestamp,omitempty"`
}

// Rating is an entry of a user's training history.
type Rating struct {
	ItemID int     `json:"item_id"`
	Value  float64 `json:"value"`
}

// Item is a track with the text features used for content similarity.
type Item struct {
	ID     int    `json:"id"`
	Title  string `json:"title"`
	Genre  string `json:"genre"`
	Artist string `json:"artist,omitempty"`
}

// Text returns the concatenated text features: title, genre and artist.
func (i Item) Text() string {
	parts := make([]string, 0, 3)
	for _, s := range []string{i.Title, i.Genre, i.Artist} {
		if s = strings.TrimSpace(s); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// Prediction is a precomputed rating estimate from an externally trained model.
type Prediction struct {
	UserID   int     `json:"user_id"`
	ItemID   int     `json:"item_id"`
	Estimate float64 `json:"estimate"`
}

// SimilarityEntry is a precomputed item-item similarity.
type SimilarityEntry struct {
	ItemA int     `json:"item_a"`
	ItemB int     `json:"item_b"`
	Score float64 `json:"score"`
}

// RatingScale bounds ratings. Scores are normalized by Max.
type RatingScale struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// DefaultRatingScale returns the 1-5 scale.
func DefaultRatingScale() RatingScale {
	return RatingScale{Min: 1, Max: 5}
}

// Validate checks the scale is non-empty with a positive maximum.
func (s RatingScale) Validate() error {
	if math.IsNaN(s.Min) || math.IsNaN(s.Max) || math.IsInf(s.Min, 0) || math.IsInf(s.Max, 0) {
		return invalidConfig("rating_scale", "bounds must be finite, got [%g, %g]", s.Min, s.Max)
	}
	if s.Min < 0 {
		return invalidConfig("rating_scale.min", "must be non-negative, got %g", s.Min)
	}
	if s.Max <= s.Min {
		return invalidConfig("rating_scale.max", "must be greater than min %g, got %g", s.Min, s.Max)
	}
	return nil
}

// Contains reports whether v lies on the scale.
func (s RatingScale) Contains(v float64) bool {
	return v >= s.Min && v <= s.Max
}

// Clamp limits v to the scale.
func (s RatingScale) Clamp(v float64) float64 {
	return math.Max(s.Min, math.Min(s.Max, v))
}

// Normalize maps a rating to [0,1] by dividing by Max and clamping.
func (s RatingScale) Normalize(v float64) float64 {
	return clamp01(v / s.Max)
}

func clamp01(v float64) float64 {
	switch {
	case math.IsNaN(v), v <= 0:
		return 0
	case v >= 1:
		return 1
	default:
		return v
	}
}

// CandidateScore is the score breakdown for one (user, item) pair.
// Components a scorer does not use are zero.
type CandidateScore struct {
	UserID  int     `json:"user_id"`
	ItemID  int     `json:"item_id"`
	CF      float64 `json:"cf_score"`
	Content float64 `json:"content_score"`
	Score   float64 `json:"score"`
}

// ScoredItem is an entry of a ranked list.
type ScoredItem struct {
	ItemID  int     `json:"item_id"`
	Score   float64 `json:"score"`
	CF      float64 `json:"cf_score,omitempty"`
	Content float64 `json:"content_score,omitempty"`
}

// Rank orders scores by descending score, ties by ascending item id,
// and returns at most limit entries. limit <= 0 returns all of them.
func Rank(scores []CandidateScore, limit int) []ScoredItem {
	sorted := make([]CandidateScore, len(scores))
	copy(sorted, scores)
	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Score != sorted[j].Score {
			return sorted[i].Score > sorted[j].Score
		}
		return sorted[i].ItemID < sorted[j].ItemID
	})

	if limit > 0 && len(sorted) > limit {
		sorted = sorted[:limit]
	}

	items := make([]ScoredItem, len(sorted))
	for i, cs := range sorted {
		items[i] = ScoredItem{ItemID: cs.ItemID, Score: cs.Score, CF: cs.CF, Content: cs.Content}
	}
	return items
}

// Result is a ranked recommendation list for one user.
type Result struct {
	// RequestID identifies the request in logs.
	RequestID string `json:"request_id"`

	UserID int     `json:"user_id"`
	Scorer string  `json:"scorer"`
	Alpha  float64 `json:"alpha"`

	// Items is the ranked list, at most top_n long.
	Items []ScoredItem `json:"items"`

	// Candidates is the number of items scored.
	Candidates int `json:"candidates"`

	// ColdStart is set when the user has no training history.
	ColdStart bool `json:"cold_start"`

	// CacheHit is set when the list was served from the result cache.
	CacheHit bool `json:"cache_hit"`

	LatencyMS int64 `json:"latency_ms"`
}

// ItemIDs returns the ranked item ids.
func (r *Result) ItemIDs() []int {
	ids := make([]int, len(r.Items))
	for i, it := range r.Items {
		ids[i] = it.ItemID
	}
	return ids
}

// clone returns a deep copy safe to hand to another caller.
func (r *Result) clone() *Result {
	c := *r
	c.Items = make([]ScoredItem, len(r.Items))
	copy(c.Items, r.Items)
	return &c
}
