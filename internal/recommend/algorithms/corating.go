// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package algorithms

import (
	"context"
	"math"
	"sort"
	"sync"

	"github.com/lspp60/trackrec/internal/recommend"
)

// CoRatingConfig contains configuration for co-rating similarity.
type CoRatingConfig struct {
	// Shrinkage adds a penalty for pairs with few co-ratings.
	// Regularizes similarity: sim = raw_sim * n / (n + shrinkage)
	// Default: 10.
	Shrinkage float64

	// MinCommonUsers is the minimum number of users who rated both items
	// for a similarity to be kept.
	// Default: 2.
	MinCommonUsers int

	// NumWorkers is the number of parallel workers. 0 uses runtime.NumCPU().
	NumWorkers int
}

// DefaultCoRatingConfig returns default co-rating configuration.
func DefaultCoRatingConfig() CoRatingConfig {
	return CoRatingConfig{
		Shrinkage:      10,
		MinCommonUsers: 2,
	}
}

// CoRatingSimilarity is item-item cosine similarity over user rating vectors.
//
// For items i and j rated by user sets U(i) and U(j):
//
//	sim(i, j) = sum_{u in U(i) ∩ U(j)} r_ui * r_uj / (||r_i|| * ||r_j||)
//
// shrunk by n / (n + shrinkage) where n = |U(i) ∩ U(j)|.
type CoRatingSimilarity struct {
	config CoRatingConfig

	// rows[k] holds similarities of itemIDs[k] to items with a greater id.
	itemIDs []int
	index   map[int]int
	rows    []map[int]float64
}

// NewCoRatingSimilarity computes all co-rated item pairs.
// A later rating of the same (user, item) pair replaces an earlier one.
//
//nolint:gocritic // rangeValCopy: Interaction passed by value in range, acceptable for clarity
func NewCoRatingSimilarity(ctx context.Context, interactions []recommend.Interaction, cfg CoRatingConfig) (*CoRatingSimilarity, error) {
	if cfg.Shrinkage < 0 {
		cfg.Shrinkage = 0
	}
	if cfg.MinCommonUsers <= 0 {
		cfg.MinCommonUsers = 1
	}
	workers := defaultWorkers(cfg.NumWorkers)

	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}

	// Build item vectors (userID -> rating) and the user-item index
	itemVectors := make(map[int]map[int]float64)
	for _, inter := range interactions {
		if itemVectors[inter.ItemID] == nil {
			itemVectors[inter.ItemID] = make(map[int]float64)
		}
		itemVectors[inter.ItemID][inter.UserID] = inter.Rating
	}

	userItems := make(map[int][]int)
	norms := make(map[int]float64, len(itemVectors))
	for itemID, userMap := range itemVectors {
		var sq float64
		for userID, r := range userMap {
			userItems[userID] = append(userItems[userID], itemID)
			sq += r * r
		}
		norms[itemID] = math.Sqrt(sq)
	}

	c := &CoRatingSimilarity{
		config:  cfg,
		itemIDs: make([]int, 0, len(itemVectors)),
		index:   make(map[int]int, len(itemVectors)),
	}
	for id := range itemVectors {
		c.itemIDs = append(c.itemIDs, id)
	}
	sort.Ints(c.itemIDs)
	for k, id := range c.itemIDs {
		c.index[id] = k
	}
	c.rows = make([]map[int]float64, len(c.itemIDs))

	var wg sync.WaitGroup
	chunkSize := (len(c.itemIDs) + workers - 1) / workers

	for w := 0; w < workers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > len(c.itemIDs) {
			end = len(c.itemIDs)
		}
		if start >= end {
			break
		}

		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()

			for k := start; k < end; k++ {
				if ContextCancelled(ctx) {
					return
				}
				c.rows[k] = c.computeRow(c.itemIDs[k], itemVectors, userItems, norms)
			}
		}(start, end)
	}

	wg.Wait()

	if ContextCancelled(ctx) {
		return nil, ctx.Err()
	}
	return c, nil
}

// computeRow computes similarities of itemID to every co-rated item with a greater id.
func (c *CoRatingSimilarity) computeRow(itemID int, itemVectors map[int]map[int]float64, userItems map[int][]int, norms map[int]float64) map[int]float64 {
	dots := make(map[int]float64)
	common := make(map[int]int)

	// Sorted users keep the float sums reproducible.
	users := make([]int, 0, len(itemVectors[itemID]))
	for userID := range itemVectors[itemID] {
		users = append(users, userID)
	}
	sort.Ints(users)

	for _, userID := range users {
		r := itemVectors[itemID][userID]
		for _, other := range userItems[userID] {
			if other <= itemID {
				continue
			}
			dots[other] += r * itemVectors[other][userID]
			common[other]++
		}
	}

	row := make(map[int]float64, len(dots))
	for other, dot := range dots {
		n := common[other]
		if n < c.config.MinCommonUsers {
			continue
		}
		den := norms[itemID] * norms[other]
		if den == 0 {
			continue
		}
		sim := dot / den
		if c.config.Shrinkage > 0 {
			sim = sim * float64(n) / (float64(n) + c.config.Shrinkage)
		}
		if sim > 0 {
			row[other] = math.Min(1, sim)
		}
	}
	return row
}

// Similarity returns the co-rating similarity of two items.
// An item rated by anyone is fully similar to itself; other pairs without
// enough co-ratings score 0.
func (c *CoRatingSimilarity) Similarity(a, b int) float64 {
	if a > b {
		a, b = b, a
	}
	k, ok := c.index[a]
	if !ok {
		return 0
	}
	if a == b {
		return 1
	}
	return c.rows[k][b]
}

// Len returns the number of items with at least one rating.
func (c *CoRatingSimilarity) Len() int {
	return len(c.itemIDs)
}

// Pairs returns the number of item pairs with a positive similarity.
func (c *CoRatingSimilarity) Pairs() int {
	var n int
	for _, row := range c.rows {
		n += len(row)
	}
	return n
}
