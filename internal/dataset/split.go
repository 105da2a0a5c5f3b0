// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package dataset

import (
	"math"
	"math/rand"
	"sort"

	"github.com/lspp60/trackrec/internal/recommend"
)

// Split modes.
const (
	// SplitRandom holds out a seeded random sample of each user's positives.
	SplitRandom = "random"

	// SplitTemporal holds out each user's most recent positives.
	SplitTemporal = "temporal"
)

// SplitOptions configures Split.
type SplitOptions struct {
	// Threshold is the minimum rating of a positive (relevant) interaction.
	Threshold float64

	// TestFraction is the share of each user's positives held out, in (0,1).
	TestFraction float64

	// Mode is SplitRandom or SplitTemporal.
	Mode string

	// Seed makes SplitRandom reproducible.
	Seed int64
}

// DefaultSplitOptions returns threshold 4, a 20% holdout and seed 42.
func DefaultSplitOptions() SplitOptions {
	return SplitOptions{
		Threshold:    4,
		TestFraction: 0.2,
		Mode:         SplitRandom,
		Seed:         42,
	}
}

func (o SplitOptions) validate() error {
	if math.IsNaN(o.Threshold) || math.IsInf(o.Threshold, 0) {
		return &recommend.ConfigError{Field: "evaluate.threshold", Reason: "must be finite"}
	}
	if !(o.TestFraction > 0 && o.TestFraction < 1) {
		return &recommend.ConfigError{Field: "evaluate.test_fraction", Reason: "must be within (0, 1)"}
	}
	if o.Mode != SplitRandom && o.Mode != SplitTemporal {
		return &recommend.ConfigError{Field: "evaluate.split_mode", Reason: "must be random or temporal, got " + o.Mode}
	}
	return nil
}

// TrainTest is a per-user partition of the interactions.
type TrainTest struct {
	// Train holds every interaction not held out, negatives included.
	Train *InteractionStore

	// Test maps each user with a holdout to its held-out item ids, ascending.
	Test map[int][]int

	// Users is the number of users in the input.
	Users int

	// Positives is the number of interactions at or above the threshold.
	Positives int
}

// TestUsers returns the users with held-out items in ascending order.
func (t *TrainTest) TestUsers() []int {
	users := make([]int, 0, len(t.Test))
	for u := range t.Test {
		users = append(users, u)
	}
	sort.Ints(users)
	return users
}

// HeldOut returns the total number of held-out interactions.
func (t *TrainTest) HeldOut() int {
	var n int
	for _, items := range t.Test {
		n += len(items)
	}
	return n
}

// Split partitions each user's positive interactions. A user with n >= 2
// positives holds out max(1, floor(n * TestFraction)) of them, capped at
// n-1 so at least one positive stays in train; users with fewer positives
// hold out nothing. Negatives always stay in train.
//
// Invalid options return an error matching recommend.ErrInvalidConfiguration.
//
//nolint:gocritic // hugeParam: opts passed by value for immutability
func Split(store *InteractionStore, opts SplitOptions) (*TrainTest, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	users := store.Users()
	tt := &TrainTest{
		Test:  make(map[int][]int),
		Users: len(users),
	}
	train := make([]recommend.Interaction, 0, store.Len())

	for _, userID := range users {
		interactions := store.UserInteractions(userID)

		var positives []recommend.Interaction
		for _, inter := range interactions {
			if inter.Rating >= opts.Threshold {
				positives = append(positives, inter)
			} else {
				train = append(train, inter)
			}
		}
		tt.Positives += len(positives)

		held := holdout(userID, positives, opts)
		heldSet := make(map[int]struct{}, len(held))
		for _, id := range held {
			heldSet[id] = struct{}{}
		}
		for _, inter := range positives {
			if _, ok := heldSet[inter.ItemID]; !ok {
				train = append(train, inter)
			}
		}
		if len(held) > 0 {
			tt.Test[userID] = held
		}
	}

	tt.Train = NewInteractionStore(train)
	return tt, nil
}

// holdout picks the held-out item ids of one user, ascending.
//
//nolint:gocritic // hugeParam: opts passed by value for immutability
func holdout(userID int, positives []recommend.Interaction, opts SplitOptions) []int {
	n := len(positives)
	if n < 2 {
		return nil
	}
	h := int(math.Floor(float64(n) * opts.TestFraction))
	if h < 1 {
		h = 1
	}
	if h > n-1 {
		h = n - 1
	}

	// Canonical order first, so the shuffle does not depend on input order.
	sort.SliceStable(positives, func(i, j int) bool {
		if !positives[i].Timestamp.Equal(positives[j].Timestamp) {
			return positives[i].Timestamp.Before(positives[j].Timestamp)
		}
		return positives[i].ItemID < positives[j].ItemID
	})

	var picked []recommend.Interaction
	switch opts.Mode {
	case SplitTemporal:
		picked = positives[n-h:]
	default:
		rng := rand.New(rand.NewSource(opts.Seed ^ int64(userID))) //nolint:gosec // reproducible sampling, not security
		shuffled := make([]recommend.Interaction, n)
		copy(shuffled, positives)
		rng.Shuffle(n, func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		picked = shuffled[:h]
	}

	ids := make([]int, len(picked))
	for i, inter := range picked {
		ids[i] = inter.ItemID
	}
	sort.Ints(ids)
	return ids
}
