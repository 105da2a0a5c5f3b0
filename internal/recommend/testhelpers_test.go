// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package recommend

import (
	"math"
	"sort"

	"github.com/rs/zerolog"
)

// Items of the worked example.
const (
	itemA = 1
	itemB = 2
	itemC = 3
	itemD = 4
	userU = 7
)

// mockDataProvider implements DataProvider for testing.
type mockDataProvider struct {
	items   []int
	history map[int][]Rating
}

func (m *mockDataProvider) AllItems() []int {
	out := make([]int, len(m.items))
	copy(out, m.items)
	sort.Ints(out)
	return out
}

func (m *mockDataProvider) HasItem(itemID int) bool {
	for _, id := range m.items {
		if id == itemID {
			return true
		}
	}
	return false
}

func (m *mockDataProvider) RatedItems(userID int) []Rating {
	return m.history[userID]
}

// pairSimilarity is a symmetric similarity table keyed by unordered pair.
type pairSimilarity map[[2]int]float64

func (p pairSimilarity) Similarity(a, b int) float64 {
	if a == b {
		return 1
	}
	if a > b {
		a, b = b, a
	}
	return p[[2]int{a, b}]
}

// tablePredictor returns fixed estimates, falling back to def.
type tablePredictor struct {
	estimates map[[2]int]float64
	def       float64
}

func (p tablePredictor) Predict(userID, itemID int) float64 {
	if v, ok := p.estimates[[2]int{userID, itemID}]; ok {
		return v
	}
	return p.def
}

// workedExample returns the providers of the two-rating example:
// U rated {A:5, B:3}, sim(C,A)=0.8, sim(C,B)=0.1, sim(D,A)=0.1, sim(D,B)=0.9,
// cf(U,C)=0.6, cf(U,D)=0.4.
func workedExample() (*mockDataProvider, pairSimilarity, tablePredictor) {
	data := &mockDataProvider{
		items: []int{itemA, itemB, itemC, itemD},
		history: map[int][]Rating{
			userU: {{ItemID: itemA, Value: 5}, {ItemID: itemB, Value: 3}},
		},
	}
	sim := pairSimilarity{
		{itemA, itemC}: 0.8,
		{itemB, itemC}: 0.1,
		{itemA, itemD}: 0.1,
		{itemB, itemD}: 0.9,
	}
	pred := tablePredictor{
		estimates: map[[2]int]float64{
			{userU, itemC}: 3, // 0.6 * 5
			{userU, itemD}: 2, // 0.4 * 5
		},
		def: 2.5,
	}
	return data, sim, pred
}

// newTestEngine builds an engine with all four scorers registered.
func newTestEngine(cfg *Config, data DataProvider, sim SimilarityProvider, pred Predictor) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	e, err := NewEngine(cfg, data, testLogger())
	if err != nil {
		return nil, err
	}
	content, err := NewContentScorer(sim, cfg.Scale)
	if err != nil {
		return nil, err
	}
	cf, err := NewCollaborativeScorer(pred, cfg.Scale)
	if err != nil {
		return nil, err
	}
	knn, err := NewKnnScorer(sim, cfg.Scale, 20)
	if err != nil {
		return nil, err
	}
	e.RegisterScorer(NewHybridScorer(content, cf))
	e.RegisterScorer(content)
	e.RegisterScorer(cf)
	e.RegisterScorer(knn)
	e.SetSimilarityProvider(sim)
	return e, nil
}

// testLogger returns a zerolog logger for testing.
func testLogger() zerolog.Logger {
	return zerolog.Nop()
}

func approxEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}
