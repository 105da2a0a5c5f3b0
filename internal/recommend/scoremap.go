// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package recommend

// ScoreMap accumulates scores per item id and iterates in insertion order,
// so results never depend on Go's randomized map iteration.
// It is not safe for concurrent use; each scoring call owns its own ScoreMap.
type ScoreMap struct {
	ids    []int
	values []float64
	index  map[int]int
}

// NewScoreMap creates an empty map sized for capacity entries.
func NewScoreMap(capacity int) *ScoreMap {
	if capacity < 0 {
		capacity = 0
	}
	return &ScoreMap{
		ids:    make([]int, 0, capacity),
		values: make([]float64, 0, capacity),
		index:  make(map[int]int, capacity),
	}
}

// Set stores score for id, appending id if it is new.
func (m *ScoreMap) Set(id int, score float64) {
	if i, ok := m.index[id]; ok {
		m.values[i] = score
		return
	}
	m.index[id] = len(m.ids)
	m.ids = append(m.ids, id)
	m.values = append(m.values, score)
}

// Add increments the score of id by delta, appending id at zero if it is new.
func (m *ScoreMap) Add(id int, delta float64) {
	if i, ok := m.index[id]; ok {
		m.values[i] += delta
		return
	}
	m.Set(id, delta)
}

// Get returns the score of id.
func (m *ScoreMap) Get(id int) (float64, bool) {
	if i, ok := m.index[id]; ok {
		return m.values[i], true
	}
	return 0, false
}

// Has reports whether id has a score.
func (m *ScoreMap) Has(id int) bool {
	_, ok := m.index[id]
	return ok
}

// Len returns the number of entries.
func (m *ScoreMap) Len() int {
	return len(m.ids)
}

// Keys returns the ids in insertion order.
func (m *ScoreMap) Keys() []int {
	keys := make([]int, len(m.ids))
	copy(keys, m.ids)
	return keys
}

// Range calls fn for each entry in insertion order until fn returns false.
func (m *ScoreMap) Range(fn func(id int, score float64) bool) {
	for i, id := range m.ids {
		if !fn(id, m.values[i]) {
			return
		}
	}
}

// Scale multiplies every score by factor.
func (m *ScoreMap) Scale(factor float64) {
	for i := range m.values {
		m.values[i] *= factor
	}
}

// Candidates converts the map into candidate scores for userID, in insertion order.
func (m *ScoreMap) Candidates(userID int) []CandidateScore {
	out := make([]CandidateScore, len(m.ids))
	for i, id := range m.ids {
		out[i] = CandidateScore{UserID: userID, ItemID: id, Score: m.values[i]}
	}
	return out
}
