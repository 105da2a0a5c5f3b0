// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package dataset

import (
	"fmt"
	"sort"

	"github.com/lspp60/trackrec/internal/recommend"
)

type userItem struct {
	user, item int
}

// InteractionStore is an immutable table of (user, item, rating) triples.
// A user rates an item at most once: a repeated pair keeps its last occurrence.
type InteractionStore struct {
	interactions []recommend.Interaction
	byUser       map[int][]recommend.Rating
	users        []int
	items        []int
}

// NewInteractionStore builds a store, ordering interactions by (user, item).
//
//nolint:gocritic // rangeValCopy: Interaction passed by value in range, acceptable for clarity
func NewInteractionStore(interactions []recommend.Interaction) *InteractionStore {
	last := make(map[userItem]int, len(interactions))
	for i, inter := range interactions {
		last[userItem{user: inter.UserID, item: inter.ItemID}] = i
	}

	deduped := make([]recommend.Interaction, 0, len(last))
	for i, inter := range interactions {
		if last[userItem{user: inter.UserID, item: inter.ItemID}] == i {
			deduped = append(deduped, inter)
		}
	}
	sort.Slice(deduped, func(i, j int) bool {
		if deduped[i].UserID != deduped[j].UserID {
			return deduped[i].UserID < deduped[j].UserID
		}
		return deduped[i].ItemID < deduped[j].ItemID
	})

	s := &InteractionStore{
		interactions: deduped,
		byUser:       make(map[int][]recommend.Rating),
	}
	itemSet := make(map[int]struct{})
	for _, inter := range deduped {
		if _, ok := s.byUser[inter.UserID]; !ok {
			s.users = append(s.users, inter.UserID)
		}
		s.byUser[inter.UserID] = append(s.byUser[inter.UserID], recommend.Rating{ItemID: inter.ItemID, Value: inter.Rating})
		itemSet[inter.ItemID] = struct{}{}
	}
	s.items = make([]int, 0, len(itemSet))
	for id := range itemSet {
		s.items = append(s.items, id)
	}
	sort.Ints(s.items)

	return s
}

// RatedItems returns the user's ratings ordered by item id, or nil for an
// unknown user. The slice is shared and must not be modified.
func (s *InteractionStore) RatedItems(userID int) []recommend.Rating {
	return s.byUser[userID]
}

// UserInteractions returns copies of the user's interactions ordered by item id.
func (s *InteractionStore) UserInteractions(userID int) []recommend.Interaction {
	start := sort.Search(len(s.interactions), func(i int) bool {
		return s.interactions[i].UserID >= userID
	})
	end := start
	for end < len(s.interactions) && s.interactions[end].UserID == userID {
		end++
	}
	out := make([]recommend.Interaction, end-start)
	copy(out, s.interactions[start:end])
	return out
}

// Users returns every user id in ascending order.
func (s *InteractionStore) Users() []int {
	out := make([]int, len(s.users))
	copy(out, s.users)
	return out
}

// Items returns every rated item id in ascending order.
func (s *InteractionStore) Items() []int {
	out := make([]int, len(s.items))
	copy(out, s.items)
	return out
}

// Interactions returns a copy of all interactions ordered by (user, item).
func (s *InteractionStore) Interactions() []recommend.Interaction {
	out := make([]recommend.Interaction, len(s.interactions))
	copy(out, s.interactions)
	return out
}

// Len returns the number of distinct (user, item) pairs.
func (s *InteractionStore) Len() int {
	return len(s.interactions)
}

// ValidateRatings reports the first rating outside scale.
//
//nolint:gocritic // rangeValCopy: Interaction passed by value in range, acceptable for clarity
func ValidateRatings(interactions []recommend.Interaction, scale recommend.RatingScale) error {
	for _, inter := range interactions {
		if !scale.Contains(inter.Rating) {
			return fmt.Errorf("user %d item %d: rating %g outside [%g, %g]: %w",
				inter.UserID, inter.ItemID, inter.Rating, scale.Min, scale.Max, ErrInvalidData)
		}
	}
	return nil
}

// ItemStore is an immutable table of track metadata.
// A repeated id keeps its last occurrence.
type ItemStore struct {
	items map[int]recommend.Item
	ids   []int
}

// NewItemStore builds a store from items.
//
//nolint:gocritic // rangeValCopy: Item passed by value in range, acceptable for clarity
func NewItemStore(items []recommend.Item) *ItemStore {
	s := &ItemStore{items: make(map[int]recommend.Item, len(items))}
	for _, item := range items {
		s.items[item.ID] = item
	}
	s.ids = make([]int, 0, len(s.items))
	for id := range s.items {
		s.ids = append(s.ids, id)
	}
	sort.Ints(s.ids)
	return s
}

// AllItems returns every item id in ascending order.
func (s *ItemStore) AllItems() []int {
	out := make([]int, len(s.ids))
	copy(out, s.ids)
	return out
}

// HasItem reports whether itemID is in the catalog.
func (s *ItemStore) HasItem(itemID int) bool {
	_, ok := s.items[itemID]
	return ok
}

// Item returns the metadata of itemID.
func (s *ItemStore) Item(itemID int) (recommend.Item, bool) {
	item, ok := s.items[itemID]
	return item, ok
}

// Items returns all items ordered by id.
func (s *ItemStore) Items() []recommend.Item {
	out := make([]recommend.Item, len(s.ids))
	for i, id := range s.ids {
		out[i] = s.items[id]
	}
	return out
}

// Len returns the number of items.
func (s *ItemStore) Len() int {
	return len(s.ids)
}

// Dataset is the engine's view of a run: the catalog and a training history.
type Dataset struct {
	Items *ItemStore
	Train *InteractionStore
}

// Ensure Dataset satisfies the engine's data contract.
var _ recommend.DataProvider = (*Dataset)(nil)

// NewDataset pairs a catalog with training interactions.
func NewDataset(items *ItemStore, train *InteractionStore) *Dataset {
	return &Dataset{Items: items, Train: train}
}

// AllItems returns the catalog ids in ascending order.
func (d *Dataset) AllItems() []int {
	return d.Items.AllItems()
}

// HasItem reports whether itemID is in the catalog.
func (d *Dataset) HasItem(itemID int) bool {
	return d.Items.HasItem(itemID)
}

// RatedItems returns the user's training ratings.
func (d *Dataset) RatedItems(userID int) []recommend.Rating {
	return d.Train.RatedItems(userID)
}
