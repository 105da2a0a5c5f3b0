// Trackrec - Hybrid Track Recommendation and Ranking Evaluation
// Copyright 2026 LSPP60 contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/lspp60/trackrec

package dataset

import (
	"errors"
	"reflect"
	"testing"

	"github.com/lspp60/trackrec/internal/recommend"
)

func TestInteractionStore(t *testing.T) {
	t.Parallel()

	store := NewInteractionStore([]recommend.Interaction{
		{UserID: 2, ItemID: 30, Rating: 4},
		{UserID: 1, ItemID: 20, Rating: 3},
		{UserID: 1, ItemID: 10, Rating: 5},
		{UserID: 1, ItemID: 20, Rating: 1}, // repeated pair, last wins
	})

	if store.Len() != 3 {
		t.Errorf("Len() = %d, want 3", store.Len())
	}
	if got := store.Users(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("Users() = %v, want [1 2]", got)
	}
	if got := store.Items(); !reflect.DeepEqual(got, []int{10, 20, 30}) {
		t.Errorf("Items() = %v, want [10 20 30]", got)
	}

	want := []recommend.Rating{{ItemID: 10, Value: 5}, {ItemID: 20, Value: 1}}
	if got := store.RatedItems(1); !reflect.DeepEqual(got, want) {
		t.Errorf("RatedItems(1) = %v, want %v", got, want)
	}
	if got := store.RatedItems(99); got != nil {
		t.Errorf("RatedItems(99) = %v, want nil", got)
	}

	inters := store.UserInteractions(2)
	if len(inters) != 1 || inters[0].ItemID != 30 {
		t.Errorf("UserInteractions(2) = %v", inters)
	}
	if got := store.UserInteractions(3); len(got) != 0 {
		t.Errorf("UserInteractions(3) = %v, want empty", got)
	}

	all := store.Interactions()
	all[0].Rating = 0
	if store.RatedItems(1)[0].Value != 5 {
		t.Error("Interactions() shares storage with the store")
	}
}

func TestItemStore(t *testing.T) {
	t.Parallel()

	store := NewItemStore([]recommend.Item{
		{ID: 3, Title: "Gamma"},
		{ID: 1, Title: "Alpha"},
		{ID: 3, Title: "Gamma (Remastered)"},
	})

	if store.Len() != 2 {
		t.Errorf("Len() = %d, want 2", store.Len())
	}
	if got := store.AllItems(); !reflect.DeepEqual(got, []int{1, 3}) {
		t.Errorf("AllItems() = %v", got)
	}
	if item, ok := store.Item(3); !ok || item.Title != "Gamma (Remastered)" {
		t.Errorf("Item(3) = %v, %v", item, ok)
	}
	if store.HasItem(2) {
		t.Error("HasItem(2) = true")
	}
	if items := store.Items(); len(items) != 2 || items[0].ID != 1 {
		t.Errorf("Items() = %v", items)
	}
}

func TestDataset(t *testing.T) {
	t.Parallel()

	d := NewDataset(
		NewItemStore([]recommend.Item{{ID: 1}, {ID: 2}}),
		NewInteractionStore([]recommend.Interaction{{UserID: 5, ItemID: 1, Rating: 4}}),
	)

	if got := d.AllItems(); !reflect.DeepEqual(got, []int{1, 2}) {
		t.Errorf("AllItems() = %v", got)
	}
	if !d.HasItem(2) || d.HasItem(3) {
		t.Error("HasItem() wrong")
	}
	if got := d.RatedItems(5); len(got) != 1 || got[0].ItemID != 1 {
		t.Errorf("RatedItems(5) = %v", got)
	}
}

func TestValidateRatings(t *testing.T) {
	t.Parallel()

	scale := recommend.DefaultRatingScale()
	ok := []recommend.Interaction{{Rating: 1}, {Rating: 5}, {Rating: 3.5}}
	if err := ValidateRatings(ok, scale); err != nil {
		t.Errorf("ValidateRatings() error = %v", err)
	}

	bad := []recommend.Interaction{{Rating: 3}, {UserID: 4, ItemID: 9, Rating: 6}}
	if err := ValidateRatings(bad, scale); !errors.Is(err, ErrInvalidData) {
		t.Errorf("ValidateRatings() error = %v, want ErrInvalidData", err)
	}
}
