package catalog_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/williamcrk/carta-confia/catalog"
)

func TestSortOrderings(t *testing.T) {
	seed := catalog.Seed()
	tests := []struct {
		key     catalog.SortKey
		wantIDs []string
	}{
		{catalog.SortRecent, []string{"4", "6", "2", "1", "3", "5"}},
		{catalog.SortPriceAsc, []string{"6", "2", "4", "3", "1", "5"}},
		{catalog.SortPriceDesc, []string{"5", "1", "3", "4", "2", "6"}},
		{catalog.SortViews, []string{"5", "3", "1", "2", "6", "4"}},
		{catalog.SortKey("bogus"), []string{"4", "6", "2", "1", "3", "5"}}, // falls back to recent
	}
	for _, tt := range tests {
		got := ids(catalog.Sort(seed, tt.key))
		if !reflect.DeepEqual(got, tt.wantIDs) {
			t.Errorf("Sort(%s) = %v, want %v", tt.key, got, tt.wantIDs)
		}
	}
}

func TestSortIsPermutationAndNonDestructive(t *testing.T) {
	seed := catalog.Seed()
	before := ids(seed)
	sorted := catalog.Sort(seed, catalog.SortPriceAsc)
	if len(sorted) != len(seed) {
		t.Fatalf("output length %d, want %d", len(sorted), len(seed))
	}
	if !reflect.DeepEqual(ids(seed), before) {
		t.Error("Sort mutated its input")
	}
	seen := map[string]bool{}
	for _, l := range sorted {
		seen[l.ID] = true
	}
	if len(seen) != len(seed) {
		t.Errorf("output is not a permutation: %v", ids(sorted))
	}
}

func TestSortStabilityOnEqualKeys(t *testing.T) {
	listings := []catalog.Listing{
		{ID: "a", CreditValue: 100, ViewsCount: 5},
		{ID: "b", CreditValue: 100, ViewsCount: 5},
		{ID: "c", CreditValue: 100, ViewsCount: 5},
	}
	for _, key := range []catalog.SortKey{catalog.SortRecent, catalog.SortPriceAsc, catalog.SortPriceDesc, catalog.SortViews} {
		got := ids(catalog.Sort(listings, key))
		if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
			t.Errorf("Sort(%s) broke input order on equal keys: %v", key, got)
		}
	}
}

func TestSortRecentEpochDatesSortOldest(t *testing.T) {
	listings := []catalog.Listing{
		{ID: "epoch", CreatedAt: time.Unix(0, 0).UTC()},
		{ID: "new", CreatedAt: time.Date(2025, time.March, 1, 0, 0, 0, 0, time.UTC)},
	}
	got := ids(catalog.Sort(listings, catalog.SortRecent))
	if !reflect.DeepEqual(got, []string{"new", "epoch"}) {
		t.Errorf("Sort(recent) = %v, want [new epoch]", got)
	}
}
