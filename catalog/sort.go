package catalog

import "sort"

// SortKey selects one of the four catalog orderings.
type SortKey string

const (
	SortRecent    SortKey = "recent"
	SortPriceAsc  SortKey = "price-asc"
	SortPriceDesc SortKey = "price-desc"
	SortViews     SortKey = "views"
)

// Sort orders a copy of listings by key. The sort is stable: equal keys keep
// their input order. Unknown keys order by recency, like the page default.
func Sort(listings []Listing, key SortKey) []Listing {
	out := append([]Listing(nil), listings...)
	var less func(a, b Listing) bool
	switch key {
	case SortPriceAsc:
		less = func(a, b Listing) bool { return a.CreditValue < b.CreditValue }
	case SortPriceDesc:
		less = func(a, b Listing) bool { return a.CreditValue > b.CreditValue }
	case SortViews:
		less = func(a, b Listing) bool { return a.ViewsCount > b.ViewsCount }
	default:
		less = func(a, b Listing) bool { return a.CreatedAt.After(b.CreatedAt) }
	}
	sort.SliceStable(out, func(i, j int) bool { return less(out[i], out[j]) })
	return out
}
