package catalog

import "strings"

// TypeAll disables the type predicate.
const TypeAll = "all"

// Criteria is one catalog query. All predicates are ANDed. An empty search
// term matches everything; MinPrice > MaxPrice is a defined-empty range,
// not an error.
type Criteria struct {
	TypeFilter string  `json:"type,omitempty"`
	SearchTerm string  `json:"q,omitempty"`
	MinPrice   float64 `json:"min_price"`
	MaxPrice   float64 `json:"max_price"`
}

// DefaultCriteria mirrors the marketplace page defaults: every type, the
// full slider range, no search term.
func DefaultCriteria() Criteria {
	return Criteria{TypeFilter: TypeAll, MinPrice: 0, MaxPrice: 500000}
}

// Filter returns the records matching c, preserving input order. The input
// slice and its records are never modified.
func Filter(listings []Listing, c Criteria) []Listing {
	term := strings.ToLower(c.SearchTerm)
	out := make([]Listing, 0, len(listings))
	for _, l := range listings {
		if !matchesType(l, c.TypeFilter) {
			continue
		}
		if term != "" && !matchesSearch(l, term) {
			continue
		}
		if l.CreditValue < c.MinPrice || l.CreditValue > c.MaxPrice {
			continue
		}
		out = append(out, l)
	}
	return out
}

func matchesType(l Listing, typeFilter string) bool {
	return typeFilter == "" || typeFilter == TypeAll || string(l.ConsortiumType) == typeFilter
}

func matchesSearch(l Listing, lowerTerm string) bool {
	return strings.Contains(strings.ToLower(l.Administrator), lowerTerm) ||
		strings.Contains(strings.ToLower(l.Description), lowerTerm)
}
