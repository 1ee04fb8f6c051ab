package catalog

import (
	"encoding/json"
	"errors"
	"strconv"
	"time"
)

// ErrMissingID marks a raw record that defaults cannot repair.
var ErrMissingID = errors.New("listing record has no id")

// flexFloat accepts number or string JSON; null/empty resolve to unset.
type flexFloat struct {
	val float64
	set bool
}

func (f *flexFloat) UnmarshalJSON(b []byte) error {
	if string(b) == "null" || string(b) == `""` {
		*f = flexFloat{}
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			// an unreadable value defaults rather than poisoning the payload
			*f = flexFloat{}
			return nil
		}
		*f = flexFloat{val: v, set: true}
		return nil
	}
	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return err
	}
	*f = flexFloat{val: v, set: true}
	return nil
}

type rawSeller struct {
	FullName  string `json:"full_name"`
	AvatarURL string `json:"avatar_url"`
}

// RawListing carries one record as the backend may ship it: the canonical
// snake_case columns of the listings table, or the legacy camelCase mock
// dialect older snapshots still use. Normalize resolves canonical first,
// then legacy, then a zero default.
type RawListing struct {
	ID string `json:"id"`

	ConsortiumType string     `json:"consortium_type"`
	CreditValue    flexFloat  `json:"credit_value"`
	PaidPercentage flexFloat  `json:"paid_percentage"`
	EntryValue     flexFloat  `json:"entry_value"`
	IsVerified     *bool      `json:"is_partner_approved"`
	ViewsCount     flexFloat  `json:"views_count"`
	CreatedAt      string     `json:"created_at"`
	Seller         *rawSeller `json:"seller"`

	LegacyType           string    `json:"type"`
	LegacyCreditValue    flexFloat `json:"creditValue"`
	LegacyPaidPercentage flexFloat `json:"paidPercentage"`
	LegacyEntryValue     flexFloat `json:"entryValue"`
	LegacyIsVerified     *bool     `json:"isVerified"`
	LegacyViewsCount     flexFloat `json:"viewsCount"`
	LegacyCreatedAt      string    `json:"createdAt"`

	Administrator string `json:"administrator"`
	Description   string `json:"description"`
}

// Normalize maps a raw record into the canonical Listing. Missing optional
// fields fall back to type defaults; only a missing id is unrepairable.
func Normalize(r RawListing) (Listing, error) {
	if r.ID == "" {
		return Listing{}, ErrMissingID
	}

	typ, err := ParseConsortiumType(nonEmpty(r.ConsortiumType, r.LegacyType))
	if err != nil {
		typ = TypeProperty
	}

	out := Listing{
		ID:             r.ID,
		ConsortiumType: typ,
		CreditValue:    pickFloat(r.CreditValue, r.LegacyCreditValue),
		Administrator:  r.Administrator,
		PaidPercentage: pickFloat(r.PaidPercentage, r.LegacyPaidPercentage),
		EntryValue:     pickFloat(r.EntryValue, r.LegacyEntryValue),
		Description:    r.Description,
		IsVerified:     pickBool(r.IsVerified, r.LegacyIsVerified),
		ViewsCount:     int(pickFloat(r.ViewsCount, r.LegacyViewsCount)),
		CreatedAt:      parseCreatedAt(nonEmpty(r.CreatedAt, r.LegacyCreatedAt)),
	}
	if r.Seller != nil {
		out.SellerName = r.Seller.FullName
		out.SellerAvatar = r.Seller.AvatarURL
	}
	return out, nil
}

// MapPayload decodes a backend listings payload (a JSON array in either
// dialect, records may mix) into canonical records. Records that cannot be
// repaired are dropped; the count is returned for diagnostics.
func MapPayload(raw []byte) (listings []Listing, dropped int, err error) {
	var rows []RawListing
	if err := json.Unmarshal(raw, &rows); err != nil {
		return nil, 0, err
	}
	listings = make([]Listing, 0, len(rows))
	for _, row := range rows {
		l, err := Normalize(row)
		if err != nil {
			dropped++
			continue
		}
		listings = append(listings, l)
	}
	return listings, dropped, nil
}

func pickFloat(canonical, legacy flexFloat) float64 {
	if canonical.set {
		return canonical.val
	}
	if legacy.set {
		return legacy.val
	}
	return 0
}

func pickBool(canonical, legacy *bool) bool {
	if canonical != nil {
		return *canonical
	}
	if legacy != nil {
		return *legacy
	}
	return false
}

func nonEmpty(a, b string) string {
	if a != "" {
		return a
	}
	return b
}

// parseCreatedAt tolerates the two timestamp forms the backend emits;
// anything else sorts as epoch, the oldest possible record.
func parseCreatedAt(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UTC()
		}
	}
	return time.Unix(0, 0).UTC()
}
