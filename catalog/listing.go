package catalog

import (
	"fmt"
	"time"
)

// ConsortiumType is the asset category behind a credit certificate.
type ConsortiumType string

const (
	TypeProperty ConsortiumType = "property"
	TypeVehicle  ConsortiumType = "vehicle"
)

// ParseConsortiumType validates a raw type value.
func ParseConsortiumType(s string) (ConsortiumType, error) {
	switch ConsortiumType(s) {
	case TypeProperty, TypeVehicle:
		return ConsortiumType(s), nil
	}
	return "", fmt.Errorf("unknown consortium type %q", s)
}

// Listing is the canonical, dialect-independent record one certificate
// resolves to after normalization. It is read-only inside the pipeline.
type Listing struct {
	ID             string         `json:"id"`
	ConsortiumType ConsortiumType `json:"consortium_type"`
	CreditValue    float64        `json:"credit_value"`
	Administrator  string         `json:"administrator"`
	PaidPercentage float64        `json:"paid_percentage"`
	EntryValue     float64        `json:"entry_value"`
	Description    string         `json:"description,omitempty"`
	IsVerified     bool           `json:"is_verified"`
	ViewsCount     int            `json:"views_count"`
	CreatedAt      time.Time      `json:"created_at"`
	SellerName     string         `json:"seller_name,omitempty"`
	SellerAvatar   string         `json:"seller_avatar,omitempty"`
}
