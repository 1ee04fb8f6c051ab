package catalog

import (
	"fmt"
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Card is what a listing card renders. Formatting is display-only; the
// canonical record keeps the numeric source of truth.
type Card struct {
	ID             string `json:"id"`
	TypeBadge      string `json:"type_badge"`
	PaidBadge      string `json:"paid_badge"`
	CreditValue    string `json:"credit_value"`
	EntryValue     string `json:"entry_value"`
	Administrator  string `json:"administrator"`
	Description    string `json:"description"`
	IsVerified     bool   `json:"is_verified"`
	ViewsCount     int    `json:"views_count"`
	PaidPercentage string `json:"paid_percentage"`
	SellerName     string `json:"seller_name"`
	SellerAvatar   string `json:"seller_avatar,omitempty"`
}

const (
	badgeProperty = "Imóvel"
	badgeVehicle  = "Veículo"

	// Shown when a listing has no description or the seller profile is
	// incomplete, matching the marketplace page placeholders.
	placeholderDescription = "Sem descrição"
	placeholderSeller      = "Vendedor"
)

var ptBR = message.NewPrinter(language.BrazilianPortuguese)

// FormatBRL renders a credit amount the way the marketplace does: pt-BR
// digit grouping, zero fraction digits.
func FormatBRL(v float64) string {
	return ptBR.Sprintf("R$ %d", int64(math.Round(v)))
}

// Project maps one canonical record to its card. The record is passed by
// value and never written to.
func Project(l Listing) Card {
	badge := badgeProperty
	if l.ConsortiumType == TypeVehicle {
		badge = badgeVehicle
	}
	desc := l.Description
	if desc == "" {
		desc = placeholderDescription
	}
	seller := l.SellerName
	if seller == "" {
		seller = placeholderSeller
	}
	return Card{
		ID:             l.ID,
		TypeBadge:      badge,
		PaidBadge:      fmt.Sprintf("%s%% pago", trimFloat(l.PaidPercentage)),
		CreditValue:    FormatBRL(l.CreditValue),
		EntryValue:     FormatBRL(l.EntryValue),
		Administrator:  l.Administrator,
		Description:    desc,
		IsVerified:     l.IsVerified,
		ViewsCount:     l.ViewsCount,
		PaidPercentage: trimFloat(l.PaidPercentage),
		SellerName:     seller,
		SellerAvatar:   l.SellerAvatar,
	}
}

// ProjectAll projects a sorted result set in order.
func ProjectAll(listings []Listing) []Card {
	cards := make([]Card, 0, len(listings))
	for _, l := range listings {
		cards = append(cards, Project(l))
	}
	return cards
}

// trimFloat prints whole percentages without a decimal tail.
func trimFloat(v float64) string {
	if v == math.Trunc(v) {
		return fmt.Sprintf("%d", int64(v))
	}
	return fmt.Sprintf("%g", v)
}
