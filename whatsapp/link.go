// Package whatsapp builds the outbound contact deep links. This service only
// assembles the URI; opening it belongs to the host environment.
package whatsapp

import (
	"fmt"
	"net/url"

	"github.com/williamcrk/carta-confia/catalog"
)

// Link builds a wa.me deep link with a prefilled, URL-encoded message.
func Link(phone, message string) string {
	return fmt.Sprintf("https://wa.me/%s?text=%s", phone, url.QueryEscape(message))
}

// SellerMessage is the buyer-interest prefill sent to the seller line.
func SellerMessage(administrator string, creditValue float64) string {
	return fmt.Sprintf("Olá! Tenho interesse na carta de consórcio: %s - Valor: %s",
		administrator, catalog.FormatBRL(creditValue))
}

// ExpertMessage is the prefill sent to the partner expert line.
func ExpertMessage(administrator string) string {
	return fmt.Sprintf("Quero falar com um especialista sobre a carta: %s", administrator)
}
