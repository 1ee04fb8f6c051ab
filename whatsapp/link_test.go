package whatsapp_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/williamcrk/carta-confia/whatsapp"
)

func TestLinkEncodesMessage(t *testing.T) {
	link := whatsapp.Link("5511999999999", "Olá! Tenho interesse")
	if !strings.HasPrefix(link, "https://wa.me/5511999999999?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	if got := u.Query().Get("text"); got != "Olá! Tenho interesse" {
		t.Errorf("decoded text = %q", got)
	}
}

func TestSellerMessage(t *testing.T) {
	msg := whatsapp.SellerMessage("Bradesco Consórcios", 85000)
	want := "Olá! Tenho interesse na carta de consórcio: Bradesco Consórcios - Valor: R$ 85.000"
	if msg != want {
		t.Errorf("SellerMessage = %q, want %q", msg, want)
	}
}

func TestExpertMessage(t *testing.T) {
	msg := whatsapp.ExpertMessage("Porto Seguro")
	if msg != "Quero falar com um especialista sobre a carta: Porto Seguro" {
		t.Errorf("ExpertMessage = %q", msg)
	}
}
