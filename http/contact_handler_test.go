package httpapi_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	httpapi "github.com/williamcrk/carta-confia/http"
)

type recorderStub struct {
	err         error
	calls       int
	contactType string
	listingID   string
}

func (s *recorderStub) RecordContactEvent(_ context.Context, _, listingID, contactType string) error {
	s.calls++
	s.listingID = listingID
	s.contactType = contactType
	return s.err
}

func postContact(t *testing.T, rec *recorderStub, target, body string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	r := chi.NewRouter()
	httpapi.RegisterContact(r, httpapi.ContactDeps{
		Catalog:     seedDeps(),
		Recorder:    rec,
		SellerPhone: "5511999999999",
		ExpertPhone: "5511988888888",
	})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, target, strings.NewReader(body)))

	var resp map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return w, resp
}

func TestContactSellerBuildsDeepLink(t *testing.T) {
	stub := &recorderStub{}
	w, resp := postContact(t, stub, "/catalog/listings/2/contact", `{"user_id":"u1","channel":"seller"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", w.Code)
	}
	link, _ := resp["link"].(string)
	if !strings.HasPrefix(link, "https://wa.me/5511999999999?text=") {
		t.Errorf("link = %q", link)
	}
	if !strings.Contains(link, "Bradesco+Cons%C3%B3rcios") {
		t.Errorf("message not prefilled with the administrator: %q", link)
	}
	if stub.calls != 0 {
		t.Error("seller contact must not record a contact event")
	}
}

func TestContactExpertRecordsEvent(t *testing.T) {
	stub := &recorderStub{}
	_, resp := postContact(t, stub, "/catalog/listings/2/contact", `{"user_id":"u1","channel":"expert"}`)

	link, _ := resp["link"].(string)
	if !strings.HasPrefix(link, "https://wa.me/5511988888888?text=") {
		t.Errorf("expert link = %q", link)
	}
	if stub.calls != 1 || stub.contactType != "whatsapp" || stub.listingID != "2" {
		t.Errorf("recorder saw %+v", stub)
	}
}

func TestContactEventFailureDoesNotBlockLink(t *testing.T) {
	stub := &recorderStub{err: errors.New("insert failed")}
	w, resp := postContact(t, stub, "/catalog/listings/2/contact", `{"user_id":"u1","channel":"expert"}`)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 despite telemetry failure", w.Code)
	}
	if resp["ok"] != true || resp["link"] == "" {
		t.Errorf("response = %+v", resp)
	}
}

func TestContactUnknownListing(t *testing.T) {
	w, _ := postContact(t, &recorderStub{}, "/catalog/listings/999/contact", `{"user_id":"u1"}`)
	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestContactRejectsUnknownChannel(t *testing.T) {
	w, _ := postContact(t, &recorderStub{}, "/catalog/listings/2/contact", `{"user_id":"u1","channel":"carrier-pigeon"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", w.Code)
	}
}
