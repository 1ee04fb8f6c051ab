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

	"github.com/williamcrk/carta-confia/catalog"
	httpapi "github.com/williamcrk/carta-confia/http"
)

type fetcherFunc func(ctx context.Context) ([]byte, error)

func (f fetcherFunc) FetchPublishedListings(ctx context.Context) ([]byte, error) { return f(ctx) }

// seedDeps serves the fixed seed set: the backend always fails, no cache,
// no replica.
func seedDeps() httpapi.CatalogDeps {
	src := &catalog.Source{Client: fetcherFunc(func(context.Context) ([]byte, error) {
		return nil, errors.New("backend down")
	})}
	return httpapi.CatalogDeps{Source: src}
}

type catalogResponse struct {
	OK        bool           `json:"ok"`
	Count     int            `json:"count"`
	Origin    string         `json:"origin"`
	Stale     bool           `json:"stale"`
	EmptyHint string         `json:"empty_hint"`
	Listings  []catalog.Card `json:"listings"`
}

func getCatalog(t *testing.T, target string) (*httptest.ResponseRecorder, catalogResponse) {
	t.Helper()
	r := chi.NewRouter()
	httpapi.RegisterCatalog(r, seedDeps())
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))

	var body catalogResponse
	if rec.Code == http.StatusOK {
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("decode response: %v", err)
		}
	}
	return rec, body
}

func TestCatalogServesSeedOnBackendFailure(t *testing.T) {
	rec, body := getCatalog(t, "/catalog/listings")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !body.OK || body.Count != 6 || body.Origin != catalog.OriginSeed {
		t.Errorf("unexpected response: %+v", body)
	}
	if strings.Contains(rec.Body.String(), "backend down") {
		t.Error("raw backend error leaked into the response")
	}
}

func TestCatalogFilterSortQueryTwin(t *testing.T) {
	_, body := getCatalog(t, "/catalog/listings?type=vehicle&min_price=50000&max_price=100000&sort=price-asc")
	if body.Count != 2 {
		t.Fatalf("count = %d, want 2", body.Count)
	}
	if body.Listings[0].Administrator != "BB Consórcios" || body.Listings[0].CreditValue != "R$ 55.000" {
		t.Errorf("first card = %+v", body.Listings[0])
	}
	if body.Listings[1].Administrator != "Bradesco Consórcios" || body.Listings[1].CreditValue != "R$ 85.000" {
		t.Errorf("second card = %+v", body.Listings[1])
	}
}

func TestCatalogEmptyResultCarriesHint(t *testing.T) {
	_, body := getCatalog(t, "/catalog/listings?min_price=100&max_price=1")
	if body.Count != 0 {
		t.Fatalf("count = %d, want 0", body.Count)
	}
	if body.EmptyHint != "adjust_filters" {
		t.Errorf("empty_hint = %q, want adjust_filters", body.EmptyHint)
	}
}

func TestCatalogRejectsUnknownType(t *testing.T) {
	rec, _ := getCatalog(t, "/catalog/listings?type=boat")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestCatalogPostBody(t *testing.T) {
	r := chi.NewRouter()
	httpapi.RegisterCatalog(r, seedDeps())
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/catalog/listings",
		strings.NewReader(`{"type":"property","sort":"views"}`))
	r.ServeHTTP(rec, req)

	var body catalogResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if body.Count != 3 {
		t.Fatalf("count = %d, want 3 properties", body.Count)
	}
	if body.Listings[0].Administrator != "Caixa Consórcios" {
		t.Errorf("most viewed property = %s, want Caixa Consórcios", body.Listings[0].Administrator)
	}
}
