package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/williamcrk/carta-confia/catalog"
	"github.com/williamcrk/carta-confia/internal/store"
	"github.com/williamcrk/carta-confia/whatsapp"
)

// ContactRecorder is the hosted store's contact-event insert.
type ContactRecorder interface {
	RecordContactEvent(ctx context.Context, userID, listingID, contactType string) error
}

type ContactDeps struct {
	Catalog     CatalogDeps
	Recorder    ContactRecorder
	Store       *store.Store
	SellerPhone string
	ExpertPhone string
}

const (
	channelSeller = "seller"
	channelExpert = "expert"
)

type contactRequest struct {
	UserID  string `json:"user_id"`
	Channel string `json:"channel"`
}

// RegisterContact serves the WhatsApp contact dispatch. Event recording is
// best-effort telemetry: a failure is logged and the deep link still opens.
func RegisterContact(r chi.Router, d ContactDeps) {
	r.Post("/catalog/listings/{listingID}/contact", func(w http.ResponseWriter, req *http.Request) {
		listingID := chi.URLParam(req, "listingID")
		var body contactRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}
		if body.Channel == "" {
			body.Channel = channelSeller
		}
		if body.Channel != channelSeller && body.Channel != channelExpert {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_channel"})
			return
		}

		listing, ok := d.findListing(req.Context(), listingID)
		if !ok {
			render.Status(req, http.StatusNotFound)
			render.JSON(w, req, map[string]any{"error": "listing_not_found"})
			return
		}

		var link string
		switch body.Channel {
		case channelExpert:
			// only the expert flow is tracked; the seller button opens the
			// chat without telemetry, as the marketplace always has
			d.recordEvent(req.Context(), body.UserID, listingID)
			link = whatsapp.Link(d.ExpertPhone, whatsapp.ExpertMessage(listing.Administrator))
		default:
			link = whatsapp.Link(d.SellerPhone, whatsapp.SellerMessage(listing.Administrator, listing.CreditValue))
		}

		render.JSON(w, req, map[string]any{"ok": true, "channel": body.Channel, "link": link})
	})
}

func (d ContactDeps) findListing(ctx context.Context, id string) (catalog.Listing, bool) {
	snap, _ := d.Catalog.LoadSnapshot(ctx)
	for _, l := range snap.Listings {
		if l.ID == id {
			return l, true
		}
	}
	return catalog.Listing{}, false
}

func (d ContactDeps) recordEvent(ctx context.Context, userID, listingID string) {
	if userID == "" {
		return
	}
	if d.Recorder != nil {
		if err := d.Recorder.RecordContactEvent(ctx, userID, listingID, "whatsapp"); err != nil {
			log.Printf("[WARN] contact event insert failed listing=%s: %v", listingID, err)
		}
	}
	if d.Store != nil {
		if _, err := d.Store.InsertContactEvent(ctx, userID, listingID, "whatsapp"); err != nil {
			log.Printf("[WARN] local contact event insert failed listing=%s: %v", listingID, err)
		}
	}
}
