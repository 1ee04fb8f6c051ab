package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/williamcrk/carta-confia/internal/redisx"
)

// LikeBackend is the hosted store's (user, listing) like mutation.
type LikeBackend interface {
	ToggleLike(ctx context.Context, userID, listingID string, liked bool) error
}

type LikeDeps struct {
	Backend LikeBackend
	Redis   *redisx.Client
}

type likeRequest struct {
	UserID string `json:"user_id"`
	Liked  bool   `json:"liked"` // current state; the toggle flips it
}

func RegisterLike(r chi.Router, d LikeDeps) {
	r.Post("/catalog/listings/{listingID}/like", func(w http.ResponseWriter, req *http.Request) {
		listingID := chi.URLParam(req, "listingID")
		var body likeRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}
		if body.UserID == "" || listingID == "" {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "user_id_required"})
			return
		}

		want := !body.Liked

		// Optimistic local flip before the backend answers. The revert on
		// failure keeps the served like state from diverging silently.
		d.setLocal(req.Context(), body.UserID, listingID, want)

		if err := d.Backend.ToggleLike(req.Context(), body.UserID, listingID, want); err != nil {
			d.setLocal(req.Context(), body.UserID, listingID, body.Liked)
			log.Printf("[WARN] like toggle failed user=%s listing=%s: %v", body.UserID, listingID, err)
			render.Status(req, http.StatusBadGateway)
			render.JSON(w, req, map[string]any{"error": "like_failed", "liked": body.Liked})
			return
		}

		render.JSON(w, req, map[string]any{"ok": true, "liked": want})
	})
}

func (d LikeDeps) setLocal(ctx context.Context, userID, listingID string, liked bool) {
	if d.Redis == nil {
		return
	}
	var err error
	if liked {
		err = d.Redis.AddLike(ctx, userID, listingID)
	} else {
		err = d.Redis.RemoveLike(ctx, userID, listingID)
	}
	if err != nil {
		log.Printf("[WARN] local like state update failed: %v", err)
	}
}
