// Package hydrator persists freshly fetched catalog snapshots behind the
// read path, so the replica keeps answering when the backend cannot.
package hydrator

import (
	"context"

	"github.com/williamcrk/carta-confia/catalog"
	"github.com/williamcrk/carta-confia/internal/events"
	"github.com/williamcrk/carta-confia/internal/store"
)

type Hydrator struct {
	Store *store.Store
	Pub   events.Publisher
}

func (h *Hydrator) Enabled() bool { return h != nil && h.Store != nil }

// Write persists one committed snapshot. Only backend-origin snapshots are
// written; replaying the replica or the seed set into the replica would just
// churn rows.
func (h *Hydrator) Write(ctx context.Context, raw []byte, snap catalog.Snapshot) error {
	if !h.Enabled() || snap.Origin != catalog.OriginBackend {
		return nil
	}
	if err := h.Store.ReplaceCatalog(ctx, raw, snap.Listings); err != nil {
		return err
	}
	if h.Pub != nil {
		h.Pub.PublishCatalogUpdated(ctx, events.CatalogUpdated{
			Origin:   snap.Origin,
			Token:    snap.Token,
			Listings: len(snap.Listings),
		})
	}
	return nil
}
