package events

import (
	"context"
)

// CatalogUpdated fires after a fresher catalog snapshot was persisted.
type CatalogUpdated struct {
	Origin   string
	Token    uint64
	Listings int
}

type Publisher interface {
	PublishCatalogUpdated(ctx context.Context, evt CatalogUpdated)
	SubscribeCatalogUpdated() <-chan CatalogUpdated
}

type inMemory struct{ ch chan CatalogUpdated }

func NewInMemory(buffer int) Publisher {
	if buffer <= 0 {
		buffer = 256
	}
	return &inMemory{ch: make(chan CatalogUpdated, buffer)}
}

func (m *inMemory) PublishCatalogUpdated(_ context.Context, evt CatalogUpdated) {
	select {
	case m.ch <- evt:
	default:
	}
}

func (m *inMemory) SubscribeCatalogUpdated() <-chan CatalogUpdated { return m.ch }
