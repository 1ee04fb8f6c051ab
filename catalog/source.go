package catalog

import (
	"context"
	"log"
	"sync/atomic"
)

// Fetcher is the hosted backend boundary: it returns the raw published
// listings payload or fails.
type Fetcher interface {
	FetchPublishedListings(ctx context.Context) ([]byte, error)
}

// Replica is an optional local copy of the published catalog, consulted when
// the backend cannot answer.
type Replica interface {
	FetchPublished(ctx context.Context) ([]Listing, error)
}

// Snapshot is one resolved catalog read. Token orders snapshots across
// overlapping fetches.
type Snapshot struct {
	Listings []Listing
	Origin   string
	Dropped  int
	Token    uint64

	// Raw is the backend payload the snapshot decoded from; empty for
	// replica and seed origins. Kept for write-behind audit persistence.
	Raw []byte
}

const (
	OriginBackend = "backend"
	OriginReplica = "replica"
	OriginSeed    = "seed"
)

// Source resolves the catalog with availability over consistency: backend
// first, then the replica, finally the fixed seed set. Fetch never returns
// an empty-handed error; failures are logged and absorbed.
type Source struct {
	Client  Fetcher
	Replica Replica

	tokens    atomic.Uint64
	committed atomic.Uint64
}

// Fetch resolves one snapshot. The returned token is claimed before any I/O
// starts, so overlapping fetches can be ordered by Commit.
func (s *Source) Fetch(ctx context.Context) Snapshot {
	snap := Snapshot{Token: s.tokens.Add(1)}

	if s.Client != nil {
		raw, err := s.Client.FetchPublishedListings(ctx)
		if err == nil {
			listings, dropped, mapErr := MapPayload(raw)
			if mapErr == nil && len(listings) > 0 {
				if dropped > 0 {
					log.Printf("[WARN] catalog fetch dropped %d malformed record(s)", dropped)
				}
				snap.Listings, snap.Origin, snap.Dropped = listings, OriginBackend, dropped
				snap.Raw = raw
				return snap
			}
			if mapErr != nil {
				log.Printf("[WARN] catalog payload decode failed: %v", mapErr)
			} else {
				log.Printf("[INFO] backend returned no published listings")
			}
		} else {
			log.Printf("[WARN] catalog fetch failed: %v", err)
		}
	}

	if s.Replica != nil {
		listings, err := s.Replica.FetchPublished(ctx)
		if err != nil {
			log.Printf("[WARN] replica lookup failed: %v", err)
		} else if len(listings) > 0 {
			log.Printf("[INFO] serving catalog from replica (%d listings)", len(listings))
			snap.Listings, snap.Origin = listings, OriginReplica
			return snap
		}
	}

	snap.Listings, snap.Origin = Seed(), OriginSeed
	return snap
}

// Commit records token as published. It reports false when a fresher
// snapshot was already committed, in which case the caller must discard
// this one instead of overwriting newer state.
func (s *Source) Commit(token uint64) bool {
	for {
		latest := s.committed.Load()
		if token <= latest {
			return false
		}
		if s.committed.CompareAndSwap(latest, token) {
			return true
		}
	}
}
