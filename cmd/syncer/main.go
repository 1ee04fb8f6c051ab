// Syncer keeps the local catalog replica warm: it periodically pulls the
// published listings from the hosted backend and persists them through the
// hydrator, so the API can keep serving across backend outages.
package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"
	"time"

	"github.com/williamcrk/carta-confia/catalog"
	"github.com/williamcrk/carta-confia/internal/env"
	"github.com/williamcrk/carta-confia/internal/events"
	"github.com/williamcrk/carta-confia/internal/hydrator"
	"github.com/williamcrk/carta-confia/internal/store"
	"github.com/williamcrk/carta-confia/supabase"
)

func main() {
	backendURL := env.Must("SUPABASE_URL")
	anonKey := env.Must("SUPABASE_ANON_KEY")
	dsn := env.Must("PG_DSN")

	interval := time.Duration(env.GetInt("SYNC_INTERVAL_SECONDS", 900)) * time.Second
	runOnce := env.Get("SYNC_RUN_ONCE", "") == "true"

	client := supabase.NewClient(backendURL, anonKey)

	st, err := store.Open(dsn)
	if err != nil {
		log.Fatalf("store open error: %v", err)
	}
	defer st.DB.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := st.Ping(ctx); err != nil {
		cancel()
		log.Fatalf("postgres ping error: %v", err)
	}
	if err := st.Migrate(ctx); err != nil {
		cancel()
		log.Fatalf("postgres migrate error: %v", err)
	}
	cancel()

	pub := events.NewInMemory(256)
	hyd := &hydrator.Hydrator{Store: st, Pub: pub}
	go func() {
		for evt := range pub.SubscribeCatalogUpdated() {
			log.Printf("[INFO] replica updated token=%d listings=%d", evt.Token, evt.Listings)
		}
	}()

	// No replica wired here: the syncer must not re-ingest its own writes
	// when the backend is down.
	src := &catalog.Source{Client: client}

	root, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	syncOnce(root, src, hyd)
	if runOnce {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-root.Done():
			log.Printf("syncer shutting down")
			return
		case <-ticker.C:
			syncOnce(root, src, hyd)
		}
	}
}

func syncOnce(ctx context.Context, src *catalog.Source, hyd *hydrator.Hydrator) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	snap := src.Fetch(ctx)
	if snap.Origin != catalog.OriginBackend {
		log.Printf("[WARN] sync skipped, backend unavailable (origin=%s)", snap.Origin)
		return
	}
	if !src.Commit(snap.Token) {
		log.Printf("[INFO] sync discarded stale snapshot token=%d", snap.Token)
		return
	}
	if err := hyd.Write(ctx, snap.Raw, snap); err != nil {
		log.Printf("[WARN] replica write failed: %v", err)
		return
	}
	log.Printf("[INFO] synced %d published listing(s)", len(snap.Listings))
}
