package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/williamcrk/carta-confia/catalog"
	httpapi "github.com/williamcrk/carta-confia/http"
	"github.com/williamcrk/carta-confia/internal/env"
	"github.com/williamcrk/carta-confia/internal/events"
	"github.com/williamcrk/carta-confia/internal/hydrator"
	"github.com/williamcrk/carta-confia/internal/redisx"
	"github.com/williamcrk/carta-confia/internal/refresh"
	"github.com/williamcrk/carta-confia/internal/store"
	"github.com/williamcrk/carta-confia/supabase"
)

func main() {
	port := env.GetInt("PORT", 4010)
	backendURL := env.Must("SUPABASE_URL")
	anonKey := env.Must("SUPABASE_ANON_KEY")
	sellerPhone := env.Get("SELLER_PHONE", "5511999999999")
	expertPhone := env.Get("EXPERT_PHONE", "5511988888888")

	client := supabase.NewClient(backendURL, anonKey)

	var st *store.Store
	if dsn := env.Get("PG_DSN", ""); dsn != "" {
		var err error
		st, err = store.Open(dsn)
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
	} else {
		log.Printf("[WARN] PG_DSN not set; running without the catalog replica")
	}

	var rdb *redisx.Client
	if addr := env.Get("REDIS_ADDR", ""); addr != "" {
		rdb = redisx.New(addr, env.Get("REDIS_PASSWORD", ""), env.GetInt("REDIS_DB", 0))
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		if err := rdb.Ping(ctx); err != nil {
			log.Printf("[WARN] redis unreachable, serving uncached: %v", err)
			rdb = nil
		}
		cancel()
	}

	pub := events.NewInMemory(256)
	hyd := &hydrator.Hydrator{Store: st, Pub: pub}
	go func() {
		for evt := range pub.SubscribeCatalogUpdated() {
			log.Printf("[INFO] catalog updated origin=%s token=%d listings=%d", evt.Origin, evt.Token, evt.Listings)
		}
	}()

	var replica catalog.Replica
	if st != nil {
		replica = st
	}
	src := &catalog.Source{Client: client, Replica: replica}

	catDeps := httpapi.CatalogDeps{
		Source:     src,
		Redis:      rdb,
		Hydrator:   hyd,
		CacheTTL:   time.Duration(env.GetInt("CATALOG_CACHE_TTL_SECONDS", 3600)) * time.Second,
		StaleAfter: time.Duration(env.GetInt("CATALOG_STALE_SECONDS", 300)) * time.Second,
	}
	catDeps.Refresher = refresh.New(256, 2, catDeps.Refresh)

	likeDeps := httpapi.LikeDeps{Backend: client, Redis: rdb}
	contactDeps := httpapi.ContactDeps{
		Catalog:     catDeps,
		Recorder:    client,
		Store:       st,
		SellerPhone: sellerPhone,
		ExpertPhone: expertPhone,
	}

	router := BuildRouter(catDeps, likeDeps, contactDeps)

	log.Printf("carta-confia listening on :%d", port)
	if err := http.ListenAndServe(fmt.Sprintf(":%d", port), router); err != nil {
		log.Fatal(err)
	}
}
