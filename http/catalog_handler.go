package httpapi

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"github.com/williamcrk/carta-confia/catalog"
	"github.com/williamcrk/carta-confia/internal/hydrator"
	"github.com/williamcrk/carta-confia/internal/redisx"
	"github.com/williamcrk/carta-confia/internal/refresh"
)

type CatalogDeps struct {
	Source     *catalog.Source
	Redis      *redisx.Client
	Hydrator   *hydrator.Hydrator
	Refresher  *refresh.Refresher
	CacheTTL   time.Duration
	StaleAfter time.Duration
}

// CatalogCacheKey is the single SWR envelope the published catalog lives
// under. Per-criteria results are filtered from it in-process, so filter
// changes never fan out into upstream fetches.
const CatalogCacheKey = "catalog:published"

const lockKey = "catalog:lock"

type CatalogRequest struct {
	Type     string   `json:"type,omitempty"`
	Search   string   `json:"q,omitempty"`
	MinPrice *float64 `json:"min_price,omitempty"`
	MaxPrice *float64 `json:"max_price,omitempty"`
	SortBy   string   `json:"sort,omitempty"`
}

type cachedEnvelope struct {
	Listings []catalog.Listing `json:"listings"`
	Meta     struct {
		Token      uint64    `json:"token"`
		LastFetch  time.Time `json:"last_fetch_at"`
		StaleAfter time.Time `json:"stale_after"`
		Origin     string    `json:"origin"`
	} `json:"meta"`
}

func defFloat(v *float64, d float64) float64 {
	if v == nil {
		return d
	}
	return *v
}

func RegisterCatalog(r chi.Router, d CatalogDeps) {
	// POST JSON
	r.Post("/catalog/listings", func(w http.ResponseWriter, req *http.Request) {
		var body CatalogRequest
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_json", "detail": err.Error()})
			return
		}
		handleCatalogRequest(w, req, d, body)
	})

	// GET query twin
	r.Get("/catalog/listings", func(w http.ResponseWriter, req *http.Request) {
		q := req.URL.Query()
		var body CatalogRequest
		body.Type = q.Get("type")
		body.Search = q.Get("q")
		body.SortBy = q.Get("sort")
		if v := q.Get("min_price"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				body.MinPrice = &f
			}
		}
		if v := q.Get("max_price"); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				body.MaxPrice = &f
			}
		}
		handleCatalogRequest(w, req, d, body)
	})
}

func handleCatalogRequest(w http.ResponseWriter, req *http.Request, d CatalogDeps, body CatalogRequest) {
	defaults := catalog.DefaultCriteria()
	criteria := catalog.Criteria{
		TypeFilter: body.Type,
		SearchTerm: body.Search,
		MinPrice:   defFloat(body.MinPrice, defaults.MinPrice),
		MaxPrice:   defFloat(body.MaxPrice, defaults.MaxPrice),
	}
	if criteria.TypeFilter == "" {
		criteria.TypeFilter = catalog.TypeAll
	}
	if criteria.TypeFilter != catalog.TypeAll {
		if _, err := catalog.ParseConsortiumType(criteria.TypeFilter); err != nil {
			render.Status(req, http.StatusBadRequest)
			render.JSON(w, req, map[string]any{"error": "invalid_type", "detail": err.Error()})
			return
		}
	}
	sortBy := catalog.SortKey(body.SortBy)
	if sortBy == "" {
		sortBy = catalog.SortRecent
	}

	snap, stale := d.LoadSnapshot(req.Context())

	filtered := catalog.Filter(snap.Listings, criteria)
	cards := catalog.ProjectAll(catalog.Sort(filtered, sortBy))

	resp := map[string]any{
		"ok":       true,
		"count":    len(cards),
		"origin":   snap.Origin,
		"stale":    stale,
		"listings": cards,
	}
	if len(cards) == 0 {
		// the front end renders the "adjust filters" card with a reset action
		resp["empty_hint"] = "adjust_filters"
	}
	render.JSON(w, req, resp)
}

// LoadSnapshot serves the cached catalog when Redis holds one, enqueuing a
// background refresh once the envelope is past stale-after. Cache misses
// take a short lock so one fetch repopulates the envelope while concurrent
// misses fetch for their own response without writing.
func (d CatalogDeps) LoadSnapshot(ctx context.Context) (catalog.Snapshot, bool) {
	if d.Redis == nil {
		return d.Source.Fetch(ctx), false
	}

	if val, err := d.Redis.Get(ctx, CatalogCacheKey); err == nil && val != "" {
		var env cachedEnvelope
		if err := json.Unmarshal([]byte(val), &env); err == nil {
			stale := time.Now().After(env.Meta.StaleAfter)
			if stale && d.Refresher != nil {
				d.Refresher.Enqueue(refresh.Job{CacheKey: CatalogCacheKey})
			}
			return catalog.Snapshot{
				Listings: env.Listings,
				Origin:   env.Meta.Origin,
				Token:    env.Meta.Token,
			}, stale
		}
	}

	locked, _ := d.Redis.SetNX(ctx, lockKey, "1", 8*time.Second)
	snap := d.Source.Fetch(ctx)
	if locked {
		d.publish(ctx, snap)
	}
	return snap, false
}

// Refresh is the background worker body: fetch, commit, republish.
func (d CatalogDeps) Refresh(ctx context.Context, _ refresh.Job) {
	snap := d.Source.Fetch(ctx)
	d.publish(ctx, snap)
}

func (d CatalogDeps) publish(ctx context.Context, snap catalog.Snapshot) {
	if !d.Source.Commit(snap.Token) {
		log.Printf("[INFO] discarding stale catalog snapshot token=%d", snap.Token)
		return
	}
	if d.Redis != nil {
		var env cachedEnvelope
		env.Listings = snap.Listings
		env.Meta.Token = snap.Token
		env.Meta.LastFetch = time.Now()
		env.Meta.StaleAfter = env.Meta.LastFetch.Add(maxDur(d.StaleAfter, 5*time.Minute))
		env.Meta.Origin = snap.Origin
		if b, err := json.Marshal(env); err == nil {
			_ = d.Redis.Set(ctx, CatalogCacheKey, string(b), maxDur(d.CacheTTL, time.Hour))
		}
	}
	if d.Hydrator.Enabled() {
		if err := d.Hydrator.Write(ctx, snap.Raw, snap); err != nil {
			log.Printf("[WARN] replica write failed: %v", err)
		}
	}
}

func maxDur(v, min time.Duration) time.Duration {
	if v > min {
		return v
	}
	return min
}
