package main

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"
	"github.com/go-chi/render"

	httpapi "github.com/williamcrk/carta-confia/http"
)

func BuildRouter(cat httpapi.CatalogDeps, like httpapi.LikeDeps, contact httpapi.ContactDeps) http.Handler {
	r := chi.NewRouter()
	r.Use(httprate.LimitByIP(100, 1*time.Minute)) // protect backend quota
	r.Use(render.SetContentType(render.ContentTypeJSON))
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) { w.Write([]byte(`{"ok":true}`)) })

	httpapi.RegisterCatalog(r, cat)
	httpapi.RegisterLike(r, like)
	httpapi.RegisterContact(r, contact)

	return r
}
