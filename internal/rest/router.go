// internal/rest/router.go

// Package rest is the HTTP presentation layer over the catalog service. It
// owns no catalog state: every route is a thin call into the Service
// interface.
package rest

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"golang.org/x/time/rate"
)

// NewRouter assembles the chi router with the standard middleware chain.
func NewRouter(h *Handler, log *slog.Logger, limiter *rate.Limiter) http.Handler {
	r := chi.NewRouter()

	r.Use(requestID)
	r.Use(requestLogger(log))
	r.Use(traced())
	if limiter != nil {
		r.Use(rateLimit(limiter))
	}

	r.Route("/items", func(r chi.Router) {
		r.Post("/", h.addItem)
		r.Get("/", h.listItems)
		r.Get("/{id}", h.getItem)
		r.Put("/{id}", h.updateItem)
		r.Delete("/{id}", h.removeItem)
		r.Get("/{id}/holder", h.currentHolder)
	})

	r.Route("/holders", func(r chi.Router) {
		r.Post("/", h.registerHolder)
		r.Get("/", h.listHolders)
		r.Get("/{id}", h.getHolder)
		r.Put("/{id}", h.renameHolder)
		r.Delete("/{id}", h.deregisterHolder)
		r.Get("/{id}/items", h.holderLoans)
	})

	r.Route("/loans", func(r chi.Router) {
		r.Post("/", h.loanItem)
		r.Get("/", h.listLoans)
		r.Delete("/{itemID}", h.returnItem)
	})

	r.Get("/search", h.search)
	r.Get("/summary", h.summary)
	r.Get("/healthz", h.health)

	return r
}
