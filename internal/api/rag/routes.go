package rag

import (
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers ingestion and query routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/api", func(r chi.Router) {
		r.Post("/process", h.Process)
		r.Post("/query", h.Query)
	})
}
