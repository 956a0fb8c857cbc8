package history

import (
	"github.com/futig/wanderlust-backend/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers history routes, all of them require a signed-in user
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/history", func(r chi.Router) {
		r.Use(middleware.RequireAuth)
		r.Get("/", h.List)
		r.Post("/", h.Save)
		r.Get("/{id}", h.Get)
		r.Delete("/{id}", h.Delete)
		r.Get("/{id}/export", h.Export)
	})
}
