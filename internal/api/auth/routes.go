package auth

import (
	"github.com/futig/wanderlust-backend/internal/api/middleware"
	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers auth routes
func RegisterRoutes(r chi.Router, h *Handler) {
	r.Route("/auth", func(r chi.Router) {
		r.Post("/sign-up", h.SignUp)
		r.Post("/sign-in", h.SignIn)
		r.With(middleware.RequireAuth).Get("/me", h.Me)
	})
}
