package suggestion

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers the model backed routes behind limiter
func RegisterRoutes(r chi.Router, h *Handler, limiter func(http.Handler) http.Handler) {
	r.With(limiter).Post("/suggestions", h.Suggest)
	r.With(limiter).Post("/destinations/details", h.Details)
}
