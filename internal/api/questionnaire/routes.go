package questionnaire

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes registers questionnaire routes. submitLimiter guards the model backed submit.
func RegisterRoutes(r chi.Router, h *Handler, submitLimiter func(http.Handler) http.Handler) {
	r.Route("/questionnaire", func(r chi.Router) {
		r.Get("/", h.GetQuestionnaire)
		r.Post("/sessions", h.StartSession)
		r.Route("/sessions/{id}", func(r chi.Router) {
			r.Get("/", h.GetSession)
			r.Put("/answer", h.Answer)
			r.Post("/next", h.Next)
			r.Post("/back", h.Back)
			r.Get("/summary", h.Summary)
			r.With(submitLimiter).Post("/submit", h.Submit)
			r.Post("/refine", h.Refine)
		})
	})
}
