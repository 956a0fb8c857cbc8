package middleware

import (
	"net/http"
	"time"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/pkg/response"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// CORS allows browser front-ends from the configured origins
func CORS(allowedOrigins []string) func(http.Handler) http.Handler {
	return cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"Content-Disposition", "X-Request-ID"},
		AllowCredentials: false,
		MaxAge:           300,
	})
}

// RateLimitByIP limits model backed endpoints per client IP
func RateLimitByIP(requests int, window time.Duration) func(http.Handler) http.Handler {
	return httprate.Limit(
		requests,
		window,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, r *http.Request) {
			response.JSON(w, http.StatusTooManyRequests, entity.ErrorResponse{
				Error:   http.StatusText(http.StatusTooManyRequests),
				Message: "rate limit exceeded, try again later",
			})
		}),
	)
}
