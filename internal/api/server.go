package api

import (
	"net/http"
	"time"

	authapi "github.com/futig/wanderlust-backend/internal/api/auth"
	"github.com/futig/wanderlust-backend/internal/api/docs"
	historyapi "github.com/futig/wanderlust-backend/internal/api/history"
	"github.com/futig/wanderlust-backend/internal/api/middleware"
	questionnaireapi "github.com/futig/wanderlust-backend/internal/api/questionnaire"
	suggestionapi "github.com/futig/wanderlust-backend/internal/api/suggestion"
	"github.com/futig/wanderlust-backend/internal/config"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const requestTimeout = 60 * time.Second

// Handlers groups the HTTP handlers of the service
type Handlers struct {
	Questionnaire *questionnaireapi.Handler
	Suggestion    *suggestionapi.Handler
	Auth          *authapi.Handler
	History       *historyapi.Handler
}

// SetupRouter creates and configures the HTTP router
func SetupRouter(h Handlers, authenticator middleware.Authenticator, cfg config.HTTPConfig, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Middleware stack
	r.Use(chimiddleware.Recoverer)                 // Recover from panics
	r.Use(chimiddleware.RequestID)                 // Add request ID
	r.Use(middleware.Logger(logger))               // Log requests
	r.Use(middleware.Metrics)                      // Count requests
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins)) // Handle CORS
	r.Use(chimiddleware.Timeout(requestTimeout))   // Default timeout

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"status":"healthy"}`))
	})

	r.Handle("/metrics", promhttp.Handler())

	// Swagger documentation endpoints
	docs.RegisterRoutes(r)

	limiter := middleware.RateLimitByIP(cfg.RateLimitRequests, cfg.RateLimitWindow)

	r.Group(func(r chi.Router) {
		r.Use(middleware.OptionalAuth(authenticator))

		questionnaireapi.RegisterRoutes(r, h.Questionnaire, limiter)
		suggestionapi.RegisterRoutes(r, h.Suggestion, limiter)
		authapi.RegisterRoutes(r, h.Auth)
		historyapi.RegisterRoutes(r, h.History)
	})

	return r
}
