package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/futig/wanderlust-backend/internal/entity"
	"github.com/futig/wanderlust-backend/internal/pkg/logger"
	"github.com/futig/wanderlust-backend/internal/pkg/response"
	"go.uber.org/zap"
)

type userIDKey struct{}

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (string, error)
}

// UserID returns the authenticated user of the request, or empty string
func UserID(ctx context.Context) string {
	id, _ := ctx.Value(userIDKey{}).(string)
	return id
}

func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey{}, userID)
}

// OptionalAuth attaches the user of a bearer token when one is sent.
// An invalid token is rejected rather than ignored.
func OptionalAuth(auth Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r)
			if !ok {
				next.ServeHTTP(w, r)
				return
			}

			userID, err := auth.Authenticate(r.Context(), token)
			if err != nil {
				response.HandleError(r.Context(), w, err)
				return
			}

			ctx := logger.AddFields(WithUserID(r.Context(), userID), zap.String("user_id", userID))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireAuth rejects requests without an authenticated user
func RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if UserID(r.Context()) == "" {
			response.HandleError(r.Context(), w, entity.ErrUnauthorized)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", true
	}
	return strings.TrimSpace(token), true
}
