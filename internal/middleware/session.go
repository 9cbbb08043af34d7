package middleware

import (
	"context"
	"net/http"

	"github.com/rs/zerolog/log"
	"github.com/smartclin/clinic-api/internal/auth"
	"github.com/smartclin/clinic-api/internal/models"
)

type contextKey string

const userKey contextKey = "user"

// Session resolves the caller's session and attaches the user to the request
// context. It never rejects: procedures declare their own access tier and the
// gate enforces it, so anonymous requests pass through with no user attached.
func Session(resolver *auth.Resolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, err := resolver.Resolve(r)
			if err != nil {
				log.Error().Err(err).Msg("Session resolution failed")
				http.Error(w, "Internal Server Error", http.StatusInternalServerError)
				return
			}

			if user != nil {
				ctx := context.WithValue(r.Context(), userKey, user)
				r = r.WithContext(ctx)
			}
			next.ServeHTTP(w, r)
		})
	}
}

// UserFrom extracts the authenticated user from context, if any
func UserFrom(ctx context.Context) (*models.User, bool) {
	user, ok := ctx.Value(userKey).(*models.User)
	return user, ok
}

// WithUser returns a context carrying the given user. Used by tests and by
// transports other than the HTTP middleware.
func WithUser(ctx context.Context, user *models.User) context.Context {
	return context.WithValue(ctx, userKey, user)
}
