package auth

import (
	"context"
	"net/http"

	"github.com/hsm-gustavo/jobboard/internal/api/response"
	"github.com/hsm-gustavo/jobboard/internal/apperr"
	"github.com/hsm-gustavo/jobboard/internal/db"
)

type contextKey string

const UserContextKey contextKey = "user"

// AuthMiddleware authenticates the request and injects the caller into its
// context. Requests that fail authentication never reach next.
func (h *AuthHandler) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, err := h.service.Authenticate(r)
		if err != nil {
			response.Error(w, r, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(WithUser(r.Context(), u)))
	})
}

// WithUser returns a copy of ctx carrying u.
func WithUser(ctx context.Context, u *db.User) context.Context {
	return context.WithValue(ctx, UserContextKey, u)
}

// UserFromContext returns the caller set by AuthMiddleware.
func UserFromContext(ctx context.Context) (*db.User, error) {
	u, ok := ctx.Value(UserContextKey).(*db.User)
	if !ok || u == nil {
		return nil, apperr.Unauthorized("Authentication required")
	}
	return u, nil
}
