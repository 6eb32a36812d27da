package middleware

import (
	"net/http"

	"github.com/fintrellis/assetbook/internal/domain"
)

// User identity headers. Authentication happens at the gateway; the
// service trusts these headers for ownership scoping.
const (
	UserIDHeader    = "X-User-ID"
	UserEmailHeader = "X-User-Email"
)

// RequireUser rejects requests without a user identity and puts the
// acting user on the request context.
func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID := r.Header.Get(UserIDHeader)
		if userID == "" {
			http.Error(w, "missing user identity", http.StatusUnauthorized)
			return
		}

		user := &domain.User{
			ID:    userID,
			Email: r.Header.Get(UserEmailHeader),
		}

		next.ServeHTTP(w, r.WithContext(domain.WithUser(r.Context(), user)))
	})
}
