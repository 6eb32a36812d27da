package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/fintrellis/assetbook/internal/domain"
)

func TestRequireUserRejectsAnonymous(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil)

	RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatalf("handler should not be called without a user")
	})).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected status 401, got %d", rr.Code)
	}
}

func TestRequireUserScopesContext(t *testing.T) {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/assets", nil)
	req.Header.Set(UserIDHeader, "user-42")
	req.Header.Set(UserEmailHeader, "owner@example.com")

	var got *domain.User
	RequireUser(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got, _ = domain.UserFromContext(r.Context())
	})).ServeHTTP(rr, req)

	if got == nil || got.ID != "user-42" || got.Email != "owner@example.com" {
		t.Fatalf("unexpected user on context: %+v", got)
	}
}
