package domain

import (
	"context"
	"errors"
)

// User identifies the owner of a set of assets. Authentication itself is
// handled upstream; operations only need the caller's identity for
// ownership scoping.
type User struct {
	ID    string
	Email string
	Name  string
}

// Authorization errors
var (
	ErrUnauthorized = errors.New("unauthorized")
)

type userContextKey struct{}

// WithUser returns a context carrying the acting user.
func WithUser(ctx context.Context, user *User) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext extracts the acting user, if any.
func UserFromContext(ctx context.Context) (*User, bool) {
	user, ok := ctx.Value(userContextKey{}).(*User)
	return user, ok
}
