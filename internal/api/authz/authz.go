package authz

import (
	"context"
	"errors"

	"github.com/posadahq/backoffice/internal/hotel"
)

var (
	ErrUnauthenticated = errors.New("unauthenticated")
	ErrForbidden       = errors.New("forbidden")
)

// AuthUser is the session identity threaded through request contexts.
// It replaces the ambient "current user" global the console once kept:
// every handler that needs the identity receives it explicitly from
// the context its middleware populated.
type AuthUser struct {
	ID       int64
	Username string
	Name     string
	Role     string
}

// IsAdmin reports whether the session belongs to an administrator.
// The role marker comparison is case-sensitive.
func (u *AuthUser) IsAdmin() bool {
	return u != nil && u.Role == hotel.RoleAdmin
}

type userContextKey struct{}

func ContextWithUser(ctx context.Context, user *AuthUser) context.Context {
	return context.WithValue(ctx, userContextKey{}, user)
}

// UserFromContext retrieves the AuthUser stored in ctx.
// It returns nil if ctx is nil, if no user is stored, or if the stored value has a different type.
func UserFromContext(ctx context.Context) *AuthUser {
	if ctx == nil {
		return nil
	}

	user, ok := ctx.Value(userContextKey{}).(*AuthUser)
	if !ok {
		return nil
	}

	return user
}

// RequireUser returns ErrUnauthenticated when no session identity is
// present in ctx.
func RequireUser(ctx context.Context) error {
	if UserFromContext(ctx) == nil {
		return ErrUnauthenticated
	}
	return nil
}

// RequireAdmin gates administrator-only screens such as staff account
// management.
func RequireAdmin(ctx context.Context) error {
	user := UserFromContext(ctx)
	if user == nil {
		return ErrUnauthenticated
	}
	if !user.IsAdmin() {
		return ErrForbidden
	}
	return nil
}
