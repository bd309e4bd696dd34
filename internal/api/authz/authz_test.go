package authz

import (
	"context"
	"errors"
	"testing"
)

func TestUserFromContext(t *testing.T) {
	if UserFromContext(context.Background()) != nil {
		t.Fatal("empty context should yield no user")
	}
	if UserFromContext(nil) != nil {
		t.Fatal("nil context should yield no user")
	}

	user := &AuthUser{ID: 1, Username: "mgarcia", Role: "ADMIN"}
	ctx := ContextWithUser(context.Background(), user)
	got := UserFromContext(ctx)
	if got == nil || got.ID != 1 {
		t.Fatalf("got %+v", got)
	}
}

func TestRequireUser(t *testing.T) {
	if err := RequireUser(context.Background()); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}

	ctx := ContextWithUser(context.Background(), &AuthUser{ID: 1})
	if err := RequireUser(ctx); err != nil {
		t.Fatalf("err = %v", err)
	}
}

func TestRequireAdmin(t *testing.T) {
	if err := RequireAdmin(context.Background()); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}

	staff := ContextWithUser(context.Background(), &AuthUser{ID: 1, Role: "RECEPCIONISTA"})
	if err := RequireAdmin(staff); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden", err)
	}

	// Role comparison is case-sensitive.
	lower := ContextWithUser(context.Background(), &AuthUser{ID: 1, Role: "admin"})
	if err := RequireAdmin(lower); !errors.Is(err, ErrForbidden) {
		t.Fatalf("err = %v, want ErrForbidden for lower-case role", err)
	}

	admin := ContextWithUser(context.Background(), &AuthUser{ID: 1, Role: "ADMIN"})
	if err := RequireAdmin(admin); err != nil {
		t.Fatalf("err = %v", err)
	}
}

func TestIsAdminNilReceiver(t *testing.T) {
	var user *AuthUser
	if user.IsAdmin() {
		t.Fatal("nil user should not be admin")
	}
}
