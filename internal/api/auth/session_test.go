package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/posadahq/backoffice/internal/api/authz"
)

func sessionCookieFromRecorder(t *testing.T, rec *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == sessionCookieName {
			return cookie
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestCreateSessionRoundTrip(t *testing.T) {
	resetSessionsForTest()

	rec := httptest.NewRecorder()
	user := authz.AuthUser{ID: 7, Username: "mgarcia", Name: "Maria Garcia", Role: "ADMIN"}
	if err := CreateSession(rec, user); err != nil {
		t.Fatalf("create session: %v", err)
	}

	cookie := sessionCookieFromRecorder(t, rec)
	if !cookie.HttpOnly {
		t.Error("session cookie must be HttpOnly")
	}

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(cookie)

	got, err := UserFromRequest(r)
	if err != nil {
		t.Fatalf("resolve session: %v", err)
	}
	if got == nil || got.ID != 7 || got.Username != "mgarcia" || got.Role != "ADMIN" {
		t.Fatalf("resolved user = %+v", got)
	}
}

func TestUserFromRequestAnonymous(t *testing.T) {
	resetSessionsForTest()

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	user, err := UserFromRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Fatalf("anonymous request resolved to %+v", user)
	}
}

func TestUserFromRequestUnknownToken(t *testing.T) {
	resetSessionsForTest()

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "forged-token"})

	user, err := UserFromRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Fatalf("forged token resolved to %+v", user)
	}
}

func TestUserFromRequestExpired(t *testing.T) {
	resetSessionsForTest()

	token, err := newSessionToken()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	sessionMu.Lock()
	sessionStore[token] = sessionRecord{
		User:      authz.AuthUser{ID: 1},
		ExpiresAt: time.Now().Add(-time.Minute),
	}
	sessionMu.Unlock()

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: token})

	user, err := UserFromRequest(r)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if user != nil {
		t.Fatal("expired session should resolve to nil")
	}

	sessionMu.RLock()
	_, still := sessionStore[token]
	sessionMu.RUnlock()
	if still {
		t.Fatal("expired session should be removed from the store")
	}
}

func TestCreateSessionReplacesPrior(t *testing.T) {
	resetSessionsForTest()

	first := httptest.NewRecorder()
	if err := CreateSession(first, authz.AuthUser{ID: 3}); err != nil {
		t.Fatalf("first session: %v", err)
	}
	firstCookie := sessionCookieFromRecorder(t, first)

	second := httptest.NewRecorder()
	if err := CreateSession(second, authz.AuthUser{ID: 3}); err != nil {
		t.Fatalf("second session: %v", err)
	}

	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(firstCookie)
	user, err := UserFromRequest(r)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user != nil {
		t.Fatal("first session should be invalidated by the second login")
	}
}

func TestClearSession(t *testing.T) {
	resetSessionsForTest()

	rec := httptest.NewRecorder()
	if err := CreateSession(rec, authz.AuthUser{ID: 2}); err != nil {
		t.Fatalf("create: %v", err)
	}
	cookie := sessionCookieFromRecorder(t, rec)

	r := httptest.NewRequest(http.MethodPost, "/api/v1/auth/logout", nil)
	r.AddCookie(cookie)

	clearRec := httptest.NewRecorder()
	ClearSession(clearRec, r)

	cleared := sessionCookieFromRecorder(t, clearRec)
	if cleared.MaxAge != -1 {
		t.Errorf("cleared cookie MaxAge = %d, want -1", cleared.MaxAge)
	}

	check := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	check.AddCookie(cookie)
	user, err := UserFromRequest(check)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if user != nil {
		t.Fatal("session should be gone after logout")
	}
}
