package auth

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/posadahq/backoffice/internal/api/authz"
)

const (
	sessionCookieName      = "posada_session"
	sessionTTL             = 8 * time.Hour
	sessionTokenBytes      = 32
	sessionCleanupInterval = 15 * time.Minute
)

type sessionRecord struct {
	User      authz.AuthUser
	ExpiresAt time.Time
}

var (
	sessionMu sync.RWMutex
	// In-memory sessions are intentionally ephemeral: the console holds
	// no persistent state, and a restart just sends everyone back
	// through the login gate.
	sessionStore       = make(map[string]sessionRecord)
	sessionCleanupOnce sync.Once
)

func isSecureCookie() bool {
	return appConfig == nil || appConfig.App.Environment != "development"
}

// CreateSession logs user in: a fresh token replaces any prior session
// for the same account and is handed to the browser as an HttpOnly
// cookie.
func CreateSession(w http.ResponseWriter, user authz.AuthUser) error {
	if w == nil {
		return errors.New("session requires response writer")
	}

	startSessionCleanup()
	clearExistingSessionsForUser(user.ID)

	token, err := newSessionToken()
	if err != nil {
		return err
	}

	expiresAt := time.Now().Add(sessionTTL)
	sessionMu.Lock()
	sessionStore[token] = sessionRecord{
		User:      user,
		ExpiresAt: expiresAt,
	}
	sessionMu.Unlock()

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  expiresAt,
		MaxAge:   int(sessionTTL.Seconds()),
	})

	return nil
}

// ClearSession logs the request's session out and expires the cookie.
func ClearSession(w http.ResponseWriter, r *http.Request) {
	if r != nil {
		cookie, err := r.Cookie(sessionCookieName)
		if err == nil {
			deleteSession(cookie.Value)
		}
	}

	if w == nil {
		return
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   isSecureCookie(),
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
	})
}

// UserFromRequest resolves the session cookie into the logged-in user.
// It returns (nil, nil) for anonymous requests and expired sessions.
func UserFromRequest(r *http.Request) (*authz.AuthUser, error) {
	if r == nil {
		return nil, nil
	}
	cookie, err := r.Cookie(sessionCookieName)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return nil, nil
		}
		return nil, err
	}

	sessionMu.RLock()
	record, ok := sessionStore[cookie.Value]
	sessionMu.RUnlock()
	if !ok {
		return nil, nil
	}
	if time.Now().After(record.ExpiresAt) {
		deleteSession(cookie.Value)
		return nil, nil
	}

	user := record.User
	return &user, nil
}

func newSessionToken() (string, error) {
	buf := make([]byte, sessionTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func deleteSession(token string) {
	sessionMu.Lock()
	delete(sessionStore, token)
	sessionMu.Unlock()
}

func clearExistingSessionsForUser(userID int64) {
	sessionMu.Lock()
	for token, record := range sessionStore {
		if record.User.ID == userID {
			delete(sessionStore, token)
		}
	}
	sessionMu.Unlock()
}

func startSessionCleanup() {
	sessionCleanupOnce.Do(func() {
		go func() {
			ticker := time.NewTicker(sessionCleanupInterval)
			defer ticker.Stop()
			for range ticker.C {
				now := time.Now()
				sessionMu.Lock()
				for token, record := range sessionStore {
					if now.After(record.ExpiresAt) {
						delete(sessionStore, token)
					}
				}
				sessionMu.Unlock()
			}
		}()
	})
}

// resetSessionsForTest empties the store between tests.
func resetSessionsForTest() {
	sessionMu.Lock()
	sessionStore = make(map[string]sessionRecord)
	sessionMu.Unlock()
}
