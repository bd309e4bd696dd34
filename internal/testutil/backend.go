package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/posadahq/backoffice/internal/backend"
	"github.com/posadahq/backoffice/internal/hotel"
)

// Fixtures holds the canned collections served by a stub backend.
type Fixtures struct {
	Reservations []hotel.Reservation
	Rooms        []hotel.Room
	Guests       []hotel.Guest
	Users        []hotel.User
}

// NewStubBackend starts an httptest server that answers the four list
// endpoints with the given fixtures and returns a client pointed at it.
// Unknown paths get a 404 with a JSON error body, matching the real
// backend's shape.
func NewStubBackend(t *testing.T, fixtures Fixtures) *backend.Client {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("GET /reservas", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, fixtures.Reservations)
	})
	mux.HandleFunc("GET /habitaciones", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, fixtures.Rooms)
	})
	mux.HandleFunc("GET /huespedes", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, fixtures.Guests)
	})
	mux.HandleFunc("GET /usuarios", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(t, w, fixtures.Users)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error": "not found"}`))
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return backend.New(server.URL, 5*time.Second)
}

// NewFailingBackend starts an httptest server where the named paths
// answer with the given status and every other path serves empty lists.
func NewFailingBackend(t *testing.T, status int, failPaths ...string) *backend.Client {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		for _, path := range failPaths {
			if strings.HasPrefix(r.URL.Path, path) {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(status)
				_, _ = w.Write([]byte(`{"error": "backend unavailable"}`))
				return
			}
		}
		writeJSON(t, w, []struct{}{})
	}))
	t.Cleanup(server.Close)

	return backend.New(server.URL, 5*time.Second)
}

func writeJSON(t *testing.T, w http.ResponseWriter, v any) {
	t.Helper()
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		t.Errorf("encode stub response: %v", err)
	}
}
