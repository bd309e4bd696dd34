// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/posadahq/backoffice/internal/api"
	"github.com/posadahq/backoffice/internal/api/auth"
	"github.com/posadahq/backoffice/internal/api/dashboard"
	"github.com/posadahq/backoffice/internal/api/guests"
	"github.com/posadahq/backoffice/internal/api/reservations"
	"github.com/posadahq/backoffice/internal/api/rooms"
	"github.com/posadahq/backoffice/internal/api/users"
	"github.com/posadahq/backoffice/internal/config"
)

func newServer(cfg *config.Config) *http.Server {
	router := http.NewServeMux()

	// Last listed wraps outermost. WithAuth sits innermost so the
	// request-scoped logger from WithRequestID is already on the
	// context when session resolution runs.
	handler := api.ChainMiddleware(
		router,
		api.WithAuth,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	registerRoutes(router)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// protected wraps a handler so unauthenticated requests bounce to the
// login page.
func protected(h http.HandlerFunc) http.Handler {
	return api.RequireLogin(h)
}

func registerRoutes(mux *http.ServeMux) {
	mux.Handle("GET /{$}", protected(func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}))

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Auth
	mux.HandleFunc("GET /login", auth.HandleLoginPage)
	mux.HandleFunc("POST /api/v1/auth/login", auth.HandleLogin)
	mux.HandleFunc("POST /api/v1/auth/logout", auth.HandleLogout)

	// Dashboard
	mux.Handle("GET /dashboard", protected(dashboard.HandlePage))
	mux.Handle("GET /api/v1/dashboard/metrics", protected(dashboard.HandleMetrics))
	mux.Handle("GET /api/v1/dashboard/summary", protected(dashboard.HandleSummary))

	// Reservations
	mux.Handle("GET /reservations", protected(reservations.HandlePage))
	mux.Handle("GET /reservations/new", protected(reservations.HandleNewForm))
	mux.Handle("GET /reservations/{id}/edit", protected(reservations.HandleEditForm))
	mux.Handle("GET /api/v1/reservations", protected(reservations.HandleList))
	mux.Handle("POST /api/v1/reservations", protected(reservations.HandleCreate))
	mux.Handle("PUT /api/v1/reservations/{id}", protected(reservations.HandleUpdate))
	mux.Handle("DELETE /api/v1/reservations/{id}", protected(reservations.HandleDelete))

	// Rooms
	mux.Handle("GET /rooms", protected(rooms.HandlePage))
	mux.Handle("GET /rooms/new", protected(rooms.HandleNewForm))
	mux.Handle("GET /rooms/{id}/edit", protected(rooms.HandleEditForm))
	mux.Handle("GET /api/v1/rooms", protected(rooms.HandleList))
	mux.Handle("POST /api/v1/rooms", protected(rooms.HandleCreate))
	mux.Handle("PUT /api/v1/rooms/{id}", protected(rooms.HandleUpdate))
	mux.Handle("DELETE /api/v1/rooms/{id}", protected(rooms.HandleDelete))

	// Guests
	mux.Handle("GET /guests", protected(guests.HandlePage))
	mux.Handle("GET /guests/new", protected(guests.HandleNewForm))
	mux.Handle("GET /guests/{id}/edit", protected(guests.HandleEditForm))
	mux.Handle("GET /api/v1/guests", protected(guests.HandleList))
	mux.Handle("POST /api/v1/guests", protected(guests.HandleCreate))
	mux.Handle("PUT /api/v1/guests/{id}", protected(guests.HandleUpdate))
	mux.Handle("DELETE /api/v1/guests/{id}", protected(guests.HandleDelete))

	// Staff accounts. Handlers also check the ADMIN role themselves.
	mux.Handle("GET /users", protected(users.HandlePage))
	mux.Handle("GET /users/new", protected(users.HandleNewForm))
	mux.Handle("GET /users/{id}/edit", protected(users.HandleEditForm))
	mux.Handle("GET /api/v1/users", protected(users.HandleList))
	mux.Handle("POST /api/v1/users", protected(users.HandleCreate))
	mux.Handle("PUT /api/v1/users/{id}", protected(users.HandleUpdate))
	mux.Handle("DELETE /api/v1/users/{id}", protected(users.HandleDelete))

	// Static assets
	staticDir := os.Getenv("STATIC_DIR")
	if staticDir == "" {
		staticDir = "build/bin/static"
	}
	fs := http.FileServer(http.Dir(staticDir))
	mux.Handle("/static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Debug().
			Str("path", r.URL.Path).
			Str("static_dir", staticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}
