// cmd/server/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/posadahq/backoffice/internal/api/auth"
	"github.com/posadahq/backoffice/internal/api/dashboard"
	"github.com/posadahq/backoffice/internal/api/guests"
	"github.com/posadahq/backoffice/internal/api/reservations"
	"github.com/posadahq/backoffice/internal/api/rooms"
	"github.com/posadahq/backoffice/internal/api/users"
	"github.com/posadahq/backoffice/internal/backend"
	"github.com/posadahq/backoffice/internal/config"
	"github.com/posadahq/backoffice/internal/scheduler"
)

const shutdownTimeout = 30 * time.Second

func setupLogger(environment string) {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if environment == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}
}

func main() {
	configPath := flag.String("config", "config/config.yaml", "path to yaml configuration")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	setupLogger(cfg.App.Environment)

	client := backend.New(cfg.Backend.BaseURL, cfg.Backend.Timeout())

	auth.InitHandlers(client, cfg)
	dashboard.InitHandlers(client)
	reservations.InitHandlers(client)
	rooms.InitHandlers(client)
	guests.InitHandlers(client)
	users.InitHandlers(client)

	if cfg.Stats.RefreshCron != "" {
		if err := scheduler.Init(); err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize scheduler")
		}
		if err := scheduler.RegisterSnapshotRefreshJob(client, cfg.Stats.RefreshCron); err != nil {
			log.Fatal().Err(err).Msg("Failed to register snapshot refresh job")
		}
		if err := scheduler.Start(); err != nil {
			log.Fatal().Err(err).Msg("Failed to start scheduler")
		}
		defer func() {
			if err := scheduler.Stop(); err != nil {
				log.Error().Err(err).Msg("Scheduler shutdown failed")
			}
		}()
	}

	server := newServer(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info().Int("port", cfg.App.Port).Str("backend", cfg.Backend.BaseURL).Msg("Starting server")
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		log.Info().Msg("Shutting down server")
		if err := server.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown error: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		log.Error().Err(err).Msg("Server terminated with error")
		os.Exit(1)
	}
}
