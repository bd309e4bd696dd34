package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/rs/zerolog/log"

	"github.com/posadahq/backoffice/internal/stats"
)

const refreshJobTimeout = 30 * time.Second

// RegisterSnapshotRefreshJob registers a periodic job that pulls the
// four backend collections and logs the aggregate figures. It keeps
// the backend connection warm and leaves an audit trail of occupancy
// between dashboard visits.
func RegisterSnapshotRefreshJob(source stats.Source, cronExpr string) error {
	if source == nil {
		return fmt.Errorf("snapshot refresh job requires a backend source")
	}

	jobName := "dashboard_snapshot_refresh"
	jobLogger := log.With().
		Str("component", "snapshot_refresh_job").
		Str("job_name", jobName).
		Str("cron", cronExpr).
		Logger()

	_, err := AddJob(jobName, cronExpr, func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshJobTimeout)
		defer cancel()
		ctx = jobLogger.WithContext(ctx)

		collection, err := stats.Collect(ctx, source)
		if err != nil {
			jobLogger.Error().Err(err).Msg("Snapshot refresh failed")
			return
		}

		snapshot := collection.Snapshot()
		jobLogger.Info().
			Int("active_reservations", snapshot.Reservations.Active).
			Int("pending_reservations", snapshot.Reservations.Pending).
			Int("occupied_rooms", snapshot.Rooms.Occupied).
			Int("available_rooms", snapshot.Rooms.Available).
			Int("active_guests", snapshot.Guests.Active).
			Float64("month_revenue", snapshot.Revenue.CurrentMonth).
			Msg("Snapshot refreshed")
	}, gocron.WithSingletonMode(gocron.LimitModeWait))
	if err != nil {
		return fmt.Errorf("add snapshot refresh job: %w", err)
	}

	return nil
}
