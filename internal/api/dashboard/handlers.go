// internal/api/dashboard/handlers.go
package dashboard

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/posadahq/backoffice/internal/api/apiutil"
	"github.com/posadahq/backoffice/internal/api/authz"
	"github.com/posadahq/backoffice/internal/stats"
	dashboardtempl "github.com/posadahq/backoffice/internal/templates/components/dashboard"
	"github.com/posadahq/backoffice/internal/templates/layouts"
)

const (
	collectTimeout = 10 * time.Second
	recentLimit    = 5
)

var source stats.Source

// InitHandlers must be called during server startup before handling
// requests.
func InitHandlers(s stats.Source) {
	source = s
}

// HandlePage renders the dashboard page for GET /dashboard.
func HandlePage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())
	user := authz.UserFromContext(r.Context())

	data, err := buildDashboardData(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build dashboard data")
		page := layouts.Base("Dashboard", user, dashboardtempl.LoadError("Could not load dashboard data from the booking service"))
		w.WriteHeader(http.StatusBadGateway)
		page.Render(r.Context(), w)
		return
	}

	page := layouts.Base("Dashboard", user, dashboardtempl.Page(data))
	if !apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render dashboard page", "Failed to render page") {
		return
	}
}

// HandleMetrics returns the metrics partial for GET
// /api/v1/dashboard/metrics, refreshed by htmx.
func HandleMetrics(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	data, err := buildDashboardData(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build dashboard metrics")
		w.WriteHeader(http.StatusBadGateway)
		dashboardtempl.LoadError("Could not load dashboard data from the booking service").Render(r.Context(), w)
		return
	}

	component := dashboardtempl.Metrics(data)
	if !apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render dashboard metrics", "Failed to render metrics") {
		return
	}
}

// HandleSummary serves the snapshot as JSON for GET
// /api/v1/dashboard/summary, for scripted consumers of the figures.
func HandleSummary(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if source == nil {
		writeSummaryError(w, errNotInitialized)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), collectTimeout)
	defer cancel()

	collection, err := stats.Collect(ctx, source)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to build dashboard summary")
		writeSummaryError(w, err)
		return
	}

	payload := struct {
		Date     string         `json:"date"`
		Snapshot stats.Snapshot `json:"snapshot"`
	}{
		Date:     collection.Today.Format("2006-01-02"),
		Snapshot: collection.Snapshot(),
	}
	if err := apiutil.WriteJSON(w, http.StatusOK, payload); err != nil {
		logger.Error().Err(err).Msg("Failed to write dashboard summary")
	}
}

func writeSummaryError(w http.ResponseWriter, err error) {
	status := http.StatusBadGateway
	message := "Could not load dashboard data from the booking service"
	var handlerErr apiutil.HandlerError
	if errors.As(err, &handlerErr) {
		status = handlerErr.Status
		message = handlerErr.Message
	}
	_ = apiutil.WriteJSON(w, status, map[string]string{"error": message})
}

// buildDashboardData fetches all four collections (all-or-nothing) and
// derives the snapshot and the secondary views from that single fetch.
func buildDashboardData(ctx context.Context) (dashboardtempl.DashboardData, error) {
	if source == nil {
		return dashboardtempl.DashboardData{}, errNotInitialized
	}

	ctx, cancel := context.WithTimeout(ctx, collectTimeout)
	defer cancel()

	collection, err := stats.Collect(ctx, source)
	if err != nil {
		return dashboardtempl.DashboardData{}, err
	}

	return dashboardtempl.DashboardData{
		Snapshot: collection.Snapshot(),
		Recent:   dashboardtempl.NewRecentRows(stats.Recent(collection.Reservations, recentLimit)),
		Rooms:    dashboardtempl.NewRoomStatusRows(stats.RoomStatuses(collection.Today, collection.Rooms, collection.Reservations)),
		Months:   dashboardtempl.NewMonthPoints(stats.MonthlySeries(collection.Today, collection.Reservations)),
	}, nil
}
