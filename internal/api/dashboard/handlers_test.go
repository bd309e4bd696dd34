package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/posadahq/backoffice/internal/api/authz"
	"github.com/posadahq/backoffice/internal/hotel"
	"github.com/posadahq/backoffice/internal/stats"
	"github.com/posadahq/backoffice/internal/testutil"
)

func dashboardFixtures() testutil.Fixtures {
	today := time.Now().UTC()
	day := func(offset int) hotel.Date {
		d := today.AddDate(0, 0, offset)
		return hotel.NewDate(d.Year(), d.Month(), d.Day())
	}

	return testutil.Fixtures{
		Reservations: []hotel.Reservation{
			{
				ID:           1,
				CheckIn:      day(-1),
				CheckOut:     day(1),
				RegisteredAt: day(-2),
				TotalAmount:  300,
				Room:         hotel.RoomByID(1),
				Guest:        hotel.GuestByID(10),
				User:         hotel.UserByID(1),
			},
			{
				ID:           2,
				CheckIn:      day(5),
				CheckOut:     day(7),
				RegisteredAt: day(-1),
				TotalAmount:  200,
				Room:         hotel.RoomByID(2),
				Guest:        hotel.GuestByID(11),
				User:         hotel.UserByID(1),
			},
		},
		Rooms:  []hotel.Room{{ID: 1, Name: "Jungle"}, {ID: 2, Name: "Ocean"}},
		Guests: []hotel.Guest{{ID: 10, FirstNames: "Ana"}, {ID: 11, FirstNames: "Luis"}},
		Users:  []hotel.User{{ID: 1, Role: hotel.RoleAdmin}},
	}
}

func authedRequest(method, target string) *http.Request {
	r := httptest.NewRequest(method, target, nil)
	ctx := authz.ContextWithUser(r.Context(), &authz.AuthUser{ID: 1, Username: "admin", Role: "ADMIN"})
	return r.WithContext(ctx)
}

func TestHandlePage(t *testing.T) {
	InitHandlers(testutil.NewStubBackend(t, dashboardFixtures()))

	rec := httptest.NewRecorder()
	HandlePage(rec, authedRequest(http.MethodGet, "/dashboard"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, `id="dashboard"`) {
		t.Error("page should contain the dashboard section")
	}
	if !strings.Contains(body, "1 active / 1 pending") {
		t.Errorf("unexpected reservation stats in body:\n%s", body)
	}
	if !strings.Contains(body, "1 occupied / 1 available") {
		t.Error("unexpected room stats in body")
	}
}

func TestHandleMetricsPartial(t *testing.T) {
	InitHandlers(testutil.NewStubBackend(t, dashboardFixtures()))

	rec := httptest.NewRecorder()
	HandleMetrics(rec, authedRequest(http.MethodGet, "/api/v1/dashboard/metrics"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if strings.Contains(body, "<html") {
		t.Error("partial should not include the page shell")
	}
	if !strings.Contains(body, "stat-grid") {
		t.Error("partial should contain the stat cards")
	}
	if !strings.Contains(body, "$500.00") {
		t.Errorf("expected total revenue in body:\n%s", body)
	}
}

func TestHandleMetricsBackendFailure(t *testing.T) {
	InitHandlers(testutil.NewFailingBackend(t, http.StatusInternalServerError, "/huespedes"))

	rec := httptest.NewRecorder()
	HandleMetrics(rec, authedRequest(http.MethodGet, "/api/v1/dashboard/metrics"))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Retry") {
		t.Error("error partial should offer a retry")
	}
}

func TestHandleSummary(t *testing.T) {
	InitHandlers(testutil.NewStubBackend(t, dashboardFixtures()))

	rec := httptest.NewRecorder()
	HandleSummary(rec, authedRequest(http.MethodGet, "/api/v1/dashboard/summary"))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/json" {
		t.Fatalf("content type = %q", got)
	}

	var payload struct {
		Date     string         `json:"date"`
		Snapshot stats.Snapshot `json:"snapshot"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if payload.Date == "" {
		t.Error("summary should carry its evaluation date")
	}
	if payload.Snapshot.Reservations.Active != 1 || payload.Snapshot.Reservations.Pending != 1 {
		t.Errorf("reservations = %+v", payload.Snapshot.Reservations)
	}
	if payload.Snapshot.Revenue.Total != 500 {
		t.Errorf("revenue total = %v", payload.Snapshot.Revenue.Total)
	}
}

func TestHandleSummaryBackendFailure(t *testing.T) {
	InitHandlers(testutil.NewFailingBackend(t, http.StatusInternalServerError, "/reservas"))

	rec := httptest.NewRecorder()
	HandleSummary(rec, authedRequest(http.MethodGet, "/api/v1/dashboard/summary"))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d, want 502", rec.Code)
	}
	var payload map[string]string
	if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
		t.Fatalf("decode error body: %v", err)
	}
	if payload["error"] == "" {
		t.Error("error reply should carry a message")
	}
}

func TestHandlePageNotInitialized(t *testing.T) {
	InitHandlers(nil)

	rec := httptest.NewRecorder()
	HandlePage(rec, authedRequest(http.MethodGet, "/dashboard"))

	if rec.Code != http.StatusBadGateway {
		t.Fatalf("status = %d", rec.Code)
	}
}
