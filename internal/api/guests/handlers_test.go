package guests

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/posadahq/backoffice/internal/api/authz"
	"github.com/posadahq/backoffice/internal/hotel"
	"github.com/posadahq/backoffice/internal/testutil"
)

func authedRequest(r *http.Request) *http.Request {
	ctx := authz.ContextWithUser(r.Context(), &authz.AuthUser{ID: 1, Username: "admin", Role: "ADMIN"})
	return r.WithContext(ctx)
}

func TestHandleList(t *testing.T) {
	InitHandlers(testutil.NewStubBackend(t, testutil.Fixtures{
		Guests: []hotel.Guest{
			{ID: 5, DNI: "1234", FirstNames: "Ana", LastNames: "Lima", BirthDate: hotel.NewDate(1990, time.March, 5), Profession: "Engineer"},
		},
	}))

	rec := httptest.NewRecorder()
	HandleList(rec, authedRequest(httptest.NewRequest(http.MethodGet, "/api/v1/guests", nil)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.Contains(body, "Ana Lima") || !strings.Contains(body, "1234") {
		t.Errorf("guest row missing from body:\n%s", body)
	}
}

func TestHandleCreateValidation(t *testing.T) {
	InitHandlers(testutil.NewStubBackend(t, testutil.Fixtures{}))

	form := url.Values{}
	form.Set("dni", "1234")
	// first_names missing

	r := httptest.NewRequest(http.MethodPost, "/api/v1/guests", strings.NewReader(form.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	rec := httptest.NewRecorder()
	HandleCreate(rec, authedRequest(r))

	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
}
