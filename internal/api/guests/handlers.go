// internal/api/guests/handlers.go
package guests

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/posadahq/backoffice/internal/api/apiutil"
	"github.com/posadahq/backoffice/internal/api/authz"
	"github.com/posadahq/backoffice/internal/api/htmx"
	"github.com/posadahq/backoffice/internal/backend"
	"github.com/posadahq/backoffice/internal/hotel"
	gueststempl "github.com/posadahq/backoffice/internal/templates/components/guests"
	"github.com/posadahq/backoffice/internal/templates/layouts"
)

var client *backend.Client

// InitHandlers must be called during server startup before handling
// requests.
func InitHandlers(c *backend.Client) {
	client = c
}

func filterFromQuery(r *http.Request) backend.GuestFilter {
	query := r.URL.Query()
	return backend.GuestFilter{
		Name:       query.Get("name"),
		Profession: query.Get("profession"),
		DNI:        query.Get("dni"),
	}
}

// HandlePage renders the guests screen for GET /guests.
func HandlePage(w http.ResponseWriter, r *http.Request) {
	guests, err := client.SearchGuests(r.Context(), filterFromQuery(r))
	if err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to list guests")
		return
	}

	user := authz.UserFromContext(r.Context())
	page := layouts.Base("Guests", user, gueststempl.List(gueststempl.NewRows(time.Now(), guests)))
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render guests page", "Failed to render page")
}

// HandleList returns the table partial for GET /api/v1/guests.
func HandleList(w http.ResponseWriter, r *http.Request) {
	guests, err := client.SearchGuests(r.Context(), filterFromQuery(r))
	if err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to list guests")
		return
	}

	component := gueststempl.Table(gueststempl.NewRows(time.Now(), guests))
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render guest rows", "Failed to render rows")
}

// HandleNewForm renders the create form for GET /guests/new.
func HandleNewForm(w http.ResponseWriter, r *http.Request) {
	user := authz.UserFromContext(r.Context())
	page := layouts.Base("New guest", user, gueststempl.Form(gueststempl.FormData{}))
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render guest form", "Failed to render form")
}

// HandleEditForm renders the edit form for GET /guests/{id}/edit.
func HandleEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := apiutil.ParsePositiveInt64Field(r.PathValue("id"), "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	guest, err := client.GetGuest(r.Context(), id)
	if err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to load guest")
		return
	}

	user := authz.UserFromContext(r.Context())
	page := layouts.Base("Edit guest", user, gueststempl.Form(gueststempl.FormData{IsEdit: true, Guest: guest}))
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render guest form", "Failed to render form")
}

// HandleCreate processes POST /api/v1/guests.
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	guest, err := guestFromForm(r)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}

	created, err := client.CreateGuest(r.Context(), guest)
	if err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to create guest")
		return
	}

	log.Ctx(r.Context()).Info().Int64("guest_id", created.ID).Msg("Guest created")
	htmx.Redirect(w, r, "/guests")
}

// HandleUpdate processes PUT /api/v1/guests/{id}.
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := apiutil.ParsePositiveInt64Field(r.PathValue("id"), "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	guest, err := guestFromForm(r)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}

	if _, err := client.UpdateGuest(r.Context(), id, guest); err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to update guest")
		return
	}

	log.Ctx(r.Context()).Info().Int64("guest_id", id).Msg("Guest updated")
	htmx.Redirect(w, r, "/guests")
}

// HandleDelete processes DELETE /api/v1/guests/{id}.
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := apiutil.ParsePositiveInt64Field(r.PathValue("id"), "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := client.DeleteGuest(r.Context(), id); err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to delete guest")
		return
	}

	log.Ctx(r.Context()).Info().Int64("guest_id", id).Msg("Guest deleted")
	w.WriteHeader(http.StatusOK)
}

// guestFromForm parses and validates the guest form. DNI and first
// names are the only hard requirements, matching the backend.
func guestFromForm(r *http.Request) (hotel.Guest, error) {
	if err := r.ParseForm(); err != nil {
		return hotel.Guest{}, apiutil.FieldError{Field: "form", Reason: "could not be parsed"}
	}

	dni := strings.TrimSpace(r.FormValue("dni"))
	if dni == "" {
		return hotel.Guest{}, apiutil.FieldError{Field: "dni", Reason: "is required"}
	}
	firstNames := strings.TrimSpace(r.FormValue("first_names"))
	if firstNames == "" {
		return hotel.Guest{}, apiutil.FieldError{Field: "first_names", Reason: "is required"}
	}

	birthDate, err := apiutil.ParseOptionalDateField(r.FormValue("birth_date"), "birth_date")
	if err != nil {
		return hotel.Guest{}, err
	}

	return hotel.Guest{
		DNI:        dni,
		FirstNames: firstNames,
		LastNames:  strings.TrimSpace(r.FormValue("last_names")),
		BirthDate:  birthDate,
		Address:    strings.TrimSpace(r.FormValue("address")),
		Profession: strings.TrimSpace(r.FormValue("profession")),
	}, nil
}

func respondValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr apiutil.FieldError
	if errors.As(err, &fieldErr) {
		log.Ctx(r.Context()).Warn().Str("field", fieldErr.Field).Msg("Guest form rejected")
		http.Error(w, fieldErr.Error(), http.StatusUnprocessableEntity)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}
