// internal/api/reservations/handlers.go
package reservations

import (
	"context"
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
	restempl "github.com/posadahq/backoffice/internal/templates/components/reservations"
	"github.com/posadahq/backoffice/internal/templates/layouts"
)

const maxPeoplePerReservation = 10

var client *backend.Client

// InitHandlers must be called during server startup before handling
// requests.
func InitHandlers(c *backend.Client) {
	client = c
}

func filterFromQuery(r *http.Request) (backend.ReservationFilter, error) {
	query := r.URL.Query()
	from, err := apiutil.ParseOptionalDateField(query.Get("from"), "from")
	if err != nil {
		return backend.ReservationFilter{}, err
	}
	to, err := apiutil.ParseOptionalDateField(query.Get("to"), "to")
	if err != nil {
		return backend.ReservationFilter{}, err
	}
	return backend.ReservationFilter{
		From:  from,
		To:    to,
		Guest: query.Get("guest"),
		Room:  query.Get("room"),
	}, nil
}

// HandlePage renders the reservations screen for GET /reservations.
func HandlePage(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	reservations, err := client.SearchReservations(r.Context(), filter)
	if err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to list reservations")
		return
	}

	user := authz.UserFromContext(r.Context())
	page := layouts.Base("Reservations", user, restempl.List(restempl.NewRows(reservations)))
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render reservations page", "Failed to render page")
}

// HandleList returns the table partial for GET /api/v1/reservations.
func HandleList(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	reservations, err := client.SearchReservations(r.Context(), filter)
	if err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to list reservations")
		return
	}

	component := restempl.Table(restempl.NewRows(reservations))
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render reservation rows", "Failed to render rows")
}

// HandleNewForm renders the create form for GET /reservations/new.
func HandleNewForm(w http.ResponseWriter, r *http.Request) {
	renderForm(w, r, restempl.FormData{})
}

// HandleEditForm renders the edit form for GET /reservations/{id}/edit.
func HandleEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := apiutil.ParsePositiveInt64Field(r.PathValue("id"), "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	reservation, err := client.GetReservation(r.Context(), id)
	if err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to load reservation")
		return
	}

	renderForm(w, r, restempl.FormData{IsEdit: true, Reservation: reservation})
}

func renderForm(w http.ResponseWriter, r *http.Request, data restempl.FormData) {
	rooms, guests, users, err := formOptions(r.Context())
	if err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to load reservation form options")
		return
	}
	data.Rooms = restempl.NewRoomOptions(rooms)
	data.Guests = restempl.NewGuestOptions(guests)
	data.Users = restempl.NewUserOptions(users)

	title := "New reservation"
	if data.IsEdit {
		title = "Edit reservation"
	}
	user := authz.UserFromContext(r.Context())
	page := layouts.Base(title, user, restempl.Form(data))
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render reservation form", "Failed to render form")
}

func formOptions(ctx context.Context) ([]hotel.Room, []hotel.Guest, []hotel.User, error) {
	rooms, err := client.ListRooms(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	guests, err := client.ListGuests(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	users, err := client.ListUsers(ctx)
	if err != nil {
		return nil, nil, nil, err
	}
	return rooms, guests, users, nil
}

// HandleCreate processes POST /api/v1/reservations.
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	reservation, err := reservationFromRequest(r)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}

	created, err := client.CreateReservation(r.Context(), reservation)
	if err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to create reservation")
		return
	}

	log.Ctx(r.Context()).Info().Int64("reservation_id", created.ID).Msg("Reservation created")
	htmx.Trigger(w, "dashboard-refresh")
	htmx.Redirect(w, r, "/reservations")
}

// HandleUpdate processes PUT /api/v1/reservations/{id}.
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := apiutil.ParsePositiveInt64Field(r.PathValue("id"), "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	reservation, err := reservationFromRequest(r)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}

	if _, err := client.UpdateReservation(r.Context(), id, reservation); err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to update reservation")
		return
	}

	log.Ctx(r.Context()).Info().Int64("reservation_id", id).Msg("Reservation updated")
	htmx.Trigger(w, "dashboard-refresh")
	htmx.Redirect(w, r, "/reservations")
}

// HandleDelete processes DELETE /api/v1/reservations/{id}. On success
// the response body is empty so htmx removes the table row.
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := apiutil.ParsePositiveInt64Field(r.PathValue("id"), "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := client.DeleteReservation(r.Context(), id); err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to delete reservation")
		return
	}

	log.Ctx(r.Context()).Info().Int64("reservation_id", id).Msg("Reservation deleted")
	htmx.Trigger(w, "dashboard-refresh")
	w.WriteHeader(http.StatusOK)
}

// reservationFromRequest decodes the booking payload. The HTMX screens
// post url-encoded forms; scripted clients can send a JSON body in the
// backend's own shape. Both paths go through the same rules.
func reservationFromRequest(r *http.Request) (hotel.Reservation, error) {
	if strings.HasPrefix(r.Header.Get("Content-Type"), "application/json") {
		var reservation hotel.Reservation
		if err := apiutil.DecodeJSON(r, &reservation); err != nil {
			return hotel.Reservation{}, apiutil.FieldError{Field: "body", Reason: "must be a valid JSON reservation"}
		}
		return validateReservation(reservation)
	}
	return reservationFromForm(r)
}

func reservationFromForm(r *http.Request) (hotel.Reservation, error) {
	if err := r.ParseForm(); err != nil {
		return hotel.Reservation{}, apiutil.FieldError{Field: "form", Reason: "could not be parsed"}
	}

	checkIn, err := apiutil.ParseDateField(r.FormValue("check_in"), "check_in")
	if err != nil {
		return hotel.Reservation{}, err
	}
	checkOut, err := apiutil.ParseDateField(r.FormValue("check_out"), "check_out")
	if err != nil {
		return hotel.Reservation{}, err
	}

	people, err := apiutil.ParseNonNegativeInt64Field(r.FormValue("people"), "people")
	if err != nil {
		return hotel.Reservation{}, err
	}
	amount, err := apiutil.ParseNonNegativeFloatField(r.FormValue("amount"), "amount")
	if err != nil {
		return hotel.Reservation{}, err
	}

	roomID, err := apiutil.ParsePositiveInt64Field(r.FormValue("room_id"), "room_id")
	if err != nil {
		return hotel.Reservation{}, err
	}
	guestID, err := apiutil.ParsePositiveInt64Field(r.FormValue("guest_id"), "guest_id")
	if err != nil {
		return hotel.Reservation{}, err
	}
	userID, err := apiutil.ParsePositiveInt64Field(r.FormValue("user_id"), "user_id")
	if err != nil {
		return hotel.Reservation{}, err
	}

	return validateReservation(hotel.Reservation{
		CheckIn:     checkIn,
		CheckOut:    checkOut,
		People:      int(people),
		TotalAmount: amount,
		Room:        hotel.RoomByID(roomID),
		Guest:       hotel.GuestByID(guestID),
		User:        hotel.UserByID(userID),
	})
}

// validateReservation applies the booking rules the backend enforces
// so users get immediate feedback: check-in strictly before check-out,
// 1-10 people, a positive amount, and all three references present.
// It also derives the night count from the stay window.
func validateReservation(reservation hotel.Reservation) (hotel.Reservation, error) {
	if reservation.CheckIn.IsZero() {
		return hotel.Reservation{}, apiutil.FieldError{Field: "check_in", Reason: "is required"}
	}
	if reservation.CheckOut.IsZero() {
		return hotel.Reservation{}, apiutil.FieldError{Field: "check_out", Reason: "is required"}
	}
	if !reservation.CheckIn.DayStart().Before(reservation.CheckOut.DayStart()) {
		return hotel.Reservation{}, apiutil.FieldError{Field: "check_in", Reason: "must be before check-out"}
	}
	if reservation.People < 1 {
		return hotel.Reservation{}, apiutil.FieldError{Field: "people", Reason: "must be greater than 0"}
	}
	if reservation.People > maxPeoplePerReservation {
		return hotel.Reservation{}, apiutil.FieldError{Field: "people", Reason: "must be 10 or fewer"}
	}
	if reservation.TotalAmount <= 0 {
		return hotel.Reservation{}, apiutil.FieldError{Field: "amount", Reason: "must be greater than 0"}
	}
	if _, ok := reservation.Room.Key(); !ok {
		return hotel.Reservation{}, apiutil.FieldError{Field: "room_id", Reason: "is required"}
	}
	if _, ok := reservation.Guest.Key(); !ok {
		return hotel.Reservation{}, apiutil.FieldError{Field: "guest_id", Reason: "is required"}
	}
	if _, ok := reservation.User.Key(); !ok {
		return hotel.Reservation{}, apiutil.FieldError{Field: "user_id", Reason: "is required"}
	}

	nights := int(reservation.CheckOut.DayStart().Sub(reservation.CheckIn.DayStart()) / (24 * time.Hour))
	if nights < 1 {
		nights = 1
	}
	reservation.Nights = nights
	return reservation, nil
}

func respondValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr apiutil.FieldError
	if errors.As(err, &fieldErr) {
		log.Ctx(r.Context()).Warn().Str("field", fieldErr.Field).Msg("Reservation form rejected")
		http.Error(w, fieldErr.Error(), http.StatusUnprocessableEntity)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}
