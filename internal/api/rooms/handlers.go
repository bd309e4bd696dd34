// internal/api/rooms/handlers.go
package rooms

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/posadahq/backoffice/internal/api/apiutil"
	"github.com/posadahq/backoffice/internal/api/authz"
	"github.com/posadahq/backoffice/internal/api/htmx"
	"github.com/posadahq/backoffice/internal/backend"
	"github.com/posadahq/backoffice/internal/hotel"
	roomstempl "github.com/posadahq/backoffice/internal/templates/components/rooms"
	"github.com/posadahq/backoffice/internal/templates/layouts"
)

var client *backend.Client

// InitHandlers must be called during server startup before handling
// requests.
func InitHandlers(c *backend.Client) {
	client = c
}

func filterFromQuery(r *http.Request) (backend.RoomFilter, error) {
	query := r.URL.Query()
	filter := backend.RoomFilter{
		Name:  query.Get("name"),
		Type:  query.Get("type"),
		Floor: query.Get("floor"),
	}
	if raw := strings.TrimSpace(query.Get("price_min")); raw != "" {
		value, err := apiutil.ParseNonNegativeFloatField(raw, "price_min")
		if err != nil {
			return backend.RoomFilter{}, err
		}
		filter.PriceMin = value
	}
	if raw := strings.TrimSpace(query.Get("price_max")); raw != "" {
		value, err := apiutil.ParseNonNegativeFloatField(raw, "price_max")
		if err != nil {
			return backend.RoomFilter{}, err
		}
		filter.PriceMax = value
	}
	return filter, nil
}

// HandlePage renders the rooms screen for GET /rooms.
func HandlePage(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rooms, err := client.SearchRooms(r.Context(), filter)
	if err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to list rooms")
		return
	}

	user := authz.UserFromContext(r.Context())
	page := layouts.Base("Rooms", user, roomstempl.List(roomstempl.NewRows(rooms)))
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render rooms page", "Failed to render page")
}

// HandleList returns the table partial for GET /api/v1/rooms.
func HandleList(w http.ResponseWriter, r *http.Request) {
	filter, err := filterFromQuery(r)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rooms, err := client.SearchRooms(r.Context(), filter)
	if err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to list rooms")
		return
	}

	component := roomstempl.Table(roomstempl.NewRows(rooms))
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render room rows", "Failed to render rows")
}

// HandleNewForm renders the create form for GET /rooms/new.
func HandleNewForm(w http.ResponseWriter, r *http.Request) {
	user := authz.UserFromContext(r.Context())
	page := layouts.Base("New room", user, roomstempl.Form(roomstempl.FormData{}))
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render room form", "Failed to render form")
}

// HandleEditForm renders the edit form for GET /rooms/{id}/edit.
func HandleEditForm(w http.ResponseWriter, r *http.Request) {
	id, err := apiutil.ParsePositiveInt64Field(r.PathValue("id"), "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	room, err := client.GetRoom(r.Context(), id)
	if err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to load room")
		return
	}

	user := authz.UserFromContext(r.Context())
	page := layouts.Base("Edit room", user, roomstempl.Form(roomstempl.FormData{IsEdit: true, Room: room}))
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render room form", "Failed to render form")
}

// HandleCreate processes POST /api/v1/rooms.
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	room, err := roomFromForm(r)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}

	created, err := client.CreateRoom(r.Context(), room)
	if err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to create room")
		return
	}

	log.Ctx(r.Context()).Info().Int64("room_id", created.ID).Msg("Room created")
	htmx.Redirect(w, r, "/rooms")
}

// HandleUpdate processes PUT /api/v1/rooms/{id}.
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := apiutil.ParsePositiveInt64Field(r.PathValue("id"), "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	room, err := roomFromForm(r)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}

	if _, err := client.UpdateRoom(r.Context(), id, room); err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to update room")
		return
	}

	log.Ctx(r.Context()).Info().Int64("room_id", id).Msg("Room updated")
	htmx.Redirect(w, r, "/rooms")
}

// HandleDelete processes DELETE /api/v1/rooms/{id}.
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := apiutil.ParsePositiveInt64Field(r.PathValue("id"), "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := client.DeleteRoom(r.Context(), id); err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to delete room")
		return
	}

	log.Ctx(r.Context()).Info().Int64("room_id", id).Msg("Room deleted")
	w.WriteHeader(http.StatusOK)
}

func roomFromForm(r *http.Request) (hotel.Room, error) {
	if err := r.ParseForm(); err != nil {
		return hotel.Room{}, apiutil.FieldError{Field: "form", Reason: "could not be parsed"}
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		return hotel.Room{}, apiutil.FieldError{Field: "name", Reason: "is required"}
	}

	price, err := apiutil.ParseNonNegativeFloatField(r.FormValue("price"), "price")
	if err != nil {
		return hotel.Room{}, err
	}

	room := hotel.Room{
		Name:       name,
		NightPrice: price,
		Floor:      strings.TrimSpace(r.FormValue("floor")),
	}

	if raw := strings.TrimSpace(r.FormValue("type_id")); raw != "" {
		typeID, err := apiutil.ParsePositiveInt64Field(raw, "type_id")
		if err != nil {
			return hotel.Room{}, err
		}
		room.Type = &hotel.RoomType{ID: typeID}
	}

	return room, nil
}

func respondValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr apiutil.FieldError
	if errors.As(err, &fieldErr) {
		log.Ctx(r.Context()).Warn().Str("field", fieldErr.Field).Msg("Room form rejected")
		http.Error(w, fieldErr.Error(), http.StatusUnprocessableEntity)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}
