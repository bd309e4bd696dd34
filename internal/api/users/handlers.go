// internal/api/users/handlers.go
package users

import (
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/posadahq/backoffice/internal/api/apiutil"
	"github.com/posadahq/backoffice/internal/api/auth"
	"github.com/posadahq/backoffice/internal/api/authz"
	"github.com/posadahq/backoffice/internal/api/htmx"
	"github.com/posadahq/backoffice/internal/backend"
	"github.com/posadahq/backoffice/internal/hotel"
	userstempl "github.com/posadahq/backoffice/internal/templates/components/users"
	"github.com/posadahq/backoffice/internal/templates/layouts"
)

var client *backend.Client

// InitHandlers must be called during server startup before handling
// requests.
func InitHandlers(c *backend.Client) {
	client = c
}

func filterFromQuery(r *http.Request) backend.UserFilter {
	query := r.URL.Query()
	return backend.UserFilter{
		Name:     query.Get("name"),
		Role:     query.Get("role"),
		DNI:      query.Get("dni"),
		Username: query.Get("username"),
	}
}

// HandlePage renders the staff accounts screen for GET /users.
// Admin only.
func HandlePage(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireAdminAccess(w, r) {
		return
	}

	users, err := client.SearchUsers(r.Context(), filterFromQuery(r))
	if err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to list users")
		return
	}

	user := authz.UserFromContext(r.Context())
	page := layouts.Base("Staff accounts", user, userstempl.List(userstempl.NewRows(users)))
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render users page", "Failed to render page")
}

// HandleList returns the table partial for GET /api/v1/users.
func HandleList(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireAdminAccess(w, r) {
		return
	}

	users, err := client.SearchUsers(r.Context(), filterFromQuery(r))
	if err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to list users")
		return
	}

	component := userstempl.Table(userstempl.NewRows(users))
	apiutil.RenderHTMLComponent(r.Context(), w, component, nil, "Failed to render user rows", "Failed to render rows")
}

// HandleNewForm renders the create form for GET /users/new.
func HandleNewForm(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireAdminAccess(w, r) {
		return
	}

	user := authz.UserFromContext(r.Context())
	page := layouts.Base("New staff account", user, userstempl.Form(userstempl.FormData{}))
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render user form", "Failed to render form")
}

// HandleEditForm renders the edit form for GET /users/{id}/edit.
func HandleEditForm(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireAdminAccess(w, r) {
		return
	}

	id, err := apiutil.ParsePositiveInt64Field(r.PathValue("id"), "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	account, err := client.GetUser(r.Context(), id)
	if err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to load user")
		return
	}
	account.Password = ""

	user := authz.UserFromContext(r.Context())
	page := layouts.Base("Edit staff account", user, userstempl.Form(userstempl.FormData{IsEdit: true, User: account}))
	apiutil.RenderHTMLComponent(r.Context(), w, page, nil, "Failed to render user form", "Failed to render form")
}

// HandleCreate processes POST /api/v1/users. The password is hashed
// before it leaves the console.
func HandleCreate(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireAdminAccess(w, r) {
		return
	}

	account, err := userFromForm(r, true)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}

	hash, err := auth.HashPassword(account.Password)
	if err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to hash password")
		http.Error(w, "Failed to create account", http.StatusInternalServerError)
		return
	}
	account.Password = hash

	created, err := client.CreateUser(r.Context(), account)
	if err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to create user")
		return
	}

	log.Ctx(r.Context()).Info().Int64("user_id", created.ID).Msg("Staff account created")
	htmx.Redirect(w, r, "/users")
}

// HandleUpdate processes PUT /api/v1/users/{id}. A blank password
// keeps the stored credential.
func HandleUpdate(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireAdminAccess(w, r) {
		return
	}

	id, err := apiutil.ParsePositiveInt64Field(r.PathValue("id"), "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	account, err := userFromForm(r, false)
	if err != nil {
		respondValidationError(w, r, err)
		return
	}

	if account.Password == "" {
		current, err := client.GetUser(r.Context(), id)
		if err != nil {
			apiutil.RespondBackendError(w, r, err, "Failed to load user")
			return
		}
		account.Password = current.Password
	} else {
		hash, err := auth.HashPassword(account.Password)
		if err != nil {
			log.Ctx(r.Context()).Error().Err(err).Msg("Failed to hash password")
			http.Error(w, "Failed to update account", http.StatusInternalServerError)
			return
		}
		account.Password = hash
	}

	if _, err := client.UpdateUser(r.Context(), id, account); err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to update user")
		return
	}

	log.Ctx(r.Context()).Info().Int64("user_id", id).Msg("Staff account updated")
	htmx.Redirect(w, r, "/users")
}

// HandleDelete processes DELETE /api/v1/users/{id}. Deleting your own
// session's account is refused.
func HandleDelete(w http.ResponseWriter, r *http.Request) {
	if !apiutil.RequireAdminAccess(w, r) {
		return
	}

	id, err := apiutil.ParsePositiveInt64Field(r.PathValue("id"), "id")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if current := authz.UserFromContext(r.Context()); current != nil && current.ID == id {
		http.Error(w, "Cannot delete the account you are logged in with", http.StatusConflict)
		return
	}

	if err := client.DeleteUser(r.Context(), id); err != nil {
		apiutil.RespondBackendError(w, r, err, "Failed to delete user")
		return
	}

	log.Ctx(r.Context()).Info().Int64("user_id", id).Msg("Staff account deleted")
	w.WriteHeader(http.StatusOK)
}

func userFromForm(r *http.Request, passwordRequired bool) (hotel.User, error) {
	if err := r.ParseForm(); err != nil {
		return hotel.User{}, apiutil.FieldError{Field: "form", Reason: "could not be parsed"}
	}

	username := strings.TrimSpace(r.FormValue("username"))
	if username == "" {
		return hotel.User{}, apiutil.FieldError{Field: "username", Reason: "is required"}
	}
	password := r.FormValue("password")
	if passwordRequired && password == "" {
		return hotel.User{}, apiutil.FieldError{Field: "password", Reason: "is required"}
	}
	firstNames := strings.TrimSpace(r.FormValue("first_names"))
	if firstNames == "" {
		return hotel.User{}, apiutil.FieldError{Field: "first_names", Reason: "is required"}
	}

	birthDate, err := apiutil.ParseOptionalDateField(r.FormValue("birth_date"), "birth_date")
	if err != nil {
		return hotel.User{}, err
	}

	return hotel.User{
		Username:   username,
		Password:   password,
		FirstNames: firstNames,
		LastNames:  strings.TrimSpace(r.FormValue("last_names")),
		DNI:        strings.TrimSpace(r.FormValue("dni")),
		Role:       strings.TrimSpace(r.FormValue("role")),
		BirthDate:  birthDate,
		Address:    strings.TrimSpace(r.FormValue("address")),
	}, nil
}

func respondValidationError(w http.ResponseWriter, r *http.Request, err error) {
	var fieldErr apiutil.FieldError
	if errors.As(err, &fieldErr) {
		log.Ctx(r.Context()).Warn().Str("field", fieldErr.Field).Msg("User form rejected")
		http.Error(w, fieldErr.Error(), http.StatusUnprocessableEntity)
		return
	}
	http.Error(w, err.Error(), http.StatusBadRequest)
}
