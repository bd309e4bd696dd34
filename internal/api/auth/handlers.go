package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/posadahq/backoffice/internal/api/authz"
	"github.com/posadahq/backoffice/internal/api/htmx"
	"github.com/posadahq/backoffice/internal/config"
	"github.com/posadahq/backoffice/internal/hotel"
	"github.com/posadahq/backoffice/internal/ratelimit"
	authtempl "github.com/posadahq/backoffice/internal/templates/components/auth"
)

// Directory is the slice of the backend the login gate needs: the
// staff account listing it matches credentials against.
type Directory interface {
	ListUsers(ctx context.Context) ([]hotel.User, error)
}

var (
	directory Directory
	appConfig *config.Config
	limiter   *ratelimit.LoginLimiter
)

// InitHandlers must be called during server startup before handling
// requests.
func InitHandlers(d Directory, cfg *config.Config) {
	directory = d
	appConfig = cfg
	limiter = ratelimit.NewLoginLimiter(nil)
}

func HandleLoginPage(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if user := authz.UserFromContext(r.Context()); user != nil {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
		return
	}

	component := authtempl.LoginPage("")
	if err := component.Render(r.Context(), w); err != nil {
		logger.Error().Err(err).Msg("Failed to render login page")
		http.Error(w, "Failed to render page", http.StatusInternalServerError)
	}
}

// HandleLogin processes the login form: look the username up in the
// backend directory, verify the credential, and open a session.
func HandleLogin(w http.ResponseWriter, r *http.Request) {
	logger := log.Ctx(r.Context())

	if directory == nil {
		logger.Error().Msg("Auth handlers not initialized")
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}
	username := strings.TrimSpace(r.FormValue("username"))
	password := r.FormValue("password")
	if username == "" || password == "" {
		renderLoginError(w, r, "Username and password are required")
		return
	}

	if !limiter.Allow(r, username) {
		logger.Warn().Str("username", username).Msg("Login rate limit exceeded")
		http.Error(w, "Too many attempts, try again shortly", http.StatusTooManyRequests)
		return
	}

	users, err := directory.ListUsers(r.Context())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load user directory")
		renderLoginError(w, r, "Could not reach the booking service")
		return
	}

	account, found := matchAccount(users, username)
	if !found || !VerifyPassword(account.Password, password) {
		logger.Warn().Str("username", username).Msg("Login rejected")
		renderLoginError(w, r, "Incorrect username or password")
		return
	}

	sessionUser := authz.AuthUser{
		ID:       account.ID,
		Username: account.Username,
		Name:     account.FullName(),
		Role:     account.Role,
	}
	if err := CreateSession(w, sessionUser); err != nil {
		logger.Error().Err(err).Msg("Failed to create session")
		http.Error(w, "Failed to log in", http.StatusInternalServerError)
		return
	}

	logger.Info().
		Int64("user_id", account.ID).
		Str("role", account.Role).
		Msg("User logged in")
	htmx.Redirect(w, r, "/dashboard")
}

func HandleLogout(w http.ResponseWriter, r *http.Request) {
	user := authz.UserFromContext(r.Context())
	ClearSession(w, r)
	if user != nil {
		log.Ctx(r.Context()).Info().Int64("user_id", user.ID).Msg("User logged out")
	}
	htmx.Redirect(w, r, "/login")
}

func matchAccount(users []hotel.User, username string) (hotel.User, bool) {
	for _, user := range users {
		if user.Username == username {
			return user, true
		}
	}
	return hotel.User{}, false
}

func renderLoginError(w http.ResponseWriter, r *http.Request, message string) {
	w.WriteHeader(http.StatusUnauthorized)
	component := authtempl.LoginPage(message)
	if err := component.Render(r.Context(), w); err != nil {
		log.Ctx(r.Context()).Error().Err(err).Msg("Failed to render login error")
	}
}
