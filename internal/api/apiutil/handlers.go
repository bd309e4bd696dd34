package apiutil

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/a-h/templ"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/posadahq/backoffice/internal/api/authz"
	"github.com/posadahq/backoffice/internal/backend"
)

type FieldError struct {
	Field  string
	Reason string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s %s", e.Field, e.Reason)
}

type HandlerError struct {
	Status  int
	Message string
	Err     error
}

func (e HandlerError) Error() string {
	return e.Message
}

func (e HandlerError) Unwrap() error {
	return e.Err
}

func DecodeJSON(r *http.Request, dst any) error {
	if r.Body == nil {
		return fmt.Errorf("missing request body")
	}
	defer r.Body.Close()

	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		return err
	}
	if err := decoder.Decode(&struct{}{}); err != io.EOF {
		return fmt.Errorf("invalid JSON body")
	}
	return nil
}

func WriteJSON(w http.ResponseWriter, status int, payload any) error {
	var buf bytes.Buffer
	encoder := json.NewEncoder(&buf)
	if err := encoder.Encode(payload); err != nil {
		return err
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err := w.Write(buf.Bytes())
	return err
}

// RenderHTMLComponent renders component to w, logging and replying 500
// on failure. It reports whether rendering succeeded.
func RenderHTMLComponent(ctx context.Context, w http.ResponseWriter, component templ.Component, logger *zerolog.Logger, logMsg, userMsg string) bool {
	if logger == nil {
		logger = log.Ctx(ctx)
	}
	if err := component.Render(ctx, w); err != nil {
		logger.Error().Err(err).Msg(logMsg)
		http.Error(w, userMsg, http.StatusInternalServerError)
		return false
	}
	return true
}

// RespondBackendError maps a data-access failure to an HTTP reply.
// Backend rejections pass their message through; transport failures
// become a 502 so the operator can tell console bugs from backend
// outages.
func RespondBackendError(w http.ResponseWriter, r *http.Request, err error, logMsg string) {
	logger := log.Ctx(r.Context())

	var statusErr *backend.StatusError
	if errors.As(err, &statusErr) {
		logger.Warn().Err(err).Int("backend_status", statusErr.Status).Msg(logMsg)
		message := statusErr.Message
		if message == "" {
			message = "Booking service rejected the request"
		}
		status := statusErr.Status
		if status < 400 || status > 499 {
			status = http.StatusBadGateway
		}
		http.Error(w, message, status)
		return
	}

	logger.Error().Err(err).Msg(logMsg)
	http.Error(w, "Booking service unavailable", http.StatusBadGateway)
}

// RequireAdminAccess enforces the admin gate and writes the error
// reply itself. It reports whether the request may proceed.
func RequireAdminAccess(w http.ResponseWriter, r *http.Request) bool {
	logger := log.Ctx(r.Context())
	user := authz.UserFromContext(r.Context())
	if err := authz.RequireAdmin(r.Context()); err != nil {
		switch {
		case errors.Is(err, authz.ErrUnauthenticated):
			logger.Warn().Msg("Admin access denied: unauthenticated")
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		case errors.Is(err, authz.ErrForbidden):
			logEvent := logger.Warn()
			if user != nil {
				logEvent = logEvent.Int64("user_id", user.ID)
			}
			logEvent.Msg("Admin access denied: forbidden")
			http.Error(w, "Forbidden", http.StatusForbidden)
		default:
			logger.Error().Err(err).Msg("Admin access denied: error")
			http.Error(w, "Failed to authorize request", http.StatusInternalServerError)
		}
		return false
	}
	return true
}
