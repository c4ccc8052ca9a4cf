package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/habittrack/habittrack/internal/auth"
	"github.com/habittrack/habittrack/internal/logger"
	"github.com/habittrack/habittrack/internal/storage"
)

type errorResponse struct {
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if body != nil {
		_ = json.NewEncoder(w).Encode(body)
	}
}

// respondError maps domain errors to client-visible statuses. Provider and
// internal failures are logged with detail but returned as generic messages;
// nothing here crashes the process.
func (h *Handler) respondError(w http.ResponseWriter, r *http.Request, err error) {
	status, message := http.StatusInternalServerError, "internal error"

	switch {
	case errors.Is(err, auth.ErrInvalidCredentials):
		status, message = http.StatusUnauthorized, "invalid credentials"
	case errors.Is(err, auth.ErrUnauthenticated),
		errors.Is(err, auth.ErrTokenExpired),
		errors.Is(err, auth.ErrTokenInvalid):
		status, message = http.StatusUnauthorized, "authentication required"
	case errors.Is(err, auth.ErrForbidden):
		status, message = http.StatusForbidden, "forbidden"
	case errors.Is(err, auth.ErrSelfDelete):
		status, message = http.StatusBadRequest, "cannot delete own account"
	case errors.Is(err, auth.ErrUsernameTaken):
		status, message = http.StatusConflict, "username already taken"
	case errors.Is(err, auth.ErrUsernameRequired):
		status, message = http.StatusBadRequest, "username is required"
	case errors.Is(err, auth.ErrPasswordRequired):
		status, message = http.StatusBadRequest, "password is required"
	case errors.Is(err, auth.ErrStateMismatch):
		status, message = http.StatusForbidden, "oauth state mismatch"
	case errors.Is(err, auth.ErrEmailUnavailable),
		errors.Is(err, auth.ErrProviderUnavailable):
		// Provider internals stay server-side.
		status, message = http.StatusUnauthorized, "authentication failed"
	case errors.Is(err, auth.ErrUnknownProvider):
		status, message = http.StatusNotFound, "unknown provider"
	case errors.Is(err, auth.ErrUserNotFound):
		status, message = http.StatusNotFound, "user not found"
	case errors.Is(err, storage.ErrHabitNotFound):
		status, message = http.StatusNotFound, "habit not found"
	}

	if status >= http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), "request failed",
			logger.Error(err),
			logger.Component("handler"),
		)
	}

	respondJSON(w, status, errorResponse{Message: message})
}
