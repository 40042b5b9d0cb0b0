package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/bharat3214/Genei/internal/common"
	"github.com/bharat3214/Genei/internal/logging"
)

// errorResponse is the body of every non-2xx answer.
type errorResponse struct {
	Message string       `json:"message"`
	Errors  []FieldError `json:"errors,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, errorResponse{Message: message})
}

// statusFor maps service errors onto HTTP status codes and client-safe messages.
func statusFor(err error) (int, string) {
	switch {
	case errors.Is(err, common.ErrorNotFound):
		return http.StatusNotFound, "Not found"
	case errors.Is(err, common.ErrorForbidden):
		return http.StatusForbidden, "Forbidden"
	case errors.Is(err, common.ErrTokenExpired), errors.Is(err, common.ErrRefreshTokenExpired):
		return http.StatusUnauthorized, "Token has expired"
	case errors.Is(err, common.ErrorUnauthorized), errors.Is(err, common.ErrInvalidToken):
		return http.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, common.ErrorAlreadyExists):
		return http.StatusConflict, "Already exists"
	case errors.Is(err, common.ErrorInvalidReceiver):
		return http.StatusBadRequest, "Receiver does not exist"
	case errors.Is(err, common.ErrorInvalidInput):
		return http.StatusBadRequest, "Invalid input"
	case errors.Is(err, common.ErrorUnavailable):
		return http.StatusServiceUnavailable, "Service unavailable"
	default:
		return http.StatusInternalServerError, "Internal server error"
	}
}

// respondServiceError writes the mapped status for err. Only unexpected
// errors are logged; the client never sees their text.
func respondServiceError(w http.ResponseWriter, r *http.Request, logger logging.Logger, err error) {
	status, message := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error(r.Context(), "request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	respondError(w, status, message)
}
