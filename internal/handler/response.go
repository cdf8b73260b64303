// Package handler contains the HTTP layer: request parsing, response
// shaping, and the mapping from domain error kinds to status codes. No
// business rules live here.
package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/notasapp/notas/internal/apperror"
)

// ErrorResponse is the standard error format returned by all API endpoints.
// Count is present only for status-in-use conflicts, so the client can tell
// the user how many notes block the removal.
type ErrorResponse struct {
	Error   string `json:"error"`           // machine-readable kind, e.g. "conflict"
	Message string `json:"message"`         // human-readable description
	Field   string `json:"field,omitempty"` // offending field, when known
	Count   int    `json:"count,omitempty"` // notes blocking a status removal
}

// writeJSON sends a JSON response with the given status code. Headers must
// be set before the first body write.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			// Headers are already gone out; all we can do is log.
			slog.Error("failed to encode JSON response", slog.String("error", err.Error()))
		}
	}
}

// writeError maps a domain error to an HTTP status code and sends it.
// The service layer returns apperror kinds; nothing below this function
// knows HTTP exists.
func writeError(w http.ResponseWriter, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		status := http.StatusInternalServerError
		errorType := "internal_error"

		switch {
		case errors.Is(err, apperror.ErrValidation):
			status = http.StatusBadRequest
			errorType = "validation_error"
		case errors.Is(err, apperror.ErrNotFound):
			status = http.StatusNotFound
			errorType = "not_found"
		case errors.Is(err, apperror.ErrForbidden):
			status = http.StatusForbidden
			errorType = "forbidden"
		case errors.Is(err, apperror.ErrConflict):
			status = http.StatusConflict
			errorType = "conflict"
		}

		writeJSON(w, status, ErrorResponse{
			Error:   errorType,
			Message: appErr.Message,
			Field:   appErr.Field,
			Count:   appErr.Count,
		})
		return
	}

	// Unknown error — likely the persistence layer. Don't leak details.
	writeJSON(w, http.StatusInternalServerError, ErrorResponse{
		Error:   "internal_error",
		Message: "An internal error occurred",
	})
}
