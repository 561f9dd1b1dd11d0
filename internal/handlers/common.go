package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"statuscheck-backend/internal/errs"
)

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// respondError sends an error response
func respondError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(ErrorResponse{Error: message})
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, statusCode int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(v)
}

// statusFromErr maps sentinel errors to HTTP status codes.
func statusFromErr(err error) int {
	switch {
	case errors.Is(err, errs.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, errs.ErrPremiumRequired):
		return http.StatusForbidden
	case errors.Is(err, errs.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, errs.ErrTransient):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respondServiceError converts a service failure into a user-visible
// message. Internal details are not leaked for unexpected errors.
func respondServiceError(w http.ResponseWriter, err error) {
	status := statusFromErr(err)
	message := err.Error()
	switch status {
	case http.StatusInternalServerError:
		message = "Something went wrong. Please try again."
	case http.StatusServiceUnavailable:
		message = "Temporary problem talking to the store. Please try again."
	}
	respondError(w, message, status)
}
