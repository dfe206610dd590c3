package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/sagarc03/lakegate"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error string `json:"Error"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// StatusCode maps an error to its HTTP status code.
func StatusCode(err error) int {
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, lakegate.ErrConfiguration),
		errors.Is(err, lakegate.ErrInvalidContainer),
		errors.Is(err, lakegate.ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, lakegate.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, lakegate.ErrHealthCheck):
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// HandleError writes appropriate error response based on error type.
// Storage failures carry the backend message through unchanged.
func HandleError(w http.ResponseWriter, err error) {
	code := StatusCode(err)
	if code >= http.StatusInternalServerError {
		slog.Error("request error", "error", err)
	}

	var maxErr *http.MaxBytesError
	if errors.As(err, &maxErr) {
		WriteError(w, code, fmt.Sprintf("Request body exceeds %d bytes", maxErr.Limit))
		return
	}

	var opErr *lakegate.OpError
	if errors.As(err, &opErr) {
		WriteError(w, code, opErr.Message())
		return
	}

	if errors.Is(err, ErrUnauthorized) {
		WriteError(w, code, "Unauthorized")
		return
	}

	WriteError(w, code, err.Error())
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}
