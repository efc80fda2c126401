// Package handlers provides HTTP response utilities for JSON APIs.
// Every body carries the service envelope: a success flag, an optional
// human-readable message, and endpoint-specific payload fields.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
)

// ErrorResponse is the body written for every failed request.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

// RespondJSON writes a JSON response with the given status code and payload.
// It sets the Content-Type header to application/json.
func RespondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// RespondError logs the error and writes an envelope with success false and
// the given message. Server errors additionally echo the underlying error
// for diagnostics.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, message string, err error) {
	if err != nil {
		logger.Error("handler error", "status", status, "message", message, "error", err)
	} else {
		logger.Warn("request rejected", "status", status, "message", message)
	}

	body := ErrorResponse{Message: message}
	if status >= http.StatusInternalServerError && err != nil {
		body.Error = err.Error()
	}

	RespondJSON(w, status, body)
}
