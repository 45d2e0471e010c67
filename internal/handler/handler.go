// Package handler provides the HTTP request handlers for the API.
// It is the single point translating repository and auth error kinds
// into HTTP status codes; raw errors are logged, never sent to
// clients.
package handler

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"
)

// errorResponse is the JSON error body returned by every endpoint.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse is the JSON body for mutations that return no record.
type messageResponse struct {
	Message string `json:"message"`
}

// base carries what every handler needs and centralizes response
// writing.
type base struct {
	logger *zap.Logger
}

// writeJSON writes a JSON response with the given status code.
func (b *base) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		b.logger.Error("failed to encode response", zap.Error(err))
	}
}

// writeError writes an error response with the given status and
// message.
func (b *base) writeError(w http.ResponseWriter, status int, message string) {
	b.writeJSON(w, status, errorResponse{Error: message})
}

// writeStorageError logs an unexpected backend failure and answers
// with a generic 500.
func (b *base) writeStorageError(w http.ResponseWriter, operation string, err error) {
	b.logger.Error("storage operation failed",
		zap.String("operation", operation),
		zap.Error(err),
	)
	b.writeError(w, http.StatusInternalServerError, "internal server error")
}
