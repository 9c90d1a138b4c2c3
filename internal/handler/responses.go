package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/osse101/LootVault_Go/internal/domain"
	"github.com/osse101/LootVault_Go/internal/logger"
)

// SuccessResponse represents a simple successful operation message
type SuccessResponse struct {
	Message string `json:"message"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error  string `json:"error"`
	Detail string `json:"detail,omitempty"`
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	buf := getBuffer()
	defer putBuffer(buf)

	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		logger.Error(LogMsgEncodeFailed, "error", err)
		return
	}

	if _, err := buf.WriteTo(w); err != nil {
		logger.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// mapServiceError maps domain errors to an HTTP status and a user-facing message.
// ok is false for errors that are not part of the domain vocabulary.
func mapServiceError(err error) (status int, message string, ok bool) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, ErrMsgNotFoundError, true
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, ErrMsgUnauthorizedError, true
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, ErrMsgForbiddenError, true
	case errors.Is(err, domain.ErrConflict):
		return http.StatusConflict, ErrMsgConflictError, true
	case errors.Is(err, domain.ErrValidation):
		return http.StatusBadRequest, ErrMsgValidationError, true
	}
	return http.StatusInternalServerError, ErrMsgGenericServerError, false
}

// respondServiceError logs err and writes the mapped response. Domain errors
// carry their detail to the client; anything else gets a generic message.
func respondServiceError(w http.ResponseWriter, r *http.Request, op string, err error) {
	log := logger.FromContext(r.Context())

	status, message, ok := mapServiceError(err)
	if !ok {
		log.Error(LogMsgServiceFailed, "op", op, "error", err)
		respondError(w, status, message)
		return
	}

	log.Warn(LogMsgServiceRejected, "op", op, "status", status, "error", err)
	respondJSON(w, status, ErrorResponse{Error: message, Detail: err.Error()})
}
