package api

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/udisondev/hunters/internal/model"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields,omitempty"`
}

// Client-facing error messages. Internal error details are logged, not returned.
const (
	ErrMsgInvalidRequest     = "Invalid request body"
	ErrMsgNotFound           = "Not found"
	ErrMsgInsufficient       = "Not enough items"
	ErrMsgRequirementMissing = "Missing a required item"
	ErrMsgNoSelection        = "No item selected"
	ErrMsgInvalidAction      = "That item can't be used like that"
	ErrMsgUnauthorized       = "Unauthorized"
	ErrMsgInternal           = "Something went wrong"
	ErrMsgInvalidInstanceID  = "Invalid encounter id"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		slog.Error("encoding JSON response", "error", err)
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// mapError converts domain errors into HTTP status codes and client messages.
func mapError(err error) (int, string) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound, ErrMsgNotFound
	case errors.Is(err, model.ErrInsufficientQuantity):
		return http.StatusConflict, ErrMsgInsufficient
	case errors.Is(err, model.ErrRequirementMissing):
		return http.StatusUnprocessableEntity, ErrMsgRequirementMissing
	case errors.Is(err, model.ErrNoSelection):
		return http.StatusConflict, ErrMsgNoSelection
	case errors.Is(err, model.ErrInvalidAction):
		return http.StatusUnprocessableEntity, ErrMsgInvalidAction
	default:
		return http.StatusInternalServerError, ErrMsgInternal
	}
}

func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := mapError(err)
	log := loggerFor(r)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "path", r.URL.Path, "error", err)
	} else {
		log.Debug("request rejected", "path", r.URL.Path, "status", status, "error", err)
	}
	// requirement errors carry the missing item name, which the player needs to see
	if errors.Is(err, model.ErrRequirementMissing) {
		msg = err.Error()
	}
	respondError(w, status, msg)
}
