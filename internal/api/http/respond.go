package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"proptrack-backend/internal/domain"
	"proptrack-backend/internal/logger"
)

type errorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// respondError maps the domain error taxonomy onto HTTP statuses. The kind
// is always forwarded so clients can branch on it rather than on message
// text.
func respondError(w http.ResponseWriter, err error) {
	kind := domain.KindOf(err)

	var status int
	switch kind {
	case domain.KindNotFound:
		status = http.StatusNotFound
	case domain.KindForbidden:
		status = http.StatusForbidden
	case domain.KindInvalidTransition, domain.KindConflict:
		status = http.StatusConflict
	case domain.KindPreconditionFailed:
		status = http.StatusPreconditionFailed
	case domain.KindValidation:
		status = http.StatusBadRequest
	default:
		logger.Error("Unhandled internal error", "error", err)
		respondJSON(w, http.StatusInternalServerError, errorResponse{
			Kind:    "internal",
			Message: "internal server error",
		})
		return
	}

	var de *domain.Error
	message := err.Error()
	if errors.As(err, &de) {
		message = de.Message
	}
	respondJSON(w, status, errorResponse{Kind: string(kind), Message: message})
}
