package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/verification-api/internal/domain"
)

// ResultEnvelope is the response wrapper for every endpoint. Verified is a
// pointer so it only appears on verify operations.
type ResultEnvelope struct {
	Success  bool   `json:"success"`
	Verified *bool  `json:"verified,omitempty"`
	Message  string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ResultEnvelope{Message: msg})
}

// httpError maps domain errors onto the envelope contract. Verify failures
// carry verified:false; everything unexpected stays a generic 500.
func httpError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrCodeNotFound),
		errors.Is(err, domain.ErrCodeExpired),
		errors.Is(err, domain.ErrCodeMismatch):
		writeJSON(w, http.StatusBadRequest, ResultEnvelope{Verified: boolPtr(false), Message: err.Error()})
	case errors.Is(err, domain.ErrBadRequest), errors.Is(err, domain.ErrUnknownOperation):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrConfiguration), errors.Is(err, domain.ErrDelivery):
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func boolPtr(b bool) *bool { return &b }
