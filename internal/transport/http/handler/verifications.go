package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/verification-api/internal/application/verification"
	"github.com/verification-api/internal/domain"
)

// VerificationHandler dispatches verification operations by path parameter.
type VerificationHandler struct {
	svc verification.Service
}

func NewVerificationHandler(svc verification.Service) *VerificationHandler {
	return &VerificationHandler{svc: svc}
}

func (h *VerificationHandler) Action(w http.ResponseWriter, r *http.Request) {
	op, err := domain.ParseOperation(chi.URLParam(r, "operation"))
	if err != nil {
		httpError(w, err)
		return
	}

	switch op {
	case domain.OpSendEmailVerification:
		var req verification.SendEmailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := h.svc.SendEmailVerification(r.Context(), req); err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ResultEnvelope{Success: true, Message: "verification email sent"})

	case domain.OpVerifyEmailCode:
		var req verification.VerifyEmailRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := h.svc.VerifyEmailCode(r.Context(), req); err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ResultEnvelope{Success: true, Verified: boolPtr(true), Message: "email verified"})

	case domain.OpSendSMSVerification:
		var req verification.SendSMSRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := h.svc.SendSMSVerification(r.Context(), req); err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ResultEnvelope{Success: true, Message: "verification SMS sent"})

	case domain.OpVerifySMSCode:
		var req verification.VerifySMSRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body")
			return
		}
		if err := h.svc.VerifySMSCode(r.Context(), req); err != nil {
			httpError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, ResultEnvelope{Success: true, Verified: boolPtr(true), Message: "phone verified"})
	}
}
