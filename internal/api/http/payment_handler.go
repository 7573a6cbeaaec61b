package http

import (
	"encoding/json"
	"net/http"

	"proptrack-backend/internal/domain"
	"proptrack-backend/internal/service"
)

// PaymentHandler exposes rent payment lookup and the verification workflow.
type PaymentHandler struct {
	paymentSvc service.PaymentService
}

func NewPaymentHandler(paymentSvc service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentSvc: paymentSvc}
}

type submitClaimRequest struct {
	Method    string `json:"method"`
	Reference string `json:"reference"`
	Channel   string `json:"channel"`
}

type rejectClaimRequest struct {
	Reason string `json:"reason"`
}

type bulkVerifyRequest struct {
	PaymentIDs []int32 `json:"payment_ids"`
}

type bulkVerifyResponse struct {
	VerifiedCount int `json:"verified_count"`
}

func (h *PaymentHandler) Get(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Kind: "unauthorized", Message: "missing actor"})
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	payment, err := h.paymentSvc.Get(r.Context(), actor, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payment)
}

func (h *PaymentHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Kind: "unauthorized", Message: "missing actor"})
		return
	}

	payments, err := h.paymentSvc.ListMine(r.Context(), actor, r.URL.Query().Get("month"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) ListAwaitingVerification(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Kind: "unauthorized", Message: "missing actor"})
		return
	}
	buildingID, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	payments, err := h.paymentSvc.ListAwaitingVerification(r.Context(), actor, buildingID)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, payments)
}

func (h *PaymentHandler) SubmitClaim(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Kind: "unauthorized", Message: "missing actor"})
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req submitClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ValidationError("invalid request body"))
		return
	}

	confirmation, err := h.paymentSvc.SubmitClaim(r.Context(), actor, id, req.Method, req.Reference, req.Channel)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, confirmation)
}

func (h *PaymentHandler) Verify(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Kind: "unauthorized", Message: "missing actor"})
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	confirmation, err := h.paymentSvc.Verify(r.Context(), actor, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, confirmation)
}

func (h *PaymentHandler) Reject(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Kind: "unauthorized", Message: "missing actor"})
		return
	}
	id, err := pathID(r, "id")
	if err != nil {
		respondError(w, err)
		return
	}

	var req rejectClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ValidationError("invalid request body"))
		return
	}

	confirmation, err := h.paymentSvc.Reject(r.Context(), actor, id, req.Reason)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, confirmation)
}

func (h *PaymentHandler) BulkVerify(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Kind: "unauthorized", Message: "missing actor"})
		return
	}

	var req bulkVerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ValidationError("invalid request body"))
		return
	}
	if len(req.PaymentIDs) == 0 {
		respondError(w, domain.ValidationError("payment_ids is required"))
		return
	}

	count, err := h.paymentSvc.BulkVerify(r.Context(), actor, req.PaymentIDs)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, bulkVerifyResponse{VerifiedCount: count})
}
