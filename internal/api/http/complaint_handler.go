package http

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"proptrack-backend/internal/access"
	"proptrack-backend/internal/domain"
	"proptrack-backend/internal/service"
)

// ComplaintHandler exposes the complaint resolution workflow over HTTP.
type ComplaintHandler struct {
	complaintSvc service.ComplaintService
}

func NewComplaintHandler(complaintSvc service.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{complaintSvc: complaintSvc}
}

// complaintResponse augments the persisted record with the derived
// 4-valued display status so clients never re-derive it from the raw flags.
type complaintResponse struct {
	*domain.Complaint
	DisplayStatus           domain.ComplaintDisplayStatus `json:"display_status"`
	NeedsRenterConfirmation bool                          `json:"needs_renter_confirmation"`
}

func newComplaintResponse(c *domain.Complaint) complaintResponse {
	return complaintResponse{
		Complaint:               c,
		DisplayStatus:           c.DisplayStatus(),
		NeedsRenterConfirmation: c.NeedsRenterConfirmation(),
	}
}

func newComplaintListResponse(complaints []domain.Complaint) []complaintResponse {
	out := make([]complaintResponse, 0, len(complaints))
	for i := range complaints {
		out = append(out, newComplaintResponse(&complaints[i]))
	}
	return out
}

type createComplaintRequest struct {
	ApartmentID int32  `json:"apartment_id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Category    string `json:"category"`
	Priority    string `json:"priority"`
}

func (h *ComplaintHandler) Create(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Kind: "unauthorized", Message: "missing actor"})
		return
	}

	var req createComplaintRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, domain.ValidationError("invalid request body"))
		return
	}

	complaint, err := h.complaintSvc.Create(r.Context(), actor, req.ApartmentID, req.Title, req.Description,
		domain.ComplaintCategory(req.Category), domain.ComplaintPriority(req.Priority))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, newComplaintResponse(complaint))
}

func (h *ComplaintHandler) Get(w http.ResponseWriter, r *http.Request) {
	h.single(w, r, h.complaintSvc.Get)
}

func (h *ComplaintHandler) Start(w http.ResponseWriter, r *http.Request) {
	h.single(w, r, h.complaintSvc.Start)
}

func (h *ComplaintHandler) ManagerMarkResolved(w http.ResponseWriter, r *http.Request) {
	h.single(w, r, h.complaintSvc.ManagerMarkResolved)
}

func (h *ComplaintHandler) RenterConfirmResolution(w http.ResponseWriter, r *http.Request) {
	h.single(w, r, h.complaintSvc.RenterConfirmResolution)
}

func (h *ComplaintHandler) RenterDirectResolve(w http.ResponseWriter, r *http.Request) {
	h.single(w, r, h.complaintSvc.RenterDirectResolve)
}

func (h *ComplaintHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

	if err := h.complaintSvc.Delete(r.Context(), actor, id); err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}

func (h *ComplaintHandler) ListMine(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Kind: "unauthorized", Message: "missing actor"})
		return
	}

	complaints, err := h.complaintSvc.ListMine(r.Context(), actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newComplaintListResponse(complaints))
}

func (h *ComplaintHandler) ListByBuilding(w http.ResponseWriter, r *http.Request) {
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

	var statuses []domain.ComplaintStatus
	if s := r.URL.Query().Get("status"); s != "" {
		statuses = []domain.ComplaintStatus{domain.ComplaintStatus(s)}
	}

	complaints, err := h.complaintSvc.ListByBuilding(r.Context(), actor, buildingID, statuses)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newComplaintListResponse(complaints))
}

type complaintAction func(ctx context.Context, actor access.Actor, id int32) (*domain.Complaint, error)

func (h *ComplaintHandler) single(w http.ResponseWriter, r *http.Request, op complaintAction) {
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

	complaint, err := op(r.Context(), actor, id)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, newComplaintResponse(complaint))
}

func pathID(r *http.Request, name string) (int32, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 32)
	if err != nil || id <= 0 {
		return 0, domain.ValidationError("invalid id: %q", raw)
	}
	return int32(id), nil
}
