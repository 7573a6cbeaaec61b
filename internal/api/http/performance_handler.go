package http

import (
	"net/http"

	"proptrack-backend/internal/service"
)

// PerformanceHandler serves per-building monthly aggregates.
type PerformanceHandler struct {
	performanceSvc service.PerformanceService
}

func NewPerformanceHandler(performanceSvc service.PerformanceService) *PerformanceHandler {
	return &PerformanceHandler{performanceSvc: performanceSvc}
}

func (h *PerformanceHandler) GetBuildingPerformance(w http.ResponseWriter, r *http.Request) {
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

	stats, err := h.performanceSvc.GetBuildingPerformance(r.Context(), actor, buildingID, r.URL.Query().Get("month"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *PerformanceHandler) GetRentSummary(w http.ResponseWriter, r *http.Request) {
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

	summary, err := h.performanceSvc.GetRentSummary(r.Context(), actor, buildingID, r.URL.Query().Get("month"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, summary)
}
