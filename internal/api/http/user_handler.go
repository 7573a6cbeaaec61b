package http

import (
	"net/http"

	"proptrack-backend/internal/service"
)

type UserHandler struct {
	userSvc service.UserService
}

func NewUserHandler(userSvc service.UserService) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFrom(r)
	if !ok {
		respondJSON(w, http.StatusUnauthorized, errorResponse{Kind: "unauthorized", Message: "missing actor"})
		return
	}

	user, err := h.userSvc.GetProfile(r.Context(), actor)
	if err != nil {
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, user)
}
