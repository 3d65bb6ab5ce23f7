package api

import (
	"net/http"

	"github.com/studyhall/studyhall-server/internal/api/respond"
	"github.com/studyhall/studyhall-server/internal/model"
	"github.com/studyhall/studyhall-server/internal/services"
)

type UserHandler struct {
	svc *services.UserService
}

func NewUserHandler(svc *services.UserService) *UserHandler { return &UserHandler{svc: svc} }

// userProfile is userPayload plus the earned badges.
type userProfile struct {
	userPayload
	Badges []*model.Badge `json:"badges"`
}

// GetUser returns the profile with badges; password is stripped.
func (h *UserHandler) GetUser(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}

	u, err := h.svc.GetUser(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	badges, err := h.svc.GetUserBadges(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if badges == nil {
		badges = []*model.Badge{}
	}
	respond.WriteJSON(w, http.StatusOK, userProfile{userPayload: toUserPayload(u), Badges: badges})
}
