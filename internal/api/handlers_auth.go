package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/studyhall/studyhall-server/internal/api/respond"
	"github.com/studyhall/studyhall-server/internal/api/validate"
	"github.com/studyhall/studyhall-server/internal/model"
	"github.com/studyhall/studyhall-server/internal/services"
)

// userPayload is the outward shape of an account. Password never leaves
// the server.
type userPayload struct {
	ID             int64     `json:"id"`
	Username       string    `json:"username"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Level          int       `json:"level"`
	XP             int       `json:"xp"`
	TotalStudyTime int       `json:"totalStudyTime"`
	CreatedAt      time.Time `json:"createdAt"`
}

func toUserPayload(u *model.User) userPayload {
	return userPayload{
		ID:             u.ID,
		Username:       u.Username,
		Name:           u.Name,
		Email:          u.Email,
		Level:          u.Level,
		XP:             u.XP,
		TotalStudyTime: u.TotalStudyTime,
		CreatedAt:      u.CreatedAt,
	}
}

type AuthHandler struct {
	svc *services.UserService
}

func NewAuthHandler(svc *services.UserService) *AuthHandler { return &AuthHandler{svc: svc} }

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
		Name     string `json:"name"`
		Email    string `json:"email"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.RegisterUser(in.Username, in.Password, in.Email, &in.Name); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	u, err := h.svc.Register(r.Context(), &model.User{
		Username: in.Username,
		Password: in.Password,
		Name:     in.Name,
		Email:    in.Email,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, map[string]any{"user": toUserPayload(u)})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}

	u, err := h.svc.Login(r.Context(), in.Username, in.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, map[string]any{"user": toUserPayload(u)})
}
