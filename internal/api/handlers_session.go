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

type SessionHandler struct {
	svc *services.SessionService
}

func NewSessionHandler(svc *services.SessionService) *SessionHandler {
	return &SessionHandler{svc: svc}
}

func (h *SessionHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	sessions, err := h.svc.ListSessions(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if sessions == nil {
		sessions = []*model.StudySession{}
	}
	respond.WriteJSON(w, http.StatusOK, sessions)
}

func (h *SessionHandler) ListUpcomingSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	sessions, err := h.svc.ListUpcomingSessions(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if sessions == nil {
		sessions = []*model.StudySession{}
	}
	respond.WriteJSON(w, http.StatusOK, sessions)
}

func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID    int64     `json:"userId"`
		Title     string    `json:"title"`
		Subject   string    `json:"subject"`
		StartTime time.Time `json:"startTime"`
		EndTime   time.Time `json:"endTime"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.PositiveID("userId", in.UserID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.CreateSession(in.Title, in.Subject); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	sess, err := h.svc.CreateSession(r.Context(), &model.StudySession{
		UserID:    in.UserID,
		Title:     in.Title,
		Subject:   in.Subject,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, sess)
}

func (h *SessionHandler) UpdateSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in struct {
		Title       *string    `json:"title,omitempty"`
		Subject     *string    `json:"subject,omitempty"`
		StartTime   *time.Time `json:"startTime,omitempty"`
		EndTime     *time.Time `json:"endTime,omitempty"`
		IsCompleted *bool      `json:"isCompleted,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}

	sess, err := h.svc.UpdateSession(r.Context(), id, model.SessionPatch{
		Title:       in.Title,
		Subject:     in.Subject,
		StartTime:   in.StartTime,
		EndTime:     in.EndTime,
		IsCompleted: in.IsCompleted,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, sess)
}

func (h *SessionHandler) DeleteSession(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteSession(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
