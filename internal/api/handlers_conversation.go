package api

import (
	"encoding/json"
	"net/http"

	"github.com/studyhall/studyhall-server/internal/api/respond"
	"github.com/studyhall/studyhall-server/internal/api/validate"
	"github.com/studyhall/studyhall-server/internal/model"
	"github.com/studyhall/studyhall-server/internal/services"
)

type ConversationHandler struct {
	svc *services.ConversationService
}

func NewConversationHandler(svc *services.ConversationService) *ConversationHandler {
	return &ConversationHandler{svc: svc}
}

func (h *ConversationHandler) ListConversations(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	convs, err := h.svc.ListConversations(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if convs == nil {
		convs = []*model.Conversation{}
	}
	respond.WriteJSON(w, http.StatusOK, convs)
}

func (h *ConversationHandler) CreateConversation(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID   int64               `json:"userId"`
		Messages []model.ChatMessage `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.PositiveID("userId", in.UserID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	conv, err := h.svc.CreateConversation(r.Context(), &model.Conversation{
		UserID:   in.UserID,
		Messages: in.Messages,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, conv)
}

// UpdateConversation replaces the whole transcript.
func (h *ConversationHandler) UpdateConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in struct {
		Messages []model.ChatMessage `json:"messages"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}

	conv, err := h.svc.UpdateMessages(r.Context(), id, in.Messages)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, conv)
}

func (h *ConversationHandler) DeleteConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteConversation(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
