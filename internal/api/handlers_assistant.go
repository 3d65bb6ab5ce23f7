package api

import (
	"encoding/json"
	"net/http"

	"github.com/studyhall/studyhall-server/internal/api/respond"
	"github.com/studyhall/studyhall-server/internal/api/validate"
	"github.com/studyhall/studyhall-server/internal/services"
)

type AssistantHandler struct {
	svc *services.AssistantService
}

func NewAssistantHandler(svc *services.AssistantService) *AssistantHandler {
	return &AssistantHandler{svc: svc}
}

// Status reports whether AI features are usable and which backend
// serves them.
func (h *AssistantHandler) Status(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, h.svc.Status())
}

func (h *AssistantHandler) Chat(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID         int64  `json:"userId"`
		Message        string `json:"message"`
		ConversationID *int64 `json:"conversationId,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.UserID <= 0 || in.Message == "" {
		respond.WriteBadRequest(w, "User ID and message are required")
		return
	}

	res, err := h.svc.Chat(r.Context(), in.UserID, in.ConversationID, in.Message)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, res)
}

func (h *AssistantHandler) Summarize(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID     int64  `json:"userId"`
		MaterialID int64  `json:"materialId"`
		Content    string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.UserID <= 0 || in.MaterialID <= 0 || in.Content == "" {
		respond.WriteBadRequest(w, "User ID, material ID, and content are required")
		return
	}

	sum, err := h.svc.Summarize(r.Context(), in.UserID, in.MaterialID, in.Content)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, sum)
}

func (h *AssistantHandler) GenerateFlashcards(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID     int64  `json:"userId"`
		MaterialID *int64 `json:"materialId,omitempty"`
		Topic      string `json:"topic"`
		Count      int    `json:"count"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.UserID <= 0 || in.Topic == "" {
		respond.WriteBadRequest(w, "User ID and topic are required")
		return
	}
	if in.MaterialID != nil {
		if err := validate.PositiveID("materialId", *in.MaterialID); err != nil {
			respond.WriteBadRequest(w, err.Error())
			return
		}
	}

	cards, err := h.svc.GenerateFlashcards(r.Context(), in.UserID, in.MaterialID, in.Topic, in.Count)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, cards)
}

func (h *AssistantHandler) GenerateStudyPlan(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID       int64    `json:"userId"`
		Topics       []string `json:"topics"`
		DurationDays int      `json:"durationDays"`
		HoursPerDay  int      `json:"hoursPerDay"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.UserID <= 0 || len(in.Topics) == 0 || in.DurationDays <= 0 || in.HoursPerDay <= 0 {
		respond.WriteBadRequest(w, "User ID, topics, duration days, and hours per day are required")
		return
	}

	sessions, err := h.svc.GenerateStudyPlan(r.Context(), in.UserID, in.Topics, in.DurationDays, in.HoursPerDay)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, sessions)
}
