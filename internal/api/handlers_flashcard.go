package api

import (
	"encoding/json"
	"net/http"

	"github.com/studyhall/studyhall-server/internal/api/respond"
	"github.com/studyhall/studyhall-server/internal/api/validate"
	"github.com/studyhall/studyhall-server/internal/model"
	"github.com/studyhall/studyhall-server/internal/services"
)

type FlashcardHandler struct {
	svc *services.FlashcardService
}

func NewFlashcardHandler(svc *services.FlashcardService) *FlashcardHandler {
	return &FlashcardHandler{svc: svc}
}

func (h *FlashcardHandler) ListFlashcards(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	cards, err := h.svc.ListFlashcards(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if cards == nil {
		cards = []*model.Flashcard{}
	}
	respond.WriteJSON(w, http.StatusOK, cards)
}

func (h *FlashcardHandler) ListFlashcardsByMaterial(w http.ResponseWriter, r *http.Request) {
	materialID, ok := pathID(w, r, "materialId")
	if !ok {
		return
	}
	cards, err := h.svc.ListFlashcardsByMaterial(r.Context(), materialID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if cards == nil {
		cards = []*model.Flashcard{}
	}
	respond.WriteJSON(w, http.StatusOK, cards)
}

func (h *FlashcardHandler) CreateFlashcard(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID     int64  `json:"userId"`
		MaterialID *int64 `json:"materialId,omitempty"`
		Question   string `json:"question"`
		Answer     string `json:"answer"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.PositiveID("userId", in.UserID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.CreateFlashcard(in.Question, in.Answer); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	card, err := h.svc.CreateFlashcard(r.Context(), &model.Flashcard{
		UserID:     in.UserID,
		MaterialID: in.MaterialID,
		Question:   in.Question,
		Answer:     in.Answer,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, card)
}

func (h *FlashcardHandler) DeleteFlashcard(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteFlashcard(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
