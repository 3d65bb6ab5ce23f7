package api

import (
	"encoding/json"
	"net/http"

	"github.com/studyhall/studyhall-server/internal/api/respond"
	"github.com/studyhall/studyhall-server/internal/api/validate"
	"github.com/studyhall/studyhall-server/internal/model"
	"github.com/studyhall/studyhall-server/internal/services"
)

type SummaryHandler struct {
	svc *services.SummaryService
}

func NewSummaryHandler(svc *services.SummaryService) *SummaryHandler {
	return &SummaryHandler{svc: svc}
}

func (h *SummaryHandler) CreateSummary(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID     int64  `json:"userId"`
		MaterialID int64  `json:"materialId"`
		Content    string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if err := validate.PositiveID("userId", in.UserID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.PositiveID("materialId", in.MaterialID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.NonEmpty("content", in.Content); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	sum, err := h.svc.CreateSummary(r.Context(), &model.MaterialSummary{
		UserID:     in.UserID,
		MaterialID: in.MaterialID,
		Content:    in.Content,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, sum)
}

func (h *SummaryHandler) ListSummariesByMaterial(w http.ResponseWriter, r *http.Request) {
	materialID, ok := pathID(w, r, "materialId")
	if !ok {
		return
	}
	summaries, err := h.svc.ListSummariesByMaterial(r.Context(), materialID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if summaries == nil {
		summaries = []*model.MaterialSummary{}
	}
	respond.WriteJSON(w, http.StatusOK, summaries)
}
