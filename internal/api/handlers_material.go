package api

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"time"

	"github.com/studyhall/studyhall-server/internal/api/respond"
	"github.com/studyhall/studyhall-server/internal/api/validate"
	"github.com/studyhall/studyhall-server/internal/model"
	"github.com/studyhall/studyhall-server/internal/services"
)

type MaterialHandler struct {
	svc   *services.MaterialService
	files *FileStore
}

func NewMaterialHandler(svc *services.MaterialService, files *FileStore) *MaterialHandler {
	return &MaterialHandler{svc: svc, files: files}
}

func (h *MaterialHandler) ListMaterials(w http.ResponseWriter, r *http.Request) {
	userID, ok := pathID(w, r, "userId")
	if !ok {
		return
	}
	materials, err := h.svc.ListMaterials(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if materials == nil {
		materials = []*model.StudyMaterial{}
	}
	respond.WriteJSON(w, http.StatusOK, materials)
}

func (h *MaterialHandler) GetMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	m, err := h.svc.GetMaterial(r.Context(), id)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, m)
}

// CreateMaterial accepts the file as a base64 string, stores it on disk
// and records the material row pointing at the stored path.
func (h *MaterialHandler) CreateMaterial(w http.ResponseWriter, r *http.Request) {
	var in struct {
		UserID      int64   `json:"userId"`
		Title       string  `json:"title"`
		Description *string `json:"description,omitempty"`
		FileType    string  `json:"fileType"`
		File        string  `json:"file"`
		Progress    int     `json:"progress"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}
	if in.File == "" {
		respond.WriteBadRequest(w, "No file uploaded")
		return
	}
	if err := validate.PositiveID("userId", in.UserID); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	if err := validate.CreateMaterial(in.Title, in.Description, in.Progress); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}

	content, err := base64.StdEncoding.DecodeString(in.File)
	if err != nil {
		respond.WriteBadRequest(w, "file must be base64 encoded")
		return
	}
	filePath, err := h.files.Save(content, in.Title)
	if err != nil {
		respond.WriteInternalError(w, err.Error())
		return
	}

	fileType := in.FileType
	if fileType == "" {
		fileType = "pdf"
	}
	m, err := h.svc.CreateMaterial(r.Context(), &model.StudyMaterial{
		UserID:      in.UserID,
		Title:       in.Title,
		Description: in.Description,
		FileType:    fileType,
		FilePath:    filePath,
		Progress:    in.Progress,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, m)
}

func (h *MaterialHandler) UpdateMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	var in struct {
		Title       *string    `json:"title,omitempty"`
		Description *string    `json:"description,omitempty"`
		Progress    *int       `json:"progress,omitempty"`
		LastViewed  *time.Time `json:"lastViewed,omitempty"`
	}
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respond.WriteBadRequest(w, "invalid json")
		return
	}

	m, err := h.svc.UpdateMaterial(r.Context(), id, model.MaterialPatch{
		Title:       in.Title,
		Description: in.Description,
		Progress:    in.Progress,
		LastViewed:  in.LastViewed,
	})
	if err != nil {
		writeServiceError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, m)
}

func (h *MaterialHandler) DeleteMaterial(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "id")
	if !ok {
		return
	}
	if err := h.svc.DeleteMaterial(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
