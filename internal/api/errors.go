package api

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/studyhall/studyhall-server/internal/ai"
	"github.com/studyhall/studyhall-server/internal/api/respond"
	"github.com/studyhall/studyhall-server/internal/model"
	"github.com/studyhall/studyhall-server/internal/services"
)

// writeServiceError maps service-layer errors onto HTTP statuses. The
// sentinel wrapping convention means one errors.Is per class is enough.
func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, model.ErrNotFound):
		respond.WriteNotFound(w, err.Error())
	case errors.Is(err, model.ErrValidation):
		respond.WriteBadRequest(w, err.Error())
	case errors.Is(err, model.ErrConflict):
		respond.WriteConflict(w, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		respond.WriteUnauthorized(w, "Invalid credentials")
	case errors.Is(err, ai.ErrNoBackend):
		respond.WriteServiceUnavailable(w, "No AI service is configured")
	default:
		respond.WriteInternalError(w, err.Error())
	}
}

// pathID extracts a positive int64 path variable, writing a 400 itself
// when the value is missing or malformed.
func pathID(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respond.WriteBadRequest(w, name+" must be a positive integer")
		return 0, false
	}
	return id, true
}
