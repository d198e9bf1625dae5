package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/DHYEY166/teamflow-enterprise/internal/engine"
	"github.com/DHYEY166/teamflow-enterprise/internal/storage"
)

// Handler contains shared dependencies for all HTTP handlers.
type Handler struct {
	store  storage.Store
	engine *engine.Engine
	logger *zap.Logger
}

func NewHandler(store storage.Store, eng *engine.Engine, logger *zap.Logger) *Handler {
	return &Handler{store: store, engine: eng, logger: logger}
}

// JSON sends a JSON response with the given status code.
func (h *Handler) JSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// Error sends a JSON error response with the given status code.
func (h *Handler) Error(w http.ResponseWriter, status int, message string) {
	h.JSON(w, status, map[string]string{"error": message})
}

// callerID identifies the requesting user. Authentication proper is out
// of scope; the surrounding deployment is trusted to set the header.
func callerID(r *http.Request) string {
	return strings.TrimSpace(r.Header.Get("X-User-ID"))
}

// storeError maps store and engine sentinel errors onto HTTP statuses.
func (h *Handler) storeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, storage.ErrRoomNotFound),
		errors.Is(err, storage.ErrMemberNotFound),
		errors.Is(err, storage.ErrTaskNotFound),
		errors.Is(err, storage.ErrResourceNotFound),
		errors.Is(err, storage.ErrMessageNotFound):
		h.Error(w, http.StatusNotFound, err.Error())
	case errors.Is(err, storage.ErrDuplicateID),
		errors.Is(err, storage.ErrAlreadyMember),
		errors.Is(err, storage.ErrAdminSelfRemove):
		h.Error(w, http.StatusConflict, err.Error())
	case errors.Is(err, engine.ErrPermissionDenied):
		h.Error(w, http.StatusForbidden, "access denied")
	default:
		h.Error(w, http.StatusInternalServerError, "internal error")
	}
}

// Health reports service liveness.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
