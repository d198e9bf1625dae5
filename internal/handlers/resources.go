package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/DHYEY166/teamflow-enterprise/internal/models"
	"github.com/DHYEY166/teamflow-enterprise/internal/roles"
)

type AddResourceRequest struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// AddResource handles POST /rooms/{roomID}/resources.
func (h *Handler) AddResource(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	if !h.requireRole(w, r, roomID, roles.CanManageResources) {
		return
	}

	var req AddResourceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" || req.URL == "" {
		h.Error(w, http.StatusBadRequest, "title and url are required")
		return
	}
	if req.Category == "" {
		req.Category = "General"
	}

	res := models.Resource{
		ID:       uuid.New().String(),
		Title:    req.Title,
		URL:      req.URL,
		Category: req.Category,
	}
	if err := h.engine.LinkResource(roomID, res); err != nil {
		h.storeError(w, err)
		return
	}
	h.JSON(w, http.StatusCreated, res)
}

// RemoveResource handles DELETE /rooms/{roomID}/resources/{resourceID}.
func (h *Handler) RemoveResource(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	if !h.requireRole(w, r, roomID, roles.CanManageResources) {
		return
	}
	if err := h.engine.UnlinkResource(roomID, chi.URLParam(r, "resourceID")); err != nil {
		h.storeError(w, err)
		return
	}
	h.JSON(w, http.StatusOK, map[string]string{"status": "removed"})
}
