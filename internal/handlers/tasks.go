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

type CreateTaskRequest struct {
	Title       string `json:"title"`
	Assignee    string `json:"assignee"`
	Deadline    string `json:"deadline"`
	Description string `json:"description"`
}

type UpdateTaskStatusRequest struct {
	Status string `json:"status"`
}

// CreateTask handles POST /rooms/{roomID}/tasks.
func (h *Handler) CreateTask(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	if !h.requireRole(w, r, roomID, roles.CanManageTasks) {
		return
	}

	var req CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Title = strings.TrimSpace(req.Title)
	if req.Title == "" {
		h.Error(w, http.StatusBadRequest, "title is required")
		return
	}

	task := models.Task{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Assignee:    req.Assignee,
		Status:      models.TaskPending,
		Deadline:    req.Deadline,
		Description: req.Description,
	}
	if err := h.store.AddTask(roomID, task); err != nil {
		h.storeError(w, err)
		return
	}
	h.JSON(w, http.StatusCreated, task)
}

// UpdateTaskStatus handles PATCH /rooms/{roomID}/tasks/{taskID}. Status
// is the only task field mutable post-creation.
func (h *Handler) UpdateTaskStatus(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	if !h.requireRole(w, r, roomID, roles.CanManageTasks) {
		return
	}

	var req UpdateTaskStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	status := models.TaskStatus(req.Status)
	switch status {
	case models.TaskPending, models.TaskInProgress, models.TaskCompleted:
	default:
		h.Error(w, http.StatusBadRequest, "status must be pending, in-progress or completed")
		return
	}

	if err := h.store.UpdateTaskStatus(roomID, chi.URLParam(r, "taskID"), status); err != nil {
		h.storeError(w, err)
		return
	}
	h.JSON(w, http.StatusOK, map[string]string{"status": string(status)})
}
