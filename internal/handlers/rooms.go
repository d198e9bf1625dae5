package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DHYEY166/teamflow-enterprise/internal/models"
	"github.com/DHYEY166/teamflow-enterprise/internal/presence"
	"github.com/DHYEY166/teamflow-enterprise/internal/roles"
)

// RoomSummary is the list view of a room.
type RoomSummary struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	AdminID     string `json:"admin_id"`
	Members     int    `json:"members"`
	Messages    int    `json:"messages"`
}

// TaskView is a task annotated with its read-time assignee resolution.
type TaskView struct {
	models.Task
	AssigneeRef presence.AssigneeRef `json:"assignee_ref"`
}

// RoomView is the detail view of a room.
type RoomView struct {
	models.Room
	Tasks      []TaskView      `json:"tasks"`
	CallerRole models.RoomRole `json:"caller_role"`
}

type CreateRoomRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

type SendMessageRequest struct {
	Content string `json:"content"`
}

// ListRooms handles GET /rooms.
func (h *Handler) ListRooms(w http.ResponseWriter, r *http.Request) {
	rooms := h.store.Rooms()
	out := make([]RoomSummary, 0, len(rooms))
	for _, room := range rooms {
		out = append(out, RoomSummary{
			ID:          room.ID,
			Name:        room.Name,
			Description: room.Description,
			AdminID:     room.AdminID,
			Members:     len(room.Members),
			Messages:    len(room.Messages),
		})
	}
	h.JSON(w, http.StatusOK, out)
}

// CreateRoom handles POST /rooms. The creator becomes the room admin
// and its first member.
func (h *Handler) CreateRoom(w http.ResponseWriter, r *http.Request) {
	caller := callerID(r)
	if caller == "" {
		h.Error(w, http.StatusUnauthorized, "X-User-ID header required")
		return
	}

	var req CreateRoomRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		h.Error(w, http.StatusBadRequest, "name is required")
		return
	}

	creator, err := h.store.Member(caller)
	if err != nil {
		h.storeError(w, err)
		return
	}

	room := models.Room{
		ID:          uuid.New().String(),
		Name:        req.Name,
		Description: req.Description,
		AdminID:     creator.ID,
		Members:     []models.RoomMember{{Member: creator, RoomRole: models.RoomRoleAdmin}},
	}
	if err := h.store.CreateRoom(room); err != nil {
		h.storeError(w, err)
		return
	}

	h.logger.Info("Room created",
		zap.String("room_id", room.ID),
		zap.String("name", room.Name),
		zap.String("admin_id", creator.ID))
	h.JSON(w, http.StatusCreated, room)
}

// GetRoom handles GET /rooms/{roomID}. Tasks carry their read-time
// assignee resolution; the caller's role is recomputed per request.
func (h *Handler) GetRoom(w http.ResponseWriter, r *http.Request) {
	room, err := h.store.Room(chi.URLParam(r, "roomID"))
	if err != nil {
		h.storeError(w, err)
		return
	}

	members := h.store.Members()
	tasks := make([]TaskView, 0, len(room.Tasks))
	for _, t := range room.Tasks {
		tasks = append(tasks, TaskView{
			Task:        t,
			AssigneeRef: presence.ResolveAssignee(members, t.Assignee),
		})
	}

	h.JSON(w, http.StatusOK, RoomView{
		Room:       room,
		Tasks:      tasks,
		CallerRole: roles.Effective(room, callerID(r)),
	})
}

// SendMessage handles POST /rooms/{roomID}/messages. The engine owns
// role gating, the collaborator round-trip and reconciliation.
func (h *Handler) SendMessage(w http.ResponseWriter, r *http.Request) {
	caller := callerID(r)
	if caller == "" {
		h.Error(w, http.StatusUnauthorized, "X-User-ID header required")
		return
	}

	var req SendMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if strings.TrimSpace(req.Content) == "" {
		h.Error(w, http.StatusBadRequest, "content is required")
		return
	}

	msg, err := h.engine.SendMessage(r.Context(), chi.URLParam(r, "roomID"), caller, req.Content)
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.JSON(w, http.StatusAccepted, msg)
}

// Summarize handles POST /rooms/{roomID}/summarize.
func (h *Handler) Summarize(w http.ResponseWriter, r *http.Request) {
	summary, err := h.engine.Summarize(r.Context(), chi.URLParam(r, "roomID"))
	if err != nil {
		h.storeError(w, err)
		return
	}
	h.JSON(w, http.StatusOK, map[string]string{"summary": summary})
}

// TogglePin handles POST /rooms/{roomID}/pins/{messageID}.
func (h *Handler) TogglePin(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	if !h.requireRole(w, r, roomID, roles.CanManageTasks) {
		return
	}
	if err := h.store.TogglePin(roomID, chi.URLParam(r, "messageID")); err != nil {
		h.storeError(w, err)
		return
	}
	h.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ClearHistory handles DELETE /rooms/{roomID}/messages. Admin only; the
// message sequence is replaced wholesale.
func (h *Handler) ClearHistory(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	if !h.requireRole(w, r, roomID, roles.CanManageMembers) {
		return
	}
	if err := h.store.ClearHistory(roomID); err != nil {
		h.storeError(w, err)
		return
	}
	h.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// requireRole resolves the caller's effective role in the room and
// rejects the request unless the predicate allows it. Resolution
// happens on every call, never cached.
func (h *Handler) requireRole(w http.ResponseWriter, r *http.Request, roomID string, allowed func(models.RoomRole) bool) bool {
	room, err := h.store.Room(roomID)
	if err != nil {
		h.storeError(w, err)
		return false
	}
	if !allowed(roles.Effective(room, callerID(r))) {
		h.Error(w, http.StatusForbidden, "access denied")
		return false
	}
	return true
}
