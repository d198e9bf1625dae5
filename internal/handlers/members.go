package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/DHYEY166/teamflow-enterprise/internal/models"
	"github.com/DHYEY166/teamflow-enterprise/internal/roles"
)

type AddMemberRequest struct {
	MemberID string `json:"member_id"`
	RoomRole string `json:"room_role"`
}

type UpdatePresenceRequest struct {
	Status string `json:"status"`
}

// ListMembers handles GET /members.
func (h *Handler) ListMembers(w http.ResponseWriter, r *http.Request) {
	h.JSON(w, http.StatusOK, h.store.Members())
}

// AddMember handles POST /rooms/{roomID}/members. Admin only.
func (h *Handler) AddMember(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	if !h.requireRole(w, r, roomID, roles.CanManageMembers) {
		return
	}

	var req AddMemberRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if req.MemberID == "" {
		h.Error(w, http.StatusBadRequest, "member_id is required")
		return
	}

	role := models.RoomRole(strings.ToLower(req.RoomRole))
	switch role {
	case models.RoomRoleMember, models.RoomRoleGuest:
	case "":
		role = models.RoomRoleMember
	default:
		h.Error(w, http.StatusBadRequest, "room_role must be member or guest")
		return
	}

	if err := h.store.AddMember(roomID, req.MemberID, role); err != nil {
		h.storeError(w, err)
		return
	}
	h.JSON(w, http.StatusCreated, map[string]string{"member_id": req.MemberID, "room_role": string(role)})
}

// RemoveMember handles DELETE /rooms/{roomID}/members/{memberID}. Admin
// only; the store refuses to remove the room admin through this path.
func (h *Handler) RemoveMember(w http.ResponseWriter, r *http.Request) {
	roomID := chi.URLParam(r, "roomID")
	if !h.requireRole(w, r, roomID, roles.CanManageMembers) {
		return
	}
	if err := h.store.RemoveMember(roomID, chi.URLParam(r, "memberID")); err != nil {
		h.storeError(w, err)
		return
	}
	h.JSON(w, http.StatusOK, map[string]string{"status": "removed"})
}

// UpdatePresence handles PATCH /members/{memberID}/presence. Members
// set their own presence; unlike collaborator updates, "typing" is a
// valid self-reported state.
func (h *Handler) UpdatePresence(w http.ResponseWriter, r *http.Request) {
	memberID := chi.URLParam(r, "memberID")
	if callerID(r) != memberID {
		h.Error(w, http.StatusForbidden, "members may only update their own presence")
		return
	}

	var req UpdatePresenceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.Error(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	status := models.Presence(strings.ToLower(strings.TrimSpace(req.Status)))
	switch status {
	case models.PresenceOnline, models.PresenceOffline, models.PresenceIdle, models.PresenceTyping:
	default:
		h.Error(w, http.StatusBadRequest, "status must be online, offline, idle or typing")
		return
	}

	if err := h.store.UpdateMemberPresence(memberID, status); err != nil {
		h.storeError(w, err)
		return
	}
	h.JSON(w, http.StatusOK, map[string]string{"status": string(status)})
}
