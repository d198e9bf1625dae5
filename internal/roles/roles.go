// Package roles resolves a user's effective role within a room and
// gates mutating operations on it.
package roles

import "github.com/DHYEY166/teamflow-enterprise/internal/models"

// Effective resolves the room role for a user. Users not found among
// the room's members fall back to guest, the most restrictive role.
// Callers must resolve on every access; roles are never cached across
// a room switch.
func Effective(room models.Room, userID string) models.RoomRole {
	for _, m := range room.Members {
		if m.ID == userID {
			return m.RoomRole
		}
	}
	return models.RoomRoleGuest
}

// CanPost reports whether the role may send messages. Guests read all
// room content but never write.
func CanPost(role models.RoomRole) bool {
	return role == models.RoomRoleAdmin || role == models.RoomRoleMember
}

// CanManageTasks reports whether the role may create or modify tasks.
func CanManageTasks(role models.RoomRole) bool {
	return role == models.RoomRoleAdmin || role == models.RoomRoleMember
}

// CanManageResources reports whether the role may add or remove resources.
func CanManageResources(role models.RoomRole) bool {
	return role == models.RoomRoleAdmin || role == models.RoomRoleMember
}

// CanManageMembers reports whether the role may add or remove room
// members.
func CanManageMembers(role models.RoomRole) bool {
	return role == models.RoomRoleAdmin
}
