package roles

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/DHYEY166/teamflow-enterprise/internal/models"
)

func room() models.Room {
	return models.Room{
		ID:      "r1",
		AdminID: "u1",
		Members: []models.RoomMember{
			{Member: models.Member{ID: "u1", Name: "Alex Rivera"}, RoomRole: models.RoomRoleAdmin},
			{Member: models.Member{ID: "u2", Name: "Sarah Chen"}, RoomRole: models.RoomRoleMember},
			{Member: models.Member{ID: "u3", Name: "Mike Johnson"}, RoomRole: models.RoomRoleGuest},
		},
	}
}

func TestEffectiveRole(t *testing.T) {
	r := room()
	assert.Equal(t, models.RoomRoleAdmin, Effective(r, "u1"))
	assert.Equal(t, models.RoomRoleMember, Effective(r, "u2"))
	assert.Equal(t, models.RoomRoleGuest, Effective(r, "u3"))
}

func TestUnknownUserFallsBackToGuest(t *testing.T) {
	assert.Equal(t, models.RoomRoleGuest, Effective(room(), "stranger"))
	assert.Equal(t, models.RoomRoleGuest, Effective(room(), ""))
}

func TestGating(t *testing.T) {
	assert.True(t, CanPost(models.RoomRoleAdmin))
	assert.True(t, CanPost(models.RoomRoleMember))
	assert.False(t, CanPost(models.RoomRoleGuest))

	assert.True(t, CanManageTasks(models.RoomRoleMember))
	assert.False(t, CanManageTasks(models.RoomRoleGuest))

	assert.True(t, CanManageResources(models.RoomRoleMember))
	assert.False(t, CanManageResources(models.RoomRoleGuest))

	assert.True(t, CanManageMembers(models.RoomRoleAdmin))
	assert.False(t, CanManageMembers(models.RoomRoleMember))
	assert.False(t, CanManageMembers(models.RoomRoleGuest))
}
