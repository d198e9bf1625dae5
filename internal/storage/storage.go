package storage

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/DHYEY166/teamflow-enterprise/internal/models"
)

var (
	ErrRoomNotFound     = errors.New("room not found")
	ErrMemberNotFound   = errors.New("member not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrMessageNotFound  = errors.New("message not found")
	ErrResourceNotFound = errors.New("resource not found")
	ErrDuplicateID      = errors.New("duplicate id")
	ErrAlreadyMember    = errors.New("already a room member")
	ErrAdminSelfRemove  = errors.New("admin cannot remove themselves")
)

// Store holds the canonical workspace state. Every operation either fully
// succeeds or is a no-op returning an error; nothing partially applies.
type Store interface {
	Rooms() []models.Room
	Room(roomID string) (models.Room, error)
	Members() []models.Member
	Member(memberID string) (models.Member, error)
	Snapshot() models.Workspace

	CreateRoom(room models.Room) error
	AppendMessage(roomID string, msg models.Message) error
	AddTask(roomID string, task models.Task) error
	UpdateTaskStatus(roomID, taskID string, status models.TaskStatus) error
	AddResource(roomID string, res models.Resource) error
	RemoveResource(roomID, resourceID string) error
	SetSummary(roomID, text string) error
	AddMember(roomID, memberID string, role models.RoomRole) error
	RemoveMember(roomID, memberID string) error
	UpdateMemberPresence(memberID string, presence models.Presence) error
	TogglePin(roomID, messageID string) error
	ClearHistory(roomID string) error
}

// Persister serializes the full workspace and reloads it at startup.
// Implementations must round-trip timestamps through a textual date
// representation.
type Persister interface {
	Save(ctx context.Context, ws models.Workspace) error
	Load(ctx context.Context) (models.Workspace, error)
	Close() error
}

// ErrNoSnapshot is returned by Persister.Load when no state has been
// saved yet; callers fall back to the built-in seed workspace.
var ErrNoSnapshot = errors.New("no workspace snapshot")

// LoadWorkspace returns the persisted workspace. A missing snapshot or
// an unusable one falls back to the built-in seed.
func LoadWorkspace(ctx context.Context, p Persister, logger *zap.Logger) models.Workspace {
	ws, err := p.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNoSnapshot) {
			logger.Info("No workspace snapshot, seeding fresh workspace")
		} else {
			logger.Warn("Workspace snapshot unusable, seeding fresh workspace", zap.Error(err))
		}
		return models.SeedWorkspace()
	}
	return ws
}

// NopPersister serves memory-only deployments.
type NopPersister struct{}

func (NopPersister) Save(ctx context.Context, ws models.Workspace) error { return nil }

func (NopPersister) Load(ctx context.Context) (models.Workspace, error) {
	return models.Workspace{}, ErrNoSnapshot
}

func (NopPersister) Close() error { return nil }
