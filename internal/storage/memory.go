package storage

import (
	"sync"

	"github.com/DHYEY166/teamflow-enterprise/internal/models"
)

// MemoryStore is the canonical in-memory workspace store. A single
// write lock serializes all mutations, which preserves the
// read-modify-write atomicity the reconciliation engine depends on.
type MemoryStore struct {
	mu       sync.RWMutex
	rooms    []models.Room
	members  []models.Member
	onChange func(models.Workspace)
}

func NewMemoryStore(ws models.Workspace) *MemoryStore {
	clone := ws.Clone()
	return &MemoryStore{
		rooms:   clone.Rooms,
		members: clone.Members,
	}
}

// SetOnChange registers a hook invoked with a workspace snapshot after
// every successful mutation. The hook runs while the store lock is
// held, so deliveries follow commit order; it must not call back into
// the store. Set it before the store is shared.
func (s *MemoryStore) SetOnChange(fn func(models.Workspace)) {
	s.onChange = fn
}

func (s *MemoryStore) Rooms() []models.Room {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Room, 0, len(s.rooms))
	for _, r := range s.rooms {
		out = append(out, r.Clone())
	}
	return out
}

func (s *MemoryStore) Room(roomID string) (models.Room, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, r := range s.rooms {
		if r.ID == roomID {
			return r.Clone(), nil
		}
	}
	return models.Room{}, ErrRoomNotFound
}

func (s *MemoryStore) Members() []models.Member {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return append([]models.Member(nil), s.members...)
}

func (s *MemoryStore) Member(memberID string) (models.Member, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, m := range s.members {
		if m.ID == memberID {
			return m, nil
		}
	}
	return models.Member{}, ErrMemberNotFound
}

func (s *MemoryStore) Snapshot() models.Workspace {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.snapshotLocked()
}

func (s *MemoryStore) snapshotLocked() models.Workspace {
	return models.Workspace{Rooms: s.rooms, Members: s.members}.Clone()
}

// mutate runs fn under the write lock. If fn succeeds, the change hook
// fires with a fresh snapshot before the lock is released, so the
// persister observes snapshots in commit order.
func (s *MemoryStore) mutate(fn func() error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(); err != nil {
		return err
	}
	if s.onChange != nil {
		s.onChange(s.snapshotLocked())
	}
	return nil
}

func (s *MemoryStore) roomIndex(roomID string) int {
	for i := range s.rooms {
		if s.rooms[i].ID == roomID {
			return i
		}
	}
	return -1
}

func (s *MemoryStore) CreateRoom(room models.Room) error {
	return s.mutate(func() error {
		if s.roomIndex(room.ID) >= 0 {
			return ErrDuplicateID
		}
		s.rooms = append(s.rooms, room.Clone())
		return nil
	})
}

func (s *MemoryStore) AppendMessage(roomID string, msg models.Message) error {
	return s.mutate(func() error {
		i := s.roomIndex(roomID)
		if i < 0 {
			return ErrRoomNotFound
		}
		for _, m := range s.rooms[i].Messages {
			if m.ID == msg.ID {
				return ErrDuplicateID
			}
		}
		s.rooms[i].Messages = append(s.rooms[i].Messages, msg)
		return nil
	})
}

func (s *MemoryStore) AddTask(roomID string, task models.Task) error {
	return s.mutate(func() error {
		i := s.roomIndex(roomID)
		if i < 0 {
			return ErrRoomNotFound
		}
		for _, t := range s.rooms[i].Tasks {
			if t.ID == task.ID {
				return ErrDuplicateID
			}
		}
		s.rooms[i].Tasks = append(s.rooms[i].Tasks, task)
		return nil
	})
}

func (s *MemoryStore) UpdateTaskStatus(roomID, taskID string, status models.TaskStatus) error {
	return s.mutate(func() error {
		i := s.roomIndex(roomID)
		if i < 0 {
			return ErrRoomNotFound
		}
		for j := range s.rooms[i].Tasks {
			if s.rooms[i].Tasks[j].ID == taskID {
				s.rooms[i].Tasks[j].Status = status
				return nil
			}
		}
		return ErrTaskNotFound
	})
}

func (s *MemoryStore) AddResource(roomID string, res models.Resource) error {
	return s.mutate(func() error {
		i := s.roomIndex(roomID)
		if i < 0 {
			return ErrRoomNotFound
		}
		for _, r := range s.rooms[i].Resources {
			if r.ID == res.ID {
				return ErrDuplicateID
			}
		}
		s.rooms[i].Resources = append(s.rooms[i].Resources, res)
		return nil
	})
}

func (s *MemoryStore) RemoveResource(roomID, resourceID string) error {
	return s.mutate(func() error {
		i := s.roomIndex(roomID)
		if i < 0 {
			return ErrRoomNotFound
		}
		for j, r := range s.rooms[i].Resources {
			if r.ID == resourceID {
				s.rooms[i].Resources = append(s.rooms[i].Resources[:j], s.rooms[i].Resources[j+1:]...)
				return nil
			}
		}
		return ErrResourceNotFound
	})
}

func (s *MemoryStore) SetSummary(roomID, text string) error {
	return s.mutate(func() error {
		i := s.roomIndex(roomID)
		if i < 0 {
			return ErrRoomNotFound
		}
		s.rooms[i].Summary = text
		return nil
	})
}

func (s *MemoryStore) AddMember(roomID, memberID string, role models.RoomRole) error {
	return s.mutate(func() error {
		i := s.roomIndex(roomID)
		if i < 0 {
			return ErrRoomNotFound
		}
		for _, m := range s.rooms[i].Members {
			if m.ID == memberID {
				return ErrAlreadyMember
			}
		}
		for _, m := range s.members {
			if m.ID == memberID {
				// Value copy: the room record diverges from the global
				// one until reconciled by ID.
				s.rooms[i].Members = append(s.rooms[i].Members, models.RoomMember{Member: m, RoomRole: role})
				return nil
			}
		}
		return ErrMemberNotFound
	})
}

func (s *MemoryStore) RemoveMember(roomID, memberID string) error {
	return s.mutate(func() error {
		i := s.roomIndex(roomID)
		if i < 0 {
			return ErrRoomNotFound
		}
		if s.rooms[i].AdminID == memberID {
			return ErrAdminSelfRemove
		}
		for j, m := range s.rooms[i].Members {
			if m.ID == memberID {
				s.rooms[i].Members = append(s.rooms[i].Members[:j], s.rooms[i].Members[j+1:]...)
				return nil
			}
		}
		return ErrMemberNotFound
	})
}

func (s *MemoryStore) UpdateMemberPresence(memberID string, presence models.Presence) error {
	return s.mutate(func() error {
		found := false
		for i := range s.members {
			if s.members[i].ID == memberID {
				s.members[i].Presence = presence
				found = true
				break
			}
		}
		if !found {
			return ErrMemberNotFound
		}
		// Per-room copies are reconciled by ID.
		for i := range s.rooms {
			for j := range s.rooms[i].Members {
				if s.rooms[i].Members[j].ID == memberID {
					s.rooms[i].Members[j].Presence = presence
				}
			}
		}
		return nil
	})
}

func (s *MemoryStore) TogglePin(roomID, messageID string) error {
	return s.mutate(func() error {
		i := s.roomIndex(roomID)
		if i < 0 {
			return ErrRoomNotFound
		}
		for j, id := range s.rooms[i].PinnedMessageIDs {
			if id == messageID {
				s.rooms[i].PinnedMessageIDs = append(s.rooms[i].PinnedMessageIDs[:j], s.rooms[i].PinnedMessageIDs[j+1:]...)
				return nil
			}
		}
		// Pinning requires an existing message; unpinning a stale pin
		// above does not.
		for _, m := range s.rooms[i].Messages {
			if m.ID == messageID {
				s.rooms[i].PinnedMessageIDs = append(s.rooms[i].PinnedMessageIDs, messageID)
				return nil
			}
		}
		return ErrMessageNotFound
	})
}

func (s *MemoryStore) ClearHistory(roomID string) error {
	return s.mutate(func() error {
		i := s.roomIndex(roomID)
		if i < 0 {
			return ErrRoomNotFound
		}
		// Wholesale replacement, never an in-place rewrite.
		s.rooms[i].Messages = nil
		s.rooms[i].PinnedMessageIDs = nil
		return nil
	})
}
