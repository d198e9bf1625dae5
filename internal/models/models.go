package models

import "time"

// Presence is a member's coarse availability state.
type Presence string

const (
	PresenceOnline  Presence = "online"
	PresenceOffline Presence = "offline"
	PresenceIdle    Presence = "idle"
	PresenceTyping  Presence = "typing"
)

// Role tags the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleSystem    Role = "system"
)

// RoomRole is a member's role scoped to a single room.
type RoomRole string

const (
	RoomRoleAdmin  RoomRole = "admin"
	RoomRoleMember RoomRole = "member"
	RoomRoleGuest  RoomRole = "guest"
)

type TaskStatus string

const (
	TaskPending    TaskStatus = "pending"
	TaskInProgress TaskStatus = "in-progress"
	TaskCompleted  TaskStatus = "completed"
)

// The assistant identity used for every engine-authored message.
const (
	AssistantID   = "teamflow-ai"
	AssistantName = "Workspace AI"
)

// Member is a workspace-wide identity. ID, Name, Avatar and Role are
// immutable after creation; Status and Presence are not.
type Member struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Avatar   string   `json:"avatar,omitempty"`
	Role     string   `json:"role"`
	Status   string   `json:"status,omitempty"`
	Presence Presence `json:"presence,omitempty"`
	LastSeen string   `json:"last_seen,omitempty"`
}

// RoomMember is a member augmented with a room-scoped role. The embedded
// Member is value-copied at add time, so the room copy and the global
// record can diverge and must be reconciled by ID, never by identity.
type RoomMember struct {
	Member
	RoomRole RoomRole `json:"room_role"`
}

// Message is immutable once created. SenderName is denormalized at
// creation time and does not track later renames.
type Message struct {
	ID             string    `json:"id"`
	SenderID       string    `json:"sender_id"`
	SenderName     string    `json:"sender_name"`
	Content        string    `json:"content"`
	Timestamp      time.Time `json:"timestamp"`
	Role           Role      `json:"role"`
	IsAnnouncement bool      `json:"is_announcement,omitempty"`
}

type Task struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Assignee    string     `json:"assignee,omitempty"`
	Status      TaskStatus `json:"status"`
	Deadline    string     `json:"deadline,omitempty"`
	Description string     `json:"description,omitempty"`
}

type Resource struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

// Room is a named channel scoping its own messages, tasks, resources and
// membership. The message sequence is append-only; insertion order is
// chronological order.
type Room struct {
	ID               string       `json:"id"`
	Name             string       `json:"name"`
	Description      string       `json:"description"`
	AdminID          string       `json:"admin_id"`
	Members          []RoomMember `json:"members"`
	Messages         []Message    `json:"messages"`
	Tasks            []Task       `json:"tasks"`
	Resources        []Resource   `json:"resources"`
	Summary          string       `json:"summary,omitempty"`
	PinnedMessageIDs []string     `json:"pinned_message_ids"`
}

// Workspace is the full persisted state: every room plus the global
// member directory.
type Workspace struct {
	Rooms   []Room   `json:"rooms"`
	Members []Member `json:"members"`
}

// Clone returns a deep copy of the room.
func (r Room) Clone() Room {
	out := r
	out.Members = append([]RoomMember(nil), r.Members...)
	out.Messages = append([]Message(nil), r.Messages...)
	out.Tasks = append([]Task(nil), r.Tasks...)
	out.Resources = append([]Resource(nil), r.Resources...)
	out.PinnedMessageIDs = append([]string(nil), r.PinnedMessageIDs...)
	return out
}

// Clone returns a deep copy of the workspace.
func (w Workspace) Clone() Workspace {
	out := Workspace{
		Rooms:   make([]Room, 0, len(w.Rooms)),
		Members: append([]Member(nil), w.Members...),
	}
	for _, r := range w.Rooms {
		out.Rooms = append(out.Rooms, r.Clone())
	}
	return out
}
