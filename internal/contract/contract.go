// Package contract defines the structured response the external AI
// collaborator must produce and the tolerant decoding rules the
// reconciliation engine trusts. The contract is advisory, not strict:
// anything malformed degrades to "no intervention" rather than an error.
package contract

import (
	"encoding/json"
	"strings"
)

type ActionType string

const (
	ActionAddTask  ActionType = "ADD_TASK"
	ActionAnnounce ActionType = "ANNOUNCE"
)

// ActionPayload carries the union of fields any recognized action may
// use. Unknown wire fields are ignored; missing ones are defaulted by
// the engine.
type ActionPayload struct {
	Title    string `json:"title,omitempty"`
	Assignee string `json:"assignee,omitempty"`
	Content  string `json:"content,omitempty"`
	Scope    string `json:"scope,omitempty"`
}

type Action struct {
	Type    string        `json:"type"`
	Payload ActionPayload `json:"payload"`
}

// Kind normalizes the wire type for matching. Unrecognized kinds survive
// decoding and are skipped by the engine, never rejected.
func (a Action) Kind() ActionType {
	return ActionType(strings.ToUpper(strings.TrimSpace(a.Type)))
}

// IsGlobal reports whether an announcement targets every room.
func (p ActionPayload) IsGlobal() bool {
	return strings.EqualFold(strings.TrimSpace(p.Scope), "global")
}

type PresenceUpdate struct {
	UserID string `json:"userId"`
	Status string `json:"status"`
}

type AIResponse struct {
	ShouldIntervene bool             `json:"shouldIntervene"`
	ReplyText       string           `json:"replyText"`
	Actions         []Action         `json:"actions"`
	PresenceUpdates []PresenceUpdate `json:"presenceUpdates,omitempty"`
}

// Empty is the non-intervening response substituted for anything the
// collaborator got wrong.
func Empty() *AIResponse {
	return &AIResponse{}
}

// Decode parses raw collaborator output into an AIResponse. Missing
// fields default to false / empty; input that fails to parse at all is
// treated as no intervention. Decode never fails in a way that can
// abort committing the user's own message.
func Decode(raw string) *AIResponse {
	raw = stripFences(strings.TrimSpace(raw))
	if raw == "" {
		return Empty()
	}

	var resp AIResponse
	if err := json.Unmarshal([]byte(raw), &resp); err != nil {
		return Empty()
	}
	return &resp
}

// stripFences removes a markdown code fence some models wrap around
// their JSON output.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
