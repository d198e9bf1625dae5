// Package presence maps free-text or partial identity hints from
// collaborator responses to concrete member records.
package presence

import (
	"strings"

	"github.com/DHYEY166/teamflow-enterprise/internal/models"
)

// Match resolves an identifier that may be an exact member ID or a
// free-text name fragment. Matching order: exact ID, then
// case-insensitive substring of the member's display name. First match
// wins; no match means the update is dropped.
func Match(members []models.Member, identifier string) (models.Member, bool) {
	for _, m := range members {
		if m.ID == identifier {
			return m, true
		}
	}

	needle := strings.ToLower(strings.TrimSpace(identifier))
	if needle == "" {
		return models.Member{}, false
	}
	for _, m := range members {
		if strings.Contains(strings.ToLower(m.Name), needle) {
			return m, true
		}
	}
	return models.Member{}, false
}

// ParseStatus validates a presence value from the wire. Only online,
// offline and idle may be set through collaborator updates.
func ParseStatus(s string) (models.Presence, bool) {
	switch models.Presence(strings.ToLower(strings.TrimSpace(s))) {
	case models.PresenceOnline:
		return models.PresenceOnline, true
	case models.PresenceOffline:
		return models.PresenceOffline, true
	case models.PresenceIdle:
		return models.PresenceIdle, true
	}
	return "", false
}

// AssigneeRef describes where a free-text task assignee points after
// reconciliation against the member directory.
type AssigneeRef struct {
	Raw      string `json:"raw"`
	MemberID string `json:"member_id,omitempty"`
	// External marks an assignee that matched no member
	// ("unassigned-external") rather than silently failing.
	External bool `json:"external,omitempty"`
}

// ResolveAssignee maps a task's free-text assignee to a member ID at
// read time, using the same fuzzy policy as presence matching.
func ResolveAssignee(members []models.Member, raw string) AssigneeRef {
	ref := AssigneeRef{Raw: raw}
	if strings.TrimSpace(raw) == "" || strings.EqualFold(raw, "Unassigned") {
		return ref
	}
	if m, ok := Match(members, raw); ok {
		ref.MemberID = m.ID
		return ref
	}
	ref.External = true
	return ref
}
