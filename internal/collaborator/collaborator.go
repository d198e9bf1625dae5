package collaborator

import (
	"context"

	"github.com/DHYEY166/teamflow-enterprise/internal/contract"
	"github.com/DHYEY166/teamflow-enterprise/internal/models"
)

// Collaborator is the external language-model service that observes
// conversation and emits structured actions. Implementations must be
// safe for concurrent use.
type Collaborator interface {
	// ProcessChatContext sends the room context plus the new message
	// and returns the structured response. A transport failure returns
	// an error; malformed response bodies never do, they decode to a
	// non-intervening response instead.
	ProcessChatContext(ctx context.Context, room models.Room, newMessage, senderName string) (*contract.AIResponse, error)

	// SummarizeRoom returns a one-sentence recap of recent room
	// activity. It degrades to a fixed fallback string on failure.
	SummarizeRoom(ctx context.Context, room models.Room) (string, error)
}
