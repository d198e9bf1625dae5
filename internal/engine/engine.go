// Package engine applies validated collaborator responses to the
// workspace store and orchestrates the message round-trip: commit the
// user's message, consult the collaborator under a hard timeout, then
// reconcile whatever came back.
package engine

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/DHYEY166/teamflow-enterprise/internal/collaborator"
	"github.com/DHYEY166/teamflow-enterprise/internal/contract"
	"github.com/DHYEY166/teamflow-enterprise/internal/metrics"
	"github.com/DHYEY166/teamflow-enterprise/internal/models"
	"github.com/DHYEY166/teamflow-enterprise/internal/notify"
	"github.com/DHYEY166/teamflow-enterprise/internal/presence"
	"github.com/DHYEY166/teamflow-enterprise/internal/roles"
	"github.com/DHYEY166/teamflow-enterprise/internal/storage"
)

const (
	// DefaultTimeout bounds a single collaborator round-trip.
	DefaultTimeout = 15 * time.Second

	defaultTaskTitle    = "Review Request"
	defaultTaskAssignee = "Unassigned"
)

var ErrPermissionDenied = errors.New("permission denied")

type Engine struct {
	store        storage.Store
	collaborator collaborator.Collaborator
	notifier     notify.Notifier
	logger       *zap.Logger
	timeout      time.Duration

	mu  sync.Mutex
	gen map[string]uint64 // roomID -> latest submission generation
}

func New(store storage.Store, collab collaborator.Collaborator, notifier notify.Notifier, logger *zap.Logger, timeout time.Duration) *Engine {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Engine{
		store:        store,
		collaborator: collab,
		notifier:     notifier,
		logger:       logger,
		timeout:      timeout,
		gen:          make(map[string]uint64),
	}
}

// SendMessage commits a user message to its room and runs one
// collaborator round-trip against it. The user's message always
// survives collaborator failure; everything past the commit is
// advisory.
func (e *Engine) SendMessage(ctx context.Context, roomID, senderID, content string) (models.Message, error) {
	room, err := e.store.Room(roomID)
	if err != nil {
		return models.Message{}, err
	}

	role := roles.Effective(room, senderID)
	if !roles.CanPost(role) {
		metrics.PermissionDenials.Inc()
		e.notifier.Notify(notify.KindInfo, "Access denied.")
		return models.Message{}, ErrPermissionDenied
	}

	senderName := senderID
	for _, m := range room.Members {
		if m.ID == senderID {
			senderName = m.Name
			break
		}
	}

	msg := models.Message{
		ID:         uuid.New().String(),
		SenderID:   senderID,
		SenderName: senderName,
		Content:    content,
		Timestamp:  time.Now(),
		Role:       models.RoleUser,
	}
	if err := e.store.AppendMessage(roomID, msg); err != nil {
		return models.Message{}, err
	}
	metrics.MessagesPosted.WithLabelValues(string(models.RoleUser)).Inc()

	generation := e.nextGeneration(roomID)

	// One outstanding round-trip, raced against a hard timeout. The
	// context is the single cancellation point: whichever of response
	// or deadline resolves first wins, and the loser is suppressed.
	cctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	resp, err := e.collaborator.ProcessChatContext(cctx, room, content, senderName)
	if err != nil {
		// A canceled parent context (client disconnect) is not a timeout.
		if errors.Is(cctx.Err(), context.DeadlineExceeded) {
			metrics.CollaboratorFailures.WithLabelValues("timeout").Inc()
			e.notifier.Notify(notify.KindInfo, "AI processing timeout.")
		} else {
			metrics.CollaboratorFailures.WithLabelValues("error").Inc()
			e.notifier.Notify(notify.KindInfo, "System busy.")
		}
		e.logger.Warn("Collaborator round-trip failed",
			zap.Error(err),
			zap.String("room_id", roomID))
		return msg, nil
	}

	// A response that lost the race to a newer submission for this
	// room is stale; applying it would mutate state the user has
	// already moved past.
	if !e.isCurrent(roomID, generation) {
		e.logger.Warn("Discarding stale collaborator response",
			zap.String("room_id", roomID))
		return msg, nil
	}

	e.Reconcile(roomID, resp)
	return msg, nil
}

// Summarize refreshes a room's summary from the collaborator's recap.
func (e *Engine) Summarize(ctx context.Context, roomID string) (string, error) {
	room, err := e.store.Room(roomID)
	if err != nil {
		return "", err
	}

	cctx, cancel := context.WithTimeout(ctx, e.timeout)
	defer cancel()

	summary, err := e.collaborator.SummarizeRoom(cctx, room)
	if err != nil {
		return "", err
	}
	if err := e.store.SetSummary(roomID, summary); err != nil {
		return "", err
	}
	e.notifier.Notify(notify.KindSuccess, "Sprint Log Refreshed")
	return summary, nil
}

// LinkResource adds a resource to a room, records an assistant
// confirmation in the room's log, and announces the new asset.
func (e *Engine) LinkResource(roomID string, res models.Resource) error {
	if err := e.store.AddResource(roomID, res); err != nil {
		return err
	}
	e.appendAssistant(roomID, "Document Linked: **"+res.Title+"** has been added to the departmental assets.", false)
	e.notifier.Notify(notify.KindSuccess, "Asset Linked: "+res.Title)
	return nil
}

// UnlinkResource removes a resource from a room.
func (e *Engine) UnlinkResource(roomID, resourceID string) error {
	if err := e.store.RemoveResource(roomID, resourceID); err != nil {
		return err
	}
	e.notifier.Notify(notify.KindInfo, "Asset removed")
	return nil
}

// Reconcile applies a validated response to the store. Actions are
// applied in array order; task and announcement side effects bind to
// the room that originated the triggering message, except announcements
// whose payload scope is global. Presence updates go last.
func (e *Engine) Reconcile(originRoomID string, resp *contract.AIResponse) {
	if resp == nil {
		return
	}

	// One pre-batch snapshot drives the announcement fan-out; rooms
	// created concurrently with this batch are not targets.
	roomIDs := make([]string, 0)
	for _, r := range e.store.Rooms() {
		roomIDs = append(roomIDs, r.ID)
	}

	announcedToOrigin := false

	for _, action := range resp.Actions {
		switch action.Kind() {
		case contract.ActionAddTask:
			e.applyAddTask(originRoomID, action.Payload)

		case contract.ActionAnnounce:
			if e.applyAnnounce(originRoomID, roomIDs, action.Payload) {
				announcedToOrigin = true
			}

		default:
			// Unrecognized action types are skipped; the rest of the
			// batch still applies.
			metrics.ActionsSkipped.Inc()
			e.logger.Debug("Skipping unrecognized action",
				zap.String("type", action.Type),
				zap.String("room_id", originRoomID))
		}
	}

	// The fallback reply is suppressed when an announcement already
	// reached the originating room in this same response.
	if resp.ShouldIntervene && resp.ReplyText != "" && !announcedToOrigin {
		e.appendAssistant(originRoomID, resp.ReplyText, false)
	}

	e.applyPresence(resp.PresenceUpdates)
}

// applyAddTask creates a pending task in the originating room only,
// regardless of shouldIntervene. Missing payload fields get fixed
// defaults rather than rejecting the action.
func (e *Engine) applyAddTask(roomID string, payload contract.ActionPayload) {
	title := payload.Title
	if title == "" {
		title = payload.Content
	}
	if title == "" {
		title = defaultTaskTitle
	}
	assignee := payload.Assignee
	if assignee == "" {
		assignee = defaultTaskAssignee
	}

	task := models.Task{
		ID:       uuid.New().String(),
		Title:    title,
		Assignee: assignee,
		Status:   models.TaskPending,
	}
	if err := e.store.AddTask(roomID, task); err != nil {
		e.logger.Error("Failed to add task",
			zap.Error(err),
			zap.String("room_id", roomID),
			zap.String("title", title))
		return
	}
	metrics.ActionsApplied.WithLabelValues(string(contract.ActionAddTask)).Inc()
	e.notifier.Notify(notify.KindSuccess, "Task Logged: "+title)
}

// applyAnnounce appends the announcement to every room for global
// scope, otherwise to the originating room only. Reports whether the
// originating room received it.
func (e *Engine) applyAnnounce(originRoomID string, roomIDs []string, payload contract.ActionPayload) bool {
	if payload.Content == "" {
		return false
	}

	targets := []string{originRoomID}
	if payload.IsGlobal() {
		targets = roomIDs
	}

	applied := false
	hitOrigin := false
	for _, id := range targets {
		if e.appendAssistant(id, payload.Content, true) {
			applied = true
			if id == originRoomID {
				hitOrigin = true
			}
		}
	}
	if applied {
		metrics.ActionsApplied.WithLabelValues(string(contract.ActionAnnounce)).Inc()
	}
	return hitOrigin
}

func (e *Engine) appendAssistant(roomID, content string, announcement bool) bool {
	msg := models.Message{
		ID:             uuid.New().String(),
		SenderID:       models.AssistantID,
		SenderName:     models.AssistantName,
		Content:        content,
		Timestamp:      time.Now(),
		Role:           models.RoleAssistant,
		IsAnnouncement: announcement,
	}
	if err := e.store.AppendMessage(roomID, msg); err != nil {
		e.logger.Error("Failed to append assistant message",
			zap.Error(err),
			zap.String("room_id", roomID))
		return false
	}
	metrics.MessagesPosted.WithLabelValues(string(models.RoleAssistant)).Inc()
	return true
}

// applyPresence resolves each update's identity hint against the member
// directory. Unresolvable or invalid updates are dropped silently; each
// match emits one notification.
func (e *Engine) applyPresence(updates []contract.PresenceUpdate) {
	if len(updates) == 0 {
		return
	}

	members := e.store.Members()
	for _, u := range updates {
		status, ok := presence.ParseStatus(u.Status)
		if !ok {
			continue
		}
		member, ok := presence.Match(members, u.UserID)
		if !ok {
			continue
		}
		if err := e.store.UpdateMemberPresence(member.ID, status); err != nil {
			e.logger.Error("Failed to update presence",
				zap.Error(err),
				zap.String("member_id", member.ID))
			continue
		}
		metrics.PresenceUpdates.Inc()
		e.notifier.Notify(notify.KindInfo, member.Name+" is now "+string(status))
	}
}

func (e *Engine) nextGeneration(roomID string) uint64 {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen[roomID]++
	return e.gen[roomID]
}

func (e *Engine) isCurrent(roomID string, generation uint64) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.gen[roomID] == generation
}
