package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/DHYEY166/teamflow-enterprise/internal/api"
	"github.com/DHYEY166/teamflow-enterprise/internal/contract"
	"github.com/DHYEY166/teamflow-enterprise/internal/engine"
	"github.com/DHYEY166/teamflow-enterprise/internal/handlers"
	"github.com/DHYEY166/teamflow-enterprise/internal/models"
	"github.com/DHYEY166/teamflow-enterprise/internal/notify"
	"github.com/DHYEY166/teamflow-enterprise/internal/storage"
)

type echoCollaborator struct{}

func (echoCollaborator) ProcessChatContext(ctx context.Context, room models.Room, newMessage, senderName string) (*contract.AIResponse, error) {
	return contract.Empty(), nil
}

func (echoCollaborator) SummarizeRoom(ctx context.Context, room models.Room) (string, error) {
	return "Recap.", nil
}

func newServer(t *testing.T) (*httptest.Server, *storage.MemoryStore) {
	t.Helper()
	logger := zap.NewNop()
	store := storage.NewMemoryStore(models.SeedWorkspace())
	eng := engine.New(store, echoCollaborator{}, notify.NewLogNotifier(logger), logger, time.Second)
	router := api.NewRouter(logger, handlers.NewHandler(store, eng, logger))
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)
	return srv, store
}

func do(t *testing.T, method, url, userID string, body interface{}) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req, err := http.NewRequest(method, url, &buf)
	require.NoError(t, err)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func TestListRooms(t *testing.T) {
	srv, _ := newServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/rooms", "u1", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var rooms []handlers.RoomSummary
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&rooms))
	assert.Len(t, rooms, 5)
}

func TestSendMessageCommitsUserMessage(t *testing.T) {
	srv, store := newServer(t)

	before, _ := store.Room("room-main")
	resp := do(t, http.MethodPost, srv.URL+"/rooms/room-main/messages", "u1",
		map[string]string{"content": "shipping the release today"})
	require.Equal(t, http.StatusAccepted, resp.StatusCode)

	after, _ := store.Room("room-main")
	require.Len(t, after.Messages, len(before.Messages)+1)
	last := after.Messages[len(after.Messages)-1]
	assert.Equal(t, "shipping the release today", last.Content)
	assert.Equal(t, "Alex Rivera", last.SenderName)
}

func TestSendMessageDeniedForNonMember(t *testing.T) {
	srv, store := newServer(t)

	// u3 is not in room-hr; effective role falls back to guest.
	resp := do(t, http.MethodPost, srv.URL+"/rooms/room-hr/messages", "u3",
		map[string]string{"content": "hi"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	room, _ := store.Room("room-hr")
	for _, m := range room.Messages {
		assert.NotEqual(t, "hi", m.Content)
	}
}

func TestCreateRoomMakesCallerAdmin(t *testing.T) {
	srv, store := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/rooms", "u2",
		map[string]string{"name": "Research", "description": "Prototypes"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var room models.Room
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&room))
	assert.Equal(t, "u2", room.AdminID)

	stored, err := store.Room(room.ID)
	require.NoError(t, err)
	require.Len(t, stored.Members, 1)
	assert.Equal(t, models.RoomRoleAdmin, stored.Members[0].RoomRole)
}

func TestTaskGatingAndAssigneeResolution(t *testing.T) {
	srv, _ := newServer(t)

	// u2 is not in room-eng: guest, denied.
	resp := do(t, http.MethodPost, srv.URL+"/rooms/room-eng/tasks", "u2",
		map[string]string{"title": "sneaky"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	// u3 is a member of room-eng.
	resp = do(t, http.MethodPost, srv.URL+"/rooms/room-eng/tasks", "u3",
		map[string]string{"title": "Profile allocations", "assignee": "mike"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = do(t, http.MethodGet, srv.URL+"/rooms/room-eng", "u3", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var view handlers.RoomView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, models.RoomRoleMember, view.CallerRole)

	found := false
	for _, task := range view.Tasks {
		if task.Title == "Profile allocations" {
			found = true
			assert.Equal(t, "u3", task.AssigneeRef.MemberID, "free-text assignee resolves at read time")
			assert.False(t, task.AssigneeRef.External)
		}
	}
	assert.True(t, found)
}

func TestAddResourceConfirmsInRoomLog(t *testing.T) {
	srv, store := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/rooms/room-design/resources", "u2",
		map[string]string{"title": "Brand Kit", "url": "https://example.com/kit"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var res models.Resource
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))

	room, _ := store.Room("room-design")
	require.NotEmpty(t, room.Messages)
	last := room.Messages[len(room.Messages)-1]
	assert.Equal(t, models.RoleAssistant, last.Role)
	assert.Equal(t, "Document Linked: **Brand Kit** has been added to the departmental assets.", last.Content)

	resp = do(t, http.MethodDelete, srv.URL+"/rooms/room-design/resources/"+res.ID, "u2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	room, _ = store.Room("room-design")
	for _, r := range room.Resources {
		assert.NotEqual(t, res.ID, r.ID)
	}
}

func TestMemberManagementAdminOnly(t *testing.T) {
	srv, store := newServer(t)

	// room-hr admin is u5; u4 is only a member.
	resp := do(t, http.MethodPost, srv.URL+"/rooms/room-hr/members", "u4",
		map[string]string{"member_id": "u1"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = do(t, http.MethodPost, srv.URL+"/rooms/room-hr/members", "u5",
		map[string]string{"member_id": "u1"})
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// admin self-removal through the standard path is refused
	resp = do(t, http.MethodDelete, srv.URL+"/rooms/room-hr/members/u5", "u5", nil)
	assert.Equal(t, http.StatusConflict, resp.StatusCode)

	room, _ := store.Room("room-hr")
	assert.Len(t, room.Members, 3)
}

func TestUpdateOwnPresenceOnly(t *testing.T) {
	srv, store := newServer(t)

	resp := do(t, http.MethodPatch, srv.URL+"/members/u1/presence", "u2",
		map[string]string{"status": "offline"})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	resp = do(t, http.MethodPatch, srv.URL+"/members/u1/presence", "u1",
		map[string]string{"status": "typing"})
	require.Equal(t, http.StatusOK, resp.StatusCode)

	m, _ := store.Member("u1")
	assert.Equal(t, models.PresenceTyping, m.Presence)
}

func TestSummarizeSetsRoomSummary(t *testing.T) {
	srv, store := newServer(t)

	resp := do(t, http.MethodPost, srv.URL+"/rooms/room-design/summarize", "u2", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	room, _ := store.Room("room-design")
	assert.Equal(t, "Recap.", room.Summary)
}

func TestUnknownRoomIs404(t *testing.T) {
	srv, _ := newServer(t)

	resp := do(t, http.MethodGet, srv.URL+"/rooms/room-void", "u1", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}
