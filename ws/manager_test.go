package ws

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/deouf-dev/talemy-api/internal/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	logger.InitWithWriter("test", io.Discard)
}

func startManager(t *testing.T) *Manager {
	t.Helper()
	m := NewManager()
	go m.Run()
	t.Cleanup(m.Stop)
	return m
}

func nextFrame(t *testing.T, c *Client) Frame {
	t.Helper()
	select {
	case payload, ok := <-c.send:
		require.True(t, ok, "send queue closed")
		var frame Frame
		require.NoError(t, json.Unmarshal(payload, &frame))
		return frame
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for frame")
		return Frame{}
	}
}

func assertNoFrame(t *testing.T, c *Client) {
	t.Helper()
	select {
	case payload := <-c.send:
		t.Fatalf("unexpected frame: %s", payload)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestManager_UserRoomFanOut(t *testing.T) {
	m := startManager(t)
	phone := newClient(m, nil, 1)
	laptop := newClient(m, nil, 1)
	other := newClient(m, nil, 2)
	require.True(t, m.Register(phone))
	require.True(t, m.Register(laptop))
	require.True(t, m.Register(other))

	// Duplicate ids deliver once per connection.
	m.NotifyUsers("contactRequest:created", map[string]int{"id": 7}, 1, 1)

	assert.Equal(t, "contactRequest:created", nextFrame(t, phone).Event)
	assert.Equal(t, "contactRequest:created", nextFrame(t, laptop).Event)
	assertNoFrame(t, phone)
	assertNoFrame(t, other)
	assert.Equal(t, 3, m.ClientCount())
	assert.Equal(t, 2, m.RoomSize(UserRoom(1)))
}

func TestManager_ConversationRoomsAndOrdering(t *testing.T) {
	m := startManager(t)
	a := newClient(m, nil, 1)
	b := newClient(m, nil, 2)
	require.True(t, m.Register(a))
	require.True(t, m.Register(b))

	room := ConversationRoom(42)
	m.Join(a, room)
	m.Join(b, room)
	assert.True(t, m.InRoom(a, room))

	// A room broadcast queued before a direct reply is delivered first.
	m.NotifyConversation(42, "message:new", "first")
	m.SendTo(a, "message:sent", "second")

	assert.Equal(t, "message:new", nextFrame(t, a).Event)
	assert.Equal(t, "message:sent", nextFrame(t, a).Event)
	assert.Equal(t, "message:new", nextFrame(t, b).Event)
	assertNoFrame(t, b)

	m.Leave(b, room)
	assert.False(t, m.InRoom(b, room))
	m.NotifyConversation(42, "message:new", "third")
	assert.Equal(t, "message:new", nextFrame(t, a).Event)
	assertNoFrame(t, b)
}

func TestManager_UnregisterAndStop(t *testing.T) {
	m := startManager(t)
	a := newClient(m, nil, 1)
	require.True(t, m.Register(a))
	m.Join(a, ConversationRoom(1))

	m.Unregister(a)
	require.Eventually(t, func() bool { return m.ClientCount() == 0 }, time.Second, 10*time.Millisecond)
	assert.Zero(t, m.RoomSize(ConversationRoom(1)))

	_, open := <-a.send
	assert.False(t, open)

	m.Stop()
	assert.False(t, m.Register(newClient(m, nil, 3)))
	// Emitting after Stop must not block.
	m.NotifyUsers("contactRequest:created", nil, 1)
}

func TestOriginChecker(t *testing.T) {
	assert.NotNil(t, originChecker(nil))

	check := originChecker([]string{"https://app.talemy.fr"})
	req := func(origin string) bool {
		return check(requestWithOrigin(origin))
	}
	assert.True(t, req("https://app.talemy.fr"))
	assert.True(t, req(""))
	assert.False(t, req("https://evil.example"))
}

func requestWithOrigin(origin string) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/v1/ws", nil)
	if origin != "" {
		r.Header.Set("Origin", origin)
	}
	return r
}
