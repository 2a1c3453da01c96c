package ws

import (
	"encoding/json"
	"strconv"
	"sync"

	"github.com/deouf-dev/talemy-api/internal/logger"
	"github.com/deouf-dev/talemy-api/internal/services"
)

// Frame is the envelope of every message on the socket.
type Frame struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// outbound targets either a room or a single client.
type outbound struct {
	room    string
	client  *Client
	payload []byte
}

type roomOp struct {
	client *Client
	room   string
	join   bool
	done   chan struct{}
}

// Manager owns connected clients and their rooms. All mutations run on the
// Run goroutine, and room broadcasts share one queue with direct replies so
// each client sees frames in submission order.
type Manager struct {
	clients map[*Client]bool
	rooms   map[string]map[*Client]bool
	mu      sync.RWMutex

	register   chan *Client
	unregister chan *Client
	rooming    chan roomOp
	outbox     chan outbound
	done       chan struct{}
	stopOnce   sync.Once
}

var _ services.Notifier = (*Manager)(nil)

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]bool),
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooming:    make(chan roomOp),
		outbox:     make(chan outbound, 512),
		done:       make(chan struct{}),
	}
}

func UserRoom(userID uint) string {
	return "user:" + strconv.FormatUint(uint64(userID), 10)
}

func ConversationRoom(conversationID uint) string {
	return "conversation:" + strconv.FormatUint(uint64(conversationID), 10)
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = true
			m.addToRoom(client, UserRoom(client.UserID))
			total := len(m.clients)
			m.mu.Unlock()
			logger.Debug("Socket client registered", "client_id", client.ID, "user_id", client.UserID, "total", total)

		case client := <-m.unregister:
			m.mu.Lock()
			m.removeClient(client)
			total := len(m.clients)
			m.mu.Unlock()
			logger.Debug("Socket client unregistered", "client_id", client.ID, "user_id", client.UserID, "total", total)

		case op := <-m.rooming:
			m.mu.Lock()
			if m.clients[op.client] {
				if op.join {
					m.addToRoom(op.client, op.room)
				} else {
					m.removeFromRoom(op.client, op.room)
				}
			}
			m.mu.Unlock()
			close(op.done)

		case msg := <-m.outbox:
			m.mu.Lock()
			if msg.client != nil {
				if m.clients[msg.client] {
					m.deliver(msg.client, msg.payload)
				}
			} else {
				for client := range m.rooms[msg.room] {
					m.deliver(client, msg.payload)
				}
			}
			m.mu.Unlock()

		case <-m.done:
			m.mu.Lock()
			for client := range m.clients {
				m.removeClient(client)
			}
			m.mu.Unlock()
			return
		}
	}
}

// Stop ends Run and closes every client's outbound queue.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.done) })
}

// Join adds the client to room and returns once the membership is visible.
func (m *Manager) Join(client *Client, room string) {
	m.roomOp(client, room, true)
}

func (m *Manager) Leave(client *Client, room string) {
	m.roomOp(client, room, false)
}

func (m *Manager) InRoom(client *Client, room string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.rooms[room][client]
}

// ClientCount returns the number of connected clients.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

// RoomSize returns the number of connections in room.
func (m *Manager) RoomSize(room string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.rooms[room])
}

// NotifyUsers pushes event to every connection of each user.
func (m *Manager) NotifyUsers(event string, payload interface{}, userIDs ...uint) {
	seen := make(map[uint]bool, len(userIDs))
	for _, id := range userIDs {
		if seen[id] {
			continue
		}
		seen[id] = true
		m.Emit(UserRoom(id), event, payload)
	}
}

func (m *Manager) NotifyConversation(conversationID uint, event string, payload interface{}) {
	m.Emit(ConversationRoom(conversationID), event, payload)
}

// Emit sends one frame to every member of room.
func (m *Manager) Emit(room, event string, payload interface{}) {
	data, err := encodeFrame(event, payload)
	if err != nil {
		logger.Error("Failed to encode socket frame", "event", event, "error", err)
		return
	}
	select {
	case m.outbox <- outbound{room: room, payload: data}:
	case <-m.done:
	}
}

// SendTo queues a frame for a single connection.
func (m *Manager) SendTo(client *Client, event string, payload interface{}) {
	data, err := encodeFrame(event, payload)
	if err != nil {
		logger.Error("Failed to encode socket frame", "event", event, "error", err)
		return
	}
	select {
	case m.outbox <- outbound{client: client, payload: data}:
	case <-m.done:
	}
}

func (m *Manager) roomOp(client *Client, room string, join bool) {
	op := roomOp{client: client, room: room, join: join, done: make(chan struct{})}
	select {
	case m.rooming <- op:
		<-op.done
	case <-m.done:
	}
}

// addToRoom and the helpers below expect m.mu to be held.
func (m *Manager) addToRoom(client *Client, room string) {
	members, ok := m.rooms[room]
	if !ok {
		members = make(map[*Client]bool)
		m.rooms[room] = members
	}
	members[client] = true
	client.rooms[room] = true
}

func (m *Manager) removeFromRoom(client *Client, room string) {
	if members, ok := m.rooms[room]; ok {
		delete(members, client)
		if len(members) == 0 {
			delete(m.rooms, room)
		}
	}
	delete(client.rooms, room)
}

func (m *Manager) removeClient(client *Client) {
	if !m.clients[client] {
		return
	}
	for room := range client.rooms {
		m.removeFromRoom(client, room)
	}
	delete(m.clients, client)
	close(client.send)
}

// deliver drops a client whose queue is full instead of blocking the loop.
func (m *Manager) deliver(client *Client, payload []byte) {
	select {
	case client.send <- payload:
	default:
		logger.Warn("Socket client dropped: send queue full", "client_id", client.ID, "user_id", client.UserID)
		m.removeClient(client)
	}
}

func encodeFrame(event string, payload interface{}) ([]byte, error) {
	return json.Marshal(Frame{Event: event, Data: payload})
}

// Register adds the client and its user room. It reports false after Stop.
func (m *Manager) Register(client *Client) bool {
	select {
	case <-m.done:
		return false
	default:
	}
	select {
	case m.register <- client:
		return true
	case <-m.done:
		return false
	}
}

func (m *Manager) Unregister(client *Client) {
	select {
	case m.unregister <- client:
	case <-m.done:
	}
}
