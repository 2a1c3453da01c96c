package ws

import (
	"encoding/json"
	"time"

	"github.com/deouf-dev/talemy-api/internal/logger"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
	sendQueueSize  = 256
)

// IncomingFrame is a client-originated event. Data is decoded per event.
type IncomingFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// Client is one authenticated socket connection.
type Client struct {
	ID     string
	UserID uint

	conn    *websocket.Conn
	send    chan []byte
	manager *Manager
	// rooms is guarded by manager.mu.
	rooms map[string]bool
}

func newClient(manager *Manager, conn *websocket.Conn, userID uint) *Client {
	return &Client{
		ID:      uuid.NewString(),
		UserID:  userID,
		conn:    conn,
		send:    make(chan []byte, sendQueueSize),
		manager: manager,
		rooms:   make(map[string]bool),
	}
}

// readPump decodes incoming frames and hands them to dispatch until the
// connection closes.
func (c *Client) readPump(dispatch func(*Client, IncomingFrame)) {
	defer func() {
		c.manager.Unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logger.Warn("Socket read error", "client_id", c.ID, "user_id", c.UserID, "error", err)
			}
			return
		}

		var frame IncomingFrame
		if err := json.Unmarshal(data, &frame); err != nil || frame.Event == "" {
			c.manager.SendTo(c, EventSocketError, errorPayloadFor(errMalformedFrame))
			continue
		}
		dispatch(c, frame)
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case payload, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, payload); err != nil {
				logger.Warn("Socket write error", "client_id", c.ID, "user_id", c.UserID, "error", err)
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
