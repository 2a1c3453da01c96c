package ws

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/deouf-dev/talemy-api/internal/auth"
	"github.com/deouf-dev/talemy-api/internal/logger"
	"github.com/deouf-dev/talemy-api/internal/middleware"
	"github.com/deouf-dev/talemy-api/internal/services"
	"github.com/deouf-dev/talemy-api/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"gorm.io/gorm"
)

// Client-originated and server-originated events.
const (
	EventConversationJoin   = "conversation:join"
	EventConversationJoined = "conversation:joined"
	EventConversationLeave  = "conversation:leave"
	EventConversationLeft   = "conversation:left"
	EventMessageSend        = "message:send"
	EventMessageSent        = "message:sent"
	EventSocketError        = "socket:error"
)

var errMalformedFrame = apperrors.NewValidationError("Malformed frame: expected {event, data}")

type conversationPayload struct {
	ConversationID uint `json:"conversationId"`
}

type sendMessagePayload struct {
	ConversationID uint   `json:"conversationId"`
	Content        string `json:"content"`
}

type messageSentPayload struct {
	ConversationID uint `json:"conversationId"`
	MessageID      uint `json:"messageId"`
}

// ErrorPayload is the data of socket:error. Code is the HTTP status of Type.
type ErrorPayload struct {
	Code    int                 `json:"code"`
	Type    apperrors.ErrorCode `json:"type"`
	Message string              `json:"message"`
}

// Handler upgrades authenticated requests and runs the event dispatch.
type Handler struct {
	manager             *Manager
	conversationService services.ConversationService
	tokens              *auth.TokenManager
	db                  *gorm.DB
	upgrader            websocket.Upgrader
}

func NewHandler(
	manager *Manager,
	conversationService services.ConversationService,
	tokens *auth.TokenManager,
	db *gorm.DB,
	allowedOrigins []string,
) *Handler {
	return &Handler{
		manager:             manager,
		conversationService: conversationService,
		tokens:              tokens,
		db:                  db,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// ServeWS authenticates the handshake, then upgrades. The token comes from the
// Authorization header or, for browsers, the token query parameter.
func (h *Handler) ServeWS(c *gin.Context) {
	tokenStr, ok := middleware.BearerToken(c.GetHeader("Authorization"))
	if !ok {
		tokenStr = c.Query("token")
	}
	if tokenStr == "" {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Authentication token is required"))
		return
	}

	claims, err := h.tokens.Parse(tokenStr)
	if err != nil {
		apperrors.HandleError(c, apperrors.NewUnauthorizedError("Invalid or expired token"))
		return
	}
	userID, _ := claims.UserID()

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.CtxWarn(c.Request.Context(), "WebSocket upgrade failed", "user_id", userID, "error", err)
		return
	}

	client := newClient(h.manager, conn, userID)
	if !h.manager.Register(client) {
		conn.Close()
		return
	}
	logger.CtxInfo(c.Request.Context(), "WebSocket client connected", "client_id", client.ID, "user_id", userID)

	go client.writePump()
	go client.readPump(h.dispatch)
}

// dispatch handles one frame. Failures and panics become socket:error.
func (h *Handler) dispatch(client *Client, frame IncomingFrame) {
	defer func() {
		if rec := recover(); rec != nil {
			err := fmt.Errorf("panic in %s handler: %v", frame.Event, rec)
			logger.SocketLog(client.UserID, frame.Event, err)
			h.manager.SendTo(client, EventSocketError, errorPayloadFor(err))
		}
	}()

	var err error
	switch frame.Event {
	case EventConversationJoin:
		err = h.handleJoin(client, frame.Data)
	case EventConversationLeave:
		err = h.handleLeave(client, frame.Data)
	case EventMessageSend:
		err = h.handleSend(client, frame.Data)
	default:
		err = apperrors.NewValidationError("Unknown event: " + frame.Event)
	}

	logger.SocketLog(client.UserID, frame.Event, err)
	if err != nil {
		h.manager.SendTo(client, EventSocketError, errorPayloadFor(err))
	}
}

func (h *Handler) handleJoin(client *Client, data json.RawMessage) error {
	var payload conversationPayload
	if err := decodePayload(data, &payload); err != nil {
		return err
	}
	if payload.ConversationID == 0 {
		return apperrors.NewValidationError("conversationId is required")
	}

	if _, err := h.conversationService.Authorize(h.db, payload.ConversationID, client.UserID); err != nil {
		return err
	}

	h.manager.Join(client, ConversationRoom(payload.ConversationID))
	h.manager.SendTo(client, EventConversationJoined, conversationPayload{ConversationID: payload.ConversationID})
	return nil
}

func (h *Handler) handleLeave(client *Client, data json.RawMessage) error {
	var payload conversationPayload
	if err := decodePayload(data, &payload); err != nil {
		return err
	}
	if payload.ConversationID == 0 {
		return apperrors.NewValidationError("conversationId is required")
	}

	h.manager.Leave(client, ConversationRoom(payload.ConversationID))
	h.manager.SendTo(client, EventConversationLeft, conversationPayload{ConversationID: payload.ConversationID})
	return nil
}

// handleSend persists through the conversation service, which broadcasts
// message:new to the room. The sender then gets message:sent.
func (h *Handler) handleSend(client *Client, data json.RawMessage) error {
	var payload sendMessagePayload
	if err := decodePayload(data, &payload); err != nil {
		return err
	}
	if payload.ConversationID == 0 {
		return apperrors.NewValidationError("conversationId is required")
	}
	if !h.manager.InRoom(client, ConversationRoom(payload.ConversationID)) {
		return apperrors.NewForbiddenError("Join the conversation before sending messages")
	}

	message, err := h.conversationService.SendMessage(h.db, payload.ConversationID, client.UserID, payload.Content)
	if err != nil {
		return err
	}

	h.manager.SendTo(client, EventMessageSent, messageSentPayload{
		ConversationID: payload.ConversationID,
		MessageID:      message.ID,
	})
	return nil
}

func decodePayload(data json.RawMessage, v interface{}) error {
	if len(data) == 0 || string(data) == "null" {
		return apperrors.NewValidationError("Event data is required")
	}
	if err := json.Unmarshal(data, v); err != nil {
		return apperrors.NewValidationError("Invalid event data")
	}
	return nil
}

func errorPayloadFor(err error) ErrorPayload {
	appErr := apperrors.Normalize(err)
	if appErr.HTTPCode >= http.StatusInternalServerError {
		var cause *apperrors.AppError
		if errors.As(err, &cause) && cause.Err != nil {
			err = cause.Err
		}
		logger.Error("Socket handler failed", "error", err)
	}
	return ErrorPayload{
		Code:    appErr.HTTPCode,
		Type:    appErr.Code,
		Message: appErr.Message,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]bool, len(allowed))
	for _, origin := range allowed {
		if origin == "*" {
			return func(*http.Request) bool { return true }
		}
		set[origin] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}
