package dto

import (
	"time"

	"github.com/deouf-dev/talemy-api/internal/models"
)

type SendMessageRequest struct {
	Content string `json:"content" validate:"required"`
}

type ConversationResponse struct {
	ID            uint      `json:"id"`
	RequestID     *uint     `json:"requestId"`
	StudentUserID uint      `json:"studentUserId"`
	TeacherUserID uint      `json:"teacherUserId"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

type ConversationRequestSummary struct {
	ID      uint                        `json:"id"`
	Status  models.ContactRequestStatus `json:"status"`
	Message string                      `json:"message"`
}

type ConversationListItem struct {
	ID             uint                        `json:"id"`
	Partner        *PublicUser                 `json:"partner"`
	LastMessage    *MessageResponse            `json:"lastMessage"`
	ContactRequest *ConversationRequestSummary `json:"contactRequest"`
	CreatedAt      time.Time                   `json:"createdAt"`
	UpdatedAt      time.Time                   `json:"updatedAt"`
}

type MessageResponse struct {
	ID             uint      `json:"id"`
	ConversationID uint      `json:"conversationId"`
	SenderUserID   uint      `json:"senderUserId"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"createdAt"`
}

type MessageListResponse struct {
	Messages []*MessageResponse `json:"messages"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
	Total    int64              `json:"total"`
}

func NewConversationResponse(c *models.Conversation) *ConversationResponse {
	if c == nil {
		return nil
	}
	return &ConversationResponse{
		ID:            c.ID,
		RequestID:     c.RequestID,
		StudentUserID: c.StudentUserID,
		TeacherUserID: c.TeacherUserID,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func NewMessageResponse(m *models.Message) *MessageResponse {
	if m == nil {
		return nil
	}
	return &MessageResponse{
		ID:             m.ID,
		ConversationID: m.ConversationID,
		SenderUserID:   m.SenderUserID,
		Content:        m.Content,
		CreatedAt:      m.CreatedAt,
	}
}
