package services

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/repositories"
	"github.com/deouf-dev/talemy-api/internal/services/dto"
	"github.com/deouf-dev/talemy-api/pkg/apperrors"

	"gorm.io/gorm"
)

const maxMessageLength = 2000

// ConversationService exposes conversations and their messages to the two
// participants. A conversation is writable only while its request is ACCEPTED.
type ConversationService interface {
	// Conversation operations
	ListConversations(db *gorm.DB, userID uint, limit, offset int) ([]*dto.ConversationListItem, error)

	// Message operations
	SendMessage(db *gorm.DB, conversationID, senderID uint, content string) (*dto.MessageResponse, error)
	ListMessages(db *gorm.DB, conversationID, userID uint, page, pageSize int) (*dto.MessageListResponse, error)
	// Authorize checks that userID takes part in the conversation.
	Authorize(db *gorm.DB, conversationID, userID uint) (*models.Conversation, error)
}

type ConversationServiceImpl struct {
	conversationRepo repositories.ConversationRepository
	requestRepo      repositories.ContactRequestRepository
	userRepo         repositories.UserRepository
	notifier         Notifier
}

// NewConversationService builds the service. A nil notifier disables
// message:new broadcasts.
func NewConversationService(
	conversationRepo repositories.ConversationRepository,
	requestRepo repositories.ContactRequestRepository,
	userRepo repositories.UserRepository,
	notifier Notifier,
) ConversationService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ConversationServiceImpl{
		conversationRepo: conversationRepo,
		requestRepo:      requestRepo,
		userRepo:         userRepo,
		notifier:         notifier,
	}
}

func (s *ConversationServiceImpl) ListConversations(db *gorm.DB, userID uint, limit, offset int) ([]*dto.ConversationListItem, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	limit = ClampInt(limit, 1, MaxListLimit)
	if offset < 0 {
		offset = 0
	}

	conversations, err := s.conversationRepo.FindForUser(db, userID, limit, offset)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if len(conversations) == 0 {
		return []*dto.ConversationListItem{}, nil
	}

	conversationIDs := make([]uint, 0, len(conversations))
	partnerIDs := make([]uint, 0, len(conversations))
	requestIDs := make([]uint, 0, len(conversations))
	for _, c := range conversations {
		conversationIDs = append(conversationIDs, c.ID)
		partnerIDs = append(partnerIDs, c.PartnerOf(userID))
		if c.RequestID != nil {
			requestIDs = append(requestIDs, *c.RequestID)
		}
	}

	partners, err := s.userRepo.FindByIDs(db, partnerIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	latest, err := s.conversationRepo.FindLatestMessages(db, conversationIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	requests, err := s.requestRepo.FindByIDs(db, requestIDs)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.ConversationListItem, 0, len(conversations))
	for i := range conversations {
		c := &conversations[i]
		item := &dto.ConversationListItem{
			ID:          c.ID,
			Partner:     dto.NewPublicUser(partners[c.PartnerOf(userID)]),
			LastMessage: dto.NewMessageResponse(latest[c.ID]),
			CreatedAt:   c.CreatedAt,
			UpdatedAt:   c.UpdatedAt,
		}
		if c.RequestID != nil {
			if r, ok := requests[*c.RequestID]; ok {
				item.ContactRequest = &dto.ConversationRequestSummary{
					ID:      r.ID,
					Status:  r.Status,
					Message: r.Message,
				}
			}
		}
		items = append(items, item)
	}
	return items, nil
}

// SendMessage stores the message and bumps the conversation in one transaction,
// then broadcasts message:new to the conversation room.
func (s *ConversationServiceImpl) SendMessage(db *gorm.DB, conversationID, senderID uint, content string) (*dto.MessageResponse, error) {
	conversation, err := s.authorizeActive(db, conversationID, senderID)
	if err != nil {
		return nil, err
	}

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, apperrors.NewValidationError("Message content cannot be empty")
	}
	if utf8.RuneCountInString(content) > maxMessageLength {
		return nil, apperrors.NewValidationError("Message content must be at most 2000 characters")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	message := &models.Message{
		ConversationID: conversation.ID,
		SenderUserID:   senderID,
		Content:        content,
		CreatedAt:      time.Now(),
	}
	if err := s.conversationRepo.CreateMessage(tx, message); err != nil {
		return nil, apperrors.InternalError(err)
	}
	if err := s.conversationRepo.Touch(tx, conversation.ID, message.CreatedAt); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewMessageResponse(message)
	s.notifier.NotifyConversation(conversation.ID, EventMessageNew, map[string]interface{}{
		"conversationId": conversation.ID,
		"message":        resp,
	})
	return resp, nil
}

func (s *ConversationServiceImpl) ListMessages(db *gorm.DB, conversationID, userID uint, page, pageSize int) (*dto.MessageListResponse, error) {
	if _, err := s.authorizeActive(db, conversationID, userID); err != nil {
		return nil, err
	}

	page, pageSize = NormalizePage(page, pageSize)
	messages, total, err := s.conversationRepo.FindMessages(db, conversationID, pageSize, offsetFor(page, pageSize))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.MessageResponse, 0, len(messages))
	for i := range messages {
		out = append(out, dto.NewMessageResponse(&messages[i]))
	}
	return &dto.MessageListResponse{
		Messages: out,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

func (s *ConversationServiceImpl) Authorize(db *gorm.DB, conversationID, userID uint) (*models.Conversation, error) {
	conversation, err := s.conversationRepo.FindByID(db, conversationID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrConversationNotFound, msgConversationNotFound)
	}
	if !conversation.IsParticipant(userID) {
		return nil, apperrors.NewForbiddenError(msgNotParticipant)
	}
	return conversation, nil
}

// authorizeActive applies the participant gate, then requires the originating
// request to still be ACCEPTED.
func (s *ConversationServiceImpl) authorizeActive(db *gorm.DB, conversationID, userID uint) (*models.Conversation, error) {
	conversation, err := s.Authorize(db, conversationID, userID)
	if err != nil {
		return nil, err
	}
	if conversation.RequestID == nil {
		return nil, apperrors.NewConflictError(msgConversationInactive)
	}
	request, err := s.requestRepo.FindByID(db, *conversation.RequestID)
	if err != nil {
		if errors.Is(err, repositories.ErrContactRequestNotFound) {
			return nil, apperrors.NewConflictError(msgConversationInactive)
		}
		return nil, apperrors.InternalError(err)
	}
	if request.Status != models.ContactRequestStatusAccepted {
		return nil, apperrors.NewConflictError(msgConversationInactive)
	}
	return conversation, nil
}
