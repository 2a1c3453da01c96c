package repositories

import (
	"errors"
	"time"

	"github.com/deouf-dev/talemy-api/internal/models"

	"gorm.io/gorm"
)

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrConversationExists   = errors.New("conversation already exists for this request")
)

type ConversationRepository interface {
	// Conversation operations
	Create(db *gorm.DB, conversation *models.Conversation) error
	FindByID(db *gorm.DB, id uint) (*models.Conversation, error)
	FindForUser(db *gorm.DB, userID uint, limit, offset int) ([]models.Conversation, error)
	Touch(db *gorm.DB, id uint, at time.Time) error

	// Message operations
	CreateMessage(db *gorm.DB, message *models.Message) error
	FindMessages(db *gorm.DB, conversationID uint, limit, offset int) ([]models.Message, int64, error)
	FindLatestMessages(db *gorm.DB, conversationIDs []uint) (map[uint]*models.Message, error)
}

type ConversationRepositoryImpl struct{}

func NewConversationRepository() ConversationRepository {
	return &ConversationRepositoryImpl{}
}

// Create relies on the unique request_id index: a second conversation for the
// same request fails with ErrConversationExists.
func (r *ConversationRepositoryImpl) Create(db *gorm.DB, conversation *models.Conversation) error {
	if err := db.Create(conversation).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrConversationExists
		}
		return err
	}
	return nil
}

func (r *ConversationRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Conversation, error) {
	var conversation models.Conversation
	if err := db.First(&conversation, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}
	return &conversation, nil
}

func (r *ConversationRepositoryImpl) FindForUser(db *gorm.DB, userID uint, limit, offset int) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := db.Where("student_user_id = ? OR teacher_user_id = ?", userID, userID).
		Order("updated_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&conversations).Error
	return conversations, err
}

// Touch bumps the recency timestamp used to order conversation lists.
func (r *ConversationRepositoryImpl) Touch(db *gorm.DB, id uint, at time.Time) error {
	return db.Model(&models.Conversation{}).
		Where("id = ?", id).
		UpdateColumn("updated_at", at).Error
}

func (r *ConversationRepositoryImpl) CreateMessage(db *gorm.DB, message *models.Message) error {
	return db.Create(message).Error
}

func (r *ConversationRepositoryImpl) FindMessages(db *gorm.DB, conversationID uint, limit, offset int) ([]models.Message, int64, error) {
	query := db.Model(&models.Message{}).Where("conversation_id = ?", conversationID)

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var messages []models.Message
	err := query.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error
	if err != nil {
		return nil, 0, err
	}
	return messages, total, nil
}

// FindLatestMessages returns the newest message of each conversation that has one.
func (r *ConversationRepositoryImpl) FindLatestMessages(db *gorm.DB, conversationIDs []uint) (map[uint]*models.Message, error) {
	result := make(map[uint]*models.Message, len(conversationIDs))
	if len(conversationIDs) == 0 {
		return result, nil
	}

	latestIDs := db.Model(&models.Message{}).
		Select("MAX(id)").
		Where("conversation_id IN ?", conversationIDs).
		Group("conversation_id")

	var messages []models.Message
	if err := db.Where("id IN (?)", latestIDs).Find(&messages).Error; err != nil {
		return nil, err
	}
	for i := range messages {
		result[messages[i].ConversationID] = &messages[i]
	}
	return result, nil
}
