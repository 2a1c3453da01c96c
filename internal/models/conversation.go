package models

import "time"

// Conversation is created once per accepted contact request.
// RequestID becomes NULL if the request is later cancelled, which leaves the conversation inactive.
type Conversation struct {
	BaseModel
	RequestID     *uint           `gorm:"uniqueIndex"`
	Request       *ContactRequest `gorm:"foreignKey:RequestID;constraint:OnDelete:SET NULL"`
	StudentUserID uint            `gorm:"not null;index"`
	TeacherUserID uint            `gorm:"not null;index"`
	Student       User            `gorm:"foreignKey:StudentUserID;constraint:OnDelete:CASCADE"`
	Teacher       User            `gorm:"foreignKey:TeacherUserID;constraint:OnDelete:CASCADE"`
}

func (c *Conversation) IsParticipant(userID uint) bool {
	return c.StudentUserID == userID || c.TeacherUserID == userID
}

// PartnerOf returns the other participant's id.
func (c *Conversation) PartnerOf(userID uint) uint {
	if c.StudentUserID == userID {
		return c.TeacherUserID
	}
	return c.StudentUserID
}

type Message struct {
	ID             uint         `gorm:"primaryKey"`
	ConversationID uint         `gorm:"not null;index:idx_message_conversation_created,priority:1"`
	Conversation   Conversation `gorm:"foreignKey:ConversationID;constraint:OnDelete:CASCADE"`
	SenderUserID   uint         `gorm:"not null;index"`
	Sender         User         `gorm:"foreignKey:SenderUserID;constraint:OnDelete:CASCADE"`
	Content        string       `gorm:"type:text;not null"`
	CreatedAt      time.Time    `gorm:"not null;index:idx_message_conversation_created,priority:2"`
}
