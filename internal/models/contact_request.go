package models

import "fmt"

type ContactRequest struct {
	BaseModel
	StudentUserID uint                 `gorm:"not null;index"`
	TeacherUserID uint                 `gorm:"not null;index"`
	Student       User                 `gorm:"foreignKey:StudentUserID;constraint:OnDelete:CASCADE"`
	Teacher       User                 `gorm:"foreignKey:TeacherUserID;constraint:OnDelete:CASCADE"`
	Status        ContactRequestStatus `gorm:"type:varchar(20);not null;default:'PENDING';index"`
	Message       string               `gorm:"type:text;not null"`

	// PendingKey is "<student>:<teacher>" while the request is PENDING and NULL after,
	// so the unique index allows at most one pending request per pair.
	PendingKey *string `gorm:"size:64;uniqueIndex"`
}

func PendingKeyFor(studentUserID, teacherUserID uint) *string {
	key := fmt.Sprintf("%d:%d", studentUserID, teacherUserID)
	return &key
}

func (r *ContactRequest) IsParticipant(userID uint) bool {
	return r.StudentUserID == userID || r.TeacherUserID == userID
}
