package models

import "time"

// Lesson carries one status per side. Each participant only ever writes their own.
type Lesson struct {
	BaseModel
	TeacherUserID    uint         `gorm:"not null;index"`
	StudentUserID    uint         `gorm:"not null;index"`
	SubjectID        uint         `gorm:"not null;index"`
	Teacher          User         `gorm:"foreignKey:TeacherUserID;constraint:OnDelete:CASCADE"`
	Student          User         `gorm:"foreignKey:StudentUserID;constraint:OnDelete:CASCADE"`
	Subject          Subject      `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE"`
	StartAt          time.Time    `gorm:"not null;index"`
	DurationMin      int          `gorm:"not null;check:duration_min > 0"`
	StatusForTeacher LessonStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
	StatusForStudent LessonStatus `gorm:"type:varchar(20);not null;default:'PENDING'"`
}

func (l *Lesson) IsParticipant(userID uint) bool {
	return l.TeacherUserID == userID || l.StudentUserID == userID
}

// StatusColumnFor names the status column owned by userID in this lesson.
func (l *Lesson) StatusColumnFor(userID uint) string {
	if l.TeacherUserID == userID {
		return "status_for_teacher"
	}
	return "status_for_student"
}
