package models

type Subject struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"size:100;uniqueIndex;not null"`
}

// TeacherSubject joins a teacher to the subjects they teach.
type TeacherSubject struct {
	TeacherUserID uint    `gorm:"primaryKey;autoIncrement:false"`
	SubjectID     uint    `gorm:"primaryKey;autoIncrement:false;index"`
	Teacher       User    `gorm:"foreignKey:TeacherUserID;constraint:OnDelete:CASCADE"`
	Subject       Subject `gorm:"foreignKey:SubjectID;constraint:OnDelete:CASCADE"`
}
