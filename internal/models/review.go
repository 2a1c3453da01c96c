package models

type Review struct {
	BaseModel
	TeacherUserID uint    `gorm:"not null;uniqueIndex:idx_review_teacher_student,priority:1"`
	StudentUserID uint    `gorm:"not null;uniqueIndex:idx_review_teacher_student,priority:2;index"`
	Teacher       User    `gorm:"foreignKey:TeacherUserID;constraint:OnDelete:CASCADE"`
	Student       User    `gorm:"foreignKey:StudentUserID;constraint:OnDelete:CASCADE"`
	Rating        int     `gorm:"not null;check:rating >= 1 AND rating <= 5"`
	Comment       *string `gorm:"size:1000"`
}
