package models

import "time"

// TeacherProfile is keyed by its owner's user id.
// RatingAvg and ReviewsCount are derived from reviews and never set by clients.
type TeacherProfile struct {
	UserID       uint     `gorm:"primaryKey;autoIncrement:false"`
	User         User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Bio          *string  `gorm:"type:text"`
	City         *string  `gorm:"size:100;index"`
	HourlyRate   *float64 `gorm:"type:numeric(10,2)"`
	RatingAvg    *float64 `gorm:"type:numeric(3,2)"`
	ReviewsCount int      `gorm:"not null;default:0"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type StudentProfile struct {
	UserID    uint          `gorm:"primaryKey;autoIncrement:false"`
	User      User          `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	City      *string       `gorm:"size:255"`
	Level     *StudentLevel `gorm:"type:varchar(20)"`
	Track     *string       `gorm:"size:255"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
