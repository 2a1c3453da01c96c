package models

type User struct {
	BaseModel
	Name         string   `gorm:"size:100;not null"`
	Surname      string   `gorm:"size:100;not null"`
	Email        string   `gorm:"size:255;uniqueIndex;not null"`
	PasswordHash string   `gorm:"not null"`
	Role         UserRole `gorm:"type:varchar(20);not null;index"`
}

func (u *User) IsTeacher() bool {
	return u.Role == UserRoleTeacher
}

func (u *User) IsStudent() bool {
	return u.Role == UserRoleStudent
}
