package models

import "gorm.io/datatypes"

// AvailabilitySlot is a weekly recurring window [StartTime, EndTime) on DayOfWeek (0 = Sunday).
type AvailabilitySlot struct {
	BaseModel
	TeacherUserID uint           `gorm:"not null;index:idx_slot_teacher_day,priority:1"`
	Teacher       User           `gorm:"foreignKey:TeacherUserID;constraint:OnDelete:CASCADE"`
	DayOfWeek     int            `gorm:"not null;index:idx_slot_teacher_day,priority:2;check:day_of_week >= 0 AND day_of_week <= 6"`
	StartTime     datatypes.Time `gorm:"not null"`
	EndTime       datatypes.Time `gorm:"not null"`
}

// Overlaps reports whether two half-open intervals intersect. Touching edges do not.
func (s *AvailabilitySlot) Overlaps(start, end datatypes.Time) bool {
	return s.StartTime < end && start < s.EndTime
}
