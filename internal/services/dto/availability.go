package dto

import (
	"time"

	"github.com/deouf-dev/talemy-api/internal/models"
)

type CreateSlotRequest struct {
	DayOfWeek *int   `json:"dayOfWeek" validate:"required,min=0,max=6"`
	StartTime string `json:"startTime" validate:"required,clock"`
	EndTime   string `json:"endTime" validate:"required,clock"`
}

// UpdateSlotRequest fields are optional but at least one must be set.
type UpdateSlotRequest struct {
	DayOfWeek *int    `json:"dayOfWeek" validate:"omitempty,min=0,max=6"`
	StartTime *string `json:"startTime" validate:"omitempty,clock"`
	EndTime   *string `json:"endTime" validate:"omitempty,clock"`
}

func (r *UpdateSlotRequest) IsEmpty() bool {
	return r.DayOfWeek == nil && r.StartTime == nil && r.EndTime == nil
}

type SlotResponse struct {
	ID            uint      `json:"id"`
	TeacherUserID uint      `json:"teacherUserId"`
	DayOfWeek     int       `json:"dayOfWeek"`
	StartTime     string    `json:"startTime"`
	EndTime       string    `json:"endTime"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func NewSlotResponse(s *models.AvailabilitySlot) *SlotResponse {
	return &SlotResponse{
		ID:            s.ID,
		TeacherUserID: s.TeacherUserID,
		DayOfWeek:     s.DayOfWeek,
		StartTime:     FormatClock(time.Duration(s.StartTime)),
		EndTime:       FormatClock(time.Duration(s.EndTime)),
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
