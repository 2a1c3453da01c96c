package dto

import (
	"time"

	"github.com/deouf-dev/talemy-api/internal/models"
)

type CreateLessonRequest struct {
	TeacherUserID uint      `json:"teacherUserId" validate:"required"`
	StudentUserID uint      `json:"studentUserId" validate:"required"`
	SubjectID     uint      `json:"subjectId" validate:"required"`
	StartAt       time.Time `json:"startAt" validate:"required"`
	DurationMin   int       `json:"durationMin" validate:"required,min=1"`
}

type UpdateLessonStatusRequest struct {
	Status models.LessonStatus `json:"status" validate:"required,is-lesson-status"`
}

type LessonQuery struct {
	Status   string `form:"status"`
	Page     int    `form:"page"`
	PageSize int    `form:"pageSize"`
}

type LessonResponse struct {
	ID               uint                `json:"id"`
	TeacherUserID    uint                `json:"teacherUserId"`
	StudentUserID    uint                `json:"studentUserId"`
	SubjectID        uint                `json:"subjectId"`
	StartAt          time.Time           `json:"startAt"`
	DurationMin      int                 `json:"durationMin"`
	StatusForTeacher models.LessonStatus `json:"statusForTeacher"`
	StatusForStudent models.LessonStatus `json:"statusForStudent"`
	CreatedAt        time.Time           `json:"createdAt"`
	UpdatedAt        time.Time           `json:"updatedAt"`
}

type LessonListResponse struct {
	Items    []*LessonResponse `json:"items"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
	Total    int64             `json:"total"`
}

func NewLessonResponse(l *models.Lesson) *LessonResponse {
	return &LessonResponse{
		ID:               l.ID,
		TeacherUserID:    l.TeacherUserID,
		StudentUserID:    l.StudentUserID,
		SubjectID:        l.SubjectID,
		StartAt:          l.StartAt,
		DurationMin:      l.DurationMin,
		StatusForTeacher: l.StatusForTeacher,
		StatusForStudent: l.StatusForStudent,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}
