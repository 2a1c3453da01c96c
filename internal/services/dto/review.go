package dto

import (
	"time"

	"github.com/deouf-dev/talemy-api/internal/models"
)

// ======================
// Request DTOs
// ======================

type CreateReviewRequest struct {
	TeacherUserID uint    `json:"teacherUserId" validate:"required"`
	Rating        int     `json:"rating" validate:"required,min=1,max=5"`
	Comment       *string `json:"comment" validate:"omitempty"`
}

type UpdateReviewRequest struct {
	Rating  *int    `json:"rating" validate:"omitempty,min=1,max=5"`
	Comment *string `json:"comment"`
}

func (r *UpdateReviewRequest) IsEmpty() bool {
	return r.Rating == nil && r.Comment == nil
}

// ======================
// Response DTOs
// ======================

type ReviewResponse struct {
	ID            uint        `json:"id"`
	TeacherUserID uint        `json:"teacherUserId"`
	StudentUserID uint        `json:"studentUserId"`
	Student       *PublicUser `json:"student,omitempty"`
	Rating        int         `json:"rating"`
	Comment       *string     `json:"comment"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     time.Time   `json:"updatedAt"`
}

type ReviewListResponse struct {
	Items    []*ReviewResponse `json:"items"`
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
	Total    int64             `json:"total"`
}

func NewReviewResponse(r *models.Review, student *models.User) *ReviewResponse {
	return &ReviewResponse{
		ID:            r.ID,
		TeacherUserID: r.TeacherUserID,
		StudentUserID: r.StudentUserID,
		Student:       NewPublicUser(student),
		Rating:        r.Rating,
		Comment:       r.Comment,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
