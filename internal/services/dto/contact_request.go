package dto

import (
	"time"

	"github.com/deouf-dev/talemy-api/internal/models"
)

type CreateContactRequestRequest struct {
	TeacherUserID uint   `json:"teacherUserId" validate:"required"`
	Message       string `json:"message" validate:"required"`
}

type UpdateContactRequestStatusRequest struct {
	Status models.ContactRequestStatus `json:"status" validate:"required,oneof=ACCEPTED REJECTED"`
}

type ContactRequestQuery struct {
	Status string `form:"status"`
}

type ContactRequestResponse struct {
	ID            uint                        `json:"id"`
	StudentUserID uint                        `json:"studentUserId"`
	TeacherUserID uint                        `json:"teacherUserId"`
	Student       *PublicUser                 `json:"student,omitempty"`
	Status        models.ContactRequestStatus `json:"status"`
	Message       string                      `json:"message"`
	CreatedAt     time.Time                   `json:"createdAt"`
	UpdatedAt     time.Time                   `json:"updatedAt"`
}

// ContactRequestStatusResponse is returned by a status transition.
// Conversation is set when the request was accepted.
type ContactRequestStatusResponse struct {
	ContactRequestResponse
	Conversation *ConversationResponse `json:"conversation"`
}

func NewContactRequestResponse(r *models.ContactRequest, student *models.User) *ContactRequestResponse {
	return &ContactRequestResponse{
		ID:            r.ID,
		StudentUserID: r.StudentUserID,
		TeacherUserID: r.TeacherUserID,
		Student:       NewPublicUser(student),
		Status:        r.Status,
		Message:       r.Message,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}
