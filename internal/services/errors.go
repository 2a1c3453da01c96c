package services

import (
	"errors"

	"github.com/deouf-dev/talemy-api/pkg/apperrors"
)

// Messages shared by several services.
const (
	msgUserNotFound          = "User not found"
	msgTeacherNotFound       = "Teacher not found"
	msgStudentNotFound       = "Student not found"
	msgSubjectNotFound       = "Subject not found"
	msgSlotNotFound          = "Availability slot not found"
	msgRequestNotFound       = "Contact request not found"
	msgConversationNotFound  = "Conversation not found"
	msgLessonNotFound        = "Lesson not found"
	msgReviewNotFound        = "Review not found"
	msgNotParticipant        = "You are not a participant of this conversation"
	msgConversationInactive  = "Contact request is not accepted"
	msgSlotOverlap           = "This slot overlaps with an existing availability slot"
	msgPendingRequestExists  = "A pending contact request already exists"
	msgReviewExists          = "You have already reviewed this teacher"
	msgEmailInUse            = "Email is already in use"
	msgInvalidCredentials    = "Invalid email or password"
	msgAtLeastOneField       = "At least one field must be provided"
	msgLessonNotParticipant  = "You are not a participant of this lesson"
	msgInvalidRoleForListing = "Invalid role for this operation"
)

// notFoundOr maps a repository "not found" sentinel to a 404 AppError and
// anything else to an internal error.
func notFoundOr(err error, sentinel error, message string) error {
	if errors.Is(err, sentinel) {
		return apperrors.NewNotFoundError(message)
	}
	return apperrors.InternalError(err)
}
