package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/repositories"
	"github.com/deouf-dev/talemy-api/internal/services/dto"
	"github.com/deouf-dev/talemy-api/pkg/apperrors"

	"gorm.io/gorm"
)

const maxContactMessageLength = 1000

// ContactRequestService drives the PENDING -> ACCEPTED | REJECTED lifecycle.
// Accepting a request opens its conversation in the same transaction, and
// both parties are notified once the change is committed.
type ContactRequestService interface {
	Create(db *gorm.DB, studentID uint, req *dto.CreateContactRequestRequest) (*dto.ContactRequestResponse, error)
	UpdateStatus(db *gorm.DB, requestID, actorID uint, status models.ContactRequestStatus) (*dto.ContactRequestStatusResponse, error)
	// Cancel deletes the request. An existing conversation keeps its messages
	// but becomes read-only.
	Cancel(db *gorm.DB, requestID, actorID uint) error
	ListMine(db *gorm.DB, userID uint, role models.UserRole, status *models.ContactRequestStatus) ([]*dto.ContactRequestResponse, error)
}

type ContactRequestServiceImpl struct {
	requestRepo      repositories.ContactRequestRepository
	conversationRepo repositories.ConversationRepository
	userRepo         repositories.UserRepository
	notifier         Notifier
}

// NewContactRequestService builds the service. A nil notifier disables pushes.
func NewContactRequestService(
	requestRepo repositories.ContactRequestRepository,
	conversationRepo repositories.ConversationRepository,
	userRepo repositories.UserRepository,
	notifier Notifier,
) ContactRequestService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &ContactRequestServiceImpl{
		requestRepo:      requestRepo,
		conversationRepo: conversationRepo,
		userRepo:         userRepo,
		notifier:         notifier,
	}
}

func (s *ContactRequestServiceImpl) Create(db *gorm.DB, studentID uint, req *dto.CreateContactRequestRequest) (*dto.ContactRequestResponse, error) {
	if req.TeacherUserID == 0 {
		return nil, apperrors.NewValidationError("teacherUserId is required")
	}
	if req.TeacherUserID == studentID {
		return nil, apperrors.NewValidationError("You cannot contact yourself")
	}
	message := strings.TrimSpace(req.Message)
	if message == "" || utf8.RuneCountInString(message) > maxContactMessageLength {
		return nil, apperrors.NewValidationError("Message must be between 1 and 1000 characters")
	}

	teacher, err := s.userRepo.FindByID(db, req.TeacherUserID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrUserNotFound, msgTeacherNotFound)
	}
	if !teacher.IsTeacher() {
		return nil, apperrors.NewNotFoundError(msgTeacherNotFound)
	}
	student, err := s.userRepo.FindByID(db, studentID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrUserNotFound, msgStudentNotFound)
	}

	exists, err := s.requestRepo.ExistsPending(db, studentID, teacher.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.NewConflictError(msgPendingRequestExists)
	}

	request := &models.ContactRequest{
		StudentUserID: studentID,
		TeacherUserID: teacher.ID,
		Message:       message,
	}
	if err := s.requestRepo.Create(db, request); err != nil {
		if errors.Is(err, repositories.ErrPendingRequestExists) {
			return nil, apperrors.NewConflictError(msgPendingRequestExists)
		}
		return nil, apperrors.InternalError(err)
	}

	resp := dto.NewContactRequestResponse(request, student)
	s.notifier.NotifyUsers(EventContactRequestCreated,
		map[string]interface{}{"contactRequest": resp},
		request.StudentUserID, request.TeacherUserID)

	return resp, nil
}

// UpdateStatus moves a PENDING request to ACCEPTED or REJECTED. Acceptance
// creates the conversation in the same transaction.
func (s *ContactRequestServiceImpl) UpdateStatus(db *gorm.DB, requestID, actorID uint, status models.ContactRequestStatus) (*dto.ContactRequestStatusResponse, error) {
	if status != models.ContactRequestStatusAccepted && status != models.ContactRequestStatusRejected {
		return nil, apperrors.NewValidationError("Status must be ACCEPTED or REJECTED")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	request, err := s.requestRepo.FindByID(tx, requestID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrContactRequestNotFound, msgRequestNotFound)
	}
	if request.TeacherUserID != actorID {
		return nil, apperrors.NewForbiddenError("Only the addressed teacher can update this request")
	}
	if request.Status.IsTerminal() {
		return nil, alreadyDecided(request.Status)
	}

	moved, err := s.requestRepo.TransitionFromPending(tx, request.ID, status)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if !moved {
		current, err := s.requestRepo.FindByID(tx, request.ID)
		if err != nil {
			return nil, notFoundOr(err, repositories.ErrContactRequestNotFound, msgRequestNotFound)
		}
		return nil, alreadyDecided(current.Status)
	}

	var conversation *models.Conversation
	if status == models.ContactRequestStatusAccepted {
		conversation = &models.Conversation{
			RequestID:     &request.ID,
			StudentUserID: request.StudentUserID,
			TeacherUserID: request.TeacherUserID,
		}
		if err := s.conversationRepo.Create(tx, conversation); err != nil {
			if errors.Is(err, repositories.ErrConversationExists) {
				return nil, apperrors.NewConflictError("A conversation already exists for this request")
			}
			return nil, apperrors.InternalError(err)
		}
	}

	updated, err := s.requestRepo.FindByID(tx, request.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	student, err := s.userRepo.FindByID(tx, updated.StudentUserID)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	resp := &dto.ContactRequestStatusResponse{
		ContactRequestResponse: *dto.NewContactRequestResponse(updated, student),
		Conversation:           dto.NewConversationResponse(conversation),
	}
	s.notifier.NotifyUsers(EventContactRequestStatusUpdated,
		map[string]interface{}{
			"contactRequest": resp.ContactRequestResponse,
			"conversation":   resp.Conversation,
		},
		updated.StudentUserID, updated.TeacherUserID)

	return resp, nil
}

// Cancel removes the request. A conversation created from it stays but loses
// its request link and becomes inactive.
func (s *ContactRequestServiceImpl) Cancel(db *gorm.DB, requestID, actorID uint) error {
	request, err := s.requestRepo.FindByID(db, requestID)
	if err != nil {
		return notFoundOr(err, repositories.ErrContactRequestNotFound, msgRequestNotFound)
	}
	if !request.IsParticipant(actorID) {
		return apperrors.NewForbiddenError("You are not a party to this contact request")
	}
	if err := s.requestRepo.Delete(db, requestID); err != nil {
		return notFoundOr(err, repositories.ErrContactRequestNotFound, msgRequestNotFound)
	}
	return nil
}

func (s *ContactRequestServiceImpl) ListMine(db *gorm.DB, userID uint, role models.UserRole, status *models.ContactRequestStatus) ([]*dto.ContactRequestResponse, error) {
	if status != nil && !status.IsValid() {
		return nil, apperrors.NewValidationError("Invalid status filter")
	}

	var (
		requests []models.ContactRequest
		err      error
	)
	switch role {
	case models.UserRoleStudent:
		requests, err = s.requestRepo.FindForStudent(db, userID, status)
	case models.UserRoleTeacher:
		requests, err = s.requestRepo.FindForTeacher(db, userID, status)
	default:
		return nil, apperrors.NewValidationError(msgInvalidRoleForListing)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ids := make([]uint, 0, len(requests))
	for _, r := range requests {
		ids = append(ids, r.StudentUserID)
	}
	students, err := s.userRepo.FindByIDs(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.ContactRequestResponse, 0, len(requests))
	for i := range requests {
		out = append(out, dto.NewContactRequestResponse(&requests[i], students[requests[i].StudentUserID]))
	}
	return out, nil
}

func alreadyDecided(status models.ContactRequestStatus) error {
	return apperrors.NewConflictError(fmt.Sprintf("Contact request has already been %s", strings.ToLower(string(status))))
}
