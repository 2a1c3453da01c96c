package services

import (
	"time"

	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/repositories"
	"github.com/deouf-dev/talemy-api/internal/services/dto"
	"github.com/deouf-dev/talemy-api/pkg/apperrors"

	"gorm.io/gorm"
)

// LessonService schedules lessons between a teacher and a student. Each side
// owns its own status field and can only change that one.
type LessonService interface {
	// Lesson operations
	Create(db *gorm.DB, actorID uint, req *dto.CreateLessonRequest) (*dto.LessonResponse, error)
	GetByID(db *gorm.DB, lessonID, actorID uint) (*dto.LessonResponse, error)
	UpdateStatus(db *gorm.DB, lessonID, actorID uint, status models.LessonStatus) (*dto.LessonResponse, error)
	Delete(db *gorm.DB, lessonID, actorID uint) error

	// Listing
	ListForUser(db *gorm.DB, userID uint, role models.UserRole, status *models.LessonStatus, page, pageSize int) (*dto.LessonListResponse, error)
	ListUpcoming(db *gorm.DB, userID uint, role models.UserRole, limit int) ([]*dto.LessonResponse, error)
}

type LessonServiceImpl struct {
	lessonRepo  repositories.LessonRepository
	userRepo    repositories.UserRepository
	subjectRepo repositories.SubjectRepository
	now         func() time.Time
}

// NewLessonService returns a lesson service using the wall clock.
func NewLessonService(
	lessonRepo repositories.LessonRepository,
	userRepo repositories.UserRepository,
	subjectRepo repositories.SubjectRepository,
) LessonService {
	return &LessonServiceImpl{
		lessonRepo:  lessonRepo,
		userRepo:    userRepo,
		subjectRepo: subjectRepo,
		now:         time.Now,
	}
}

func (s *LessonServiceImpl) Create(db *gorm.DB, actorID uint, req *dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	if req.TeacherUserID == req.StudentUserID {
		return nil, apperrors.NewValidationError("Teacher and student must be different users")
	}
	if req.DurationMin <= 0 {
		return nil, apperrors.NewValidationError("durationMin must be a positive integer")
	}
	if !req.StartAt.After(s.now()) {
		return nil, apperrors.NewValidationError("startAt must be in the future")
	}
	if actorID != req.TeacherUserID && actorID != req.StudentUserID {
		return nil, apperrors.NewForbiddenError("You can only create lessons you take part in")
	}

	teacher, err := s.userRepo.FindByID(db, req.TeacherUserID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrUserNotFound, msgTeacherNotFound)
	}
	if !teacher.IsTeacher() {
		return nil, apperrors.NewNotFoundError(msgTeacherNotFound)
	}
	if _, err := s.userRepo.FindByID(db, req.StudentUserID); err != nil {
		return nil, notFoundOr(err, repositories.ErrUserNotFound, msgStudentNotFound)
	}
	if _, err := s.subjectRepo.FindByID(db, req.SubjectID); err != nil {
		return nil, notFoundOr(err, repositories.ErrSubjectNotFound, msgSubjectNotFound)
	}

	lesson := &models.Lesson{
		TeacherUserID:    req.TeacherUserID,
		StudentUserID:    req.StudentUserID,
		SubjectID:        req.SubjectID,
		StartAt:          req.StartAt.UTC(),
		DurationMin:      req.DurationMin,
		StatusForTeacher: models.LessonStatusPending,
		StatusForStudent: models.LessonStatusPending,
	}
	if err := s.lessonRepo.Create(db, lesson); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewLessonResponse(lesson), nil
}

func (s *LessonServiceImpl) GetByID(db *gorm.DB, lessonID, actorID uint) (*dto.LessonResponse, error) {
	lesson, err := s.findForParticipant(db, lessonID, actorID)
	if err != nil {
		return nil, err
	}
	return dto.NewLessonResponse(lesson), nil
}

// UpdateStatus writes only the status column owned by the actor.
func (s *LessonServiceImpl) UpdateStatus(db *gorm.DB, lessonID, actorID uint, status models.LessonStatus) (*dto.LessonResponse, error) {
	if !status.IsValid() {
		return nil, apperrors.NewValidationError("Status must be PENDING, CONFIRMED or CANCELLED")
	}

	lesson, err := s.findForParticipant(db, lessonID, actorID)
	if err != nil {
		return nil, err
	}

	if err := s.lessonRepo.UpdateStatusColumn(db, lesson.ID, lesson.StatusColumnFor(actorID), status); err != nil {
		return nil, notFoundOr(err, repositories.ErrLessonNotFound, msgLessonNotFound)
	}

	updated, err := s.lessonRepo.FindByID(db, lesson.ID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrLessonNotFound, msgLessonNotFound)
	}
	return dto.NewLessonResponse(updated), nil
}

func (s *LessonServiceImpl) ListForUser(db *gorm.DB, userID uint, role models.UserRole, status *models.LessonStatus, page, pageSize int) (*dto.LessonListResponse, error) {
	column, statusColumn, err := lessonColumnsFor(role)
	if err != nil {
		return nil, err
	}

	filter := repositories.LessonFilter{
		UserID:       userID,
		Column:       column,
		StatusColumn: statusColumn,
	}
	if status != nil {
		if !status.IsValid() {
			return nil, apperrors.NewValidationError("Invalid status filter")
		}
		filter.Statuses = []models.LessonStatus{*status}
	}

	page, pageSize = NormalizePage(page, pageSize)
	filter.Limit = pageSize
	filter.Offset = offsetFor(page, pageSize)

	lessons, total, err := s.lessonRepo.Find(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.LessonListResponse{
		Items:    lessonResponses(lessons),
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

// ListUpcoming returns future lessons the caller has not cancelled, soonest first.
func (s *LessonServiceImpl) ListUpcoming(db *gorm.DB, userID uint, role models.UserRole, limit int) ([]*dto.LessonResponse, error) {
	column, statusColumn, err := lessonColumnsFor(role)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = UpcomingLessonCap
	}
	now := s.now()

	lessons, _, err := s.lessonRepo.Find(db, repositories.LessonFilter{
		UserID:       userID,
		Column:       column,
		StatusColumn: statusColumn,
		Statuses:     []models.LessonStatus{models.LessonStatusPending, models.LessonStatusConfirmed},
		From:         &now,
		Ascending:    true,
		Limit:        ClampInt(limit, 1, MaxListLimit),
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return lessonResponses(lessons), nil
}

func (s *LessonServiceImpl) Delete(db *gorm.DB, lessonID, actorID uint) error {
	if _, err := s.findForParticipant(db, lessonID, actorID); err != nil {
		return err
	}
	if err := s.lessonRepo.Delete(db, lessonID); err != nil {
		return notFoundOr(err, repositories.ErrLessonNotFound, msgLessonNotFound)
	}
	return nil
}

func (s *LessonServiceImpl) findForParticipant(db *gorm.DB, lessonID, actorID uint) (*models.Lesson, error) {
	lesson, err := s.lessonRepo.FindByID(db, lessonID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrLessonNotFound, msgLessonNotFound)
	}
	if !lesson.IsParticipant(actorID) {
		return nil, apperrors.NewForbiddenError(msgLessonNotParticipant)
	}
	return lesson, nil
}

func lessonColumnsFor(role models.UserRole) (string, string, error) {
	switch role {
	case models.UserRoleTeacher:
		return "teacher_user_id", "status_for_teacher", nil
	case models.UserRoleStudent:
		return "student_user_id", "status_for_student", nil
	}
	return "", "", apperrors.NewValidationError(msgInvalidRoleForListing)
}

func lessonResponses(lessons []models.Lesson) []*dto.LessonResponse {
	out := make([]*dto.LessonResponse, 0, len(lessons))
	for i := range lessons {
		out = append(out, dto.NewLessonResponse(&lessons[i]))
	}
	return out
}
