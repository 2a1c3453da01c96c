package services

import (
	"strings"
	"unicode/utf8"

	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/repositories"
	"github.com/deouf-dev/talemy-api/internal/services/dto"
	"github.com/deouf-dev/talemy-api/pkg/apperrors"

	"gorm.io/gorm"
)

// TeacherService covers the teacher profile, its taught subjects and the
// public teacher directory.
type TeacherService interface {
	// Own profile
	GetMe(db *gorm.DB, userID uint) (*dto.TeacherProfileResponse, error)
	UpdateMe(db *gorm.DB, userID uint, req *dto.UpdateTeacherProfileRequest) (*dto.TeacherProfileResponse, error)
	// ReplaceSubjects swaps the whole subject set in one transaction. Unknown
	// subject ids fail the call.
	ReplaceSubjects(db *gorm.DB, userID uint, subjectIDs []uint) ([]dto.SubjectResponse, error)

	// Public directory
	GetByUserID(db *gorm.DB, userID uint) (*dto.TeacherProfileResponse, error)
	Search(db *gorm.DB, query *dto.TeacherSearchQuery) (*dto.TeacherListResponse, error)
}

type TeacherServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	subjectRepo repositories.SubjectRepository
}

// NewTeacherService returns the service backed by the profile and subject repositories.
func NewTeacherService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	subjectRepo repositories.SubjectRepository,
) TeacherService {
	return &TeacherServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		subjectRepo: subjectRepo,
	}
}

func (s *TeacherServiceImpl) GetMe(db *gorm.DB, userID uint) (*dto.TeacherProfileResponse, error) {
	return s.GetByUserID(db, userID)
}

func (s *TeacherServiceImpl) UpdateMe(db *gorm.DB, userID uint, req *dto.UpdateTeacherProfileRequest) (*dto.TeacherProfileResponse, error) {
	updates := map[string]interface{}{}

	if req.Bio != nil {
		bio := strings.TrimSpace(*req.Bio)
		if n := utf8.RuneCountInString(bio); n < 1 || n > 2000 {
			return nil, apperrors.NewValidationError("Bio must be between 1 and 2000 characters")
		}
		updates["bio"] = bio
	}
	if req.City != nil {
		city := strings.TrimSpace(*req.City)
		if n := utf8.RuneCountInString(city); n < 1 || n > 100 {
			return nil, apperrors.NewValidationError("City must be between 1 and 100 characters")
		}
		updates["city"] = city
	}
	if req.HourlyRate != nil {
		if *req.HourlyRate <= 0 {
			return nil, apperrors.NewValidationError("Hourly rate must be greater than 0")
		}
		updates["hourly_rate"] = repositories.RoundTo2(*req.HourlyRate)
	}
	if len(updates) == 0 {
		return nil, apperrors.NewValidationError(msgAtLeastOneField)
	}

	if _, err := s.findTeacher(db, userID); err != nil {
		return nil, err
	}
	if err := s.profileRepo.UpdateTeacherProfile(db, userID, updates); err != nil {
		return nil, notFoundOr(err, repositories.ErrProfileNotFound, msgTeacherNotFound)
	}
	return s.GetByUserID(db, userID)
}

// ReplaceSubjects swaps the teacher's whole subject set in one transaction.
func (s *TeacherServiceImpl) ReplaceSubjects(db *gorm.DB, userID uint, subjectIDs []uint) ([]dto.SubjectResponse, error) {
	ids := uniqueIDs(subjectIDs)

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.findTeacher(tx, userID); err != nil {
		return nil, err
	}

	if len(ids) > 0 {
		count, err := s.subjectRepo.CountByIDs(tx, ids)
		if err != nil {
			return nil, apperrors.InternalError(err)
		}
		if count != int64(len(ids)) {
			return nil, apperrors.NewValidationError("One or more subjects do not exist")
		}
	}

	if err := s.subjectRepo.ReplaceTeacherSubjects(tx, userID, ids); err != nil {
		return nil, apperrors.InternalError(err)
	}
	subjects, err := s.subjectRepo.FindForTeacher(tx, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewSubjectResponses(subjects), nil
}

func (s *TeacherServiceImpl) GetByUserID(db *gorm.DB, userID uint) (*dto.TeacherProfileResponse, error) {
	user, err := s.findTeacher(db, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.FindTeacherProfile(db, userID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrProfileNotFound, msgTeacherNotFound)
	}
	subjects, err := s.subjectRepo.FindForTeacher(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.TeacherProfileResponse{
		UserID:       user.ID,
		Name:         user.Name,
		Surname:      user.Surname,
		Email:        user.Email,
		Bio:          profile.Bio,
		City:         profile.City,
		HourlyRate:   profile.HourlyRate,
		RatingAvg:    profile.RatingAvg,
		ReviewsCount: profile.ReviewsCount,
		Subjects:     dto.NewSubjectResponses(subjects),
	}, nil
}

func (s *TeacherServiceImpl) Search(db *gorm.DB, query *dto.TeacherSearchQuery) (*dto.TeacherListResponse, error) {
	page, pageSize := query.Page, query.PageSize
	if page == 0 {
		page = DefaultPage
	}
	if pageSize == 0 {
		pageSize = DefaultPageSize
	}
	page, pageSize = NormalizePage(page, pageSize)

	rows, total, err := s.profileRepo.SearchTeachers(db, repositories.TeacherFilter{
		City:      strings.TrimSpace(query.City),
		SubjectID: query.SubjectID,
		Limit:     pageSize,
		Offset:    offsetFor(page, pageSize),
	})
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.UserID)
	}
	subjects, err := s.subjectRepo.FindForTeachers(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.TeacherListItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, &dto.TeacherListItem{
			ID:           row.UserID,
			Name:         row.Name,
			Surname:      row.Surname,
			Email:        row.Email,
			City:         row.City,
			HourlyRate:   row.HourlyRate,
			RatingAvg:    row.RatingAvg,
			ReviewsCount: row.ReviewsCount,
			Bio:          row.Bio,
			Subjects:     dto.NewSubjectResponses(subjects[row.UserID]),
		})
	}

	return &dto.TeacherListResponse{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

func (s *TeacherServiceImpl) findTeacher(db *gorm.DB, userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrUserNotFound, msgTeacherNotFound)
	}
	if !user.IsTeacher() {
		return nil, apperrors.NewNotFoundError(msgTeacherNotFound)
	}
	return user, nil
}

func uniqueIDs(ids []uint) []uint {
	seen := make(map[uint]struct{}, len(ids))
	out := make([]uint, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
