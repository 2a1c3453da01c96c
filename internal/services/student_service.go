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

// StudentService reads and edits student profiles.
type StudentService interface {
	GetMe(db *gorm.DB, userID uint) (*dto.StudentProfileResponse, error)
	UpdateMe(db *gorm.DB, userID uint, req *dto.UpdateStudentProfileRequest) (*dto.StudentProfileResponse, error)
	GetByUserID(db *gorm.DB, userID uint) (*dto.StudentProfileResponse, error)
}

type StudentServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

func NewStudentService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
) StudentService {
	return &StudentServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func (s *StudentServiceImpl) GetMe(db *gorm.DB, userID uint) (*dto.StudentProfileResponse, error) {
	return s.GetByUserID(db, userID)
}

func (s *StudentServiceImpl) UpdateMe(db *gorm.DB, userID uint, req *dto.UpdateStudentProfileRequest) (*dto.StudentProfileResponse, error) {
	updates := map[string]interface{}{}

	if req.City != nil {
		city := strings.TrimSpace(*req.City)
		if n := utf8.RuneCountInString(city); n < 1 || n > 255 {
			return nil, apperrors.NewValidationError("City must be between 1 and 255 characters")
		}
		updates["city"] = city
	}
	if req.Level != nil {
		if !req.Level.IsValid() {
			return nil, apperrors.NewValidationError("Level must be one of MIDDLE_SCHOOL, HIGH_SCHOOL, UNIVERSITY, OTHER")
		}
		updates["level"] = *req.Level
	}
	if req.Track != nil {
		track := strings.TrimSpace(*req.Track)
		if n := utf8.RuneCountInString(track); n < 1 || n > 255 {
			return nil, apperrors.NewValidationError("Track must be between 1 and 255 characters")
		}
		updates["track"] = track
	}
	if len(updates) == 0 {
		return nil, apperrors.NewValidationError(msgAtLeastOneField)
	}

	if _, err := s.findStudent(db, userID); err != nil {
		return nil, err
	}
	if err := s.profileRepo.UpdateStudentProfile(db, userID, updates); err != nil {
		return nil, notFoundOr(err, repositories.ErrProfileNotFound, msgStudentNotFound)
	}
	return s.GetByUserID(db, userID)
}

func (s *StudentServiceImpl) GetByUserID(db *gorm.DB, userID uint) (*dto.StudentProfileResponse, error) {
	user, err := s.findStudent(db, userID)
	if err != nil {
		return nil, err
	}
	profile, err := s.profileRepo.FindStudentProfile(db, userID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrProfileNotFound, msgStudentNotFound)
	}

	return &dto.StudentProfileResponse{
		UserID:  user.ID,
		Name:    user.Name,
		Surname: user.Surname,
		Email:   user.Email,
		City:    profile.City,
		Level:   profile.Level,
		Track:   profile.Track,
	}, nil
}

func (s *StudentServiceImpl) findStudent(db *gorm.DB, userID uint) (*models.User, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrUserNotFound, msgStudentNotFound)
	}
	if !user.IsStudent() {
		return nil, apperrors.NewNotFoundError(msgStudentNotFound)
	}
	return user, nil
}
