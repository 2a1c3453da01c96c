package services

import (
	"errors"
	"strings"

	"github.com/deouf-dev/talemy-api/internal/auth"
	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/repositories"
	"github.com/deouf-dev/talemy-api/internal/services/dto"
	"github.com/deouf-dev/talemy-api/pkg/apperrors"

	"gorm.io/gorm"
)

// AuthService registers and signs in users. Every successful call returns a
// fresh JWT alongside the public user.
type AuthService interface {
	// Register creates the user and its empty role profile in one transaction.
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error)
	Me(db *gorm.DB, userID uint) (*dto.UserResponse, error)
}

type AuthServiceImpl struct {
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
	tokens      *auth.TokenManager
}

// NewAuthService wires the auth service to its repositories and token manager.
func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	tokens *auth.TokenManager,
) AuthService {
	return &AuthServiceImpl{
		userRepo:    userRepo,
		profileRepo: profileRepo,
		tokens:      tokens,
	}
}

// Register creates the user and its empty role profile in one transaction.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	name := strings.TrimSpace(req.Name)
	surname := strings.TrimSpace(req.Surname)
	email := normalizeEmail(req.Email)

	if name == "" || surname == "" {
		return nil, apperrors.NewValidationError("Name and surname are required")
	}
	if req.Role != models.UserRoleStudent && req.Role != models.UserRoleTeacher {
		return nil, apperrors.NewValidationError("Role must be STUDENT or TEACHER")
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if _, err := s.userRepo.FindByEmail(tx, email); err == nil {
		return nil, apperrors.NewConflictError(msgEmailInUse)
	} else if !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Name:         name,
		Surname:      surname,
		Email:        email,
		PasswordHash: hash,
		Role:         req.Role,
	}
	if err := s.userRepo.Create(tx, user); err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			return nil, apperrors.NewConflictError(msgEmailInUse)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := s.createProfile(tx, user); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return s.buildAuthResponse(user)
}

func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.userRepo.FindByEmail(db, normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.NewUnauthorizedError(msgInvalidCredentials)
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.NewUnauthorizedError(msgInvalidCredentials)
	}

	return s.buildAuthResponse(user)
}

func (s *AuthServiceImpl) Me(db *gorm.DB, userID uint) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrUserNotFound, msgUserNotFound)
	}
	return dto.NewUserResponse(user), nil
}

func (s *AuthServiceImpl) createProfile(tx *gorm.DB, user *models.User) error {
	switch user.Role {
	case models.UserRoleTeacher:
		return s.profileRepo.CreateTeacherProfile(tx, &models.TeacherProfile{UserID: user.ID})
	case models.UserRoleStudent:
		return s.profileRepo.CreateStudentProfile(tx, &models.StudentProfile{UserID: user.ID})
	}
	return nil
}

func (s *AuthServiceImpl) buildAuthResponse(user *models.User) (*dto.AuthResponse, error) {
	token, err := s.tokens.Generate(user.ID, user.Role)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return &dto.AuthResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
