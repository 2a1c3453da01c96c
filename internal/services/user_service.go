package services

import (
	"github.com/deouf-dev/talemy-api/internal/repositories"
	"github.com/deouf-dev/talemy-api/pkg/apperrors"

	"gorm.io/gorm"
)

// UserService covers administrative user operations.
type UserService interface {
	DeleteUser(db *gorm.DB, actorID, userID uint) error
}

type UserServiceImpl struct {
	userRepo    repositories.UserRepository
	reviewRepo  repositories.ReviewRepository
	profileRepo repositories.ProfileRepository
}

// NewUserService builds the admin user service. Deleting a user cascades to
// the rows it owns and refreshes ratings of teachers it had reviewed.
func NewUserService(
	userRepo repositories.UserRepository,
	reviewRepo repositories.ReviewRepository,
	profileRepo repositories.ProfileRepository,
) UserService {
	return &UserServiceImpl{
		userRepo:    userRepo,
		reviewRepo:  reviewRepo,
		profileRepo: profileRepo,
	}
}

// DeleteUser removes a user. Foreign keys cascade to profiles, slots, requests,
// conversations, messages, lessons and reviews.
func (s *UserServiceImpl) DeleteUser(db *gorm.DB, actorID, userID uint) error {
	if actorID == userID {
		return apperrors.NewForbiddenError("Operation on self is not allowed")
	}

	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	// Teachers reviewed by this user need their stored rating refreshed once
	// the cascade removed the reviews.
	reviews, _, err := s.reviewRepo.FindByStudent(tx, userID, -1, -1)
	if err != nil {
		return apperrors.InternalError(err)
	}

	if err := s.userRepo.Delete(tx, userID); err != nil {
		return notFoundOr(err, repositories.ErrUserNotFound, msgUserNotFound)
	}

	for _, review := range reviews {
		if err := recomputeTeacherRating(tx, s.reviewRepo, s.profileRepo, review.TeacherUserID); err != nil {
			return apperrors.InternalError(err)
		}
	}

	return tx.Commit().Error
}
