package services

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/repositories"
	"github.com/deouf-dev/talemy-api/internal/services/dto"
	"github.com/deouf-dev/talemy-api/pkg/apperrors"

	"gorm.io/gorm"
)

const maxReviewCommentLength = 1000

// ReviewService lets students rate teachers, one review per pair. Every
// mutation recomputes the teacher's rating_avg and reviews_count.
type ReviewService interface {
	// Review operations
	Create(db *gorm.DB, studentID uint, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	Get(db *gorm.DB, reviewID uint) (*dto.ReviewResponse, error)

	// Listing
	ListForTeacher(db *gorm.DB, teacherID uint, page, pageSize int) (*dto.ReviewListResponse, error)
	ListMine(db *gorm.DB, studentID uint, page, pageSize int) (*dto.ReviewListResponse, error)

	// Author-only operations
	Update(db *gorm.DB, reviewID, actorID uint, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error)
	Delete(db *gorm.DB, reviewID, actorID uint) error
}

type ReviewServiceImpl struct {
	reviewRepo  repositories.ReviewRepository
	userRepo    repositories.UserRepository
	profileRepo repositories.ProfileRepository
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
) ReviewService {
	return &ReviewServiceImpl{
		reviewRepo:  reviewRepo,
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func (s *ReviewServiceImpl) Create(db *gorm.DB, studentID uint, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	if req.TeacherUserID == studentID {
		return nil, apperrors.NewValidationError("You cannot review yourself")
	}
	if req.Rating < 1 || req.Rating > 5 {
		return nil, apperrors.NewValidationError("Rating must be between 1 and 5")
	}
	comment, err := normalizeComment(req.Comment)
	if err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	teacher, err := s.userRepo.FindByID(tx, req.TeacherUserID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrUserNotFound, msgTeacherNotFound)
	}
	if !teacher.IsTeacher() {
		return nil, apperrors.NewNotFoundError(msgTeacherNotFound)
	}
	student, err := s.userRepo.FindByID(tx, studentID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrUserNotFound, msgStudentNotFound)
	}

	exists, err := s.reviewRepo.ExistsForPair(tx, teacher.ID, studentID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if exists {
		return nil, apperrors.NewConflictError(msgReviewExists)
	}

	review := &models.Review{
		TeacherUserID: teacher.ID,
		StudentUserID: studentID,
		Rating:        req.Rating,
		Comment:       comment,
	}
	if err := s.reviewRepo.Create(tx, review); err != nil {
		if errors.Is(err, repositories.ErrReviewAlreadyExists) {
			return nil, apperrors.NewConflictError(msgReviewExists)
		}
		return nil, apperrors.InternalError(err)
	}

	if err := recomputeTeacherRating(tx, s.reviewRepo, s.profileRepo, teacher.ID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}

	return dto.NewReviewResponse(review, student), nil
}

func (s *ReviewServiceImpl) Get(db *gorm.DB, reviewID uint) (*dto.ReviewResponse, error) {
	review, err := s.reviewRepo.FindByID(db, reviewID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrReviewNotFound, msgReviewNotFound)
	}
	student, err := s.userRepo.FindByID(db, review.StudentUserID)
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewReviewResponse(review, student), nil
}

func (s *ReviewServiceImpl) ListForTeacher(db *gorm.DB, teacherID uint, page, pageSize int) (*dto.ReviewListResponse, error) {
	teacher, err := s.userRepo.FindByID(db, teacherID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrUserNotFound, msgTeacherNotFound)
	}
	if !teacher.IsTeacher() {
		return nil, apperrors.NewNotFoundError(msgTeacherNotFound)
	}

	page, pageSize = NormalizePage(page, pageSize)
	reviews, total, err := s.reviewRepo.FindByTeacher(db, teacherID, pageSize, offsetFor(page, pageSize))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.buildList(db, reviews, page, pageSize, total)
}

func (s *ReviewServiceImpl) ListMine(db *gorm.DB, studentID uint, page, pageSize int) (*dto.ReviewListResponse, error) {
	page, pageSize = NormalizePage(page, pageSize)
	reviews, total, err := s.reviewRepo.FindByStudent(db, studentID, pageSize, offsetFor(page, pageSize))
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return s.buildList(db, reviews, page, pageSize, total)
}

func (s *ReviewServiceImpl) Update(db *gorm.DB, reviewID, actorID uint, req *dto.UpdateReviewRequest) (*dto.ReviewResponse, error) {
	if req.IsEmpty() {
		return nil, apperrors.NewValidationError(msgAtLeastOneField)
	}

	updates := map[string]interface{}{}
	if req.Rating != nil {
		if *req.Rating < 1 || *req.Rating > 5 {
			return nil, apperrors.NewValidationError("Rating must be between 1 and 5")
		}
		updates["rating"] = *req.Rating
	}
	if req.Comment != nil {
		comment, err := normalizeComment(req.Comment)
		if err != nil {
			return nil, err
		}
		updates["comment"] = comment
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	review, err := s.reviewRepo.FindByID(tx, reviewID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrReviewNotFound, msgReviewNotFound)
	}
	if review.StudentUserID != actorID {
		return nil, apperrors.NewForbiddenError("You can only modify your own reviews")
	}

	if err := s.reviewRepo.Update(tx, reviewID, updates); err != nil {
		return nil, notFoundOr(err, repositories.ErrReviewNotFound, msgReviewNotFound)
	}
	if err := recomputeTeacherRating(tx, s.reviewRepo, s.profileRepo, review.TeacherUserID); err != nil {
		return nil, apperrors.InternalError(err)
	}

	updated, err := s.reviewRepo.FindByID(tx, reviewID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	student, err := s.userRepo.FindByID(tx, updated.StudentUserID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewReviewResponse(updated, student), nil
}

func (s *ReviewServiceImpl) Delete(db *gorm.DB, reviewID, actorID uint) error {
	tx := db.Begin()
	if tx.Error != nil {
		return apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	review, err := s.reviewRepo.FindByID(tx, reviewID)
	if err != nil {
		return notFoundOr(err, repositories.ErrReviewNotFound, msgReviewNotFound)
	}
	if review.StudentUserID != actorID {
		return apperrors.NewForbiddenError("You can only delete your own reviews")
	}

	if err := s.reviewRepo.Delete(tx, reviewID); err != nil {
		return notFoundOr(err, repositories.ErrReviewNotFound, msgReviewNotFound)
	}
	if err := recomputeTeacherRating(tx, s.reviewRepo, s.profileRepo, review.TeacherUserID); err != nil {
		return apperrors.InternalError(err)
	}

	return tx.Commit().Error
}

func (s *ReviewServiceImpl) buildList(db *gorm.DB, reviews []models.Review, page, pageSize int, total int64) (*dto.ReviewListResponse, error) {
	ids := make([]uint, 0, len(reviews))
	for _, r := range reviews {
		ids = append(ids, r.StudentUserID)
	}
	students, err := s.userRepo.FindByIDs(db, ids)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	items := make([]*dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		items = append(items, dto.NewReviewResponse(&reviews[i], students[reviews[i].StudentUserID]))
	}
	return &dto.ReviewListResponse{
		Items:    items,
		Page:     page,
		PageSize: pageSize,
		Total:    total,
	}, nil
}

// recomputeTeacherRating rewrites rating_avg and reviews_count from the review table.
// Must run inside the transaction that mutated the reviews.
func recomputeTeacherRating(
	tx *gorm.DB,
	reviewRepo repositories.ReviewRepository,
	profileRepo repositories.ProfileRepository,
	teacherID uint,
) error {
	stats, err := reviewRepo.CalculateTeacherRating(tx, teacherID)
	if err != nil {
		return err
	}
	return profileRepo.UpdateTeacherRating(tx, teacherID, stats.Average, stats.Count)
}

// normalizeComment trims the comment. Blank comments are stored as NULL.
func normalizeComment(comment *string) (*string, error) {
	if comment == nil {
		return nil, nil
	}
	trimmed := strings.TrimSpace(*comment)
	if trimmed == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(trimmed) > maxReviewCommentLength {
		return nil, apperrors.NewValidationError("Comment must be at most 1000 characters")
	}
	return &trimmed, nil
}
