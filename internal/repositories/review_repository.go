package repositories

import (
	"errors"
	"math"

	"github.com/deouf-dev/talemy-api/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this teacher")
)

// RatingStats is the derived aggregate stored on the teacher profile.
type RatingStats struct {
	Average *float64
	Count   int
}

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	FindByID(db *gorm.DB, id uint) (*models.Review, error)
	ExistsForPair(db *gorm.DB, teacherUserID, studentUserID uint) (bool, error)
	FindByTeacher(db *gorm.DB, teacherUserID uint, limit, offset int) ([]models.Review, int64, error)
	FindByStudent(db *gorm.DB, studentUserID uint, limit, offset int) ([]models.Review, int64, error)
	Update(db *gorm.DB, id uint, updates map[string]interface{}) error
	Delete(db *gorm.DB, id uint) error

	// Rating operations
	CalculateTeacherRating(db *gorm.DB, teacherUserID uint) (*RatingStats, error)
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) Create(db *gorm.DB, review *models.Review) error {
	if err := db.Create(review).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrReviewAlreadyExists
		}
		return err
	}
	return nil
}

func (r *ReviewRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Review, error) {
	var review models.Review
	if err := db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) ExistsForPair(db *gorm.DB, teacherUserID, studentUserID uint) (bool, error) {
	var count int64
	err := db.Model(&models.Review{}).
		Where("teacher_user_id = ? AND student_user_id = ?", teacherUserID, studentUserID).
		Count(&count).Error
	return count > 0, err
}

func (r *ReviewRepositoryImpl) FindByTeacher(db *gorm.DB, teacherUserID uint, limit, offset int) ([]models.Review, int64, error) {
	return r.findPage(db.Where("teacher_user_id = ?", teacherUserID), limit, offset)
}

func (r *ReviewRepositoryImpl) FindByStudent(db *gorm.DB, studentUserID uint, limit, offset int) ([]models.Review, int64, error) {
	return r.findPage(db.Where("student_user_id = ?", studentUserID), limit, offset)
}

func (r *ReviewRepositoryImpl) findPage(query *gorm.DB, limit, offset int) ([]models.Review, int64, error) {
	query = query.Model(&models.Review{})

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var reviews []models.Review
	err := query.Order("created_at DESC").Order("id DESC").Limit(limit).Offset(offset).Find(&reviews).Error
	if err != nil {
		return nil, 0, err
	}
	return reviews, total, nil
}

func (r *ReviewRepositoryImpl) Update(db *gorm.DB, id uint, updates map[string]interface{}) error {
	result := db.Model(&models.Review{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

func (r *ReviewRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	result := db.Delete(&models.Review{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrReviewNotFound
	}
	return nil
}

// CalculateTeacherRating rescans every review of the teacher. O(n) per call.
func (r *ReviewRepositoryImpl) CalculateTeacherRating(db *gorm.DB, teacherUserID uint) (*RatingStats, error) {
	var row struct {
		Total int64
		Count int64
	}
	err := db.Model(&models.Review{}).
		Select("COALESCE(SUM(rating), 0) AS total, COUNT(*) AS count").
		Where("teacher_user_id = ?", teacherUserID).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}

	stats := &RatingStats{Count: int(row.Count)}
	if row.Count > 0 {
		avg := RoundTo2(float64(row.Total) / float64(row.Count))
		stats.Average = &avg
	}
	return stats, nil
}

// RoundTo2 rounds half away from zero to two decimals.
func RoundTo2(v float64) float64 {
	return math.Round(v*100) / 100
}
