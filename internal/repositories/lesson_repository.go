package repositories

import (
	"errors"
	"time"

	"github.com/deouf-dev/talemy-api/internal/models"

	"gorm.io/gorm"
)

var ErrLessonNotFound = errors.New("lesson not found")

// LessonFilter selects one side of a user's lessons.
// Column is teacher_user_id or student_user_id; StatusColumn is the matching status field.
type LessonFilter struct {
	UserID       uint
	Column       string
	StatusColumn string
	Statuses     []models.LessonStatus
	From         *time.Time
	Ascending    bool
	Limit        int
	Offset       int
}

type LessonRepository interface {
	Create(db *gorm.DB, lesson *models.Lesson) error
	FindByID(db *gorm.DB, id uint) (*models.Lesson, error)
	UpdateStatusColumn(db *gorm.DB, id uint, column string, status models.LessonStatus) error
	Find(db *gorm.DB, filter LessonFilter) ([]models.Lesson, int64, error)
	Delete(db *gorm.DB, id uint) error
}

type LessonRepositoryImpl struct{}

func NewLessonRepository() LessonRepository {
	return &LessonRepositoryImpl{}
}

func (r *LessonRepositoryImpl) Create(db *gorm.DB, lesson *models.Lesson) error {
	return db.Create(lesson).Error
}

func (r *LessonRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Lesson, error) {
	var lesson models.Lesson
	if err := db.First(&lesson, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLessonNotFound
		}
		return nil, err
	}
	return &lesson, nil
}

// UpdateStatusColumn writes exactly one of the two status columns.
func (r *LessonRepositoryImpl) UpdateStatusColumn(db *gorm.DB, id uint, column string, status models.LessonStatus) error {
	if column != "status_for_teacher" && column != "status_for_student" {
		return errors.New("invalid lesson status column: " + column)
	}
	result := db.Model(&models.Lesson{}).Where("id = ?", id).Update(column, status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLessonNotFound
	}
	return nil
}

func (r *LessonRepositoryImpl) Find(db *gorm.DB, filter LessonFilter) ([]models.Lesson, int64, error) {
	query := db.Model(&models.Lesson{}).Where(filter.Column+" = ?", filter.UserID)
	if len(filter.Statuses) > 0 {
		query = query.Where(filter.StatusColumn+" IN ?", filter.Statuses)
	}
	if filter.From != nil {
		query = query.Where("start_at >= ?", *filter.From)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	order := "start_at DESC"
	if filter.Ascending {
		order = "start_at ASC"
	}

	var lessons []models.Lesson
	err := query.Order(order).Order("id ASC").Limit(filter.Limit).Offset(filter.Offset).Find(&lessons).Error
	if err != nil {
		return nil, 0, err
	}
	return lessons, total, nil
}

func (r *LessonRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	result := db.Delete(&models.Lesson{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrLessonNotFound
	}
	return nil
}
