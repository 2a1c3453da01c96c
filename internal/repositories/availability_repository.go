package repositories

import (
	"errors"

	"github.com/deouf-dev/talemy-api/internal/models"

	"gorm.io/gorm"
)

var ErrSlotNotFound = errors.New("availability slot not found")

type AvailabilityRepository interface {
	Create(db *gorm.DB, slot *models.AvailabilitySlot) error
	Update(db *gorm.DB, slot *models.AvailabilitySlot) error
	FindByID(db *gorm.DB, id uint) (*models.AvailabilitySlot, error)
	FindByTeacher(db *gorm.DB, teacherUserID uint, dayOfWeek *int) ([]models.AvailabilitySlot, error)
	FindByTeacherAndDay(db *gorm.DB, teacherUserID uint, dayOfWeek int, excludeID uint) ([]models.AvailabilitySlot, error)
	Delete(db *gorm.DB, id uint) error
	DeleteByTeacher(db *gorm.DB, teacherUserID uint) (int64, error)
}

type AvailabilityRepositoryImpl struct{}

func NewAvailabilityRepository() AvailabilityRepository {
	return &AvailabilityRepositoryImpl{}
}

func (r *AvailabilityRepositoryImpl) Create(db *gorm.DB, slot *models.AvailabilitySlot) error {
	return db.Create(slot).Error
}

func (r *AvailabilityRepositoryImpl) Update(db *gorm.DB, slot *models.AvailabilitySlot) error {
	return db.Model(slot).Updates(map[string]interface{}{
		"day_of_week": slot.DayOfWeek,
		"start_time":  slot.StartTime,
		"end_time":    slot.EndTime,
	}).Error
}

func (r *AvailabilityRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.AvailabilitySlot, error) {
	var slot models.AvailabilitySlot
	if err := db.First(&slot, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSlotNotFound
		}
		return nil, err
	}
	return &slot, nil
}

func (r *AvailabilityRepositoryImpl) FindByTeacher(db *gorm.DB, teacherUserID uint, dayOfWeek *int) ([]models.AvailabilitySlot, error) {
	query := db.Where("teacher_user_id = ?", teacherUserID)
	if dayOfWeek != nil {
		query = query.Where("day_of_week = ?", *dayOfWeek)
	}
	var slots []models.AvailabilitySlot
	err := query.Order("day_of_week ASC").Order("start_time ASC").Find(&slots).Error
	return slots, err
}

// FindByTeacherAndDay returns the slots an interval on that day must not overlap.
// excludeID skips the slot being updated; 0 excludes nothing.
func (r *AvailabilityRepositoryImpl) FindByTeacherAndDay(db *gorm.DB, teacherUserID uint, dayOfWeek int, excludeID uint) ([]models.AvailabilitySlot, error) {
	query := db.Where("teacher_user_id = ? AND day_of_week = ?", teacherUserID, dayOfWeek)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	var slots []models.AvailabilitySlot
	err := query.Order("start_time ASC").Find(&slots).Error
	return slots, err
}

func (r *AvailabilityRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	result := db.Delete(&models.AvailabilitySlot{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrSlotNotFound
	}
	return nil
}

func (r *AvailabilityRepositoryImpl) DeleteByTeacher(db *gorm.DB, teacherUserID uint) (int64, error) {
	result := db.Where("teacher_user_id = ?", teacherUserID).Delete(&models.AvailabilitySlot{})
	return result.RowsAffected, result.Error
}
