package repositories

import (
	"errors"
	"time"

	"github.com/deouf-dev/talemy-api/internal/models"

	"gorm.io/gorm"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

// TeacherFilter holds the exact-match filters of the teacher directory.
type TeacherFilter struct {
	City      string
	SubjectID uint
	Limit     int
	Offset    int
}

// TeacherRow is a teacher profile joined with its user.
type TeacherRow struct {
	UserID       uint
	Name         string
	Surname      string
	Email        string
	Bio          *string
	City         *string
	HourlyRate   *float64
	RatingAvg    *float64
	ReviewsCount int
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

type ProfileRepository interface {
	CreateTeacherProfile(db *gorm.DB, profile *models.TeacherProfile) error
	CreateStudentProfile(db *gorm.DB, profile *models.StudentProfile) error

	FindTeacherProfile(db *gorm.DB, userID uint) (*models.TeacherProfile, error)
	FindStudentProfile(db *gorm.DB, userID uint) (*models.StudentProfile, error)
	UpdateTeacherProfile(db *gorm.DB, userID uint, updates map[string]interface{}) error
	UpdateStudentProfile(db *gorm.DB, userID uint, updates map[string]interface{}) error
	UpdateTeacherRating(db *gorm.DB, userID uint, ratingAvg *float64, reviewsCount int) error

	SearchTeachers(db *gorm.DB, filter TeacherFilter) ([]TeacherRow, int64, error)
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) CreateTeacherProfile(db *gorm.DB, profile *models.TeacherProfile) error {
	return db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) CreateStudentProfile(db *gorm.DB, profile *models.StudentProfile) error {
	return db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindTeacherProfile(db *gorm.DB, userID uint) (*models.TeacherProfile, error) {
	var profile models.TeacherProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindStudentProfile(db *gorm.DB, userID uint) (*models.StudentProfile, error) {
	var profile models.StudentProfile
	if err := db.Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdateTeacherProfile(db *gorm.DB, userID uint, updates map[string]interface{}) error {
	result := db.Model(&models.TeacherProfile{}).Where("user_id = ?", userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) UpdateStudentProfile(db *gorm.DB, userID uint, updates map[string]interface{}) error {
	result := db.Model(&models.StudentProfile{}).Where("user_id = ?", userID).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

func (r *ProfileRepositoryImpl) UpdateTeacherRating(db *gorm.DB, userID uint, ratingAvg *float64, reviewsCount int) error {
	return db.Model(&models.TeacherProfile{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"rating_avg":    ratingAvg,
			"reviews_count": reviewsCount,
		}).Error
}

func (r *ProfileRepositoryImpl) SearchTeachers(db *gorm.DB, filter TeacherFilter) ([]TeacherRow, int64, error) {
	query := db.Table("teacher_profiles").
		Joins("JOIN users ON users.id = teacher_profiles.user_id").
		Where("users.role = ?", models.UserRoleTeacher)

	if filter.City != "" {
		query = query.Where("teacher_profiles.city = ?", filter.City)
	}
	if filter.SubjectID != 0 {
		query = query.Where(
			"EXISTS (SELECT 1 FROM teacher_subjects ts WHERE ts.teacher_user_id = teacher_profiles.user_id AND ts.subject_id = ?)",
			filter.SubjectID,
		)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []TeacherRow
	err := query.
		Select("teacher_profiles.user_id, users.name, users.surname, users.email, " +
			"teacher_profiles.bio, teacher_profiles.city, teacher_profiles.hourly_rate, " +
			"teacher_profiles.rating_avg, teacher_profiles.reviews_count, " +
			"teacher_profiles.created_at, teacher_profiles.updated_at").
		Order("teacher_profiles.updated_at DESC").
		Order("teacher_profiles.user_id DESC").
		Limit(filter.Limit).
		Offset(filter.Offset).
		Scan(&rows).Error
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}
