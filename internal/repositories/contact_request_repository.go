package repositories

import (
	"errors"

	"github.com/deouf-dev/talemy-api/internal/models"

	"gorm.io/gorm"
)

var (
	ErrContactRequestNotFound = errors.New("contact request not found")
	ErrPendingRequestExists   = errors.New("a pending contact request already exists")
)

type ContactRequestRepository interface {
	Create(db *gorm.DB, request *models.ContactRequest) error
	FindByID(db *gorm.DB, id uint) (*models.ContactRequest, error)
	FindByIDs(db *gorm.DB, ids []uint) (map[uint]*models.ContactRequest, error)
	ExistsPending(db *gorm.DB, studentUserID, teacherUserID uint) (bool, error)
	TransitionFromPending(db *gorm.DB, id uint, status models.ContactRequestStatus) (bool, error)
	FindForStudent(db *gorm.DB, studentUserID uint, status *models.ContactRequestStatus) ([]models.ContactRequest, error)
	FindForTeacher(db *gorm.DB, teacherUserID uint, status *models.ContactRequestStatus) ([]models.ContactRequest, error)
	Delete(db *gorm.DB, id uint) error
}

type ContactRequestRepositoryImpl struct{}

func NewContactRequestRepository() ContactRequestRepository {
	return &ContactRequestRepositoryImpl{}
}

// Create maps a unique violation on pending_key to ErrPendingRequestExists.
func (r *ContactRequestRepositoryImpl) Create(db *gorm.DB, request *models.ContactRequest) error {
	if request.Status == "" {
		request.Status = models.ContactRequestStatusPending
	}
	if request.Status == models.ContactRequestStatusPending {
		request.PendingKey = models.PendingKeyFor(request.StudentUserID, request.TeacherUserID)
	}
	if err := db.Create(request).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrPendingRequestExists
		}
		return err
	}
	return nil
}

func (r *ContactRequestRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.ContactRequest, error) {
	var request models.ContactRequest
	if err := db.First(&request, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrContactRequestNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *ContactRequestRepositoryImpl) FindByIDs(db *gorm.DB, ids []uint) (map[uint]*models.ContactRequest, error) {
	result := make(map[uint]*models.ContactRequest, len(ids))
	if len(ids) == 0 {
		return result, nil
	}
	var requests []models.ContactRequest
	if err := db.Where("id IN ?", ids).Find(&requests).Error; err != nil {
		return nil, err
	}
	for i := range requests {
		result[requests[i].ID] = &requests[i]
	}
	return result, nil
}

func (r *ContactRequestRepositoryImpl) ExistsPending(db *gorm.DB, studentUserID, teacherUserID uint) (bool, error) {
	var count int64
	err := db.Model(&models.ContactRequest{}).
		Where("student_user_id = ? AND teacher_user_id = ? AND status = ?",
			studentUserID, teacherUserID, models.ContactRequestStatusPending).
		Count(&count).Error
	return count > 0, err
}

// TransitionFromPending moves a PENDING request to status and clears its pending key.
// It reports false when the request was no longer PENDING, so concurrent transitions
// cannot both succeed.
func (r *ContactRequestRepositoryImpl) TransitionFromPending(db *gorm.DB, id uint, status models.ContactRequestStatus) (bool, error) {
	result := db.Model(&models.ContactRequest{}).
		Where("id = ? AND status = ?", id, models.ContactRequestStatusPending).
		Updates(map[string]interface{}{
			"status":      status,
			"pending_key": nil,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected == 1, nil
}

func (r *ContactRequestRepositoryImpl) FindForStudent(db *gorm.DB, studentUserID uint, status *models.ContactRequestStatus) ([]models.ContactRequest, error) {
	return r.findBy(db, "student_user_id", studentUserID, status)
}

func (r *ContactRequestRepositoryImpl) FindForTeacher(db *gorm.DB, teacherUserID uint, status *models.ContactRequestStatus) ([]models.ContactRequest, error) {
	return r.findBy(db, "teacher_user_id", teacherUserID, status)
}

func (r *ContactRequestRepositoryImpl) findBy(db *gorm.DB, column string, userID uint, status *models.ContactRequestStatus) ([]models.ContactRequest, error) {
	query := db.Where(column+" = ?", userID)
	if status != nil {
		query = query.Where("status = ?", *status)
	}
	var requests []models.ContactRequest
	err := query.Order("created_at DESC").Order("id DESC").Find(&requests).Error
	return requests, err
}

func (r *ContactRequestRepositoryImpl) Delete(db *gorm.DB, id uint) error {
	result := db.Delete(&models.ContactRequest{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrContactRequestNotFound
	}
	return nil
}
