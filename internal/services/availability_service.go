package services

import (
	"time"

	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/repositories"
	"github.com/deouf-dev/talemy-api/internal/services/dto"
	"github.com/deouf-dev/talemy-api/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// AvailabilityService manages a teacher's weekly availability. Slots of the
// same teacher and day never overlap; touching boundaries are allowed.
type AvailabilityService interface {
	// Slot operations
	CreateSlot(db *gorm.DB, teacherID uint, req *dto.CreateSlotRequest) (*dto.SlotResponse, error)
	UpdateSlot(db *gorm.DB, slotID, requesterID uint, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error)
	GetSlot(db *gorm.DB, slotID, requesterID uint) (*dto.SlotResponse, error)
	DeleteSlot(db *gorm.DB, slotID, requesterID uint) error

	// Listing and bulk operations
	ListForTeacher(db *gorm.DB, teacherID uint, dayOfWeek *int) ([]*dto.SlotResponse, error)
	DeleteAll(db *gorm.DB, teacherID uint) (int64, error)
}

type AvailabilityServiceImpl struct {
	slotRepo repositories.AvailabilityRepository
	userRepo repositories.UserRepository
}

// NewAvailabilityService returns the service backed by the given repositories.
func NewAvailabilityService(
	slotRepo repositories.AvailabilityRepository,
	userRepo repositories.UserRepository,
) AvailabilityService {
	return &AvailabilityServiceImpl{
		slotRepo: slotRepo,
		userRepo: userRepo,
	}
}

// CreateSlot adds a weekly slot. The teacher row is locked for the duration of
// the transaction so concurrent writers for one teacher run the overlap check
// one after another.
func (s *AvailabilityServiceImpl) CreateSlot(db *gorm.DB, teacherID uint, req *dto.CreateSlotRequest) (*dto.SlotResponse, error) {
	if req.DayOfWeek == nil {
		return nil, apperrors.NewValidationError("dayOfWeek is required")
	}
	day := *req.DayOfWeek
	start, end, err := parseInterval(day, req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	if err := s.lockTeacher(tx, teacherID); err != nil {
		return nil, err
	}
	if err := s.checkOverlap(tx, teacherID, day, start, end, 0); err != nil {
		return nil, err
	}

	slot := &models.AvailabilitySlot{
		TeacherUserID: teacherID,
		DayOfWeek:     day,
		StartTime:     start,
		EndTime:       end,
	}
	if err := s.slotRepo.Create(tx, slot); err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewSlotResponse(slot), nil
}

// UpdateSlot merges the provided fields into the slot and re-validates the
// resulting interval against the teacher's other slots on the target day.
func (s *AvailabilityServiceImpl) UpdateSlot(db *gorm.DB, slotID, requesterID uint, req *dto.UpdateSlotRequest) (*dto.SlotResponse, error) {
	if req.IsEmpty() {
		return nil, apperrors.NewValidationError(msgAtLeastOneField)
	}

	tx := db.Begin()
	if tx.Error != nil {
		return nil, apperrors.InternalError(tx.Error)
	}
	defer tx.Rollback()

	slot, err := s.slotRepo.FindByID(tx, slotID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrSlotNotFound, msgSlotNotFound)
	}
	if slot.TeacherUserID != requesterID {
		return nil, apperrors.NewForbiddenError("You can only modify your own availability")
	}

	day := slot.DayOfWeek
	if req.DayOfWeek != nil {
		day = *req.DayOfWeek
	}
	startText := dto.FormatClock(time.Duration(slot.StartTime))
	if req.StartTime != nil {
		startText = *req.StartTime
	}
	endText := dto.FormatClock(time.Duration(slot.EndTime))
	if req.EndTime != nil {
		endText = *req.EndTime
	}
	start, end, err := parseInterval(day, startText, endText)
	if err != nil {
		return nil, err
	}

	if err := s.lockTeacher(tx, slot.TeacherUserID); err != nil {
		return nil, err
	}
	if err := s.checkOverlap(tx, slot.TeacherUserID, day, start, end, slot.ID); err != nil {
		return nil, err
	}

	slot.DayOfWeek = day
	slot.StartTime = start
	slot.EndTime = end
	if err := s.slotRepo.Update(tx, slot); err != nil {
		return nil, apperrors.InternalError(err)
	}

	updated, err := s.slotRepo.FindByID(tx, slot.ID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if err := tx.Commit().Error; err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewSlotResponse(updated), nil
}

func (s *AvailabilityServiceImpl) GetSlot(db *gorm.DB, slotID, requesterID uint) (*dto.SlotResponse, error) {
	slot, err := s.slotRepo.FindByID(db, slotID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrSlotNotFound, msgSlotNotFound)
	}
	if slot.TeacherUserID != requesterID {
		return nil, apperrors.NewForbiddenError("You can only view your own availability slots")
	}
	return dto.NewSlotResponse(slot), nil
}

func (s *AvailabilityServiceImpl) ListForTeacher(db *gorm.DB, teacherID uint, dayOfWeek *int) ([]*dto.SlotResponse, error) {
	if dayOfWeek != nil && (*dayOfWeek < 0 || *dayOfWeek > 6) {
		return nil, apperrors.NewValidationError("dayOfWeek must be between 0 and 6")
	}

	teacher, err := s.userRepo.FindByID(db, teacherID)
	if err != nil {
		return nil, notFoundOr(err, repositories.ErrUserNotFound, msgTeacherNotFound)
	}
	if !teacher.IsTeacher() {
		return nil, apperrors.NewNotFoundError(msgTeacherNotFound)
	}

	slots, err := s.slotRepo.FindByTeacher(db, teacherID, dayOfWeek)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	out := make([]*dto.SlotResponse, 0, len(slots))
	for i := range slots {
		out = append(out, dto.NewSlotResponse(&slots[i]))
	}
	return out, nil
}

func (s *AvailabilityServiceImpl) DeleteSlot(db *gorm.DB, slotID, requesterID uint) error {
	slot, err := s.slotRepo.FindByID(db, slotID)
	if err != nil {
		return notFoundOr(err, repositories.ErrSlotNotFound, msgSlotNotFound)
	}
	if slot.TeacherUserID != requesterID {
		return apperrors.NewForbiddenError("You can only delete your own availability slots")
	}
	if err := s.slotRepo.Delete(db, slotID); err != nil {
		return notFoundOr(err, repositories.ErrSlotNotFound, msgSlotNotFound)
	}
	return nil
}

func (s *AvailabilityServiceImpl) DeleteAll(db *gorm.DB, teacherID uint) (int64, error) {
	count, err := s.slotRepo.DeleteByTeacher(db, teacherID)
	if err != nil {
		return 0, apperrors.InternalError(err)
	}
	return count, nil
}

// lockTeacher takes the row lock that serializes slot writers and checks the role.
func (s *AvailabilityServiceImpl) lockTeacher(tx *gorm.DB, teacherID uint) error {
	teacher, err := s.userRepo.FindByIDForUpdate(tx, teacherID)
	if err != nil {
		return notFoundOr(err, repositories.ErrUserNotFound, msgTeacherNotFound)
	}
	if !teacher.IsTeacher() {
		return apperrors.NewNotFoundError(msgTeacherNotFound)
	}
	return nil
}

func (s *AvailabilityServiceImpl) checkOverlap(tx *gorm.DB, teacherID uint, day int, start, end datatypes.Time, excludeID uint) error {
	existing, err := s.slotRepo.FindByTeacherAndDay(tx, teacherID, day, excludeID)
	if err != nil {
		return apperrors.InternalError(err)
	}
	for i := range existing {
		if existing[i].Overlaps(start, end) {
			return apperrors.NewConflictError(msgSlotOverlap)
		}
	}
	return nil
}

func parseInterval(day int, startText, endText string) (datatypes.Time, datatypes.Time, error) {
	if day < 0 || day > 6 {
		return 0, 0, apperrors.NewValidationError("dayOfWeek must be between 0 and 6")
	}
	start, err := dto.ParseClock(startText)
	if err != nil {
		return 0, 0, apperrors.NewValidationError("startTime must use the HH:MM format")
	}
	end, err := dto.ParseClock(endText)
	if err != nil {
		return 0, 0, apperrors.NewValidationError("endTime must use the HH:MM format")
	}
	if start >= end {
		return 0, 0, apperrors.NewValidationError("startTime must be before endTime")
	}
	return datatypes.Time(start), datatypes.Time(end), nil
}
