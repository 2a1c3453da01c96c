package repositories

import (
	"errors"

	"github.com/deouf-dev/talemy-api/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrSubjectNotFound = errors.New("subject not found")

type SubjectRepository interface {
	FindAll(db *gorm.DB) ([]models.Subject, error)
	FindByID(db *gorm.DB, id uint) (*models.Subject, error)
	CountByIDs(db *gorm.DB, ids []uint) (int64, error)
	EnsureNames(db *gorm.DB, names []string) error

	FindForTeacher(db *gorm.DB, teacherUserID uint) ([]models.Subject, error)
	FindForTeachers(db *gorm.DB, teacherUserIDs []uint) (map[uint][]models.Subject, error)
	ReplaceTeacherSubjects(db *gorm.DB, teacherUserID uint, subjectIDs []uint) error
}

type SubjectRepositoryImpl struct{}

func NewSubjectRepository() SubjectRepository {
	return &SubjectRepositoryImpl{}
}

func (r *SubjectRepositoryImpl) FindAll(db *gorm.DB) ([]models.Subject, error) {
	var subjects []models.Subject
	err := db.Order("name ASC").Find(&subjects).Error
	return subjects, err
}

func (r *SubjectRepositoryImpl) FindByID(db *gorm.DB, id uint) (*models.Subject, error) {
	var subject models.Subject
	if err := db.First(&subject, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubjectNotFound
		}
		return nil, err
	}
	return &subject, nil
}

func (r *SubjectRepositoryImpl) CountByIDs(db *gorm.DB, ids []uint) (int64, error) {
	var count int64
	if len(ids) == 0 {
		return 0, nil
	}
	err := db.Model(&models.Subject{}).Where("id IN ?", ids).Count(&count).Error
	return count, err
}

// EnsureNames inserts any missing subject names. Existing names are left untouched.
func (r *SubjectRepositoryImpl) EnsureNames(db *gorm.DB, names []string) error {
	if len(names) == 0 {
		return nil
	}
	subjects := make([]models.Subject, 0, len(names))
	for _, name := range names {
		subjects = append(subjects, models.Subject{Name: name})
	}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoNothing: true,
	}).Create(&subjects).Error
}

func (r *SubjectRepositoryImpl) FindForTeacher(db *gorm.DB, teacherUserID uint) ([]models.Subject, error) {
	var subjects []models.Subject
	err := db.Table("subjects").
		Joins("JOIN teacher_subjects ts ON ts.subject_id = subjects.id").
		Where("ts.teacher_user_id = ?", teacherUserID).
		Order("subjects.name ASC").
		Select("subjects.id, subjects.name").
		Scan(&subjects).Error
	return subjects, err
}

func (r *SubjectRepositoryImpl) FindForTeachers(db *gorm.DB, teacherUserIDs []uint) (map[uint][]models.Subject, error) {
	result := make(map[uint][]models.Subject, len(teacherUserIDs))
	if len(teacherUserIDs) == 0 {
		return result, nil
	}

	var rows []struct {
		TeacherUserID uint
		ID            uint
		Name          string
	}
	err := db.Table("subjects").
		Joins("JOIN teacher_subjects ts ON ts.subject_id = subjects.id").
		Where("ts.teacher_user_id IN ?", teacherUserIDs).
		Order("subjects.name ASC").
		Select("ts.teacher_user_id, subjects.id, subjects.name").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		result[row.TeacherUserID] = append(result[row.TeacherUserID], models.Subject{ID: row.ID, Name: row.Name})
	}
	return result, nil
}

// ReplaceTeacherSubjects must run inside a transaction.
func (r *SubjectRepositoryImpl) ReplaceTeacherSubjects(db *gorm.DB, teacherUserID uint, subjectIDs []uint) error {
	if err := db.Where("teacher_user_id = ?", teacherUserID).Delete(&models.TeacherSubject{}).Error; err != nil {
		return err
	}
	if len(subjectIDs) == 0 {
		return nil
	}
	links := make([]models.TeacherSubject, 0, len(subjectIDs))
	for _, id := range subjectIDs {
		links = append(links, models.TeacherSubject{TeacherUserID: teacherUserID, SubjectID: id})
	}
	return db.Create(&links).Error
}
