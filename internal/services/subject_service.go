package services

import (
	"github.com/deouf-dev/talemy-api/internal/repositories"
	"github.com/deouf-dev/talemy-api/internal/services/dto"
	"github.com/deouf-dev/talemy-api/pkg/apperrors"

	"gorm.io/gorm"
)

// SubjectService lists the subject catalogue, ordered by name.
type SubjectService interface {
	List(db *gorm.DB) ([]dto.SubjectResponse, error)
}

type SubjectServiceImpl struct {
	subjectRepo repositories.SubjectRepository
}

func NewSubjectService(subjectRepo repositories.SubjectRepository) SubjectService {
	return &SubjectServiceImpl{subjectRepo: subjectRepo}
}

func (s *SubjectServiceImpl) List(db *gorm.DB) ([]dto.SubjectResponse, error) {
	subjects, err := s.subjectRepo.FindAll(db)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return dto.NewSubjectResponses(subjects), nil
}
