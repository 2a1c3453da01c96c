package dto

import "github.com/deouf-dev/talemy-api/internal/models"

// ======================
// Teacher profile
// ======================

type UpdateTeacherProfileRequest struct {
	Bio        *string  `json:"bio" validate:"omitempty"`
	City       *string  `json:"city" validate:"omitempty"`
	HourlyRate *float64 `json:"hourlyRate" validate:"omitempty"`
}

type ReplaceSubjectsRequest struct {
	SubjectIDs []uint `json:"subjectIds" validate:"required,dive,min=1"`
}

type TeacherSearchQuery struct {
	City      string `form:"city" validate:"omitempty,max=100"`
	SubjectID uint   `form:"subjectId"`
	Page      int    `form:"page"`
	PageSize  int    `form:"pageSize"`
}

type TeacherProfileResponse struct {
	UserID       uint              `json:"userId"`
	Name         string            `json:"name"`
	Surname      string            `json:"surname"`
	Email        string            `json:"email,omitempty"`
	Bio          *string           `json:"bio"`
	City         *string           `json:"city"`
	HourlyRate   *float64          `json:"hourlyRate"`
	RatingAvg    *float64          `json:"ratingAvg"`
	ReviewsCount int               `json:"reviewsCount"`
	Subjects     []SubjectResponse `json:"subjects"`
}

type TeacherListItem struct {
	ID           uint              `json:"id"`
	Name         string            `json:"name"`
	Surname      string            `json:"surname"`
	Email        string            `json:"email"`
	City         *string           `json:"city"`
	HourlyRate   *float64          `json:"hourlyRate"`
	RatingAvg    *float64          `json:"ratingAvg"`
	ReviewsCount int               `json:"reviewsCount"`
	Bio          *string           `json:"bio"`
	Subjects     []SubjectResponse `json:"subjects"`
}

type TeacherListResponse struct {
	Items    []*TeacherListItem `json:"items"`
	Page     int                `json:"page"`
	PageSize int                `json:"pageSize"`
	Total    int64              `json:"total"`
}

// ======================
// Student profile
// ======================

type UpdateStudentProfileRequest struct {
	City  *string              `json:"city"`
	Level *models.StudentLevel `json:"level" validate:"omitempty,is-student-level"`
	Track *string              `json:"track"`
}

type StudentProfileResponse struct {
	UserID  uint                 `json:"userId"`
	Name    string               `json:"name"`
	Surname string               `json:"surname"`
	Email   string               `json:"email,omitempty"`
	City    *string              `json:"city"`
	Level   *models.StudentLevel `json:"level"`
	Track   *string              `json:"track"`
}

// ======================
// Subjects
// ======================

type SubjectResponse struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

func NewSubjectResponses(subjects []models.Subject) []SubjectResponse {
	out := make([]SubjectResponse, 0, len(subjects))
	for _, s := range subjects {
		out = append(out, SubjectResponse{ID: s.ID, Name: s.Name})
	}
	return out
}
