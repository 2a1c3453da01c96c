package validator

import (
	"log"

	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/services/dto"

	"github.com/go-playground/validator/v10"
)

// registerCustomRules registers every project-specific tag on v.
func registerCustomRules(v *validator.Validate) {
	mustRegister := func(tag string, fn validator.Func) {
		if err := v.RegisterValidation(tag, fn); err != nil {
			log.Fatalf("failed to register custom validation tag '%s': %v", tag, err)
		}
	}

	// 'is-signup-role': roles a user may pick at registration
	mustRegister("is-signup-role", validateSignupRole)

	mustRegister("is-student-level", validateStudentLevel)
	mustRegister("is-lesson-status", validateLessonStatus)

	// 'clock': "HH:MM" or "HH:MM:SS" on a 24h clock
	mustRegister("clock", validateClock)
}

func validateSignupRole(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true // 'required' handles empty values
	}
	switch models.UserRole(value) {
	case models.UserRoleStudent, models.UserRoleTeacher:
		return true
	default:
		return false
	}
}

func validateStudentLevel(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.StudentLevel(value).IsValid()
}

func validateLessonStatus(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	return models.LessonStatus(value).IsValid()
}

func validateClock(fl validator.FieldLevel) bool {
	value := fl.Field().String()
	if value == "" {
		return true
	}
	_, err := dto.ParseClock(value)
	return err == nil
}
