package handlers

import (
	"strconv"

	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/services"
	"github.com/deouf-dev/talemy-api/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

func pageOr(page int) int {
	if page == 0 {
		return services.DefaultPage
	}
	return page
}

func pageSizeOr(pageSize int) int {
	if pageSize == 0 {
		return services.DefaultPageSize
	}
	return pageSize
}

// parseDayOfWeekQuery reads the optional dayOfWeek filter.
func parseDayOfWeekQuery(c *gin.Context) (*int, bool) {
	raw := c.Query("dayOfWeek")
	if raw == "" {
		return nil, true
	}
	day, err := strconv.Atoi(raw)
	if err != nil || day < 0 || day > 6 {
		apperrors.HandleError(c, apperrors.NewValidationError("dayOfWeek must be between 0 and 6"))
		return nil, false
	}
	return &day, true
}

func parseLessonStatus(c *gin.Context, raw string) (*models.LessonStatus, bool) {
	if raw == "" {
		return nil, true
	}
	status := models.LessonStatus(raw)
	if !status.IsValid() {
		apperrors.HandleError(c, apperrors.NewValidationError("Invalid status filter"))
		return nil, false
	}
	return &status, true
}

func parseRequestStatus(c *gin.Context, raw string) (*models.ContactRequestStatus, bool) {
	if raw == "" {
		return nil, true
	}
	status := models.ContactRequestStatus(raw)
	if !status.IsValid() {
		apperrors.HandleError(c, apperrors.NewValidationError("Invalid status filter"))
		return nil, false
	}
	return &status, true
}
