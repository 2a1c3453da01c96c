package handlers

import (
	"net/http"

	"github.com/deouf-dev/talemy-api/internal/middleware"
	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/services"
	"github.com/deouf-dev/talemy-api/internal/services/dto"
	"github.com/deouf-dev/talemy-api/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

// TeacherHandler serves the teacher directory and the nested per-teacher reads.
type TeacherHandler struct {
	*BaseHandler
	teacherService      services.TeacherService
	reviewService       services.ReviewService
	availabilityService services.AvailabilityService
	lessonService       services.LessonService
}

func NewTeacherHandler(
	base *BaseHandler,
	teacherService services.TeacherService,
	reviewService services.ReviewService,
	availabilityService services.AvailabilityService,
	lessonService services.LessonService,
) *TeacherHandler {
	return &TeacherHandler{
		BaseHandler:         base,
		teacherService:      teacherService,
		reviewService:       reviewService,
		availabilityService: availabilityService,
		lessonService:       lessonService,
	}
}

func (h *TeacherHandler) RegisterRoutes(rg *gin.RouterGroup) {
	teachers := rg.Group("/teachers")
	{
		teachers.GET("", h.Search)
		teachers.GET("/:userId/reviews", h.GetReviews)
		teachers.GET("/:userId/availability", h.GetAvailability)
	}

	me := teachers.Group("/me")
	me.Use(h.RequireAuth(), middleware.RequireRoles(models.UserRoleTeacher))
	{
		me.GET("", h.GetMe)
		me.PATCH("", h.UpdateMe)
		me.PUT("/subjects", h.ReplaceSubjects)
	}

	protected := teachers.Group("")
	protected.Use(h.RequireAuth())
	{
		protected.GET("/:userId", h.GetByUserID)
		protected.GET("/:userId/lessons", h.GetLessons)
	}
}

func (h *TeacherHandler) GetMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.teacherService.GetMe(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *TeacherHandler) UpdateMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateTeacherProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.teacherService.UpdateMe(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *TeacherHandler) ReplaceSubjects(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.ReplaceSubjectsRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	db := h.GetDB(c)
	if _, err := h.teacherService.ReplaceSubjects(db, userID, req.SubjectIDs); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	profile, err := h.teacherService.GetMe(db, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *TeacherHandler) GetByUserID(c *gin.Context) {
	teacherID, ok := ParseParamID(c, "userId")
	if !ok {
		return
	}

	profile, err := h.teacherService.GetByUserID(h.GetDB(c), teacherID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *TeacherHandler) Search(c *gin.Context) {
	var query dto.TeacherSearchQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}

	result, err := h.teacherService.Search(h.GetDB(c), &query)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *TeacherHandler) GetReviews(c *gin.Context) {
	teacherID, ok := ParseParamID(c, "userId")
	if !ok {
		return
	}
	page, pageSize := ParsePagination(c)

	result, err := h.reviewService.ListForTeacher(h.GetDB(c), teacherID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *TeacherHandler) GetAvailability(c *gin.Context) {
	teacherID, ok := ParseParamID(c, "userId")
	if !ok {
		return
	}
	dayOfWeek, ok := parseDayOfWeekQuery(c)
	if !ok {
		return
	}

	slots, err := h.availabilityService.ListForTeacher(h.GetDB(c), teacherID, dayOfWeek)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

// GetLessons is readable only by the teacher the path names.
func (h *TeacherHandler) GetLessons(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	teacherID, ok := ParseParamID(c, "userId")
	if !ok {
		return
	}
	if teacherID != userID {
		apperrors.HandleError(c, apperrors.NewForbiddenError("You can only view your own lessons"))
		return
	}

	var query dto.LessonQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	status, ok := parseLessonStatus(c, query.Status)
	if !ok {
		return
	}

	result, err := h.lessonService.ListForUser(h.GetDB(c), teacherID, models.UserRoleTeacher, status, pageOr(query.Page), pageSizeOr(query.PageSize))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
