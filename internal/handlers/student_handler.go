package handlers

import (
	"net/http"

	"github.com/deouf-dev/talemy-api/internal/middleware"
	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/services"
	"github.com/deouf-dev/talemy-api/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type StudentHandler struct {
	*BaseHandler
	studentService services.StudentService
}

func NewStudentHandler(base *BaseHandler, studentService services.StudentService) *StudentHandler {
	return &StudentHandler{
		BaseHandler:    base,
		studentService: studentService,
	}
}

func (h *StudentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	students := rg.Group("/students")
	{
		students.GET("/:userId", h.GetByUserID)
	}

	me := students.Group("/me")
	me.Use(h.RequireAuth(), middleware.RequireRoles(models.UserRoleStudent))
	{
		me.GET("", h.GetMe)
		me.PATCH("", h.UpdateMe)
	}
}

func (h *StudentHandler) GetMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	profile, err := h.studentService.GetMe(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *StudentHandler) UpdateMe(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateStudentProfileRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	profile, err := h.studentService.UpdateMe(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

func (h *StudentHandler) GetByUserID(c *gin.Context) {
	studentID, ok := ParseParamID(c, "userId")
	if !ok {
		return
	}

	profile, err := h.studentService.GetByUserID(h.GetDB(c), studentID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
