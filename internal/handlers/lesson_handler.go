package handlers

import (
	"net/http"

	"github.com/deouf-dev/talemy-api/internal/services"
	"github.com/deouf-dev/talemy-api/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type LessonHandler struct {
	*BaseHandler
	lessonService services.LessonService
}

func NewLessonHandler(base *BaseHandler, lessonService services.LessonService) *LessonHandler {
	return &LessonHandler{
		BaseHandler:   base,
		lessonService: lessonService,
	}
}

func (h *LessonHandler) RegisterRoutes(rg *gin.RouterGroup) {
	lessons := rg.Group("/lessons")
	lessons.Use(h.RequireAuth())
	{
		lessons.POST("", h.Create)
		lessons.GET("/me", h.ListMine)
		lessons.GET("/upcoming", h.ListUpcoming)
		lessons.GET("/:lessonId", h.Get)
		lessons.PATCH("/:lessonId/status", h.UpdateStatus)
		lessons.DELETE("/:lessonId", h.Delete)
	}
}

func (h *LessonHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateLessonRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	lesson, err := h.lessonService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"lesson": lesson})
}

func (h *LessonHandler) ListMine(c *gin.Context) {
	userID, role, ok := h.GetAuthorizedUser(c)
	if !ok {
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

	result, err := h.lessonService.ListForUser(h.GetDB(c), userID, role, status, pageOr(query.Page), pageSizeOr(query.PageSize))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *LessonHandler) ListUpcoming(c *gin.Context) {
	userID, role, ok := h.GetAuthorizedUser(c)
	if !ok {
		return
	}
	limit := ParseQueryInt(c, "limit", services.UpcomingLessonCap)

	lessons, err := h.lessonService.ListUpcoming(h.GetDB(c), userID, role, limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lessons": lessons})
}

func (h *LessonHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	lessonID, ok := ParseParamID(c, "lessonId")
	if !ok {
		return
	}

	lesson, err := h.lessonService.GetByID(h.GetDB(c), lessonID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lesson": lesson})
}

func (h *LessonHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	lessonID, ok := ParseParamID(c, "lessonId")
	if !ok {
		return
	}

	var req dto.UpdateLessonStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	lesson, err := h.lessonService.UpdateStatus(h.GetDB(c), lessonID, userID, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"lesson": lesson})
}

func (h *LessonHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	lessonID, ok := ParseParamID(c, "lessonId")
	if !ok {
		return
	}

	if err := h.lessonService.Delete(h.GetDB(c), lessonID, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
