package handlers

import (
	"net/http"

	"github.com/deouf-dev/talemy-api/internal/middleware"
	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/services"
	"github.com/deouf-dev/talemy-api/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService services.ReviewService
}

func NewReviewHandler(base *BaseHandler, reviewService services.ReviewService) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:   base,
		reviewService: reviewService,
	}
}

func (h *ReviewHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Public routes
	public := rg.Group("/reviews")
	{
		public.GET("/teacher/:teacherUserId", h.ListForTeacher)
	}

	// Any authenticated user
	protected := rg.Group("/reviews")
	protected.Use(h.RequireAuth())
	{
		protected.GET("/:reviewId", h.Get)
	}

	// Student only
	student := rg.Group("/reviews")
	student.Use(h.RequireAuth(), middleware.RequireRoles(models.UserRoleStudent))
	{
		student.POST("", h.Create)
		student.GET("/me", h.ListMine)
		student.PATCH("/:reviewId", h.Update)
		student.DELETE("/:reviewId", h.Delete)
	}
}

func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	review, err := h.reviewService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"review": review})
}

func (h *ReviewHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	page, pageSize := ParsePagination(c)

	result, err := h.reviewService.ListMine(h.GetDB(c), userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *ReviewHandler) ListForTeacher(c *gin.Context) {
	teacherID, ok := ParseParamID(c, "teacherUserId")
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

func (h *ReviewHandler) Get(c *gin.Context) {
	reviewID, ok := ParseParamID(c, "reviewId")
	if !ok {
		return
	}

	review, err := h.reviewService.Get(h.GetDB(c), reviewID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}

func (h *ReviewHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	reviewID, ok := ParseParamID(c, "reviewId")
	if !ok {
		return
	}

	var req dto.UpdateReviewRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	review, err := h.reviewService.Update(h.GetDB(c), reviewID, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"review": review})
}

func (h *ReviewHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	reviewID, ok := ParseParamID(c, "reviewId")
	if !ok {
		return
	}

	if err := h.reviewService.Delete(h.GetDB(c), reviewID, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
