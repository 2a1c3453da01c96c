package handlers

import (
	"net/http"

	"github.com/deouf-dev/talemy-api/internal/middleware"
	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/services"
	"github.com/deouf-dev/talemy-api/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AvailabilityHandler struct {
	*BaseHandler
	availabilityService services.AvailabilityService
}

func NewAvailabilityHandler(base *BaseHandler, availabilityService services.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{
		BaseHandler:         base,
		availabilityService: availabilityService,
	}
}

func (h *AvailabilityHandler) RegisterRoutes(rg *gin.RouterGroup) {
	public := rg.Group("/availability")
	{
		public.GET("/teacher/:teacherUserId", h.ListForTeacher)
	}

	slots := rg.Group("/availability")
	slots.Use(h.RequireAuth(), middleware.RequireRoles(models.UserRoleTeacher))
	{
		slots.POST("", h.Create)
		slots.GET("/me", h.ListMine)
		slots.DELETE("", h.DeleteAll)
		slots.GET("/:slotId", h.Get)
		slots.PATCH("/:slotId", h.Update)
		slots.DELETE("/:slotId", h.Delete)
	}
}

func (h *AvailabilityHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateSlotRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	slot, err := h.availabilityService.CreateSlot(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"slot": slot})
}

func (h *AvailabilityHandler) ListMine(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	slots, err := h.availabilityService.ListForTeacher(h.GetDB(c), userID, nil)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slots": slots})
}

func (h *AvailabilityHandler) ListForTeacher(c *gin.Context) {
	teacherID, ok := ParseParamID(c, "teacherUserId")
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

func (h *AvailabilityHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	slotID, ok := ParseParamID(c, "slotId")
	if !ok {
		return
	}

	slot, err := h.availabilityService.GetSlot(h.GetDB(c), slotID, userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slot": slot})
}

func (h *AvailabilityHandler) Update(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	slotID, ok := ParseParamID(c, "slotId")
	if !ok {
		return
	}

	var req dto.UpdateSlotRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	slot, err := h.availabilityService.UpdateSlot(h.GetDB(c), slotID, userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"slot": slot})
}

func (h *AvailabilityHandler) Delete(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	slotID, ok := ParseParamID(c, "slotId")
	if !ok {
		return
	}

	if err := h.availabilityService.DeleteSlot(h.GetDB(c), slotID, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *AvailabilityHandler) DeleteAll(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	count, err := h.availabilityService.DeleteAll(h.GetDB(c), userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deletedCount": count})
}
