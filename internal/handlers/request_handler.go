package handlers

import (
	"net/http"

	"github.com/deouf-dev/talemy-api/internal/middleware"
	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/services"
	"github.com/deouf-dev/talemy-api/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// RequestHandler serves contact requests.
type RequestHandler struct {
	*BaseHandler
	requestService services.ContactRequestService
}

func NewRequestHandler(base *BaseHandler, requestService services.ContactRequestService) *RequestHandler {
	return &RequestHandler{
		BaseHandler:    base,
		requestService: requestService,
	}
}

func (h *RequestHandler) RegisterRoutes(rg *gin.RouterGroup) {
	requests := rg.Group("/requests")
	requests.Use(h.RequireAuth())
	{
		requests.POST("", middleware.RequireRoles(models.UserRoleStudent), h.Create)
		requests.GET("/me", h.ListMine)
		requests.PATCH("/:requestId", middleware.RequireRoles(models.UserRoleTeacher), h.UpdateStatus)
		requests.DELETE("/:requestId", h.Cancel)
	}
}

func (h *RequestHandler) Create(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateContactRequestRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	request, err := h.requestService.Create(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"contactRequest": request})
}

func (h *RequestHandler) ListMine(c *gin.Context) {
	userID, role, ok := h.GetAuthorizedUser(c)
	if !ok {
		return
	}

	var query dto.ContactRequestQuery
	if !h.BindAndValidate_Query(c, &query) {
		return
	}
	status, ok := parseRequestStatus(c, query.Status)
	if !ok {
		return
	}

	requests, err := h.requestService.ListMine(h.GetDB(c), userID, role, status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"contactRequests": requests})
}

func (h *RequestHandler) UpdateStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	requestID, ok := ParseParamID(c, "requestId")
	if !ok {
		return
	}

	var req dto.UpdateContactRequestStatusRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	result, err := h.requestService.UpdateStatus(h.GetDB(c), requestID, userID, req.Status)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *RequestHandler) Cancel(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	requestID, ok := ParseParamID(c, "requestId")
	if !ok {
		return
	}

	if err := h.requestService.Cancel(h.GetDB(c), requestID, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
