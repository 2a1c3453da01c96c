package handlers

import (
	"net/http"

	"github.com/deouf-dev/talemy-api/internal/services"
	"github.com/deouf-dev/talemy-api/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ConversationHandler struct {
	*BaseHandler
	conversationService services.ConversationService
}

func NewConversationHandler(base *BaseHandler, conversationService services.ConversationService) *ConversationHandler {
	return &ConversationHandler{
		BaseHandler:         base,
		conversationService: conversationService,
	}
}

func (h *ConversationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	conversations := rg.Group("/conversations")
	conversations.Use(h.RequireAuth())
	{
		conversations.GET("", h.List)
		conversations.POST("/:conversationId/messages", h.SendMessage)
		conversations.GET("/:conversationId/messages", h.ListMessages)
	}
}

func (h *ConversationHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	limit := ParseQueryInt(c, "limit", services.DefaultListLimit)
	offset := ParseQueryInt(c, "offset", 0)

	items, err := h.conversationService.ListConversations(h.GetDB(c), userID, limit, offset)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": items})
}

func (h *ConversationHandler) SendMessage(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	conversationID, ok := ParseParamID(c, "conversationId")
	if !ok {
		return
	}

	var req dto.SendMessageRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	message, err := h.conversationService.SendMessage(h.GetDB(c), conversationID, userID, req.Content)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, message)
}

func (h *ConversationHandler) ListMessages(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	conversationID, ok := ParseParamID(c, "conversationId")
	if !ok {
		return
	}
	page, pageSize := ParsePagination(c)

	result, err := h.conversationService.ListMessages(h.GetDB(c), conversationID, userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}
