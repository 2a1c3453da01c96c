package handlers

import (
	"net/http"

	"github.com/deouf-dev/talemy-api/internal/logger"
	"github.com/deouf-dev/talemy-api/internal/middleware"
	"github.com/deouf-dev/talemy-api/internal/models"
	"github.com/deouf-dev/talemy-api/internal/services"

	"github.com/gin-gonic/gin"
)

// UserHandler exposes administrative user management.
type UserHandler struct {
	*BaseHandler
	userService services.UserService
}

func NewUserHandler(base *BaseHandler, userService services.UserService) *UserHandler {
	return &UserHandler{
		BaseHandler: base,
		userService: userService,
	}
}

func (h *UserHandler) RegisterRoutes(rg *gin.RouterGroup) {
	admin := rg.Group("/admin")
	admin.Use(h.RequireAuth(), middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.DELETE("/users/:id", h.AdminDeleteUser)
	}
}

func (h *UserHandler) AdminDeleteUser(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}
	userID, ok := ParseParamID(c, "id")
	if !ok {
		return
	}

	if err := h.userService.DeleteUser(h.GetDB(c), adminID, userID); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	logger.CtxInfo(c.Request.Context(), "User deleted by admin", "admin_id", adminID, "user_id", userID)
	c.Status(http.StatusNoContent)
}
