package routes

import (
	"github.com/deouf-dev/talemy-api/internal/handlers"
	"github.com/deouf-dev/talemy-api/internal/logger"
	"github.com/deouf-dev/talemy-api/ws"

	"github.com/gin-gonic/gin"
)

// RegisterRoutes mounts the HTTP API under /api/v1. wsHandler may be nil when
// the real-time gateway is disabled.
func RegisterRoutes(
	ginRouter *gin.Engine,
	appHandlers *handlers.AppHandlers,
	wsHandler *ws.Handler,
) {
	api := ginRouter.Group("/api/v1")
	{
		appHandlers.AuthHandler.RegisterRoutes(api)
		appHandlers.UserHandler.RegisterRoutes(api)
		appHandlers.TeacherHandler.RegisterRoutes(api)
		appHandlers.StudentHandler.RegisterRoutes(api)
		appHandlers.SubjectHandler.RegisterRoutes(api)
		appHandlers.AvailabilityHandler.RegisterRoutes(api)
		appHandlers.RequestHandler.RegisterRoutes(api)
		appHandlers.ConversationHandler.RegisterRoutes(api)
		appHandlers.LessonHandler.RegisterRoutes(api)
		appHandlers.ReviewHandler.RegisterRoutes(api)
	}

	ginRouter.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	if wsHandler != nil {
		// Authentication happens inside ServeWS so the token can also come from the query string.
		api.GET("/ws", wsHandler.ServeWS)
		logger.Info("WebSocket route /api/v1/ws registered")
	}
}
