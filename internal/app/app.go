package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deouf-dev/talemy-api/database"
	"github.com/deouf-dev/talemy-api/internal/auth"
	"github.com/deouf-dev/talemy-api/internal/config"
	"github.com/deouf-dev/talemy-api/internal/handlers"
	"github.com/deouf-dev/talemy-api/internal/logger"
	"github.com/deouf-dev/talemy-api/internal/middleware"
	"github.com/deouf-dev/talemy-api/internal/repositories"
	"github.com/deouf-dev/talemy-api/internal/routes"
	"github.com/deouf-dev/talemy-api/internal/services"
	"github.com/deouf-dev/talemy-api/internal/validator"
	"github.com/deouf-dev/talemy-api/ws"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func Run() {
	cfg, err := config.Load()
	if err != nil {
		logger.Init("production")
		logger.Fatal("Failed to load configuration", "error", err)
	}
	logger.Init(cfg.Server.Env)
	logger.Info("Logger initialized", "env", cfg.Server.Env)

	logger.Info("Connecting to database...", "driver", cfg.Database.Driver)
	gormDB, err := database.Open(cfg)
	if err != nil {
		logger.Fatal("Failed to connect to database", "error", err)
	}
	logger.Info("Database connected")

	if err := database.AutoMigrate(gormDB); err != nil {
		logger.Fatal("Failed to migrate database", "error", err)
	}
	if err := database.SeedSubjects(gormDB); err != nil {
		logger.Fatal("Failed to seed subjects", "error", err)
	}
	if err := database.SeedFirstAdmin(gormDB, cfg.FirstAdminEmail, cfg.FirstAdminPassword); err != nil {
		logger.Fatal("Failed to seed first admin user", "error", err)
	}

	ginRouter, shutdownRealtime, err := SetupRouter(cfg, gormDB)
	if err != nil {
		logger.Fatal("Failed to set up router", "error", err)
	}
	defer shutdownRealtime()

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      ginRouter,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info(fmt.Sprintf("Server starting on %s", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Server startup error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	if sqlDB, err := gormDB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("Server exited")
}

// SetupRouter wires services, handlers and the optional real-time gateway.
// The returned func stops the gateway.
func SetupRouter(cfg *config.Config, gormDB *gorm.DB) (*gin.Engine, func(), error) {
	ttl, err := cfg.TokenTTL()
	if err != nil {
		return nil, nil, err
	}
	tokens := auth.NewTokenManager(cfg.JWT.Secret, ttl)

	var (
		notifier  services.Notifier = services.NopNotifier{}
		wsManager *ws.Manager
	)
	if cfg.Realtime.Enabled {
		wsManager = ws.NewManager()
		go wsManager.Run()
		notifier = wsManager
	}

	serviceContainer := initializeServices(tokens, notifier)
	appHandlers := initializeHandlers(serviceContainer, tokens)

	var wsHandler *ws.Handler
	if wsManager != nil {
		wsHandler = ws.NewHandler(wsManager, serviceContainer.ConversationService, tokens, gormDB, cfg.Realtime.AllowedOrigins)
	}

	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}
	ginRouter := initializeGinRouter(gormDB, cfg.CORS.AllowedOrigins)
	routes.RegisterRoutes(ginRouter, appHandlers, wsHandler)

	stop := func() {
		if wsManager != nil {
			wsManager.Stop()
		}
	}
	return ginRouter, stop, nil
}

func initializeServices(tokens *auth.TokenManager, notifier services.Notifier) *services.ServiceContainer {
	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	subjectRepo := repositories.NewSubjectRepository()
	availabilityRepo := repositories.NewAvailabilityRepository()
	requestRepo := repositories.NewContactRequestRepository()
	conversationRepo := repositories.NewConversationRepository()
	lessonRepo := repositories.NewLessonRepository()
	reviewRepo := repositories.NewReviewRepository()

	return &services.ServiceContainer{
		AuthService:           services.NewAuthService(userRepo, profileRepo, tokens),
		UserService:           services.NewUserService(userRepo, reviewRepo, profileRepo),
		TeacherService:        services.NewTeacherService(userRepo, profileRepo, subjectRepo),
		StudentService:        services.NewStudentService(userRepo, profileRepo),
		SubjectService:        services.NewSubjectService(subjectRepo),
		AvailabilityService:   services.NewAvailabilityService(availabilityRepo, userRepo),
		ContactRequestService: services.NewContactRequestService(requestRepo, conversationRepo, userRepo, notifier),
		ConversationService:   services.NewConversationService(conversationRepo, requestRepo, userRepo, notifier),
		LessonService:         services.NewLessonService(lessonRepo, userRepo, subjectRepo),
		ReviewService:         services.NewReviewService(reviewRepo, userRepo, profileRepo),
	}
}

func initializeHandlers(services *services.ServiceContainer, tokens *auth.TokenManager) *handlers.AppHandlers {
	baseHandler := handlers.NewBaseHandler(validator.New(), tokens)

	return &handlers.AppHandlers{
		AuthHandler:         handlers.NewAuthHandler(baseHandler, services.AuthService),
		UserHandler:         handlers.NewUserHandler(baseHandler, services.UserService),
		TeacherHandler:      handlers.NewTeacherHandler(baseHandler, services.TeacherService, services.ReviewService, services.AvailabilityService, services.LessonService),
		StudentHandler:      handlers.NewStudentHandler(baseHandler, services.StudentService),
		SubjectHandler:      handlers.NewSubjectHandler(baseHandler, services.SubjectService),
		AvailabilityHandler: handlers.NewAvailabilityHandler(baseHandler, services.AvailabilityService),
		RequestHandler:      handlers.NewRequestHandler(baseHandler, services.ContactRequestService),
		ConversationHandler: handlers.NewConversationHandler(baseHandler, services.ConversationService),
		LessonHandler:       handlers.NewLessonHandler(baseHandler, services.LessonService),
		ReviewHandler:       handlers.NewReviewHandler(baseHandler, services.ReviewService),
	}
}

func initializeGinRouter(db *gorm.DB, allowedOrigins []string) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware(allowedOrigins))
	router.Use(middleware.DBMiddleware(db))
	return router
}
