package router

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"golang.org/x/time/rate"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/kulinarya/backend/internal/apperrors"
	"github.com/kulinarya/backend/internal/handlers"
	"github.com/kulinarya/backend/internal/middleware"
	"github.com/kulinarya/backend/internal/models"
	"github.com/kulinarya/backend/internal/repositories"
	"github.com/kulinarya/backend/internal/services"
	"github.com/kulinarya/backend/pkg/config"
	"github.com/kulinarya/backend/pkg/mail"
	"github.com/kulinarya/backend/pkg/storage"
)

// SetupMiddleware configures global Echo middleware and the error handler.
func SetupMiddleware(e *echo.Echo, cfg *config.Config) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORSWithConfig(eMiddleware.CORSConfig{
		AllowOrigins:     []string{cfg.FrontendURL},
		AllowCredentials: true,
	}))
	e.HTTPErrorHandler = errorHandler
}

// errorHandler maps application errors onto the response envelope.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}

	status := apperrors.HTTPStatus(err)
	message := "Internal server error"

	var appErr *apperrors.AppError
	switch {
	case errors.As(err, &appErr):
		message = appErr.Message
	default:
		var httpErr *echo.HTTPError
		if errors.As(err, &httpErr) {
			status = httpErr.Code
			if m, ok := httpErr.Message.(string); ok {
				message = m
			}
		}
	}

	if status >= http.StatusInternalServerError {
		slog.Error("request failed", "method", c.Request().Method, "path", c.Path(), "error", err)
	}

	_ = c.JSON(status, map[string]any{
		"success":    false,
		"statusCode": status,
		"message":    message,
	})
}

// SetupRoutes wires repositories, services and handlers onto the Echo
// instance.
func SetupRoutes(e *echo.Echo, db *mongo.Database, cfg *config.Config, media *storage.MediaStorage, mailer *mail.Mailer) {
	// repositories
	userRepo := repositories.NewMongoUserRepository(db)
	recipeRepo := repositories.NewMongoRecipeRepository(db)
	moderationRepo := repositories.NewMongoModerationRepository(db)
	reactionRepo := repositories.NewMongoReactionRepository(db)
	commentRepo := repositories.NewMongoCommentRepository(db)
	notificationRepo := repositories.NewMongoNotificationRepository(db)
	announcementRepo := repositories.NewMongoAnnouncementRepository(db)
	visitRepo := repositories.NewMongoPlatformVisitRepository(db)
	viewRepo := repositories.NewMongoPostViewRepository(db)
	tokenRepo := repositories.NewMongoTokenRepository(db)
	resendRepo := repositories.NewMongoResendAttemptRepository(db)

	// services
	notifier := services.NewNotificationService(notificationRepo)
	authService := services.NewAuthService(userRepo, tokenRepo, resendRepo, mailer, cfg.JWTSecret, cfg.JWTTTL)
	userService := services.NewUserService(userRepo)
	recipeService := services.NewRecipeService(recipeRepo, moderationRepo)
	engagementService := services.NewEngagementService(recipeRepo)
	moderationService := services.NewModerationService(moderationRepo, recipeRepo, userRepo, notifier)
	reactionService := services.NewReactionService(reactionRepo, recipeRepo, userRepo, notifier)
	commentService := services.NewCommentService(commentRepo, recipeRepo, userRepo, notifier)
	announcementService := services.NewAnnouncementService(announcementRepo, userRepo, notificationRepo)
	analyticsService := services.NewAnalyticsService(visitRepo, viewRepo, recipeRepo, cfg.VisitDebounceWindow, cfg.ViewDebounceWindow)

	// handlers
	healthHandler := handlers.NewHealthHandler()
	authHandler := handlers.NewAuthHandler(authService, cfg.CookieName, cfg.JWTTTL, cfg.Env == "production")
	userHandler := handlers.NewUserHandler(userService, authService)
	recipeHandler := handlers.NewRecipeHandler(recipeService, engagementService, media)
	moderationHandler := handlers.NewModerationHandler(moderationService, moderationRepo)
	reactionHandler := handlers.NewReactionHandler(reactionService, reactionRepo)
	commentHandler := handlers.NewCommentHandler(commentService)
	notificationHandler := handlers.NewNotificationHandler(notificationRepo)
	announcementHandler := handlers.NewAnnouncementHandler(announcementService)
	analyticsHandler := handlers.NewAnalyticsHandler(analyticsService)

	healthHandler.RegisterHealthRoutes(e)

	requireAuth := middleware.JWTAuthMiddleware(cfg.JWTSecret, cfg.CookieName)
	optionalAuth := middleware.OptionalJWTAuth(cfg.JWTSecret, cfg.CookieName)
	moderatorOnly := middleware.CheckRole(models.RoleAdmin, models.RoleCreator)
	adminOnly := middleware.CheckRole(models.RoleAdmin)

	// email endpoints are rate limited per client IP
	mailLimiter := eMiddleware.RateLimiter(eMiddleware.NewRateLimiterMemoryStore(rate.Limit(1)))

	// auth, public
	authGroup := e.Group("/api/auth")
	authHandler.RegisterAuthRoutes(authGroup, mailLimiter)

	// recipe read surface, open to guests
	publicRecipes := e.Group("/api/recipes")
	recipeHandler.RegisterPublicRecipeRoutes(publicRecipes)
	reactionHandler.RegisterPublicReactionRoutes(publicRecipes)
	commentHandler.RegisterPublicCommentRoutes(publicRecipes)

	// analytics tracking, guests allowed, session upgrades the viewer key
	analyticsGroup := e.Group("/api/analytics")
	analyticsGroup.Use(optionalAuth)
	analyticsHandler.RegisterAnalyticsRoutes(analyticsGroup)

	// authenticated surface
	userGroup := e.Group("/api/users")
	userGroup.Use(requireAuth)
	userHandler.RegisterUserRoutes(userGroup)

	recipeGroup := e.Group("/api/recipes")
	recipeGroup.Use(requireAuth)
	recipeHandler.RegisterRecipeRoutes(recipeGroup)
	reactionHandler.RegisterReactionRoutes(recipeGroup)
	commentHandler.RegisterCommentRoutes(recipeGroup)
	moderationHandler.RegisterRecipeModerationRoutes(recipeGroup)

	notificationGroup := e.Group("/api/notifications")
	notificationGroup.Use(requireAuth)
	notificationHandler.RegisterNotificationRoutes(notificationGroup)

	announcementGroup := e.Group("/api/announcements")
	announcementHandler.RegisterAnnouncementRoutes(announcementGroup)

	// moderator surface
	moderationGroup := e.Group("/api/moderations")
	moderationGroup.Use(requireAuth, moderatorOnly)
	moderationHandler.RegisterModerationRoutes(moderationGroup)

	// admin surface
	adminRecipes := e.Group("/api/recipes/admin")
	adminRecipes.Use(requireAuth, adminOnly)
	recipeHandler.RegisterAdminRecipeRoutes(adminRecipes)

	adminUsers := e.Group("/api/users/admin")
	adminUsers.Use(requireAuth, adminOnly)
	userHandler.RegisterAdminUserRoutes(adminUsers)

	adminAnnouncements := e.Group("/api/announcements/admin")
	adminAnnouncements.Use(requireAuth, adminOnly)
	announcementHandler.RegisterAdminAnnouncementRoutes(adminAnnouncements)

	adminAnalytics := e.Group("/api/analytics/admin")
	adminAnalytics.Use(requireAuth, adminOnly)
	analyticsHandler.RegisterAdminAnalyticsRoutes(adminAnalytics)

	slog.Info("routes configured")
}
