package main

import (
	"context"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"pathology-case-server/internal/ai"
	"pathology-case-server/internal/config"
	"pathology-case-server/internal/handlers"
	"pathology-case-server/internal/middleware"
	"pathology-case-server/internal/routes"
	"pathology-case-server/internal/store"
)

func main() {
	// Load environment variables
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger, err := newLogger(cfg.Environment)
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Stores. The notification store must exist before the case store so
	// assignment notifications have somewhere to go.
	notifications := store.NewNotificationStore()
	errorLog := store.NewErrorLogStore(logger)
	auth := store.NewAuthStore(logger, cfg.SessionFile)
	cases := store.NewCaseStore(logger, auth, notifications)
	feedback := store.NewFeedbackStore(logger, auth)
	tenants := store.NewTenantStore()
	roles := store.NewRoleStore()
	tasks := store.NewTaskStore(auth)
	integrations := store.NewIntegrationStore()
	aiModels := store.NewModelStore()
	experiments := store.NewMlflowStore()
	changelog := store.NewChangelogStore()
	courses := store.NewCourseStore()
	activity := store.NewActivityStore()
	settings := store.NewSettingsStore()
	stats := store.NewStatsStore(auth, cases)

	aiClient := ai.NewClient(context.Background(), logger, cfg.Gemini.APIKey, cfg.Gemini.Model)

	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.MetricsMiddleware())

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{cfg.Origin}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization"}
	router.Use(cors.New(corsConfig))

	h := routes.Handlers{
		Auth:     handlers.NewAuthHandler(logger, cfg, auth),
		Users:    handlers.NewUserHandler(logger, auth, feedback, activity),
		Cases:    handlers.NewCaseHandler(logger, cases, auth, aiClient, errorLog, activity),
		Editor:   handlers.NewEditorHandler(logger, cases),
		Search:   handlers.NewSearchHandler(logger, aiClient, auth, cases),
		Feedback: handlers.NewFeedbackHandler(logger, feedback, activity),
		Tenants:  handlers.NewTenantHandler(tenants, integrations),
		Roles:    handlers.NewRoleHandler(roles),
		Tasks:    handlers.NewTaskHandler(tasks),
		Admin:    handlers.NewAdminHandler(logger, integrations, aiModels, experiments, changelog, courses, activity, settings, errorLog),
		Stats:    handlers.NewStatsHandler(stats, notifications),
	}
	routes.SetupRoutes(router, cfg, roles, h)

	logger.Info("server starting",
		zap.String("port", cfg.Port),
		zap.String("environment", cfg.Environment),
		zap.Bool("ai_configured", aiClient.Configured()))

	if err := router.Run(":" + cfg.Port); err != nil {
		logger.Fatal("failed to start server", zap.Error(err))
	}
}

func newLogger(environment string) (*zap.Logger, error) {
	if environment == "production" {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
