package app

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/MinghowYooo/nexus/internal/config"
	"github.com/MinghowYooo/nexus/internal/database"
	"github.com/MinghowYooo/nexus/internal/docs"
	"github.com/MinghowYooo/nexus/internal/handlers"
	"github.com/MinghowYooo/nexus/internal/middleware"
	"github.com/MinghowYooo/nexus/internal/services"
)

type App struct {
	config   *config.Config
	logger   *logrus.Logger
	db       *database.Database
	services *services.Services
	handlers *handlers.Handlers
	router   *gin.Engine
}

func New(cfg *config.Config) (*App, error) {
	app := &App{
		config: cfg,
		logger: setupLogger(cfg),
	}

	db, err := database.New(cfg, app.logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	svcs, err := services.New(cfg, app.logger, db)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize services: %w", err)
	}
	app.services = svcs

	app.handlers = handlers.New(app.logger, svcs)

	app.setupRouter()

	return app, nil
}

func (a *App) Router() *gin.Engine {
	return a.router
}

func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application...")

	if a.services.MessageBus != nil {
		if err := a.services.MessageBus.Close(); err != nil {
			a.logger.WithError(err).Error("Error closing message bus")
		}
	}

	if err := a.db.Close(); err != nil {
		a.logger.WithError(err).Error("Error closing database connections")
		return err
	}

	return nil
}

func setupLogger(cfg *config.Config) *logrus.Logger {
	logger := logrus.New()

	level, err := logrus.ParseLevel(cfg.Logging.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)

	if cfg.Logging.Format == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}

func (a *App) setupRouter() {
	if a.config.Server.Mode == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Global middleware
	router.Use(middleware.Logger(a.logger))
	router.Use(middleware.Recovery(a.logger))
	router.Use(middleware.CORS(a.config))

	// Health check endpoint (no rate limit)
	router.GET("/health", a.handlers.Health.Check)

	// Prometheus metrics endpoint
	if a.config.Monitoring.Enabled {
		router.GET(a.config.Monitoring.MetricsPath, gin.WrapH(promhttp.Handler()))
	}

	// API documentation
	docs.RegisterRoutes(router)

	// API routes
	api := router.Group("/api/v1")
	{
		api.Use(middleware.RateLimit(a.services.RateLimit, a.logger))

		api.POST("/interactions", a.handlers.Interaction.Record)

		recommendations := api.Group("/recommendations")
		{
			recommendations.GET("/:userId", a.handlers.Recommendation.Get)
		}

		api.GET("/search", a.handlers.Search.Search)

		users := api.Group("/users")
		{
			users.GET("/:userId/preferences", a.handlers.User.GetPreferences)
		}

		channels := api.Group("/channels")
		{
			channels.GET("/:channelName/videos", a.handlers.Channel.GetVideos)
		}

		if a.handlers.Assistant != nil {
			api.POST("/assistant/message", a.handlers.Assistant.Message)
		}
	}

	a.router = router
}
