package api

import (
	"github.com/gin-gonic/gin"
	"github.com/patternmusic/pattern-api/internal/api/handlers"
	apimiddleware "github.com/patternmusic/pattern-api/internal/api/middleware"
	"github.com/patternmusic/pattern-api/internal/catalog"
	"github.com/patternmusic/pattern-api/internal/config"
	"github.com/patternmusic/pattern-api/internal/metrics"
	"github.com/patternmusic/pattern-api/internal/storage"
)

func SetupRouter(store storage.PatternStore, cat *catalog.Catalog, cloudwatch *metrics.Client, cfg *config.Config, version string) *gin.Engine {
	router := gin.New()

	// Recovery middleware (must be first)
	router.Use(apimiddleware.RecoverWithSentry())

	// Sentry middleware for error tracking
	router.Use(apimiddleware.SentryMiddleware())

	// Request tracking and structured logging
	router.Use(apimiddleware.RequestTracking())

	// CORS middleware
	router.Use(apimiddleware.CORS(cfg.CORSOrigins))

	// Health check
	healthHandler := handlers.NewHealthHandler(store)
	router.GET("/health", healthHandler.HealthCheck)

	// Metrics endpoint
	metricsHandler := handlers.NewMetricsHandler(version)
	router.GET("/api/metrics", metricsHandler.GetMetrics)

	// Pattern API
	parseHandler := handlers.NewParseHandler(cloudwatch)
	instrumentsHandler := handlers.NewInstrumentsHandler(cat)
	patternsHandler := handlers.NewPatternsHandler(store, cat)
	renderHandler := handlers.NewRenderHandler(store, cloudwatch)

	api := router.Group("/api")
	{
		api.POST("/parse", parseHandler.Parse)
		api.GET("/instruments", instrumentsHandler.GetInstruments)
		api.GET("/grammar", handlers.GetGrammar)

		api.POST("/patterns", patternsHandler.SavePattern)
		api.GET("/patterns", patternsHandler.ListPatterns)
		api.GET("/patterns/:id", patternsHandler.LoadPattern)
		api.POST("/patterns/check", patternsHandler.CheckPattern)
		api.GET("/patterns/:id/midi", renderHandler.RenderSaved)

		api.POST("/render", renderHandler.Render)
	}

	return router
}
