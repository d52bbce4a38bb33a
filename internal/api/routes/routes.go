// Package routes defines the HTTP routes for the Animal Shelter service.
package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Antles/FinalCS340/internal/api/handlers"
	"github.com/Antles/FinalCS340/internal/api/middleware"
	"github.com/Antles/FinalCS340/internal/pkg/metrics"
)

// BasePath is the prefix of every API route.
const BasePath = "/api/v1/animal-shelter"

// Config holds the dependencies for setting up routes.
type Config struct {
	HealthHandler    *handlers.HealthHandler
	DocumentsHandler *handlers.DocumentsHandler
	// MetricsHandler serves /metrics when set.
	MetricsHandler http.Handler
	// Metrics records per-route request metrics when set.
	Metrics *metrics.Metrics
	// CORS enables the CORS middleware when set.
	CORS *middleware.CORSConfig
}

// Setup configures all routes on the Gin engine.
func Setup(r *gin.Engine, cfg *Config) {
	v1 := r.Group(BasePath)
	{
		v1.GET("/health", cfg.HealthHandler.Health)
		v1.GET("/ready", cfg.HealthHandler.Ready)
		v1.GET("/live", cfg.HealthHandler.Live)

		documents := v1.Group("/documents")
		{
			documents.POST("", cfg.DocumentsHandler.CreateDocument)
			documents.POST("/search", cfg.DocumentsHandler.SearchDocuments)
			documents.PATCH("", cfg.DocumentsHandler.UpdateDocuments)
			documents.DELETE("", cfg.DocumentsHandler.DeleteDocuments)
		}
	}

	if cfg.MetricsHandler != nil {
		r.GET("/metrics", gin.WrapH(cfg.MetricsHandler))
	}

	r.HandleMethodNotAllowed = true
	r.NoRoute(middleware.NotFound())
	r.NoMethod(middleware.MethodNotAllowed())
}

// SetupWithMiddleware sets up routes with common middleware.
func SetupWithMiddleware(r *gin.Engine, cfg *Config, loggingMw *middleware.LoggingMiddleware, errorMw *middleware.ErrorMiddleware) {
	r.Use(loggingMw.RequestLogger())
	r.Use(loggingMw.Logger())
	r.Use(errorMw.Recovery())
	if cfg.Metrics != nil {
		r.Use(middleware.Metrics(cfg.Metrics))
	}
	if cfg.CORS != nil {
		r.Use(middleware.NewCORSMiddleware(*cfg.CORS))
	}

	Setup(r, cfg)
}
