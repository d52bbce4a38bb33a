// Package main is the entry point for the Animal Shelter service.
// @title Animal Shelter API
// @version 1.0
// @description Create, read, update and delete over the animal shelter document collection

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /
// @schemes http https
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/Antles/FinalCS340/docs"
	"github.com/Antles/FinalCS340/internal/api/handlers"
	"github.com/Antles/FinalCS340/internal/api/middleware"
	"github.com/Antles/FinalCS340/internal/api/routes"
	"github.com/Antles/FinalCS340/internal/config"
	"github.com/Antles/FinalCS340/internal/core/docdb"
	"github.com/Antles/FinalCS340/internal/core/vault"
	dotenvvault "github.com/Antles/FinalCS340/internal/infrastructure/vault/dotenv"
	"github.com/Antles/FinalCS340/internal/pkg/logging"
	"github.com/Antles/FinalCS340/internal/pkg/metrics"
	"github.com/Antles/FinalCS340/internal/services/shelter"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Setup(cfg.Log)

	ctx := context.Background()

	vaultClient, err := createVaultClient(cfg.Vault)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize vault client")
	}
	defer vaultClient.Close()

	password, err := vault.ResolveSecret(ctx, vaultClient, cfg.DocDB.PasswordSecret)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to resolve document db password")
	}

	var (
		registry *prometheus.Registry
		m        *metrics.Metrics
	)
	if cfg.Metrics.Enabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
		m = metrics.New(cfg.Metrics.Namespace, registry)
	}

	gateway, err := connectGateway(ctx, cfg.DocDB, password, m)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize collection gateway")
	}
	defer func() {
		if err := gateway.Close(context.Background()); err != nil {
			log.Error().Err(err).Msg("failed to close document db client")
		}
	}()

	gin.SetMode(cfg.Server.GinMode)

	router := setupRouter(cfg, gateway, registry, m)

	srv := &http.Server{
		Addr:    cfg.Server.Address(),
		Handler: router,
	}

	go func() {
		log.Info().Str("address", cfg.Server.Address()).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// createVaultClient creates a vault client based on the configuration.
func createVaultClient(cfg config.VaultConfig) (vault.Client, error) {
	switch vault.Type(cfg.Type) {
	case vault.TypeDotEnv:
		return dotenvvault.NewClient(cfg.EnvFiles...)
	default:
		return nil, fmt.Errorf("unsupported vault type: %s", cfg.Type)
	}
}

// connectGateway opens the document database named by the configuration and
// binds the collection gateway to it.
func connectGateway(ctx context.Context, cfg config.DocDBConfig, password string, m *metrics.Metrics) (*shelter.Gateway, error) {
	switch docdb.Type(cfg.Type) {
	case docdb.TypeMongoDB, docdb.TypeCosmosDB:
		// CosmosDB speaks the MongoDB wire protocol.
		return shelter.Connect(ctx, cfg.ConnectionParams(password),
			shelter.WithMetrics(m),
			shelter.WithConnectTimeout(cfg.ConnectTimeout),
			shelter.WithAppName(cfg.AppName),
		)
	default:
		return nil, fmt.Errorf("unsupported docdb type: %s", cfg.Type)
	}
}

// setupRouter creates and configures the Gin router.
func setupRouter(cfg *config.Config, gateway *shelter.Gateway, registry *prometheus.Registry, m *metrics.Metrics) *gin.Engine {
	router := gin.New()

	loggingMw := middleware.NewLoggingMiddleware()
	errorMw := middleware.NewErrorMiddleware()

	routesCfg := &routes.Config{
		HealthHandler:    handlers.NewHealthHandler(gateway),
		DocumentsHandler: handlers.NewDocumentsHandler(gateway),
		Metrics:          m,
	}
	if registry != nil {
		routesCfg.MetricsHandler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{Registry: registry})
	}
	if len(cfg.Server.CORSAllowOrigins) > 0 {
		corsCfg := middleware.DefaultCORSConfig(cfg.Server.CORSAllowOrigins...)
		routesCfg.CORS = &corsCfg
	}

	routes.SetupWithMiddleware(router, routesCfg, loggingMw, errorMw)

	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return router
}
