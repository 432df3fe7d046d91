// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/dealerbridge/forecast-go/internal/api"
	"github.com/dealerbridge/forecast-go/internal/cache"
	"github.com/dealerbridge/forecast-go/internal/config"
	"github.com/dealerbridge/forecast-go/internal/repository/postgres"
	"github.com/dealerbridge/forecast-go/internal/service"
	"github.com/dealerbridge/forecast-go/internal/storage"
	"github.com/dealerbridge/forecast-go/pkg/logger"
	"github.com/gin-gonic/gin"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	if cfg.Server.Mode == "debug" {
		logger.SetLevel("debug")
		gin.SetMode(gin.DebugMode)
	} else {
		logger.SetLevel("info")
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	// Initialize repositories
	portalRepo := postgres.NewPortalRepository(db)
	configRepo := postgres.NewConfigRepository(db)
	forecastRepo := postgres.NewForecastRepository(db)
	orderRepo := postgres.NewSuggestedOrderRepository(db)

	// Initialize report cache
	reportCache, err := cache.NewReportCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("report cache unavailable, continuing without")
		reportCache = cache.NewNoopReportCache()
	}

	// Plan exports are archived locally unless a bucket is configured
	var archive storage.Archive
	if cfg.Export.ArchiveBucket != "" {
		archive, err = storage.NewS3Archive(cfg.Export.ArchiveBucket, "", "", "")
		if err != nil {
			logger.Log.Fatal().Err(err).Msg("Failed to initialize export archive")
		}
	} else {
		archive = storage.NewLocalArchive(cfg.Export.Dir)
	}

	// Initialize services
	forecastService := service.NewForecastService(portalRepo, configRepo, portalRepo, portalRepo, forecastRepo, reportCache)
	planService := service.NewPlanService(portalRepo, configRepo, portalRepo, forecastRepo, orderRepo, reportCache, archive)

	// Initialize HTTP server
	router := api.NewRouter(&api.Services{
		ForecastService: forecastService,
		PlanService:     planService,
	}, cfg.Server.AllowedOrigins)

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Log.Info().Str("port", cfg.Server.Port).Msg("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal().Err(err).Msg("Failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	logger.Log.Info().Msg("Server exiting")
}
