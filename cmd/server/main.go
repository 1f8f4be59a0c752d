// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dealerhub/forecast-engine/internal/api"
	"github.com/dealerhub/forecast-engine/internal/cache"
	"github.com/dealerhub/forecast-engine/internal/config"
	"github.com/dealerhub/forecast-engine/internal/repository/postgres"
	"github.com/dealerhub/forecast-engine/internal/service"
	"github.com/dealerhub/forecast-engine/internal/storage"
	"github.com/dealerhub/forecast-engine/pkg/logger"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	logger.SetLevel(cfg.Server.Mode)
	if cfg.Server.Mode == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize database
	db, err := postgres.NewDB(&cfg.Database)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to connect to database")
	}
	defer db.Close()

	analysisCache, err := cache.NewAnalysisCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Cache unavailable, continuing without it")
		analysisCache = cache.NewNoopAnalysisCache()
	}

	archiver, err := storage.NewSnapshotArchiver(cfg.Archive)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("Snapshot archive unavailable, continuing without it")
		archiver = storage.NewNoopArchiver()
	}

	// Initialize repositories and services
	configRepo := postgres.NewConfigRepository(db)
	dealerRepo := postgres.NewDealerRepository(db)
	demandRepo := postgres.NewDemandRepository(db)
	forecastRepo := postgres.NewForecastRepository(db)
	patternRepo := postgres.NewPatternRepository(db)
	marketRepo := postgres.NewMarketRepository(db)
	orderRepo := postgres.NewOrderRepository(db)

	configService := service.NewConfigService(configRepo, dealerRepo)
	forecastService := service.NewForecastService(
		configService, dealerRepo, demandRepo, forecastRepo,
		patternRepo, marketRepo, analysisCache, archiver,
	)
	orderService := service.NewOrderService(configService, demandRepo, forecastRepo, orderRepo)

	router := api.NewRouter(&api.Services{
		ConfigService:   configService,
		ForecastService: forecastService,
		OrderService:    orderService,
	}, cfg.Server.AllowedOrigins)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

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
