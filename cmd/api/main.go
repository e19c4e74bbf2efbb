package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/James1Law/vibe-test-carpenter-site/config"
	_ "github.com/James1Law/vibe-test-carpenter-site/docs" // Important for Swagger
	v1 "github.com/James1Law/vibe-test-carpenter-site/internal/delivery/http/v1"
	"github.com/James1Law/vibe-test-carpenter-site/internal/usecase"
	"github.com/James1Law/vibe-test-carpenter-site/pkg/email"
	"github.com/James1Law/vibe-test-carpenter-site/pkg/logger"
	"github.com/James1Law/vibe-test-carpenter-site/pkg/redis"

	"github.com/gin-gonic/gin"
)

// @title           Wright Angle Carpentry Contact API
// @version         1.0
// @description     Relays website contact form enquiries to the business owner by email.
// @host            localhost:8080
// @BasePath        /api
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting contact relay", "port", cfg.Port, "email_provider", cfg.EmailProvider)

	// 3. Setup Redis (optional, rate limiting falls back to memory)
	if cfg.UpstashRedisURL != "" {
		if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		}
		defer redis.Close()
	}

	// 4. Setup Email Service
	emailService := email.NewEmailService(cfg)
	if !emailService.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - contact form submissions will fail")
	}

	// 5. Setup UseCases
	contactUC := usecase.NewContactUsecase(emailService, logger.Log)
	healthUC := usecase.NewHealthUsecase(emailService)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Config:    cfg,
		Logger:    logger.Log,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
