package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"portfolio-contact-api/config"
	_ "portfolio-contact-api/docs" // Important for Swagger
	v1 "portfolio-contact-api/internal/delivery/http/v1"
	"portfolio-contact-api/internal/usecase"
	"portfolio-contact-api/pkg/logger"
	"portfolio-contact-api/pkg/redis"
	"portfolio-contact-api/pkg/slack"
	"portfolio-contact-api/pkg/validation"

	"github.com/gin-gonic/gin"
)

// @title           Portfolio Contact API
// @version         1.0
// @description     Relays portfolio contact form submissions to Slack.
// @host            localhost:8080
// @BasePath        /api
func main() {
	if err := run(); err != nil {
		log.Printf("Server stopped: %v", err)
		os.Exit(1)
	}
}

// run wires the service and blocks until a signal or a listen failure.
// Deferred cleanup runs before main exits.
func run() error {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	gin.SetMode(cfg.GinMode)

	// 2. Setup Logger
	logger.Init(logger.Config{Level: cfg.LogLevel, File: cfg.LogFile})
	logger.Log.Info("Starting portfolio contact api", "port", cfg.Port)

	// 3. Setup Redis (optional, rate limiting only)
	var redisCheck func(ctx context.Context) error
	if err := redis.Initialize(redis.Config{URL: cfg.UpstashRedisURL, Password: cfg.UpstashRedisPassword}); err != nil {
		if !errors.Is(err, redis.ErrNotConfigured) {
			logger.Log.Warn("Redis unavailable, using in-memory rate limiting", "error", err)
		}
	} else {
		redisCheck = redis.HealthCheck
		defer redis.Close()
	}

	// 4. Setup Slack notification
	webhook := slack.NewWebhookClient(cfg.SlackWebhookURL, nil)
	if !webhook.IsConfigured() {
		logger.Log.Warn("SLACK_WEBHOOK_URL not configured - contact form will answer with a server error")
	}

	// 5. Setup UseCases
	contactUC := usecase.NewContactUsecase(webhook, slack.NewBlockFormatter(), validation.New())
	healthUC := usecase.NewHealthUsecase(webhook, redisCheck)

	// 6. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		ContactUC: contactUC,
		HealthUC:  healthUC,
		Config:    cfg,
	})

	// 7. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	select {
	case err := <-serveErr:
		logger.Log.Error("Listen failed", "error", err)
		return err
	case <-quit:
	}
	logger.Log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
	return nil
}
