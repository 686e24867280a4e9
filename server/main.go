package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/paintlab/ai-image-studio/internal/config"
	"github.com/paintlab/ai-image-studio/internal/http/handlers"
	"github.com/paintlab/ai-image-studio/internal/http/routes"
	"github.com/paintlab/ai-image-studio/internal/services/processor"
	"github.com/paintlab/ai-image-studio/internal/services/stability"
)

func main() {
	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal("Failed to initialize logger:", err)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	if cfg.Stability.APIKey == "" {
		logger.Warn("STABILITY_API_KEY is not set; generation endpoints will fail until it is configured")
	}

	// Initialize services
	imageProcessor := processor.NewImageProcessor()
	client := stability.NewClient(cfg.Stability, logger)

	// Initialize handlers
	imageHandler := handlers.NewImageHandler(imageProcessor, client, logger, cfg)

	router := routes.NewRouter(imageHandler, logger, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		Handler:      router.SetupRoutes(),
	}

	// Start server
	go func() {
		logger.Info("Starting server", zap.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}
