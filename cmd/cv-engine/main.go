package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/hero4job/cv-engine/internal/api"
	"github.com/hero4job/cv-engine/internal/cleanup"
	"github.com/hero4job/cv-engine/internal/config"
	"github.com/hero4job/cv-engine/internal/drafts"
	"github.com/hero4job/cv-engine/internal/forms"
	"github.com/hero4job/cv-engine/internal/layouts"
	"github.com/hero4job/cv-engine/internal/models"
	"github.com/hero4job/cv-engine/internal/store"
)

func main() {
	// A .env file is optional; real environments set variables directly
	_ = godotenv.Load()

	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to create logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("failed to load config", zap.Error(err))
	}

	logger.Info("starting cv-engine",
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
	)

	// Document store, optionally preloaded with a sample CV
	st := store.New()
	if cfg.Seed.Enabled {
		st.SetDocument(models.SeedDocument(cfg.Layouts.DefaultLayout))
		logger.Info("store seeded with sample document", zap.String("layout", cfg.Layouts.DefaultLayout))
	}

	controllers := forms.NewControllers(st)

	// Layout registry with optional YAML restyling
	registry := layouts.NewRegistry(layouts.Layout(cfg.Layouts.DefaultLayout), logger)
	if err := registry.LoadFromDir(cfg.Layouts.Dir); err != nil {
		logger.Warn("failed to load layouts from dir", zap.String("dir", cfg.Layouts.Dir), zap.Error(err))
	}

	// Draft manager and its cleanup worker
	manager := drafts.NewManager(controllers, cfg.Drafts.TTL, logger)
	cleaner := cleanup.NewCleaner(manager, cfg.Cleanup.Interval, logger)

	// Create context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Start cleanup worker
	cleaner.Start(ctx)

	// Setup HTTP server
	server := api.NewServer(cfg, st, controllers, registry, manager, logger)
	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port),
		Handler:      server.Router(),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("HTTP server starting", zap.String("addr", httpServer.Addr))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down gracefully...")

	// Cancel context to stop background workers
	cancel()

	// Shutdown HTTP server with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", zap.Error(err))
	}

	logger.Info("cv-engine stopped")
}
