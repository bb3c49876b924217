// Package startup prepares the application server
package startup

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/zrasti/malleable-go/internal/application/container"
	"github.com/zrasti/malleable-go/internal/infrastructure/observability/logging"
	"github.com/zrasti/malleable-go/internal/infrastructure/observability/performance"
	"github.com/zrasti/malleable-go/internal/presentation/http/server"
	"github.com/zrasti/malleable-go/pkg/config"
)

// cleanupInterval paces the background sweep of expired cache entries and
// stale performance markers.
const cleanupInterval = 5 * time.Minute

// Initialize performs the complete startup sequence
func Initialize() error {
	setupLogging()

	start := time.Now().UTC()

	ctx, cancelBackgroundTasks := context.WithCancel(context.Background())
	defer cancelBackgroundTasks()

	log.Println("Initializing...")

	if config.JWTSecret == "" {
		return fmt.Errorf("JWT_SECRET must be set")
	}

	// Step 1: Initialize observability
	logger, err := logging.NewChanneledLogger(logging.DefaultLoggerConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer logger.Close()

	for _, name := range config.LogDebugChannels {
		channel := logging.Channel(name)
		if err := logger.SetChannelLevel(channel, slog.LevelDebug); err != nil {
			return fmt.Errorf("failed to set debug level for channel %s: %w", name, err)
		}
		logger.GetChannel(channel).Debug("Channel log level set to debug")
	}

	perfTracker := performance.NewTracker(performance.DefaultTrackerConfig())

	// Step 2: Create dependency injection container
	logger.Startup().Info("Initializing dependency injection container...")
	appContainer, err := container.NewContainer(ctx, logger, perfTracker)
	if err != nil {
		return fmt.Errorf("container initialization failed: %w", err)
	}
	logger.Startup().Info("Dependency injection container created",
		"storeBackend", config.SnapshotStoreBackend,
		"dbPath", config.SnapshotDBPath)

	// Step 3: Start background maintenance worker
	go runMaintenance(ctx, appContainer)
	logger.Startup().Info("Background maintenance worker started", "interval", cleanupInterval)

	// Step 4: Start HTTP server
	startServerTime := time.Now()
	port := config.Port
	httpServer := server.New(port, appContainer)
	logger.Startup().Info("HTTP server initialized", "port", port, "duration", time.Since(startServerTime))

	// Step 5: Setup graceful shutdown
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		logger.System().Info("Starting HTTP server", "address", ":"+port)
		if err := httpServer.Start(); err != nil {
			logger.System().Error("HTTP server failed", "error", err.Error())
		}
	}()

	logger.Startup().Info("Application startup complete",
		"totalDuration", time.Since(start),
		"port", port)

	// Wait for shutdown signal
	<-gracefulShutdown
	logger.Shutdown().Info("Shutdown signal received, starting graceful shutdown...")

	shutdownStart := time.Now()

	cancelBackgroundTasks()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger.Shutdown().Info("Stopping HTTP server...")
	if err := httpServer.Stop(shutdownCtx); err != nil {
		logger.Shutdown().Error("Error during server shutdown", "error", err.Error())
	} else {
		logger.Shutdown().Info("HTTP server stopped successfully")
	}

	logger.Shutdown().Info("Closing snapshot store...")
	if err := appContainer.Close(); err != nil {
		logger.Shutdown().Error("Error closing snapshot store", "error", err.Error())
	} else {
		logger.Shutdown().Info("Snapshot store closed successfully")
	}

	logger.Shutdown().Info("Application shutdown complete",
		"totalUptime", time.Since(start),
		"shutdownDuration", time.Since(shutdownStart))

	return nil
}

// runMaintenance periodically evicts expired edit-set cache entries and old
// performance markers until the context is cancelled.
func runMaintenance(ctx context.Context, c *container.Container) {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			purged := c.EditSetCache.PurgeExpired()
			c.PerfTracker.Cleanup()
			if purged > 0 {
				c.Logger.System().Debug("Purged expired edit-set cache entries", "count", purged)
			}
		}
	}
}

// setupLogging configures application logging
func setupLogging() {
	if os.Getenv("GIN_MODE") == "release" {
		gin.SetMode(gin.ReleaseMode)
	}
	log.SetFlags(log.LstdFlags | log.Lshortfile)
}
