package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	portsrepo "github.com/SscSPs/medinventory_app/internal/core/ports/repositories"
	"github.com/SscSPs/medinventory_app/internal/core/services"
	"github.com/SscSPs/medinventory_app/internal/handlers"
	"github.com/SscSPs/medinventory_app/internal/middleware"
	"github.com/SscSPs/medinventory_app/internal/platform/config"
	"github.com/SscSPs/medinventory_app/internal/repositories/database/pgsql"
	"github.com/SscSPs/medinventory_app/internal/repositories/database/sqlite"
	"github.com/SscSPs/medinventory_app/internal/repositories/memory"
	"github.com/SscSPs/medinventory_app/pkg/database"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// @title Medicine Inventory API
// @version 1.0
// @description Inventory ledger for a pharmacy: medicines, stock history, sales and alerts.

// @host localhost:8080
// @BasePath /api/v1
func main() {
	// Initialize structured logger
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	store, closeStore, err := openStore(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("Failed to open ledger store", slog.String("driver", cfg.StorageDriver), slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer closeStore()

	if cfg.IsProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware (logging, recovery)
	r.Use(middleware.StructuredLoggingMiddleware(logger), gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSAllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Request-ID"},
		ExposeHeaders:    []string{"Content-Length", "X-Request-ID", "Retry-After"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))

	if cfg.RateLimit != "" {
		lim, err := middleware.NewRateLimiter(cfg.RateLimit)
		if err != nil {
			logger.Error("Failed to configure rate limiter", slog.String("error", err.Error()))
			os.Exit(1)
		}
		r.Use(middleware.RateLimit(lim))
	}

	if err := r.SetTrustedProxies(nil); err != nil {
		logger.Error("Failed to set trusted proxies", slog.String("error", err.Error()))
		os.Exit(1)
	}

	handlers.RegisterRoutes(r, cfg, services.NewServiceContainer(cfg, store))

	logger.Info("Server starting", slog.String("port", cfg.Port), slog.String("storage_driver", cfg.StorageDriver))
	if err := r.Run(":" + cfg.Port); err != nil {
		logger.Error("Server failed to run", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

// openStore migrates and connects the configured storage backend.
// The returned func releases it.
func openStore(ctx context.Context, cfg *config.Config, logger *slog.Logger) (portsrepo.LedgerStore, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverMemory:
		if cfg.MemorySnapshotPath == "" {
			logger.Warn("Using in-memory store without snapshot, data is lost on exit")
			return memory.NewStore(), func() {}, nil
		}
		store, err := memory.OpenStore(cfg.MemorySnapshotPath)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("Memory store loaded", slog.String("snapshot", cfg.MemorySnapshotPath))
		return store, func() {}, nil

	case config.DriverSQLite:
		if err := database.MigrateSQLite(cfg.SQLitePath); err != nil {
			return nil, nil, err
		}
		db, err := database.NewSQLite(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, nil, err
		}
		return sqlite.NewStore(db), func() { database.CloseSQLite(db) }, nil

	case config.DriverPostgres:
		if err := database.MigratePostgres(cfg.DatabaseURL); err != nil {
			return nil, nil, err
		}
		pool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, cfg.EnableDBCheck)
		if err != nil {
			return nil, nil, err
		}
		return pgsql.NewLedgerStore(pool), func() { database.ClosePgxPool(pool) }, nil
	}
	return nil, nil, fmt.Errorf("unsupported storage driver %q", cfg.StorageDriver)
}
