package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver for database/sql (migrations)
	"go.uber.org/zap"

	"github.com/aquaflow-inc/aquaflow-engine/pkg/config"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/database"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/logging"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/repositories"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/services"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	cfg, err := config.Load(Version)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	if err := run(cfg, logger); err != nil {
		logger.Fatal("startup failed", zap.String("error", logging.SanitizeError(err)))
	}
}

func run(cfg *config.Config, logger *zap.Logger) error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	connStr := cfg.Database.ConnectionString()
	logger.Info("connecting to database",
		zap.String("dsn", logging.SanitizeConnectionString(connStr)),
		zap.String("env", cfg.Env),
		zap.String("version", cfg.Version))

	db, err := database.NewConnection(ctx, &database.Config{
		URL:            connStr,
		MaxConnections: cfg.Database.MaxConnections,
	})
	if err != nil {
		return fmt.Errorf("connect: %w", err)
	}
	defer db.Close()

	if cfg.MigrateOnStart {
		sqlDB, err := sql.Open("pgx", connStr)
		if err != nil {
			return fmt.Errorf("open migration connection: %w", err)
		}
		if err := database.RunMigrations(sqlDB, logger); err != nil {
			sqlDB.Close()
			return fmt.Errorf("migrate: %w", err)
		}
		sqlDB.Close()
	}

	scopes := database.NewScopeProvider(db)
	alerts := services.NewStockAlertService(scopes, repositories.NewStockAlertRepository(), logger)
	reports := services.NewReportService(scopes, repositories.NewReportRepository())

	open, err := alerts.OpenAlerts(ctx)
	if err != nil {
		return fmt.Errorf("list open alerts: %w", err)
	}

	low, err := reports.LowStockParts(ctx)
	if err != nil {
		return fmt.Errorf("low stock report: %w", err)
	}

	logger.Info("store ready",
		zap.Int("open_stock_alerts", len(open)),
		zap.Int("low_stock_parts", len(low)))

	return nil
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	var zapCfg zap.Config
	if cfg.Env == "local" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zap.ParseAtomicLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid log level %q, using info\n", cfg.LogLevel)
	} else {
		zapCfg.Level = level
	}

	return zapCfg.Build()
}
