package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/config"
	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/logging"
	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/pipeline"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
	slog.Info("configuration loaded", "config", cfg.String())

	// A signal aborts the batch; there is no partial-commit recovery, so
	// the next run simply starts over.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if cfg.Database.URL != "" {
		poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
		if err != nil {
			slog.Error("failed to parse database URL", "error", err)
			os.Exit(1)
		}
		poolConfig.MaxConns = int32(cfg.Database.MaxConns)
		poolConfig.MinConns = int32(cfg.Database.MinConns)
		poolConfig.MaxConnLifetime = cfg.Database.MaxConnLifetime

		pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			slog.Error("failed to ping database", "error", err)
			os.Exit(1)
		}
		slog.Info("postgres destination enabled")
	} else {
		slog.Info("no DATABASE_URL set, writing cleaned CSV files only")
	}

	report, err := pipeline.Run(ctx, cfg, slog.Default(), pool)
	if err != nil {
		slog.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	fmt.Print(report.SummaryTable())
	slog.Info("data cleaning pipeline completed", "summary", report.Summary)
}
