// Package pipeline wires the cleaning stages together: load raw tables,
// clean each entity, enforce referential integrity, build the retention
// audit, and persist the cleaned dataset. One run is a single batch pass;
// the first fatal error aborts it with the failing stage and entity in
// the error.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/encoding/charmap"

	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/audit"
	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/clean"
	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/config"
	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/csvio"
	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/integrity"
	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/store"
	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/table"
)

// Run executes the full pipeline. pool may be nil, in which case only the
// cleaned CSV destination is written. The returned report is non-nil on
// success; on error it is nil and the error identifies the failing stage.
func Run(ctx context.Context, cfg *config.Config, logger *slog.Logger, pool *pgxpool.Pool) (*audit.Report, error) {
	runID := uuid.NewString()
	logger = logger.With("run_id", runID)

	enc, err := csvio.Encoding(cfg.Data.Encoding)
	if err != nil {
		return nil, fmt.Errorf("resolving encoding: %w", err)
	}

	// Stage 1+2: load and clean. Cleaning has no cross-entity reads, so
	// all seven entities proceed concurrently; the integrity pass below
	// is the first point that needs every output.
	logger.Info("loading raw tables", "dir", cfg.Data.InputDir, "encoding", cfg.Data.Encoding)

	var ds clean.Dataset
	stats := make(map[string]clean.Stats, 7)
	results := make(chan clean.Stats, 7)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, st, err := loadAndClean(gctx, cfg, enc, "channels", clean.CleanChannels)
		ds.Channels = rows
		results <- st
		return err
	})
	g.Go(func() error {
		rows, st, err := loadAndClean(gctx, cfg, enc, "drivers", clean.CleanDrivers)
		ds.Drivers = rows
		results <- st
		return err
	})
	g.Go(func() error {
		rows, st, err := loadAndClean(gctx, cfg, enc, "hubs", clean.CleanHubs)
		ds.Hubs = rows
		results <- st
		return err
	})
	g.Go(func() error {
		rows, st, err := loadAndClean(gctx, cfg, enc, "stores", clean.CleanStores)
		ds.Stores = rows
		results <- st
		return err
	})
	g.Go(func() error {
		rows, st, err := loadAndClean(gctx, cfg, enc, "orders", clean.CleanOrders)
		ds.Orders = rows
		results <- st
		return err
	})
	g.Go(func() error {
		rows, st, err := loadAndClean(gctx, cfg, enc, "deliveries", clean.CleanDeliveries)
		ds.Deliveries = rows
		results <- st
		return err
	})
	g.Go(func() error {
		rows, st, err := loadAndClean(gctx, cfg, enc, "payments", clean.CleanPayments)
		ds.Payments = rows
		results <- st
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	close(results)
	for st := range results {
		stats[st.Entity] = st
	}

	for _, entity := range audit.EntityOrder {
		st := stats[entity]
		logger.Info("entity cleaned", "entity", entity,
			"raw", st.Raw, "removed", st.Removed(), "repairs", st.Repairs)
	}

	// Stage 3: referential integrity, parents first.
	logger.Info("enforcing referential integrity", "max_removal_pct", cfg.Integrity.MaxRemovalPct)
	integ, err := integrity.Enforce(&ds, cfg.Integrity.MaxRemovalPct)
	if err != nil {
		return nil, err
	}
	for _, rel := range integ.Relationships {
		if rel.Removed > 0 {
			logger.Warn("orphaned rows removed", "relationship", rel.Relationship,
				"checked", rel.Checked, "removed", rel.Removed)
		}
	}

	// Stage 4: retention audit over the final row sets.
	report := audit.Build(runID, stats, cleanedCounts(&ds), integ)
	logger.Info("audit complete", "summary", report.Summary)

	// Stage 5: persist.
	logger.Info("writing cleaned tables", "dir", cfg.Data.OutputDir)
	if err := (store.CSVWriter{Dir: cfg.Data.OutputDir, Enc: enc}).WriteAll(&ds); err != nil {
		return nil, err
	}

	if pool != nil {
		pg := store.PGWriter{Pool: pool}
		if err := pg.EnsureSchema(ctx); err != nil {
			return nil, err
		}
		inserted, err := pg.WriteAll(ctx, &ds)
		if err != nil {
			return nil, err
		}
		for _, entity := range audit.EntityOrder {
			logger.Info("entity loaded to postgres", "entity", entity, "inserted", inserted[entity])
		}
	}

	if path, err := report.WriteFile(cfg.Data.ReportDir); err != nil {
		logger.Warn("cleaning report not written", "error", err)
	} else {
		logger.Info("cleaning report written", "path", path)
	}

	return report, nil
}

// loadAndClean runs the two per-entity stages for one raw table.
func loadAndClean[T any](ctx context.Context, cfg *config.Config, enc *charmap.Charmap, entity string, cleaner func(t table.Table) ([]T, clean.Stats, error)) ([]T, clean.Stats, error) {
	if err := ctx.Err(); err != nil {
		return nil, clean.Stats{Entity: entity}, err
	}
	path := filepath.Join(cfg.Data.InputDir, entity+".csv")
	raw, err := csvio.ReadTable(path, entity, enc)
	if err != nil {
		return nil, clean.Stats{Entity: entity}, err
	}
	return cleaner(raw)
}

func cleanedCounts(ds *clean.Dataset) map[string]int {
	return map[string]int{
		"channels":   len(ds.Channels),
		"drivers":    len(ds.Drivers),
		"hubs":       len(ds.Hubs),
		"stores":     len(ds.Stores),
		"orders":     len(ds.Orders),
		"deliveries": len(ds.Deliveries),
		"payments":   len(ds.Payments),
	}
}
