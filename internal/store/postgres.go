package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/clean"
)

// PGWriter loads cleaned entities into Postgres. Each entity is written
// inside one transaction, and every insert carries ON CONFLICT DO
// NOTHING on the primary key, so re-running the pipeline against an
// already-loaded database is a no-op rather than a duplication or an
// error.
type PGWriter struct {
	Pool *pgxpool.Pool
}

// Tables are created parents-first so the FK declarations resolve.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS channels (
		channel_id   BIGINT PRIMARY KEY,
		channel_name TEXT NOT NULL,
		channel_type TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS drivers (
		driver_id    BIGINT PRIMARY KEY,
		driver_modal TEXT NOT NULL,
		driver_type  TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS hubs (
		hub_id        BIGINT PRIMARY KEY,
		hub_name      TEXT NOT NULL,
		hub_city      TEXT NOT NULL,
		hub_state     TEXT NOT NULL,
		hub_latitude  DOUBLE PRECISION NOT NULL,
		hub_longitude DOUBLE PRECISION NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS stores (
		store_id         BIGINT PRIMARY KEY,
		hub_id           BIGINT NOT NULL REFERENCES hubs(hub_id),
		store_name       TEXT NOT NULL,
		store_segment    TEXT NOT NULL,
		store_plan_price DOUBLE PRECISION NOT NULL,
		store_latitude   DOUBLE PRECISION,
		store_longitude  DOUBLE PRECISION
	)`,
	`CREATE TABLE IF NOT EXISTS orders (
		order_id                          BIGINT PRIMARY KEY,
		store_id                          BIGINT NOT NULL REFERENCES stores(store_id),
		channel_id                        BIGINT NOT NULL REFERENCES channels(channel_id),
		order_status                      TEXT NOT NULL,
		order_amount                      DOUBLE PRECISION NOT NULL,
		order_delivery_fee                DOUBLE PRECISION NOT NULL,
		order_delivery_cost               DOUBLE PRECISION NOT NULL,
		order_moment_created              TIMESTAMP,
		order_moment_accepted             TIMESTAMP,
		order_moment_ready                TIMESTAMP,
		order_moment_collected            TIMESTAMP,
		order_moment_in_expedition        TIMESTAMP,
		order_moment_delivering           TIMESTAMP,
		order_moment_delivered            TIMESTAMP,
		order_moment_finished             TIMESTAMP,
		order_metric_collected_time       DOUBLE PRECISION NOT NULL,
		order_metric_paused_time          DOUBLE PRECISION NOT NULL,
		order_metric_production_time      DOUBLE PRECISION NOT NULL,
		order_metric_walking_time         DOUBLE PRECISION NOT NULL,
		order_metric_expediton_speed_time DOUBLE PRECISION NOT NULL,
		order_metric_transit_time         DOUBLE PRECISION NOT NULL,
		order_metric_cycle_time           DOUBLE PRECISION NOT NULL,
		delivery_time_minutes             DOUBLE PRECISION
	)`,
	`CREATE TABLE IF NOT EXISTS deliveries (
		delivery_id              BIGINT PRIMARY KEY,
		delivery_order_id        BIGINT NOT NULL REFERENCES orders(order_id),
		driver_id                BIGINT NOT NULL REFERENCES drivers(driver_id),
		delivery_distance_meters DOUBLE PRECISION NOT NULL,
		delivery_status          TEXT NOT NULL,
		has_driver_data          BOOLEAN NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS payments (
		payment_id       BIGINT PRIMARY KEY,
		payment_order_id BIGINT NOT NULL REFERENCES orders(order_id),
		payment_amount   DOUBLE PRECISION NOT NULL,
		payment_fee      DOUBLE PRECISION NOT NULL,
		payment_method   TEXT NOT NULL,
		payment_status   TEXT NOT NULL
	)`,
}

// EnsureSchema creates the destination tables when absent. Existing
// tables are left untouched; a type mismatch surfaces later as a write
// failure rather than being silently coerced.
func (w PGWriter) EnsureSchema(ctx context.Context) error {
	for _, stmt := range ddl {
		if _, err := w.Pool.Exec(ctx, stmt); err != nil {
			return &WriteError{Entity: "schema", Dest: "postgres", Err: err}
		}
	}
	return nil
}

// WriteAll loads every entity in dependency order (parents before
// children, matching the declared FKs) and returns the number of rows
// actually inserted per entity. Rows already present are skipped.
func (w PGWriter) WriteAll(ctx context.Context, ds *clean.Dataset) (map[string]int64, error) {
	inserted := make(map[string]int64, 7)

	load := []struct {
		entity string
		batch  func() *pgx.Batch
	}{
		{"channels", func() *pgx.Batch { return channelBatch(ds.Channels) }},
		{"drivers", func() *pgx.Batch { return driverBatch(ds.Drivers) }},
		{"hubs", func() *pgx.Batch { return hubBatch(ds.Hubs) }},
		{"stores", func() *pgx.Batch { return storeBatch(ds.Stores) }},
		{"orders", func() *pgx.Batch { return orderBatch(ds.Orders) }},
		{"deliveries", func() *pgx.Batch { return deliveryBatch(ds.Deliveries) }},
		{"payments", func() *pgx.Batch { return paymentBatch(ds.Payments) }},
	}

	for _, l := range load {
		n, err := w.sendBatch(ctx, l.batch())
		if err != nil {
			return inserted, &WriteError{Entity: l.entity, Dest: "postgres", Err: err}
		}
		inserted[l.entity] = n
	}
	return inserted, nil
}

// sendBatch runs one entity's inserts inside a transaction: either the
// whole entity becomes visible or none of it does.
func (w PGWriter) sendBatch(ctx context.Context, batch *pgx.Batch) (int64, error) {
	tx, err := w.Pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback(ctx)

	results := tx.SendBatch(ctx, batch)
	var inserted int64
	for i := 0; i < batch.Len(); i++ {
		tag, err := results.Exec()
		if err != nil {
			results.Close()
			return 0, fmt.Errorf("insert %d of %d: %w", i+1, batch.Len(), err)
		}
		inserted += tag.RowsAffected()
	}
	if err := results.Close(); err != nil {
		return 0, fmt.Errorf("closing batch: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("commit: %w", err)
	}
	return inserted, nil
}

func channelBatch(rows []clean.Channel) *pgx.Batch {
	b := &pgx.Batch{}
	for _, r := range rows {
		b.Queue(`INSERT INTO channels (channel_id, channel_name, channel_type)
			VALUES ($1, $2, $3) ON CONFLICT (channel_id) DO NOTHING`,
			r.ID, r.Name, r.Type)
	}
	return b
}

func driverBatch(rows []clean.Driver) *pgx.Batch {
	b := &pgx.Batch{}
	for _, r := range rows {
		b.Queue(`INSERT INTO drivers (driver_id, driver_modal, driver_type)
			VALUES ($1, $2, $3) ON CONFLICT (driver_id) DO NOTHING`,
			r.ID, r.Modal, r.Type)
	}
	return b
}

func hubBatch(rows []clean.Hub) *pgx.Batch {
	b := &pgx.Batch{}
	for _, r := range rows {
		b.Queue(`INSERT INTO hubs (hub_id, hub_name, hub_city, hub_state, hub_latitude, hub_longitude)
			VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (hub_id) DO NOTHING`,
			r.ID, r.Name, r.City, r.State, r.Latitude, r.Longitude)
	}
	return b
}

func storeBatch(rows []clean.Store) *pgx.Batch {
	b := &pgx.Batch{}
	for _, r := range rows {
		b.Queue(`INSERT INTO stores (store_id, hub_id, store_name, store_segment, store_plan_price, store_latitude, store_longitude)
			VALUES ($1, $2, $3, $4, $5, $6, $7) ON CONFLICT (store_id) DO NOTHING`,
			r.ID, r.HubID, r.Name, r.Segment, r.PlanPrice, r.Latitude, r.Longitude)
	}
	return b
}

func orderBatch(rows []clean.Order) *pgx.Batch {
	b := &pgx.Batch{}
	for _, r := range rows {
		b.Queue(`INSERT INTO orders (
			order_id, store_id, channel_id, order_status,
			order_amount, order_delivery_fee, order_delivery_cost,
			order_moment_created, order_moment_accepted, order_moment_ready,
			order_moment_collected, order_moment_in_expedition, order_moment_delivering,
			order_moment_delivered, order_moment_finished,
			order_metric_collected_time, order_metric_paused_time,
			order_metric_production_time, order_metric_walking_time,
			order_metric_expediton_speed_time, order_metric_transit_time,
			order_metric_cycle_time, delivery_time_minutes
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15,
			$16, $17, $18, $19, $20, $21, $22, $23)
		ON CONFLICT (order_id) DO NOTHING`,
			r.ID, r.StoreID, r.ChannelID, r.Status,
			r.Amount, r.DeliveryFee, r.DeliveryCost,
			r.MomentCreated, r.MomentAccepted, r.MomentReady,
			r.MomentCollected, r.MomentInExpedition, r.MomentDelivering,
			r.MomentDelivered, r.MomentFinished,
			r.MetricCollectedTime, r.MetricPausedTime,
			r.MetricProductionTime, r.MetricWalkingTime,
			r.MetricExpeditionSpeed, r.MetricTransitTime,
			r.MetricCycleTime, r.DeliveryTimeMinutes)
	}
	return b
}

func deliveryBatch(rows []clean.Delivery) *pgx.Batch {
	b := &pgx.Batch{}
	for _, r := range rows {
		b.Queue(`INSERT INTO deliveries (delivery_id, delivery_order_id, driver_id, delivery_distance_meters, delivery_status, has_driver_data)
			VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (delivery_id) DO NOTHING`,
			r.ID, r.OrderID, r.DriverID, r.DistanceMeters, r.Status, r.HasDriverData)
	}
	return b
}

func paymentBatch(rows []clean.Payment) *pgx.Batch {
	b := &pgx.Batch{}
	for _, r := range rows {
		b.Queue(`INSERT INTO payments (payment_id, payment_order_id, payment_amount, payment_fee, payment_method, payment_status)
			VALUES ($1, $2, $3, $4, $5, $6) ON CONFLICT (payment_id) DO NOTHING`,
			r.ID, r.OrderID, r.Amount, r.Fee, r.Method, r.Status)
	}
	return b
}
