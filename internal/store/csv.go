package store

import (
	"path/filepath"

	"golang.org/x/text/encoding/charmap"

	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/clean"
	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/csvio"
)

// CSVWriter writes one <entity>_cleaned.csv per entity into Dir, encoded
// with Enc (latin1 for this dataset, so city names survive a round trip).
// Files are written via temp-file rename, so each entity is atomic.
type CSVWriter struct {
	Dir string
	Enc *charmap.Charmap
}

// WriteAll persists every entity. The first failure stops the pass;
// entities already renamed into place remain.
func (w CSVWriter) WriteAll(ds *clean.Dataset) error {
	writers := []struct {
		entity string
		write  func() error
	}{
		{"channels", func() error { return w.writeChannels(ds.Channels) }},
		{"drivers", func() error { return w.writeDrivers(ds.Drivers) }},
		{"hubs", func() error { return w.writeHubs(ds.Hubs) }},
		{"stores", func() error { return w.writeStores(ds.Stores) }},
		{"orders", func() error { return w.writeOrders(ds.Orders) }},
		{"deliveries", func() error { return w.writeDeliveries(ds.Deliveries) }},
		{"payments", func() error { return w.writePayments(ds.Payments) }},
	}
	for _, e := range writers {
		if err := e.write(); err != nil {
			return &WriteError{Entity: e.entity, Dest: w.Dir, Err: err}
		}
	}
	return nil
}

func (w CSVWriter) path(entity string) string {
	return filepath.Join(w.Dir, entity+"_cleaned.csv")
}

func (w CSVWriter) writeChannels(rows []clean.Channel) error {
	header := []string{"channel_id", "channel_name", "channel_type"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{formatInt(r.ID), r.Name, r.Type})
	}
	return csvio.WriteTable(w.path("channels"), w.Enc, header, records)
}

func (w CSVWriter) writeDrivers(rows []clean.Driver) error {
	header := []string{"driver_id", "driver_modal", "driver_type"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{formatInt(r.ID), r.Modal, r.Type})
	}
	return csvio.WriteTable(w.path("drivers"), w.Enc, header, records)
}

func (w CSVWriter) writeHubs(rows []clean.Hub) error {
	header := []string{"hub_id", "hub_name", "hub_city", "hub_state", "hub_latitude", "hub_longitude"}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			formatInt(r.ID), r.Name, r.City, r.State,
			formatFloat(r.Latitude), formatFloat(r.Longitude),
		})
	}
	return csvio.WriteTable(w.path("hubs"), w.Enc, header, records)
}

func (w CSVWriter) writeStores(rows []clean.Store) error {
	header := []string{
		"store_id", "hub_id", "store_name", "store_segment",
		"store_plan_price", "store_latitude", "store_longitude",
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			formatInt(r.ID), formatInt(r.HubID), r.Name, r.Segment,
			formatFloat(r.PlanPrice), formatOptFloat(r.Latitude), formatOptFloat(r.Longitude),
		})
	}
	return csvio.WriteTable(w.path("stores"), w.Enc, header, records)
}

func (w CSVWriter) writeOrders(rows []clean.Order) error {
	header := []string{
		"order_id", "store_id", "channel_id", "order_status",
		"order_amount", "order_delivery_fee", "order_delivery_cost",
		"order_moment_created", "order_moment_accepted", "order_moment_ready",
		"order_moment_collected", "order_moment_in_expedition", "order_moment_delivering",
		"order_moment_delivered", "order_moment_finished",
		"order_metric_collected_time", "order_metric_paused_time",
		"order_metric_production_time", "order_metric_walking_time",
		"order_metric_expediton_speed_time", "order_metric_transit_time",
		"order_metric_cycle_time", "delivery_time_minutes",
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			formatInt(r.ID), formatInt(r.StoreID), formatInt(r.ChannelID), r.Status,
			formatFloat(r.Amount), formatFloat(r.DeliveryFee), formatFloat(r.DeliveryCost),
			formatTimestamp(r.MomentCreated), formatTimestamp(r.MomentAccepted),
			formatTimestamp(r.MomentReady), formatTimestamp(r.MomentCollected),
			formatTimestamp(r.MomentInExpedition), formatTimestamp(r.MomentDelivering),
			formatTimestamp(r.MomentDelivered), formatTimestamp(r.MomentFinished),
			formatFloat(r.MetricCollectedTime), formatFloat(r.MetricPausedTime),
			formatFloat(r.MetricProductionTime), formatFloat(r.MetricWalkingTime),
			formatFloat(r.MetricExpeditionSpeed), formatFloat(r.MetricTransitTime),
			formatFloat(r.MetricCycleTime), formatOptFloat(r.DeliveryTimeMinutes),
		})
	}
	return csvio.WriteTable(w.path("orders"), w.Enc, header, records)
}

func (w CSVWriter) writeDeliveries(rows []clean.Delivery) error {
	header := []string{
		"delivery_id", "delivery_order_id", "driver_id",
		"delivery_distance_meters", "delivery_status", "has_driver_data",
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			formatInt(r.ID), formatInt(r.OrderID), formatInt(r.DriverID),
			formatFloat(r.DistanceMeters), r.Status, formatBool(r.HasDriverData),
		})
	}
	return csvio.WriteTable(w.path("deliveries"), w.Enc, header, records)
}

func (w CSVWriter) writePayments(rows []clean.Payment) error {
	header := []string{
		"payment_id", "payment_order_id", "payment_amount",
		"payment_fee", "payment_method", "payment_status",
	}
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			formatInt(r.ID), formatInt(r.OrderID), formatFloat(r.Amount),
			formatFloat(r.Fee), r.Method, r.Status,
		})
	}
	return csvio.WriteTable(w.path("payments"), w.Enc, header, records)
}
