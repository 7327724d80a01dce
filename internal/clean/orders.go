package clean

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/table"
)

const (
	colOrderID        = "order_id"
	colOrderStoreID   = "store_id"
	colOrderChannelID = "channel_id"
	colOrderStatus    = "order_status"
	colOrderAmount    = "order_amount"
	colOrderDlvFee    = "order_delivery_fee"
	colOrderDlvCost   = "order_delivery_cost"

	colMomentCreated      = "order_moment_created"
	colMomentAccepted     = "order_moment_accepted"
	colMomentReady        = "order_moment_ready"
	colMomentCollected    = "order_moment_collected"
	colMomentInExpedition = "order_moment_in_expedition"
	colMomentDelivering   = "order_moment_delivering"
	colMomentDelivered    = "order_moment_delivered"
	colMomentFinished     = "order_moment_finished"

	colMetricCollected  = "order_metric_collected_time"
	colMetricPaused     = "order_metric_paused_time"
	colMetricProduction = "order_metric_production_time"
	colMetricWalking    = "order_metric_walking_time"
	colMetricExpedition = "order_metric_expediton_speed_time"
	colMetricTransit    = "order_metric_transit_time"
	colMetricCycle      = "order_metric_cycle_time"
)

// MaxDeliveryMinutes bounds a plausible delivering→delivered duration.
const MaxDeliveryMinutes = 180.0

var orderColumns = []string{
	colOrderID, colOrderStoreID, colOrderChannelID, colOrderStatus,
	colOrderAmount, colOrderDlvFee, colOrderDlvCost,
	colMomentCreated, colMomentAccepted, colMomentReady, colMomentCollected,
	colMomentInExpedition, colMomentDelivering, colMomentDelivered, colMomentFinished,
	colMetricCollected, colMetricPaused, colMetricProduction, colMetricWalking,
	colMetricExpedition, colMetricTransit, colMetricCycle,
}

var orderRequired = []string{colOrderID, colOrderStoreID, colOrderChannelID, colOrderStatus}

// CleanOrders cleans the orders fact table.
//
// The delivery-time filter is deliberately two-step: first decide whether
// a duration exists at all (both delivering and delivered moments
// present), then check the bound. An order whose duration cannot be
// computed is always retained, its derived value stays null. Folding
// those steps into one comparison would classify every not-yet-delivered
// order as invalid and drop most of the table.
func CleanOrders(t table.Table) ([]Order, Stats, error) {
	stats := Stats{Entity: "orders", Raw: len(t.Rows)}
	if err := requireColumns(t, stats.Entity, orderColumns...); err != nil {
		return nil, stats, err
	}

	seen := make(map[string]struct{}, len(t.Rows))
	seenID := make(map[int64]struct{}, len(t.Rows))
	out := make([]Order, 0, len(t.Rows))

	for _, row := range t.Rows {
		if missingAny(row, orderRequired) {
			stats.MissingRequired++
			continue
		}
		fp := fingerprint(row, t.Columns)
		if _, dup := seen[fp]; dup {
			stats.Duplicates++
			continue
		}
		seen[fp] = struct{}{}

		id, okID := parseID(row[colOrderID])
		storeID, okStore := parseID(row[colOrderStoreID])
		channelID, okChannel := parseID(row[colOrderChannelID])
		if !okID || !okStore || !okChannel {
			stats.BadValues++
			continue
		}
		if _, dup := seenID[id]; dup {
			stats.Duplicates++
			continue
		}
		seenID[id] = struct{}{}

		o := Order{
			ID:        id,
			StoreID:   storeID,
			ChannelID: channelID,
			Status:    CleanCell(row[colOrderStatus]),
		}

		numeric := []struct {
			col string
			dst *float64
		}{
			{colOrderAmount, &o.Amount},
			{colOrderDlvFee, &o.DeliveryFee},
			{colOrderDlvCost, &o.DeliveryCost},
			{colMetricCollected, &o.MetricCollectedTime},
			{colMetricPaused, &o.MetricPausedTime},
			{colMetricProduction, &o.MetricProductionTime},
			{colMetricWalking, &o.MetricWalkingTime},
			{colMetricExpedition, &o.MetricExpeditionSpeed},
			{colMetricTransit, &o.MetricTransitTime},
			{colMetricCycle, &o.MetricCycleTime},
		}
		bad := false
		for _, n := range numeric {
			raw, present := row.Get(n.col)
			v, ok := floatOrDefault(raw, present, 0.0)
			if !ok {
				bad = true
				break
			}
			*n.dst = v
		}
		if bad {
			stats.BadValues++
			continue
		}

		if o.Amount <= 0 {
			stats.NonPositiveAmounts++
			continue
		}

		o.MomentCreated = parseTimestamp(row[colMomentCreated])
		o.MomentAccepted = parseTimestamp(row[colMomentAccepted])
		o.MomentReady = parseTimestamp(row[colMomentReady])
		o.MomentCollected = parseTimestamp(row[colMomentCollected])
		o.MomentInExpedition = parseTimestamp(row[colMomentInExpedition])
		o.MomentDelivering = parseTimestamp(row[colMomentDelivering])
		o.MomentDelivered = parseTimestamp(row[colMomentDelivered])
		o.MomentFinished = parseTimestamp(row[colMomentFinished])

		// Step 1: does a duration exist at all?
		if o.MomentDelivering.Valid && o.MomentDelivered.Valid {
			minutes := o.MomentDelivered.Time.Sub(o.MomentDelivering.Time).Minutes()
			// Step 2: an existing duration must be plausible.
			if minutes < 0 || minutes > MaxDeliveryMinutes {
				stats.InvalidDurations++
				continue
			}
			o.DeliveryTimeMinutes = pgtype.Float8{Float64: minutes, Valid: true}
		}

		out = append(out, o)
	}
	return out, stats, nil
}
