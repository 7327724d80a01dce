package clean

import "github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/table"

const (
	colDeliveryID       = "delivery_id"
	colDeliveryOrderID  = "delivery_order_id"
	colDeliveryDriverID = "driver_id"
	colDeliveryDistance = "delivery_distance_meters"
	colDeliveryStatus   = "delivery_status"
)

var deliveryColumns = []string{
	colDeliveryID, colDeliveryOrderID, colDeliveryDriverID,
	colDeliveryDistance, colDeliveryStatus,
}

// driver_id is excluded on purpose: an empty driver_id is a pickup
// without an assigned driver, a valid business state, never a null-filter
// drop.
var deliveryRequired = []string{colDeliveryID, colDeliveryOrderID, colDeliveryStatus}

// CleanDeliveries cleans the deliveries fact table. Empty driver_id cells
// become the -1 sentinel with HasDriverData=false; empty distances become
// zero.
func CleanDeliveries(t table.Table) ([]Delivery, Stats, error) {
	stats := Stats{Entity: "deliveries", Raw: len(t.Rows)}
	if err := requireColumns(t, stats.Entity, deliveryColumns...); err != nil {
		return nil, stats, err
	}

	seen := make(map[string]struct{}, len(t.Rows))
	seenID := make(map[int64]struct{}, len(t.Rows))
	out := make([]Delivery, 0, len(t.Rows))

	for _, row := range t.Rows {
		if missingAny(row, deliveryRequired) {
			stats.MissingRequired++
			continue
		}
		fp := fingerprint(row, t.Columns)
		if _, dup := seen[fp]; dup {
			stats.Duplicates++
			continue
		}
		seen[fp] = struct{}{}

		id, okID := parseID(row[colDeliveryID])
		orderID, okOrder := parseID(row[colDeliveryOrderID])
		if !okID || !okOrder {
			stats.BadValues++
			continue
		}
		if _, dup := seenID[id]; dup {
			stats.Duplicates++
			continue
		}
		seenID[id] = struct{}{}

		driverID := SentinelDriverID
		hasDriver := false
		if !row.Empty(colDeliveryDriverID) {
			d, ok := parseID(row[colDeliveryDriverID])
			if !ok {
				stats.BadValues++
				continue
			}
			driverID = d
			hasDriver = d != SentinelDriverID
		} else {
			stats.Repairs++
		}

		raw, present := row.Get(colDeliveryDistance)
		distance, ok := floatOrDefault(raw, present, 0.0)
		if !ok {
			stats.BadValues++
			continue
		}

		out = append(out, Delivery{
			ID:             id,
			OrderID:        orderID,
			DriverID:       driverID,
			HasDriverData:  hasDriver,
			DistanceMeters: distance,
			Status:         CleanCell(row[colDeliveryStatus]),
		})
	}
	return out, stats, nil
}
