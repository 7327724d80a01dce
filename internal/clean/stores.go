package clean

import (
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/table"
)

const (
	colStoreID        = "store_id"
	colStoreHubID     = "hub_id"
	colStoreName      = "store_name"
	colStoreSegment   = "store_segment"
	colStorePlanPrice = "store_plan_price"
	colStoreLatitude  = "store_latitude"
	colStoreLongitude = "store_longitude"
)

var storeColumns = []string{
	colStoreID, colStoreHubID, colStoreName, colStoreSegment,
	colStorePlanPrice, colStoreLatitude, colStoreLongitude,
}

// Null-filter set. plan_price and coordinates are structurally required
// columns but an empty cell is repaired (sentinel price, null coords)
// rather than dropping the store.
var storeRequired = []string{colStoreID, colStoreHubID, colStoreName, colStoreSegment}

// CleanStores cleans the stores dimension. An empty plan price becomes
// the -1.0 sentinel; empty coordinates stay null.
func CleanStores(t table.Table) ([]Store, Stats, error) {
	stats := Stats{Entity: "stores", Raw: len(t.Rows)}
	if err := requireColumns(t, stats.Entity, storeColumns...); err != nil {
		return nil, stats, err
	}

	seen := make(map[string]struct{}, len(t.Rows))
	seenID := make(map[int64]struct{}, len(t.Rows))
	out := make([]Store, 0, len(t.Rows))

	for _, row := range t.Rows {
		if missingAny(row, storeRequired) {
			stats.MissingRequired++
			continue
		}
		fp := fingerprint(row, t.Columns)
		if _, dup := seen[fp]; dup {
			stats.Duplicates++
			continue
		}
		seen[fp] = struct{}{}

		id, okID := parseID(row[colStoreID])
		hubID, okHub := parseID(row[colStoreHubID])
		if !okID || !okHub {
			stats.BadValues++
			continue
		}
		if _, dup := seenID[id]; dup {
			stats.Duplicates++
			continue
		}
		seenID[id] = struct{}{}

		planPrice := SentinelPlanPrice
		if !row.Empty(colStorePlanPrice) {
			p, ok := parseFloat(row[colStorePlanPrice])
			if !ok {
				stats.BadValues++
				continue
			}
			planPrice = p
		} else {
			stats.Repairs++
		}

		lat, okLat := optionalFloat(row, colStoreLatitude)
		lon, okLon := optionalFloat(row, colStoreLongitude)
		if !okLat || !okLon {
			stats.BadValues++
			continue
		}

		out = append(out, Store{
			ID:        id,
			HubID:     hubID,
			Name:      CleanCell(row[colStoreName]),
			Segment:   CleanCell(row[colStoreSegment]),
			PlanPrice: planPrice,
			Latitude:  lat,
			Longitude: lon,
		})
	}
	return out, stats, nil
}

// optionalFloat parses a nullable numeric cell: empty or absent is a
// valid null, a non-empty cell must parse.
func optionalFloat(row table.Row, col string) (pgtype.Float8, bool) {
	if row.Empty(col) {
		return pgtype.Float8{}, true
	}
	f, ok := parseFloat(row[col])
	if !ok {
		return pgtype.Float8{}, false
	}
	return pgtype.Float8{Float64: f, Valid: true}, true
}
