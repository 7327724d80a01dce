package clean

import "github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/table"

const (
	colDriverID    = "driver_id"
	colDriverModal = "driver_modal"
	colDriverType  = "driver_type"
)

var driverColumns = []string{colDriverID, colDriverModal, colDriverType}

// UnknownDriver is the sentinel parent row seeded into every cleaned
// drivers table. Deliveries without an assigned driver reference it, so
// the foreign key from deliveries always resolves.
var UnknownDriver = Driver{ID: SentinelDriverID, Modal: "Unknown", Type: "Unknown"}

// CleanDrivers cleans the drivers dimension and seeds the sentinel row.
func CleanDrivers(t table.Table) ([]Driver, Stats, error) {
	stats := Stats{Entity: "drivers", Raw: len(t.Rows)}
	if err := requireColumns(t, stats.Entity, driverColumns...); err != nil {
		return nil, stats, err
	}

	seen := make(map[string]struct{}, len(t.Rows))
	seenID := map[int64]struct{}{SentinelDriverID: {}}
	out := make([]Driver, 0, len(t.Rows)+1)
	out = append(out, UnknownDriver)

	for _, row := range t.Rows {
		if missingAny(row, driverColumns) {
			stats.MissingRequired++
			continue
		}
		fp := fingerprint(row, t.Columns)
		if _, dup := seen[fp]; dup {
			stats.Duplicates++
			continue
		}
		seen[fp] = struct{}{}

		id, ok := parseID(row[colDriverID])
		if !ok {
			stats.BadValues++
			continue
		}
		if _, dup := seenID[id]; dup {
			stats.Duplicates++
			continue
		}
		seenID[id] = struct{}{}

		out = append(out, Driver{
			ID:    id,
			Modal: CleanCell(row[colDriverModal]),
			Type:  CleanCell(row[colDriverType]),
		})
	}
	return out, stats, nil
}
