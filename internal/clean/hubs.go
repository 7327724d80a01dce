package clean

import (
	"strings"

	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/table"
)

const (
	colHubID        = "hub_id"
	colHubName      = "hub_name"
	colHubCity      = "hub_city"
	colHubState     = "hub_state"
	colHubLatitude  = "hub_latitude"
	colHubLongitude = "hub_longitude"
)

var hubColumns = []string{
	colHubID, colHubName, colHubCity, colHubState, colHubLatitude, colHubLongitude,
}

// City names decoded from the latin1 export carry mangled bytes where the
// original accented letter was lost: the Unicode replacement character,
// or the "Ã£"-style mojibake pair from a UTF-8/latin1 double decode. Both
// normalize to the plain fallback letter ("S�o Paulo" → "Sao Paulo").
var cityArtifacts = strings.NewReplacer(
	"�", "a",
	"Ã£", "a",
	"Ã¡", "a",
	"Ã¢", "a",
)

// CleanHubs cleans the hubs dimension, repairing mis-decoded city names.
func CleanHubs(t table.Table) ([]Hub, Stats, error) {
	stats := Stats{Entity: "hubs", Raw: len(t.Rows)}
	if err := requireColumns(t, stats.Entity, hubColumns...); err != nil {
		return nil, stats, err
	}

	seen := make(map[string]struct{}, len(t.Rows))
	seenID := make(map[int64]struct{}, len(t.Rows))
	out := make([]Hub, 0, len(t.Rows))

	for _, row := range t.Rows {
		if missingAny(row, hubColumns) {
			stats.MissingRequired++
			continue
		}
		fp := fingerprint(row, t.Columns)
		if _, dup := seen[fp]; dup {
			stats.Duplicates++
			continue
		}
		seen[fp] = struct{}{}

		id, ok := parseID(row[colHubID])
		if !ok {
			stats.BadValues++
			continue
		}
		if _, dup := seenID[id]; dup {
			stats.Duplicates++
			continue
		}
		seenID[id] = struct{}{}

		lat, okLat := parseFloat(row[colHubLatitude])
		lon, okLon := parseFloat(row[colHubLongitude])
		if !okLat || !okLon {
			stats.BadValues++
			continue
		}

		city := CleanCell(row[colHubCity])
		if repaired := cityArtifacts.Replace(city); repaired != city {
			city = repaired
			stats.Repairs++
		}

		out = append(out, Hub{
			ID:        id,
			Name:      CleanCell(row[colHubName]),
			City:      city,
			State:     CleanCell(row[colHubState]),
			Latitude:  lat,
			Longitude: lon,
		})
	}
	return out, stats, nil
}
