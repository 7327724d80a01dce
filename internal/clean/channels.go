package clean

import "github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/table"

const (
	colChannelID   = "channel_id"
	colChannelName = "channel_name"
	colChannelType = "channel_type"
)

var channelColumns = []string{colChannelID, colChannelName, colChannelType}

// CleanChannels cleans the channels dimension: null-filter, duplicate
// removal, key coercion. No field repairs beyond trimming.
func CleanChannels(t table.Table) ([]Channel, Stats, error) {
	stats := Stats{Entity: "channels", Raw: len(t.Rows)}
	if err := requireColumns(t, stats.Entity, channelColumns...); err != nil {
		return nil, stats, err
	}

	seen := make(map[string]struct{}, len(t.Rows))
	seenID := make(map[int64]struct{}, len(t.Rows))
	out := make([]Channel, 0, len(t.Rows))

	for _, row := range t.Rows {
		if missingAny(row, channelColumns) {
			stats.MissingRequired++
			continue
		}
		fp := fingerprint(row, t.Columns)
		if _, dup := seen[fp]; dup {
			stats.Duplicates++
			continue
		}
		seen[fp] = struct{}{}

		id, ok := parseID(row[colChannelID])
		if !ok {
			stats.BadValues++
			continue
		}
		if _, dup := seenID[id]; dup {
			stats.Duplicates++
			continue
		}
		seenID[id] = struct{}{}

		out = append(out, Channel{
			ID:   id,
			Name: CleanCell(row[colChannelName]),
			Type: CleanCell(row[colChannelType]),
		})
	}
	return out, stats, nil
}
