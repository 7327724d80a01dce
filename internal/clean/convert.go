package clean

// convert.go provides type conversion from raw CSV cells to record fields.
//
// These helpers deal with the realities of the raw export:
//   - integer keys serialized as floats ("1234.0") by earlier tooling
//   - mixed timestamp layouts in the order moment columns
//   - empty cells standing in for either "zero" or "not applicable",
//     with the policy decided per field by the callers
//
// Parsers report failure instead of guessing; the cleaners decide whether
// a failure drops the row or substitutes a documented default.

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/jackc/pgx/v5/pgtype"
)

// Timestamp layouts observed in the raw moment columns. The first group
// is the common export format, the rest cover re-exports of the dataset.
var timestampLayouts = []string{
	"1/2/2006 3:04:05 PM",
	"1/2/2006 15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"1/2/2006 15:04",
	"2006-01-02",
}

// CleanCell trims whitespace and strips a UTF-8 BOM from a raw cell.
func CleanCell(s string) string {
	s = strings.TrimPrefix(s, "\ufeff")
	return strings.TrimSpace(s)
}

// parseID parses an identifier cell into an int64 key. Keys serialized in
// float form ("5.0") are accepted as long as they are integral, so a
// textual "5" and an integer 5 always land on the same key.
func parseID(s string) (int64, bool) {
	s = CleanCell(s)
	if s == "" {
		return 0, false
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	if f != math.Trunc(f) {
		return 0, false
	}
	return int64(f), true
}

// parseFloat parses a numeric cell.
func parseFloat(s string) (float64, bool) {
	s = CleanCell(s)
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// parseTimestamp parses a moment cell against the known layouts. An empty
// or unparsable cell yields an invalid (null) timestamp; moment columns
// are never a reason to drop a row.
func parseTimestamp(s string) pgtype.Timestamp {
	s = CleanCell(s)
	if s == "" {
		return pgtype.Timestamp{}
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return pgtype.Timestamp{Time: t, Valid: true}
		}
	}
	return pgtype.Timestamp{}
}

// floatOrDefault applies the empty-cell default policy: a present,
// non-empty cell must parse (ok=false otherwise), while an empty or
// absent cell yields the documented default.
func floatOrDefault(raw string, present bool, def float64) (float64, bool) {
	if !present || CleanCell(raw) == "" {
		return def, true
	}
	f, ok := parseFloat(raw)
	if !ok {
		return 0, false
	}
	return f, true
}

// normalizeUpper trims and uppercases an enum-ish text cell.
func normalizeUpper(s string) string {
	return strings.ToUpper(CleanCell(s))
}
