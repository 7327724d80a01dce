package clean

import (
	"strings"

	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/table"
)

// requireColumns is the structural gate: a missing required column is a
// SchemaError, not a row-level issue.
func requireColumns(t table.Table, entity string, cols ...string) error {
	if missing := t.MissingColumns(cols...); len(missing) > 0 {
		return &SchemaError{Entity: entity, Missing: missing}
	}
	return nil
}

// missingAny reports whether any of the listed fields is absent or empty
// in the row. Used by the null-filter step; fields with an empty-means-
// something semantic (delivery driver_id) must not be listed.
func missingAny(row table.Row, cols []string) bool {
	for _, c := range cols {
		if row.Empty(c) {
			return true
		}
	}
	return false
}

// fingerprint builds an exact-duplicate key over all declared columns.
// Absent cells are encoded distinctly from empty ones so two rows only
// collide when they are byte-identical across the full column set.
func fingerprint(row table.Row, columns []string) string {
	var b strings.Builder
	for _, c := range columns {
		v, ok := row[c]
		if ok {
			b.WriteByte('v')
			b.WriteString(v)
		} else {
			b.WriteByte('x')
		}
		b.WriteByte('\x1f')
	}
	return b.String()
}
