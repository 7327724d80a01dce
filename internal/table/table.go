// Package table holds the raw, untyped representation of a loaded source
// table. Every cell is a string; no type inference happens at this stage.
package table

import "strings"

// Row maps a column name to its raw cell value. A column that was not
// present in the source record has no entry at all, which is distinct
// from an entry holding the empty string. Several cleaning rules depend
// on that distinction (an empty driver_id is a valid business state, a
// missing one is not).
type Row map[string]string

// Get returns the cell value and whether the column was present.
func (r Row) Get(col string) (string, bool) {
	v, ok := r[col]
	return v, ok
}

// Empty reports whether the column is absent or holds only whitespace.
func (r Row) Empty(col string) bool {
	v, ok := r[col]
	return !ok || strings.TrimSpace(v) == ""
}

// Table is one raw source table: an ordered column set and string rows.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// HasColumn reports whether the table declares the given column.
func (t Table) HasColumn(col string) bool {
	for _, c := range t.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// MissingColumns returns the subset of cols the table does not declare,
// in the order given.
func (t Table) MissingColumns(cols ...string) []string {
	var missing []string
	for _, c := range cols {
		if !t.HasColumn(c) {
			missing = append(missing, c)
		}
	}
	return missing
}
