// Package store persists cleaned entities to their destinations: latin1
// CSV files mirroring the raw layout, and optionally a Postgres schema
// with the primary and foreign keys declared. Each entity is written
// atomically; idempotent re-runs skip rows whose primary key already
// exists at the destination.
package store

import (
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5/pgtype"
)

// WriteError reports an unreachable destination or a failed write for one
// entity. Entities already written stay committed; there is no cross-
// entity rollback.
type WriteError struct {
	Entity string
	Dest   string
	Err    error
}

func (e *WriteError) Error() string {
	return fmt.Sprintf("write %s to %s: %v", e.Entity, e.Dest, e.Err)
}

func (e *WriteError) Unwrap() error { return e.Err }

const timestampLayout = "2006-01-02 15:04:05"

func formatInt(v int64) string { return strconv.FormatInt(v, 10) }

func formatFloat(v float64) string { return strconv.FormatFloat(v, 'f', -1, 64) }

func formatTimestamp(t pgtype.Timestamp) string {
	if !t.Valid {
		return ""
	}
	return t.Time.Format(timestampLayout)
}

func formatOptFloat(f pgtype.Float8) string {
	if !f.Valid {
		return ""
	}
	return formatFloat(f.Float64)
}

func formatBool(b bool) string { return strconv.FormatBool(b) }
