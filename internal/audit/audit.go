// Package audit computes the end-to-end retention record for a cleaning
// run and renders it as a text report. It is a pure observer: it reads
// the raw counts, cleaner tallies, and integrity removals, and never
// modifies data or fails the run.
package audit

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/clean"
	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/integrity"
)

// EntityOrder fixes the reporting order across runs.
var EntityOrder = []string{
	"channels", "drivers", "hubs", "stores", "orders", "deliveries", "payments",
}

// Record is the retention tuple for one entity.
type Record struct {
	Entity    string
	Raw       int
	Cleaned   int
	Removed   int
	Retention float64 // percentage, 0 when skipped
	Skipped   bool    // true when the entity had no raw rows

	CleanRemoved     int // rows dropped by the per-entity cleaner
	IntegrityRemoved int // rows cascade-deleted by the integrity pass
	Repairs          int
	FeeExceedsAmount int
}

// Report is the structured audit trail of one pipeline run.
type Report struct {
	RunID       string
	GeneratedAt time.Time
	Records     []Record
	Integrity   []integrity.RelationshipStat
	Summary     string
}

// Build assembles the report from the stage outputs. Cleaned counts are
// taken after integrity enforcement, so retention reflects the true
// end-to-end survival rate.
func Build(runID string, stats map[string]clean.Stats, cleaned map[string]int, integ integrity.Result) *Report {
	rep := &Report{
		RunID:       runID,
		GeneratedAt: time.Now(),
		Integrity:   integ.Relationships,
	}

	var totalRaw, totalCleaned int
	for _, entity := range EntityOrder {
		st := stats[entity]
		rec := Record{
			Entity:           entity,
			Raw:              st.Raw,
			Cleaned:          cleaned[entity],
			CleanRemoved:     st.Removed(),
			IntegrityRemoved: integ.RemovedFor(entity),
			Repairs:          st.Repairs,
			FeeExceedsAmount: st.FeeExceedsAmount,
		}
		rec.Removed = rec.Raw - rec.Cleaned
		if rec.Raw == 0 {
			rec.Skipped = true
		} else {
			rec.Retention = float64(rec.Cleaned) / float64(rec.Raw) * 100
		}
		totalRaw += rec.Raw
		totalCleaned += rec.Cleaned
		rep.Records = append(rep.Records, rec)
	}

	if totalRaw > 0 {
		rep.Summary = fmt.Sprintf("retained %d of %d rows (%.2f%%) across %d entities",
			totalCleaned, totalRaw, float64(totalCleaned)/float64(totalRaw)*100, len(rep.Records))
	} else {
		rep.Summary = "no raw rows were loaded; all entities skipped"
	}
	return rep
}

// Render produces the text cleaning report.
func (r *Report) Render() string {
	var b strings.Builder
	line := strings.Repeat("=", 70)

	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, "Data Cleaning Report")
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "Run ID: %s\n", r.RunID)
	fmt.Fprintf(&b, "Generated on: %s\n\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))

	for _, rec := range r.Records {
		fmt.Fprintln(&b, strings.ToUpper(rec.Entity))
		fmt.Fprintln(&b, strings.Repeat("-", 40))
		if rec.Skipped {
			fmt.Fprintln(&b, "   skipped: no raw rows")
			fmt.Fprintln(&b)
			continue
		}
		fmt.Fprintf(&b, "   initial_rows: %d\n", rec.Raw)
		fmt.Fprintf(&b, "   final_rows: %d\n", rec.Cleaned)
		fmt.Fprintf(&b, "   removed_by_cleaning: %d\n", rec.CleanRemoved)
		fmt.Fprintf(&b, "   removed_by_integrity: %d\n", rec.IntegrityRemoved)
		if rec.Repairs > 0 {
			fmt.Fprintf(&b, "   values_repaired: %d\n", rec.Repairs)
		}
		if rec.FeeExceedsAmount > 0 {
			fmt.Fprintf(&b, "   fee_exceeds_amount (monitoring): %d\n", rec.FeeExceedsAmount)
		}
		fmt.Fprintf(&b, "   retention: %.2f%%\n", rec.Retention)
		fmt.Fprintln(&b)
	}

	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, "Referential Integrity:")
	fmt.Fprintln(&b, line)
	for _, s := range r.Integrity {
		fmt.Fprintf(&b, "   %-22s checked: %7d  removed: %d\n", s.Relationship, s.Checked, s.Removed)
	}
	fmt.Fprintln(&b)

	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, "Cleaning Summary:")
	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, r.Summary)

	return b.String()
}

// SummaryTable renders the compact per-entity console table printed at
// the end of a successful run.
func (r *Report) SummaryTable() string {
	var b strings.Builder
	line := strings.Repeat("=", 70)
	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, "CLEANING SUMMARY")
	fmt.Fprintln(&b, line)
	for _, rec := range r.Records {
		if rec.Skipped {
			fmt.Fprintf(&b, "%-12s | skipped\n", rec.Entity)
			continue
		}
		fmt.Fprintf(&b, "%-12s | Initial: %7d | Final: %7d | Removed: %5d | %6.2f%%\n",
			rec.Entity, rec.Raw, rec.Cleaned, rec.Removed, rec.Retention)
	}
	fmt.Fprintln(&b, line)
	return b.String()
}

// WriteFile writes the rendered report under dir. The caller only logs a
// failure; a report write never aborts the pipeline.
func (r *Report) WriteFile(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("creating report directory %s: %w", dir, err)
	}
	path := filepath.Join(dir, "cleaning_report.txt")
	if err := os.WriteFile(path, []byte(r.Render()), 0o644); err != nil {
		return "", fmt.Errorf("writing report %s: %w", path, err)
	}
	return path, nil
}
