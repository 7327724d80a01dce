package audit

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/clean"
	"github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/integrity"
)

func testReport() *Report {
	stats := map[string]clean.Stats{
		"channels": {Entity: "channels", Raw: 4, Duplicates: 1},
		"orders":   {Entity: "orders", Raw: 100, MissingRequired: 3, NonPositiveAmounts: 2},
		"payments": {Entity: "payments", Raw: 50, FeeExceedsAmount: 1},
		"hubs":     {Entity: "hubs", Raw: 2, Repairs: 1},
	}
	cleaned := map[string]int{
		"channels": 3,
		"hubs":     2,
		"orders":   90,
		"payments": 45,
	}
	integ := integrity.Result{Relationships: []integrity.RelationshipStat{
		{Relationship: "orders→stores", Checked: 95, Removed: 5},
		{Relationship: "payments→orders", Checked: 50, Removed: 5},
	}}
	return Build("run-42", stats, cleaned, integ)
}

func TestBuildRetentionMath(t *testing.T) {
	rep := testReport()

	byEntity := make(map[string]Record, len(rep.Records))
	for _, rec := range rep.Records {
		byEntity[rec.Entity] = rec
	}

	orders := byEntity["orders"]
	if orders.Removed != 10 {
		t.Errorf("orders.Removed = %d, want 10", orders.Removed)
	}
	if orders.CleanRemoved != 5 {
		t.Errorf("orders.CleanRemoved = %d, want 5", orders.CleanRemoved)
	}
	if orders.IntegrityRemoved != 5 {
		t.Errorf("orders.IntegrityRemoved = %d, want 5", orders.IntegrityRemoved)
	}
	if orders.Retention != 90 {
		t.Errorf("orders.Retention = %g, want 90", orders.Retention)
	}

	payments := byEntity["payments"]
	if payments.FeeExceedsAmount != 1 {
		t.Errorf("payments.FeeExceedsAmount = %d, want 1", payments.FeeExceedsAmount)
	}
}

func TestBuildSkipsEmptyEntities(t *testing.T) {
	rep := testReport()

	for _, rec := range rep.Records {
		switch rec.Entity {
		case "drivers", "stores", "deliveries":
			if !rec.Skipped {
				t.Errorf("%s: expected Skipped for entity with no raw rows", rec.Entity)
			}
			if rec.Retention != 0 {
				t.Errorf("%s: retention = %g, want 0 when skipped", rec.Entity, rec.Retention)
			}
		}
	}
}

func TestBuildKeepsEntityOrder(t *testing.T) {
	rep := testReport()

	if len(rep.Records) != len(EntityOrder) {
		t.Fatalf("got %d records, want %d", len(rep.Records), len(EntityOrder))
	}
	for i, rec := range rep.Records {
		if rec.Entity != EntityOrder[i] {
			t.Errorf("record %d = %s, want %s", i, rec.Entity, EntityOrder[i])
		}
	}
}

func TestRenderContent(t *testing.T) {
	out := testReport().Render()

	for _, want := range []string{
		"Data Cleaning Report",
		"Run ID: run-42",
		"ORDERS",
		"initial_rows: 100",
		"final_rows: 90",
		"skipped: no raw rows",
		"fee_exceeds_amount (monitoring): 1",
		"values_repaired: 1",
		"orders→stores",
		"Cleaning Summary:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q", want)
		}
	}
}

func TestWriteFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports")

	path, err := testReport().WriteFile(dir)
	if err != nil {
		t.Fatalf("WriteFile error: %v", err)
	}
	if filepath.Base(path) != "cleaning_report.txt" {
		t.Errorf("report file = %s, want cleaning_report.txt", path)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report back: %v", err)
	}
	if !strings.Contains(string(data), "Run ID: run-42") {
		t.Error("written report missing run ID")
	}
}
