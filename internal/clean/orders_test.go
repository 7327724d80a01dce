package clean

import (
	"errors"
	"testing"
)

// orderRow builds a full-width raw order row with sensible defaults so
// individual tests only override what they exercise.
func orderRow(overrides map[string]string) []string {
	defaults := map[string]string{
		colOrderID:        "1",
		colOrderStoreID:   "10",
		colOrderChannelID: "20",
		colOrderStatus:    "FINISHED",
		colOrderAmount:    "50.0",
	}
	for k, v := range overrides {
		defaults[k] = v
	}
	row := make([]string, len(orderColumns))
	for i, col := range orderColumns {
		row[i] = defaults[col]
	}
	return row
}

func TestCleanOrdersRetainsUndeliveredOrders(t *testing.T) {
	// The order is mid-delivery: delivering moment set, delivered moment
	// empty. No duration can be computed, so the bound must not apply.
	raw := makeTable("orders", orderColumns,
		orderRow(map[string]string{
			colOrderID:          "1",
			colMomentDelivering: "4/23/2021 12:00:00 PM",
		}),
	)

	out, stats, err := CleanOrders(raw)
	if err != nil {
		t.Fatalf("CleanOrders error: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected undelivered order to be retained, got %d rows", len(out))
	}
	if out[0].DeliveryTimeMinutes.Valid {
		t.Error("expected absent delivery time for undelivered order")
	}
	if stats.InvalidDurations != 0 {
		t.Errorf("expected no invalid durations, got %d", stats.InvalidDurations)
	}
}

func TestCleanOrdersDurationBounds(t *testing.T) {
	tests := []struct {
		name        string
		delivering  string
		delivered   string
		wantKept    bool
		wantMinutes float64
	}{
		{
			name:        "valid duration",
			delivering:  "4/23/2021 12:00:00 PM",
			delivered:   "4/23/2021 12:45:00 PM",
			wantKept:    true,
			wantMinutes: 45,
		},
		{
			name:        "exactly at bound",
			delivering:  "4/23/2021 12:00:00 PM",
			delivered:   "4/23/2021 3:00:00 PM",
			wantKept:    true,
			wantMinutes: 180,
		},
		{
			name:       "over bound",
			delivering: "4/23/2021 12:00:00 PM",
			delivered:  "4/23/2021 4:00:00 PM",
			wantKept:   false,
		},
		{
			name:       "negative duration",
			delivering: "4/23/2021 12:00:00 PM",
			delivered:  "4/23/2021 11:00:00 AM",
			wantKept:   false,
		},
		{
			name:      "only delivered moment",
			delivered: "4/23/2021 12:45:00 PM",
			wantKept:  true,
		},
		{
			name:     "neither moment",
			wantKept: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raw := makeTable("orders", orderColumns,
				orderRow(map[string]string{
					colMomentDelivering: tt.delivering,
					colMomentDelivered:  tt.delivered,
				}),
			)
			out, stats, err := CleanOrders(raw)
			if err != nil {
				t.Fatalf("CleanOrders error: %v", err)
			}
			if kept := len(out) == 1; kept != tt.wantKept {
				t.Fatalf("kept = %v, want %v", kept, tt.wantKept)
			}
			if !tt.wantKept {
				if stats.InvalidDurations != 1 {
					t.Errorf("InvalidDurations = %d, want 1", stats.InvalidDurations)
				}
				return
			}
			if tt.wantMinutes != 0 {
				if !out[0].DeliveryTimeMinutes.Valid {
					t.Fatal("expected a derived delivery time")
				}
				if got := out[0].DeliveryTimeMinutes.Float64; got != tt.wantMinutes {
					t.Errorf("delivery time = %g, want %g", got, tt.wantMinutes)
				}
			} else if out[0].DeliveryTimeMinutes.Valid {
				t.Error("expected no derived delivery time")
			}
		})
	}
}

func TestCleanOrdersNullFilter(t *testing.T) {
	raw := makeTable("orders", orderColumns,
		orderRow(map[string]string{colOrderID: "1"}),
		orderRow(map[string]string{colOrderID: "2", colOrderStoreID: ""}),
		orderRow(map[string]string{colOrderID: "3", colOrderStatus: ""}),
	)

	out, stats, err := CleanOrders(raw)
	if err != nil {
		t.Fatalf("CleanOrders error: %v", err)
	}
	if len(out) != 1 || out[0].ID != 1 {
		t.Fatalf("expected only order 1 retained, got %+v", out)
	}
	if stats.MissingRequired != 2 {
		t.Errorf("MissingRequired = %d, want 2", stats.MissingRequired)
	}
}

func TestCleanOrdersDeduplicates(t *testing.T) {
	raw := makeTable("orders", orderColumns,
		orderRow(map[string]string{colOrderID: "1"}),
		orderRow(map[string]string{colOrderID: "1"}),                          // exact duplicate
		orderRow(map[string]string{colOrderID: "1", colOrderAmount: "99.0"}),  // same key, new values
		orderRow(map[string]string{colOrderID: "2"}),
	)

	out, stats, err := CleanOrders(raw)
	if err != nil {
		t.Fatalf("CleanOrders error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 orders, got %d", len(out))
	}
	if out[0].Amount != 50.0 {
		t.Errorf("keep-first violated: amount = %g, want 50", out[0].Amount)
	}
	if stats.Duplicates != 2 {
		t.Errorf("Duplicates = %d, want 2", stats.Duplicates)
	}
}

func TestCleanOrdersNonPositiveAmount(t *testing.T) {
	raw := makeTable("orders", orderColumns,
		orderRow(map[string]string{colOrderID: "1", colOrderAmount: "0"}),
		orderRow(map[string]string{colOrderID: "2", colOrderAmount: "-5"}),
		orderRow(map[string]string{colOrderID: "3", colOrderAmount: ""}), // defaults to 0, then dropped
		orderRow(map[string]string{colOrderID: "4"}),
	)

	out, stats, err := CleanOrders(raw)
	if err != nil {
		t.Fatalf("CleanOrders error: %v", err)
	}
	if len(out) != 1 || out[0].ID != 4 {
		t.Fatalf("expected only order 4 retained, got %+v", out)
	}
	if stats.NonPositiveAmounts != 3 {
		t.Errorf("NonPositiveAmounts = %d, want 3", stats.NonPositiveAmounts)
	}
}

func TestCleanOrdersMetricDefaults(t *testing.T) {
	raw := makeTable("orders", orderColumns,
		orderRow(map[string]string{
			colMetricCycle:   "",
			colMetricTransit: "12.5",
		}),
	)

	out, _, err := CleanOrders(raw)
	if err != nil {
		t.Fatalf("CleanOrders error: %v", err)
	}
	if out[0].MetricCycleTime != 0 {
		t.Errorf("empty metric = %g, want 0", out[0].MetricCycleTime)
	}
	if out[0].MetricTransitTime != 12.5 {
		t.Errorf("transit metric = %g, want 12.5", out[0].MetricTransitTime)
	}
}

func TestCleanOrdersMissingColumnIsSchemaError(t *testing.T) {
	columns := orderColumns[:len(orderColumns)-1] // drop the cycle metric column
	raw := makeTable("orders", columns, orderRow(nil)[:len(columns)])

	_, _, err := CleanOrders(raw)
	var schemaErr *SchemaError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("expected SchemaError, got %v", err)
	}
	if schemaErr.Entity != "orders" {
		t.Errorf("entity = %q, want orders", schemaErr.Entity)
	}
}
