package clean

import "testing"

func TestCleanPaymentsNormalizesMethodAndStatus(t *testing.T) {
	raw := makeTable("payments", paymentColumns,
		[]string{"1", "100", "59.9", "2.5", " online ", "paid"},
	)

	out, _, err := CleanPayments(raw)
	if err != nil {
		t.Fatalf("CleanPayments error: %v", err)
	}
	if out[0].Method != "ONLINE" {
		t.Errorf("method = %q, want ONLINE", out[0].Method)
	}
	if out[0].Status != "PAID" {
		t.Errorf("status = %q, want PAID", out[0].Status)
	}
}

func TestCleanPaymentsAmountRules(t *testing.T) {
	raw := makeTable("payments", paymentColumns,
		[]string{"1", "100", "59.9", "", "ONLINE", "PAID"},  // fee defaults to 0
		[]string{"2", "100", "0", "0", "ONLINE", "PAID"},    // zero amount dropped
		[]string{"3", "100", "-10", "0", "ONLINE", "PAID"},  // negative amount dropped
		[]string{"4", "100", "10", "15", "ONLINE", "PAID"},  // fee over amount: counted, kept
	)

	out, stats, err := CleanPayments(raw)
	if err != nil {
		t.Fatalf("CleanPayments error: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("expected 2 payments, got %d", len(out))
	}
	if out[0].Fee != 0 {
		t.Errorf("empty fee = %g, want 0", out[0].Fee)
	}
	if stats.NonPositiveAmounts != 2 {
		t.Errorf("NonPositiveAmounts = %d, want 2", stats.NonPositiveAmounts)
	}
	if stats.FeeExceedsAmount != 1 {
		t.Errorf("FeeExceedsAmount = %d, want 1", stats.FeeExceedsAmount)
	}
	if out[1].ID != 4 {
		t.Errorf("fee-over-amount payment must be retained, got %+v", out[1])
	}
}

func TestCleanPaymentsDeduplicates(t *testing.T) {
	raw := makeTable("payments", paymentColumns,
		[]string{"1", "100", "10", "1", "ONLINE", "PAID"},
		[]string{"1", "100", "10", "1", "ONLINE", "PAID"},
		[]string{"1", "200", "20", "2", "VOUCHER", "PAID"},
	)

	out, stats, err := CleanPayments(raw)
	if err != nil {
		t.Fatalf("CleanPayments error: %v", err)
	}
	if len(out) != 1 || out[0].OrderID != 100 {
		t.Fatalf("keep-first violated: %+v", out)
	}
	if stats.Duplicates != 2 {
		t.Errorf("Duplicates = %d, want 2", stats.Duplicates)
	}
}
