package clean

import "github.com/ivan-zamurenko/Delivery-Food-Center-in-Brazil/internal/table"

const (
	colPaymentID      = "payment_id"
	colPaymentOrderID = "payment_order_id"
	colPaymentAmount  = "payment_amount"
	colPaymentFee     = "payment_fee"
	colPaymentMethod  = "payment_method"
	colPaymentStatus  = "payment_status"
)

var paymentColumns = []string{
	colPaymentID, colPaymentOrderID, colPaymentAmount,
	colPaymentFee, colPaymentMethod, colPaymentStatus,
}

var paymentRequired = []string{colPaymentID, colPaymentOrderID, colPaymentMethod, colPaymentStatus}

// CleanPayments cleans the payments fact table. Method and status are
// normalized to uppercase; empty amounts and fees default to zero, and a
// zero (or negative) amount is then dropped as an invalid transaction.
// Fee-exceeds-amount is counted but never filtered.
func CleanPayments(t table.Table) ([]Payment, Stats, error) {
	stats := Stats{Entity: "payments", Raw: len(t.Rows)}
	if err := requireColumns(t, stats.Entity, paymentColumns...); err != nil {
		return nil, stats, err
	}

	seen := make(map[string]struct{}, len(t.Rows))
	seenID := make(map[int64]struct{}, len(t.Rows))
	out := make([]Payment, 0, len(t.Rows))

	for _, row := range t.Rows {
		if missingAny(row, paymentRequired) {
			stats.MissingRequired++
			continue
		}
		fp := fingerprint(row, t.Columns)
		if _, dup := seen[fp]; dup {
			stats.Duplicates++
			continue
		}
		seen[fp] = struct{}{}

		id, okID := parseID(row[colPaymentID])
		orderID, okOrder := parseID(row[colPaymentOrderID])
		if !okID || !okOrder {
			stats.BadValues++
			continue
		}
		if _, dup := seenID[id]; dup {
			stats.Duplicates++
			continue
		}
		seenID[id] = struct{}{}

		rawAmount, presentAmount := row.Get(colPaymentAmount)
		amount, okAmount := floatOrDefault(rawAmount, presentAmount, 0.0)
		rawFee, presentFee := row.Get(colPaymentFee)
		fee, okFee := floatOrDefault(rawFee, presentFee, 0.0)
		if !okAmount || !okFee {
			stats.BadValues++
			continue
		}

		if amount <= 0 {
			stats.NonPositiveAmounts++
			continue
		}
		if fee > amount {
			stats.FeeExceedsAmount++
		}

		out = append(out, Payment{
			ID:      id,
			OrderID: orderID,
			Amount:  amount,
			Fee:     fee,
			Method:  normalizeUpper(row[colPaymentMethod]),
			Status:  normalizeUpper(row[colPaymentStatus]),
		})
	}
	return out, stats, nil
}
