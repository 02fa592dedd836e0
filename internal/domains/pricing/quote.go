package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Quote captures the pricing inputs of a single cart or order line.
type Quote struct {
	UnitPrice  decimal.Decimal
	MetrePrice decimal.Decimal
	Length     decimal.Decimal
	Quantity   int
}

// Total computes the line total. Metre pricing always wins over flat
// pricing: a product offered by the metre is never sold at its nominal unit
// price, even when a non-zero unit price is also set. A metre-priced line
// without a usable length totals zero; callers must treat that as "not yet
// purchasable", not as a free item.
func (q Quote) Total() decimal.Decimal {
	qty := decimal.NewFromInt(int64(q.Quantity))
	if q.MetrePrice.IsPositive() {
		if q.Length.IsPositive() {
			return q.MetrePrice.Mul(q.Length).Mul(qty)
		}
		return decimal.Zero
	}
	return q.UnitPrice.Mul(qty)
}

// Purchasable reports whether the line can be priced and submitted. Only a
// metre-priced line missing a positive length is blocked.
func (q Quote) Purchasable() bool {
	if q.MetrePrice.IsPositive() {
		return q.Length.IsPositive()
	}
	return true
}

// Label renders the human-readable calculation behind Total, mirroring the
// branch taken: "120.00/m × 3m × 2" for metre pricing, "500.00 × 2" for
// flat pricing. Display and audit only, never an input to computation.
func (q Quote) Label() string {
	if q.MetrePrice.IsPositive() && q.Length.IsPositive() {
		return fmt.Sprintf("%s/m × %sm × %d", q.MetrePrice.StringFixed(2), q.Length.String(), q.Quantity)
	}
	return fmt.Sprintf("%s × %d", q.UnitPrice.StringFixed(2), q.Quantity)
}
