package domain

import "github.com/shopspring/decimal"

// Region is a deliverable wilaya with its flat delivery fee. The table is
// read-only within the engine; it is fetched or seeded by adapters.
type Region struct {
	ID            int64
	Name          string
	DeliveryPrice decimal.Decimal
}

// FeeFor resolves the delivery fee for a wilaya by exact, case-sensitive
// name match. A blank name or an unknown wilaya resolves to zero, which
// the storefront displays as "free/undetermined" rather than an error.
func FeeFor(name string, regions []Region) decimal.Decimal {
	if name == "" {
		return decimal.Zero
	}
	for _, region := range regions {
		if region.Name == name {
			return region.DeliveryPrice
		}
	}
	return decimal.Zero
}
