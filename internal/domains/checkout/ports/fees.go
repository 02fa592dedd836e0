package ports

import (
	"context"

	"github.com/shopspring/decimal"
)

// FeeResolver resolves the flat delivery fee for a wilaya. The delivery
// context provides the production implementation.
type FeeResolver interface {
	FeeFor(ctx context.Context, wilaya string) (decimal.Decimal, error)
}
