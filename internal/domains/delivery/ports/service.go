package ports

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/hvmc/storefront/internal/domains/delivery/domain"
)

// Service exposes delivery pricing to the HTTP layer and to checkout.
type Service interface {
	Regions(ctx context.Context) ([]domain.Region, error)
	FeeFor(ctx context.Context, wilaya string) (decimal.Decimal, error)
	Refresh(ctx context.Context) error
}
