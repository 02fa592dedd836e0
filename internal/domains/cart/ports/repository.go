package ports

import (
	"context"

	"github.com/hvmc/storefront/internal/domains/cart/domain"
)

// Repository persists the full cart snapshot. Save overwrites the previous
// snapshot wholesale; there is no incremental log. Load must absorb missing
// or corrupt snapshots by returning an empty cart.
type Repository interface {
	Load(ctx context.Context) ([]domain.LineItem, error)
	Save(ctx context.Context, items []domain.LineItem) error
}
