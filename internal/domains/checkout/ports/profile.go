package ports

import (
	"context"

	"github.com/hvmc/storefront/internal/domains/checkout/domain"
)

// ProfileStore persists the customer profile used to prefill the order
// form. Load returns nil when no profile has been saved yet.
type ProfileStore interface {
	Load(ctx context.Context) (*domain.Customer, error)
	Save(ctx context.Context, customer domain.Customer) error
}
