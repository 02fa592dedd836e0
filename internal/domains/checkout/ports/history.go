package ports

import (
	"context"

	"github.com/hvmc/storefront/internal/domains/checkout/domain"
)

// History is the local order log. Appends happen before dispatch and are
// never rolled back on dispatch failure.
type History interface {
	Append(ctx context.Context, order *domain.Order) error
	List(ctx context.Context) ([]*domain.Order, error)
}
