package ports

import (
	"context"

	"github.com/hvmc/storefront/internal/domains/cart/domain"
)

// Service exposes the cart use cases consumed by the HTTP layer and the
// checkout context.
type Service interface {
	Load(ctx context.Context) error
	Add(ctx context.Context, item domain.LineItem) error
	Remove(ctx context.Context, productID string) error
	UpdateQuantity(ctx context.Context, productID string, quantity int) error
	Clear(ctx context.Context) error
	Items(ctx context.Context) ([]domain.LineItem, error)
	Count(ctx context.Context) (int, error)
}
