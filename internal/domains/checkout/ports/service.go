package ports

import (
	"context"

	cartdomain "github.com/hvmc/storefront/internal/domains/cart/domain"
	"github.com/hvmc/storefront/internal/domains/checkout/domain"
)

// SubmitInput carries everything needed to assemble and dispatch an order.
type SubmitInput struct {
	Customer domain.Customer
	Items    []cartdomain.LineItem
}

// Service exposes checkout use cases to adapters.
type Service interface {
	Submit(ctx context.Context, input SubmitInput) (*domain.Order, error)
	Orders(ctx context.Context) ([]*domain.Order, error)
	Profile(ctx context.Context) (*domain.Customer, error)
	SaveProfile(ctx context.Context, customer domain.Customer) error
}
