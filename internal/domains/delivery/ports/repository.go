package ports

import (
	"context"
	"errors"

	"github.com/hvmc/storefront/internal/domains/delivery/domain"
)

var ErrNotFound = errors.New("delivery region not found")

// Repository stores the wilaya delivery price table.
type Repository interface {
	List(ctx context.Context) ([]domain.Region, error)
	GetByName(ctx context.Context, name string) (*domain.Region, error)
	ReplaceAll(ctx context.Context, regions []domain.Region) error
}
