package application

import (
	"context"
	"errors"

	"github.com/hvmc/storefront/internal/domains/catalog/domain"
	"github.com/hvmc/storefront/internal/domains/catalog/ports"
)

// Service orchestrates catalog use cases.
type Service struct {
	repo ports.Repository
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) CreateProduct(ctx context.Context, product *domain.Product) (*domain.Product, error) {
	if product == nil {
		return nil, errors.New("product is nil")
	}
	if err := product.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.SaveProduct(ctx, product)
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*domain.Product, error) {
	return s.repo.GetProduct(ctx, id)
}

// ListProducts returns products for a category; zero categoryID lists the
// whole catalog.
func (s *Service) ListProducts(ctx context.Context, categoryID int64) ([]*domain.Product, error) {
	return s.repo.ListProducts(ctx, categoryID)
}

func (s *Service) SearchProducts(ctx context.Context, query string) ([]*domain.Product, error) {
	if query == "" {
		return s.repo.ListProducts(ctx, 0)
	}
	return s.repo.SearchProducts(ctx, query)
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	return s.repo.DeleteProduct(ctx, id)
}

func (s *Service) CreateCategory(ctx context.Context, category *domain.Category) (*domain.Category, error) {
	if category == nil {
		return nil, errors.New("category is nil")
	}
	if err := category.Validate(); err != nil {
		return nil, mapError(err)
	}
	return s.repo.SaveCategory(ctx, category)
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*domain.Category, error) {
	return s.repo.GetCategory(ctx, id)
}

func (s *Service) ListCategories(ctx context.Context) ([]*domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

var _ ports.Service = (*Service)(nil)
