package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/hvmc/storefront/internal/domains/catalog/domain"
	"github.com/hvmc/storefront/internal/domains/catalog/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory catalog, used when no database is configured
// and in tests.
type Repository struct {
	mu             sync.RWMutex
	products       map[int64]*domain.Product
	categories     map[int64]*domain.Category
	nextProductID  int64
	nextCategoryID int64
}

func NewRepository() *Repository {
	return &Repository{
		products:       map[int64]*domain.Product{},
		categories:     map[int64]*domain.Category{},
		nextProductID:  1,
		nextCategoryID: 1,
	}
}

func (r *Repository) SaveProduct(_ context.Context, product *domain.Product) (*domain.Product, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := cloneProduct(product)
	if clone.ID == 0 {
		clone.ID = r.nextProductID
		r.nextProductID++
	}
	r.products[clone.ID] = clone
	return cloneProduct(clone), nil
}

func (r *Repository) GetProduct(_ context.Context, id int64) (*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	product, ok := r.products[id]
	if !ok {
		return nil, ports.ErrProductNotFound
	}
	return cloneProduct(product), nil
}

func (r *Repository) ListProducts(_ context.Context, categoryID int64) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Product, 0, len(r.products))
	for _, product := range r.products {
		if categoryID != 0 && product.CategoryID != categoryID {
			continue
		}
		out = append(out, cloneProduct(product))
	}
	return out, nil
}

func (r *Repository) SearchProducts(_ context.Context, query string) ([]*domain.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	needle := strings.ToLower(query)
	out := make([]*domain.Product, 0)
	for _, product := range r.products {
		if strings.Contains(strings.ToLower(product.Name), needle) ||
			strings.Contains(strings.ToLower(product.Description), needle) ||
			matchesTag(product.Tags, needle) {
			out = append(out, cloneProduct(product))
		}
	}
	return out, nil
}

func matchesTag(tags []string, needle string) bool {
	for _, tag := range tags {
		if strings.Contains(strings.ToLower(tag), needle) {
			return true
		}
	}
	return false
}

func (r *Repository) DeleteProduct(_ context.Context, id int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.products[id]; !ok {
		return ports.ErrProductNotFound
	}
	delete(r.products, id)
	return nil
}

func (r *Repository) SaveCategory(_ context.Context, category *domain.Category) (*domain.Category, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *category
	if clone.ID == 0 {
		clone.ID = r.nextCategoryID
		r.nextCategoryID++
	}
	r.categories[clone.ID] = &clone
	out := clone
	return &out, nil
}

func (r *Repository) GetCategory(_ context.Context, id int64) (*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	category, ok := r.categories[id]
	if !ok {
		return nil, ports.ErrCategoryNotFound
	}
	clone := *category
	return &clone, nil
}

func (r *Repository) ListCategories(_ context.Context) ([]*domain.Category, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*domain.Category, 0, len(r.categories))
	for _, category := range r.categories {
		clone := *category
		out = append(out, &clone)
	}
	return out, nil
}

func cloneProduct(product *domain.Product) *domain.Product {
	clone := *product
	clone.Images = make([]domain.ProductImage, len(product.Images))
	copy(clone.Images, product.Images)
	clone.Tags = make([]string, len(product.Tags))
	copy(clone.Tags, product.Tags)
	return &clone
}
