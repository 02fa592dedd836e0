package memory

import (
	"context"
	"sync"

	"github.com/hvmc/storefront/internal/domains/delivery/domain"
	"github.com/hvmc/storefront/internal/domains/delivery/ports"
)

var _ ports.Repository = (*Repository)(nil)

// Repository is an in-memory wilaya table, used when no database is
// configured and in tests.
type Repository struct {
	mu      sync.RWMutex
	regions []domain.Region
}

// NewRepository starts with the provided seed table, which may be nil.
func NewRepository(seed []domain.Region) *Repository {
	regions := make([]domain.Region, len(seed))
	copy(regions, seed)
	return &Repository{regions: regions}
}

func (r *Repository) List(_ context.Context) ([]domain.Region, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.Region, len(r.regions))
	copy(out, r.regions)
	return out, nil
}

func (r *Repository) GetByName(_ context.Context, name string) (*domain.Region, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, region := range r.regions {
		if region.Name == name {
			clone := region
			return &clone, nil
		}
	}
	return nil, ports.ErrNotFound
}

func (r *Repository) ReplaceAll(_ context.Context, regions []domain.Region) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.regions = make([]domain.Region, len(regions))
	copy(r.regions, regions)
	return nil
}
