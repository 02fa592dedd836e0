package application

import (
	"context"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/hvmc/storefront/internal/domains/delivery/domain"
	"github.com/hvmc/storefront/internal/domains/delivery/ports"
)

// Service resolves delivery fees against a session-cached wilaya table.
// The table is loaded from the repository on first use and kept for the
// session; Refresh discards the cache explicitly. There is no implicit
// re-fetch on lookup misses.
type Service struct {
	mu      sync.Mutex
	repo    ports.Repository
	regions []domain.Region
	loaded  bool
}

func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Regions returns the cached wilaya table, loading it if needed.
func (s *Service) Regions(ctx context.Context) ([]domain.Region, error) {
	regions, err := s.table(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Region, len(regions))
	copy(out, regions)
	return out, nil
}

// FeeFor resolves the flat delivery fee for the wilaya. Unknown or blank
// wilayas resolve to zero.
func (s *Service) FeeFor(ctx context.Context, wilaya string) (decimal.Decimal, error) {
	regions, err := s.table(ctx)
	if err != nil {
		return decimal.Zero, err
	}
	return domain.FeeFor(wilaya, regions), nil
}

// Refresh invalidates the cached table; the next lookup reloads it.
func (s *Service) Refresh(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.regions = nil
	s.loaded = false
	return nil
}

func (s *Service) table(ctx context.Context) ([]domain.Region, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return s.regions, nil
	}
	regions, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	s.regions = regions
	s.loaded = true
	return s.regions, nil
}

var _ ports.Service = (*Service)(nil)
