package application

import (
	"context"
	"sync"

	"github.com/hvmc/storefront/internal/domains/cart/domain"
	"github.com/hvmc/storefront/internal/domains/cart/ports"
)

// Service holds the live cart for the running session and writes the full
// snapshot through the repository on every mutation. All operations run
// under one mutex; the cart is process-wide state scoped to the session.
type Service struct {
	mu    sync.Mutex
	repo  ports.Repository
	items []domain.LineItem
}

// NewService wires the cart service with its snapshot repository.
func NewService(repo ports.Repository) *Service {
	return &Service{repo: repo}
}

// Load replaces the in-memory cart with the persisted snapshot. Corrupt or
// missing snapshots surface as an empty cart, not an error.
func (s *Service) Load(ctx context.Context) error {
	items, err := s.repo.Load(ctx)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = items
	return nil
}

// Add merges the item into an existing entry with the same
// (product, colour, length) identity, or appends it preserving insertion
// order. On a merge the quantity is summed and the stored price replaced
// with the incoming one.
func (s *Service) Add(ctx context.Context, item domain.LineItem) error {
	if err := item.Validate(); err != nil {
		return mapError(err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	identity := item.Identity()
	merged := false
	for i := range s.items {
		if s.items[i].Identity() == identity {
			s.items[i].Merge(item)
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, item)
	}
	return s.persistLocked(ctx)
}

// Remove drops every entry for the product id, across all colour and length
// variants. This is deliberately coarser than the add identity: the
// storefront has always removed whole products at once, and product owners
// have not asked for per-variant removal.
func (s *Service) Remove(ctx context.Context, productID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.removeLocked(productID)
	return s.persistLocked(ctx)
}

// UpdateQuantity sets the quantity on every entry matching the product id.
// A non-positive quantity behaves exactly like Remove.
func (s *Service) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if quantity <= 0 {
		s.removeLocked(productID)
		return s.persistLocked(ctx)
	}
	for i := range s.items {
		if s.items[i].ProductID == productID {
			s.items[i].Quantity = quantity
		}
	}
	return s.persistLocked(ctx)
}

// Clear empties the cart.
func (s *Service) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = nil
	return s.persistLocked(ctx)
}

// Items returns a copy of the live cart in insertion order.
func (s *Service) Items(_ context.Context) ([]domain.LineItem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items := make([]domain.LineItem, len(s.items))
	copy(items, s.items)
	return items, nil
}

// Count sums the quantities of all entries.
func (s *Service) Count(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total, nil
}

func (s *Service) removeLocked(productID string) {
	kept := s.items[:0]
	for _, item := range s.items {
		if item.ProductID != productID {
			kept = append(kept, item)
		}
	}
	s.items = kept
}

func (s *Service) persistLocked(ctx context.Context) error {
	snapshot := make([]domain.LineItem, len(s.items))
	copy(snapshot, s.items)
	return s.repo.Save(ctx, snapshot)
}

var _ ports.Service = (*Service)(nil)
