package kv

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/hvmc/storefront/internal/domains/checkout/domain"
	"github.com/hvmc/storefront/internal/domains/checkout/ports"
	platformkv "github.com/hvmc/storefront/internal/platform/kv"
)

// ProfileKey is the fixed profile key.
const ProfileKey = "userData"

var _ ports.ProfileStore = (*ProfileStore)(nil)

// ProfileStore keeps the single checkout-prefill profile under ProfileKey.
type ProfileStore struct {
	store platformkv.Store
}

func NewProfileStore(store platformkv.Store) *ProfileStore {
	return &ProfileStore{store: store}
}

type profileRecord struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Wilaya  string `json:"wilaya"`
	Address string `json:"address,omitempty"`
}

// Load returns the stored profile, or nil when none has been saved. A
// corrupt snapshot reads as no profile.
func (p *ProfileStore) Load(ctx context.Context) (*domain.Customer, error) {
	blob, err := p.store.Get(ctx, ProfileKey)
	if err != nil {
		if errors.Is(err, platformkv.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var rec profileRecord
	if err := json.Unmarshal(blob, &rec); err != nil {
		return nil, nil
	}
	return &domain.Customer{
		Name:    rec.Name,
		Phone:   rec.Phone,
		Email:   rec.Email,
		Wilaya:  rec.Wilaya,
		Address: rec.Address,
	}, nil
}

// Save overwrites the stored profile.
func (p *ProfileStore) Save(ctx context.Context, customer domain.Customer) error {
	blob, err := json.Marshal(profileRecord{
		Name:    customer.Name,
		Phone:   customer.Phone,
		Email:   customer.Email,
		Wilaya:  customer.Wilaya,
		Address: customer.Address,
	})
	if err != nil {
		return err
	}
	return p.store.Set(ctx, ProfileKey, blob)
}
