// Package kv persists the cart snapshot through the platform key-value
// store, mirroring the single localStorage key the storefront always used.
package kv

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/hvmc/storefront/internal/domains/cart/domain"
	"github.com/hvmc/storefront/internal/domains/cart/ports"
	"github.com/hvmc/storefront/internal/domains/pricing"
	platformkv "github.com/hvmc/storefront/internal/platform/kv"
)

// CartKey is the fixed snapshot key.
const CartKey = "cart"

var _ ports.Repository = (*Repository)(nil)

// Repository stores the whole cart as one JSON array under CartKey.
type Repository struct {
	store platformkv.Store
}

func NewRepository(store platformkv.Store) *Repository {
	return &Repository{store: store}
}

// itemRecord is the stored shape. Prices and lengths are kept as strings
// and re-normalized on load, so snapshots written by older versions with
// formatted price strings still decode.
type itemRecord struct {
	ProductID  string `json:"productId"`
	Name       string `json:"name"`
	UnitPrice  string `json:"unitPrice"`
	MetrePrice string `json:"metrePrice,omitempty"`
	Length     string `json:"length,omitempty"`
	Quantity   int    `json:"quantity"`
	Color      string `json:"color,omitempty"`
	Image      string `json:"image,omitempty"`
	Weight     string `json:"weight,omitempty"`
}

// Load reads the snapshot. A missing or unparsable snapshot yields an
// empty cart; corruption is absorbed, never surfaced.
func (r *Repository) Load(ctx context.Context) ([]domain.LineItem, error) {
	blob, err := r.store.Get(ctx, CartKey)
	if err != nil {
		if errors.Is(err, platformkv.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var records []itemRecord
	if err := json.Unmarshal(blob, &records); err != nil {
		return nil, nil
	}
	items := make([]domain.LineItem, 0, len(records))
	for _, rec := range records {
		items = append(items, rec.toDomain())
	}
	return items, nil
}

// Save overwrites the snapshot with the full item list.
func (r *Repository) Save(ctx context.Context, items []domain.LineItem) error {
	records := make([]itemRecord, 0, len(items))
	for _, item := range items {
		records = append(records, toRecord(item))
	}
	blob, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return r.store.Set(ctx, CartKey, blob)
}

func toRecord(item domain.LineItem) itemRecord {
	rec := itemRecord{
		ProductID: item.ProductID,
		Name:      item.Name,
		UnitPrice: item.UnitPrice.String(),
		Quantity:  item.Quantity,
		Color:     item.Color,
		Image:     item.Image,
	}
	if item.MetrePrice.IsPositive() {
		rec.MetrePrice = item.MetrePrice.String()
	}
	if item.Length.IsPositive() {
		rec.Length = item.Length.String()
	}
	if item.Weight.IsPositive() {
		rec.Weight = item.Weight.String()
	}
	return rec
}

func (rec itemRecord) toDomain() domain.LineItem {
	return domain.LineItem{
		ProductID:  rec.ProductID,
		Name:       rec.Name,
		UnitPrice:  pricing.Normalize(rec.UnitPrice),
		MetrePrice: pricing.Normalize(rec.MetrePrice),
		Length:     pricing.Normalize(rec.Length),
		Quantity:   rec.Quantity,
		Color:      rec.Color,
		Image:      rec.Image,
		Weight:     pricing.Normalize(rec.Weight),
	}
}
