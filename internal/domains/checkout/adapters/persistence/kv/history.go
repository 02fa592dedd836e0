// Package kv persists the local order history and the customer profile
// through the platform key-value store, mirroring the localStorage keys
// the storefront always used.
package kv

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/hvmc/storefront/internal/domains/checkout/domain"
	"github.com/hvmc/storefront/internal/domains/checkout/ports"
	"github.com/hvmc/storefront/internal/domains/pricing"
	platformkv "github.com/hvmc/storefront/internal/platform/kv"
)

// HistoryKey is the fixed order-log key.
const HistoryKey = "userOrders"

var _ ports.History = (*History)(nil)

// History stores the whole order log as one JSON array under HistoryKey.
type History struct {
	store platformkv.Store
}

func NewHistory(store platformkv.Store) *History {
	return &History{store: store}
}

type orderRecord struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Phone         string            `json:"phone"`
	Email         string            `json:"email"`
	Wilaya        string            `json:"wilaya"`
	Address       string            `json:"address,omitempty"`
	Items         []orderItemRecord `json:"items"`
	DeliveryPrice string            `json:"deliveryPrice"`
	ProductTotal  string            `json:"productTotal"`
	GrandTotal    string            `json:"grandTotal"`
	CreatedAt     time.Time         `json:"createdAt"`
	Sent          bool              `json:"sent"`
}

type orderItemRecord struct {
	ProductID   string `json:"productId"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	Color       string `json:"color,omitempty"`
	Image       string `json:"image,omitempty"`
	Length      string `json:"length,omitempty"`
	MetrePrice  string `json:"metrePrice,omitempty"`
	UnitPrice   string `json:"unitPrice"`
	Price       string `json:"price"`
	Calculation string `json:"calculation,omitempty"`
}

// Append reads the log, appends the order, and writes the log back. The
// log is a single snapshot key, so writers must not run concurrently on
// the same store key.
func (h *History) Append(ctx context.Context, order *domain.Order) error {
	if order == nil {
		return errors.New("order is nil")
	}
	records, err := h.load(ctx)
	if err != nil {
		return err
	}
	records = append(records, toOrderRecord(order))
	blob, err := json.Marshal(records)
	if err != nil {
		return err
	}
	return h.store.Set(ctx, HistoryKey, blob)
}

// List returns the full local log in append order.
func (h *History) List(ctx context.Context) ([]*domain.Order, error) {
	records, err := h.load(ctx)
	if err != nil {
		return nil, err
	}
	orders := make([]*domain.Order, 0, len(records))
	for _, rec := range records {
		orders = append(orders, rec.toDomain())
	}
	return orders, nil
}

// load absorbs missing or corrupt snapshots as an empty log.
func (h *History) load(ctx context.Context) ([]orderRecord, error) {
	blob, err := h.store.Get(ctx, HistoryKey)
	if err != nil {
		if errors.Is(err, platformkv.ErrKeyNotFound) {
			return nil, nil
		}
		return nil, err
	}
	var records []orderRecord
	if err := json.Unmarshal(blob, &records); err != nil {
		return nil, nil
	}
	return records, nil
}

func toOrderRecord(order *domain.Order) orderRecord {
	items := make([]orderItemRecord, 0, len(order.Items))
	for _, item := range order.Items {
		rec := orderItemRecord{
			ProductID:   item.ProductID,
			Name:        item.Name,
			Quantity:    item.Quantity,
			Color:       item.Color,
			Image:       item.Image,
			UnitPrice:   item.UnitPrice.String(),
			Price:       item.Price.String(),
			Calculation: item.Calculation,
		}
		if item.MetrePrice.IsPositive() {
			rec.MetrePrice = item.MetrePrice.String()
		}
		if item.Length.IsPositive() {
			rec.Length = item.Length.String()
		}
		items = append(items, rec)
	}
	return orderRecord{
		ID:            order.ID,
		Name:          order.Customer.Name,
		Phone:         order.Customer.Phone,
		Email:         order.Customer.Email,
		Wilaya:        order.Customer.Wilaya,
		Address:       order.Customer.Address,
		Items:         items,
		DeliveryPrice: order.DeliveryPrice.String(),
		ProductTotal:  order.ProductTotal.String(),
		GrandTotal:    order.GrandTotal.String(),
		CreatedAt:     order.CreatedAt,
		Sent:          order.Sent,
	}
}

func (rec orderRecord) toDomain() *domain.Order {
	items := make([]domain.Item, 0, len(rec.Items))
	for _, item := range rec.Items {
		items = append(items, domain.Item{
			ProductID:   item.ProductID,
			Name:        item.Name,
			Quantity:    item.Quantity,
			Color:       item.Color,
			Image:       item.Image,
			Length:      pricing.Normalize(item.Length),
			MetrePrice:  pricing.Normalize(item.MetrePrice),
			UnitPrice:   pricing.Normalize(item.UnitPrice),
			Price:       pricing.Normalize(item.Price),
			Calculation: item.Calculation,
		})
	}
	return &domain.Order{
		ID: rec.ID,
		Customer: domain.Customer{
			Name:    rec.Name,
			Phone:   rec.Phone,
			Email:   rec.Email,
			Wilaya:  rec.Wilaya,
			Address: rec.Address,
		},
		Items:         items,
		DeliveryPrice: pricing.Normalize(rec.DeliveryPrice),
		ProductTotal:  pricing.Normalize(rec.ProductTotal),
		GrandTotal:    pricing.Normalize(rec.GrandTotal),
		CreatedAt:     rec.CreatedAt,
		Sent:          rec.Sent,
	}
}
