package kv

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hvmc/storefront/internal/domains/checkout/domain"
	platformkv "github.com/hvmc/storefront/internal/platform/kv"
)

func sampleOrder(id, email string) *domain.Order {
	return &domain.Order{
		ID: id,
		Customer: domain.Customer{
			Name:   "Amine B",
			Phone:  "0550 12 34 56",
			Email:  email,
			Wilaya: "Algiers",
		},
		Items: []domain.Item{
			{
				ProductID:   "7",
				Name:        "Câble souple 2.5mm",
				Quantity:    2,
				Length:      decimal.NewFromInt(3),
				MetrePrice:  decimal.NewFromInt(120),
				Price:       decimal.NewFromInt(720),
				Calculation: "120.00/m × 3m × 2",
			},
		},
		DeliveryPrice: decimal.NewFromInt(400),
		ProductTotal:  decimal.NewFromInt(720),
		GrandTotal:    decimal.NewFromInt(1120),
		CreatedAt:     time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC),
	}
}

func TestHistory_AppendAndList(t *testing.T) {
	history := NewHistory(platformkv.NewMemoryStore())
	ctx := context.Background()

	require.NoError(t, history.Append(ctx, sampleOrder("o1", "amine@example.com")))
	require.NoError(t, history.Append(ctx, sampleOrder("o2", "amine@example.com")))

	orders, err := history.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 2)
	require.Equal(t, "o1", orders[0].ID)
	require.Equal(t, "o2", orders[1].ID)

	first := orders[0]
	require.Equal(t, "720", first.Items[0].Price.String())
	require.Equal(t, "120.00/m × 3m × 2", first.Items[0].Calculation)
	require.Equal(t, "1120", first.GrandTotal.String())
	require.False(t, first.Sent)
}

func TestHistory_MissingSnapshotIsEmpty(t *testing.T) {
	history := NewHistory(platformkv.NewMemoryStore())

	orders, err := history.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestHistory_CorruptSnapshotIsEmpty(t *testing.T) {
	store := platformkv.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), HistoryKey, []byte("{not json")))
	history := NewHistory(store)

	orders, err := history.List(context.Background())
	require.NoError(t, err)
	require.Empty(t, orders)
}

func TestProfileStore_RoundTrip(t *testing.T) {
	profiles := NewProfileStore(platformkv.NewMemoryStore())
	ctx := context.Background()

	loaded, err := profiles.Load(ctx)
	require.NoError(t, err)
	require.Nil(t, loaded)

	customer := domain.Customer{
		Name:    "Amine B",
		Phone:   "0550 12 34 56",
		Email:   "amine@example.com",
		Wilaya:  "Algiers",
		Address: "12 rue Didouche",
	}
	require.NoError(t, profiles.Save(ctx, customer))

	loaded, err = profiles.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, &customer, loaded)
}
