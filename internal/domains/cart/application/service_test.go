package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hvmc/storefront/internal/domains/cart/domain"
)

type fakeCartRepo struct {
	saved    [][]domain.LineItem
	snapshot []domain.LineItem
}

func (f *fakeCartRepo) Load(_ context.Context) ([]domain.LineItem, error) {
	items := make([]domain.LineItem, len(f.snapshot))
	copy(items, f.snapshot)
	return items, nil
}

func (f *fakeCartRepo) Save(_ context.Context, items []domain.LineItem) error {
	f.snapshot = items
	f.saved = append(f.saved, items)
	return nil
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func carpet(qty int) domain.LineItem {
	return domain.LineItem{
		ProductID:  "41",
		Name:       "Tapis Berbère",
		MetrePrice: dec("120"),
		Length:     dec("3"),
		Quantity:   qty,
		Color:      "rouge",
	}
}

func TestAdd_MergesOnIdentity(t *testing.T) {
	repo := &fakeCartRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, carpet(1)))
	require.NoError(t, svc.Add(ctx, carpet(2)))

	items, err := svc.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, 3, items[0].Quantity)
}

func TestAdd_LatestPriceWinsOnMerge(t *testing.T) {
	repo := &fakeCartRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	first := carpet(1)
	require.NoError(t, svc.Add(ctx, first))
	repriced := carpet(1)
	repriced.MetrePrice = dec("150")
	require.NoError(t, svc.Add(ctx, repriced))

	items, err := svc.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "150", items[0].MetrePrice.String())
	require.Equal(t, 2, items[0].Quantity)
}

func TestAdd_DifferentVariantsStaySeparate(t *testing.T) {
	repo := &fakeCartRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, carpet(1)))
	blue := carpet(1)
	blue.Color = "bleu"
	require.NoError(t, svc.Add(ctx, blue))
	longer := carpet(1)
	longer.Length = dec("4")
	require.NoError(t, svc.Add(ctx, longer))

	items, err := svc.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 3)
}

func TestRemove_DropsAllVariantsOfProduct(t *testing.T) {
	repo := &fakeCartRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, carpet(1)))
	blue := carpet(2)
	blue.Color = "bleu"
	require.NoError(t, svc.Add(ctx, blue))
	other := domain.LineItem{ProductID: "7", Name: "Rideau", UnitPrice: dec("500"), Quantity: 1}
	require.NoError(t, svc.Add(ctx, other))

	require.NoError(t, svc.Remove(ctx, "41"))
	items, err := svc.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, "7", items[0].ProductID)
}

func TestUpdateQuantity_ZeroBehavesLikeRemove(t *testing.T) {
	repo := &fakeCartRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, carpet(2)))
	require.NoError(t, svc.UpdateQuantity(ctx, "41", 0))

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	require.Zero(t, count)
}

func TestUpdateQuantity_SetsQuantity(t *testing.T) {
	repo := &fakeCartRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, carpet(2)))
	require.NoError(t, svc.UpdateQuantity(ctx, "41", 5))

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 5, count)
}

func TestEveryMutationPersistsSnapshot(t *testing.T) {
	repo := &fakeCartRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Add(ctx, carpet(1)))
	require.NoError(t, svc.UpdateQuantity(ctx, "41", 2))
	require.NoError(t, svc.Clear(ctx))

	require.Len(t, repo.saved, 3)
	require.Empty(t, repo.saved[2])
}

func TestLoad_RestoresSnapshot(t *testing.T) {
	repo := &fakeCartRepo{snapshot: []domain.LineItem{carpet(2)}}
	svc := NewService(repo)
	ctx := context.Background()

	require.NoError(t, svc.Load(ctx))
	count, err := svc.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)
}

func TestAdd_RejectsInvalidItem(t *testing.T) {
	repo := &fakeCartRepo{}
	svc := NewService(repo)
	ctx := context.Background()

	err := svc.Add(ctx, domain.LineItem{ProductID: "41"})
	require.ErrorIs(t, err, domain.ErrInvalidQuantity)
	err = svc.Add(ctx, domain.LineItem{Quantity: 1})
	require.ErrorIs(t, err, domain.ErrEmptyProductID)
	require.Empty(t, repo.saved)
}
