package application

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	"github.com/hvmc/storefront/internal/domains/catalog/adapters/memory"
	"github.com/hvmc/storefront/internal/domains/catalog/domain"
	"github.com/hvmc/storefront/internal/domains/catalog/ports"
)

func TestCreateProduct_RejectsInvalid(t *testing.T) {
	svc := NewService(memory.NewRepository())

	_, err := svc.CreateProduct(context.Background(), &domain.Product{})
	require.ErrorIs(t, err, ErrInvalidInput)

	_, err = svc.CreateProduct(context.Background(), &domain.Product{
		Name:  "Câble souple",
		Price: decimal.NewFromInt(-1),
	})
	require.ErrorIs(t, err, ErrInvalidInput)
}

func TestListProducts_FiltersByCategory(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	cables, err := svc.CreateCategory(ctx, &domain.Category{Name: "Câbles"})
	require.NoError(t, err)

	_, err = svc.CreateProduct(ctx, &domain.Product{
		Name:       "Câble 2.5mm",
		CategoryID: cables.ID,
		MetrePrice: decimal.NewFromInt(120),
		Available:  true,
	})
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, &domain.Product{
		Name:      "Disjoncteur 16A",
		Price:     decimal.NewFromInt(950),
		Available: true,
	})
	require.NoError(t, err)

	inCategory, err := svc.ListProducts(ctx, cables.ID)
	require.NoError(t, err)
	require.Len(t, inCategory, 1)
	require.Equal(t, "Câble 2.5mm", inCategory[0].Name)

	all, err := svc.ListProducts(ctx, 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
}

func TestSearchProducts_MatchesNameAndDescription(t *testing.T) {
	svc := NewService(memory.NewRepository())
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, &domain.Product{
		Name:        "Gaine ICTA",
		Description: "gaine annelée pour encastrement",
		Price:       decimal.NewFromInt(60),
	})
	require.NoError(t, err)

	byName, err := svc.SearchProducts(ctx, "icta")
	require.NoError(t, err)
	require.Len(t, byName, 1)

	byDescription, err := svc.SearchProducts(ctx, "encastrement")
	require.NoError(t, err)
	require.Len(t, byDescription, 1)

	none, err := svc.SearchProducts(ctx, "tournevis")
	require.NoError(t, err)
	require.Empty(t, none)
}

func TestDeleteProduct_UnknownID(t *testing.T) {
	svc := NewService(memory.NewRepository())
	err := svc.DeleteProduct(context.Background(), 42)
	require.ErrorIs(t, err, ports.ErrProductNotFound)
}
