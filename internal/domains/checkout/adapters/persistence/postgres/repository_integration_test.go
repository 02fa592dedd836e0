//go:build integration

package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/hvmc/storefront/internal/domains/checkout/domain"
	"github.com/hvmc/storefront/internal/platform/migrations"
)

func setupCheckoutPostgresContainer(t *testing.T) (*gorm.DB, func()) {
	ctx := context.Background()

	pgContainer, err := tcpostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcpostgres.WithDatabase("storefront_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	err = migrations.Run(db)
	require.NoError(t, err)

	cleanup := func() {
		sqlDB, _ := db.DB()
		if sqlDB != nil {
			sqlDB.Close()
		}
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func testOrder(id string) *domain.Order {
	return &domain.Order{
		ID: id,
		Customer: domain.Customer{
			Name:   "Amine B",
			Phone:  "0550 12 34 56",
			Email:  "amine@example.com",
			Wilaya: "Algiers",
		},
		Items: []domain.Item{
			{
				ProductID:   "7",
				Name:        "Câble souple 2.5mm",
				Quantity:    2,
				Length:      decimal.NewFromInt(3),
				MetrePrice:  decimal.RequireFromString("120.00"),
				Price:       decimal.RequireFromString("720.00"),
				Calculation: "120.00/m × 3m × 2",
			},
		},
		DeliveryPrice: decimal.RequireFromString("400.00"),
		ProductTotal:  decimal.RequireFromString("720.00"),
		GrandTotal:    decimal.RequireFromString("1120.00"),
		CreatedAt:     time.Now().UTC().Truncate(time.Second),
	}
}

func TestRepository_AppendAndList(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCheckoutPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, testOrder("11111111-1111-1111-1111-111111111111")))

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "Amine B", orders[0].Customer.Name)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "720", orders[0].Items[0].Price.String())
	assert.False(t, orders[0].Sent)
}

func TestRepository_AppendIsIdempotentPerOrderID(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCheckoutPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	order := testOrder("22222222-2222-2222-2222-222222222222")
	require.NoError(t, repo.Append(ctx, order))
	require.NoError(t, repo.Append(ctx, order))

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Len(t, orders[0].Items, 1, "retried append must not duplicate items")
}

func TestRepository_MarkSent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	db, cleanup := setupCheckoutPostgresContainer(t)
	defer cleanup()

	repo := NewRepository(db)
	ctx := context.Background()

	order := testOrder("33333333-3333-3333-3333-333333333333")
	require.NoError(t, repo.Append(ctx, order))
	require.NoError(t, repo.MarkSent(ctx, order.ID))

	orders, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.True(t, orders[0].Sent)
}
