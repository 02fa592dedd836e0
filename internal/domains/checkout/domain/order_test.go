package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/hvmc/storefront/internal/domains/cart/domain"
)

func validCustomer() Customer {
	return Customer{
		Name:   "Amine B",
		Phone:  "0550 12 34 56",
		Email:  "amine@example.com",
		Wilaya: "Algiers",
	}
}

func TestNewOrder_RepricesAndTotals(t *testing.T) {
	lines := []cartdomain.LineItem{
		{
			ProductID:  "7",
			Name:       "Câble souple 2.5mm",
			MetrePrice: decimal.NewFromInt(120),
			UnitPrice:  decimal.NewFromInt(9999),
			Length:     decimal.NewFromInt(3),
			Quantity:   2,
		},
		{
			ProductID: "12",
			Name:      "Disjoncteur 16A",
			UnitPrice: decimal.NewFromInt(950),
			Quantity:  1,
		},
	}

	now := time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)
	order, err := NewOrder("ord-1", validCustomer(), lines, decimal.NewFromInt(400), now)
	require.NoError(t, err)

	// metre price wins over the inflated unit price: 120 × 3 × 2 = 720
	require.Equal(t, "720", order.Items[0].Price.String())
	require.Equal(t, "120.00/m × 3m × 2", order.Items[0].Calculation)
	require.Equal(t, "950", order.Items[1].Price.String())
	require.Equal(t, "950.00 × 1", order.Items[1].Calculation)

	require.Equal(t, "1670", order.ProductTotal.String())
	require.Equal(t, "2070", order.GrandTotal.String())
	require.Equal(t, now, order.CreatedAt)
	require.False(t, order.Sent)
}

func TestNewOrder_ValidationFailures(t *testing.T) {
	line := cartdomain.LineItem{ProductID: "7", UnitPrice: decimal.NewFromInt(100), Quantity: 1}

	_, err := NewOrder("o", validCustomer(), nil, decimal.Zero, time.Now())
	require.ErrorIs(t, err, ErrEmptyOrder)

	customer := validCustomer()
	customer.Name = ""
	_, err = NewOrder("o", customer, []cartdomain.LineItem{line}, decimal.Zero, time.Now())
	require.ErrorIs(t, err, ErrMissingName)

	customer = validCustomer()
	customer.Phone = ""
	_, err = NewOrder("o", customer, []cartdomain.LineItem{line}, decimal.Zero, time.Now())
	require.ErrorIs(t, err, ErrMissingPhone)

	customer = validCustomer()
	customer.Wilaya = ""
	_, err = NewOrder("o", customer, []cartdomain.LineItem{line}, decimal.Zero, time.Now())
	require.ErrorIs(t, err, ErrMissingWilaya)
}

func TestNewOrder_MetrePricedLineNeedsLength(t *testing.T) {
	line := cartdomain.LineItem{
		ProductID:  "7",
		MetrePrice: decimal.NewFromInt(120),
		Quantity:   1,
	}
	_, err := NewOrder("o", validCustomer(), []cartdomain.LineItem{line}, decimal.Zero, time.Now())
	require.ErrorIs(t, err, ErrLengthRequired)
}

func TestNewOrder_SnapshotIndependentOfCart(t *testing.T) {
	lines := []cartdomain.LineItem{
		{ProductID: "7", Name: "Gaine ICTA", UnitPrice: decimal.NewFromInt(60), Quantity: 4},
	}
	order, err := NewOrder("o", validCustomer(), lines, decimal.Zero, time.Now())
	require.NoError(t, err)

	lines[0].Quantity = 99
	lines[0].Name = "changed"
	require.Equal(t, 4, order.Items[0].Quantity)
	require.Equal(t, "Gaine ICTA", order.Items[0].Name)
}

func TestMarkSent_DoesNotMutateOriginal(t *testing.T) {
	lines := []cartdomain.LineItem{
		{ProductID: "7", UnitPrice: decimal.NewFromInt(60), Quantity: 1},
	}
	order, err := NewOrder("o", validCustomer(), lines, decimal.Zero, time.Now())
	require.NoError(t, err)

	sent := order.MarkSent()
	require.True(t, sent.Sent)
	require.False(t, order.Sent)
}
