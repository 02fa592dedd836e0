package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

func TestQuote_UnitPricing(t *testing.T) {
	q := Quote{UnitPrice: dec("500"), Quantity: 2}
	require.Equal(t, "1000", q.Total().String())
	require.True(t, q.Purchasable())
	require.Equal(t, "500.00 × 2", q.Label())
}

func TestQuote_MetrePricingWinsOverUnitPrice(t *testing.T) {
	q := Quote{UnitPrice: dec("9999"), MetrePrice: dec("120"), Length: dec("3"), Quantity: 2}
	require.Equal(t, "720", q.Total().String())
	require.Equal(t, "120.00/m × 3m × 2", q.Label())
}

func TestQuote_MetrePricedWithoutLengthIsBlocked(t *testing.T) {
	q := Quote{UnitPrice: dec("450"), MetrePrice: dec("120"), Quantity: 1}
	require.True(t, q.Total().IsZero())
	require.False(t, q.Purchasable())

	q.Length = dec("-2")
	require.True(t, q.Total().IsZero())
	require.False(t, q.Purchasable())
}

func TestQuote_ZeroMetrePriceFallsBackToUnit(t *testing.T) {
	q := Quote{UnitPrice: dec("450"), MetrePrice: decimal.Zero, Length: dec("3"), Quantity: 3}
	require.Equal(t, "1350", q.Total().String())
	require.True(t, q.Purchasable())
}

func TestQuote_TotalIsPure(t *testing.T) {
	q := Quote{MetrePrice: dec("75.5"), Length: dec("2.5"), Quantity: 4}
	first := q.Total()
	second := q.Total()
	require.True(t, first.Equal(second))
	require.Equal(t, "755", first.String())
}
