package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestFeeFor(t *testing.T) {
	regions := []Region{
		{ID: 1, Name: "Algiers", DeliveryPrice: decimal.NewFromInt(400)},
		{ID: 2, Name: "Blida", DeliveryPrice: decimal.NewFromInt(600)},
	}

	require.Equal(t, "400", FeeFor("Algiers", regions).String())
	require.Equal(t, "600", FeeFor("Blida", regions).String())
	require.True(t, FeeFor("Oran", regions).IsZero())
	require.True(t, FeeFor("", regions).IsZero())
	require.True(t, FeeFor("algiers", regions).IsZero(), "match is case-sensitive")
	require.True(t, FeeFor("Algiers", nil).IsZero())
}
