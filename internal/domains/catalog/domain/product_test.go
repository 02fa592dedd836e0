package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestColors_DeduplicatesVariants(t *testing.T) {
	product := Product{
		Name: "Câble souple",
		Images: []ProductImage{
			{ID: 1, URL: "/a.jpg", Color: "#ff0000", ColorName: "Rouge"},
			{ID: 2, URL: "/b.jpg", Color: "#ff0000", ColorName: "Rouge"},
			{ID: 3, URL: "/c.jpg", Color: "#0000ff", ColorName: "Bleu"},
		},
	}

	colors := product.Colors()
	require.Len(t, colors, 2)
	require.Equal(t, "Rouge", colors[0].ColorName)
	require.Equal(t, "Bleu", colors[1].ColorName)
}

func TestImagesForColor(t *testing.T) {
	product := Product{
		Images: []ProductImage{
			{ID: 1, Color: "#ff0000"},
			{ID: 2, Color: "#0000ff"},
			{ID: 3, Color: "#ff0000"},
		},
	}

	red := product.ImagesForColor("#ff0000")
	require.Len(t, red, 2)

	all := product.ImagesForColor("")
	require.Len(t, all, 3)
}

func TestSoldByMetre(t *testing.T) {
	require.True(t, Product{MetrePrice: decimal.NewFromInt(120)}.SoldByMetre())
	require.False(t, Product{Price: decimal.NewFromInt(500)}.SoldByMetre())
}
