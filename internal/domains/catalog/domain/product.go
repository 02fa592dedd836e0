// Package domain holds the catalog aggregates: products, their per-colour
// image variants, and categories.
package domain

import (
	"errors"

	"github.com/shopspring/decimal"
)

var (
	ErrEmptyName       = errors.New("product name must not be empty")
	ErrNegativePrice   = errors.New("product price must not be negative")
	ErrEmptyCategoryID = errors.New("category id must not be empty")
)

// ProductImage is one colour variant of a product. Colour is the swatch
// value shown to shoppers, ColorName the human label.
type ProductImage struct {
	ID        int64
	ProductID int64
	URL       string
	Color     string
	ColorName string
}

// Product is a catalog entry. MetrePrice zero means the product sells per
// unit; positive means it sells by the metre and a cut length is required
// at purchase time.
type Product struct {
	ID          int64
	CategoryID  int64
	Name        string
	Description string
	Price       decimal.Decimal
	MetrePrice  decimal.Decimal
	WeightKG    decimal.Decimal
	Available   bool
	ImageURL    string
	Images      []ProductImage
	Tags        []string
}

// SoldByMetre reports whether the per-metre price takes precedence over the
// unit price for this product.
func (p Product) SoldByMetre() bool {
	return p.MetrePrice.IsPositive()
}

// Colors returns the distinct colour variants in catalog order.
func (p Product) Colors() []ProductImage {
	seen := make(map[string]struct{}, len(p.Images))
	out := make([]ProductImage, 0, len(p.Images))
	for _, img := range p.Images {
		key := img.Color + "\x00" + img.ColorName
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, img)
	}
	return out
}

// ImagesForColor filters the variants to one colour; empty colour returns
// the full set.
func (p Product) ImagesForColor(color string) []ProductImage {
	if color == "" {
		out := make([]ProductImage, len(p.Images))
		copy(out, p.Images)
		return out
	}
	out := make([]ProductImage, 0, len(p.Images))
	for _, img := range p.Images {
		if img.Color == color {
			out = append(out, img)
		}
	}
	return out
}

func (p Product) Validate() error {
	if p.Name == "" {
		return ErrEmptyName
	}
	if p.Price.IsNegative() || p.MetrePrice.IsNegative() {
		return ErrNegativePrice
	}
	return nil
}

// Category groups products for browsing.
type Category struct {
	ID          int64
	Name        string
	Description string
	ImageURL    string
}

func (c Category) Validate() error {
	if c.Name == "" {
		return ErrEmptyName
	}
	return nil
}
