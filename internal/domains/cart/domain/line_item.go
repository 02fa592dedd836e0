package domain

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/hvmc/storefront/internal/domains/pricing"
)

var (
	ErrEmptyProductID  = errors.New("product id is required")
	ErrInvalidQuantity = errors.New("quantity must be greater than zero")
)

// LineItem models one product configuration in the cart. Two line items are
// the same cart entry when product id, colour, and length all match; colour
// and length variants of one product are distinct entries.
type LineItem struct {
	ProductID  string
	Name       string
	UnitPrice  decimal.Decimal
	MetrePrice decimal.Decimal
	Length     decimal.Decimal
	Quantity   int
	Color      string
	Image      string
	Weight     decimal.Decimal
}

// Identity is the cart identity triple of a line item.
type Identity struct {
	ProductID string
	Color     string
	Length    string
}

// Identity returns the merge key for the item. Length participates in its
// canonical decimal form so "3" and "3.0" collide.
func (i LineItem) Identity() Identity {
	return Identity{ProductID: i.ProductID, Color: i.Color, Length: i.Length.String()}
}

// Quote exposes the pricing inputs of the item.
func (i LineItem) Quote() pricing.Quote {
	return pricing.Quote{
		UnitPrice:  i.UnitPrice,
		MetrePrice: i.MetrePrice,
		Length:     i.Length,
		Quantity:   i.Quantity,
	}
}

// Price computes the item total under the metre-over-unit precedence rule.
func (i LineItem) Price() decimal.Decimal {
	return i.Quote().Total()
}

// Purchasable reports whether the item can be priced and submitted.
func (i LineItem) Purchasable() bool {
	return i.Quote().Purchasable()
}

// Validate enforces invariants required before the item enters the cart.
func (i LineItem) Validate() error {
	if i.ProductID == "" {
		return ErrEmptyProductID
	}
	if i.Quantity <= 0 {
		return ErrInvalidQuantity
	}
	return nil
}

// Merge folds an incoming addition with the same identity into the stored
// entry: quantities are summed and the stored prices are replaced with the
// incoming values, so the latest advertised price wins.
func (i *LineItem) Merge(incoming LineItem) {
	i.Quantity += incoming.Quantity
	i.UnitPrice = incoming.UnitPrice
	i.MetrePrice = incoming.MetrePrice
	i.Name = incoming.Name
	i.Image = incoming.Image
	i.Weight = incoming.Weight
}
