// Package domain holds the checkout aggregates: submitted orders and the
// customer profile used to prefill the order form.
package domain

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	cartdomain "github.com/hvmc/storefront/internal/domains/cart/domain"
)

var (
	ErrEmptyOrder     = errors.New("order has no items")
	ErrMissingName    = errors.New("customer name is required")
	ErrMissingPhone   = errors.New("customer phone is required")
	ErrMissingWilaya  = errors.New("delivery wilaya is required")
	ErrLengthRequired = errors.New("metre-priced item requires a length")
)

// Customer identifies the person placing the order. Email and address are
// optional; email additionally scopes the local order history.
type Customer struct {
	Name    string
	Phone   string
	Email   string
	Wilaya  string
	Address string
}

func (c Customer) Validate() error {
	if c.Name == "" {
		return ErrMissingName
	}
	if c.Phone == "" {
		return ErrMissingPhone
	}
	if c.Wilaya == "" {
		return ErrMissingWilaya
	}
	return nil
}

// Item is an order line snapshot. Price and Calculation are recomputed at
// assembly time from the pricing inputs; the cart's advertised total is
// never trusted.
type Item struct {
	ProductID   string
	Name        string
	Quantity    int
	Color       string
	Image       string
	Length      decimal.Decimal
	MetrePrice  decimal.Decimal
	UnitPrice   decimal.Decimal
	Price       decimal.Decimal
	Calculation string
}

// Order is the immutable result of a checkout. Sent stays false until the
// upstream shop confirms receipt.
type Order struct {
	ID            string
	Customer      Customer
	Items         []Item
	DeliveryPrice decimal.Decimal
	ProductTotal  decimal.Decimal
	GrandTotal    decimal.Decimal
	CreatedAt     time.Time
	Sent          bool
}

// NewOrder assembles an order from cart lines. It validates the customer
// and every line, reprices each item, and totals the batch with a single
// delivery fee. Validation failures happen before anything is copied out.
func NewOrder(id string, customer Customer, lines []cartdomain.LineItem, deliveryFee decimal.Decimal, now time.Time) (*Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyOrder
	}
	if err := customer.Validate(); err != nil {
		return nil, err
	}
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return nil, err
		}
		if line.MetrePrice.IsPositive() && !line.Length.IsPositive() {
			return nil, ErrLengthRequired
		}
	}

	items := make([]Item, 0, len(lines))
	productTotal := decimal.Zero
	for _, line := range lines {
		quote := line.Quote()
		price := quote.Total()
		items = append(items, Item{
			ProductID:   line.ProductID,
			Name:        line.Name,
			Quantity:    line.Quantity,
			Color:       line.Color,
			Image:       line.Image,
			Length:      line.Length,
			MetrePrice:  line.MetrePrice,
			UnitPrice:   line.UnitPrice,
			Price:       price,
			Calculation: quote.Label(),
		})
		productTotal = productTotal.Add(price)
	}

	return &Order{
		ID:            id,
		Customer:      customer,
		Items:         items,
		DeliveryPrice: deliveryFee,
		ProductTotal:  productTotal,
		GrandTotal:    productTotal.Add(deliveryFee),
		CreatedAt:     now,
	}, nil
}

// MarkSent returns a copy flagged as confirmed upstream.
func (o Order) MarkSent() Order {
	o.Sent = true
	items := make([]Item, len(o.Items))
	copy(items, o.Items)
	o.Items = items
	return o
}
