package ports

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/hvmc/storefront/internal/domains/checkout/domain"
)

// DispatchKind classifies how an order dispatch failed.
type DispatchKind string

const (
	// DispatchRejected means the upstream shop refused the order payload.
	DispatchRejected DispatchKind = "rejected"
	// DispatchEndpointMissing means the order endpoint does not exist upstream.
	DispatchEndpointMissing DispatchKind = "endpoint_missing"
	// DispatchUnavailable covers transport failures and unexpected statuses.
	DispatchUnavailable DispatchKind = "unavailable"
)

// DispatchError is the typed failure surface of order dispatch. Fields
// carries upstream per-field validation messages when Kind is rejected.
type DispatchError struct {
	Kind       DispatchKind
	StatusCode int
	Fields     map[string][]string
	Err        error
}

func (e *DispatchError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "order dispatch %s", e.Kind)
	if e.StatusCode != 0 {
		fmt.Fprintf(&b, " (status %d)", e.StatusCode)
	}
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *DispatchError) Unwrap() error { return e.Err }

// AsDispatchError unwraps err into a DispatchError if one is in the chain.
func AsDispatchError(err error) (*DispatchError, bool) {
	var dispatchErr *DispatchError
	if errors.As(err, &dispatchErr) {
		return dispatchErr, true
	}
	return nil, false
}

// PayloadItem is one order line on the wire. Amounts travel as plain
// decimal strings.
type PayloadItem struct {
	Product     string `json:"product"`
	Quantity    int    `json:"quantity"`
	ProductName string `json:"product_name"`
	Price       string `json:"price"`
	Color       string `json:"color"`
	Length      string `json:"length,omitempty"`
	MetrePrice  string `json:"metre_price,omitempty"`
	UnitPrice   string `json:"unit_price"`
}

// OrderPayload is the wire shape POSTed to the upstream shop.
type OrderPayload struct {
	Items         []PayloadItem `json:"items"`
	GuestName     string        `json:"guest_name"`
	GuestEmail    string        `json:"guest_email"`
	GuestPhone    string        `json:"guest_phone"`
	GuestWilaya   string        `json:"guest_wilaya"`
	GuestAddress  string        `json:"guest_address"`
	DeliveryPrice string        `json:"delivery_price"`
	TotalPrice    string        `json:"total_price"`
}

// Dispatcher forwards an assembled order to the upstream shop. The wire
// payload is prebuilt by the caller; implementations that add durability
// also receive the order itself. Failures are reported as *DispatchError.
type Dispatcher interface {
	Dispatch(ctx context.Context, order *domain.Order, payload OrderPayload) error
}
