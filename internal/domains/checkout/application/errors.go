package application

import (
	"errors"
	"fmt"

	cartdomain "github.com/hvmc/storefront/internal/domains/cart/domain"
	"github.com/hvmc/storefront/internal/domains/checkout/domain"
)

var (
	// ErrInvalidInput signals the submission violated a checkout invariant.
	ErrInvalidInput = errors.New("invalid order input")
)

func mapError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, domain.ErrEmptyOrder) ||
		errors.Is(err, domain.ErrMissingName) ||
		errors.Is(err, domain.ErrMissingPhone) ||
		errors.Is(err, domain.ErrMissingWilaya) ||
		errors.Is(err, domain.ErrLengthRequired) ||
		errors.Is(err, cartdomain.ErrEmptyProductID) ||
		errors.Is(err, cartdomain.ErrInvalidQuantity) {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	return err
}
