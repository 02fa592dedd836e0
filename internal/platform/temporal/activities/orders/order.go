package orders

import (
	"context"
	"errors"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/temporal"

	checkoutdomain "github.com/hvmc/storefront/internal/domains/checkout/domain"
	checkoutports "github.com/hvmc/storefront/internal/domains/checkout/ports"
)

const (
	// RecordOrderActivityName persists the order durably before any upstream call.
	RecordOrderActivityName = "orders.activities.RecordOrder"
	// ForwardOrderActivityName pushes the order payload to the fulfilment shop.
	ForwardOrderActivityName = "orders.activities.ForwardOrder"
)

// OrderLog is the durable store the activities write to. The checkout
// postgres repository satisfies it.
type OrderLog interface {
	Append(ctx context.Context, order *checkoutdomain.Order) error
	MarkSent(ctx context.Context, orderID string) error
}

// Activities groups activities that operate on submitted orders.
type Activities struct {
	log        OrderLog
	dispatcher checkoutports.Dispatcher
}

// NewActivities wires the order collaborators into the Temporal activities bundle.
func NewActivities(log OrderLog, dispatcher checkoutports.Dispatcher) *Activities {
	return &Activities{log: log, dispatcher: dispatcher}
}

// RecordOrder stores the order. Safe to retry: the log append is
// idempotent per order ID.
func (a *Activities) RecordOrder(ctx context.Context, order checkoutdomain.Order) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.log == nil {
		logger.Error("order record activity not initialized", "orderId", order.ID)
		return errors.New("order record activity not initialized")
	}
	logger.Info("RecordOrder activity started", "orderId", order.ID)
	if err := a.log.Append(ctx, &order); err != nil {
		logger.Error("RecordOrder activity failed", "orderId", order.ID, "error", err)
		return err
	}
	logger.Info("RecordOrder activity completed", "orderId", order.ID)
	return nil
}

// ForwardOrderInput carries the prebuilt wire payload alongside the order
// identity so the sent flag can be recorded on success.
type ForwardOrderInput struct {
	OrderID string
	Payload checkoutports.OrderPayload
}

// ForwardOrder pushes the payload upstream. Rejections and a missing
// endpoint are permanent, so they surface as non-retryable application
// errors; unavailability stays retryable.
func (a *Activities) ForwardOrder(ctx context.Context, input ForwardOrderInput) error {
	logger := activity.GetLogger(ctx)
	if a == nil || a.dispatcher == nil {
		logger.Error("order forward activity not initialized", "orderId", input.OrderID)
		return errors.New("order forward activity not initialized")
	}
	logger.Info("ForwardOrder activity started", "orderId", input.OrderID)
	if err := a.dispatcher.Dispatch(ctx, nil, input.Payload); err != nil {
		logger.Error("ForwardOrder activity failed", "orderId", input.OrderID, "error", err)
		if dispatchErr, ok := checkoutports.AsDispatchError(err); ok {
			switch dispatchErr.Kind {
			case checkoutports.DispatchRejected, checkoutports.DispatchEndpointMissing:
				return temporal.NewNonRetryableApplicationError(
					dispatchErr.Error(), string(dispatchErr.Kind), err, dispatchErr.Fields)
			default:
				return temporal.NewApplicationError(dispatchErr.Error(), string(dispatchErr.Kind))
			}
		}
		return err
	}
	if a.log != nil {
		if err := a.log.MarkSent(ctx, input.OrderID); err != nil {
			logger.Error("ForwardOrder failed to mark order sent", "orderId", input.OrderID, "error", err)
			return err
		}
	}
	logger.Info("ForwardOrder activity completed", "orderId", input.OrderID)
	return nil
}
