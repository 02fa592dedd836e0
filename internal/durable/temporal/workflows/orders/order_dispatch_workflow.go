package orders

import (
	"go.temporal.io/sdk/workflow"

	checkoutdomain "github.com/hvmc/storefront/internal/domains/checkout/domain"
	checkoutports "github.com/hvmc/storefront/internal/domains/checkout/ports"
	"github.com/hvmc/storefront/internal/platform/temporal/sequences"
)

const (
	// OrderDispatchWorkflowName is the public identifier for registering the workflow.
	OrderDispatchWorkflowName = "orders.workflows.Dispatch"
	// OrderDispatchTaskQueue is the queue consumed by the worker processing order workflows.
	OrderDispatchTaskQueue = "ORDER_DISPATCH"
)

// OrderDispatchWorkflowInput captures the payload required to record and
// forward a submitted order.
type OrderDispatchWorkflowInput struct {
	Order   checkoutdomain.Order
	Payload checkoutports.OrderPayload
	TraceID string
}

// OrderDispatchWorkflow orchestrates the activities that make an order
// durable locally and deliver it to the fulfilment shop.
func OrderDispatchWorkflow(ctx workflow.Context, input OrderDispatchWorkflowInput) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("OrderDispatchWorkflow started", withTraceID(input.TraceID, "orderId", input.Order.ID)...)
	if err := sequences.RunOrderDispatchSequence(ctx, input.Order, input.Payload); err != nil {
		logger.Error("OrderDispatchWorkflow failed", withTraceID(input.TraceID, "orderId", input.Order.ID, "error", err)...)
		return err
	}
	logger.Info("OrderDispatchWorkflow completed", withTraceID(input.TraceID, "orderId", input.Order.ID)...)
	return nil
}

func withTraceID(traceID string, keyvals ...interface{}) []interface{} {
	if traceID == "" {
		return keyvals
	}
	return append(keyvals, "traceId", traceID)
}
