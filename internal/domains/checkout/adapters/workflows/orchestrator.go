package workflows

import (
	"context"
	"errors"
	"fmt"
	"time"

	oteltrace "go.opentelemetry.io/otel/trace"
	"go.temporal.io/api/serviceerror"
	"go.temporal.io/sdk/client"
	"go.temporal.io/sdk/temporal"

	"github.com/hvmc/storefront/internal/domains/checkout/domain"
	"github.com/hvmc/storefront/internal/domains/checkout/ports"
	orderworkflows "github.com/hvmc/storefront/internal/durable/temporal/workflows/orders"
)

var (
	_ ports.Dispatcher = (*TemporalOrderDispatch)(nil)
	_ ports.Dispatcher = (*InlineOrderDispatch)(nil)
)

// TemporalOrderDispatch runs order dispatch as a durable workflow.
type TemporalOrderDispatch struct {
	client    client.Client
	taskQueue string
}

// NewTemporalOrderDispatch wires a Temporal client into the dispatcher.
func NewTemporalOrderDispatch(c client.Client) *TemporalOrderDispatch {
	return &TemporalOrderDispatch{client: c, taskQueue: orderworkflows.OrderDispatchTaskQueue}
}

// Dispatch starts the dispatch workflow keyed by order ID and waits for
// its outcome. Re-dispatching the same order attaches to the running
// workflow instead of starting a second one.
func (d *TemporalOrderDispatch) Dispatch(ctx context.Context, order *domain.Order, payload ports.OrderPayload) error {
	if d == nil || d.client == nil {
		return errors.New("temporal order dispatch not configured")
	}
	if order == nil {
		return errors.New("order is nil")
	}
	traceComponent := workflowTraceComponent(ctx)
	options := client.StartWorkflowOptions{
		ID:        fmt.Sprintf("order-dispatch-%s", order.ID),
		TaskQueue: d.taskQueue,
	}
	input := orderworkflows.OrderDispatchWorkflowInput{Order: *order, Payload: payload, TraceID: traceComponent}
	run, err := d.client.ExecuteWorkflow(ctx, options, orderworkflows.OrderDispatchWorkflowName, input)
	if err != nil {
		var alreadyStarted *serviceerror.WorkflowExecutionAlreadyStarted
		if errors.As(err, &alreadyStarted) {
			existingRun := d.client.GetWorkflow(ctx, options.ID, alreadyStarted.RunId)
			return mapWorkflowError(existingRun.Get(ctx, nil))
		}
		return err
	}
	return mapWorkflowError(run.Get(ctx, nil))
}

// mapWorkflowError rebuilds the typed dispatch error from the application
// error the forward activity raised, so callers see the same surface with
// and without Temporal in the path.
func mapWorkflowError(err error) error {
	if err == nil {
		return nil
	}
	var appErr *temporal.ApplicationError
	if !errors.As(err, &appErr) {
		return err
	}
	kind := ports.DispatchKind(appErr.Type())
	switch kind {
	case ports.DispatchRejected, ports.DispatchEndpointMissing, ports.DispatchUnavailable:
	default:
		return err
	}
	dispatchErr := &ports.DispatchError{Kind: kind, Err: err}
	if appErr.HasDetails() {
		var fields map[string][]string
		if detailsErr := appErr.Details(&fields); detailsErr == nil {
			dispatchErr.Fields = fields
		}
	}
	return dispatchErr
}

// InlineOrderDispatch forwards directly through the wrapped dispatcher,
// useful for tests or when Temporal is unreachable.
type InlineOrderDispatch struct {
	inner ports.Dispatcher
}

// NewInlineOrderDispatch wraps a plain dispatcher for synchronous execution.
func NewInlineOrderDispatch(inner ports.Dispatcher) *InlineOrderDispatch {
	return &InlineOrderDispatch{inner: inner}
}

// Dispatch delegates to the wrapped dispatcher without durable orchestration.
func (d *InlineOrderDispatch) Dispatch(ctx context.Context, order *domain.Order, payload ports.OrderPayload) error {
	if d == nil || d.inner == nil {
		return errors.New("inline order dispatch not configured")
	}
	return d.inner.Dispatch(ctx, order, payload)
}

func workflowTraceComponent(ctx context.Context) string {
	if traceID := workflowTraceID(ctx); traceID != "" {
		return traceID
	}
	return fmt.Sprintf("fallback-%d", time.Now().UnixNano())
}

func workflowTraceID(ctx context.Context) string {
	span := oteltrace.SpanFromContext(ctx)
	if span == nil {
		return ""
	}
	spanCtx := span.SpanContext()
	if !spanCtx.IsValid() {
		return ""
	}
	traceID := spanCtx.TraceID()
	if !traceID.IsValid() {
		return ""
	}
	return traceID.String()
}
