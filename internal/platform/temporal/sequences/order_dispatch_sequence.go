package sequences

import (
	"time"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	checkoutdomain "github.com/hvmc/storefront/internal/domains/checkout/domain"
	checkoutports "github.com/hvmc/storefront/internal/domains/checkout/ports"
	orderactivities "github.com/hvmc/storefront/internal/platform/temporal/activities/orders"
)

// RunOrderDispatchSequence executes the ordered set of activities needed
// to record and forward a submitted order. Recording retries freely;
// forwarding retries only while the upstream is unavailable.
func RunOrderDispatchSequence(ctx workflow.Context, order checkoutdomain.Order, payload checkoutports.OrderPayload) error {
	logger := workflow.GetLogger(ctx)
	logger.Info("order dispatch sequence started", "orderId", order.ID)

	recordOptions := workflow.ActivityOptions{
		StartToCloseTimeout: time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    10 * time.Second,
			MaximumAttempts:    5,
		},
	}
	forwardOptions := workflow.ActivityOptions{
		StartToCloseTimeout: 30 * time.Second,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    2 * time.Second,
			BackoffCoefficient: 2.0,
			MaximumInterval:    30 * time.Second,
			MaximumAttempts:    5,
			NonRetryableErrorTypes: []string{
				string(checkoutports.DispatchRejected),
				string(checkoutports.DispatchEndpointMissing),
			},
		},
	}

	if err := workflow.ExecuteActivity(
		workflow.WithActivityOptions(ctx, recordOptions),
		orderactivities.RecordOrderActivityName, order,
	).Get(ctx, nil); err != nil {
		logger.Error("order dispatch sequence record failed", "orderId", order.ID, "error", err)
		return err
	}
	logger.Info("order dispatch sequence recorded", "orderId", order.ID)

	forwardInput := orderactivities.ForwardOrderInput{OrderID: order.ID, Payload: payload}
	if err := workflow.ExecuteActivity(
		workflow.WithActivityOptions(ctx, forwardOptions),
		orderactivities.ForwardOrderActivityName, forwardInput,
	).Get(ctx, nil); err != nil {
		logger.Error("order dispatch sequence forward failed", "orderId", order.ID, "error", err)
		return err
	}
	logger.Info("order dispatch sequence forwarded", "orderId", order.ID)
	return nil
}
