package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"time"

	"go.temporal.io/sdk/activity"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"
	"go.temporal.io/sdk/worker"
	"go.temporal.io/sdk/workflow"

	"github.com/hvmc/storefront/internal/clients/http/fulfilment"
	checkoutpostgres "github.com/hvmc/storefront/internal/domains/checkout/adapters/persistence/postgres"
	orderworkflows "github.com/hvmc/storefront/internal/durable/temporal/workflows/orders"
	"github.com/hvmc/storefront/internal/platform/migrations"
	platformobservability "github.com/hvmc/storefront/internal/platform/observability"
	platformpostgres "github.com/hvmc/storefront/internal/platform/postgres"
	orderactivities "github.com/hvmc/storefront/internal/platform/temporal/activities/orders"
)

func main() {
	ctx := context.Background()
	const serviceName = "storefront-worker"
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		log.Fatalf("failed to initialize observability: %v", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		logger.Error("POSTGRES_DSN not set or connection failed; the worker needs the order log")
		os.Exit(1)
	}
	if err := migrations.Run(db); err != nil {
		logger.Error("failed to run migrations", slog.String("error", err.Error()))
		os.Exit(1)
	}
	orderLog := checkoutpostgres.NewRepository(db)

	dispatcher, err := fulfilment.NewClient(os.Getenv("FULFILMENT_BASE_URL"), nil)
	if err != nil {
		logger.Error("fulfilment client not configured", slog.String("error", err.Error()))
		os.Exit(1)
	}
	activities := orderactivities.NewActivities(orderLog, dispatcher)

	tracerOptions := temporalotel.TracerOptions{Tracer: instruments.Tracer("temporal-worker")}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		logger.Error("failed to configure Temporal tracing interceptor", slog.String("error", err.Error()))
		os.Exit(1)
	}
	clientOptions := client.Options{
		HostPort:  envOrDefault("TEMPORAL_ADDRESS", client.DefaultHostPort),
		Namespace: envOrDefault("TEMPORAL_NAMESPACE", client.DefaultNamespace),
		Logger:    workerlog.NewStructuredLogger(logger),
	}
	clientOptions.Interceptors = append(clientOptions.Interceptors, tracingInterceptor)
	temporalClient, err := client.Dial(clientOptions)
	if err != nil {
		logger.Error("failed to create Temporal client", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer temporalClient.Close()

	w := worker.New(temporalClient, orderworkflows.OrderDispatchTaskQueue, worker.Options{})
	w.RegisterWorkflowWithOptions(orderworkflows.OrderDispatchWorkflow, workflow.RegisterOptions{Name: orderworkflows.OrderDispatchWorkflowName})
	w.RegisterActivityWithOptions(activities.RecordOrder, activity.RegisterOptions{Name: orderactivities.RecordOrderActivityName})
	w.RegisterActivityWithOptions(activities.ForwardOrder, activity.RegisterOptions{Name: orderactivities.ForwardOrderActivityName})

	logger.Info("worker listening", slog.String("taskQueue", orderworkflows.OrderDispatchTaskQueue), slog.String("namespace", clientOptions.Namespace))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Error("Temporal worker exited with error", slog.String("error", err.Error()))
		return
	}
	logger.Info("Temporal worker stopped")
}

func envOrDefault(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
