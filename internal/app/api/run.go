package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.temporal.io/sdk/client"
	temporalotel "go.temporal.io/sdk/contrib/opentelemetry"
	workerlog "go.temporal.io/sdk/log"

	storefrontserver "github.com/hvmc/storefront/server"

	cartkv "github.com/hvmc/storefront/internal/domains/cart/adapters/persistence/kv"
	cartobs "github.com/hvmc/storefront/internal/domains/cart/adapters/observability"
	cartapp "github.com/hvmc/storefront/internal/domains/cart/application"
	cartports "github.com/hvmc/storefront/internal/domains/cart/ports"

	catalogmemory "github.com/hvmc/storefront/internal/domains/catalog/adapters/memory"
	catalogobs "github.com/hvmc/storefront/internal/domains/catalog/adapters/observability"
	catalogpostgres "github.com/hvmc/storefront/internal/domains/catalog/adapters/persistence/postgres"
	catalogapp "github.com/hvmc/storefront/internal/domains/catalog/application"
	catalogports "github.com/hvmc/storefront/internal/domains/catalog/ports"

	deliverycatalogapi "github.com/hvmc/storefront/internal/domains/delivery/adapters/external/catalogapi"
	deliverymemory "github.com/hvmc/storefront/internal/domains/delivery/adapters/memory"
	deliverypostgres "github.com/hvmc/storefront/internal/domains/delivery/adapters/persistence/postgres"
	deliveryapp "github.com/hvmc/storefront/internal/domains/delivery/application"
	deliveryports "github.com/hvmc/storefront/internal/domains/delivery/ports"

	checkoutkv "github.com/hvmc/storefront/internal/domains/checkout/adapters/persistence/kv"
	checkoutobs "github.com/hvmc/storefront/internal/domains/checkout/adapters/observability"
	checkoutworkflows "github.com/hvmc/storefront/internal/domains/checkout/adapters/workflows"
	checkoutapp "github.com/hvmc/storefront/internal/domains/checkout/application"
	checkoutports "github.com/hvmc/storefront/internal/domains/checkout/ports"

	"github.com/hvmc/storefront/internal/clients/http/fulfilment"
	platformkv "github.com/hvmc/storefront/internal/platform/kv"
	"github.com/hvmc/storefront/internal/platform/migrations"
	platformobservability "github.com/hvmc/storefront/internal/platform/observability"
	platformpostgres "github.com/hvmc/storefront/internal/platform/postgres"
)

// Run boots the storefront HTTP API with observability, repositories, and
// the order dispatch pipeline wired.
func Run(ctx context.Context) error {
	const serviceName = "storefront-api"
	cfg, err := LoadConfig()
	if err != nil {
		return err
	}
	instruments, shutdown, err := platformobservability.Init(ctx, serviceName)
	if err != nil {
		return fmt.Errorf("failed to initialize observability: %w", err)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			instruments.Logger.Error("failed to shutdown observability", slog.String("error", err.Error()))
		}
	}()
	logger := instruments.Logger

	db, cleanupDB := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanupDB()
	if db != nil {
		if err := migrations.Run(db); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	store := buildStateStore(cfg, logger)

	coreCart := cartapp.NewService(cartkv.NewRepository(store))
	if err := coreCart.Load(ctx); err != nil {
		logger.Warn("failed to load persisted cart, starting empty", slog.String("error", err.Error()))
	}
	var cartService cartports.Service = cartobs.New(
		coreCart,
		cartobs.WithLogger(logger),
		cartobs.WithTracer(instruments.Tracer("internal.cart.application")),
		cartobs.WithMeter(instruments.Meter("internal.cart.application")),
	)

	var catalogRepo catalogports.Repository
	if db != nil {
		catalogRepo = catalogpostgres.NewRepository(db)
		logger.Info("catalog repository configured with postgres")
	} else {
		catalogRepo = catalogmemory.NewRepository()
	}
	var catalogService catalogports.Service = catalogobs.New(
		catalogapp.NewService(catalogRepo),
		catalogobs.WithLogger(logger),
		catalogobs.WithTracer(instruments.Tracer("internal.catalog.application")),
		catalogobs.WithMeter(instruments.Meter("internal.catalog.application")),
	)

	var deliveryRepo deliveryports.Repository
	if db != nil {
		deliveryRepo = deliverypostgres.NewRepository(db)
		logger.Info("delivery repository configured with postgres")
	} else {
		deliveryRepo = deliverymemory.NewRepository(nil)
	}
	syncDeliveryTable(ctx, cfg, logger, deliveryRepo)
	deliveryService := deliveryapp.NewService(deliveryRepo)

	dispatcher, cleanupDispatcher := buildDispatcher(cfg, instruments, logger)
	defer cleanupDispatcher()

	coreCheckout := checkoutapp.NewService(
		checkoutkv.NewHistory(store),
		checkoutkv.NewProfileStore(store),
		deliveryService,
		dispatcher,
	)
	var checkoutService checkoutports.Service = checkoutobs.New(
		coreCheckout,
		checkoutobs.WithLogger(logger),
		checkoutobs.WithTracer(instruments.Tracer("internal.checkout.application")),
		checkoutobs.WithMeter(instruments.Meter("internal.checkout.application")),
	)

	handlers := storefrontserver.ApiHandleFunctions{
		CatalogAPI:  storefrontserver.NewCatalogAPI(catalogService),
		DeliveryAPI: storefrontserver.NewDeliveryAPI(deliveryService),
		CartAPI:     storefrontserver.NewCartAPI(cartService),
		OrderAPI:    storefrontserver.NewOrderAPI(checkoutService, cartService),
	}

	router := storefrontserver.NewRouter(handlers)
	router.Use(otelgin.Middleware(serviceName))
	addr := ":" + cfg.Port
	logger.Info("Storefront API listening", slog.String("addr", addr))
	if err := router.Run(addr); err != nil {
		logger.Error("Storefront API server exited", slog.String("addr", addr), slog.String("error", err.Error()))
		return err
	}
	return nil
}

// buildStateStore prefers a file-backed store so the cart, order history,
// and profile survive restarts; without STATE_DIR the state is in-memory
// and scoped to the process.
func buildStateStore(cfg Config, logger *slog.Logger) platformkv.Store {
	if cfg.StateDir == "" {
		logger.Warn("STATE_DIR not set, session state is in-memory only")
		return platformkv.NewMemoryStore()
	}
	store, err := platformkv.NewFileStore(cfg.StateDir)
	if err != nil {
		logger.Warn("failed to open state dir, session state is in-memory only",
			slog.String("dir", cfg.StateDir), slog.String("error", err.Error()))
		return platformkv.NewMemoryStore()
	}
	logger.Info("session state persisted to disk", slog.String("dir", cfg.StateDir))
	return store
}

// syncDeliveryTable pulls the wilaya price table from the upstream catalog
// when configured. A failed sync keeps whatever table is already stored.
func syncDeliveryTable(ctx context.Context, cfg Config, logger *slog.Logger, repo deliveryports.Repository) {
	if cfg.DeliveryCatalogURL == "" {
		return
	}
	client, err := deliverycatalogapi.NewClient(cfg.DeliveryCatalogURL, nil)
	if err != nil {
		logger.Warn("delivery catalog client misconfigured", slog.String("error", err.Error()))
		return
	}
	regions, err := client.ListRegions(ctx)
	if err != nil {
		logger.Warn("failed to sync wilaya delivery prices", slog.String("error", err.Error()))
		return
	}
	if err := repo.ReplaceAll(ctx, regions); err != nil {
		logger.Warn("failed to store wilaya delivery prices", slog.String("error", err.Error()))
		return
	}
	logger.Info("wilaya delivery prices synced", slog.Int("regions", len(regions)))
}

// buildDispatcher prefers durable dispatch through Temporal and falls back
// to calling the fulfilment shop inline.
func buildDispatcher(cfg Config, instruments *platformobservability.Instruments, logger *slog.Logger) (checkoutports.Dispatcher, func()) {
	fulfilmentClient, err := fulfilment.NewClient(cfg.FulfilmentBaseURL, nil)
	if err != nil {
		logger.Warn("fulfilment client not configured, order dispatch will fail", slog.String("error", err.Error()))
	}
	inline := checkoutworkflows.NewInlineOrderDispatch(fulfilmentClient)
	temporalClient, err := connectTemporalClient(cfg, instruments)
	if err != nil {
		logger.Warn("Temporal unavailable, dispatching orders inline", slog.String("error", err.Error()))
		return inline, func() {}
	}
	logger.Info("Temporal order dispatch enabled", slog.String("namespace", cfg.TemporalNamespace))
	return checkoutworkflows.NewTemporalOrderDispatch(temporalClient), temporalClient.Close
}

func connectTemporalClient(cfg Config, instruments *platformobservability.Instruments) (client.Client, error) {
	if cfg.TemporalDisabled {
		return nil, errors.New("temporal disabled via TEMPORAL_DISABLED env")
	}
	tracerOptions := temporalotel.TracerOptions{}
	if instruments != nil {
		tracerOptions.Tracer = instruments.Tracer("temporal-client")
	}
	tracingInterceptor, err := temporalotel.NewTracingInterceptor(tracerOptions)
	if err != nil {
		return nil, err
	}
	logger := workerlog.NewStructuredLogger(effectiveLogger(instruments))
	options := client.Options{
		HostPort:  cfg.TemporalAddress,
		Namespace: cfg.TemporalNamespace,
		Logger:    logger,
	}
	options.Interceptors = append(options.Interceptors, tracingInterceptor)
	return client.Dial(options)
}

func effectiveLogger(instruments *platformobservability.Instruments) *slog.Logger {
	if instruments != nil && instruments.Logger != nil {
		return instruments.Logger
	}
	return slog.New(slog.NewTextHandler(os.Stdout, nil))
}
