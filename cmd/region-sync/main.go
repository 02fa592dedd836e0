package main

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strings"
	"time"

	deliverycatalogapi "github.com/hvmc/storefront/internal/domains/delivery/adapters/external/catalogapi"
	deliverypostgres "github.com/hvmc/storefront/internal/domains/delivery/adapters/persistence/postgres"
	"github.com/hvmc/storefront/internal/platform/migrations"
	platformpostgres "github.com/hvmc/storefront/internal/platform/postgres"
)

// region-sync pulls the wilaya delivery price table from the upstream shop
// and replaces the local copy. Run it on a schedule to keep checkout fees
// aligned with the fulfilment side.
func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	db, cleanup := platformpostgres.ConnectFromEnv(ctx, logger)
	defer cleanup()
	if db == nil {
		log.Fatal("POSTGRES_DSN not set or connection failed; cannot sync delivery prices")
	}
	if err := migrations.Run(db); err != nil {
		log.Fatalf("failed to run migrations: %v", err)
	}

	baseURL := strings.TrimSpace(os.Getenv("DELIVERY_CATALOG_URL"))
	client, err := deliverycatalogapi.NewClient(baseURL, nil)
	if err != nil {
		log.Fatalf("DELIVERY_CATALOG_URL invalid: %v", err)
	}
	regions, err := client.ListRegions(ctx)
	if err != nil {
		log.Fatalf("failed to fetch delivery prices: %v", err)
	}
	if err := deliverypostgres.NewRepository(db).ReplaceAll(ctx, regions); err != nil {
		log.Fatalf("failed to store delivery prices: %v", err)
	}
	log.Printf("delivery price sync completed: %d wilayas", len(regions))
}
