//go:build pact
// +build pact

package pacttest

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

const (
	ProviderName = "fulfilment-shop"
	ConsumerName = "storefront-api"

	StateOrdersAccepted  = "orders endpoint accepts submissions"
	StateOrdersRejecting = "orders endpoint rejects invalid guests"
	StateOrdersMissing   = "orders endpoint is not deployed"
)

// PactDir returns the workspace-level directory for generated pact files.
func PactDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "pacts")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact dir: %v", err)
	}
	return dir
}

// PactFile returns the canonical pact file path for the storefront consumer.
func PactFile(t testing.TB) string {
	t.Helper()
	return filepath.Join(PactDir(t), ConsumerName+"-"+ProviderName+".json")
}

// LogDir returns the log output directory for pact-go.
func LogDir(t testing.TB) string {
	t.Helper()
	dir := filepath.Join(projectRoot(t), "bin", "pact-logs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatalf("create pact log dir: %v", err)
	}
	return dir
}

// ExampleOrderPayload provides stable order data for pact interactions.
func ExampleOrderPayload() map[string]any {
	return map[string]any{
		"items": []map[string]any{
			{
				"product":      "42",
				"quantity":     2,
				"product_name": "Câble souple 3G2.5",
				"price":        "720.00",
				"color":        "#ff0000",
				"length":       "3",
				"metre_price":  "120.00",
				"unit_price":   "120.00",
			},
		},
		"guest_name":     "Amine B",
		"guest_email":    "amine@example.com",
		"guest_phone":    "0550000000",
		"guest_wilaya":   "Alger",
		"guest_address":  "12 rue Didouche",
		"delivery_price": "400.00",
		"total_price":    "1120.00",
	}
}

// projectRoot walks up from this file to the workspace root.
func projectRoot(t testing.TB) string {
	t.Helper()
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatal("cannot determine caller for pact paths")
	}
	return filepath.Clean(filepath.Join(filepath.Dir(file), "..", ".."))
}
