// Package catalogapi fetches the wilaya delivery price table from the
// upstream delivery catalog. Used by the region-sync job to refresh the
// local table; the engine itself never calls the network to resolve a fee.
package catalogapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/hvmc/storefront/internal/domains/delivery/domain"
	"github.com/hvmc/storefront/internal/domains/pricing"
)

// Client talks to the upstream delivery catalog.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient instantiates the catalog client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("delivery catalog base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

// regionPayload tolerates both upstream shapes: the price table endpoint
// uses {wilaya, price}, the admin endpoint uses {name, delivery_price}.
type regionPayload struct {
	ID            int64           `json:"id"`
	Wilaya        string          `json:"wilaya"`
	Name          string          `json:"name"`
	Price         json.RawMessage `json:"price"`
	DeliveryPrice json.RawMessage `json:"delivery_price"`
}

// ListRegions fetches the full wilaya price table.
func (c *Client) ListRegions(ctx context.Context) ([]domain.Region, error) {
	if c == nil || c.httpClient == nil {
		return nil, errors.New("delivery catalog client not configured")
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/delivery/prices/", nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call delivery catalog: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("delivery catalog unexpected status: %s", resp.Status)
	}
	var payload []regionPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode delivery catalog response: %w", err)
	}
	regions := make([]domain.Region, 0, len(payload))
	for _, entry := range payload {
		regions = append(regions, entry.toDomain())
	}
	return regions, nil
}

func (p regionPayload) toDomain() domain.Region {
	name := p.Name
	if name == "" {
		name = p.Wilaya
	}
	raw := p.DeliveryPrice
	if len(raw) == 0 {
		raw = p.Price
	}
	return domain.Region{
		ID:            p.ID,
		Name:          name,
		DeliveryPrice: pricing.Normalize(strings.Trim(string(raw), `"`)),
	}
}
