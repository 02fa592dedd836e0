// Package fulfilment is the HTTP client for the upstream shop that fulfils
// orders. It implements the checkout Dispatcher port and maps every
// failure mode into the typed dispatch error surface.
package fulfilment

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hvmc/storefront/internal/domains/checkout/domain"
	"github.com/hvmc/storefront/internal/domains/checkout/ports"
)

var _ ports.Dispatcher = (*Client)(nil)

// Client posts assembled orders to the upstream shop.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient instantiates the fulfilment client with sane defaults.
func NewClient(baseURL string, httpClient *http.Client) (*Client, error) {
	baseURL = strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if baseURL == "" {
		return nil, errors.New("fulfilment base URL is required")
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 15 * time.Second}
	}
	return &Client{baseURL: baseURL, httpClient: httpClient}, nil
}

// Dispatch POSTs the order payload. Any 2xx counts as accepted. A 400 is a
// rejection carrying per-field messages, a 404 means the order endpoint is
// missing upstream, and everything else, transport errors included, is
// reported as unavailable. The order itself is not used here.
func (c *Client) Dispatch(ctx context.Context, _ *domain.Order, payload ports.OrderPayload) error {
	if c == nil || c.httpClient == nil {
		return errors.New("fulfilment client not configured")
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode order payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/orders/", bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &ports.DispatchError{Kind: ports.DispatchUnavailable, Err: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return nil
	case resp.StatusCode == http.StatusBadRequest:
		return &ports.DispatchError{
			Kind:       ports.DispatchRejected,
			StatusCode: resp.StatusCode,
			Fields:     decodeFieldErrors(resp.Body),
		}
	case resp.StatusCode == http.StatusNotFound:
		return &ports.DispatchError{Kind: ports.DispatchEndpointMissing, StatusCode: resp.StatusCode}
	default:
		return &ports.DispatchError{Kind: ports.DispatchUnavailable, StatusCode: resp.StatusCode}
	}
}

// decodeFieldErrors reads the upstream validation body. Each field may map
// to one message or a list; both shapes collapse into a message list. An
// unreadable body yields no field detail, which is still a rejection.
func decodeFieldErrors(body io.Reader) map[string][]string {
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(body).Decode(&raw); err != nil {
		return nil
	}
	fields := make(map[string][]string, len(raw))
	for field, blob := range raw {
		var list []string
		if err := json.Unmarshal(blob, &list); err == nil {
			fields[field] = list
			continue
		}
		var single string
		if err := json.Unmarshal(blob, &single); err == nil {
			fields[field] = []string{single}
		}
	}
	if len(fields) == 0 {
		return nil
	}
	return fields
}
