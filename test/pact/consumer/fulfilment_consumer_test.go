//go:build pact
// +build pact

package consumer_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"
	"time"

	pacttest "github.com/hvmc/storefront/test/pact"

	pactconsumer "github.com/pact-foundation/pact-go/v2/consumer"
	pactlog "github.com/pact-foundation/pact-go/v2/log"
	"github.com/pact-foundation/pact-go/v2/matchers"
	"github.com/stretchr/testify/require"

	"github.com/hvmc/storefront/internal/clients/http/fulfilment"
	checkoutports "github.com/hvmc/storefront/internal/domains/checkout/ports"
)

func examplePayload() checkoutports.OrderPayload {
	return checkoutports.OrderPayload{
		Items: []checkoutports.PayloadItem{
			{
				Product:     "42",
				Quantity:    2,
				ProductName: "Câble souple 3G2.5",
				Price:       "720.00",
				Color:       "#ff0000",
				Length:      "3",
				MetrePrice:  "120.00",
				UnitPrice:   "120.00",
			},
		},
		GuestName:     "Amine B",
		GuestEmail:    "amine@example.com",
		GuestPhone:    "0550000000",
		GuestWilaya:   "Alger",
		GuestAddress:  "12 rue Didouche",
		DeliveryPrice: "400.00",
		TotalPrice:    "1120.00",
	}
}

func orderBodyMatcher() matchers.Map {
	return matchers.Map{
		"items": matchers.ArrayMinLike(matchers.Map{
			"product":      matchers.Like("42"),
			"quantity":     matchers.Like(2),
			"product_name": matchers.Like("Câble souple 3G2.5"),
			"price":        matchers.Decimal("720.00"),
			"unit_price":   matchers.Decimal("120.00"),
		}, 1),
		"guest_name":     matchers.Like("Amine B"),
		"guest_phone":    matchers.Like("0550000000"),
		"guest_wilaya":   matchers.Like("Alger"),
		"delivery_price": matchers.Decimal("400.00"),
		"total_price":    matchers.Decimal("1120.00"),
	}
}

func newPact(t *testing.T) *pactconsumer.V2HTTPMockProvider {
	t.Helper()
	pactlog.SetLogLevel("INFO")
	pact, err := pactconsumer.NewV2Pact(pactconsumer.MockHTTPProviderConfig{
		Consumer: pacttest.ConsumerName,
		Provider: pacttest.ProviderName,
		PactDir:  pacttest.PactDir(t),
		LogDir:   pacttest.LogDir(t),
	})
	require.NoError(t, err)
	return pact
}

func dispatchAgainst(config pactconsumer.MockServerConfig, payload checkoutports.OrderPayload) error {
	host := config.Host
	if host == "" {
		host = "localhost"
	}
	baseURL := fmt.Sprintf("http://%s:%d", host, config.Port)
	client, err := fulfilment.NewClient(baseURL, &http.Client{Timeout: 10 * time.Second})
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return client.Dispatch(ctx, nil, payload)
}

func TestOrderSubmissionContract(t *testing.T) {
	pact := newPact(t)

	pact.AddInteraction().
		Given(pacttest.StateOrdersAccepted).
		UponReceiving("a valid guest order").
		WithRequest("POST", "/orders/", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
			b.JSONBody(orderBodyMatcher())
		}).
		WillRespondWith(http.StatusCreated, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.Regex("application/json", "application\\/json(?:;\\s?charset=utf-8)?"))
			b.JSONBody(matchers.Map{"id": matchers.Like(9001)})
		})

	err := pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		return dispatchAgainst(config, examplePayload())
	})
	require.NoError(t, err)
}

func TestOrderRejectionContract(t *testing.T) {
	pact := newPact(t)

	rejected := examplePayload()
	rejected.GuestPhone = ""

	pact.AddInteraction().
		Given(pacttest.StateOrdersRejecting).
		UponReceiving("an order with a missing guest phone").
		WithRequest("POST", "/orders/", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
		}).
		WillRespondWith(http.StatusBadRequest, func(b *pactconsumer.V2ResponseBuilder) {
			b.Header("Content-Type", matchers.Regex("application/json", "application\\/json(?:;\\s?charset=utf-8)?"))
			b.JSONBody(matchers.Map{
				"guest_phone": matchers.ArrayMinLike("This field may not be blank.", 1),
			})
		})

	err := pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		err := dispatchAgainst(config, rejected)
		var dispatchErr *checkoutports.DispatchError
		if !errors.As(err, &dispatchErr) {
			return fmt.Errorf("expected a dispatch error, got %v", err)
		}
		if dispatchErr.Kind != checkoutports.DispatchRejected {
			return fmt.Errorf("expected a rejection, got %s", dispatchErr.Kind)
		}
		if len(dispatchErr.Fields["guest_phone"]) == 0 {
			return fmt.Errorf("expected guest_phone field messages, got %v", dispatchErr.Fields)
		}
		return nil
	})
	require.NoError(t, err)
}

func TestOrderEndpointMissingContract(t *testing.T) {
	pact := newPact(t)

	pact.AddInteraction().
		Given(pacttest.StateOrdersMissing).
		UponReceiving("an order sent to an undeployed endpoint").
		WithRequest("POST", "/orders/", func(b *pactconsumer.V2RequestBuilder) {
			b.Header("Content-Type", matchers.S("application/json"))
		}).
		WillRespondWith(http.StatusNotFound, func(b *pactconsumer.V2ResponseBuilder) {
			b.JSONBody(matchers.Map{"detail": matchers.Like("Not found.")})
		})

	err := pact.ExecuteTest(t, func(config pactconsumer.MockServerConfig) error {
		err := dispatchAgainst(config, examplePayload())
		var dispatchErr *checkoutports.DispatchError
		if !errors.As(err, &dispatchErr) {
			return fmt.Errorf("expected a dispatch error, got %v", err)
		}
		if dispatchErr.Kind != checkoutports.DispatchEndpointMissing {
			return fmt.Errorf("expected endpoint_missing, got %s", dispatchErr.Kind)
		}
		return nil
	})
	require.NoError(t, err)
}
