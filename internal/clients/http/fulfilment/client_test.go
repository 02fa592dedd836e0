package fulfilment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hvmc/storefront/internal/domains/checkout/ports"
)

func samplePayload() ports.OrderPayload {
	return ports.OrderPayload{
		Items: []ports.PayloadItem{
			{
				Product:     "7",
				Quantity:    2,
				ProductName: "Câble souple 2.5mm",
				Price:       "720.00",
				MetrePrice:  "120.00",
				Length:      "3",
				UnitPrice:   "0.00",
			},
		},
		GuestName:     "Amine B",
		GuestPhone:    "0550 12 34 56",
		GuestWilaya:   "Algiers",
		DeliveryPrice: "400.00",
		TotalPrice:    "1120.00",
	}
}

func TestDispatch_AcceptedOn2xx(t *testing.T) {
	var received ports.OrderPayload
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/orders/", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	require.NoError(t, client.Dispatch(context.Background(), nil, samplePayload()))
	require.Equal(t, "Amine B", received.GuestName)
	require.Len(t, received.Items, 1)
	require.Equal(t, "720.00", received.Items[0].Price)
}

func TestDispatch_RejectedCarriesFieldMessages(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"guest_phone":["This field may not be blank."],"items":"invalid product"}`))
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	err = client.Dispatch(context.Background(), nil, samplePayload())
	dispatchErr, ok := ports.AsDispatchError(err)
	require.True(t, ok)
	require.Equal(t, ports.DispatchRejected, dispatchErr.Kind)
	require.Equal(t, http.StatusBadRequest, dispatchErr.StatusCode)
	require.Equal(t, []string{"This field may not be blank."}, dispatchErr.Fields["guest_phone"])
	require.Equal(t, []string{"invalid product"}, dispatchErr.Fields["items"])
}

func TestDispatch_EndpointMissingOn404(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	err = client.Dispatch(context.Background(), nil, samplePayload())
	dispatchErr, ok := ports.AsDispatchError(err)
	require.True(t, ok)
	require.Equal(t, ports.DispatchEndpointMissing, dispatchErr.Kind)
}

func TestDispatch_UnavailableOnServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client, err := NewClient(server.URL, server.Client())
	require.NoError(t, err)

	err = client.Dispatch(context.Background(), nil, samplePayload())
	dispatchErr, ok := ports.AsDispatchError(err)
	require.True(t, ok)
	require.Equal(t, ports.DispatchUnavailable, dispatchErr.Kind)
	require.Equal(t, http.StatusInternalServerError, dispatchErr.StatusCode)
}

func TestDispatch_UnavailableOnTransportError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // refuse connections

	client, err := NewClient(server.URL, nil)
	require.NoError(t, err)

	err = client.Dispatch(context.Background(), nil, samplePayload())
	dispatchErr, ok := ports.AsDispatchError(err)
	require.True(t, ok)
	require.Equal(t, ports.DispatchUnavailable, dispatchErr.Kind)
}

func TestNewClient_RequiresBaseURL(t *testing.T) {
	_, err := NewClient("   ", nil)
	require.Error(t, err)
}
