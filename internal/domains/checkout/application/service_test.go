package application

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"

	cartdomain "github.com/hvmc/storefront/internal/domains/cart/domain"
	"github.com/hvmc/storefront/internal/domains/checkout/domain"
	"github.com/hvmc/storefront/internal/domains/checkout/ports"
)

type fakeHistory struct {
	orders []*domain.Order
	fail   error
}

func (f *fakeHistory) Append(_ context.Context, order *domain.Order) error {
	if f.fail != nil {
		return f.fail
	}
	f.orders = append(f.orders, order)
	return nil
}

func (f *fakeHistory) List(_ context.Context) ([]*domain.Order, error) {
	return f.orders, nil
}

type fakeProfiles struct {
	profile *domain.Customer
}

func (f *fakeProfiles) Load(_ context.Context) (*domain.Customer, error) {
	return f.profile, nil
}

func (f *fakeProfiles) Save(_ context.Context, customer domain.Customer) error {
	f.profile = &customer
	return nil
}

type fakeFees struct {
	fee   decimal.Decimal
	calls int
}

func (f *fakeFees) FeeFor(_ context.Context, _ string) (decimal.Decimal, error) {
	f.calls++
	return f.fee, nil
}

type fakeDispatcher struct {
	payloads []ports.OrderPayload
	fail     error
}

func (f *fakeDispatcher) Dispatch(_ context.Context, _ *domain.Order, payload ports.OrderPayload) error {
	if f.fail != nil {
		return f.fail
	}
	f.payloads = append(f.payloads, payload)
	return nil
}

func newTestService(history *fakeHistory, profiles *fakeProfiles, fees *fakeFees, dispatcher *fakeDispatcher) *Service {
	var seq int
	return NewService(history, profiles, fees, dispatcher,
		WithIDGenerator(func() string {
			seq++
			return fmt.Sprintf("order-%d", seq)
		}),
		WithClock(func() time.Time { return time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC) }),
	)
}

func submitInput() ports.SubmitInput {
	return ports.SubmitInput{
		Customer: domain.Customer{
			Name:   "Amine B",
			Phone:  "0550 12 34 56",
			Email:  "amine@example.com",
			Wilaya: "Algiers",
		},
		Items: []cartdomain.LineItem{
			{
				ProductID:  "7",
				Name:       "Câble souple 2.5mm",
				MetrePrice: decimal.NewFromInt(120),
				Length:     decimal.NewFromInt(3),
				Quantity:   2,
			},
			{ProductID: "12", Name: "Disjoncteur 16A", UnitPrice: decimal.NewFromInt(950), Quantity: 1},
		},
	}
}

func TestSubmit_AssemblesRecordsAndDispatches(t *testing.T) {
	history := &fakeHistory{}
	profiles := &fakeProfiles{}
	fees := &fakeFees{fee: decimal.NewFromInt(400)}
	dispatcher := &fakeDispatcher{}
	svc := newTestService(history, profiles, fees, dispatcher)

	order, err := svc.Submit(context.Background(), submitInput())
	require.NoError(t, err)
	require.True(t, order.Sent)
	require.Equal(t, "2070", order.GrandTotal.String())
	require.Equal(t, 1, fees.calls, "one fee lookup per batch")

	require.Len(t, history.orders, 1)
	require.NotNil(t, profiles.profile)
	require.Equal(t, "amine@example.com", profiles.profile.Email)

	require.Len(t, dispatcher.payloads, 1)
	payload := dispatcher.payloads[0]
	require.Equal(t, "Amine B", payload.GuestName)
	require.Equal(t, "Algiers", payload.GuestWilaya)
	require.Equal(t, "400.00", payload.DeliveryPrice)
	require.Equal(t, "2070.00", payload.TotalPrice)
	require.Len(t, payload.Items, 2)
	require.Equal(t, "720.00", payload.Items[0].Price)
	require.Equal(t, "120.00", payload.Items[0].MetrePrice)
	require.Equal(t, "3", payload.Items[0].Length)
	require.Equal(t, "950.00", payload.Items[1].Price)
	require.Empty(t, payload.Items[1].MetrePrice)
}

func TestSubmit_ValidationFailsBeforeSideEffects(t *testing.T) {
	history := &fakeHistory{}
	profiles := &fakeProfiles{}
	dispatcher := &fakeDispatcher{}
	svc := newTestService(history, profiles, &fakeFees{}, dispatcher)

	input := submitInput()
	input.Customer.Phone = ""

	_, err := svc.Submit(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.Empty(t, history.orders)
	require.Nil(t, profiles.profile)
	require.Empty(t, dispatcher.payloads)
}

func TestSubmit_MetreLineWithoutLengthRejected(t *testing.T) {
	svc := newTestService(&fakeHistory{}, &fakeProfiles{}, &fakeFees{}, &fakeDispatcher{})

	input := submitInput()
	input.Items = []cartdomain.LineItem{
		{ProductID: "7", MetrePrice: decimal.NewFromInt(120), Quantity: 1},
	}

	_, err := svc.Submit(context.Background(), input)
	require.ErrorIs(t, err, ErrInvalidInput)
	require.ErrorIs(t, err, domain.ErrLengthRequired)
}

func TestSubmit_HistorySurvivesDispatchFailure(t *testing.T) {
	history := &fakeHistory{}
	dispatchErr := &ports.DispatchError{Kind: ports.DispatchUnavailable, StatusCode: 503}
	svc := newTestService(history, &fakeProfiles{}, &fakeFees{fee: decimal.NewFromInt(400)}, &fakeDispatcher{fail: dispatchErr})

	order, err := svc.Submit(context.Background(), submitInput())
	require.Error(t, err)

	dispatchFailure, ok := ports.AsDispatchError(err)
	require.True(t, ok)
	require.Equal(t, ports.DispatchUnavailable, dispatchFailure.Kind)

	require.NotNil(t, order, "locally recorded order is returned alongside the dispatch error")
	require.False(t, order.Sent)
	require.Len(t, history.orders, 1, "history write is not rolled back")
}

func TestOrders_FilteredByProfileEmail(t *testing.T) {
	history := &fakeHistory{}
	profiles := &fakeProfiles{}
	svc := newTestService(history, profiles, &fakeFees{}, &fakeDispatcher{})

	mine, err := svc.Submit(context.Background(), submitInput())
	require.NoError(t, err)

	other := submitInput()
	other.Customer.Email = "someone@example.com"
	_, err = svc.Submit(context.Background(), other)
	require.NoError(t, err)

	// profile now holds the other customer; switch back
	require.NoError(t, svc.SaveProfile(context.Background(), domain.Customer{
		Name: "Amine B", Phone: "0550", Email: "amine@example.com", Wilaya: "Algiers",
	}))

	orders, err := svc.Orders(context.Background())
	require.NoError(t, err)
	require.Len(t, orders, 1)
	require.Equal(t, mine.ID, orders[0].ID)
}

func TestOrders_BlankProfileEmailYieldsEmptyHistory(t *testing.T) {
	history := &fakeHistory{orders: []*domain.Order{{ID: "x"}}}
	svc := newTestService(history, &fakeProfiles{}, &fakeFees{}, &fakeDispatcher{})

	orders, err := svc.Orders(context.Background())
	require.NoError(t, err)
	require.Empty(t, orders)
}
