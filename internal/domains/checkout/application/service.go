package application

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hvmc/storefront/internal/domains/checkout/domain"
	"github.com/hvmc/storefront/internal/domains/checkout/ports"
)

// Service assembles, records, and dispatches orders.
//
// Submit runs strictly in this sequence: validate, reprice, total, save
// profile, append to local history, dispatch. The history append precedes
// dispatch and is never rolled back, so a failed dispatch still leaves the
// order visible locally.
type Service struct {
	history    ports.History
	profiles   ports.ProfileStore
	fees       ports.FeeResolver
	dispatcher ports.Dispatcher

	newID func() string
	now   func() time.Time
}

type Option func(*Service)

// WithIDGenerator overrides order ID generation, for tests.
func WithIDGenerator(newID func() string) Option {
	return func(s *Service) {
		s.newID = newID
	}
}

// WithClock overrides the timestamp source, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

func NewService(history ports.History, profiles ports.ProfileStore, fees ports.FeeResolver, dispatcher ports.Dispatcher, opts ...Option) *Service {
	s := &Service{
		history:    history,
		profiles:   profiles,
		fees:       fees,
		dispatcher: dispatcher,
		newID:      uuid.NewString,
		now:        time.Now,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Submit assembles the order and forwards it upstream. The returned order
// is always the locally recorded one; a *ports.DispatchError alongside it
// means the upstream leg failed after the local write.
func (s *Service) Submit(ctx context.Context, input ports.SubmitInput) (*domain.Order, error) {
	fee, err := s.fees.FeeFor(ctx, input.Customer.Wilaya)
	if err != nil {
		return nil, err
	}
	order, err := domain.NewOrder(s.newID(), input.Customer, input.Items, fee, s.now())
	if err != nil {
		return nil, mapError(err)
	}

	if err := s.profiles.Save(ctx, input.Customer); err != nil {
		return nil, err
	}
	if err := s.history.Append(ctx, order); err != nil {
		return nil, err
	}

	if err := s.dispatcher.Dispatch(ctx, order, toPayload(order)); err != nil {
		return order, err
	}
	sent := order.MarkSent()
	return &sent, nil
}

// Orders returns the local history scoped to the stored profile email.
// Without a saved email the history is empty.
func (s *Service) Orders(ctx context.Context) ([]*domain.Order, error) {
	profile, err := s.profiles.Load(ctx)
	if err != nil {
		return nil, err
	}
	if profile == nil || profile.Email == "" {
		return nil, nil
	}
	all, err := s.history.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]*domain.Order, 0, len(all))
	for _, order := range all {
		if order.Customer.Email == profile.Email {
			out = append(out, order)
		}
	}
	return out, nil
}

// Profile returns the stored customer profile, or nil when none exists.
func (s *Service) Profile(ctx context.Context) (*domain.Customer, error) {
	return s.profiles.Load(ctx)
}

// SaveProfile stores the customer profile used to prefill checkout.
func (s *Service) SaveProfile(ctx context.Context, customer domain.Customer) error {
	return s.profiles.Save(ctx, customer)
}

func toPayload(order *domain.Order) ports.OrderPayload {
	items := make([]ports.PayloadItem, 0, len(order.Items))
	for _, item := range order.Items {
		payloadItem := ports.PayloadItem{
			Product:     item.ProductID,
			Quantity:    item.Quantity,
			ProductName: item.Name,
			Price:       item.Price.StringFixed(2),
			Color:       item.Color,
			UnitPrice:   item.UnitPrice.StringFixed(2),
		}
		if item.MetrePrice.IsPositive() {
			payloadItem.MetrePrice = item.MetrePrice.StringFixed(2)
			payloadItem.Length = item.Length.String()
		}
		items = append(items, payloadItem)
	}
	return ports.OrderPayload{
		Items:         items,
		GuestName:     order.Customer.Name,
		GuestEmail:    order.Customer.Email,
		GuestPhone:    order.Customer.Phone,
		GuestWilaya:   order.Customer.Wilaya,
		GuestAddress:  order.Customer.Address,
		DeliveryPrice: order.DeliveryPrice.StringFixed(2),
		TotalPrice:    order.GrandTotal.StringFixed(2),
	}
}

var _ ports.Service = (*Service)(nil)
