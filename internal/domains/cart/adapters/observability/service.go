package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	cartdomain "github.com/hvmc/storefront/internal/domains/cart/domain"
	cartports "github.com/hvmc/storefront/internal/domains/cart/ports"
)

const tracerName = "github.com/hvmc/storefront/internal/domains/cart/adapters/observability/service"

// Service decorates the cart service with tracing, logging, and metrics.
type Service struct {
	inner   cartports.Service
	tracer  trace.Tracer
	logger  *slog.Logger
	metrics serviceMetrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithTracer(tr trace.Tracer) Option {
	return func(s *Service) {
		s.tracer = tr
	}
}

func WithMeter(m metric.Meter) Option {
	return func(s *Service) {
		s.metrics = newServiceMetrics(m)
	}
}

// New wraps the core cart service.
func New(inner cartports.Service, opts ...Option) cartports.Service {
	s := &Service{
		inner:   inner,
		tracer:  nooptrace.NewTracerProvider().Tracer(tracerName),
		metrics: newServiceMetrics(nil),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	if s.tracer == nil {
		s.tracer = nooptrace.NewTracerProvider().Tracer(tracerName)
	}
	return s
}

func (s *Service) Load(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "CartService.Load")
	defer span.End()

	if err := s.inner.Load(ctx); err != nil {
		return s.handleError(ctx, span, err, "failed to load cart snapshot")
	}
	s.logInfo(ctx, "cart snapshot loaded")
	return nil
}

func (s *Service) Add(ctx context.Context, item cartdomain.LineItem) error {
	ctx, span := s.tracer.Start(ctx, "CartService.Add",
		trace.WithAttributes(attribute.String("cart.product_id", item.ProductID), attribute.Int("cart.quantity", item.Quantity)))
	defer span.End()

	if err := s.inner.Add(ctx, item); err != nil {
		return s.handleError(ctx, span, err, "failed to add cart item", slog.String("cart.product_id", item.ProductID))
	}
	s.metrics.recordAdded(ctx, item.Quantity)
	s.logInfo(ctx, "cart item added", slog.String("cart.product_id", item.ProductID), slog.Int("cart.quantity", item.Quantity))
	return nil
}

func (s *Service) Remove(ctx context.Context, productID string) error {
	ctx, span := s.tracer.Start(ctx, "CartService.Remove",
		trace.WithAttributes(attribute.String("cart.product_id", productID)))
	defer span.End()

	if err := s.inner.Remove(ctx, productID); err != nil {
		return s.handleError(ctx, span, err, "failed to remove cart item", slog.String("cart.product_id", productID))
	}
	s.metrics.recordRemoved(ctx)
	s.logInfo(ctx, "cart item removed", slog.String("cart.product_id", productID))
	return nil
}

func (s *Service) UpdateQuantity(ctx context.Context, productID string, quantity int) error {
	ctx, span := s.tracer.Start(ctx, "CartService.UpdateQuantity",
		trace.WithAttributes(attribute.String("cart.product_id", productID), attribute.Int("cart.quantity", quantity)))
	defer span.End()

	if err := s.inner.UpdateQuantity(ctx, productID, quantity); err != nil {
		return s.handleError(ctx, span, err, "failed to update cart quantity", slog.String("cart.product_id", productID))
	}
	s.logInfo(ctx, "cart quantity updated", slog.String("cart.product_id", productID), slog.Int("cart.quantity", quantity))
	return nil
}

func (s *Service) Clear(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "CartService.Clear")
	defer span.End()

	if err := s.inner.Clear(ctx); err != nil {
		return s.handleError(ctx, span, err, "failed to clear cart")
	}
	s.logInfo(ctx, "cart cleared")
	return nil
}

func (s *Service) Items(ctx context.Context) ([]cartdomain.LineItem, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Items")
	defer span.End()

	items, err := s.inner.Items(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list cart items")
	}
	span.SetAttributes(attribute.Int("cart.entries", len(items)))
	return items, nil
}

func (s *Service) Count(ctx context.Context) (int, error) {
	ctx, span := s.tracer.Start(ctx, "CartService.Count")
	defer span.End()

	count, err := s.inner.Count(ctx)
	if err != nil {
		return 0, s.handleError(ctx, span, err, "failed to count cart items")
	}
	span.SetAttributes(attribute.Int("cart.count", count))
	return count, nil
}

func (s *Service) logInfo(ctx context.Context, msg string, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	s.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (s *Service) logError(ctx context.Context, msg string, err error, attrs ...slog.Attr) {
	if s.logger == nil {
		return
	}
	if err != nil {
		attrs = append(attrs, slog.String("error", err.Error()))
	}
	s.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

func (s *Service) handleError(ctx context.Context, span trace.Span, err error, msg string, attrs ...slog.Attr) error {
	if span != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	}
	s.logError(ctx, msg, err, attrs...)
	return err
}

type serviceMetrics struct {
	itemsAdded   metric.Int64Counter
	itemsRemoved metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	itemsAdded, _ := m.Int64Counter("cart.service.items_added", metric.WithDescription("Quantity of items added to the cart"))
	itemsRemoved, _ := m.Int64Counter("cart.service.items_removed", metric.WithDescription("Number of cart removals"))
	return serviceMetrics{itemsAdded: itemsAdded, itemsRemoved: itemsRemoved}
}

func (m serviceMetrics) recordAdded(ctx context.Context, quantity int) {
	if m.itemsAdded != nil {
		m.itemsAdded.Add(ctx, int64(quantity))
	}
}

func (m serviceMetrics) recordRemoved(ctx context.Context) {
	if m.itemsRemoved != nil {
		m.itemsRemoved.Add(ctx, 1)
	}
}

var _ cartports.Service = (*Service)(nil)
