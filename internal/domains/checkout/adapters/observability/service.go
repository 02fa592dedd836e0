package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	checkoutdomain "github.com/hvmc/storefront/internal/domains/checkout/domain"
	checkoutports "github.com/hvmc/storefront/internal/domains/checkout/ports"
)

const tracerName = "github.com/hvmc/storefront/internal/domains/checkout/adapters/observability/service"

// Service decorates the checkout service with tracing, logging, and metrics.
type Service struct {
	inner   checkoutports.Service
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

// New wraps the core checkout service.
func New(inner checkoutports.Service, opts ...Option) checkoutports.Service {
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

func (s *Service) Submit(ctx context.Context, input checkoutports.SubmitInput) (*checkoutdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.Submit",
		trace.WithAttributes(
			attribute.String("order.wilaya", input.Customer.Wilaya),
			attribute.Int("order.items", len(input.Items)),
		))
	defer span.End()

	s.logInfo(ctx, "submitting order",
		slog.String("order.wilaya", input.Customer.Wilaya),
		slog.Int("order.items", len(input.Items)))
	order, err := s.inner.Submit(ctx, input)
	if err != nil {
		if dispatchErr, ok := checkoutports.AsDispatchError(err); ok {
			s.metrics.recordDispatchFailed(ctx, dispatchErr.Kind)
			span.SetAttributes(attribute.String("dispatch.kind", string(dispatchErr.Kind)))
		}
		// the order may still be recorded locally when only dispatch failed
		return order, s.handleError(ctx, span, err, "order submission failed",
			slog.String("order.wilaya", input.Customer.Wilaya))
	}
	s.metrics.recordSubmitted(ctx)
	s.logInfo(ctx, "order submitted",
		slog.String("order.id", order.ID),
		slog.String("order.total", order.GrandTotal.String()))
	return order, nil
}

func (s *Service) Orders(ctx context.Context) ([]*checkoutdomain.Order, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.Orders")
	defer span.End()

	result, err := s.inner.Orders(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list orders")
	}
	span.SetAttributes(attribute.Int("orders.count", len(result)))
	return result, nil
}

func (s *Service) Profile(ctx context.Context) (*checkoutdomain.Customer, error) {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.Profile")
	defer span.End()

	result, err := s.inner.Profile(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load profile")
	}
	return result, nil
}

func (s *Service) SaveProfile(ctx context.Context, customer checkoutdomain.Customer) error {
	ctx, span := s.tracer.Start(ctx, "CheckoutService.SaveProfile")
	defer span.End()

	s.logInfo(ctx, "saving profile", slog.String("profile.wilaya", customer.Wilaya))
	if err := s.inner.SaveProfile(ctx, customer); err != nil {
		return s.handleError(ctx, span, err, "failed to save profile")
	}
	return nil
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
	ordersSubmitted  metric.Int64Counter
	dispatchFailures metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	ordersSubmitted, _ := m.Int64Counter("checkout.service.orders_submitted", metric.WithDescription("Number of orders submitted and dispatched"))
	dispatchFailures, _ := m.Int64Counter("checkout.service.dispatch_failures", metric.WithDescription("Number of order dispatch failures by kind"))
	return serviceMetrics{ordersSubmitted: ordersSubmitted, dispatchFailures: dispatchFailures}
}

func (m serviceMetrics) recordSubmitted(ctx context.Context) {
	if m.ordersSubmitted != nil {
		m.ordersSubmitted.Add(ctx, 1)
	}
}

func (m serviceMetrics) recordDispatchFailed(ctx context.Context, kind checkoutports.DispatchKind) {
	if m.dispatchFailures != nil {
		m.dispatchFailures.Add(ctx, 1, metric.WithAttributes(attribute.String("dispatch.kind", string(kind))))
	}
}

var _ checkoutports.Service = (*Service)(nil)
