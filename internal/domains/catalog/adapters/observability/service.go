package observability

import (
	"context"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
	nooptrace "go.opentelemetry.io/otel/trace/noop"

	catalogdomain "github.com/hvmc/storefront/internal/domains/catalog/domain"
	catalogports "github.com/hvmc/storefront/internal/domains/catalog/ports"
)

const tracerName = "github.com/hvmc/storefront/internal/domains/catalog/adapters/observability/service"

// Service decorates the catalog service with tracing, logging, and metrics.
type Service struct {
	inner   catalogports.Service
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

// New wraps the core catalog service.
func New(inner catalogports.Service, opts ...Option) catalogports.Service {
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

func (s *Service) CreateProduct(ctx context.Context, product *catalogdomain.Product) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateProduct",
		trace.WithAttributes(attribute.String("product.name", product.Name)))
	defer span.End()

	s.logInfo(ctx, "creating product", slog.String("product.name", product.Name))
	result, err := s.inner.CreateProduct(ctx, product)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create product", slog.String("product.name", product.Name))
	}
	s.metrics.recordProductSaved(ctx)
	s.logInfo(ctx, "product created", slog.Int64("product.id", result.ID))
	return result, nil
}

func (s *Service) GetProduct(ctx context.Context, id int64) (*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetProduct", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	result, err := s.inner.GetProduct(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load product", slog.Int64("product.id", id))
	}
	return result, nil
}

func (s *Service) ListProducts(ctx context.Context, categoryID int64) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListProducts",
		trace.WithAttributes(attribute.Int64("category.id", categoryID)))
	defer span.End()

	result, err := s.inner.ListProducts(ctx, categoryID)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list products", slog.Int64("category.id", categoryID))
	}
	span.SetAttributes(attribute.Int("products.count", len(result)))
	return result, nil
}

func (s *Service) SearchProducts(ctx context.Context, query string) ([]*catalogdomain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.SearchProducts",
		trace.WithAttributes(attribute.String("search.query", query)))
	defer span.End()

	result, err := s.inner.SearchProducts(ctx, query)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to search products", slog.String("search.query", query))
	}
	span.SetAttributes(attribute.Int("products.count", len(result)))
	return result, nil
}

func (s *Service) DeleteProduct(ctx context.Context, id int64) error {
	ctx, span := s.tracer.Start(ctx, "CatalogService.DeleteProduct", trace.WithAttributes(attribute.Int64("product.id", id)))
	defer span.End()

	s.logInfo(ctx, "deleting product", slog.Int64("product.id", id))
	if err := s.inner.DeleteProduct(ctx, id); err != nil {
		return s.handleError(ctx, span, err, "failed to delete product", slog.Int64("product.id", id))
	}
	s.logInfo(ctx, "product deleted", slog.Int64("product.id", id))
	return nil
}

func (s *Service) CreateCategory(ctx context.Context, category *catalogdomain.Category) (*catalogdomain.Category, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.CreateCategory",
		trace.WithAttributes(attribute.String("category.name", category.Name)))
	defer span.End()

	s.logInfo(ctx, "creating category", slog.String("category.name", category.Name))
	result, err := s.inner.CreateCategory(ctx, category)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to create category", slog.String("category.name", category.Name))
	}
	return result, nil
}

func (s *Service) GetCategory(ctx context.Context, id int64) (*catalogdomain.Category, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.GetCategory", trace.WithAttributes(attribute.Int64("category.id", id)))
	defer span.End()

	result, err := s.inner.GetCategory(ctx, id)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to load category", slog.Int64("category.id", id))
	}
	return result, nil
}

func (s *Service) ListCategories(ctx context.Context) ([]*catalogdomain.Category, error) {
	ctx, span := s.tracer.Start(ctx, "CatalogService.ListCategories")
	defer span.End()

	result, err := s.inner.ListCategories(ctx)
	if err != nil {
		return nil, s.handleError(ctx, span, err, "failed to list categories")
	}
	span.SetAttributes(attribute.Int("categories.count", len(result)))
	return result, nil
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
	productsSaved metric.Int64Counter
}

func newServiceMetrics(m metric.Meter) serviceMetrics {
	if m == nil {
		return serviceMetrics{}
	}
	productsSaved, _ := m.Int64Counter("catalog.service.products_saved", metric.WithDescription("Number of products created or updated"))
	return serviceMetrics{productsSaved: productsSaved}
}

func (m serviceMetrics) recordProductSaved(ctx context.Context) {
	if m.productsSaved != nil {
		m.productsSaved.Add(ctx, 1)
	}
}

var _ catalogports.Service = (*Service)(nil)
