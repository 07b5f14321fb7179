package service

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/catalogd/products-api/internal/app/dto"
	"github.com/catalogd/products-api/internal/domain"
)

// ProductService handles product use cases
type ProductService struct {
	repo                  domain.ProductRepository
	tracer                trace.Tracer
	logger                *slog.Logger
	productCreatedCounter metric.Int64Counter
	productOperations     metric.Int64Counter
}

// NewProductService creates a new product service
func NewProductService(
	repo domain.ProductRepository,
	tracer trace.Tracer,
	meter metric.Meter,
	logger *slog.Logger,
) *ProductService {
	// Initialize metrics
	productCreatedCounter, _ := meter.Int64Counter(
		"products.created.total",
		metric.WithDescription("Total number of products created"),
	)

	productOperations, _ := meter.Int64Counter(
		"products.operations",
		metric.WithDescription("Total number of product operations"),
	)

	return &ProductService{
		repo:                  repo,
		tracer:                tracer,
		logger:                logger,
		productCreatedCounter: productCreatedCounter,
		productOperations:     productOperations,
	}
}

func (s *ProductService) recordOperation(ctx context.Context, operation, result string) {
	s.productOperations.Add(ctx, 1,
		metric.WithAttributes(
			attribute.String("operation", operation),
			attribute.String("result", result),
		),
	)
}

// CreateProduct validates the wire payload and persists a new product
func (s *ProductService) CreateProduct(ctx context.Context, data map[string]any) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.CreateProduct")
	defer span.End()

	s.logger.InfoContext(ctx, "Creating product")

	product := &domain.Product{}
	if err := product.Deserialize(data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Validation failed")
		s.logger.ErrorContext(ctx, "Failed to deserialize product",
			slog.String("error", err.Error()),
		)
		s.recordOperation(ctx, "create", "failure")
		return nil, err
	}

	span.SetAttributes(
		attribute.String("product.name", product.Name),
		attribute.String("product.category", product.Category.String()),
	)

	if err := s.repo.Create(ctx, product); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to store product")
		s.logger.ErrorContext(ctx, "Failed to store product",
			slog.String("error", err.Error()),
		)
		s.recordOperation(ctx, "create", "failure")
		return nil, err
	}

	s.productCreatedCounter.Add(ctx, 1)
	s.recordOperation(ctx, "create", "success")

	s.logger.InfoContext(ctx, "Product created successfully",
		slog.Uint64("product_id", uint64(product.ID)),
	)

	span.SetStatus(codes.Ok, "Product created successfully")
	return product, nil
}

// GetProductByID retrieves a product by ID
func (s *ProductService) GetProductByID(ctx context.Context, id uint) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.GetProductByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", int64(id)))

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product not found")
		s.logger.WarnContext(ctx, "Product not found",
			slog.Uint64("product_id", uint64(id)),
		)
		s.recordOperation(ctx, "read", "not_found")
		return nil, err
	}

	s.recordOperation(ctx, "read", "success")

	span.SetStatus(codes.Ok, "Product retrieved successfully")
	return product, nil
}

// ListProducts retrieves products, restricted by at most one filter predicate
func (s *ProductService) ListProducts(ctx context.Context, filter dto.ProductFilter) ([]*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.ListProducts")
	defer span.End()

	var products []*domain.Product
	var err error

	switch {
	case filter.Name != nil:
		span.SetAttributes(attribute.String("filter.name", *filter.Name))
		products, err = s.repo.FindByName(ctx, *filter.Name)
	case filter.Category != nil:
		span.SetAttributes(attribute.String("filter.category", filter.Category.String()))
		products, err = s.repo.FindByCategory(ctx, *filter.Category)
	case filter.Available != nil:
		span.SetAttributes(attribute.Bool("filter.available", *filter.Available))
		products, err = s.repo.FindByAvailability(ctx, *filter.Available)
	default:
		products, err = s.repo.FindAll(ctx)
	}

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to retrieve products")
		s.logger.ErrorContext(ctx, "Failed to list products",
			slog.String("error", err.Error()),
		)
		s.recordOperation(ctx, "list", "failure")
		return nil, err
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	s.recordOperation(ctx, "list", "success")

	s.logger.InfoContext(ctx, "Products listed successfully",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products listed successfully")
	return products, nil
}

// UpdateProduct replaces the fields of an existing product from the wire payload
func (s *ProductService) UpdateProduct(ctx context.Context, id uint, data map[string]any) (*domain.Product, error) {
	ctx, span := s.tracer.Start(ctx, "ProductService.UpdateProduct")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", int64(id)))

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Product not found")
		s.logger.WarnContext(ctx, "Product not found",
			slog.Uint64("product_id", uint64(id)),
		)
		s.recordOperation(ctx, "update", "not_found")
		return nil, err
	}

	if err := product.Deserialize(data); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Validation failed")
		s.logger.ErrorContext(ctx, "Failed to deserialize product",
			slog.String("error", err.Error()),
		)
		s.recordOperation(ctx, "update", "failure")
		return nil, err
	}

	if err := s.repo.Update(ctx, product); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update product")
		s.logger.ErrorContext(ctx, "Failed to update product",
			slog.String("error", err.Error()),
		)
		s.recordOperation(ctx, "update", "failure")
		return nil, err
	}

	s.recordOperation(ctx, "update", "success")

	s.logger.InfoContext(ctx, "Product updated successfully",
		slog.Uint64("product_id", uint64(product.ID)),
	)

	span.SetStatus(codes.Ok, "Product updated successfully")
	return product, nil
}

// DeleteProduct removes a product. Deleting an absent id is not an error,
// the operation is idempotent.
func (s *ProductService) DeleteProduct(ctx context.Context, id uint) error {
	ctx, span := s.tracer.Start(ctx, "ProductService.DeleteProduct")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", int64(id)))

	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrProductNotFound) {
			s.recordOperation(ctx, "delete", "not_found")
			span.SetStatus(codes.Ok, "Product already absent")
			return nil
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to find product")
		s.recordOperation(ctx, "delete", "failure")
		return err
	}

	if err := s.repo.Delete(ctx, product); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete product")
		s.logger.ErrorContext(ctx, "Failed to delete product",
			slog.String("error", err.Error()),
		)
		s.recordOperation(ctx, "delete", "failure")
		return err
	}

	s.recordOperation(ctx, "delete", "success")

	s.logger.InfoContext(ctx, "Product deleted successfully",
		slog.Uint64("product_id", uint64(id)),
	)

	span.SetStatus(codes.Ok, "Product deleted successfully")
	return nil
}
