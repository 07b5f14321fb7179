package gormdb

import (
	"context"
	"errors"
	"log/slog"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/catalogd/products-api/internal/domain"
)

// ProductRepository is the relational implementation of
// domain.ProductRepository. Every mutation runs in its own transaction;
// a failed statement is rolled back and re-signaled as a DataValidationError
// carrying the storage cause.
type ProductRepository struct {
	db     *gorm.DB
	tracer trace.Tracer
	logger *slog.Logger
}

// NewProductRepository creates a new GORM-backed product repository
func NewProductRepository(db *gorm.DB, tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		db:     db,
		tracer: tracer,
		logger: logger,
	}
}

// Create inserts a new row and populates the product's id
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Create")
	defer span.End()

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(product).Error
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to create product")
		r.logger.ErrorContext(ctx, "Failed to create product",
			slog.String("error", err.Error()),
		)
		return domain.WrapDataValidationError(err, "create product")
	}

	span.SetAttributes(
		attribute.Int64("product.id", int64(product.ID)),
		attribute.String("product.name", product.Name),
	)

	r.logger.InfoContext(ctx, "Product created in repository",
		slog.Uint64("product_id", uint64(product.ID)),
		slog.String("product_name", product.Name),
	)

	span.SetStatus(codes.Ok, "Product created successfully")
	return nil
}

// Update persists all current field values against the existing id
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Update")
	defer span.End()

	if product.ID == 0 {
		err := domain.NewDataValidationError("Update called with empty ID field")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Update without id")
		return err
	}

	span.SetAttributes(attribute.Int64("product.id", int64(product.ID)))

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Save(product).Error
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to update product")
		r.logger.ErrorContext(ctx, "Failed to update product",
			slog.String("error", err.Error()),
		)
		return domain.WrapDataValidationError(err, "update product")
	}

	r.logger.InfoContext(ctx, "Product updated in repository",
		slog.Uint64("product_id", uint64(product.ID)),
	)

	span.SetStatus(codes.Ok, "Product updated successfully")
	return nil
}

// Delete removes the row corresponding to the product's id
func (r *ProductRepository) Delete(ctx context.Context, product *domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Delete")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", int64(product.ID)))

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Delete(&domain.Product{}, product.ID).Error
	})
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to delete product")
		r.logger.ErrorContext(ctx, "Failed to delete product",
			slog.String("error", err.Error()),
		)
		return domain.WrapDataValidationError(err, "delete product")
	}

	r.logger.InfoContext(ctx, "Product deleted from repository",
		slog.Uint64("product_id", uint64(product.ID)),
	)

	span.SetStatus(codes.Ok, "Product deleted successfully")
	return nil
}

// FindByID retrieves a product by id. An absent row is ErrProductNotFound,
// never a storage error.
func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", int64(id)))

	var product domain.Product
	err := r.db.WithContext(ctx).First(&product, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			span.SetStatus(codes.Error, "Product not found")
			r.logger.WarnContext(ctx, "Product not found",
				slog.Uint64("product_id", uint64(id)),
			)
			return nil, domain.ErrProductNotFound
		}
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to find product")
		return nil, domain.WrapDataValidationError(err, "find product")
	}

	span.SetStatus(codes.Ok, "Product found")
	return &product, nil
}

// FindAll retrieves every persisted product
func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindAll")
	defer span.End()

	return r.find(ctx, span, r.db.WithContext(ctx))
}

// FindByName retrieves the products whose name equals name exactly
func (r *ProductRepository) FindByName(ctx context.Context, name string) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByName")
	defer span.End()

	span.SetAttributes(attribute.String("filter.name", name))
	return r.find(ctx, span, r.db.WithContext(ctx).Where("name = ?", name))
}

// FindByCategory retrieves the products in the given category
func (r *ProductRepository) FindByCategory(ctx context.Context, category domain.Category) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByCategory")
	defer span.End()

	span.SetAttributes(attribute.String("filter.category", category.String()))
	return r.find(ctx, span, r.db.WithContext(ctx).Where("category = ?", category))
}

// FindByAvailability retrieves the products with the given availability
func (r *ProductRepository) FindByAvailability(ctx context.Context, available bool) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByAvailability")
	defer span.End()

	span.SetAttributes(attribute.Bool("filter.available", available))
	return r.find(ctx, span, r.db.WithContext(ctx).Where("available = ?", available))
}

func (r *ProductRepository) find(ctx context.Context, span trace.Span, query *gorm.DB) ([]*domain.Product, error) {
	var products []*domain.Product
	if err := query.Order("id").Find(&products).Error; err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "Failed to retrieve products")
		r.logger.ErrorContext(ctx, "Failed to retrieve products",
			slog.String("error", err.Error()),
		)
		return nil, domain.WrapDataValidationError(err, "find products")
	}

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}
