package memory

import (
	"context"
	"log/slog"
	"sync"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/catalogd/products-api/internal/domain"
)

// ProductRepository is an in-memory implementation of domain.ProductRepository.
// Ids are assigned from an incrementing counter and listing preserves
// insertion order, matching what the relational implementation returns.
type ProductRepository struct {
	mu       sync.RWMutex
	products map[uint]*domain.Product
	order    []uint
	nextID   uint
	tracer   trace.Tracer
	logger   *slog.Logger
}

// NewProductRepository creates a new in-memory product repository
func NewProductRepository(tracer trace.Tracer, logger *slog.Logger) *ProductRepository {
	return &ProductRepository{
		products: make(map[uint]*domain.Product),
		tracer:   tracer,
		logger:   logger,
	}
}

// Create stores a new product and assigns its id
func (r *ProductRepository) Create(ctx context.Context, product *domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Create")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	product.ID = r.nextID

	stored := *product
	r.products[product.ID] = &stored
	r.order = append(r.order, product.ID)

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

// Update persists the current field values of an already-created product
func (r *ProductRepository) Update(ctx context.Context, product *domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Update")
	defer span.End()

	if product.ID == 0 {
		err := domain.NewDataValidationError("Update called with empty ID field")
		span.RecordError(err)
		span.SetStatus(codes.Error, "Update without id")
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.products[product.ID]; !exists {
		span.SetStatus(codes.Error, "Product not found")
		return domain.ErrProductNotFound
	}

	stored := *product
	r.products[product.ID] = &stored

	r.logger.InfoContext(ctx, "Product updated in repository",
		slog.Uint64("product_id", uint64(product.ID)),
	)

	span.SetStatus(codes.Ok, "Product updated successfully")
	return nil
}

// Delete removes the row backing the product
func (r *ProductRepository) Delete(ctx context.Context, product *domain.Product) error {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.Delete")
	defer span.End()

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.products, product.ID)
	for i, id := range r.order {
		if id == product.ID {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}

	r.logger.InfoContext(ctx, "Product deleted from repository",
		slog.Uint64("product_id", uint64(product.ID)),
	)

	span.SetStatus(codes.Ok, "Product deleted successfully")
	return nil
}

// FindByID retrieves a product by id
func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindByID")
	defer span.End()

	span.SetAttributes(attribute.Int64("product.id", int64(id)))

	r.mu.RLock()
	defer r.mu.RUnlock()

	product, exists := r.products[id]
	if !exists {
		span.SetStatus(codes.Error, "Product not found")
		r.logger.WarnContext(ctx, "Product not found",
			slog.Uint64("product_id", uint64(id)),
		)
		return nil, domain.ErrProductNotFound
	}

	found := *product

	span.SetStatus(codes.Ok, "Product found")
	return &found, nil
}

// FindAll retrieves all products in insertion order
func (r *ProductRepository) FindAll(ctx context.Context) ([]*domain.Product, error) {
	ctx, span := r.tracer.Start(ctx, "ProductRepository.FindAll")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := r.collect(func(*domain.Product) bool { return true })

	span.SetAttributes(attribute.Int("product.count", len(products)))

	r.logger.DebugContext(ctx, "Products retrieved from repository",
		slog.Int("count", len(products)),
	)

	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// FindByName retrieves the products whose name equals name exactly
func (r *ProductRepository) FindByName(ctx context.Context, name string) ([]*domain.Product, error) {
	_, span := r.tracer.Start(ctx, "ProductRepository.FindByName")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := r.collect(func(p *domain.Product) bool { return p.Name == name })

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// FindByCategory retrieves the products in the given category
func (r *ProductRepository) FindByCategory(ctx context.Context, category domain.Category) ([]*domain.Product, error) {
	_, span := r.tracer.Start(ctx, "ProductRepository.FindByCategory")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := r.collect(func(p *domain.Product) bool { return p.Category == category })

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// FindByAvailability retrieves the products with the given availability
func (r *ProductRepository) FindByAvailability(ctx context.Context, available bool) ([]*domain.Product, error) {
	_, span := r.tracer.Start(ctx, "ProductRepository.FindByAvailability")
	defer span.End()

	r.mu.RLock()
	defer r.mu.RUnlock()

	products := r.collect(func(p *domain.Product) bool { return p.Available == available })

	span.SetAttributes(attribute.Int("product.count", len(products)))
	span.SetStatus(codes.Ok, "Products retrieved successfully")
	return products, nil
}

// collect copies matching products in insertion order. Callers must hold the lock.
func (r *ProductRepository) collect(match func(*domain.Product) bool) []*domain.Product {
	products := make([]*domain.Product, 0, len(r.order))
	for _, id := range r.order {
		if p, exists := r.products[id]; exists && match(p) {
			found := *p
			products = append(products, &found)
		}
	}
	return products
}
