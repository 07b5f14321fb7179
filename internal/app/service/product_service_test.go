package service_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	metricnoop "go.opentelemetry.io/otel/metric/noop"
	tracenoop "go.opentelemetry.io/otel/trace/noop"

	"github.com/catalogd/products-api/internal/app/dto"
	"github.com/catalogd/products-api/internal/app/service"
	"github.com/catalogd/products-api/internal/domain"
	"github.com/catalogd/products-api/internal/infrastructure/repository/memory"
)

func newService() *service.ProductService {
	tracer := tracenoop.NewTracerProvider().Tracer("test")
	meter := metricnoop.NewMeterProvider().Meter("test")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	repo := memory.NewProductRepository(tracer, logger)
	return service.NewProductService(repo, tracer, meter, logger)
}

func payload(name string, available bool, category string) map[string]any {
	return map[string]any{
		"name":        name,
		"description": "A " + name,
		"price":       "12.50",
		"available":   available,
		"category":    category,
	}
}

func TestCreateProductRejectsBadPayload(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, nil)
	require.Error(t, err)
	assert.True(t, domain.IsDataValidation(err))

	// Nothing persisted.
	products, listErr := svc.ListProducts(ctx, dto.ProductFilter{})
	require.NoError(t, listErr)
	assert.Empty(t, products)
}

func TestListProductsFilterDispatch(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, payload("Fedora", true, "CLOTHS"))
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, payload("Hammer", true, "TOOLS"))
	require.NoError(t, err)
	_, err = svc.CreateProduct(ctx, payload("Anvil", false, "TOOLS"))
	require.NoError(t, err)

	name := "Fedora"
	byName, err := svc.ListProducts(ctx, dto.ProductFilter{Name: &name})
	require.NoError(t, err)
	require.Len(t, byName, 1)
	assert.Equal(t, "Fedora", byName[0].Name)

	category := domain.CategoryTools
	byCategory, err := svc.ListProducts(ctx, dto.ProductFilter{Category: &category})
	require.NoError(t, err)
	assert.Len(t, byCategory, 2)

	available := true
	byAvailability, err := svc.ListProducts(ctx, dto.ProductFilter{Available: &available})
	require.NoError(t, err)
	assert.Len(t, byAvailability, 2)

	all, err := svc.ListProducts(ctx, dto.ProductFilter{})
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestUpdateProductUnknownID(t *testing.T) {
	svc := newService()

	_, err := svc.UpdateProduct(context.Background(), 999, payload("Ghost", true, "CLOTHS"))
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestDeleteProductIsIdempotent(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	created, err := svc.CreateProduct(ctx, payload("Fedora", true, "CLOTHS"))
	require.NoError(t, err)

	require.NoError(t, svc.DeleteProduct(ctx, created.ID))
	require.NoError(t, svc.DeleteProduct(ctx, created.ID))

	_, err = svc.GetProductByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
