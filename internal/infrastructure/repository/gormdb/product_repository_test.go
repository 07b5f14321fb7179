package gormdb_test

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"
	"gorm.io/gorm"

	"github.com/catalogd/products-api/internal/domain"
	"github.com/catalogd/products-api/internal/infrastructure/config"
	"github.com/catalogd/products-api/internal/infrastructure/repository/gormdb"
)

func newRepo(t *testing.T) (*gorm.DB, *gormdb.ProductRepository) {
	t.Helper()

	db, err := gormdb.Open(&config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "products.db"),
	})
	require.NoError(t, err)

	tracer := noop.NewTracerProvider().Tracer("test")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return db, gormdb.NewProductRepository(db, tracer, logger)
}

func newProduct(name, price string, available bool, category domain.Category) *domain.Product {
	return &domain.Product{
		Name:        name,
		Description: "A " + name,
		Price:       decimal.RequireFromString(price),
		Available:   available,
		Category:    category,
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	_, err := gormdb.Open(&config.DatabaseConfig{Driver: "oracle", DSN: "x"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "oracle")
}

func TestCreateAssignsID(t *testing.T) {
	_, repo := newRepo(t)
	ctx := context.Background()

	product := newProduct("Fedora", "12.50", true, domain.CategoryCloths)
	require.Zero(t, product.ID)
	require.NoError(t, repo.Create(ctx, product))
	assert.NotZero(t, product.ID)
}

func TestCreateThenFindRoundTrip(t *testing.T) {
	_, repo := newRepo(t)
	ctx := context.Background()

	product := newProduct("Fedora", "12.50", true, domain.CategoryCloths)
	require.NoError(t, repo.Create(ctx, product))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.Name, found.Name)
	assert.Equal(t, product.Description, found.Description)
	assert.Equal(t, product.Available, found.Available)
	assert.Equal(t, product.Category, found.Category)
	assert.True(t, product.Price.Equal(found.Price), "price survives the database round trip")
}

func TestFindByIDNotFound(t *testing.T) {
	_, repo := newRepo(t)

	found, err := repo.FindByID(context.Background(), 999)
	assert.Nil(t, found)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestUpdate(t *testing.T) {
	_, repo := newRepo(t)
	ctx := context.Background()

	product := newProduct("Fedora", "12.50", true, domain.CategoryCloths)
	require.NoError(t, repo.Create(ctx, product))

	product.Description = "updated"
	product.Available = false
	require.NoError(t, repo.Update(ctx, product))

	found, err := repo.FindByID(ctx, product.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", found.Description)
	assert.False(t, found.Available)
}

func TestUpdateWithoutID(t *testing.T) {
	_, repo := newRepo(t)
	ctx := context.Background()

	err := repo.Update(ctx, newProduct("Fedora", "12.50", true, domain.CategoryCloths))
	require.Error(t, err)
	assert.True(t, domain.IsDataValidation(err))
	assert.Contains(t, err.Error(), "empty ID field")

	all, findErr := repo.FindAll(ctx)
	require.NoError(t, findErr)
	assert.Empty(t, all)
}

func TestDelete(t *testing.T) {
	_, repo := newRepo(t)
	ctx := context.Background()

	product := newProduct("Fedora", "12.50", true, domain.CategoryCloths)
	require.NoError(t, repo.Create(ctx, product))
	require.NoError(t, repo.Delete(ctx, product))

	_, err := repo.FindByID(ctx, product.ID)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestFindAll(t *testing.T) {
	_, repo := newRepo(t)
	ctx := context.Background()

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)

	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Create(ctx, newProduct("Hammer", "9.99", true, domain.CategoryTools)))
	}

	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestFinders(t *testing.T) {
	_, repo := newRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, newProduct("Fedora", "12.50", true, domain.CategoryCloths)))
	require.NoError(t, repo.Create(ctx, newProduct("Fedora", "15.00", false, domain.CategoryCloths)))
	require.NoError(t, repo.Create(ctx, newProduct("Hammer", "9.99", true, domain.CategoryTools)))
	require.NoError(t, repo.Create(ctx, newProduct("Wrench", "14.25", true, domain.CategoryTools)))
	require.NoError(t, repo.Create(ctx, newProduct("Bread", "3.20", true, domain.CategoryFood)))

	byName, err := repo.FindByName(ctx, "Fedora")
	require.NoError(t, err)
	require.Len(t, byName, 2)
	for _, p := range byName {
		assert.Equal(t, "Fedora", p.Name)
	}

	byCategory, err := repo.FindByCategory(ctx, domain.CategoryTools)
	require.NoError(t, err)
	require.Len(t, byCategory, 2)
	for _, p := range byCategory {
		assert.Equal(t, domain.CategoryTools, p.Category)
	}

	available, err := repo.FindByAvailability(ctx, true)
	require.NoError(t, err)
	assert.Len(t, available, 4)

	unavailable, err := repo.FindByAvailability(ctx, false)
	require.NoError(t, err)
	assert.Len(t, unavailable, 1)
}

func TestStorageFailureSurfacesAsDataValidationError(t *testing.T) {
	db, repo := newRepo(t)
	ctx := context.Background()

	// Dropping the table makes the insert fail at the storage layer.
	require.NoError(t, db.Migrator().DropTable(&domain.Product{}))

	err := repo.Create(ctx, newProduct("Fedora", "12.50", true, domain.CategoryCloths))
	require.Error(t, err)
	assert.True(t, domain.IsDataValidation(err))
}
