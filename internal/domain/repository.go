package domain

import (
	"context"
	"errors"
)

var (
	ErrProductNotFound = errors.New("product not found")
)

// ProductRepository defines the contract for product storage. Create, Update
// and Delete each run inside their own transaction; a storage failure is
// rolled back and surfaced as a DataValidationError. FindByID reports an
// absent row with ErrProductNotFound, never with a validation error. The
// finders are independent single-predicate filters with exact equality
// semantics.
type ProductRepository interface {
	Create(ctx context.Context, product *Product) error
	Update(ctx context.Context, product *Product) error
	Delete(ctx context.Context, product *Product) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindAll(ctx context.Context) ([]*Product, error)
	FindByName(ctx context.Context, name string) ([]*Product, error)
	FindByCategory(ctx context.Context, category Category) ([]*Product, error)
	FindByAvailability(ctx context.Context, available bool) ([]*Product, error)
}
