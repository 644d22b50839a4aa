package repository

import (
	"context"

	"github.com/maxviazov/product-catalog-service/internal/model"
)

// Pinger represents a minimal readiness probe capability.
// I use it to decouple health checks from storage implementation details.
type Pinger interface {
	Ping(ctx context.Context) error
}

// TxFunc is the unit of work executed within a transaction boundary.
// I pass context through so nested calls can honor cancellations and deadlines.
type TxFunc func(ctx context.Context) error

// TxManager abstracts transactional execution for repositories that support it.
// I prefer a single entry point to keep transaction boundaries explicit and testable.
type TxManager interface {
	WithinTx(ctx context.Context, fn TxFunc) error
}

// ProductRepository declares read and seed operations for products.
// I return domain models and surface domain errors from errors.go rather than driver codes.
type ProductRepository interface {
	// Find returns one page of products matching f. Totals and page must come
	// from a single consistent read; past-the-end pages are empty, not errors.
	Find(ctx context.Context, f ProductFilter, p PageRequest) (PageResult[model.Product], error)
	GetByID(ctx context.Context, id int64) (model.Product, error)
	// Create stores p under its own ID; ID assignment belongs to the caller.
	Create(ctx context.Context, p model.Product) (model.Product, error)
}

// CategoryRepository declares operations for product categories.
type CategoryRepository interface {
	List(ctx context.Context, p PageRequest) (PageResult[model.ProductCategory], error)
	GetByID(ctx context.Context, id int64) (model.ProductCategory, error)
	Create(ctx context.Context, c model.ProductCategory) (model.ProductCategory, error)
}

// CountryRepository serves the country lookup used by address forms.
type CountryRepository interface {
	List(ctx context.Context, p PageRequest) (PageResult[model.Country], error)
	Create(ctx context.Context, c model.Country) (model.Country, error)
}

// StateRepository serves states by their country's code.
type StateRepository interface {
	// ListByCountryCode pages the states of the country with code. An unknown
	// code yields an empty page.
	ListByCountryCode(ctx context.Context, code string, p PageRequest) (PageResult[model.State], error)
	// Create fails with ErrConflict when CountryID names no country.
	Create(ctx context.Context, s model.State) (model.State, error)
}

// Store bundles everything one backend provides.
type Store struct {
	Products   ProductRepository
	Categories CategoryRepository
	Countries  CountryRepository
	States     StateRepository
	Tx         TxManager
	Pinger     Pinger
	Close      func() error
}
