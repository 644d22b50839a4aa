// Package service holds business logic orchestration across repositories and handlers.
// Kept intentionally lean: only use-case coordination, validation and domain error shaping.
package service

import (
	"context"
	"errors"

	"github.com/maxviazov/product-catalog-service/internal/fixture"
	"github.com/maxviazov/product-catalog-service/internal/model"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

// ErrInvalidArgument is the marker error for aggregated validation failures (maps to HTTP 400).
// Field-level details are retrieved via FieldErrors(err).
var ErrInvalidArgument = errors.New("invalid argument")

// FieldError describes a single invalid field in a client request.
type FieldError struct {
	Field   string `json:"field" yaml:"field"`
	Message string `json:"message" yaml:"message"`
}

// invalidArgumentError aggregates multiple FieldError instances and unwraps to ErrInvalidArgument.
type invalidArgumentError struct {
	fields []FieldError
}

func (e *invalidArgumentError) Error() string        { return ErrInvalidArgument.Error() }
func (e *invalidArgumentError) Unwrap() error        { return ErrInvalidArgument }
func (e *invalidArgumentError) Fields() []FieldError { return e.fields }

// NewInvalidArgument builds an aggregated validation error, or nil when fe is empty.
// Transport adapters use it for malformed input they reject before calling a service.
func NewInvalidArgument(fe []FieldError) error {
	if len(fe) == 0 {
		return nil
	}
	return &invalidArgumentError{fields: fe}
}

// FieldErrors extracts field errors from an aggregated validation error.
func FieldErrors(err error) []FieldError {
	if err == nil {
		return nil
	}
	var v interface{ Fields() []FieldError }
	if errors.As(err, &v) && errors.Is(err, ErrInvalidArgument) {
		return v.Fields()
	}
	return nil
}

// ProductService defines product listing use cases.
type ProductService interface {
	// ListProductsByCategory returns one page of the products in categoryID.
	// An unknown category yields an empty page, not an error.
	ListProductsByCategory(ctx context.Context, categoryID int64, p repository.PageRequest) (repository.PageResult[model.Product], error)
	SearchProductsByName(ctx context.Context, keyword string, p repository.PageRequest) (repository.PageResult[model.Product], error)
	GetProduct(ctx context.Context, id int64) (model.Product, error)
}

// CategoryService defines category use cases.
type CategoryService interface {
	ListCategories(ctx context.Context, p repository.PageRequest) (repository.PageResult[model.ProductCategory], error)
	GetCategory(ctx context.Context, id int64) (model.ProductCategory, error)
}

// LocationService serves the country and state lookups of address forms.
type LocationService interface {
	ListCountries(ctx context.Context, p repository.PageRequest) (repository.PageResult[model.Country], error)
	// ListStates pages the states of the country with the given ISO code; case is ignored.
	ListStates(ctx context.Context, countryCode string, p repository.PageRequest) (repository.PageResult[model.State], error)
}

// SeedResult reports how many rows a seed wrote.
type SeedResult struct {
	Categories int `json:"categories" yaml:"categories"`
	Products   int `json:"products" yaml:"products"`
	Countries  int `json:"countries" yaml:"countries"`
	States     int `json:"states" yaml:"states"`
}

// Seeder loads a fixture catalog into the store.
type Seeder interface {
	Seed(ctx context.Context, c fixture.Catalog) (SeedResult, error)
}
