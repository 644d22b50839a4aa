// Package app assembles the configured store and the services on top of it.
package app

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/maxviazov/product-catalog-service/internal/config"
	"github.com/maxviazov/product-catalog-service/internal/fixture"
	"github.com/maxviazov/product-catalog-service/internal/repository"
	"github.com/maxviazov/product-catalog-service/internal/repository/memory"
	"github.com/maxviazov/product-catalog-service/internal/repository/mongodb"
	"github.com/maxviazov/product-catalog-service/internal/repository/mysql"
	"github.com/maxviazov/product-catalog-service/internal/repository/postgres"
	"github.com/maxviazov/product-catalog-service/internal/service"
)

// App is everything a transport needs. Close releases the store.
type App struct {
	Store      repository.Store
	Products   service.ProductService
	Categories service.CategoryService
	Locations  service.LocationService
	Seeder     service.Seeder
	Paging     service.Paging
}

// Paging turns the catalog section into service defaults.
func Paging(cfg config.CatalogConfig) service.Paging {
	return service.Paging{
		DefaultPageSize:  cfg.DefaultPageSize,
		MaxPageSize:      cfg.MaxPageSize,
		DefaultSort:      cfg.DefaultSort,
		DefaultDirection: repository.SortDirection(cfg.DefaultDirection),
	}
}

// New opens the store selected by store.driver and builds the services.
// The memory store is seeded right away, from store.fixture or the bundled sample.
func New(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (*App, error) {
	store, err := OpenStore(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	a := Build(store, Paging(cfg.Catalog), logger)

	if cfg.Store.Driver == "memory" {
		cat := fixture.Sample()
		if cfg.Store.Fixture != "" {
			if cat, err = fixture.Load(cfg.Store.Fixture); err != nil {
				_ = store.Close()
				return nil, err
			}
		}
		if _, err := a.Seeder.Seed(ctx, cat); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("seed memory store: %w", err)
		}
	}
	return a, nil
}

// Build wires services over an already open store.
func Build(store repository.Store, paging service.Paging, logger zerolog.Logger) *App {
	return &App{
		Store:      store,
		Products:   service.NewProductService(store.Products, paging, logger),
		Categories: service.NewCategoryService(store.Categories, paging, logger),
		Locations:  service.NewLocationService(store.Countries, store.States, paging, logger),
		Seeder:     service.NewSeeder(store, logger),
		Paging:     paging,
	}
}

// Close releases the underlying store.
func (a *App) Close() error {
	if a == nil || a.Store.Close == nil {
		return nil
	}
	return a.Store.Close()
}

// OpenStore connects to the backend named by store.driver.
func OpenStore(ctx context.Context, cfg *config.Config, logger zerolog.Logger) (repository.Store, error) {
	switch cfg.Store.Driver {
	case "", "memory":
		return memory.NewStore(), nil
	case "postgres":
		pool, err := postgres.Open(ctx, cfg.Postgres, &logger)
		if err != nil {
			return repository.Store{}, err
		}
		return postgres.NewStore(pool), nil
	case "mysql":
		db, err := mysql.Open(ctx, cfg.MySQL, &logger)
		if err != nil {
			return repository.Store{}, err
		}
		return mysql.NewStore(db), nil
	case "mongo":
		client, err := mongodb.Open(ctx, cfg.Mongo, &logger)
		if err != nil {
			return repository.Store{}, err
		}
		db := client.Database(cfg.Mongo.Database)
		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			_ = client.Disconnect(ctx)
			return repository.Store{}, err
		}
		return mongodb.NewStore(client, db, cfg.Mongo.Transactions), nil
	default:
		return repository.Store{}, fmt.Errorf("unknown store driver %q", cfg.Store.Driver)
	}
}
