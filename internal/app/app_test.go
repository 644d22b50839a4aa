package app_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/product-catalog-service/internal/app"
	"github.com/maxviazov/product-catalog-service/internal/config"
	"github.com/maxviazov/product-catalog-service/internal/repository"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Catalog: config.CatalogConfig{DefaultPageSize: 5, MaxPageSize: 50, DefaultSort: "name", DefaultDirection: "desc"},
		Store:   config.StoreConfig{Driver: "memory"},
	}
}

func TestNew_MemorySeedsSample(t *testing.T) {
	a, err := app.New(context.Background(), memoryConfig(), zerolog.New(io.Discard))
	require.NoError(t, err)
	t.Cleanup(func() { _ = a.Close() })

	cats, err := a.Categories.ListCategories(context.Background(), repository.PageRequest{PageSize: 50})
	require.NoError(t, err)
	assert.Equal(t, 4, cats.TotalItems)

	res, err := a.Products.ListProductsByCategory(context.Background(), cats.Items[0].ID, repository.PageRequest{PageSize: a.Paging.DefaultPageSize})
	require.NoError(t, err)
	assert.Equal(t, "name", res.SortKey)
	assert.Equal(t, repository.SortDesc, res.Direction)
	assert.NoError(t, a.Store.Pinger.Ping(context.Background()))

	states, err := a.Locations.ListStates(context.Background(), "in", repository.PageRequest{PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, 3, states.TotalItems)
	assert.Equal(t, "Maharashtra", states.Items[0].Name, "default ordering applies to states too")
}

func TestNew_MemoryFixtureFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	doc := "categories:\n  - {id: 7, category_name: Posters}\nproducts:\n  - {id: 1, name: Poster A, category_id: 7, unit_price: 5}\n"
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o600))

	cfg := memoryConfig()
	cfg.Store.Fixture = path
	a, err := app.New(context.Background(), cfg, zerolog.New(io.Discard))
	require.NoError(t, err)

	res, err := a.Products.ListProductsByCategory(context.Background(), 7, repository.PageRequest{PageSize: 5})
	require.NoError(t, err)
	assert.Equal(t, 1, res.TotalItems)

	cfg.Store.Fixture = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = app.New(context.Background(), cfg, zerolog.New(io.Discard))
	assert.Error(t, err)
}

func TestOpenStore_UnknownDriver(t *testing.T) {
	cfg := memoryConfig()
	cfg.Store.Driver = "cassandra"
	_, err := app.OpenStore(context.Background(), cfg, zerolog.New(io.Discard))
	assert.ErrorContains(t, err, "cassandra")
}
