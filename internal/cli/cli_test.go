package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/product-catalog-service/internal/app"
	"github.com/maxviazov/product-catalog-service/internal/config"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("APP_STORE_DRIVER", "memory")
	t.Setenv("APP_STORE_FIXTURE", "")
	t.Setenv("APP_LOGGER_LEVEL", "error")

	cmd := NewRootCmd("test")
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(context.Background())
	return out.String(), err
}

func TestProductsList_JSON(t *testing.T) {
	out, err := run(t, "products", "list", "--category", "1", "--page", "1", "--size", "3", "-o", "json")
	require.NoError(t, err)

	var page struct {
		Items      []struct{ ID int64 } `json:"items"`
		TotalItems int                  `json:"total_items"`
		TotalPages int                  `json:"total_pages"`
		HasNext    bool                 `json:"has_next"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page), out)
	assert.Len(t, page.Items, 3)
	assert.Equal(t, 8, page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	assert.True(t, page.HasNext)
}

func TestProductsList_Table(t *testing.T) {
	out, err := run(t, "products", "list", "--category", "4", "--sort", "name:desc", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "PRICE")
	assert.Contains(t, out, "Luggage Tag - Skyline")
	assert.Contains(t, out, "page 1 of 1, 3 items")
}

func TestProductsList_ValidationErrorNamesField(t *testing.T) {
	_, err := run(t, "products", "list", "--category", "1", "--size", "0", "-o", "json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "size")

	_, err = run(t, "products", "list", "--category", "1", "--sort", "name:sideways", "-o", "json")
	assert.ErrorContains(t, err, "--sort")
}

func TestProductsSearchAndGet(t *testing.T) {
	out, err := run(t, "products", "search", "--name", "mouse pad", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "total_items: 4")

	out, err = run(t, "products", "get", "1", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "Crash Course in Python")

	_, err = run(t, "products", "get", "999", "-o", "json")
	assert.Error(t, err)
}

func TestCategories(t *testing.T) {
	out, err := run(t, "categories", "list", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "Coffee Mugs")
	assert.Contains(t, out, "4 items")

	out, err = run(t, "categories", "get", "3", "-o", "json")
	require.NoError(t, err)
	assert.Contains(t, out, "Mouse Pads")
}

func TestCountriesAndStates(t *testing.T) {
	out, err := run(t, "countries", "list", "--sort", "code", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "CODE")
	assert.Contains(t, out, "United States")
	assert.Contains(t, out, "page 1 of 1, 6 items")

	out, err = run(t, "countries", "states", "us", "--size", "2", "--sort", "name:desc", "-o", "json")
	require.NoError(t, err)
	var page struct {
		Items []struct {
			Name string `json:"name"`
		} `json:"items"`
		TotalItems int `json:"total_items"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &page), out)
	assert.Equal(t, 5, page.TotalItems)
	require.Len(t, page.Items, 2)
	assert.Equal(t, "Washington", page.Items[0].Name)

	_, err = run(t, "countries", "states", "usa", "-o", "json")
	assert.ErrorContains(t, err, "country_code")
}

func TestEmptyPageTableSaysNoItems(t *testing.T) {
	out, err := run(t, "products", "list", "--category", "77", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "no items")
	assert.NotContains(t, out, "page 1 of 0")

	out, err = run(t, "countries", "states", "ZZ", "-o", "table")
	require.NoError(t, err)
	assert.Contains(t, out, "no items")
}

func TestSeedAndMigrate_Memory(t *testing.T) {
	out, err := run(t, "seed", "-o", "json")
	require.NoError(t, err)
	assert.JSONEq(t, `{"categories":4,"products":20,"countries":6,"states":21}`, out)

	_, err = run(t, "migrate", "up", "-o", "json")
	assert.ErrorContains(t, err, "no schema")

	_, err = run(t, "migrate", "sideways", "-o", "json")
	assert.Error(t, err)
}

func TestUnknownOutputFormat(t *testing.T) {
	_, err := run(t, "categories", "list", "-o", "xml")
	assert.ErrorContains(t, err, "xml")
}

func TestServe_StopsWhenContextEnds(t *testing.T) {
	e := &env{
		cfg: &config.Config{
			App:     config.AppConfig{Name: "catalog", Env: "prod"},
			HTTP:    config.HTTPConfig{Addr: "127.0.0.1:0", ShutdownTimeout: time.Second},
			Catalog: config.CatalogConfig{DefaultPageSize: 20, MaxPageSize: 100, DefaultSort: "id", DefaultDirection: "asc"},
			Store:   config.StoreConfig{Driver: "memory"},
		},
		logger:  zerolog.New(io.Discard),
		openApp: app.New,
	}
	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)
	assert.NoError(t, e.serve(ctx))
}
