package fixture_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maxviazov/product-catalog-service/internal/fixture"
)

func TestSample(t *testing.T) {
	c := fixture.Sample()
	require.Len(t, c.Categories, 4)
	require.Len(t, c.Products, 20)

	known := map[int64]bool{}
	for _, cat := range c.Categories {
		known[cat.ID] = true
	}
	for _, p := range c.Products {
		assert.Truef(t, known[p.CategoryID], "product %d references unknown category %d", p.ID, p.CategoryID)
		assert.False(t, p.DateCreated.IsZero())
	}

	require.Len(t, c.Countries, 6)
	require.Len(t, c.States, 21)
	countries := map[int64]bool{}
	for _, co := range c.Countries {
		countries[co.ID] = true
		assert.Len(t, co.Code, 2)
	}
	for _, s := range c.States {
		assert.Truef(t, countries[s.CountryID], "state %d references unknown country %d", s.ID, s.CountryID)
	}
}

func TestDecode_Locations(t *testing.T) {
	doc := `
countries:
  - id: 3
    code: DE
    name: Germany
states:
  - id: 8
    name: Bavaria
    country_id: 3
`
	c, err := fixture.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, c.Countries, 1)
	assert.Equal(t, "DE", c.Countries[0].Code)
	require.Len(t, c.States, 1)
	assert.Equal(t, int64(3), c.States[0].CountryID)
}

func TestDecode(t *testing.T) {
	doc := `
categories:
  - id: 7
    category_name: Posters
products:
  - id: 70
    sku: POSTER-1
    name: Gopher Poster
    unit_price: 9.5
    category_id: 7
    date_created: 2024-05-01T08:30:00Z
`
	c, err := fixture.Decode(strings.NewReader(doc))
	require.NoError(t, err)
	require.Len(t, c.Products, 1)
	assert.Equal(t, "Gopher Poster", c.Products[0].Name)
	assert.Equal(t, int64(7), c.Products[0].CategoryID)
	assert.Equal(t, time.Date(2024, 5, 1, 8, 30, 0, 0, time.UTC), c.Products[0].DateCreated.UTC())
}

func TestDecode_UnknownFieldFails(t *testing.T) {
	_, err := fixture.Decode(strings.NewReader("products:\n  - id: 1\n    colour: red\n"))
	assert.Error(t, err)
}

func TestDecode_Empty(t *testing.T) {
	c, err := fixture.Decode(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, c.Products)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories:\n  - id: 1\n    category_name: Books\n"), 0o644))

	c, err := fixture.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "Books", c.Categories[0].CategoryName)

	_, err = fixture.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
