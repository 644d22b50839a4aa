// Package fixture reads catalog snapshots from YAML for seeding stores.
package fixture

import (
	"bytes"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/maxviazov/product-catalog-service/internal/model"
)

//go:embed sample.yaml
var sample []byte

// Catalog is a full set of categories and the products that reference them,
// plus the countries and states offered as shipping addresses.
type Catalog struct {
	Categories []model.ProductCategory `yaml:"categories"`
	Products   []model.Product         `yaml:"products"`
	Countries  []model.Country         `yaml:"countries"`
	States     []model.State           `yaml:"states"`
}

// Decode parses a catalog document and rejects unknown keys so typos fail loudly.
func Decode(r io.Reader) (Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var c Catalog
	if err := dec.Decode(&c); err != nil {
		if errors.Is(err, io.EOF) {
			return Catalog{}, nil
		}
		return Catalog{}, fmt.Errorf("decode fixture: %w", err)
	}
	return c, nil
}

// Load decodes the catalog stored at path.
func Load(path string) (Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		return Catalog{}, fmt.Errorf("open fixture: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Sample returns the catalog bundled with the binary.
func Sample() Catalog {
	c, err := Decode(bytes.NewReader(sample))
	if err != nil {
		panic(err) // embedded at build time; only a broken build gets here
	}
	return c
}
