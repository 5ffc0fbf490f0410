// Package catalog loads the products a page shows.
package catalog

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/utafrali/storefront/internal/domain"
	apperrors "github.com/utafrali/storefront/pkg/errors"
	"github.com/utafrali/storefront/pkg/slug"
)

//go:embed default.yaml
var defaultCatalog []byte

type file struct {
	Products []entry `yaml:"products"`
}

type entry struct {
	ID       string           `yaml:"id"`
	Brand    string           `yaml:"brand"`
	Name     string           `yaml:"name"`
	OnSale   bool             `yaml:"on_sale"`
	Details  []string         `yaml:"details"`
	Variants []domain.Variant `yaml:"variants"`
}

// Default returns the built-in catalog.
func Default() ([]*domain.Product, error) {
	return Parse(defaultCatalog)
}

// Load reads the catalog at path, or the built-in one when path is empty.
func Load(path string) ([]*domain.Product, error) {
	if path == "" {
		return Default()
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	products, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("catalog %s: %w", path, err)
	}
	return products, nil
}

// Parse decodes a YAML catalog. Entries without an id get one derived from
// brand and name.
func Parse(data []byte) ([]*domain.Product, error) {
	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, apperrors.InvalidInput(fmt.Sprintf("decode catalog: %v", err))
	}
	if len(f.Products) == 0 {
		return nil, apperrors.InvalidInput("catalog has no products")
	}

	products := make([]*domain.Product, 0, len(f.Products))
	seen := make(map[string]struct{}, len(f.Products))
	for i, e := range f.Products {
		id := e.ID
		if id == "" {
			id = slug.Generate(e.Brand, e.Name)
		}
		if _, dup := seen[id]; dup {
			return nil, apperrors.InvalidInput(fmt.Sprintf("duplicate product id %q", id))
		}
		seen[id] = struct{}{}

		p, err := domain.NewProduct(id, e.Brand, e.Name, e.OnSale, e.Details, e.Variants)
		if err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		products = append(products, p)
	}
	return products, nil
}
