package catalog

import (
	"bytes"
	_ "embed"
	"fmt"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed products.yaml
var productsYAML []byte

type productDocument struct {
	Products []Product `yaml:"products"`
}

// Load parses and validates the embedded product catalog.
func Load() ([]Product, error) {
	return Parse(productsYAML)
}

// Parse decodes a catalog document, rejecting unknown keys and duplicate
// slugs. Products are returned in display order.
func Parse(data []byte) ([]Product, error) {
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var doc productDocument
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if len(doc.Products) == 0 {
		return nil, invalid("products", "catalog has no products")
	}

	seen := make(map[string]struct{}, len(doc.Products))
	for _, product := range doc.Products {
		if err := product.Validate(); err != nil {
			return nil, err
		}
		if _, dup := seen[product.Slug]; dup {
			return nil, invalid("slug", fmt.Sprintf("duplicate product slug %q", product.Slug))
		}
		seen[product.Slug] = struct{}{}
	}
	SortProducts(doc.Products)
	return doc.Products, nil
}

// SortProducts orders products by sort order, then name.
func SortProducts(products []Product) {
	sort.SliceStable(products, func(i, j int) bool {
		if products[i].SortOrder != products[j].SortOrder {
			return products[i].SortOrder < products[j].SortOrder
		}
		return products[i].Name < products[j].Name
	})
}
