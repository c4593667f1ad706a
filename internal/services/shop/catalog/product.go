package catalog

import (
	"fmt"
	"strings"

	apperrors "github.com/asjuices/storefront/internal/platform/errors"
	"github.com/asjuices/storefront/internal/platform/money"
)

// Category groups products on the catalog page.
type Category string

const (
	CategoryJuice   Category = "juice"
	CategoryShot    Category = "shot"
	CategoryCleanse Category = "cleanse"
	CategoryBundle  Category = "bundle"
)

// Categories lists the known categories in display order.
func Categories() []Category {
	return []Category{CategoryJuice, CategoryShot, CategoryCleanse, CategoryBundle}
}

// ParseCategory normalizes raw and reports whether it names a known category.
func ParseCategory(raw string) (Category, bool) {
	value := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range Categories() {
		if value == known {
			return value, true
		}
	}
	return "", false
}

// Product is one orderable catalog entry.
type Product struct {
	Slug        string      `yaml:"slug"`
	Name        string      `yaml:"name"`
	Category    Category    `yaml:"category"`
	Description string      `yaml:"description"`
	Ingredients []string    `yaml:"ingredients"`
	SizeML      int         `yaml:"size_ml"`
	Price       money.Cents `yaml:"price_cents"`
	Featured    bool        `yaml:"featured"`
	SortOrder   int         `yaml:"sort_order"`
}

// Validate checks a product before it is seeded.
func (p Product) Validate() error {
	if strings.TrimSpace(p.Slug) == "" {
		return invalid("slug", "product slug is required")
	}
	if p.Slug != strings.ToLower(p.Slug) || strings.ContainsAny(p.Slug, " /?#") {
		return invalid("slug", fmt.Sprintf("product slug %q must be lowercase and url-safe", p.Slug))
	}
	if strings.TrimSpace(p.Name) == "" {
		return invalid("name", fmt.Sprintf("product %s: name is required", p.Slug))
	}
	if _, ok := ParseCategory(string(p.Category)); !ok {
		return invalid("category", fmt.Sprintf("product %s: unknown category %q", p.Slug, p.Category))
	}
	if p.Price <= 0 {
		return invalid("price_cents", fmt.Sprintf("product %s: price must be positive", p.Slug))
	}
	if p.SizeML < 0 {
		return invalid("size_ml", fmt.Sprintf("product %s: size must not be negative", p.Slug))
	}
	return nil
}

func invalid(field, message string) error {
	return apperrors.WithMetadata(apperrors.CodeCatalogInvalid, message, map[string]string{"field": field})
}
