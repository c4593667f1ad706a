package catalog

import (
	"context"
	"fmt"
	"strings"

	apperrors "github.com/asjuices/storefront/internal/platform/errors"
	"github.com/asjuices/storefront/internal/platform/filter"
)

// FilterSchema declares the fields a catalog listing filter may reference.
var FilterSchema = filter.Schema{
	"category": {Column: "category", Type: filter.String},
	"name":     {Column: "name", Type: filter.String},
	"price":    {Column: "price_cents", Type: filter.Int},
	"size_ml":  {Column: "size_ml", Type: filter.Int},
	"featured": {Column: "featured", Type: filter.Bool},
}

// Store persists catalog products.
type Store interface {
	PutProduct(ctx context.Context, product Product) error
	GetProduct(ctx context.Context, slug string) (Product, error)
	// ListProducts returns products matching cond in display order.
	ListProducts(ctx context.Context, cond filter.SQLCondition) ([]Product, error)
}

// Service answers catalog reads for the storefront.
type Service struct {
	store Store
}

// NewService builds a catalog service over store.
func NewService(store Store) *Service {
	return &Service{store: store}
}

// List returns the products matching an AIP-160 filter expression. An empty
// expression lists the whole catalog.
func (s *Service) List(ctx context.Context, filterExpr string) ([]Product, error) {
	cond, err := filter.Parse(FilterSchema, filterExpr)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFilterInvalid, fmt.Sprintf("invalid product filter: %v", err), err)
	}
	products, err := s.store.ListProducts(ctx, cond)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

// Featured returns the products highlighted on the landing page.
func (s *Service) Featured(ctx context.Context) ([]Product, error) {
	products, err := s.store.ListProducts(ctx, filter.SQLCondition{Clause: "featured = ?", Params: []any{true}})
	if err != nil {
		return nil, fmt.Errorf("list featured products: %w", err)
	}
	return products, nil
}

// Get returns one product by slug.
func (s *Service) Get(ctx context.Context, slug string) (Product, error) {
	slug = strings.ToLower(strings.TrimSpace(slug))
	if slug == "" {
		return Product{}, apperrors.New(apperrors.CodeProductNotFound, "product slug is required")
	}
	product, err := s.store.GetProduct(ctx, slug)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			return Product{}, apperrors.Wrap(apperrors.CodeProductNotFound, fmt.Sprintf("product %q not found", slug), err)
		}
		return Product{}, fmt.Errorf("get product: %w", err)
	}
	return product, nil
}

// CategoryFilter returns the filter expression selecting one category.
func CategoryFilter(category Category) string {
	return fmt.Sprintf("category = %q", string(category))
}

// Seed upserts products into store.
func Seed(ctx context.Context, store Store, products []Product) error {
	for _, product := range products {
		if err := product.Validate(); err != nil {
			return err
		}
		if err := store.PutProduct(ctx, product); err != nil {
			return fmt.Errorf("seed product %s: %w", product.Slug, err)
		}
	}
	return nil
}

// Exists reports whether slug names a catalog product.
func (s *Service) Exists(ctx context.Context, slug string) (bool, error) {
	if _, err := s.Get(ctx, slug); err != nil {
		if apperrors.IsCode(err, apperrors.CodeProductNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}
