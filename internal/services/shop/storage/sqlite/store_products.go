package sqlite

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/asjuices/storefront/internal/platform/filter"
	"github.com/asjuices/storefront/internal/platform/money"
	"github.com/asjuices/storefront/internal/services/shop/catalog"
)

const productColumns = `slug, name, category, description, ingredients_json, size_ml, price_cents, featured, sort_order`

// PutProduct inserts or replaces a catalog product.
func (s *Store) PutProduct(ctx context.Context, product catalog.Product) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(product.Slug) == "" {
		return fmt.Errorf("product slug is required")
	}
	ingredients := product.Ingredients
	if ingredients == nil {
		ingredients = []string{}
	}
	ingredientsJSON, err := json.Marshal(ingredients)
	if err != nil {
		return fmt.Errorf("encode ingredients: %w", err)
	}
	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO products (`+productColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (slug) DO UPDATE SET
    name = excluded.name,
    category = excluded.category,
    description = excluded.description,
    ingredients_json = excluded.ingredients_json,
    size_ml = excluded.size_ml,
    price_cents = excluded.price_cents,
    featured = excluded.featured,
    sort_order = excluded.sort_order`,
		product.Slug,
		product.Name,
		string(product.Category),
		product.Description,
		string(ingredientsJSON),
		product.SizeML,
		int64(product.Price),
		boolInt(product.Featured),
		product.SortOrder,
	)
	if err != nil {
		return fmt.Errorf("put product %s: %w", product.Slug, err)
	}
	return nil
}

// GetProduct returns a product by slug.
func (s *Store) GetProduct(ctx context.Context, slug string) (catalog.Product, error) {
	if err := s.ready(ctx); err != nil {
		return catalog.Product{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+productColumns+` FROM products WHERE slug = ?`, slug)
	product, err := scanProduct(row)
	if err != nil {
		return catalog.Product{}, notFoundIfNoRows(err)
	}
	return product, nil
}

// ListProducts returns products matching cond in display order.
func (s *Store) ListProducts(ctx context.Context, cond filter.SQLCondition) ([]catalog.Product, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	clause, params := where(nil, nil, cond)
	rows, err := s.sqlDB.QueryContext(ctx, `SELECT `+productColumns+` FROM products`+clause+` ORDER BY sort_order, name`, params...)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()

	var products []catalog.Product
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProduct(row rowScanner) (catalog.Product, error) {
	var (
		product         catalog.Product
		category        string
		ingredientsJSON string
		price           int64
		featured        int
	)
	if err := row.Scan(
		&product.Slug,
		&product.Name,
		&category,
		&product.Description,
		&ingredientsJSON,
		&product.SizeML,
		&price,
		&featured,
		&product.SortOrder,
	); err != nil {
		return catalog.Product{}, err
	}
	if err := json.Unmarshal([]byte(ingredientsJSON), &product.Ingredients); err != nil {
		return catalog.Product{}, fmt.Errorf("decode ingredients of %s: %w", product.Slug, err)
	}
	product.Category = catalog.Category(category)
	product.Price = money.Cents(price)
	product.Featured = featured != 0
	return product, nil
}
