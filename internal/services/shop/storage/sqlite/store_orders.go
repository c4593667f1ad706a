package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/asjuices/storefront/internal/platform/filter"
	"github.com/asjuices/storefront/internal/platform/money"
	"github.com/asjuices/storefront/internal/services/shop/cart"
	"github.com/asjuices/storefront/internal/services/shop/orders"
	"github.com/asjuices/storefront/internal/services/shop/storage"
)

const orderColumns = `id, user_id, email, lines_json, total_cents, currency, status, payment_ref, payment_token, last4, created_at, updated_at`

// PutOrder inserts a new order.
func (s *Store) PutOrder(ctx context.Context, order orders.Order) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(order.ID) == "" {
		return fmt.Errorf("order id is required")
	}
	lines := order.Lines
	if lines == nil {
		lines = []cart.Line{}
	}
	linesJSON, err := json.Marshal(lines)
	if err != nil {
		return fmt.Errorf("encode order lines: %w", err)
	}
	userID := sql.NullString{String: order.UserID, Valid: order.UserID != ""}
	_, err = s.sqlDB.ExecContext(ctx, `
INSERT INTO orders (`+orderColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		order.ID,
		userID,
		order.Email,
		string(linesJSON),
		int64(order.Total),
		order.Currency,
		string(order.Status),
		order.PaymentRef,
		order.PaymentToken,
		order.Last4,
		toMillis(order.CreatedAt),
		toMillis(order.UpdatedAt),
	)
	if err != nil {
		if isConstraintError(err) {
			return fmt.Errorf("put order: %w", storage.ErrConflict)
		}
		return fmt.Errorf("put order: %w", err)
	}
	return nil
}

// GetOrder returns an order by id.
func (s *Store) GetOrder(ctx context.Context, orderID string) (orders.Order, error) {
	if err := s.ready(ctx); err != nil {
		return orders.Order{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = ?`, orderID)
	order, err := scanOrder(row)
	if err != nil {
		return orders.Order{}, notFoundIfNoRows(err)
	}
	return order, nil
}

// ListOrders returns userID's orders matching cond, newest first.
func (s *Store) ListOrders(ctx context.Context, userID string, cond filter.SQLCondition) ([]orders.Order, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	clause, params := where([]string{"user_id = ?"}, []any{userID}, cond)
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+orderColumns+` FROM orders`+clause+` ORDER BY created_at DESC, id DESC`, params...)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	defer rows.Close()

	var out []orders.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		out = append(out, order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return out, nil
}

// TransitionOrderStatus moves an order from one status to another in a
// single statement, so a concurrent change cannot be overwritten.
func (s *Store) TransitionOrderStatus(ctx context.Context, orderID string, from, to orders.Status, updatedAt time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`UPDATE orders SET status = ?, updated_at = ? WHERE id = ? AND status = ?`,
		string(to), toMillis(updatedAt), orderID, string(from),
	)
	if err != nil {
		return fmt.Errorf("transition order status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("transition order status: %w", err)
	}
	if affected > 0 {
		return nil
	}
	var exists int
	err = s.sqlDB.QueryRowContext(ctx, `SELECT 1 FROM orders WHERE id = ?`, orderID).Scan(&exists)
	if errors.Is(err, sql.ErrNoRows) {
		return storage.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("transition order status: %w", err)
	}
	return storage.ErrConflict
}

func scanOrder(row rowScanner) (orders.Order, error) {
	var (
		order                orders.Order
		userID               sql.NullString
		linesJSON, status    string
		total                int64
		createdAt, updatedAt int64
	)
	if err := row.Scan(
		&order.ID,
		&userID,
		&order.Email,
		&linesJSON,
		&total,
		&order.Currency,
		&status,
		&order.PaymentRef,
		&order.PaymentToken,
		&order.Last4,
		&createdAt,
		&updatedAt,
	); err != nil {
		return orders.Order{}, err
	}
	if err := json.Unmarshal([]byte(linesJSON), &order.Lines); err != nil {
		return orders.Order{}, fmt.Errorf("decode lines of order %s: %w", order.ID, err)
	}
	order.UserID = userID.String
	order.Total = money.Cents(total)
	order.Status = orders.Status(status)
	order.CreatedAt = fromMillis(createdAt)
	order.UpdatedAt = fromMillis(updatedAt)
	return order, nil
}
