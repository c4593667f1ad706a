package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/asjuices/storefront/internal/services/shop/schedule"
	"github.com/asjuices/storefront/internal/services/shop/storage"
)

const deliveryColumns = `id, user_id, item, weekday, delivery_window, quantity, active, created_at, updated_at`

// PutDelivery inserts or replaces a delivery.
func (s *Store) PutDelivery(ctx context.Context, d schedule.Delivery) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO deliveries (`+deliveryColumns+`)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    item = excluded.item,
    weekday = excluded.weekday,
    delivery_window = excluded.delivery_window,
    quantity = excluded.quantity,
    active = excluded.active,
    updated_at = excluded.updated_at`,
		d.ID, d.UserID, d.Item, int(d.Weekday), string(d.Window), d.Quantity, boolInt(d.Active),
		toMillis(d.CreatedAt), toMillis(d.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("put delivery: %w", err)
	}
	return nil
}

// GetDelivery returns a delivery by id.
func (s *Store) GetDelivery(ctx context.Context, deliveryID string) (schedule.Delivery, error) {
	if err := s.ready(ctx); err != nil {
		return schedule.Delivery{}, err
	}
	row := s.sqlDB.QueryRowContext(ctx, `SELECT `+deliveryColumns+` FROM deliveries WHERE id = ?`, deliveryID)
	d, err := scanDelivery(row)
	if err != nil {
		return schedule.Delivery{}, notFoundIfNoRows(err)
	}
	return d, nil
}

// ListDeliveries returns userID's deliveries by weekday.
func (s *Store) ListDeliveries(ctx context.Context, userID string) ([]schedule.Delivery, error) {
	if err := s.ready(ctx); err != nil {
		return nil, err
	}
	rows, err := s.sqlDB.QueryContext(ctx,
		`SELECT `+deliveryColumns+` FROM deliveries WHERE user_id = ? ORDER BY weekday, created_at`, userID)
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	defer rows.Close()

	var out []schedule.Delivery
	for rows.Next() {
		d, err := scanDelivery(rows)
		if err != nil {
			return nil, fmt.Errorf("scan delivery: %w", err)
		}
		out = append(out, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	return out, nil
}

// DeleteDelivery removes a delivery.
func (s *Store) DeleteDelivery(ctx context.Context, deliveryID string) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx, `DELETE FROM deliveries WHERE id = ?`, deliveryID)
	if err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanDelivery(row rowScanner) (schedule.Delivery, error) {
	var (
		d                    schedule.Delivery
		weekday, active      int
		window               string
		createdAt, updatedAt int64
	)
	if err := row.Scan(&d.ID, &d.UserID, &d.Item, &weekday, &window, &d.Quantity, &active, &createdAt, &updatedAt); err != nil {
		return schedule.Delivery{}, err
	}
	d.Weekday = time.Weekday(weekday)
	d.Window = schedule.Window(window)
	d.Active = active != 0
	d.CreatedAt = fromMillis(createdAt)
	d.UpdatedAt = fromMillis(updatedAt)
	return d, nil
}
