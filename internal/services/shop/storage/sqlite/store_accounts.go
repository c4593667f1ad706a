package sqlite

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/asjuices/storefront/internal/services/shop/account"
	"github.com/asjuices/storefront/internal/services/shop/storage"
)

// CreateUser persists a user and its initial profile atomically.
func (s *Store) CreateUser(ctx context.Context, u account.User, profile account.Profile) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	if strings.TrimSpace(u.Email) == "" {
		return fmt.Errorf("email is required")
	}

	tx, err := s.sqlDB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("start transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO users (id, email, password_hash, created_at, updated_at) VALUES (?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, toMillis(u.CreatedAt), toMillis(u.UpdatedAt),
	); err != nil {
		if isConstraintError(err) {
			return fmt.Errorf("put user: %w", storage.ErrConflict)
		}
		return fmt.Errorf("put user: %w", err)
	}
	profile.UserID = u.ID
	if err := putProfile(ctx, tx, profile); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit user: %w", err)
	}
	return nil
}

// GetUser returns a user by id.
func (s *Store) GetUser(ctx context.Context, userID string) (account.User, error) {
	return s.getUser(ctx, `id = ?`, userID)
}

// GetUserByEmail returns a user by normalized email.
func (s *Store) GetUserByEmail(ctx context.Context, email string) (account.User, error) {
	return s.getUser(ctx, `email = ?`, email)
}

func (s *Store) getUser(ctx context.Context, clause string, value string) (account.User, error) {
	if err := s.ready(ctx); err != nil {
		return account.User{}, err
	}
	var (
		u                    account.User
		createdAt, updatedAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, email, password_hash, created_at, updated_at FROM users WHERE `+clause, value,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &createdAt, &updatedAt)
	if err != nil {
		return account.User{}, notFoundIfNoRows(err)
	}
	u.CreatedAt = fromMillis(createdAt)
	u.UpdatedAt = fromMillis(updatedAt)
	return u, nil
}

// GetProfile returns the profile of userID.
func (s *Store) GetProfile(ctx context.Context, userID string) (account.Profile, error) {
	if err := s.ready(ctx); err != nil {
		return account.Profile{}, err
	}
	var (
		p         account.Profile
		updatedAt int64
	)
	err := s.sqlDB.QueryRowContext(ctx, `
SELECT user_id, full_name, phone, address_line1, address_line2, city, postal_code, delivery_notes, updated_at
FROM profiles WHERE user_id = ?`, userID,
	).Scan(&p.UserID, &p.FullName, &p.Phone, &p.AddressLine1, &p.AddressLine2, &p.City, &p.PostalCode, &p.DeliveryNotes, &updatedAt)
	if err != nil {
		return account.Profile{}, notFoundIfNoRows(err)
	}
	p.UpdatedAt = fromMillis(updatedAt)
	return p, nil
}

// PutProfile inserts or replaces a profile.
func (s *Store) PutProfile(ctx context.Context, profile account.Profile) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	if strings.TrimSpace(profile.UserID) == "" {
		return fmt.Errorf("user id is required")
	}
	return putProfile(ctx, s.sqlDB, profile)
}

func putProfile(ctx context.Context, exec execContexter, p account.Profile) error {
	updatedAt := p.UpdatedAt
	if updatedAt.IsZero() {
		updatedAt = time.Now()
	}
	_, err := exec.ExecContext(ctx, `
INSERT INTO profiles (user_id, full_name, phone, address_line1, address_line2, city, postal_code, delivery_notes, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (user_id) DO UPDATE SET
    full_name = excluded.full_name,
    phone = excluded.phone,
    address_line1 = excluded.address_line1,
    address_line2 = excluded.address_line2,
    city = excluded.city,
    postal_code = excluded.postal_code,
    delivery_notes = excluded.delivery_notes,
    updated_at = excluded.updated_at`,
		p.UserID, p.FullName, p.Phone, p.AddressLine1, p.AddressLine2, p.City, p.PostalCode, p.DeliveryNotes, toMillis(updatedAt),
	)
	if err != nil {
		return fmt.Errorf("put profile: %w", err)
	}
	return nil
}
