package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/asjuices/storefront/internal/services/shop/storage"
	"github.com/asjuices/storefront/internal/services/shop/websession"
)

// PutWebSession stores a new web session.
func (s *Store) PutWebSession(ctx context.Context, session websession.Session) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	_, err := s.sqlDB.ExecContext(ctx,
		`INSERT INTO web_sessions (id, user_id, created_at, expires_at, revoked_at) VALUES (?, ?, ?, ?, ?)`,
		session.ID, session.UserID, toMillis(session.CreatedAt), toMillis(session.ExpiresAt), nullMillis(session.RevokedAt),
	)
	if err != nil {
		if isConstraintError(err) {
			return fmt.Errorf("put web session: %w", storage.ErrConflict)
		}
		return fmt.Errorf("put web session: %w", err)
	}
	return nil
}

// GetWebSession returns a web session by id regardless of its state.
func (s *Store) GetWebSession(ctx context.Context, sessionID string) (websession.Session, error) {
	if err := s.ready(ctx); err != nil {
		return websession.Session{}, err
	}
	var (
		session              websession.Session
		createdAt, expiresAt int64
		revokedAt            nullableMillis
	)
	err := s.sqlDB.QueryRowContext(ctx,
		`SELECT id, user_id, created_at, expires_at, revoked_at FROM web_sessions WHERE id = ?`, sessionID,
	).Scan(&session.ID, &session.UserID, &createdAt, &expiresAt, &revokedAt)
	if err != nil {
		return websession.Session{}, notFoundIfNoRows(err)
	}
	session.CreatedAt = fromMillis(createdAt)
	session.ExpiresAt = fromMillis(expiresAt)
	session.RevokedAt = revokedAt.Time()
	return session, nil
}

// RevokeWebSession marks a session revoked. Already revoked sessions keep
// their first revocation time.
func (s *Store) RevokeWebSession(ctx context.Context, sessionID string, revokedAt time.Time) error {
	if err := s.ready(ctx); err != nil {
		return err
	}
	result, err := s.sqlDB.ExecContext(ctx,
		`UPDATE web_sessions SET revoked_at = COALESCE(revoked_at, ?) WHERE id = ?`,
		toMillis(revokedAt), sessionID,
	)
	if err != nil {
		return fmt.Errorf("revoke web session: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("revoke web session: %w", err)
	}
	if affected == 0 {
		return storage.ErrNotFound
	}
	return nil
}

// DeleteExpiredWebSessions removes sessions that expired or were revoked
// before now.
func (s *Store) DeleteExpiredWebSessions(ctx context.Context, now time.Time) (int64, error) {
	if err := s.ready(ctx); err != nil {
		return 0, err
	}
	cutoff := toMillis(now)
	result, err := s.sqlDB.ExecContext(ctx,
		`DELETE FROM web_sessions WHERE expires_at <= ? OR (revoked_at IS NOT NULL AND revoked_at <= ?)`,
		cutoff, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("delete expired web sessions: %w", err)
	}
	return result.RowsAffected()
}
