// Package websession issues and resolves durable browser sessions. A valid
// session is the signed-in state the customer portal is gated on.
package websession

import (
	"context"
	"fmt"
	"strings"
	"time"

	apperrors "github.com/asjuices/storefront/internal/platform/errors"
	"github.com/asjuices/storefront/internal/platform/id"
)

// DefaultTTL is how long a session stays valid after sign-in.
const DefaultTTL = 7 * 24 * time.Hour

// Session is one signed-in browser.
type Session struct {
	ID        string
	UserID    string
	CreatedAt time.Time
	ExpiresAt time.Time
	RevokedAt *time.Time
}

// Active reports whether the session can authenticate requests at now.
func (s Session) Active(now time.Time) bool {
	return s.RevokedAt == nil && s.ExpiresAt.After(now)
}

// Store persists sessions.
type Store interface {
	PutWebSession(ctx context.Context, session Session) error
	GetWebSession(ctx context.Context, id string) (Session, error)
	RevokeWebSession(ctx context.Context, id string, revokedAt time.Time) error
	// DeleteExpiredWebSessions removes sessions expired or revoked before now
	// and returns how many were removed.
	DeleteExpiredWebSessions(ctx context.Context, now time.Time) (int64, error)
}

// Manager creates and resolves sessions.
type Manager struct {
	store Store
	ttl   time.Duration
	clock func() time.Time
	ids   id.Generator
}

// NewManager builds a session manager. A non-positive ttl uses DefaultTTL;
// nil clock and ids use the system defaults.
func NewManager(store Store, ttl time.Duration, clock func() time.Time, ids id.Generator) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	if clock == nil {
		clock = time.Now
	}
	if ids == nil {
		ids = id.NewID
	}
	return &Manager{store: store, ttl: ttl, clock: clock, ids: ids}
}

// TTL returns the session lifetime, for cookie max-age.
func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Create issues a new session for userID.
func (m *Manager) Create(ctx context.Context, userID string) (Session, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Session{}, fmt.Errorf("user id is required")
	}
	sessionID, err := m.ids()
	if err != nil {
		return Session{}, fmt.Errorf("generate web session id: %w", err)
	}
	now := m.clock().UTC()
	session := Session{ID: sessionID, UserID: userID, CreatedAt: now, ExpiresAt: now.Add(m.ttl)}
	if err := m.store.PutWebSession(ctx, session); err != nil {
		return Session{}, fmt.Errorf("put web session: %w", err)
	}
	return session, nil
}

// Resolve returns the active session for id. Missing, revoked and expired
// sessions all resolve to a session-not-found error.
func (m *Manager) Resolve(ctx context.Context, sessionID string) (Session, error) {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return Session{}, apperrors.New(apperrors.CodeSessionNotFound, "web session id is required")
	}
	session, err := m.store.GetWebSession(ctx, sessionID)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			return Session{}, apperrors.Wrap(apperrors.CodeSessionNotFound, "web session not found", err)
		}
		return Session{}, fmt.Errorf("get web session: %w", err)
	}
	if !session.Active(m.clock().UTC()) {
		return Session{}, apperrors.New(apperrors.CodeSessionNotFound, "web session not found")
	}
	return session, nil
}

// Revoke ends a session. Unknown ids are not an error.
func (m *Manager) Revoke(ctx context.Context, sessionID string) error {
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return nil
	}
	if err := m.store.RevokeWebSession(ctx, sessionID, m.clock().UTC()); err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			return nil
		}
		return fmt.Errorf("revoke web session: %w", err)
	}
	return nil
}

// DeleteExpired purges sessions that can no longer authenticate.
func (m *Manager) DeleteExpired(ctx context.Context) (int64, error) {
	removed, err := m.store.DeleteExpiredWebSessions(ctx, m.clock().UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired web sessions: %w", err)
	}
	return removed, nil
}
