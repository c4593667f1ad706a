package websession

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "github.com/asjuices/storefront/internal/platform/errors"
	"github.com/asjuices/storefront/internal/platform/id"
)

type memoryStore struct {
	sessions map[string]Session
	fail     error
}

func newMemoryStore() *memoryStore {
	return &memoryStore{sessions: map[string]Session{}}
}

func (s *memoryStore) PutWebSession(_ context.Context, session Session) error {
	if s.fail != nil {
		return s.fail
	}
	s.sessions[session.ID] = session
	return nil
}

func (s *memoryStore) GetWebSession(_ context.Context, sessionID string) (Session, error) {
	if s.fail != nil {
		return Session{}, s.fail
	}
	session, ok := s.sessions[sessionID]
	if !ok {
		return Session{}, apperrors.New(apperrors.CodeNotFound, "record not found")
	}
	return session, nil
}

func (s *memoryStore) RevokeWebSession(_ context.Context, sessionID string, revokedAt time.Time) error {
	session, ok := s.sessions[sessionID]
	if !ok {
		return apperrors.New(apperrors.CodeNotFound, "record not found")
	}
	session.RevokedAt = &revokedAt
	s.sessions[sessionID] = session
	return nil
}

func (s *memoryStore) DeleteExpiredWebSessions(_ context.Context, now time.Time) (int64, error) {
	var removed int64
	for key, session := range s.sessions {
		if !session.Active(now) {
			delete(s.sessions, key)
			removed++
		}
	}
	return removed, nil
}

type clock struct{ now time.Time }

func (c *clock) Now() time.Time { return c.now }

func TestCreateAndResolve(t *testing.T) {
	t.Parallel()

	clk := &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	manager := NewManager(newMemoryStore(), 0, clk.Now, id.Sequence("ws"))
	ctx := context.Background()

	session, err := manager.Create(ctx, "user-1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if session.ID != "ws-1" || !session.ExpiresAt.Equal(clk.now.Add(DefaultTTL)) {
		t.Fatalf("Create() = %+v", session)
	}

	resolved, err := manager.Resolve(ctx, "ws-1")
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if resolved.UserID != "user-1" {
		t.Fatalf("Resolve().UserID = %q, want user-1", resolved.UserID)
	}

	clk.now = clk.now.Add(DefaultTTL)
	if _, err := manager.Resolve(ctx, "ws-1"); !apperrors.IsCode(err, apperrors.CodeSessionNotFound) {
		t.Fatalf("Resolve(expired) error = %v, want session not found", err)
	}
}

func TestCreateRequiresUser(t *testing.T) {
	t.Parallel()

	manager := NewManager(newMemoryStore(), time.Hour, nil, nil)
	if _, err := manager.Create(context.Background(), "  "); err == nil {
		t.Fatal("Create(blank) should fail")
	}
	if manager.TTL() != time.Hour {
		t.Fatalf("TTL() = %v, want 1h", manager.TTL())
	}
}

func TestResolveMissingAndRevoked(t *testing.T) {
	t.Parallel()

	manager := NewManager(newMemoryStore(), time.Hour, nil, id.Sequence("ws"))
	ctx := context.Background()

	for _, sessionID := range []string{"", "ws-404"} {
		if _, err := manager.Resolve(ctx, sessionID); !apperrors.IsCode(err, apperrors.CodeSessionNotFound) {
			t.Fatalf("Resolve(%q) error = %v, want session not found", sessionID, err)
		}
	}

	session, err := manager.Create(ctx, "user-1")
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := manager.Revoke(ctx, session.ID); err != nil {
		t.Fatalf("Revoke() error = %v", err)
	}
	if _, err := manager.Resolve(ctx, session.ID); !apperrors.IsCode(err, apperrors.CodeSessionNotFound) {
		t.Fatalf("Resolve(revoked) error = %v, want session not found", err)
	}
	if err := manager.Revoke(ctx, "ws-404"); err != nil {
		t.Fatalf("Revoke(missing) error = %v, want nil", err)
	}
}

func TestResolveSurfacesStoreFailure(t *testing.T) {
	t.Parallel()

	store := newMemoryStore()
	store.fail = errors.New("disk gone")
	manager := NewManager(store, time.Hour, nil, nil)
	_, err := manager.Resolve(context.Background(), "ws-1")
	if err == nil || apperrors.IsCode(err, apperrors.CodeSessionNotFound) {
		t.Fatalf("Resolve() error = %v, want internal failure", err)
	}
}

func TestDeleteExpired(t *testing.T) {
	t.Parallel()

	clk := &clock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	store := newMemoryStore()
	manager := NewManager(store, time.Hour, clk.Now, id.Sequence("ws"))
	ctx := context.Background()

	if _, err := manager.Create(ctx, "user-1"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	clk.now = clk.now.Add(30 * time.Minute)
	if _, err := manager.Create(ctx, "user-2"); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	clk.now = clk.now.Add(45 * time.Minute)

	removed, err := manager.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired() error = %v", err)
	}
	if removed != 1 || len(store.sessions) != 1 {
		t.Fatalf("DeleteExpired() = %d, remaining %d; want 1, 1", removed, len(store.sessions))
	}
}
