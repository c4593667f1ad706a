package principal

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apperrors "github.com/asjuices/storefront/internal/platform/errors"
	"github.com/asjuices/storefront/internal/services/shop/account"
	"github.com/asjuices/storefront/internal/services/shop/websession"
	"github.com/asjuices/storefront/internal/services/storefront/module"
	"github.com/asjuices/storefront/internal/services/storefront/platform/sessioncookie"
)

type fakeSessions struct {
	module.Sessions
	calls    int
	sessions map[string]string
}

func (f *fakeSessions) Resolve(_ context.Context, sessionID string) (websession.Session, error) {
	f.calls++
	userID, ok := f.sessions[sessionID]
	if !ok {
		return websession.Session{}, apperrors.New(apperrors.CodeSessionNotFound, "missing")
	}
	return websession.Session{ID: sessionID, UserID: userID, ExpiresAt: time.Now().Add(time.Hour)}, nil
}

type fakeAccounts struct {
	module.Accounts
}

func (fakeAccounts) GetUser(_ context.Context, userID string) (account.User, error) {
	return account.User{ID: userID, Email: userID + "@example.com"}, nil
}

func TestResolverCachesPerRequest(t *testing.T) {
	t.Parallel()

	sessions := &fakeSessions{sessions: map[string]string{"s1": "u1"}}
	resolver := Resolver{Sessions: sessions, Accounts: fakeAccounts{}}

	var got module.Viewer
	var authed bool
	handler := State()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authed = resolver.AuthRequired(r)
		_ = resolver.UserID(r)
		got = resolver.Viewer(r)
	}))
	req := httptest.NewRequest(http.MethodGet, "/app/profile", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "s1"})
	handler.ServeHTTP(httptest.NewRecorder(), req)

	if !authed {
		t.Fatal("expected session to authenticate")
	}
	if got.UserID != "u1" || got.Email != "u1@example.com" {
		t.Fatalf("viewer = %+v", got)
	}
	if sessions.calls != 1 {
		t.Fatalf("Resolve calls = %d, want 1", sessions.calls)
	}
}

func TestResolverRejectsUnknownSession(t *testing.T) {
	t.Parallel()

	resolver := Resolver{Sessions: &fakeSessions{sessions: map[string]string{}}}
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "stale"})
	if resolver.AuthRequired(req) {
		t.Fatal("stale session should not authenticate")
	}
	if viewer := resolver.Viewer(req); viewer.SignedIn() {
		t.Fatalf("viewer = %+v, want anonymous", viewer)
	}
	if got := (Resolver{}).UserID(req); got != "" {
		t.Fatalf("UserID without sessions = %q", got)
	}
}

func TestApplySetsHooks(t *testing.T) {
	t.Parallel()

	deps := Resolver{Sessions: &fakeSessions{sessions: map[string]string{"s1": "u1"}}}.Apply(module.Dependencies{})
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: sessioncookie.Name, Value: "s1"})
	if deps.UserID(req) != "u1" {
		t.Fatalf("deps.UserID = %q", deps.UserID(req))
	}
}
