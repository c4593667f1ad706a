// Package principal resolves the signed-in visitor behind a request.
package principal

import (
	"context"
	"net/http"
	"strings"
	"sync"

	"github.com/asjuices/storefront/internal/services/storefront/module"
	"github.com/asjuices/storefront/internal/services/storefront/platform/httpx"
	"github.com/asjuices/storefront/internal/services/storefront/platform/sessioncookie"
)

type requestState struct {
	userIDOnce sync.Once
	userID     string
	viewerOnce sync.Once
	viewer     module.Viewer
}

type requestStateKey struct{}

// Resolver maps session cookies to users. Lookups are cached per request
// once State has run.
type Resolver struct {
	Sessions module.Sessions
	Accounts module.Accounts
}

// State attaches the per-request cache.
func State() httpx.Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := context.WithValue(r.Context(), requestStateKey{}, &requestState{})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func stateFrom(r *http.Request) *requestState {
	if r == nil {
		return nil
	}
	state, _ := r.Context().Value(requestStateKey{}).(*requestState)
	return state
}

func (p Resolver) resolveUserIDUncached(r *http.Request) string {
	if p.Sessions == nil || r == nil {
		return ""
	}
	sessionID, ok := sessioncookie.Read(r)
	if !ok {
		return ""
	}
	session, err := p.Sessions.Resolve(r.Context(), sessionID)
	if err != nil {
		return ""
	}
	return strings.TrimSpace(session.UserID)
}

// UserID returns the user behind r's session cookie, or "".
func (p Resolver) UserID(r *http.Request) string {
	if state := stateFrom(r); state != nil {
		state.userIDOnce.Do(func() {
			state.userID = p.resolveUserIDUncached(r)
		})
		return state.userID
	}
	return p.resolveUserIDUncached(r)
}

func (p Resolver) resolveViewerUncached(r *http.Request) module.Viewer {
	userID := p.UserID(r)
	if userID == "" {
		return module.Viewer{}
	}
	viewer := module.Viewer{UserID: userID}
	if p.Accounts == nil {
		return viewer
	}
	if user, err := p.Accounts.GetUser(r.Context(), userID); err == nil {
		viewer.Email = user.Email
	}
	return viewer
}

// Viewer returns the page-chrome viewer for r.
func (p Resolver) Viewer(r *http.Request) module.Viewer {
	if state := stateFrom(r); state != nil {
		state.viewerOnce.Do(func() {
			state.viewer = p.resolveViewerUncached(r)
		})
		return state.viewer
	}
	return p.resolveViewerUncached(r)
}

// AuthRequired reports whether r carries a live session.
func (p Resolver) AuthRequired(r *http.Request) bool {
	return p.UserID(r) != ""
}

// Apply sets the resolver hooks on deps.
func (p Resolver) Apply(deps module.Dependencies) module.Dependencies {
	deps.ResolveUserID = p.UserID
	deps.ResolveViewer = p.Viewer
	return deps
}
