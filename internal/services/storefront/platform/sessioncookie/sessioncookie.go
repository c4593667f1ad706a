// Package sessioncookie carries the web session id between requests.
package sessioncookie

import (
	"net/http"
	"strings"
	"time"

	"github.com/asjuices/storefront/internal/services/storefront/platform/requestmeta"
)

// Name is the cookie holding the web session id.
const Name = "asj_session"

// Read returns the session id carried by r, if any. The id is unverified;
// callers resolve it against the session store.
func Read(r *http.Request) (string, bool) {
	return requestmeta.CookieValue(r, Name)
}

// Write stores sessionID so the browser drops it once ttl elapses. A
// non-positive ttl keeps the cookie for the browser session only.
func Write(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy, sessionID string, ttl time.Duration) {
	if w == nil {
		return
	}
	maxAge := 0
	if ttl > 0 {
		maxAge = int(ttl / time.Second)
	}
	http.SetCookie(w, policy.Cookie(r, Name, strings.TrimSpace(sessionID), maxAge))
}

// Clear tells the browser to forget its session.
func Clear(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy) {
	if w == nil {
		return
	}
	http.SetCookie(w, policy.Cookie(r, Name, "", -1))
}
