// Package cartcookie ties a browser to its server-side cart.
package cartcookie

import (
	"net/http"

	"github.com/asjuices/storefront/internal/platform/id"
	"github.com/asjuices/storefront/internal/services/storefront/platform/requestmeta"
)

// Name is the cookie holding the cart id.
const Name = "asj_cart"

// Read returns the cart id carried by r, if any.
func Read(r *http.Request) (string, bool) {
	return requestmeta.CookieValue(r, Name)
}

// Ensure returns the request's cart id, minting one and setting the cookie
// when the browser has none yet. The cookie has no expiry so the cart lasts
// for the browser session.
func Ensure(w http.ResponseWriter, r *http.Request, policy requestmeta.SchemePolicy, ids id.Generator) (string, error) {
	if cartID, ok := Read(r); ok {
		return cartID, nil
	}
	if ids == nil {
		ids = id.NewID
	}
	cartID, err := ids()
	if err != nil {
		return "", err
	}
	if w != nil {
		http.SetCookie(w, policy.Cookie(r, Name, cartID, 0))
	}
	return cartID, nil
}
