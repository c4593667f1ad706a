// Package storefronttest builds storefront module dependencies over a
// throwaway SQLite store for handler tests.
package storefronttest

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/asjuices/storefront/internal/platform/id"
	"github.com/asjuices/storefront/internal/services/shop/cart"
	"github.com/asjuices/storefront/internal/services/shop/runtime"
	"github.com/asjuices/storefront/internal/services/shop/storage/sqlite"
	"github.com/asjuices/storefront/internal/services/storefront/module"
	"github.com/asjuices/storefront/internal/services/storefront/platform/cartcookie"
	"github.com/asjuices/storefront/internal/services/storefront/platform/principal"
	"github.com/asjuices/storefront/internal/services/storefront/platform/sessioncookie"
)

// Now is the fixed clock every Env uses: a Monday morning.
var Now = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

// TestCard is a Luhn-valid card that does not expire on Now.
var TestCard = url.Values{
	"holder":    {"Ana Souza"},
	"number":    {"4242 4242 4242 4242"},
	"exp_month": {"12"},
	"exp_year":  {"2030"},
	"cvc":       {"123"},
}

// Env is a wired storefront runtime plus request helpers.
type Env struct {
	Runtime *runtime.Runtime
	Deps    module.Dependencies
}

// New opens a temp store, seeds it and builds dependencies with the
// principal resolver applied.
func New(t testing.TB) *Env {
	t.Helper()
	ctx := context.Background()
	store, err := sqlite.Open(ctx, filepath.Join(t.TempDir(), "storefront.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	clock := func() time.Time { return Now }
	rt, err := runtime.New(ctx, store, runtime.Options{
		PaymentDelay: -1,
		HashCost:     4,
		Now:          clock,
	})
	if err != nil {
		t.Fatalf("build runtime: %v", err)
	}
	resolver := principal.Resolver{Sessions: rt.Sessions, Accounts: rt.Accounts}
	deps := resolver.Apply(module.Dependencies{
		Catalog:     rt.Catalog,
		Carts:       rt.Carts,
		Recommender: rt.Recommender,
		Payments:    rt.Payments,
		Accounts:    rt.Accounts,
		Sessions:    rt.Sessions,
		Orders:      rt.Orders,
		Schedule:    rt.Schedule,
		Logger:      zap.NewNop(),
		CartIDs:     id.Sequence("cart"),
		Now:         clock,
	})
	return &Env{Runtime: rt, Deps: deps}
}

// SignUp creates an account and returns a cookie for a live session.
func (e *Env) SignUp(t testing.TB, email string) (*http.Cookie, string) {
	t.Helper()
	ctx := context.Background()
	user, err := e.Runtime.Accounts.SignUp(ctx, email, "correct horse battery")
	if err != nil {
		t.Fatalf("sign up %s: %v", email, err)
	}
	session, err := e.Runtime.Sessions.Create(ctx, user.ID)
	if err != nil {
		t.Fatalf("create session: %v", err)
	}
	return &http.Cookie{Name: sessioncookie.Name, Value: session.ID}, user.ID
}

// FillCart adds lines to cartID and returns the cart cookie.
func (e *Env) FillCart(t testing.TB, cartID string, lines ...cart.Line) *http.Cookie {
	t.Helper()
	_, err := e.Runtime.Carts.Update(cartID, func(c *cart.Cart) error {
		for _, line := range lines {
			if err := c.Add(line.Name, line.Price, line.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		t.Fatalf("fill cart: %v", err)
	}
	return &http.Cookie{Name: cartcookie.Name, Value: cartID}
}

// Get serves a GET through h.
func Get(h http.Handler, path string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// PostForm serves a same-origin form POST through h.
func PostForm(h http.Handler, path string, form url.Values, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Origin", "http://example.com")
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// Cookie returns the named cookie set on rr, if any.
func Cookie(rr *httptest.ResponseRecorder, name string) (*http.Cookie, bool) {
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == name {
			return cookie, true
		}
	}
	return nil, false
}

// Merge copies form and sets extra pairs.
func Merge(form url.Values, pairs ...string) url.Values {
	out := url.Values{}
	for key, values := range form {
		out[key] = append([]string(nil), values...)
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		out.Set(pairs[i], pairs[i+1])
	}
	return out
}
