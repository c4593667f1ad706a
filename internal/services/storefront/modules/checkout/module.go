// Package checkout serves the mock payment form and order confirmation.
package checkout

import (
	"net/http"

	"github.com/asjuices/storefront/internal/services/storefront/module"
	"github.com/asjuices/storefront/internal/services/storefront/routepath"
)

// Module provides public checkout routes. Guests may check out; signed-in
// visitors have the order attached to their account.
type Module struct{}

// New returns a checkout module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "checkout" }

// Mount wires checkout route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(deps))
	return module.Mount{Prefix: routepath.CheckoutPrefix, Handler: mux}, nil
}
