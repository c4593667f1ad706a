// Package cart serves the cart page, its JSON summary and line mutations.
package cart

import (
	"net/http"

	"github.com/asjuices/storefront/internal/services/storefront/module"
	"github.com/asjuices/storefront/internal/services/storefront/routepath"
)

// Module provides public cart routes.
type Module struct{}

// New returns a cart module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "cart" }

// Mount wires cart route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(deps))
	return module.Mount{Prefix: routepath.CartPrefix, Handler: mux}, nil
}
