// Package catalog serves the product listing and product detail pages.
package catalog

import (
	"net/http"

	"github.com/asjuices/storefront/internal/services/storefront/module"
	"github.com/asjuices/storefront/internal/services/storefront/routepath"
)

// Module provides public catalog routes.
type Module struct{}

// New returns a catalog module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "catalog" }

// Mount wires catalog route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(deps))
	return module.Mount{Prefix: routepath.ProductsPrefix, Handler: mux}, nil
}
