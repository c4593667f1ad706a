// Package portal serves the signed-in account pages: profile, order history
// and the recurring delivery schedule.
package portal

import (
	"net/http"

	"github.com/asjuices/storefront/internal/services/storefront/module"
	"github.com/asjuices/storefront/internal/services/storefront/routepath"
)

// Module provides authenticated account routes.
type Module struct{}

// New returns a portal module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "portal" }

// Mount wires portal route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(deps))
	return module.Mount{Prefix: routepath.AppPrefix, Handler: mux}, nil
}
