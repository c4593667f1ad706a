// Package quiz serves the program recommendation questionnaire.
package quiz

import (
	"net/http"

	"github.com/asjuices/storefront/internal/services/storefront/module"
	"github.com/asjuices/storefront/internal/services/storefront/routepath"
)

// Module provides public quiz routes.
type Module struct{}

// New returns a quiz module.
func New() Module { return Module{} }

// ID returns a stable module identifier.
func (Module) ID() string { return "quiz" }

// Mount wires quiz route handlers.
func (Module) Mount(deps module.Dependencies) (module.Mount, error) {
	mux := http.NewServeMux()
	registerRoutes(mux, newHandlers(deps))
	return module.Mount{Prefix: routepath.QuizPrefix, Handler: mux}, nil
}
