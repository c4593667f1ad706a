package modules

import (
	"github.com/asjuices/storefront/internal/services/storefront/modules/cart"
	"github.com/asjuices/storefront/internal/services/storefront/modules/catalog"
	"github.com/asjuices/storefront/internal/services/storefront/modules/checkout"
	"github.com/asjuices/storefront/internal/services/storefront/modules/portal"
	"github.com/asjuices/storefront/internal/services/storefront/modules/public"
	"github.com/asjuices/storefront/internal/services/storefront/modules/quiz"
)

// DefaultPublicModules returns the modules anyone can browse.
func DefaultPublicModules() []Module {
	return []Module{
		public.New(),
		catalog.New(),
		cart.New(),
		quiz.New(),
		checkout.New(),
	}
}

// DefaultProtectedModules returns the signed-in account modules.
func DefaultProtectedModules() []Module {
	return []Module{
		portal.New(),
	}
}
