package cart

import (
	"net/http"

	"github.com/asjuices/storefront/internal/services/storefront/platform/httpx"
	"github.com/asjuices/storefront/internal/services/storefront/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.CartPrefix+"{$}", h.handleCart)
	mux.HandleFunc(http.MethodGet+" "+routepath.CartSummary, h.handleSummary)

	mux.HandleFunc(http.MethodPost+" "+routepath.CartItems, h.handleAdd)
	mux.HandleFunc(http.MethodPost+" "+routepath.CartItemsUpdate, h.handleUpdate)
	mux.HandleFunc(http.MethodPost+" "+routepath.CartItemsRemove, h.handleRemove)
	mux.HandleFunc(http.MethodPost+" "+routepath.CartClear, h.handleClear)
	for _, path := range []string{routepath.CartItems, routepath.CartItemsUpdate, routepath.CartItemsRemove, routepath.CartClear} {
		mux.HandleFunc(http.MethodGet+" "+path, httpx.MethodNotAllowed(http.MethodPost))
	}

	mux.HandleFunc(http.MethodGet+" "+routepath.CartPrefix+"{rest...}", h.handleNotFound)
}
