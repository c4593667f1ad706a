package catalog

import (
	"net/http"

	"github.com/asjuices/storefront/internal/services/storefront/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.ProductsPrefix+"{$}", h.handleList)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProductPattern, h.handleDetail)
	mux.HandleFunc(http.MethodGet+" "+routepath.ProductsPrefix+"{slug}/{rest...}", h.handleNotFound)
}
