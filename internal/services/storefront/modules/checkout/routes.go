package checkout

import (
	"net/http"

	"github.com/asjuices/storefront/internal/services/storefront/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.CheckoutPrefix+"{$}", h.handleForm)
	mux.HandleFunc(http.MethodPost+" "+routepath.CheckoutPrefix+"{$}", h.handleSubmit)
	mux.HandleFunc(http.MethodGet+" "+routepath.CheckoutCompletePattern, h.handleComplete)
	mux.HandleFunc(http.MethodGet+" "+routepath.CheckoutPrefix+"{rest...}", h.handleNotFound)
}
