package quiz

import (
	"net/http"

	"github.com/asjuices/storefront/internal/services/storefront/platform/httpx"
	"github.com/asjuices/storefront/internal/services/storefront/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.QuizPrefix+"{$}", h.handleStepGet)
	mux.HandleFunc(http.MethodPost+" "+routepath.QuizPrefix+"{$}", h.handleStepPost)
	mux.HandleFunc(http.MethodGet+" "+routepath.QuizAdd, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.QuizAdd, h.handleAdd)
	mux.HandleFunc(http.MethodGet+" "+routepath.QuizPrefix+"{rest...}", h.handleNotFound)
}
