package portal

import (
	"net/http"

	"github.com/asjuices/storefront/internal/services/storefront/platform/httpx"
	"github.com/asjuices/storefront/internal/services/storefront/routepath"
)

func registerRoutes(mux *http.ServeMux, h handlers) {
	if mux == nil {
		return
	}
	mux.HandleFunc(http.MethodGet+" "+routepath.AppPrefix+"{$}", h.redirectRoot)

	mux.HandleFunc(http.MethodGet+" "+routepath.AppProfile, h.handleProfileGet)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppProfile, h.handleProfilePost)

	mux.HandleFunc(http.MethodGet+" "+routepath.AppOrders, h.handleOrders)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppOrderCancelPattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.AppOrderCancelPattern, h.handleOrderCancel)

	mux.HandleFunc(http.MethodGet+" "+routepath.AppSchedule, h.handleScheduleGet)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppSchedule, h.handleScheduleAdd)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppScheduleTogglePattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.AppScheduleTogglePattern, h.handleScheduleToggle)
	mux.HandleFunc(http.MethodGet+" "+routepath.AppScheduleDeletePattern, httpx.MethodNotAllowed(http.MethodPost))
	mux.HandleFunc(http.MethodPost+" "+routepath.AppScheduleDeletePattern, h.handleScheduleDelete)

	mux.HandleFunc(http.MethodGet+" "+routepath.AppRestPattern, h.handleNotFound)
	mux.HandleFunc(http.MethodPost+" "+routepath.AppRestPattern, h.handleNotFound)
}
