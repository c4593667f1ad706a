// Package pagerender centralizes module page rendering behavior.
package pagerender

import (
	"net/http"

	"github.com/a-h/templ"

	"github.com/asjuices/storefront/internal/services/storefront/module"
	"github.com/asjuices/storefront/internal/services/storefront/platform/cartcookie"
	"github.com/asjuices/storefront/internal/services/storefront/platform/flash"
	"github.com/asjuices/storefront/internal/services/storefront/platform/httpx"
	"github.com/asjuices/storefront/internal/services/storefront/platform/i18n"
	"github.com/asjuices/storefront/internal/services/storefront/templates"
)

// Page describes a module page response for both full-page and HTMX flows.
type Page struct {
	Title      string
	StatusCode int
	Fragment   templ.Component
}

// Write renders page. Full requests get the document layout; HTMX requests
// get only the main region. A pending flash notice is consumed either way.
func Write(w http.ResponseWriter, r *http.Request, deps module.Dependencies, page Page) error {
	if w == nil {
		return nil
	}
	statusCode := page.StatusCode
	if statusCode <= 0 {
		statusCode = http.StatusOK
	}
	fragment := page.Fragment
	if fragment == nil {
		fragment = templ.NopComponent
	}

	loc, lang := i18n.ResolveLocalizer(w, r)
	var notice *flash.Notice
	if pending, ok := flash.ReadAndClear(w, r, deps.SchemePolicy); ok {
		notice = &pending
	}
	ctx := templ.WithChildren(httpx.RequestContext(r), fragment)

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if httpx.IsHTMXRequest(r) {
		w.WriteHeader(statusCode)
		return templates.MainContent(notice, loc).Render(ctx, w)
	}

	chrome := templates.Chrome{
		Title:  page.Title,
		Lang:   lang,
		Loc:    loc,
		Viewer: deps.Viewer(r),
		Notice: notice,
	}
	if deps.Carts != nil {
		if cartID, ok := cartcookie.Read(r); ok {
			chrome.CartCount = deps.Carts.Get(cartID).Count()
		}
	}
	w.WriteHeader(statusCode)
	return templates.Layout(chrome).Render(ctx, w)
}
