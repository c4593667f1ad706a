package catalog

import (
	"net/http"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/asjuices/storefront/internal/platform/errors"
	shopcatalog "github.com/asjuices/storefront/internal/services/shop/catalog"
	"github.com/asjuices/storefront/internal/services/storefront/module"
	"github.com/asjuices/storefront/internal/services/storefront/platform/i18n"
	"github.com/asjuices/storefront/internal/services/storefront/platform/pagerender"
	"github.com/asjuices/storefront/internal/services/storefront/platform/weberror"
	"github.com/asjuices/storefront/internal/services/storefront/templates"
)

type handlers struct {
	deps module.Dependencies
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{deps: deps}
}

func (h handlers) handleList(w http.ResponseWriter, r *http.Request) {
	loc, _ := i18n.ResolveLocalizer(nil, r)
	query := r.URL.Query()
	view := templates.ProductListView{Filter: strings.TrimSpace(query.Get("filter"))}
	if category, ok := shopcatalog.ParseCategory(query.Get("category")); ok {
		view.Category = string(category)
	}

	products, err := h.deps.Catalog.List(r.Context(), listExpression(view.Category, view.Filter))
	status := http.StatusOK
	if err != nil {
		if !apperrors.IsCode(err, apperrors.CodeFilterInvalid) {
			weberror.WriteModuleError(w, r, err, h.deps)
			return
		}
		status = http.StatusBadRequest
		view.ErrorMessage = weberror.PublicMessage(loc, err)
	}
	view.Products = products
	h.writePage(w, r, pagerender.Page{
		Title:      loc.Sprintf("catalog.heading"),
		StatusCode: status,
		Fragment:   templates.ProductList(view, loc),
	})
}

// listExpression narrows a visitor filter to the selected category.
func listExpression(category, filterExpr string) string {
	if category == "" {
		return filterExpr
	}
	categoryExpr := shopcatalog.CategoryFilter(shopcatalog.Category(category))
	if filterExpr == "" {
		return categoryExpr
	}
	return categoryExpr + " AND (" + filterExpr + ")"
}

func (h handlers) handleDetail(w http.ResponseWriter, r *http.Request) {
	product, err := h.deps.Catalog.Get(r.Context(), r.PathValue("slug"))
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	loc, _ := i18n.ResolveLocalizer(nil, r)
	h.writePage(w, r, pagerender.Page{
		Title:    product.Name,
		Fragment: templates.ProductDetail(product, loc),
	})
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteNotFound(w, r, h.deps)
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.Write(w, r, h.deps, page); err != nil {
		h.deps.Log().Warn("render page", zap.String("path", r.URL.Path), zap.Error(err))
	}
}
