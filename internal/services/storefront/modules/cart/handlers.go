package cart

import (
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/asjuices/storefront/internal/platform/money"
	shopcart "github.com/asjuices/storefront/internal/services/shop/cart"
	"github.com/asjuices/storefront/internal/services/storefront/module"
	"github.com/asjuices/storefront/internal/services/storefront/platform/cartcookie"
	apperrors "github.com/asjuices/storefront/internal/services/storefront/platform/errors"
	"github.com/asjuices/storefront/internal/services/storefront/platform/flash"
	"github.com/asjuices/storefront/internal/services/storefront/platform/httpx"
	"github.com/asjuices/storefront/internal/services/storefront/platform/i18n"
	"github.com/asjuices/storefront/internal/services/storefront/platform/pagerender"
	"github.com/asjuices/storefront/internal/services/storefront/platform/weberror"
	"github.com/asjuices/storefront/internal/services/storefront/routepath"
	"github.com/asjuices/storefront/internal/services/storefront/templates"
)

type handlers struct {
	deps module.Dependencies
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{deps: deps}
}

// summary is the JSON shape behind the header cart badge.
type summary struct {
	Lines        []shopcart.Line `json:"lines"`
	Count        int             `json:"count"`
	Total        money.Cents     `json:"total"`
	TotalDisplay string          `json:"totalDisplay"`
}

func (h handlers) current(r *http.Request) shopcart.Cart {
	cartID, ok := cartcookie.Read(r)
	if !ok {
		return shopcart.Cart{}
	}
	return h.deps.Carts.Get(cartID)
}

func (h handlers) handleCart(w http.ResponseWriter, r *http.Request) {
	loc, _ := i18n.ResolveLocalizer(nil, r)
	page := pagerender.Page{
		Title:    loc.Sprintf("cart.heading"),
		Fragment: templates.CartPage(h.current(r), loc),
	}
	if err := pagerender.Write(w, r, h.deps, page); err != nil {
		h.deps.Log().Warn("render page", zap.String("path", r.URL.Path), zap.Error(err))
	}
}

func (h handlers) handleSummary(w http.ResponseWriter, r *http.Request) {
	loc, _ := i18n.ResolveLocalizer(nil, r)
	c := h.current(r)
	lines := c.Lines
	if lines == nil {
		lines = []shopcart.Line{}
	}
	payload := summary{
		Lines:        lines,
		Count:        c.Count(),
		Total:        c.Total(),
		TotalDisplay: c.Total().Format(loc, money.DefaultCurrency),
	}
	if err := httpx.WriteJSON(w, http.StatusOK, payload); err != nil {
		h.deps.Log().Warn("write cart summary", zap.Error(err))
	}
}

func (h handlers) handleAdd(w http.ResponseWriter, r *http.Request) {
	if !h.parse(w, r) {
		return
	}
	product, err := h.deps.Catalog.Get(r.Context(), r.PostFormValue("slug"))
	if err != nil {
		weberror.WriteFlashError(w, r, err, h.deps, routepath.ProductsPrefix)
		return
	}
	quantity, err := parseQuantity(r.PostFormValue("quantity"), 1)
	if err != nil {
		weberror.WriteFlashError(w, r, err, h.deps, routepath.Product(product.Slug))
		return
	}
	h.mutate(w, r, "notice.cart_added", func(c *shopcart.Cart) error {
		return c.Add(product.Name, product.Price, quantity)
	})
}

func (h handlers) handleUpdate(w http.ResponseWriter, r *http.Request) {
	if !h.parse(w, r) {
		return
	}
	quantity, err := parseQuantity(r.PostFormValue("quantity"), 0)
	if err != nil {
		weberror.WriteFlashError(w, r, err, h.deps, routepath.CartPrefix)
		return
	}
	name := r.PostFormValue("name")
	h.mutate(w, r, "notice.cart_updated", func(c *shopcart.Cart) error {
		return c.SetQuantity(name, quantity)
	})
}

func (h handlers) handleRemove(w http.ResponseWriter, r *http.Request) {
	if !h.parse(w, r) {
		return
	}
	name := r.PostFormValue("name")
	h.mutate(w, r, "notice.cart_removed", func(c *shopcart.Cart) error {
		return c.Remove(name)
	})
}

func (h handlers) handleClear(w http.ResponseWriter, r *http.Request) {
	h.mutate(w, r, "notice.cart_cleared", func(c *shopcart.Cart) error {
		c.Clear()
		return nil
	})
}

// mutate applies fn to the visitor's cart, minting the cart cookie first,
// and redirects back to the cart with a notice.
func (h handlers) mutate(w http.ResponseWriter, r *http.Request, noticeKey string, fn func(*shopcart.Cart) error) {
	cartID, err := cartcookie.Ensure(w, r, h.deps.SchemePolicy, h.deps.CartIDs)
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	if _, err := h.deps.Carts.Update(cartID, fn); err != nil {
		weberror.WriteFlashError(w, r, err, h.deps, routepath.CartPrefix)
		return
	}
	flash.Write(w, r, h.deps.SchemePolicy, flash.Success(noticeKey))
	httpx.WriteRedirect(w, r, routepath.CartPrefix)
}

func (h handlers) parse(w http.ResponseWriter, r *http.Request) bool {
	if err := httpx.ParseForm(w, r); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return false
	}
	return true
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteNotFound(w, r, h.deps)
}

// parseQuantity reads a form quantity; blank uses fallback.
func parseQuantity(raw string, fallback int) (int, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return fallback, nil
	}
	quantity, err := strconv.Atoi(raw)
	if err != nil || quantity < 0 {
		return 0, apperrors.EK(apperrors.KindInvalidInput, "error.cart_invalid_line", "quantity must be a whole number")
	}
	return quantity, nil
}
