package checkout

import (
	"net/http"
	"strconv"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.uber.org/zap"

	domainerrors "github.com/asjuices/storefront/internal/platform/errors"
	"github.com/asjuices/storefront/internal/platform/money"
	"github.com/asjuices/storefront/internal/services/shop/account"
	shopcart "github.com/asjuices/storefront/internal/services/shop/cart"
	"github.com/asjuices/storefront/internal/services/shop/orders"
	"github.com/asjuices/storefront/internal/services/shop/payment"
	"github.com/asjuices/storefront/internal/services/storefront/module"
	"github.com/asjuices/storefront/internal/services/storefront/platform/cartcookie"
	"github.com/asjuices/storefront/internal/services/storefront/platform/flash"
	"github.com/asjuices/storefront/internal/services/storefront/platform/httpx"
	"github.com/asjuices/storefront/internal/services/storefront/platform/i18n"
	"github.com/asjuices/storefront/internal/services/storefront/platform/pagerender"
	"github.com/asjuices/storefront/internal/services/storefront/platform/weberror"
	"github.com/asjuices/storefront/internal/services/storefront/routepath"
	"github.com/asjuices/storefront/internal/services/storefront/templates"
)

var tracer = otel.Tracer("github.com/asjuices/storefront/internal/services/storefront/modules/checkout")

type handlers struct {
	deps module.Dependencies
}

func newHandlers(deps module.Dependencies) handlers {
	return handlers{deps: deps}
}

// current returns the visitor's cart id and cart. ok is false without a
// cart cookie.
func (h handlers) current(r *http.Request) (string, shopcart.Cart, bool) {
	cartID, ok := cartcookie.Read(r)
	if !ok {
		return "", shopcart.Cart{}, false
	}
	return cartID, h.deps.Carts.Get(cartID), true
}

func (h handlers) handleForm(w http.ResponseWriter, r *http.Request) {
	_, c, _ := h.current(r)
	if c.Empty() {
		flash.Write(w, r, h.deps.SchemePolicy, flash.Info("notice.cart_empty"))
		httpx.WriteRedirect(w, r, routepath.CartPrefix)
		return
	}
	form := templates.CheckoutForm{Email: h.deps.Viewer(r).Email}
	h.writeForm(w, r, http.StatusOK, c, form)
}

func (h handlers) handleSubmit(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracer.Start(r.Context(), "checkout.Submit")
	defer span.End()
	r = r.WithContext(ctx)

	if err := httpx.ParseForm(w, r); err != nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	cartID, ok := cartcookie.Read(r)
	if !ok {
		flash.Write(w, r, h.deps.SchemePolicy, flash.Info("notice.cart_empty"))
		httpx.WriteRedirect(w, r, routepath.CartPrefix)
		return
	}
	// The reservation keeps a double submit from charging the same cart twice.
	c, err := h.deps.Carts.BeginCheckout(cartID)
	switch {
	case domainerrors.IsCode(err, domainerrors.CodeCartEmpty):
		flash.Write(w, r, h.deps.SchemePolicy, flash.Info("notice.cart_empty"))
		httpx.WriteRedirect(w, r, routepath.CartPrefix)
		return
	case domainerrors.IsCode(err, domainerrors.CodeCheckoutInProgress):
		h.deps.Log().Info("duplicate checkout submit", zap.String("cart_id", cartID))
		flash.Write(w, r, h.deps.SchemePolicy, flash.Error("error.checkout_in_progress"))
		httpx.WriteRedirect(w, r, routepath.CartPrefix)
		return
	case err != nil:
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	placed := false
	defer func() {
		if !placed {
			h.deps.Carts.AbortCheckout(cartID)
		}
	}()

	form := templates.CheckoutForm{
		Email:    strings.TrimSpace(r.PostFormValue("email")),
		Holder:   strings.TrimSpace(r.PostFormValue("holder")),
		ExpMonth: strings.TrimSpace(r.PostFormValue("exp_month")),
		ExpYear:  strings.TrimSpace(r.PostFormValue("exp_year")),
	}
	userID := h.deps.UserID(r)
	span.SetAttributes(
		attribute.Int64("checkout.total_cents", int64(c.Total())),
		attribute.Bool("checkout.guest", userID == ""),
	)

	order, err := h.placeOrder(r, userID, form, c)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "checkout failed")
		status, message, ok := weberror.Inline(r, err)
		if !ok {
			weberror.WriteModuleError(w, r, err, h.deps)
			return
		}
		form.ErrorMessage = message
		h.writeForm(w, r, status, c, form)
		return
	}

	placed = true
	h.deps.Carts.CompleteCheckout(cartID, order.ID, c)
	h.deps.Log().Info("order placed",
		zap.String("order_id", order.ID),
		zap.Int64("total_cents", int64(order.Total)),
		zap.Bool("guest", order.UserID == ""),
	)
	flash.Write(w, r, h.deps.SchemePolicy, flash.Success("notice.order_placed"))
	httpx.WriteRedirect(w, r, routepath.CheckoutComplete(order.ID))
}

// placeOrder charges the card for the cart total and records the order. The
// receipt email is checked before charging so a bad address never leaves a
// charge without an order.
func (h handlers) placeOrder(r *http.Request, userID string, form templates.CheckoutForm, c shopcart.Cart) (orders.Order, error) {
	if _, err := account.NormalizeEmail(form.Email); err != nil {
		return orders.Order{}, domainerrors.WithMetadata(domainerrors.CodeOrderInvalidEmail,
			"a valid email is required for the receipt", map[string]string{"field": "email"})
	}
	expMonth, _ := strconv.Atoi(form.ExpMonth)
	expYear, _ := strconv.Atoi(form.ExpYear)
	receipt, err := h.deps.Payments.Charge(r.Context(), payment.ChargeRequest{
		Amount: payment.Amount{Cents: c.Total(), Currency: money.DefaultCurrency},
		Card: payment.Card{
			Holder:   form.Holder,
			Number:   r.PostFormValue("number"),
			ExpMonth: expMonth,
			ExpYear:  expYear,
			CVC:      r.PostFormValue("cvc"),
		},
		Email: form.Email,
	})
	if err != nil {
		return orders.Order{}, err
	}
	return h.deps.Orders.Place(r.Context(), orders.PlaceInput{
		UserID:  userID,
		Email:   form.Email,
		Cart:    c,
		Receipt: receipt,
	})
}

// handleComplete shows a confirmation to the order's owner: the signed-in
// user who placed it, or the browser whose cart placed it last.
func (h handlers) handleComplete(w http.ResponseWriter, r *http.Request) {
	orderID := strings.TrimSpace(r.PathValue("id"))
	order, err := h.deps.Orders.Get(r.Context(), orderID)
	if err != nil {
		weberror.WriteModuleError(w, r, err, h.deps)
		return
	}
	userID := h.deps.UserID(r)
	ownedByUser := userID != "" && order.UserID == userID
	ownedByCart := false
	if cartID, ok := cartcookie.Read(r); ok {
		ownedByCart = h.deps.Carts.LastOrderID(cartID) == order.ID
	}
	if !ownedByUser && !ownedByCart {
		weberror.WriteNotFound(w, r, h.deps)
		return
	}

	loc, _ := i18n.ResolveLocalizer(nil, r)
	h.writePage(w, r, pagerender.Page{
		Title:    loc.Sprintf("checkout.complete_heading"),
		Fragment: templates.CheckoutComplete(order, userID != "", loc),
	})
}

func (h handlers) handleNotFound(w http.ResponseWriter, r *http.Request) {
	weberror.WriteNotFound(w, r, h.deps)
}

func (h handlers) writeForm(w http.ResponseWriter, r *http.Request, status int, c shopcart.Cart, form templates.CheckoutForm) {
	loc, _ := i18n.ResolveLocalizer(nil, r)
	h.writePage(w, r, pagerender.Page{
		Title:      loc.Sprintf("checkout.heading"),
		StatusCode: status,
		Fragment:   templates.Checkout(c, form, loc),
	})
}

func (h handlers) writePage(w http.ResponseWriter, r *http.Request, page pagerender.Page) {
	if err := pagerender.Write(w, r, h.deps, page); err != nil {
		h.deps.Log().Warn("render page", zap.String("path", r.URL.Path), zap.Error(err))
	}
}
