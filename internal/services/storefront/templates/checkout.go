package templates

import (
	"context"

	"github.com/a-h/templ"
	"golang.org/x/text/message"

	"github.com/asjuices/storefront/internal/platform/money"
	"github.com/asjuices/storefront/internal/services/shop/cart"
	"github.com/asjuices/storefront/internal/services/shop/orders"
	"github.com/asjuices/storefront/internal/services/storefront/routepath"
)

// CheckoutForm is the payment form state. Card fields other than the holder
// and expiry are never echoed back.
type CheckoutForm struct {
	Email        string
	Holder       string
	ExpMonth     string
	ExpYear      string
	ErrorMessage string
}

// Checkout renders the order summary and the payment form.
func Checkout(c cart.Cart, form CheckoutForm, loc *message.Printer) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw("<h1>")
		h.text(tr(loc, "checkout.heading"))
		h.raw("</h1>")
		h.render(ctx, lineSummary(c.Lines, c.Total(), loc))
		if form.ErrorMessage != "" {
			h.element("p", "form-error", form.ErrorMessage)
		}
		h.raw(`<form method="post" class="payment"`)
		h.attr("action", routepath.CheckoutPrefix)
		h.raw(">")
		h.field(tr(loc, "checkout.email"), "email", "email", form.Email, "email", true)
		h.field(tr(loc, "checkout.holder"), "text", "holder", form.Holder, "cc-name", true)
		h.field(tr(loc, "checkout.number"), "text", "number", "", "cc-number", true)
		h.raw(`<div class="row">`)
		h.field(tr(loc, "checkout.exp_month"), "text", "exp_month", form.ExpMonth, "cc-exp-month", true)
		h.field(tr(loc, "checkout.exp_year"), "text", "exp_year", form.ExpYear, "cc-exp-year", true)
		h.field(tr(loc, "checkout.cvc"), "text", "cvc", "", "cc-csc", true)
		h.raw(`</div><p class="hint">`)
		h.text(tr(loc, "checkout.mock_notice"))
		h.raw(`</p><button type="submit">`)
		h.text(tr(loc, "checkout.pay", c.Total().Format(loc, money.DefaultCurrency)))
		h.raw("</button></form>")
	})
}

// CheckoutComplete renders an order confirmation.
func CheckoutComplete(order orders.Order, signedIn bool, loc *message.Printer) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw(`<section class="confirmation"><h1>`)
		h.text(tr(loc, "checkout.complete_heading"))
		h.raw("</h1>")
		h.element("p", "order-id", tr(loc, "checkout.order_id", order.ID))
		h.element("p", "receipt", tr(loc, "checkout.receipt", order.Email, order.Last4))
		h.render(ctx, lineSummary(order.Lines, order.Total, loc))
		h.raw(`<div class="actions">`)
		if signedIn {
			h.raw(`<a class="button"`)
			h.attr("href", routepath.AppOrders)
			h.raw(">")
			h.text(tr(loc, "checkout.view_orders"))
			h.raw("</a>")
		}
		h.raw(`<a class="button secondary"`)
		h.attr("href", routepath.ProductsPrefix)
		h.raw(">")
		h.text(tr(loc, "cart.continue"))
		h.raw("</a></div></section>")
	})
}

func lineSummary(lines []cart.Line, total money.Cents, loc *message.Printer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<ul class="line-summary">`)
		for _, line := range lines {
			h.raw("<li>")
			h.text(tr(loc, "checkout.line", line.Quantity, line.Name))
			h.raw(` <span class="amount">`)
			h.text(line.Subtotal().Format(loc, money.DefaultCurrency))
			h.raw("</span></li>")
		}
		h.raw(`</ul><p class="total">`)
		h.text(tr(loc, "cart.total"))
		h.raw(` <strong>`)
		h.text(total.Format(loc, money.DefaultCurrency))
		h.raw("</strong></p>")
	})
}
