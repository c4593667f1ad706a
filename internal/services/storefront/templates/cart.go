package templates

import (
	"context"

	"github.com/a-h/templ"
	"golang.org/x/text/message"

	"github.com/asjuices/storefront/internal/platform/money"
	"github.com/asjuices/storefront/internal/services/shop/cart"
	"github.com/asjuices/storefront/internal/services/storefront/routepath"
)

// CartPage renders the cart lines with quantity controls and a checkout link.
func CartPage(c cart.Cart, loc *message.Printer) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.raw("<h1>")
		h.text(tr(loc, "cart.heading"))
		h.raw("</h1>")
		if c.Empty() {
			h.element("p", "empty", tr(loc, "cart.empty"))
			h.raw(`<a class="button"`)
			h.attr("href", routepath.ProductsPrefix)
			h.raw(">")
			h.text(tr(loc, "cart.continue"))
			h.raw("</a>")
			return
		}
		h.raw(`<table class="cart"><thead><tr>`)
		for _, key := range []string{"cart.item", "cart.price", "cart.quantity", "cart.subtotal", ""} {
			h.raw("<th>")
			if key != "" {
				h.text(tr(loc, key))
			}
			h.raw("</th>")
		}
		h.raw("</tr></thead><tbody>")
		for _, line := range c.Lines {
			h.raw("<tr><td>")
			h.text(line.Name)
			h.raw("</td><td>")
			h.text(line.Price.Format(loc, money.DefaultCurrency))
			h.raw(`</td><td><form method="post" class="inline"`)
			h.attr("action", routepath.CartItemsUpdate)
			h.raw(">")
			h.hidden("name", line.Name)
			h.raw(`<input type="number" name="quantity" min="0" max="99"`)
			h.attr("value", itoa(line.Quantity))
			h.attr("aria-label", tr(loc, "cart.quantity"))
			h.raw(`><button type="submit">`)
			h.text(tr(loc, "cart.update"))
			h.raw("</button></form></td><td>")
			h.text(line.Subtotal().Format(loc, money.DefaultCurrency))
			h.raw("</td><td>")
			h.postButton(routepath.CartItemsRemove, tr(loc, "cart.remove"), "link", map[string]string{"name": line.Name})
			h.raw("</td></tr>")
		}
		h.raw(`</tbody><tfoot><tr><th colspan="3">`)
		h.text(tr(loc, "cart.total"))
		h.raw(`</th><td id="cart-total">`)
		h.text(c.Total().Format(loc, money.DefaultCurrency))
		h.raw(`</td><td></td></tr></tfoot></table><div class="actions">`)
		h.postButton(routepath.CartClear, tr(loc, "cart.clear"), "secondary", nil)
		h.raw(`<a class="button"`)
		h.attr("href", routepath.CheckoutPrefix)
		h.raw(">")
		h.text(tr(loc, "cart.checkout"))
		h.raw("</a></div>")
	})
}
