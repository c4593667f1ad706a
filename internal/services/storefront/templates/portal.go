package templates

import (
	"context"
	"time"

	"github.com/a-h/templ"
	"golang.org/x/text/message"

	"github.com/asjuices/storefront/internal/platform/money"
	"github.com/asjuices/storefront/internal/services/shop/account"
	"github.com/asjuices/storefront/internal/services/shop/catalog"
	"github.com/asjuices/storefront/internal/services/shop/orders"
	"github.com/asjuices/storefront/internal/services/shop/schedule"
	"github.com/asjuices/storefront/internal/services/storefront/routepath"
)

// PortalTab identifies the active account section.
type PortalTab string

const (
	TabProfile  PortalTab = "profile"
	TabOrders   PortalTab = "orders"
	TabSchedule PortalTab = "schedule"
)

func portalNav(active PortalTab, loc *message.Printer) templ.Component {
	return component(func(_ context.Context, h *htmlWriter) {
		h.raw(`<nav class="portal-nav">`)
		for _, tab := range []struct {
			id   PortalTab
			href string
		}{
			{TabProfile, routepath.AppProfile},
			{TabOrders, routepath.AppOrders},
			{TabSchedule, routepath.AppSchedule},
		} {
			h.raw("<a")
			h.attr("href", tab.href)
			if tab.id == active {
				h.raw(` class="active" aria-current="page"`)
			}
			h.raw(">")
			h.text(tr(loc, "portal.tab."+string(tab.id)))
			h.raw("</a>")
		}
		h.raw("</nav>")
	})
}

// ProfileView is the profile page state.
type ProfileView struct {
	Email        string
	Input        account.ProfileInput
	ErrorMessage string
}

// Profile renders the profile form.
func Profile(view ProfileView, loc *message.Printer) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.render(ctx, portalNav(TabProfile, loc))
		h.raw("<h1>")
		h.text(tr(loc, "portal.profile_heading"))
		h.raw("</h1>")
		h.element("p", "account-email", tr(loc, "portal.signed_in_as", view.Email))
		if view.ErrorMessage != "" {
			h.element("p", "form-error", view.ErrorMessage)
		}
		h.raw(`<form method="post" class="profile"`)
		h.attr("action", routepath.AppProfile)
		h.raw(">")
		in := view.Input
		h.field(tr(loc, "portal.full_name"), "text", "full_name", in.FullName, "name", false)
		h.field(tr(loc, "portal.phone"), "tel", "phone", in.Phone, "tel", false)
		h.field(tr(loc, "portal.address_line1"), "text", "address_line1", in.AddressLine1, "address-line1", false)
		h.field(tr(loc, "portal.address_line2"), "text", "address_line2", in.AddressLine2, "address-line2", false)
		h.field(tr(loc, "portal.city"), "text", "city", in.City, "address-level2", false)
		h.field(tr(loc, "portal.postal_code"), "text", "postal_code", in.PostalCode, "postal-code", false)
		h.raw(`<label class="field"><span>`)
		h.text(tr(loc, "portal.delivery_notes"))
		h.raw(`</span><textarea name="delivery_notes" rows="3">`)
		h.text(in.DeliveryNotes)
		h.raw(`</textarea></label><button type="submit">`)
		h.text(tr(loc, "portal.save"))
		h.raw("</button></form>")
	})
}

// OrdersView is the order history state.
type OrdersView struct {
	Orders       []orders.Order
	Filter       string
	ErrorMessage string
}

// Orders renders the order history.
func Orders(view OrdersView, loc *message.Printer) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.render(ctx, portalNav(TabOrders, loc))
		h.raw("<h1>")
		h.text(tr(loc, "portal.orders_heading"))
		h.raw(`</h1><form method="get" class="filter"`)
		h.attr("action", routepath.AppOrders)
		h.raw(`><label><span>`)
		h.text(tr(loc, "catalog.filter_label"))
		h.raw(`</span><input type="search" name="filter"`)
		h.attr("value", view.Filter)
		h.attr("placeholder", `status = "paid"`)
		h.raw(`></label><button type="submit">`)
		h.text(tr(loc, "catalog.filter_submit"))
		h.raw("</button></form>")
		if view.ErrorMessage != "" {
			h.element("p", "form-error", view.ErrorMessage)
		}
		if len(view.Orders) == 0 {
			h.element("p", "empty", tr(loc, "portal.orders_empty"))
			return
		}
		h.raw(`<ul class="orders">`)
		for _, order := range view.Orders {
			h.raw(`<li class="order"><h2>`)
			h.text(tr(loc, "checkout.order_id", order.ID))
			h.raw("</h2>")
			h.element("p", "placed", tr(loc, "portal.order_placed", order.CreatedAt.Format("2006-01-02")))
			h.element("p", "status status-"+string(order.Status), tr(loc, "portal.status."+string(order.Status)))
			h.render(ctx, lineSummary(order.Lines, order.Total, loc))
			if order.Status == orders.StatusPaid {
				h.postButton(routepath.AppOrderCancel(order.ID), tr(loc, "portal.cancel_order"), "secondary", nil)
			}
			h.raw("</li>")
		}
		h.raw("</ul>")
	})
}

// ScheduleView is the delivery schedule state.
type ScheduleView struct {
	Deliveries   []schedule.Delivery
	Products     []catalog.Product
	Now          time.Time
	ErrorMessage string
}

// Schedule renders recurring deliveries and the add form.
func Schedule(view ScheduleView, loc *message.Printer) templ.Component {
	return component(func(ctx context.Context, h *htmlWriter) {
		h.render(ctx, portalNav(TabSchedule, loc))
		h.raw("<h1>")
		h.text(tr(loc, "portal.schedule_heading"))
		h.raw("</h1>")
		if view.ErrorMessage != "" {
			h.element("p", "form-error", view.ErrorMessage)
		}
		names := make(map[string]catalog.Product, len(view.Products))
		for _, product := range view.Products {
			names[product.Slug] = product
		}
		if len(view.Deliveries) == 0 {
			h.element("p", "empty", tr(loc, "portal.schedule_empty"))
		} else {
			h.raw(`<ul class="deliveries">`)
			for _, delivery := range view.Deliveries {
				name := delivery.Item
				if product, ok := names[delivery.Item]; ok {
					name = product.Name
				}
				h.raw("<li")
				if !delivery.Active {
					h.raw(` class="paused"`)
				}
				h.raw("><strong>")
				h.text(tr(loc, "checkout.line", delivery.Quantity, name))
				h.raw("</strong> ")
				h.text(tr(loc, "portal.delivery_slot",
					tr(loc, "portal.weekday."+delivery.Weekday.String()),
					tr(loc, "portal.window."+string(delivery.Window))))
				if delivery.Active {
					h.element("p", "next", tr(loc, "portal.next_delivery", delivery.NextOccurrence(view.Now).Format("Mon 2006-01-02 15:04")))
					h.postButton(routepath.AppScheduleToggle(delivery.ID), tr(loc, "portal.pause"), "secondary", nil)
				} else {
					h.element("p", "next", tr(loc, "portal.paused"))
					h.postButton(routepath.AppScheduleToggle(delivery.ID), tr(loc, "portal.resume"), "secondary", nil)
				}
				h.postButton(routepath.AppScheduleDelete(delivery.ID), tr(loc, "portal.delete"), "link", nil)
				h.raw("</li>")
			}
			h.raw("</ul>")
		}

		h.raw("<h2>")
		h.text(tr(loc, "portal.add_delivery"))
		h.raw(`</h2><form method="post" class="schedule"`)
		h.attr("action", routepath.AppSchedule)
		h.raw(`><label class="field"><span>`)
		h.text(tr(loc, "portal.item"))
		h.raw(`</span><select name="item" required>`)
		for _, product := range view.Products {
			h.raw("<option")
			h.attr("value", product.Slug)
			h.raw(">")
			h.text(product.Name + " (" + product.Price.Format(loc, money.DefaultCurrency) + ")")
			h.raw("</option>")
		}
		h.raw(`</select></label><label class="field"><span>`)
		h.text(tr(loc, "portal.weekday"))
		h.raw(`</span><select name="weekday">`)
		for day := time.Sunday; day <= time.Saturday; day++ {
			h.raw("<option")
			h.attr("value", itoa(int(day)))
			h.raw(">")
			h.text(tr(loc, "portal.weekday."+day.String()))
			h.raw("</option>")
		}
		h.raw(`</select></label><label class="field"><span>`)
		h.text(tr(loc, "portal.window"))
		h.raw(`</span><select name="window">`)
		for _, window := range schedule.Windows() {
			h.raw("<option")
			h.attr("value", string(window))
			h.raw(">")
			h.text(tr(loc, "portal.window."+string(window)))
			h.raw("</option>")
		}
		h.raw(`</select></label>`)
		h.field(tr(loc, "cart.quantity"), "number", "quantity", "1", "off", true)
		h.raw(`<button type="submit">`)
		h.text(tr(loc, "portal.add_delivery"))
		h.raw("</button></form>")
	})
}
