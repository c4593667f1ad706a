// Package routepath defines canonical storefront route paths.
package routepath

import "net/url"

const (
	Root   = "/"
	Health = "/health"
	Login  = "/login"
	Signup = "/signup"
	Logout = "/logout"

	StaticPrefix = "/static/"

	ProductsPrefix = "/products/"
	ProductPattern = "/products/{slug}"

	CartPrefix      = "/cart/"
	CartSummary     = "/cart/summary"
	CartItems       = "/cart/items"
	CartItemsUpdate = "/cart/items/update"
	CartItemsRemove = "/cart/items/remove"
	CartClear       = "/cart/clear"

	QuizPrefix = "/quiz/"
	QuizAdd    = "/quiz/add"

	CheckoutPrefix          = "/checkout/"
	CheckoutCompletePattern = "/checkout/complete/{id}"

	AppPrefix                = "/app/"
	AppProfile               = "/app/profile"
	AppOrders                = "/app/orders"
	AppOrderCancelPattern    = "/app/orders/{id}/cancel"
	AppSchedule              = "/app/schedule"
	AppScheduleTogglePattern = "/app/schedule/{id}/toggle"
	AppScheduleDeletePattern = "/app/schedule/{id}/delete"
	AppRestPattern           = "/app/{rest...}"
)

// Product returns the detail path for a product slug.
func Product(slug string) string {
	return ProductsPrefix + url.PathEscape(slug)
}

// Products returns the listing path narrowed to a category, or the full
// listing when category is empty.
func Products(category string) string {
	if category == "" {
		return ProductsPrefix
	}
	return ProductsPrefix + "?" + url.Values{"category": {category}}.Encode()
}

// CheckoutComplete returns the confirmation path for an order.
func CheckoutComplete(orderID string) string {
	return CheckoutPrefix + "complete/" + url.PathEscape(orderID)
}

// AppOrderCancel returns the cancel action path for an order.
func AppOrderCancel(orderID string) string {
	return AppOrders + "/" + url.PathEscape(orderID) + "/cancel"
}

// AppScheduleToggle returns the pause/resume action path for a delivery.
func AppScheduleToggle(deliveryID string) string {
	return AppSchedule + "/" + url.PathEscape(deliveryID) + "/toggle"
}

// AppScheduleDelete returns the delete action path for a delivery.
func AppScheduleDelete(deliveryID string) string {
	return AppSchedule + "/" + url.PathEscape(deliveryID) + "/delete"
}
