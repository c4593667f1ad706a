package routepath

import "testing"

func TestTopLevelRouteConstants(t *testing.T) {
	t.Parallel()

	if Root != "/" {
		t.Fatalf("Root = %q", Root)
	}
	if Login != "/login" {
		t.Fatalf("Login = %q", Login)
	}
	if Logout != "/logout" {
		t.Fatalf("Logout = %q", Logout)
	}
	if Health != "/health" {
		t.Fatalf("Health = %q", Health)
	}
	if AppPrefix != "/app/" {
		t.Fatalf("AppPrefix = %q", AppPrefix)
	}
	if CartSummary != "/cart/summary" {
		t.Fatalf("CartSummary = %q", CartSummary)
	}
}

func TestRouteBuilders(t *testing.T) {
	t.Parallel()

	if got := Product("green-reset"); got != "/products/green-reset" {
		t.Fatalf("Product() = %q", got)
	}
	if got := Products(""); got != "/products/" {
		t.Fatalf("Products(\"\") = %q", got)
	}
	if got := Products("shot"); got != "/products/?category=shot" {
		t.Fatalf("Products(shot) = %q", got)
	}
	if got := CheckoutComplete("ord-1"); got != "/checkout/complete/ord-1" {
		t.Fatalf("CheckoutComplete() = %q", got)
	}
	if got := AppOrderCancel("ord-1"); got != "/app/orders/ord-1/cancel" {
		t.Fatalf("AppOrderCancel() = %q", got)
	}
	if got := AppScheduleToggle("del-1"); got != "/app/schedule/del-1/toggle" {
		t.Fatalf("AppScheduleToggle() = %q", got)
	}
	if got := AppScheduleDelete("del 1"); got != "/app/schedule/del%201/delete" {
		t.Fatalf("AppScheduleDelete() = %q", got)
	}
}
