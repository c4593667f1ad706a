package errors

import (
	"fmt"
	"net/http"
	"testing"

	domainerrors "github.com/asjuices/storefront/internal/platform/errors"
)

func TestHTTPStatus(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "nil", err: nil, want: http.StatusOK},
		{name: "web invalid input", err: E(KindInvalidInput, "bad"), want: http.StatusBadRequest},
		{name: "web forbidden", err: E(KindForbidden, "no"), want: http.StatusForbidden},
		{name: "web unavailable", err: E(KindUnavailable, "down"), want: http.StatusServiceUnavailable},
		{name: "web unknown", err: E(KindUnknown, "boom"), want: http.StatusInternalServerError},
		{name: "domain invalid", err: domainerrors.New(domainerrors.CodeDeliveryInvalid, "bad"), want: http.StatusBadRequest},
		{name: "domain not found", err: domainerrors.New(domainerrors.CodeOrderNotFound, "gone"), want: http.StatusNotFound},
		{name: "domain precondition", err: domainerrors.New(domainerrors.CodeCartEmpty, "empty"), want: http.StatusConflict},
		{name: "domain conflict", err: domainerrors.New(domainerrors.CodeAccountEmailTaken, "taken"), want: http.StatusConflict},
		{name: "domain credentials", err: domainerrors.New(domainerrors.CodeAccountInvalidCredentials, "nope"), want: http.StatusUnauthorized},
		{name: "wrapped domain", err: fmt.Errorf("place: %w", domainerrors.New(domainerrors.CodeOrderNotFound, "gone")), want: http.StatusNotFound},
		{name: "plain", err: fmt.Errorf("disk full"), want: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := HTTPStatus(tc.err); got != tc.want {
				t.Fatalf("HTTPStatus() = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestLocalizationKey(t *testing.T) {
	t.Parallel()

	if got := LocalizationKey(EK(KindNotFound, " error.page_not_found ", "missing")); got != "error.page_not_found" {
		t.Fatalf("LocalizationKey(web) = %q", got)
	}
	if got := LocalizationKey(domainerrors.New(domainerrors.CodeCartEmpty, "empty")); got != "error.cart_empty" {
		t.Fatalf("LocalizationKey(domain) = %q", got)
	}
	if got := LocalizationKey(fmt.Errorf("raw")); got != "" {
		t.Fatalf("LocalizationKey(raw) = %q, want empty", got)
	}
	if got := LocalizationKey(nil); got != "" {
		t.Fatalf("LocalizationKey(nil) = %q, want empty", got)
	}
}
