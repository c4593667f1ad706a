package errors

import (
	stderrors "errors"
	"fmt"
	"testing"
)

func TestErrorIsMatchesByCode(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("place order: %w", New(CodeCartEmpty, "cart is empty"))
	if !stderrors.Is(err, New(CodeCartEmpty, "")) {
		t.Fatal("expected wrapped error to match by code")
	}
	if stderrors.Is(err, New(CodeOrderNotFound, "")) {
		t.Fatal("expected different code not to match")
	}
}

func TestWrapUnwrapsCause(t *testing.T) {
	t.Parallel()

	cause := stderrors.New("disk full")
	err := Wrap(CodeUnknown, "save order", cause)
	if !stderrors.Is(err, cause) {
		t.Fatal("expected cause in chain")
	}
}

func TestCodeOfAndField(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("sign up: %w", WithMetadata(CodeAccountInvalidEmail, "bad email", map[string]string{"field": "email"}))
	if got := CodeOf(err); got != CodeAccountInvalidEmail {
		t.Fatalf("CodeOf() = %q, want %q", got, CodeAccountInvalidEmail)
	}
	if got := Field(err); got != "email" {
		t.Fatalf("Field() = %q, want %q", got, "email")
	}
	if got := CodeOf(stderrors.New("plain")); got != CodeUnknown {
		t.Fatalf("CodeOf(plain) = %q, want %q", got, CodeUnknown)
	}
}

func TestCodeKind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		code Code
		want Kind
	}{
		{CodePaymentInvalidCard, KindInvalidInput},
		{CodeCartEmpty, KindFailedPrecondition},
		{CodeOrderNotFound, KindNotFound},
		{CodeAccountEmailTaken, KindConflict},
		{CodeAccountInvalidCredentials, KindUnauthenticated},
		{CodeUnknown, KindInternal},
	}
	for _, tt := range tests {
		if got := tt.code.Kind(); got != tt.want {
			t.Fatalf("%s.Kind() = %v, want %v", tt.code, got, tt.want)
		}
	}
}

func TestIsCodeWalksChain(t *testing.T) {
	t.Parallel()

	notFound := New(CodeNotFound, "record not found")
	err := Wrap(CodeProductNotFound, "product not found", fmt.Errorf("get product: %w", notFound))
	if !IsCode(err, CodeProductNotFound) {
		t.Fatal("IsCode(product not found) = false, want true")
	}
	if !IsCode(err, CodeNotFound) {
		t.Fatal("IsCode(not found) = false, want true")
	}
	if IsCode(err, CodeConflict) {
		t.Fatal("IsCode(conflict) = true, want false")
	}
	if IsCode(nil, CodeNotFound) {
		t.Fatal("IsCode(nil) = true, want false")
	}
}
