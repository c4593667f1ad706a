package money

import (
	"strings"
	"testing"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

func TestCentsString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   Cents
		want string
	}{
		{0, "$0.00"},
		{5, "$0.05"},
		{1250, "$12.50"},
		{-799, "-$7.99"},
	}
	for _, tt := range tests {
		if got := tt.in.String(); got != tt.want {
			t.Fatalf("Cents(%d).String() = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCentsMul(t *testing.T) {
	t.Parallel()

	if got := Cents(799).Mul(3); got != 2397 {
		t.Fatalf("Mul() = %d, want 2397", got)
	}
}

func TestFormatUsesPrinter(t *testing.T) {
	t.Parallel()

	got := Cents(1250).Format(message.NewPrinter(language.AmericanEnglish), DefaultCurrency)
	if !strings.Contains(got, "12") {
		t.Fatalf("Format() = %q, want amount digits", got)
	}
	if got := Cents(1250).Format(nil, DefaultCurrency); got != "$12.50" {
		t.Fatalf("Format(nil) = %q, want %q", got, "$12.50")
	}
}
