package payment

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	apperrors "github.com/asjuices/storefront/internal/platform/errors"
	"github.com/asjuices/storefront/internal/platform/money"
)

// Amount is a charge amount in minor units of Currency.
type Amount struct {
	Cents    money.Cents
	Currency string
}

// Normalize defaults the currency and rejects non-positive amounts.
func (a Amount) Normalize() (Amount, error) {
	a.Currency = strings.ToUpper(strings.TrimSpace(a.Currency))
	if a.Currency == "" {
		a.Currency = money.DefaultCurrency
	}
	if a.Cents <= 0 {
		return Amount{}, apperrors.New(apperrors.CodePaymentInvalidAmount, "amount must be positive")
	}
	return a, nil
}

// String renders the amount for logs and receipts.
func (a Amount) String() string {
	return a.Cents.String() + " " + a.Currency
}

// Card is raw card input as typed into the checkout form.
type Card struct {
	Holder   string
	Number   string
	ExpMonth int
	ExpYear  int
	CVC      string
}

// Validate checks the card at now. It returns the normalized digit string.
func (c Card) Validate(now time.Time) (string, error) {
	if strings.TrimSpace(c.Holder) == "" {
		return "", invalidCard("holder", "card holder is required")
	}
	digits, ok := digitsOnly(c.Number, " -")
	if !ok || len(digits) < 13 || len(digits) > 19 {
		return "", invalidCard("number", "card number must be 13 to 19 digits")
	}
	if !luhnValid(digits) {
		return "", invalidCard("number", "card number failed checksum")
	}
	if c.ExpMonth < 1 || c.ExpMonth > 12 {
		return "", invalidCard("exp_month", "expiry month must be 1 to 12")
	}
	year := c.ExpYear
	if year >= 0 && year < 100 {
		year += 2000
	}
	// Cards are valid through the last day of the expiry month.
	expiresAt := time.Date(year, time.Month(c.ExpMonth)+1, 1, 0, 0, 0, 0, time.UTC)
	if !now.UTC().Before(expiresAt) {
		return "", apperrors.WithMetadata(apperrors.CodePaymentCardExpired, "card is expired", map[string]string{"field": "exp_year"})
	}
	cvc, ok := digitsOnly(c.CVC, "")
	if !ok || len(cvc) < 3 || len(cvc) > 4 {
		return "", invalidCard("cvc", "security code must be 3 or 4 digits")
	}
	return digits, nil
}

// Brand guesses the card network from the leading digits.
func Brand(digits string) string {
	switch {
	case strings.HasPrefix(digits, "4"):
		return "visa"
	case strings.HasPrefix(digits, "34"), strings.HasPrefix(digits, "37"):
		return "amex"
	case hasPrefixInRange(digits, 2, 51, 55), hasPrefixInRange(digits, 4, 2221, 2720):
		return "mastercard"
	case strings.HasPrefix(digits, "6011"), strings.HasPrefix(digits, "65"):
		return "discover"
	default:
		return "card"
	}
}

func hasPrefixInRange(digits string, width, low, high int) bool {
	if len(digits) < width {
		return false
	}
	var prefix int
	if _, err := fmt.Sscanf(digits[:width], "%d", &prefix); err != nil {
		return false
	}
	return prefix >= low && prefix <= high
}

func luhnValid(digits string) bool {
	sum := 0
	double := false
	for i := len(digits) - 1; i >= 0; i-- {
		d := int(digits[i] - '0')
		if double {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
		double = !double
	}
	return sum%10 == 0
}

func digitsOnly(raw, separators string) (string, bool) {
	var b strings.Builder
	for _, r := range strings.TrimSpace(raw) {
		switch {
		case unicode.IsDigit(r) && r < unicode.MaxASCII:
			b.WriteRune(r)
		case strings.ContainsRune(separators, r):
		default:
			return "", false
		}
	}
	return b.String(), b.Len() > 0
}

func invalidCard(field, message string) error {
	return apperrors.WithMetadata(apperrors.CodePaymentInvalidCard, message, map[string]string{"field": field})
}
