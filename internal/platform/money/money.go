// Package money represents prices as integer cents.
package money

import (
	"fmt"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/message"
)

// DefaultCurrency is the ISO code all catalog prices are quoted in.
const DefaultCurrency = "USD"

// Cents is an amount in the minor unit of DefaultCurrency.
type Cents int64

// Mul multiplies by a quantity.
func (c Cents) Mul(quantity int) Cents {
	return c * Cents(quantity)
}

// String renders the amount as a plain dollar figure, e.g. "$12.50".
func (c Cents) String() string {
	sign := ""
	value := int64(c)
	if value < 0 {
		sign = "-"
		value = -value
	}
	return fmt.Sprintf("%s$%d.%02d", sign, value/100, value%100)
}

// Format renders the amount with p's locale conventions for the currency.
func (c Cents) Format(p *message.Printer, code string) string {
	unit, err := currency.ParseISO(strings.TrimSpace(code))
	if err != nil {
		unit = currency.USD
	}
	if p == nil {
		return c.String()
	}
	return p.Sprint(currency.Symbol(unit.Amount(float64(c) / 100)))
}
