// Package cart models the shopping cart: an ordered list of named lines
// merged by name, held per browser session.
package cart

import (
	"fmt"
	"strings"

	apperrors "github.com/asjuices/storefront/internal/platform/errors"
	"github.com/asjuices/storefront/internal/platform/money"
)

// MaxQuantity caps a single line's quantity.
const MaxQuantity = 99

// Line is one named cart entry.
type Line struct {
	Name     string      `json:"name"`
	Price    money.Cents `json:"price"`
	Quantity int         `json:"quantity"`
}

// Subtotal returns price times quantity.
func (l Line) Subtotal() money.Cents {
	return l.Price.Mul(l.Quantity)
}

// Cart holds lines in first-insertion order.
type Cart struct {
	Lines []Line `json:"lines"`
}

// Add merges qty of name into the cart. A quantity of zero or less counts as
// one. An existing line keeps its original price.
func (c *Cart) Add(name string, price money.Cents, qty int) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return apperrors.WithMetadata(apperrors.CodeCartInvalidLine, "line name is required", map[string]string{"field": "name"})
	}
	if price < 0 {
		return apperrors.WithMetadata(apperrors.CodeCartInvalidLine, fmt.Sprintf("line %q has a negative price", name), map[string]string{"field": "price"})
	}
	if qty <= 0 {
		qty = 1
	}
	if i := c.index(name); i >= 0 {
		c.Lines[i].Quantity = capQuantity(c.Lines[i].Quantity + qty)
		return nil
	}
	c.Lines = append(c.Lines, Line{Name: name, Price: price, Quantity: capQuantity(qty)})
	return nil
}

// SetQuantity replaces a line's quantity; zero or less removes the line.
func (c *Cart) SetQuantity(name string, qty int) error {
	i := c.index(strings.TrimSpace(name))
	if i < 0 {
		return lineNotFound(name)
	}
	if qty <= 0 {
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
		return nil
	}
	c.Lines[i].Quantity = capQuantity(qty)
	return nil
}

// Remove deletes the named line.
func (c *Cart) Remove(name string) error {
	return c.SetQuantity(name, 0)
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Lines = nil
}

// Total sums every line subtotal.
func (c Cart) Total() money.Cents {
	var total money.Cents
	for _, line := range c.Lines {
		total += line.Subtotal()
	}
	return total
}

// Count sums line quantities.
func (c Cart) Count() int {
	count := 0
	for _, line := range c.Lines {
		count += line.Quantity
	}
	return count
}

// Empty reports whether the cart has no lines.
func (c Cart) Empty() bool {
	return len(c.Lines) == 0
}

// Subtract takes the quantities in charged off the matching lines, dropping
// lines that reach zero. Lines absent from charged are kept as they are.
func (c *Cart) Subtract(charged Cart) {
	for _, paid := range charged.Lines {
		i := c.index(paid.Name)
		if i < 0 {
			continue
		}
		if left := c.Lines[i].Quantity - paid.Quantity; left > 0 {
			c.Lines[i].Quantity = left
			continue
		}
		c.Lines = append(c.Lines[:i], c.Lines[i+1:]...)
	}
	if len(c.Lines) == 0 {
		c.Lines = nil
	}
}

// Clone returns a deep copy safe to hand outside a store lock.
func (c Cart) Clone() Cart {
	if c.Lines == nil {
		return Cart{}
	}
	lines := make([]Line, len(c.Lines))
	copy(lines, c.Lines)
	return Cart{Lines: lines}
}

func (c Cart) index(name string) int {
	for i, line := range c.Lines {
		if line.Name == name {
			return i
		}
	}
	return -1
}

func capQuantity(qty int) int {
	if qty > MaxQuantity {
		return MaxQuantity
	}
	return qty
}

func lineNotFound(name string) error {
	return apperrors.WithMetadata(apperrors.CodeCartLineNotFound, fmt.Sprintf("cart has no line %q", name), map[string]string{"field": "name"})
}
