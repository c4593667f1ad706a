package cart

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/asjuices/storefront/internal/platform/errors"
	"github.com/asjuices/storefront/internal/platform/money"
)

func TestAddMergesByName(t *testing.T) {
	t.Parallel()

	var c Cart
	mustAdd(t, &c, "Green Reset", 1100, 1)
	mustAdd(t, &c, "Ginger Shot", 450, 2)
	mustAdd(t, &c, "Green Reset", 9999, 3)

	want := []Line{
		{Name: "Green Reset", Price: 1100, Quantity: 4},
		{Name: "Ginger Shot", Price: 450, Quantity: 2},
	}
	if diff := cmp.Diff(want, c.Lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}
}

func TestAddDefaultsQuantityAndCaps(t *testing.T) {
	t.Parallel()

	var c Cart
	mustAdd(t, &c, "Ginger Shot", 450, 0)
	if got := c.Lines[0].Quantity; got != 1 {
		t.Fatalf("quantity = %d, want 1", got)
	}
	mustAdd(t, &c, "Ginger Shot", 450, 500)
	if got := c.Lines[0].Quantity; got != MaxQuantity {
		t.Fatalf("quantity = %d, want %d", got, MaxQuantity)
	}
}

func TestAddRejectsInvalidLines(t *testing.T) {
	t.Parallel()

	var c Cart
	if err := c.Add("  ", 100, 1); !apperrors.IsCode(err, apperrors.CodeCartInvalidLine) {
		t.Fatalf("Add(blank) error = %v, want invalid line", err)
	}
	if err := c.Add("x", -1, 1); !apperrors.IsCode(err, apperrors.CodeCartInvalidLine) {
		t.Fatalf("Add(negative) error = %v, want invalid line", err)
	}
	if !c.Empty() {
		t.Fatal("cart should stay empty")
	}
}

func TestSetQuantity(t *testing.T) {
	t.Parallel()

	var c Cart
	mustAdd(t, &c, "A", 100, 1)
	mustAdd(t, &c, "B", 200, 1)
	mustAdd(t, &c, "C", 300, 1)

	if err := c.SetQuantity("B", 5); err != nil {
		t.Fatalf("SetQuantity(B, 5) error = %v", err)
	}
	if err := c.SetQuantity("A", 0); err != nil {
		t.Fatalf("SetQuantity(A, 0) error = %v", err)
	}
	want := []Line{{Name: "B", Price: 200, Quantity: 5}, {Name: "C", Price: 300, Quantity: 1}}
	if diff := cmp.Diff(want, c.Lines); diff != "" {
		t.Fatalf("lines mismatch (-want +got):\n%s", diff)
	}

	err := c.SetQuantity("Z", 1)
	if !apperrors.IsCode(err, apperrors.CodeCartLineNotFound) {
		t.Fatalf("SetQuantity(Z) error = %v, want line not found", err)
	}
	if err := c.Remove("Z"); !apperrors.IsCode(err, apperrors.CodeCartLineNotFound) {
		t.Fatalf("Remove(Z) error = %v, want line not found", err)
	}
}

func TestTotalsAndClear(t *testing.T) {
	t.Parallel()

	var c Cart
	mustAdd(t, &c, "Green Reset", 1100, 2)
	mustAdd(t, &c, "Ginger Shot", 450, 3)

	if got, want := c.Total(), money.Cents(3550); got != want {
		t.Fatalf("Total() = %v, want %v", got, want)
	}
	if got := c.Count(); got != 5 {
		t.Fatalf("Count() = %d, want 5", got)
	}
	c.Clear()
	if !c.Empty() || c.Total() != 0 || c.Count() != 0 {
		t.Fatalf("cart after Clear = %+v", c)
	}
}

func TestCloneIsIndependent(t *testing.T) {
	t.Parallel()

	var c Cart
	mustAdd(t, &c, "A", 100, 1)
	clone := c.Clone()
	clone.Lines[0].Quantity = 42
	if c.Lines[0].Quantity != 1 {
		t.Fatal("Clone shares line storage")
	}
}

func mustAdd(t *testing.T, c *Cart, name string, price money.Cents, qty int) {
	t.Helper()
	if err := c.Add(name, price, qty); err != nil {
		t.Fatalf("Add(%q) error = %v", name, err)
	}
}
