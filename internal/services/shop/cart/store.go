package cart

import (
	"fmt"
	"strings"
	"sync"
	"time"

	apperrors "github.com/asjuices/storefront/internal/platform/errors"
)

type entry struct {
	cart    Cart
	touched time.Time
	// lastOrderID remembers the most recent order checked out from this cart
	// so a guest can view its confirmation.
	lastOrderID string
	// checkingOut is set while a payment for the cart is in flight.
	checkingOut bool
}

// Store keeps carts in memory keyed by cart id.
type Store struct {
	mu    sync.Mutex
	carts map[string]*entry
	now   func() time.Time
}

// NewStore builds an empty store. A nil clock uses time.Now.
func NewStore(now func() time.Time) *Store {
	if now == nil {
		now = time.Now
	}
	return &Store{carts: map[string]*entry{}, now: now}
}

// Get returns a copy of the cart for id; unknown ids yield an empty cart.
func (s *Store) Get(id string) Cart {
	id = strings.TrimSpace(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.carts[id]
	if !ok {
		return Cart{}
	}
	e.touched = s.now()
	return e.cart.Clone()
}

// Update applies fn to the cart for id under the store lock, creating it when
// missing. Changes are discarded when fn returns an error.
func (s *Store) Update(id string, fn func(*Cart) error) (Cart, error) {
	id = strings.TrimSpace(id)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.carts[id]
	working := Cart{}
	if ok {
		working = e.cart.Clone()
	}
	if err := fn(&working); err != nil {
		if ok {
			return e.cart.Clone(), err
		}
		return Cart{}, err
	}
	if !ok {
		e = &entry{}
		s.carts[id] = e
	}
	e.cart = working
	e.touched = s.now()
	return working.Clone(), nil
}

// Delete drops the cart for id.
func (s *Store) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.carts, strings.TrimSpace(id))
}

// BeginCheckout reserves the cart for id and returns the snapshot to charge.
// A cart already being checked out yields CodeCheckoutInProgress and an
// empty one CodeCartEmpty. Every successful call must be followed by
// CompleteCheckout or AbortCheckout.
func (s *Store) BeginCheckout(id string) (Cart, error) {
	id = strings.TrimSpace(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.carts[id]
	if !ok || e.cart.Empty() {
		return Cart{}, apperrors.New(apperrors.CodeCartEmpty, "cart is empty")
	}
	if e.checkingOut {
		return Cart{}, apperrors.New(apperrors.CodeCheckoutInProgress, fmt.Sprintf("cart %s is already being checked out", id))
	}
	e.checkingOut = true
	e.touched = s.now()
	return e.cart.Clone(), nil
}

// CompleteCheckout releases the reservation, removes the charged lines and
// remembers orderID as the cart's last order. Lines added while the payment
// was in flight stay in the cart.
func (s *Store) CompleteCheckout(id, orderID string, charged Cart) {
	id = strings.TrimSpace(id)
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.carts[id]
	if !ok {
		e = &entry{}
		s.carts[id] = e
	}
	e.cart.Subtract(charged)
	e.checkingOut = false
	e.lastOrderID = orderID
	e.touched = s.now()
}

// AbortCheckout releases the reservation and leaves the cart untouched.
func (s *Store) AbortCheckout(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.carts[strings.TrimSpace(id)]; ok {
		e.checkingOut = false
	}
}

// LastOrderID returns the order most recently checked out from the cart.
func (s *Store) LastOrderID(id string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.carts[strings.TrimSpace(id)]; ok {
		return e.lastOrderID
	}
	return ""
}

// SweepIdle removes carts untouched for longer than idle and returns how many
// were removed. Carts with a checkout in flight are kept.
func (s *Store) SweepIdle(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	cutoff := s.now().Add(-idle)
	removed := 0
	for id, e := range s.carts {
		if !e.checkingOut && e.touched.Before(cutoff) {
			delete(s.carts, id)
			removed++
		}
	}
	return removed
}
