// Package schedule manages recurring weekly deliveries for signed-in
// customers.
package schedule

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	apperrors "github.com/asjuices/storefront/internal/platform/errors"
	"github.com/asjuices/storefront/internal/platform/id"
)

// MaxQuantity caps how many bottles one delivery carries.
const MaxQuantity = 12

// Window is a delivery time slot.
type Window string

const (
	WindowMorning   Window = "morning"
	WindowAfternoon Window = "afternoon"
	WindowEvening   Window = "evening"
)

// Windows lists the slots in day order.
func Windows() []Window {
	return []Window{WindowMorning, WindowAfternoon, WindowEvening}
}

// StartHour is the local hour the window opens.
func (w Window) StartHour() int {
	switch w {
	case WindowAfternoon:
		return 13
	case WindowEvening:
		return 18
	default:
		return 8
	}
}

func (w Window) rank() int {
	for i, known := range Windows() {
		if w == known {
			return i
		}
	}
	return len(Windows())
}

// ParseWindow normalizes raw into a known window.
func ParseWindow(raw string) (Window, bool) {
	value := Window(strings.ToLower(strings.TrimSpace(raw)))
	return value, value.rank() < len(Windows())
}

// ParseWeekday accepts English day names ("monday", "Mon") or 0-6.
func ParseWeekday(raw string) (time.Weekday, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if len(value) == 1 && value[0] >= '0' && value[0] <= '6' {
		return time.Weekday(value[0] - '0'), true
	}
	if len(value) < 3 {
		return 0, false
	}
	for day := time.Sunday; day <= time.Saturday; day++ {
		name := strings.ToLower(day.String())
		if value == name || value == name[:3] {
			return day, true
		}
	}
	return 0, false
}

// Delivery is one recurring weekly drop.
type Delivery struct {
	ID       string
	UserID   string
	Item     string
	Weekday  time.Weekday
	Window   Window
	Quantity int
	// Active is false while the delivery is paused.
	Active    bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NextOccurrence returns when the delivery next happens after now, in now's
// location. Today counts while the window has not opened yet.
func (d Delivery) NextOccurrence(now time.Time) time.Time {
	start := time.Date(now.Year(), now.Month(), now.Day(), d.Window.StartHour(), 0, 0, 0, now.Location())
	days := (int(d.Weekday) - int(now.Weekday()) + 7) % 7
	candidate := start.AddDate(0, 0, days)
	if !candidate.After(now) {
		candidate = candidate.AddDate(0, 0, 7)
	}
	return candidate
}

// SortDeliveries orders by weekday, then window, then creation.
func SortDeliveries(deliveries []Delivery) {
	sort.SliceStable(deliveries, func(i, j int) bool {
		a, b := deliveries[i], deliveries[j]
		if a.Weekday != b.Weekday {
			return a.Weekday < b.Weekday
		}
		if a.Window != b.Window {
			return a.Window.rank() < b.Window.rank()
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
}

// Store persists deliveries.
type Store interface {
	PutDelivery(ctx context.Context, delivery Delivery) error
	GetDelivery(ctx context.Context, deliveryID string) (Delivery, error)
	ListDeliveries(ctx context.Context, userID string) ([]Delivery, error)
	DeleteDelivery(ctx context.Context, deliveryID string) error
}

// ProductChecker reports whether a product slug can be scheduled.
type ProductChecker interface {
	Exists(ctx context.Context, slug string) (bool, error)
}

// Service manages a user's schedule.
type Service struct {
	store    Store
	products ProductChecker
	now      func() time.Time
	ids      id.Generator
}

// NewService builds a schedule service. nil clock and ids use the defaults.
func NewService(store Store, products ProductChecker, now func() time.Time, ids id.Generator) *Service {
	if now == nil {
		now = time.Now
	}
	if ids == nil {
		ids = id.NewID
	}
	return &Service{store: store, products: products, now: now, ids: ids}
}

// AddInput describes a new delivery.
type AddInput struct {
	Item     string
	Weekday  time.Weekday
	Window   Window
	Quantity int
}

// Add schedules an active delivery for userID.
func (s *Service) Add(ctx context.Context, userID string, in AddInput) (Delivery, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Delivery{}, invalid("user_id", "user id is required")
	}
	item := strings.ToLower(strings.TrimSpace(in.Item))
	if item == "" {
		return Delivery{}, invalid("item", "choose a product to deliver")
	}
	if in.Weekday < time.Sunday || in.Weekday > time.Saturday {
		return Delivery{}, invalid("weekday", "unknown weekday")
	}
	window, ok := ParseWindow(string(in.Window))
	if !ok {
		return Delivery{}, invalid("window", fmt.Sprintf("unknown delivery window %q", in.Window))
	}
	if in.Quantity < 1 || in.Quantity > MaxQuantity {
		return Delivery{}, invalid("quantity", fmt.Sprintf("quantity must be between 1 and %d", MaxQuantity))
	}
	if s.products != nil {
		exists, err := s.products.Exists(ctx, item)
		if err != nil {
			return Delivery{}, fmt.Errorf("check product: %w", err)
		}
		if !exists {
			return Delivery{}, invalid("item", fmt.Sprintf("unknown product %q", item))
		}
	}

	deliveryID, err := s.ids()
	if err != nil {
		return Delivery{}, fmt.Errorf("generate delivery id: %w", err)
	}
	now := s.now().UTC()
	delivery := Delivery{
		ID:        deliveryID,
		UserID:    userID,
		Item:      item,
		Weekday:   in.Weekday,
		Window:    window,
		Quantity:  in.Quantity,
		Active:    true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.store.PutDelivery(ctx, delivery); err != nil {
		return Delivery{}, fmt.Errorf("put delivery: %w", err)
	}
	return delivery, nil
}

// List returns userID's deliveries ordered by weekday then window.
func (s *Service) List(ctx context.Context, userID string) ([]Delivery, error) {
	deliveries, err := s.store.ListDeliveries(ctx, strings.TrimSpace(userID))
	if err != nil {
		return nil, fmt.Errorf("list deliveries: %w", err)
	}
	SortDeliveries(deliveries)
	return deliveries, nil
}

// SetActive pauses or resumes a delivery owned by userID.
func (s *Service) SetActive(ctx context.Context, userID, deliveryID string, active bool) (Delivery, error) {
	delivery, err := s.getOwned(ctx, userID, deliveryID)
	if err != nil {
		return Delivery{}, err
	}
	delivery.Active = active
	delivery.UpdatedAt = s.now().UTC()
	if err := s.store.PutDelivery(ctx, delivery); err != nil {
		return Delivery{}, fmt.Errorf("put delivery: %w", err)
	}
	return delivery, nil
}

// Toggle flips a delivery between active and paused.
func (s *Service) Toggle(ctx context.Context, userID, deliveryID string) (Delivery, error) {
	delivery, err := s.getOwned(ctx, userID, deliveryID)
	if err != nil {
		return Delivery{}, err
	}
	return s.SetActive(ctx, userID, delivery.ID, !delivery.Active)
}

// Remove deletes a delivery owned by userID.
func (s *Service) Remove(ctx context.Context, userID, deliveryID string) error {
	delivery, err := s.getOwned(ctx, userID, deliveryID)
	if err != nil {
		return err
	}
	if err := s.store.DeleteDelivery(ctx, delivery.ID); err != nil {
		return fmt.Errorf("delete delivery: %w", err)
	}
	return nil
}

func (s *Service) getOwned(ctx context.Context, userID, deliveryID string) (Delivery, error) {
	delivery, err := s.store.GetDelivery(ctx, strings.TrimSpace(deliveryID))
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			return Delivery{}, apperrors.Wrap(apperrors.CodeDeliveryNotFound, "delivery not found", err)
		}
		return Delivery{}, fmt.Errorf("get delivery: %w", err)
	}
	if delivery.UserID != strings.TrimSpace(userID) {
		return Delivery{}, apperrors.New(apperrors.CodeDeliveryNotFound, "delivery not found")
	}
	return delivery, nil
}

func invalid(field, message string) error {
	return apperrors.WithMetadata(apperrors.CodeDeliveryInvalid, message, map[string]string{"field": field})
}
