package schedule

import (
	"context"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/asjuices/storefront/internal/platform/errors"
	"github.com/asjuices/storefront/internal/platform/id"
)

type memoryStore struct {
	deliveries map[string]Delivery
}

func (s *memoryStore) PutDelivery(_ context.Context, delivery Delivery) error {
	s.deliveries[delivery.ID] = delivery
	return nil
}

func (s *memoryStore) GetDelivery(_ context.Context, deliveryID string) (Delivery, error) {
	delivery, ok := s.deliveries[deliveryID]
	if !ok {
		return Delivery{}, apperrors.New(apperrors.CodeNotFound, "record not found")
	}
	return delivery, nil
}

func (s *memoryStore) ListDeliveries(_ context.Context, userID string) ([]Delivery, error) {
	var out []Delivery
	for _, delivery := range s.deliveries {
		if delivery.UserID == userID {
			out = append(out, delivery)
		}
	}
	return out, nil
}

func (s *memoryStore) DeleteDelivery(_ context.Context, deliveryID string) error {
	delete(s.deliveries, deliveryID)
	return nil
}

type products map[string]bool

func (p products) Exists(_ context.Context, slug string) (bool, error) {
	return p[slug], nil
}

var fixedNow = time.Date(2026, 7, 1, 9, 0, 0, 0, time.UTC) // a Wednesday

func newTestService() (*Service, *memoryStore) {
	store := &memoryStore{deliveries: map[string]Delivery{}}
	svc := NewService(store, products{"green-reset": true, "ginger-shot": true},
		func() time.Time { return fixedNow }, id.Sequence("del"))
	return svc, store
}

func TestParseWeekdayAndWindow(t *testing.T) {
	t.Parallel()

	for raw, want := range map[string]time.Weekday{"monday": time.Monday, " Fri ": time.Friday, "0": time.Sunday, "6": time.Saturday} {
		got, ok := ParseWeekday(raw)
		if !ok || got != want {
			t.Fatalf("ParseWeekday(%q) = %v, %v; want %v", raw, got, ok, want)
		}
	}
	for _, raw := range []string{"", "7", "mo", "funday"} {
		if _, ok := ParseWeekday(raw); ok {
			t.Fatalf("ParseWeekday(%q) ok = true, want false", raw)
		}
	}
	if got, ok := ParseWindow(" Evening "); !ok || got != WindowEvening {
		t.Fatalf("ParseWindow(Evening) = %q, %v", got, ok)
	}
	if _, ok := ParseWindow("midnight"); ok {
		t.Fatal("ParseWindow(midnight) ok = true, want false")
	}
}

func TestNextOccurrence(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		delivery Delivery
		want     time.Time
	}{
		{
			name:     "later today",
			delivery: Delivery{Weekday: time.Wednesday, Window: WindowAfternoon},
			want:     time.Date(2026, 7, 1, 13, 0, 0, 0, time.UTC),
		},
		{
			name:     "window already started rolls a week",
			delivery: Delivery{Weekday: time.Wednesday, Window: WindowMorning},
			want:     time.Date(2026, 7, 8, 8, 0, 0, 0, time.UTC),
		},
		{
			name:     "later this week",
			delivery: Delivery{Weekday: time.Friday, Window: WindowEvening},
			want:     time.Date(2026, 7, 3, 18, 0, 0, 0, time.UTC),
		},
		{
			name:     "earlier weekday wraps",
			delivery: Delivery{Weekday: time.Monday, Window: WindowMorning},
			want:     time.Date(2026, 7, 6, 8, 0, 0, 0, time.UTC),
		},
	}
	for _, tc := range tests {
		if got := tc.delivery.NextOccurrence(fixedNow); !got.Equal(tc.want) {
			t.Fatalf("%s: NextOccurrence() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAddValidation(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	ctx := context.Background()
	valid := AddInput{Item: "green-reset", Weekday: time.Monday, Window: WindowMorning, Quantity: 2}

	tests := []struct {
		field string
		edit  func(*AddInput)
	}{
		{field: "item", edit: func(in *AddInput) { in.Item = " " }},
		{field: "item", edit: func(in *AddInput) { in.Item = "kombucha" }},
		{field: "weekday", edit: func(in *AddInput) { in.Weekday = 9 }},
		{field: "window", edit: func(in *AddInput) { in.Window = "night" }},
		{field: "quantity", edit: func(in *AddInput) { in.Quantity = 0 }},
		{field: "quantity", edit: func(in *AddInput) { in.Quantity = MaxQuantity + 1 }},
	}
	for _, tc := range tests {
		in := valid
		tc.edit(&in)
		_, err := svc.Add(ctx, "user-1", in)
		if !apperrors.IsCode(err, apperrors.CodeDeliveryInvalid) || apperrors.Field(err) != tc.field {
			t.Fatalf("Add(%+v) error = %v (field %q), want delivery invalid on %s", in, err, apperrors.Field(err), tc.field)
		}
	}
	if _, err := svc.Add(ctx, "", valid); !apperrors.IsCode(err, apperrors.CodeDeliveryInvalid) {
		t.Fatalf("Add(no user) error = %v, want delivery invalid", err)
	}
}

func TestAddListOrdersByWeekdayThenWindow(t *testing.T) {
	t.Parallel()

	svc, _ := newTestService()
	ctx := context.Background()
	inputs := []AddInput{
		{Item: "green-reset", Weekday: time.Friday, Window: WindowMorning, Quantity: 1},
		{Item: "ginger-shot", Weekday: time.Monday, Window: WindowEvening, Quantity: 3},
		{Item: "Green-Reset", Weekday: time.Monday, Window: WindowMorning, Quantity: 2},
	}
	for _, in := range inputs {
		if _, err := svc.Add(ctx, "user-1", in); err != nil {
			t.Fatalf("Add(%+v) error = %v", in, err)
		}
	}
	if _, err := svc.Add(ctx, "user-2", inputs[0]); err != nil {
		t.Fatalf("Add(user-2) error = %v", err)
	}

	list, err := svc.List(ctx, "user-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	var got []string
	for _, delivery := range list {
		got = append(got, delivery.ID)
		if !delivery.Active {
			t.Fatalf("delivery %s not active", delivery.ID)
		}
	}
	if diff := cmp.Diff([]string{"del-3", "del-2", "del-1"}, got); diff != "" {
		t.Fatalf("List() order mismatch (-want +got):\n%s", diff)
	}
	if list[0].Item != "green-reset" {
		t.Fatalf("Item = %q, want normalized slug", list[0].Item)
	}
}

func TestToggleAndRemoveEnforceOwnership(t *testing.T) {
	t.Parallel()

	svc, store := newTestService()
	ctx := context.Background()
	delivery, err := svc.Add(ctx, "user-1", AddInput{Item: "green-reset", Weekday: time.Tuesday, Window: WindowEvening, Quantity: 1})
	if err != nil {
		t.Fatalf("Add() error = %v", err)
	}

	if _, err := svc.Toggle(ctx, "user-2", delivery.ID); !apperrors.IsCode(err, apperrors.CodeDeliveryNotFound) {
		t.Fatalf("Toggle(other user) error = %v, want delivery not found", err)
	}
	paused, err := svc.Toggle(ctx, "user-1", delivery.ID)
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if paused.Active || store.deliveries[delivery.ID].Active {
		t.Fatal("Toggle() should pause an active delivery")
	}
	resumed, err := svc.SetActive(ctx, "user-1", delivery.ID, true)
	if err != nil || !resumed.Active {
		t.Fatalf("SetActive(true) = %+v, %v", resumed, err)
	}

	if err := svc.Remove(ctx, "user-2", delivery.ID); !apperrors.IsCode(err, apperrors.CodeDeliveryNotFound) {
		t.Fatalf("Remove(other user) error = %v, want delivery not found", err)
	}
	if err := svc.Remove(ctx, "user-1", delivery.ID); err != nil {
		t.Fatalf("Remove() error = %v", err)
	}
	if err := svc.Remove(ctx, "user-1", delivery.ID); !apperrors.IsCode(err, apperrors.CodeDeliveryNotFound) {
		t.Fatalf("Remove(twice) error = %v, want delivery not found", err)
	}
}
