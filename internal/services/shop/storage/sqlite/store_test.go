package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	apperrors "github.com/asjuices/storefront/internal/platform/errors"
	"github.com/asjuices/storefront/internal/platform/filter"
	"github.com/asjuices/storefront/internal/services/shop/account"
	"github.com/asjuices/storefront/internal/services/shop/cart"
	"github.com/asjuices/storefront/internal/services/shop/catalog"
	"github.com/asjuices/storefront/internal/services/shop/orders"
	"github.com/asjuices/storefront/internal/services/shop/schedule"
	"github.com/asjuices/storefront/internal/services/shop/websession"
)

var baseTime = time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(context.Background(), filepath.Join(t.TempDir(), "nested", "storefront.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() {
		if err := store.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	})
	return store
}

func createUser(t *testing.T, store *Store, userID, email string) account.User {
	t.Helper()
	u := account.User{ID: userID, Email: email, PasswordHash: "hash", CreatedAt: baseTime, UpdatedAt: baseTime}
	if err := store.CreateUser(context.Background(), u, account.Profile{UpdatedAt: baseTime}); err != nil {
		t.Fatalf("CreateUser(%s) error = %v", userID, err)
	}
	return u
}

func TestOpenRequiresPath(t *testing.T) {
	t.Parallel()

	if _, err := Open(context.Background(), " "); err == nil {
		t.Fatal("Open(blank) should fail")
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "storefront.db")
	for i := 0; i < 2; i++ {
		store, err := Open(context.Background(), path)
		if err != nil {
			t.Fatalf("Open() pass %d error = %v", i, err)
		}
		if err := store.Close(); err != nil {
			t.Fatalf("Close() error = %v", err)
		}
	}
}

func TestProductsRoundTripAndFilter(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()
	products, err := catalog.Load()
	if err != nil {
		t.Fatalf("catalog.Load() error = %v", err)
	}
	if err := catalog.Seed(ctx, store, products); err != nil {
		t.Fatalf("Seed() error = %v", err)
	}
	// Seeding twice upserts.
	if err := catalog.Seed(ctx, store, products); err != nil {
		t.Fatalf("Seed() again error = %v", err)
	}

	got, err := store.GetProduct(ctx, products[0].Slug)
	if err != nil {
		t.Fatalf("GetProduct() error = %v", err)
	}
	if diff := cmp.Diff(products[0], got); diff != "" {
		t.Fatalf("GetProduct() mismatch (-want +got):\n%s", diff)
	}

	all, err := store.ListProducts(ctx, filter.SQLCondition{})
	if err != nil {
		t.Fatalf("ListProducts() error = %v", err)
	}
	if len(all) != len(products) {
		t.Fatalf("ListProducts() = %d products, want %d", len(all), len(products))
	}

	svc := catalog.NewService(store)
	shots, err := svc.List(ctx, `category = "shot" AND price < 500`)
	if err != nil {
		t.Fatalf("List(shots) error = %v", err)
	}
	for _, product := range shots {
		if product.Category != catalog.CategoryShot || product.Price >= 500 {
			t.Fatalf("List(shots) returned %+v", product)
		}
	}
	if len(shots) == 0 {
		t.Fatal("List(shots) returned nothing")
	}

	featured, err := svc.Featured(ctx)
	if err != nil {
		t.Fatalf("Featured() error = %v", err)
	}
	if len(featured) == 0 {
		t.Fatal("Featured() returned nothing")
	}
	for _, product := range featured {
		if !product.Featured {
			t.Fatalf("Featured() returned %s", product.Slug)
		}
	}

	if _, err := store.GetProduct(ctx, "kombucha"); !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("GetProduct(missing) error = %v, want not found", err)
	}
}

func TestUsersAndProfiles(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()
	u := createUser(t, store, "user-1", "ada@example.com")

	dup := u
	dup.ID = "user-2"
	err := store.CreateUser(ctx, dup, account.Profile{})
	if !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("CreateUser(duplicate email) error = %v, want conflict", err)
	}

	byEmail, err := store.GetUserByEmail(ctx, "ada@example.com")
	if err != nil {
		t.Fatalf("GetUserByEmail() error = %v", err)
	}
	if diff := cmp.Diff(u, byEmail); diff != "" {
		t.Fatalf("GetUserByEmail() mismatch (-want +got):\n%s", diff)
	}
	if _, err := store.GetUser(ctx, "user-2"); !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("GetUser(rolled back) error = %v, want not found", err)
	}

	profile, err := store.GetProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if profile.UserID != "user-1" || profile.FullName != "" {
		t.Fatalf("GetProfile() = %+v, want empty profile", profile)
	}

	updated := account.Profile{UserID: "user-1", FullName: "Ada", City: "Portland", DeliveryNotes: "side door", UpdatedAt: baseTime.Add(time.Hour)}
	if err := store.PutProfile(ctx, updated); err != nil {
		t.Fatalf("PutProfile() error = %v", err)
	}
	profile, err = store.GetProfile(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetProfile() error = %v", err)
	}
	if diff := cmp.Diff(updated, profile); diff != "" {
		t.Fatalf("GetProfile() mismatch (-want +got):\n%s", diff)
	}
}

func TestAccountServiceOverStore(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	svc := account.NewService(store, account.WithHashCost(4))
	ctx := context.Background()

	if _, err := svc.SignUp(ctx, "bob@example.com", "hunter22"); err != nil {
		t.Fatalf("SignUp() error = %v", err)
	}
	if _, err := svc.SignUp(ctx, "BOB@example.com", "hunter22"); !apperrors.IsCode(err, apperrors.CodeAccountEmailTaken) {
		t.Fatalf("SignUp(duplicate) error = %v, want email taken", err)
	}
	if _, err := svc.SignIn(ctx, "bob@example.com", "hunter22"); err != nil {
		t.Fatalf("SignIn() error = %v", err)
	}
}

func TestWebSessions(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()
	createUser(t, store, "user-1", "ada@example.com")

	live := websession.Session{ID: "ws-1", UserID: "user-1", CreatedAt: baseTime, ExpiresAt: baseTime.Add(time.Hour)}
	expired := websession.Session{ID: "ws-2", UserID: "user-1", CreatedAt: baseTime, ExpiresAt: baseTime.Add(-time.Minute)}
	for _, session := range []websession.Session{live, expired} {
		if err := store.PutWebSession(ctx, session); err != nil {
			t.Fatalf("PutWebSession(%s) error = %v", session.ID, err)
		}
	}

	got, err := store.GetWebSession(ctx, "ws-1")
	if err != nil {
		t.Fatalf("GetWebSession() error = %v", err)
	}
	if diff := cmp.Diff(live, got); diff != "" {
		t.Fatalf("GetWebSession() mismatch (-want +got):\n%s", diff)
	}

	removed, err := store.DeleteExpiredWebSessions(ctx, baseTime)
	if err != nil {
		t.Fatalf("DeleteExpiredWebSessions() error = %v", err)
	}
	if removed != 1 {
		t.Fatalf("DeleteExpiredWebSessions() = %d, want 1", removed)
	}

	revokedAt := baseTime.Add(time.Minute)
	if err := store.RevokeWebSession(ctx, "ws-1", revokedAt); err != nil {
		t.Fatalf("RevokeWebSession() error = %v", err)
	}
	if err := store.RevokeWebSession(ctx, "ws-1", revokedAt.Add(time.Hour)); err != nil {
		t.Fatalf("RevokeWebSession(again) error = %v", err)
	}
	got, err = store.GetWebSession(ctx, "ws-1")
	if err != nil {
		t.Fatalf("GetWebSession() error = %v", err)
	}
	if got.RevokedAt == nil || !got.RevokedAt.Equal(revokedAt) {
		t.Fatalf("RevokedAt = %v, want %v", got.RevokedAt, revokedAt)
	}
	if err := store.RevokeWebSession(ctx, "ws-404", revokedAt); !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("RevokeWebSession(missing) error = %v, want not found", err)
	}
}

func testOrder(orderID, userID, ref string, total int64, createdAt time.Time) orders.Order {
	return orders.Order{
		ID:           orderID,
		UserID:       userID,
		Email:        "ada@example.com",
		Lines:        []cart.Line{{Name: "Green Reset", Price: 1100, Quantity: 1}},
		Total:        1100,
		Currency:     "USD",
		Status:       orders.StatusPaid,
		PaymentRef:   ref,
		PaymentToken: "token-" + ref,
		Last4:        "4242",
		CreatedAt:    createdAt,
		UpdatedAt:    createdAt,
	}
}

func TestOrders(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()
	createUser(t, store, "user-1", "ada@example.com")

	first := testOrder("o-1", "user-1", "tok-1", 1100, baseTime)
	second := testOrder("o-2", "user-1", "tok-2", 1100, baseTime.Add(time.Hour))
	guest := testOrder("o-3", "", "tok-3", 1100, baseTime)
	for _, order := range []orders.Order{first, second, guest} {
		if err := store.PutOrder(ctx, order); err != nil {
			t.Fatalf("PutOrder(%s) error = %v", order.ID, err)
		}
	}
	if err := store.PutOrder(ctx, testOrder("o-4", "", "tok-1", 1100, baseTime)); !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("PutOrder(reused ref) error = %v, want conflict", err)
	}

	got, err := store.GetOrder(ctx, "o-3")
	if err != nil {
		t.Fatalf("GetOrder() error = %v", err)
	}
	if diff := cmp.Diff(guest, got); diff != "" {
		t.Fatalf("GetOrder() mismatch (-want +got):\n%s", diff)
	}

	list, err := store.ListOrders(ctx, "user-1", filter.SQLCondition{})
	if err != nil {
		t.Fatalf("ListOrders() error = %v", err)
	}
	if len(list) != 2 || list[0].ID != "o-2" || list[1].ID != "o-1" {
		t.Fatalf("ListOrders() = %v, want newest first [o-2 o-1]", orderIDs(list))
	}

	if err := store.TransitionOrderStatus(ctx, "o-1", orders.StatusPaid, orders.StatusCancelled, baseTime.Add(2*time.Hour)); err != nil {
		t.Fatalf("TransitionOrderStatus() error = %v", err)
	}
	if err := store.TransitionOrderStatus(ctx, "o-1", orders.StatusPaid, orders.StatusFulfilled, baseTime.Add(3*time.Hour)); !apperrors.IsCode(err, apperrors.CodeConflict) {
		t.Fatalf("TransitionOrderStatus(stale) error = %v, want conflict", err)
	}
	if err := store.TransitionOrderStatus(ctx, "o-404", orders.StatusPaid, orders.StatusCancelled, baseTime); !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("TransitionOrderStatus(missing) error = %v, want not found", err)
	}

	cond, err := filter.Parse(orders.FilterSchema, `status = "cancelled"`)
	if err != nil {
		t.Fatalf("filter.Parse() error = %v", err)
	}
	cancelled, err := store.ListOrders(ctx, "user-1", cond)
	if err != nil {
		t.Fatalf("ListOrders(cancelled) error = %v", err)
	}
	if diff := cmp.Diff([]string{"o-1"}, orderIDs(cancelled)); diff != "" {
		t.Fatalf("ListOrders(cancelled) mismatch (-want +got):\n%s", diff)
	}

	cond, err = filter.Parse(orders.FilterSchema, `created > timestamp("2026-04-01T12:30:00Z")`)
	if err != nil {
		t.Fatalf("filter.Parse() error = %v", err)
	}
	recent, err := store.ListOrders(ctx, "user-1", cond)
	if err != nil {
		t.Fatalf("ListOrders(recent) error = %v", err)
	}
	if diff := cmp.Diff([]string{"o-2"}, orderIDs(recent)); diff != "" {
		t.Fatalf("ListOrders(recent) mismatch (-want +got):\n%s", diff)
	}
}

func orderIDs(list []orders.Order) []string {
	ids := make([]string, 0, len(list))
	for _, order := range list {
		ids = append(ids, order.ID)
	}
	return ids
}

func TestDeliveries(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx := context.Background()
	createUser(t, store, "user-1", "ada@example.com")

	d := schedule.Delivery{
		ID: "d-1", UserID: "user-1", Item: "green-reset", Weekday: time.Thursday,
		Window: schedule.WindowEvening, Quantity: 2, Active: true,
		CreatedAt: baseTime, UpdatedAt: baseTime,
	}
	if err := store.PutDelivery(ctx, d); err != nil {
		t.Fatalf("PutDelivery() error = %v", err)
	}
	d.Active = false
	d.UpdatedAt = baseTime.Add(time.Hour)
	if err := store.PutDelivery(ctx, d); err != nil {
		t.Fatalf("PutDelivery(update) error = %v", err)
	}

	got, err := store.GetDelivery(ctx, "d-1")
	if err != nil {
		t.Fatalf("GetDelivery() error = %v", err)
	}
	if diff := cmp.Diff(d, got); diff != "" {
		t.Fatalf("GetDelivery() mismatch (-want +got):\n%s", diff)
	}

	list, err := store.ListDeliveries(ctx, "user-1")
	if err != nil {
		t.Fatalf("ListDeliveries() error = %v", err)
	}
	if len(list) != 1 {
		t.Fatalf("ListDeliveries() = %d, want 1", len(list))
	}

	if err := store.DeleteDelivery(ctx, "d-1"); err != nil {
		t.Fatalf("DeleteDelivery() error = %v", err)
	}
	if err := store.DeleteDelivery(ctx, "d-1"); !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("DeleteDelivery(twice) error = %v, want not found", err)
	}
	if _, err := store.GetDelivery(ctx, "d-1"); !apperrors.IsCode(err, apperrors.CodeNotFound) {
		t.Fatalf("GetDelivery(deleted) error = %v, want not found", err)
	}
}

func TestClosedContextIsRejected(t *testing.T) {
	t.Parallel()

	store := openTestStore(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := store.GetProduct(ctx, "green-reset"); err == nil {
		t.Fatal("GetProduct(cancelled ctx) should fail")
	}
}
