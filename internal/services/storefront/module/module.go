// Package module defines the contracts storefront feature modules mount
// through.
package module

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/asjuices/storefront/internal/platform/id"
	"github.com/asjuices/storefront/internal/services/shop/account"
	"github.com/asjuices/storefront/internal/services/shop/cart"
	"github.com/asjuices/storefront/internal/services/shop/catalog"
	"github.com/asjuices/storefront/internal/services/shop/orders"
	"github.com/asjuices/storefront/internal/services/shop/payment"
	"github.com/asjuices/storefront/internal/services/shop/quiz"
	"github.com/asjuices/storefront/internal/services/shop/schedule"
	"github.com/asjuices/storefront/internal/services/shop/websession"
	"github.com/asjuices/storefront/internal/services/storefront/platform/requestmeta"
)

// Module is one mountable route group.
type Module interface {
	ID() string
	Mount(Dependencies) (Mount, error)
}

// Mount is the prefix and handler a module owns.
type Mount struct {
	Prefix  string
	Handler http.Handler
}

// Viewer is the signed-in visitor shown in the page chrome.
type Viewer struct {
	UserID string
	Email  string
}

// SignedIn reports whether the viewer has a session.
func (v Viewer) SignedIn() bool {
	return v.UserID != ""
}

// Catalog reads products.
type Catalog interface {
	List(ctx context.Context, filterExpr string) ([]catalog.Product, error)
	Featured(ctx context.Context) ([]catalog.Product, error)
	Get(ctx context.Context, slug string) (catalog.Product, error)
}

// Carts holds per-browser carts.
type Carts interface {
	Get(cartID string) cart.Cart
	Update(cartID string, fn func(*cart.Cart) error) (cart.Cart, error)
	BeginCheckout(cartID string) (cart.Cart, error)
	CompleteCheckout(cartID, orderID string, charged cart.Cart)
	AbortCheckout(cartID string)
	LastOrderID(cartID string) string
}

// Recommender maps quiz answers to a program.
type Recommender interface {
	Recommend(answers []string) (quiz.Program, error)
}

// PaymentProcessor charges cards.
type PaymentProcessor interface {
	Charge(ctx context.Context, req payment.ChargeRequest) (payment.Receipt, error)
}

// Accounts signs visitors up and in and keeps their profile.
type Accounts interface {
	SignUp(ctx context.Context, email, password string) (account.User, error)
	SignIn(ctx context.Context, email, password string) (account.User, error)
	GetUser(ctx context.Context, userID string) (account.User, error)
	GetProfile(ctx context.Context, userID string) (account.Profile, error)
	UpdateProfile(ctx context.Context, userID string, input account.ProfileInput) (account.Profile, error)
}

// Sessions issues and checks web sessions.
type Sessions interface {
	TTL() time.Duration
	Create(ctx context.Context, userID string) (websession.Session, error)
	Resolve(ctx context.Context, sessionID string) (websession.Session, error)
	Revoke(ctx context.Context, sessionID string) error
}

// Orders places and reads orders.
type Orders interface {
	Place(ctx context.Context, in orders.PlaceInput) (orders.Order, error)
	ListForUser(ctx context.Context, userID, filterExpr string) ([]orders.Order, error)
	Get(ctx context.Context, orderID string) (orders.Order, error)
	GetForUser(ctx context.Context, userID, orderID string) (orders.Order, error)
	Cancel(ctx context.Context, userID, orderID string) (orders.Order, error)
}

// Schedule manages recurring deliveries.
type Schedule interface {
	Add(ctx context.Context, userID string, in schedule.AddInput) (schedule.Delivery, error)
	List(ctx context.Context, userID string) ([]schedule.Delivery, error)
	Toggle(ctx context.Context, userID, deliveryID string) (schedule.Delivery, error)
	Remove(ctx context.Context, userID, deliveryID string) error
}

// Dependencies carries the services and request resolvers modules share.
type Dependencies struct {
	Catalog     Catalog
	Carts       Carts
	Recommender Recommender
	Payments    PaymentProcessor
	Accounts    Accounts
	Sessions    Sessions
	Orders      Orders
	Schedule    Schedule

	Logger       *zap.Logger
	SchemePolicy requestmeta.SchemePolicy
	// CartIDs mints cart cookie values; nil uses id.NewID.
	CartIDs id.Generator
	// Now is the request clock; nil uses time.Now.
	Now func() time.Time

	ResolveUserID func(*http.Request) string
	ResolveViewer func(*http.Request) Viewer
}

// UserID returns the signed-in user for r, or "".
func (d Dependencies) UserID(r *http.Request) string {
	if d.ResolveUserID == nil || r == nil {
		return ""
	}
	return d.ResolveUserID(r)
}

// Viewer returns the page-chrome viewer for r.
func (d Dependencies) Viewer(r *http.Request) Viewer {
	if d.ResolveViewer == nil || r == nil {
		return Viewer{}
	}
	return d.ResolveViewer(r)
}

// Clock returns the configured clock.
func (d Dependencies) Clock() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// Log returns the configured logger or a no-op one.
func (d Dependencies) Log() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}
