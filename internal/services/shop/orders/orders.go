// Package orders records completed checkouts and the customer actions on
// them: history listing and cancellation.
package orders

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	apperrors "github.com/asjuices/storefront/internal/platform/errors"
	"github.com/asjuices/storefront/internal/platform/filter"
	"github.com/asjuices/storefront/internal/platform/id"
	"github.com/asjuices/storefront/internal/platform/money"
	"github.com/asjuices/storefront/internal/services/shop/account"
	"github.com/asjuices/storefront/internal/services/shop/cart"
	"github.com/asjuices/storefront/internal/services/shop/payment"
)

var tracer = otel.Tracer("github.com/asjuices/storefront/internal/services/shop/orders")

// Status is an order lifecycle state.
type Status string

const (
	StatusPaid      Status = "paid"
	StatusFulfilled Status = "fulfilled"
	StatusCancelled Status = "cancelled"
)

// Order is a paid checkout.
type Order struct {
	ID     string
	UserID string
	Email  string
	Lines  []cart.Line
	Total  money.Cents
	// Currency is the ISO code of Total.
	Currency string
	Status   Status
	// PaymentRef is the payment token id; each token places one order.
	PaymentRef   string
	PaymentToken string
	Last4        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Count sums line quantities.
func (o Order) Count() int {
	return cart.Cart{Lines: o.Lines}.Count()
}

// FilterSchema declares the fields an order history filter may reference.
var FilterSchema = filter.Schema{
	"status":  {Column: "status", Type: filter.String},
	"total":   {Column: "total_cents", Type: filter.Int},
	"created": {Column: "created_at", Type: filter.Timestamp},
}

// Store persists orders.
type Store interface {
	// PutOrder inserts a new order. A reused payment reference yields a
	// conflict error.
	PutOrder(ctx context.Context, order Order) error
	GetOrder(ctx context.Context, orderID string) (Order, error)
	// ListOrders returns the orders of userID matching cond, newest first.
	ListOrders(ctx context.Context, userID string, cond filter.SQLCondition) ([]Order, error)
	// TransitionOrderStatus moves an order from one status to another. An
	// order no longer in from yields a conflict error.
	TransitionOrderStatus(ctx context.Context, orderID string, from, to Status, updatedAt time.Time) error
}

// TokenVerifier checks payment tokens.
type TokenVerifier interface {
	Verify(token string) (payment.Claims, error)
}

// Service places and manages orders.
type Service struct {
	store    Store
	verifier TokenVerifier
	now      func() time.Time
	ids      id.Generator
}

// NewService builds an order service. nil clock and ids use the defaults.
func NewService(store Store, verifier TokenVerifier, now func() time.Time, ids id.Generator) *Service {
	if now == nil {
		now = time.Now
	}
	if ids == nil {
		ids = id.NewID
	}
	return &Service{store: store, verifier: verifier, now: now, ids: ids}
}

// PlaceInput carries a paid cart.
type PlaceInput struct {
	// UserID is empty for guest checkouts.
	UserID  string
	Email   string
	Cart    cart.Cart
	Receipt payment.Receipt
}

// Place records a paid cart as an order. The receipt must cover exactly the
// cart total and carry a token this store issued.
func (s *Service) Place(ctx context.Context, in PlaceInput) (Order, error) {
	ctx, span := tracer.Start(ctx, "orders.Place")
	defer span.End()

	if in.Cart.Empty() {
		return Order{}, apperrors.New(apperrors.CodeCartEmpty, "cart is empty")
	}
	email, err := account.NormalizeEmail(in.Email)
	if err != nil {
		return Order{}, apperrors.WithMetadata(apperrors.CodeOrderInvalidEmail, "a valid email is required for the receipt", map[string]string{"field": "email"})
	}
	total := in.Cart.Total()
	if in.Receipt.Amount.Cents != total {
		return Order{}, apperrors.New(apperrors.CodeOrderTotalMismatch,
			fmt.Sprintf("payment of %s does not match cart total %s", in.Receipt.Amount.Cents, total))
	}
	claims, err := s.verifier.Verify(in.Receipt.Token)
	if err != nil {
		return Order{}, err
	}
	if claims.Amount.Cents != total || claims.Amount.Currency != in.Receipt.Amount.Currency {
		return Order{}, apperrors.New(apperrors.CodeOrderTotalMismatch, "payment token amount does not match cart total")
	}

	orderID, err := s.ids()
	if err != nil {
		return Order{}, fmt.Errorf("generate order id: %w", err)
	}
	now := s.now().UTC()
	order := Order{
		ID:           orderID,
		UserID:       strings.TrimSpace(in.UserID),
		Email:        email,
		Lines:        in.Cart.Clone().Lines,
		Total:        total,
		Currency:     claims.Amount.Currency,
		Status:       StatusPaid,
		PaymentRef:   claims.ID,
		PaymentToken: in.Receipt.Token,
		Last4:        claims.Last4,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.store.PutOrder(ctx, order); err != nil {
		return Order{}, fmt.Errorf("put order: %w", err)
	}
	span.SetAttributes(
		attribute.String("order.id", order.ID),
		attribute.Int64("order.total_cents", int64(order.Total)),
		attribute.Bool("order.guest", order.UserID == ""),
	)
	return order, nil
}

// ListForUser returns userID's orders matching an AIP-160 filter, newest first.
func (s *Service) ListForUser(ctx context.Context, userID, filterExpr string) ([]Order, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return nil, nil
	}
	cond, err := filter.Parse(FilterSchema, filterExpr)
	if err != nil {
		return nil, apperrors.Wrap(apperrors.CodeFilterInvalid, fmt.Sprintf("invalid order filter: %v", err), err)
	}
	orders, err := s.store.ListOrders(ctx, userID, cond)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}

// Get returns an order by id.
func (s *Service) Get(ctx context.Context, orderID string) (Order, error) {
	orderID = strings.TrimSpace(orderID)
	if orderID == "" {
		return Order{}, apperrors.New(apperrors.CodeOrderNotFound, "order id is required")
	}
	order, err := s.store.GetOrder(ctx, orderID)
	if err != nil {
		if apperrors.IsCode(err, apperrors.CodeNotFound) {
			return Order{}, apperrors.Wrap(apperrors.CodeOrderNotFound, "order not found", err)
		}
		return Order{}, fmt.Errorf("get order: %w", err)
	}
	return order, nil
}

// GetForUser returns an order owned by userID. Orders of other users and
// guest orders are reported as not found.
func (s *Service) GetForUser(ctx context.Context, userID, orderID string) (Order, error) {
	order, err := s.Get(ctx, orderID)
	if err != nil {
		return Order{}, err
	}
	userID = strings.TrimSpace(userID)
	if userID == "" || order.UserID != userID {
		return Order{}, apperrors.New(apperrors.CodeOrderNotFound, "order not found")
	}
	return order, nil
}

// Cancel cancels a paid order owned by userID.
func (s *Service) Cancel(ctx context.Context, userID, orderID string) (Order, error) {
	order, err := s.GetForUser(ctx, userID, orderID)
	if err != nil {
		return Order{}, err
	}
	if order.Status != StatusPaid {
		return Order{}, apperrors.New(apperrors.CodeOrderNotCancellable,
			fmt.Sprintf("order in status %s cannot be cancelled", order.Status))
	}
	now := s.now().UTC()
	if err := s.store.TransitionOrderStatus(ctx, order.ID, StatusPaid, StatusCancelled, now); err != nil {
		if apperrors.IsCode(err, apperrors.CodeConflict) {
			return Order{}, apperrors.Wrap(apperrors.CodeOrderNotCancellable,
				"order changed status before it could be cancelled", err)
		}
		return Order{}, fmt.Errorf("cancel order: %w", err)
	}
	order.Status = StatusCancelled
	order.UpdatedAt = now
	return order, nil
}
