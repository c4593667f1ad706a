package payment

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/asjuices/storefront/internal/platform/id"
)

// DefaultDelay mimics a gateway round trip.
const DefaultDelay = 1500 * time.Millisecond

var tracer = otel.Tracer("github.com/asjuices/storefront/internal/services/shop/payment")

// ChargeRequest asks for a charge against a card.
type ChargeRequest struct {
	Amount Amount
	Card   Card
	Email  string
}

// Receipt describes a completed mock charge. Raw card data is never kept.
type Receipt struct {
	Token       string
	Amount      Amount
	Last4       string
	Brand       string
	ProcessedAt time.Time
}

// MockProcessor fabricates charges after a simulated delay.
type MockProcessor struct {
	// Delay is how long Charge waits before answering. Negative disables it.
	Delay  time.Duration
	Signer *Signer
	Clock  func() time.Time
	IDs    id.Generator
}

// Charge validates req, waits the processing delay and returns a signed
// receipt. A cancelled ctx aborts the wait.
func (p *MockProcessor) Charge(ctx context.Context, req ChargeRequest) (Receipt, error) {
	ctx, span := tracer.Start(ctx, "payment.Charge")
	defer span.End()

	receipt, err := p.charge(ctx, req)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "charge failed")
		return Receipt{}, err
	}
	span.SetAttributes(
		attribute.Int64("payment.amount_cents", int64(receipt.Amount.Cents)),
		attribute.String("payment.currency", receipt.Amount.Currency),
		attribute.String("payment.brand", receipt.Brand),
	)
	return receipt, nil
}

func (p *MockProcessor) charge(ctx context.Context, req ChargeRequest) (Receipt, error) {
	if p.Signer == nil {
		return Receipt{}, fmt.Errorf("payment signer is not configured")
	}
	clock := p.Clock
	if clock == nil {
		clock = time.Now
	}
	ids := p.IDs
	if ids == nil {
		ids = id.NewID
	}

	amount, err := req.Amount.Normalize()
	if err != nil {
		return Receipt{}, err
	}
	digits, err := req.Card.Validate(clock())
	if err != nil {
		return Receipt{}, err
	}

	if err := p.wait(ctx); err != nil {
		return Receipt{}, err
	}

	tokenID, err := ids()
	if err != nil {
		return Receipt{}, fmt.Errorf("generate payment id: %w", err)
	}
	processedAt := clock().UTC()
	last4 := digits[len(digits)-4:]
	token, err := p.Signer.Sign(Claims{
		ID:       "tok_" + strings.ToLower(tokenID),
		Amount:   amount,
		Last4:    last4,
		IssuedAt: processedAt,
	})
	if err != nil {
		return Receipt{}, err
	}
	return Receipt{
		Token:       token,
		Amount:      amount,
		Last4:       last4,
		Brand:       Brand(digits),
		ProcessedAt: processedAt,
	}, nil
}

func (p *MockProcessor) wait(ctx context.Context) error {
	delay := p.Delay
	if delay == 0 {
		delay = DefaultDelay
	}
	if delay < 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return fmt.Errorf("payment processing: %w", ctx.Err())
	case <-timer.C:
		return nil
	}
}
