// Package runtime wires the shop services over one SQLite store.
package runtime

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/asjuices/storefront/internal/platform/id"
	"github.com/asjuices/storefront/internal/services/shop/account"
	"github.com/asjuices/storefront/internal/services/shop/cart"
	"github.com/asjuices/storefront/internal/services/shop/catalog"
	"github.com/asjuices/storefront/internal/services/shop/maintenance"
	"github.com/asjuices/storefront/internal/services/shop/orders"
	"github.com/asjuices/storefront/internal/services/shop/payment"
	"github.com/asjuices/storefront/internal/services/shop/quiz"
	"github.com/asjuices/storefront/internal/services/shop/schedule"
	"github.com/asjuices/storefront/internal/services/shop/storage/sqlite"
	"github.com/asjuices/storefront/internal/services/shop/websession"
)

// Options tunes the services built by New.
type Options struct {
	// PaymentDelay is the mock gateway delay; negative disables it.
	PaymentDelay time.Duration
	// PaymentSecret signs payment tokens; empty generates one per process.
	PaymentSecret []byte
	SessionTTL    time.Duration
	// HashCost overrides the bcrypt cost; zero keeps the default.
	HashCost int
	CartIdle time.Duration
	Now      func() time.Time
	IDs      id.Generator
	Logger   *zap.Logger
}

// Runtime holds the wired shop services.
type Runtime struct {
	Store       *sqlite.Store
	Catalog     *catalog.Service
	Carts       *cart.Store
	Recommender *quiz.Recommender
	Payments    *payment.MockProcessor
	Accounts    *account.Service
	Sessions    *websession.Manager
	Orders      *orders.Service
	Schedule    *schedule.Service
	Sweeper     *maintenance.Sweeper
}

// New seeds the catalog into store and builds every service over it.
func New(ctx context.Context, store *sqlite.Store, opts Options) (*Runtime, error) {
	if store == nil {
		return nil, fmt.Errorf("store is required")
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	products, err := catalog.Load()
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}
	if err := catalog.Seed(ctx, store, products); err != nil {
		return nil, fmt.Errorf("seed catalog: %w", err)
	}
	recommender, err := quiz.LoadRecommender()
	if err != nil {
		return nil, fmt.Errorf("load quiz programs: %w", err)
	}

	secret := opts.PaymentSecret
	if len(secret) == 0 {
		secret, err = payment.RandomSecret()
		if err != nil {
			return nil, err
		}
	}
	signer, err := payment.NewSigner(secret)
	if err != nil {
		return nil, err
	}

	accountOpts := []account.Option{account.WithClock(now)}
	if opts.IDs != nil {
		accountOpts = append(accountOpts, account.WithIDGenerator(opts.IDs))
	}
	if opts.HashCost > 0 {
		accountOpts = append(accountOpts, account.WithHashCost(opts.HashCost))
	}

	catalogService := catalog.NewService(store)
	carts := cart.NewStore(now)
	sessions := websession.NewManager(store, opts.SessionTTL, now, opts.IDs)
	return &Runtime{
		Store:       store,
		Catalog:     catalogService,
		Carts:       carts,
		Recommender: recommender,
		Payments: &payment.MockProcessor{
			Delay:  opts.PaymentDelay,
			Signer: signer,
			Clock:  now,
			IDs:    opts.IDs,
		},
		Accounts: account.NewService(store, accountOpts...),
		Sessions: sessions,
		Orders:   orders.NewService(store, signer, now, opts.IDs),
		Schedule: schedule.NewService(store, catalogService, now, opts.IDs),
		Sweeper: &maintenance.Sweeper{
			Sessions: sessions,
			Carts:    carts,
			CartIdle: opts.CartIdle,
			Logger:   logger.Named("maintenance"),
		},
	}, nil
}
