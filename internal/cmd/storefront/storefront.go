// Package storefront parses storefront command flags and launches the shop.
package storefront

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	entrypoint "github.com/asjuices/storefront/internal/platform/cmd"
	"github.com/asjuices/storefront/internal/platform/config"
	"github.com/asjuices/storefront/internal/platform/logging"
	"github.com/asjuices/storefront/internal/platform/otel"
	"github.com/asjuices/storefront/internal/services/shop/runtime"
	"github.com/asjuices/storefront/internal/services/shop/storage/sqlite"
	"github.com/asjuices/storefront/internal/services/storefront"
)

// Config holds storefront command configuration.
type Config struct {
	HTTPAddr            string        `env:"HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath              string        `env:"DB_PATH" envDefault:"data/storefront.db"`
	TrustForwardedProto bool          `env:"TRUST_FORWARDED_PROTO"`
	PaymentSecret       string        `env:"PAYMENT_SECRET"`
	PaymentDelay        time.Duration `env:"PAYMENT_DELAY" envDefault:"1500ms"`
	SessionTTL          time.Duration `env:"SESSION_TTL" envDefault:"168h"`
	CartIdle            time.Duration `env:"CART_IDLE_TTL" envDefault:"24h"`
	SweepInterval       time.Duration `env:"SWEEP_INTERVAL" envDefault:"10m"`

	Logging   logging.Config
	Telemetry otel.Config
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "SQLite database path")
	fs.BoolVar(&cfg.TrustForwardedProto, "trust-forwarded-proto", cfg.TrustForwardedProto, "Honour X-Forwarded-Proto from a TLS proxy")
	fs.DurationVar(&cfg.PaymentDelay, "payment-delay", cfg.PaymentDelay, "Simulated payment gateway delay")
	fs.DurationVar(&cfg.SessionTTL, "session-ttl", cfg.SessionTTL, "Web session lifetime")
	fs.DurationVar(&cfg.CartIdle, "cart-idle", cfg.CartIdle, "Idle time after which carts are dropped")
	fs.DurationVar(&cfg.SweepInterval, "sweep-interval", cfg.SweepInterval, "Pause between maintenance sweeps")
	fs.StringVar(&cfg.Logging.Level, "log-level", cfg.Logging.Level, "Log level (debug, info, warn, error)")
	fs.StringVar(&cfg.Logging.Format, "log-format", cfg.Logging.Format, "Log format (json or console)")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, config.Usage(err)
	}
	if err := cfg.validate(); err != nil {
		return Config{}, config.Usage(err)
	}
	return cfg, nil
}

func (cfg Config) validate() error {
	if strings.TrimSpace(cfg.HTTPAddr) == "" {
		return errors.New("http address is required")
	}
	if strings.TrimSpace(cfg.DBPath) == "" {
		return errors.New("database path is required")
	}
	if cfg.PaymentDelay < 0 {
		return fmt.Errorf("payment delay must not be negative, got %s", cfg.PaymentDelay)
	}
	if cfg.SessionTTL < time.Minute {
		return fmt.Errorf("session ttl must be at least a minute, got %s", cfg.SessionTTL)
	}
	return nil
}

// Run opens the store, starts the HTTP server and the maintenance sweeper,
// and blocks until ctx is done or either stops with an error.
func Run(ctx context.Context, cfg Config) error {
	logger, err := logging.New(cfg.Logging, entrypoint.ServiceStorefront)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	options := entrypoint.RunOptions{Telemetry: cfg.Telemetry, Logger: logger}
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceStorefront, options, func(ctx context.Context) error {
		return serve(ctx, cfg, logger)
	})
}

func serve(ctx context.Context, cfg Config, logger *zap.Logger) error {
	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	store, err := sqlite.Open(ctx, cfg.DBPath)
	if err != nil {
		return err
	}
	defer func() {
		if err := store.Close(); err != nil {
			logger.Warn("close store", zap.Error(err))
		}
	}()

	secret := []byte(cfg.PaymentSecret)
	if len(secret) == 0 {
		logger.Warn("no payment secret configured; payment tokens will not survive a restart")
	}
	// Zero means no delay here; the processor reads zero as its default.
	delay := cfg.PaymentDelay
	if delay == 0 {
		delay = -1
	}
	rt, err := runtime.New(ctx, store, runtime.Options{
		PaymentDelay:  delay,
		PaymentSecret: secret,
		SessionTTL:    cfg.SessionTTL,
		CartIdle:      cfg.CartIdle,
		Logger:        logger,
	})
	if err != nil {
		return err
	}
	rt.Sweeper.Interval = cfg.SweepInterval

	server, err := storefront.NewServer(ctx, storefront.Config{
		HTTPAddr:            cfg.HTTPAddr,
		TrustForwardedProto: cfg.TrustForwardedProto,
		Runtime:             rt,
		Logger:              logger,
	})
	if err != nil {
		return err
	}
	defer server.Close()

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return server.ListenAndServe(groupCtx)
	})
	group.Go(func() error {
		return rt.Sweeper.Run(groupCtx)
	})
	return group.Wait()
}
