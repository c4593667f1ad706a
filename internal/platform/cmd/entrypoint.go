// Package cmd holds shared process entrypoint helpers.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/asjuices/storefront/internal/platform/config"
	"github.com/asjuices/storefront/internal/platform/otel"
)

const defaultOTelShutdownTimeout = 5 * time.Second

// ServiceStorefront names the storefront process in telemetry and logs.
const ServiceStorefront = "storefront"

// RunOptions controls how RunWithTelemetry brackets a service.
type RunOptions struct {
	// Telemetry configures trace export.
	Telemetry otel.Config
	// Logger receives lifecycle messages. Nil discards them.
	Logger *zap.Logger
	// ShutdownTimeout bounds the final trace flush.
	ShutdownTimeout time.Duration
	// Clock is injectable for uptime logging. Nil uses time.Now.
	Clock func() time.Time
}

// ParseConfig loads environment defaults into cfg.
func ParseConfig[T any](cfg *T) error {
	if cfg == nil {
		return errors.New("config target is required")
	}
	return config.ParseEnv(cfg)
}

// ParseArgs parses command-line flags. A nil args slice parses nothing
// rather than falling back to os.Args.
func ParseArgs(fs *flag.FlagSet, args []string) error {
	if fs == nil {
		return errors.New("flag parser is required")
	}
	if args == nil {
		args = []string{}
	}
	return fs.Parse(args)
}

// RunWithTelemetry installs the tracer provider, runs the service and flushes
// traces on the way out. Start and stop are logged with the service uptime.
func RunWithTelemetry(ctx context.Context, service string, options RunOptions, run func(context.Context) error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	service = strings.TrimSpace(service)
	if service == "" {
		return errors.New("service name is required")
	}
	if run == nil {
		return errors.New("run function is required")
	}
	logger := options.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	logger = logger.With(zap.String("service", service))
	clock := options.Clock
	if clock == nil {
		clock = time.Now
	}

	shutdown, err := otel.Setup(ctx, service, options.Telemetry)
	if err != nil {
		return fmt.Errorf("setup telemetry: %w", err)
	}
	defer flushTelemetry(logger, shutdown, options.ShutdownTimeout)

	started := clock()
	logger.Info("service starting")
	err = run(ctx)
	fields := []zap.Field{zap.Duration("uptime", clock().Sub(started))}
	if err != nil {
		logger.Error("service stopped", append(fields, zap.Error(err))...)
		return err
	}
	logger.Info("service stopped", fields...)
	return nil
}

func flushTelemetry(logger *zap.Logger, shutdown func(context.Context) error, timeout time.Duration) {
	if timeout <= 0 {
		timeout = defaultOTelShutdownTimeout
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := shutdown(ctx); err != nil {
		logger.Warn("otel shutdown", zap.Error(err))
	}
}
