// Package storefront hosts the browser-facing shop.
package storefront

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/asjuices/storefront/internal/platform/id"
	"github.com/asjuices/storefront/internal/platform/timeouts"
	"github.com/asjuices/storefront/internal/services/shop/runtime"
	storefrontapp "github.com/asjuices/storefront/internal/services/storefront/app"
	"github.com/asjuices/storefront/internal/services/storefront/module"
	"github.com/asjuices/storefront/internal/services/storefront/modules"
	"github.com/asjuices/storefront/internal/services/storefront/platform/httpx"
	"github.com/asjuices/storefront/internal/services/storefront/platform/observability"
	"github.com/asjuices/storefront/internal/services/storefront/platform/principal"
	"github.com/asjuices/storefront/internal/services/storefront/platform/requestmeta"
	"github.com/asjuices/storefront/internal/services/storefront/routepath"
	storefrontstatic "github.com/asjuices/storefront/internal/services/storefront/static"
)

// Config defines startup inputs for the storefront service.
type Config struct {
	HTTPAddr string
	// TrustForwardedProto honours X-Forwarded-Proto from a TLS proxy.
	TrustForwardedProto bool
	Runtime             *runtime.Runtime
	Logger              *zap.Logger
	// Now overrides the request clock.
	Now func() time.Time
	// CartIDs overrides cart cookie values.
	CartIDs id.Generator
}

// Server hosts the storefront HTTP surface and lifecycle.
type Server struct {
	httpAddr   string
	httpServer *http.Server
	logger     *zap.Logger
}

// NewHandler builds the root handler from the default module groups.
func NewHandler(cfg Config) (http.Handler, error) {
	rt := cfg.Runtime
	if rt == nil {
		return nil, errors.New("shop runtime is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	resolver := principal.Resolver{Sessions: rt.Sessions, Accounts: rt.Accounts}
	deps := resolver.Apply(module.Dependencies{
		Catalog:      rt.Catalog,
		Carts:        rt.Carts,
		Recommender:  rt.Recommender,
		Payments:     rt.Payments,
		Accounts:     rt.Accounts,
		Sessions:     rt.Sessions,
		Orders:       rt.Orders,
		Schedule:     rt.Schedule,
		Logger:       logger,
		SchemePolicy: requestmeta.SchemePolicy{TrustForwardedProto: cfg.TrustForwardedProto},
		CartIDs:      cfg.CartIDs,
		Now:          cfg.Now,
	})
	h, err := storefrontapp.Composer{}.Compose(storefrontapp.ComposeInput{
		Dependencies:     deps,
		AuthRequired:     resolver.AuthRequired,
		PublicModules:    modules.DefaultPublicModules(),
		ProtectedModules: modules.DefaultProtectedModules(),
	})
	if err != nil {
		return nil, err
	}
	rootMux := http.NewServeMux()
	rootMux.Handle(routepath.StaticPrefix, http.StripPrefix(routepath.StaticPrefix, http.FileServer(http.FS(storefrontstatic.FS))))
	rootMux.Handle(routepath.Root, h)
	return httpx.Chain(rootMux,
		httpx.RecoverPanic(logger),
		httpx.RequestID(),
		principal.State(),
		observability.RequestLogger(logger),
	), nil
}

// NewServer validates config and constructs a storefront server.
func NewServer(_ context.Context, cfg Config) (*Server, error) {
	httpAddr := strings.TrimSpace(cfg.HTTPAddr)
	if httpAddr == "" {
		return nil, errors.New("http address is required")
	}
	handler, err := NewHandler(cfg)
	if err != nil {
		return nil, fmt.Errorf("compose storefront handler: %w", err)
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		httpAddr: httpAddr,
		logger:   logger,
		httpServer: &http.Server{
			Addr:              httpAddr,
			Handler:           handler,
			ReadHeaderTimeout: timeouts.ReadHeader,
			WriteTimeout:      timeouts.Write,
			IdleTimeout:       timeouts.Idle,
			ErrorLog:          zap.NewStdLog(logger.Named("http")),
		},
	}, nil
}

// ListenAndServe serves HTTP traffic until context cancellation or server stop.
func (s *Server) ListenAndServe(ctx context.Context) error {
	if s == nil {
		return errors.New("storefront server is nil")
	}
	if ctx == nil {
		return errors.New("context is required")
	}
	listener, err := net.Listen("tcp", s.httpAddr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.httpAddr, err)
	}
	return s.Serve(ctx, listener)
}

// Serve serves on listener until context cancellation or server stop.
func (s *Server) Serve(ctx context.Context, listener net.Listener) error {
	if s == nil {
		return errors.New("storefront server is nil")
	}
	s.logger.Info("storefront listening", zap.String("addr", listener.Addr().String()))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- s.httpServer.Serve(listener)
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), timeouts.Shutdown)
		err := s.httpServer.Shutdown(shutdownCtx)
		cancel()
		if err != nil {
			return fmt.Errorf("shutdown storefront http server: %w", err)
		}
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve storefront http: %w", err)
	}
}

// Close closes open server resources.
func (s *Server) Close() {
	if s == nil || s.httpServer == nil {
		return
	}
	_ = s.httpServer.Close()
}
