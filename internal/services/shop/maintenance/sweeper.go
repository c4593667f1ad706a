// Package maintenance runs periodic cleanup of expired shop state.
package maintenance

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/asjuices/storefront/internal/platform/timeouts"
)

// DefaultInterval is the pause between sweeps.
const DefaultInterval = 10 * time.Minute

// SessionPurger deletes web sessions that can no longer authenticate.
type SessionPurger interface {
	DeleteExpired(ctx context.Context) (int64, error)
}

// CartSweeper drops carts idle for longer than a duration.
type CartSweeper interface {
	SweepIdle(idle time.Duration) int
}

// Sweeper periodically purges expired sessions and idle carts.
type Sweeper struct {
	Sessions SessionPurger
	Carts    CartSweeper
	CartIdle time.Duration
	Interval time.Duration
	Logger   *zap.Logger
}

// Result counts what one sweep removed.
type Result struct {
	Sessions int64
	Carts    int
}

// Run sweeps once immediately and then every Interval until ctx is done.
func (s *Sweeper) Run(ctx context.Context) error {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		s.SweepOnce(ctx)
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
		}
	}
}

// SweepOnce runs a single bounded sweep. Failures are logged, not returned,
// so one bad pass does not stop the loop.
func (s *Sweeper) SweepOnce(ctx context.Context) Result {
	logger := s.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	ctx, cancel := context.WithTimeout(ctx, timeouts.Sweep)
	defer cancel()

	var result Result
	if s.Sessions != nil {
		removed, err := s.Sessions.DeleteExpired(ctx)
		if err != nil {
			logger.Warn("sweep web sessions", zap.Error(err))
		} else {
			result.Sessions = removed
		}
	}
	if s.Carts != nil && s.CartIdle > 0 {
		result.Carts = s.Carts.SweepIdle(s.CartIdle)
	}
	if result.Sessions > 0 || result.Carts > 0 {
		logger.Info("maintenance sweep",
			zap.Int64("sessions_removed", result.Sessions),
			zap.Int("carts_removed", result.Carts),
		)
	}
	return result
}
