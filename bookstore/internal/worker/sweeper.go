package worker

import (
	"context"
	"time"

	"go.uber.org/zap"

	"bookstore-admin/bookstore/internal/service"
	"bookstore-admin/bookstore/internal/uow"
)

const (
	DefaultSweepInterval = 10 * time.Minute
	DefaultCartTTL       = 72 * time.Hour
)

// CartSweeper periodically abandons open carts that nobody touched for
// longer than TTL. Each sweep is one unit of work.
type CartSweeper struct {
	Factory  *uow.Factory
	TTL      time.Duration
	Interval time.Duration
	Log      *zap.Logger
	Now      func() time.Time
}

// Run sweeps once immediately and then every Interval until ctx is done.
func (s *CartSweeper) Run(ctx context.Context) error {
	interval := s.Interval
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	log := s.Log
	if log == nil {
		log = zap.NewNop()
	}

	for {
		n, err := s.SweepOnce(ctx)
		switch {
		case err != nil && ctx.Err() == nil:
			log.Warn("cart sweep failed", zap.Error(err))
		case n > 0:
			log.Info("abandoned stale carts", zap.Int("count", n))
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(interval):
		}
	}
}

// SweepOnce abandons every cart that went stale before now minus TTL.
func (s *CartSweeper) SweepOnce(ctx context.Context) (int, error) {
	ttl := s.TTL
	if ttl <= 0 {
		ttl = DefaultCartTTL
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	cutoff := now().Add(-ttl)
	return uow.Do(ctx, s.Factory, func(ctx context.Context, h uow.Handle) (int, error) {
		return service.AbandonStaleCarts(ctx, h, cutoff)
	})
}
