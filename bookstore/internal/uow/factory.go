package uow

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Option func(*Factory)

func WithLogger(l *zap.Logger) Option {
	return func(f *Factory) {
		if l != nil {
			f.log = l
		}
	}
}

// WithRollbackOnly makes every unit of work roll back where it would
// otherwise commit. Only test harnesses use it.
func WithRollbackOnly() Option {
	return func(f *Factory) {
		f.rollbackOnly = true
	}
}

// Factory opens a fresh transaction per unit of work. Factories hold no
// per-transaction state and are safe for concurrent use.
type Factory struct {
	engine       Engine
	log          *zap.Logger
	rollbackOnly bool
}

func NewFactory(engine Engine, opts ...Option) *Factory {
	f := &Factory{
		engine: engine,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// RollbackOnly returns a copy of f whose units of work never commit.
func (f *Factory) RollbackOnly() *Factory {
	cp := *f
	cp.rollbackOnly = true
	return &cp
}

// Create begins a transaction and returns the unit of work owning it.
func (f *Factory) Create(ctx context.Context) (*UnitOfWork, error) {
	tx, err := f.engine.Begin(ctx)
	if err != nil {
		if !errors.Is(err, ErrStorageUnavailable) {
			err = fmt.Errorf("%w: begin transaction: %w", ErrStorageUnavailable, err)
		}
		f.log.Error("open unit of work", zap.Error(err))
		return nil, err
	}

	u := &UnitOfWork{
		id:           uuid.NewString(),
		tx:           tx,
		rollbackOnly: f.rollbackOnly,
		log:          f.log,
		state:        StateOpen,
	}
	f.log.Debug("unit of work opened", zap.String("uow", u.id), zap.Bool("rollback_only", u.rollbackOnly))
	return u, nil
}

// Do opens a unit of work, hands its storage handle to work and commits or
// rolls back depending on the returned error.
func Do[R any](ctx context.Context, f *Factory, work func(ctx context.Context, h Handle) (R, error)) (R, error) {
	u, err := f.Create(ctx)
	if err != nil {
		var zero R
		return zero, err
	}
	return Run(ctx, u, func(ctx context.Context) (R, error) {
		h, err := u.Handle()
		if err != nil {
			var zero R
			return zero, err
		}
		return work(ctx, h)
	})
}
