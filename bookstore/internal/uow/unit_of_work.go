// Package uow scopes every inbound operation to exactly one storage
// transaction. A UnitOfWork owns the transaction; repositories are built
// from its Handle and must not outlive it.
package uow

import (
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type State int

const (
	StateOpen State = iota
	StateCommitted
	StateRolledBack
)

func (s State) String() string {
	switch s {
	case StateOpen:
		return "open"
	case StateCommitted:
		return "committed"
	case StateRolledBack:
		return "rolled-back"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}

// UnitOfWork wraps one open transaction. It is single-use: the first
// RunInTransaction call claims it and ends it with exactly one commit or
// rollback. It is not safe to share a UnitOfWork between goroutines.
type UnitOfWork struct {
	id           string
	tx           Tx
	rollbackOnly bool
	log          *zap.Logger

	mu      sync.Mutex
	state   State
	claimed bool
}

func (u *UnitOfWork) ID() string {
	return u.id
}

func (u *UnitOfWork) State() State {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// Handle returns the storage handle bound to this unit of work's
// transaction. It fails with ErrClosed once the unit of work is terminal.
func (u *UnitOfWork) Handle() (Handle, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state != StateOpen {
		return nil, ErrClosed
	}
	return boundHandle{db: u.tx.DB()}, nil
}

// boundHandle exposes the transaction to repositories without its Commit and
// Rollback.
type boundHandle struct {
	db *gorm.DB
}

func (h boundHandle) DB() *gorm.DB {
	return h.db
}

// RunInTransaction runs work and commits when it returns nil. Any error from
// work rolls the transaction back and is returned as is.
func (u *UnitOfWork) RunInTransaction(ctx context.Context, work func(ctx context.Context) error) error {
	_, err := Run(ctx, u, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, work(ctx)
	})
	return err
}

// Run is RunInTransaction for work that produces a result.
func Run[R any](ctx context.Context, u *UnitOfWork, work func(ctx context.Context) (R, error)) (R, error) {
	var zero R
	if err := u.claim(); err != nil {
		return zero, err
	}

	finished := false
	defer func() {
		if !finished {
			// work panicked; the panic keeps unwinding after the rollback
			_ = u.rollback("panic")
		}
	}()

	result, err := work(ctx)
	finished = true
	if err != nil {
		_ = u.rollback("work failed")
		return zero, err
	}

	if u.rollbackOnly {
		if err := u.rollback("rollback-only"); err != nil {
			return zero, err
		}
		return result, nil
	}

	if err := u.commit(); err != nil {
		return zero, err
	}
	return result, nil
}

// Close rolls back a unit of work that was created but never run. It is a
// no-op once RunInTransaction has claimed the unit of work.
func (u *UnitOfWork) Close() error {
	u.mu.Lock()
	if u.state != StateOpen || u.claimed {
		u.mu.Unlock()
		return nil
	}
	u.claimed = true
	u.mu.Unlock()
	return u.rollback("closed without running")
}

func (u *UnitOfWork) claim() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state != StateOpen || u.claimed {
		return ErrClosed
	}
	u.claimed = true
	return nil
}

func (u *UnitOfWork) commit() error {
	err := u.tx.Commit()

	u.mu.Lock()
	if err != nil {
		u.state = StateRolledBack
	} else {
		u.state = StateCommitted
	}
	u.mu.Unlock()

	if err != nil {
		u.log.Warn("commit failed", zap.String("uow", u.id), zap.Error(err))
		return fmt.Errorf("%w: commit: %w", ErrStorageUnavailable, err)
	}
	u.log.Debug("unit of work committed", zap.String("uow", u.id))
	return nil
}

func (u *UnitOfWork) rollback(reason string) error {
	err := u.tx.Rollback()

	u.mu.Lock()
	u.state = StateRolledBack
	u.mu.Unlock()

	if err != nil {
		u.log.Warn("rollback failed",
			zap.String("uow", u.id),
			zap.String("reason", reason),
			zap.Error(err),
		)
		return fmt.Errorf("%w: rollback: %w", ErrStorageUnavailable, err)
	}
	u.log.Debug("unit of work rolled back", zap.String("uow", u.id), zap.String("reason", reason))
	return nil
}
