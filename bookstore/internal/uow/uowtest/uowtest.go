// Package uowtest runs test code inside transactions that are always rolled
// back, so tests share one database without cleaning up after themselves.
package uowtest

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"bookstore-admin/bookstore/internal/infra"
	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/uow"
)

// Runner hands out rollback-only units of work.
type Runner struct {
	factory *uow.Factory
}

// NewRunner wraps f so that no unit of work created through the runner
// ever commits. f itself is left untouched.
func NewRunner(f *uow.Factory) *Runner {
	return &Runner{factory: f.RollbackOnly()}
}

// Run opens a unit of work, runs work inside it and discards every write
// whether work fails or not. The error from work is returned unchanged.
func (r *Runner) Run(ctx context.Context, work func(ctx context.Context, u *uow.UnitOfWork) error) error {
	u, err := r.factory.Create(ctx)
	if err != nil {
		return err
	}
	return u.RunInTransaction(ctx, func(ctx context.Context) error {
		return work(ctx, u)
	})
}

// MustRun is Run for tests that expect work to succeed.
func (r *Runner) MustRun(t testing.TB, work func(ctx context.Context, h uow.Handle)) {
	t.Helper()
	err := r.Run(context.Background(), func(ctx context.Context, u *uow.UnitOfWork) error {
		h, err := u.Handle()
		if err != nil {
			return err
		}
		work(ctx, h)
		return nil
	})
	require.NoError(t, err)
}

// OpenDB opens a migrated sqlite database in a per-test temp dir.
func OpenDB(t testing.TB) *gorm.DB {
	t.Helper()
	db, err := infra.OpenDB(filepath.Join(t.TempDir(), "bookstore.db"), infra.DBOptions{})
	require.NoError(t, err)
	require.NoError(t, model.AutoMigrate(db))
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

// NewFactory returns a committing factory over a fresh test database.
func NewFactory(t testing.TB, opts ...uow.Option) *uow.Factory {
	t.Helper()
	return uow.NewFactory(uow.NewGormEngine(OpenDB(t)), opts...)
}
