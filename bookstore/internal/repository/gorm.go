package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"

	"bookstore-admin/bookstore/internal/uow"
)

// gormRepository is the shared CRUD implementation. first is the one read
// path for single rows; every aggregate-specific lookup goes through it.
type gormRepository[T any] struct {
	db    *gorm.DB
	order string
}

func newGormRepository[T any](h uow.Handle, order string) gormRepository[T] {
	return gormRepository[T]{db: h.DB(), order: order}
}

func (r gormRepository[T]) Create(ctx context.Context, v *T) error {
	return mapErr(r.db.WithContext(ctx).Create(v).Error)
}

func (r gormRepository[T]) FindOne(ctx context.Context, id string) (T, error) {
	return r.first(ctx, nil, "id = ?", id)
}

func (r gormRepository[T]) FindMany(ctx context.Context, opts ListOptions) ([]T, error) {
	return r.find(ctx, opts, nil)
}

func (r gormRepository[T]) Update(ctx context.Context, id string, changes Changes) (T, error) {
	cols := changes.Columns()
	if len(cols) > 0 {
		res := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(cols)
		if res.Error != nil {
			var zero T
			return zero, mapErr(res.Error)
		}
		if res.RowsAffected == 0 {
			var zero T
			return zero, ErrNotFound
		}
	}
	return r.FindOne(ctx, id)
}

func (r gormRepository[T]) Delete(ctx context.Context, id string) error {
	res := r.db.WithContext(ctx).Delete(new(T), "id = ?", id)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r gormRepository[T]) first(ctx context.Context, scope func(*gorm.DB) *gorm.DB, query any, args ...any) (T, error) {
	q := r.db.WithContext(ctx)
	if scope != nil {
		q = scope(q)
	}
	var out T
	if err := q.Where(query, args...).First(&out).Error; err != nil {
		var zero T
		return zero, mapErr(err)
	}
	return out, nil
}

func (r gormRepository[T]) find(ctx context.Context, opts ListOptions, scope func(*gorm.DB) *gorm.DB) ([]T, error) {
	q := r.db.WithContext(ctx)
	if scope != nil {
		q = scope(q)
	}
	if r.order != "" {
		q = q.Order(r.order)
	}
	if opts.Limit > 0 {
		q = q.Limit(opts.Limit)
	}
	if opts.Offset > 0 {
		q = q.Offset(opts.Offset)
	}
	out := []T{}
	if err := q.Find(&out).Error; err != nil {
		return nil, mapErr(err)
	}
	return out, nil
}

func where(query any, args ...any) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(query, args...)
	}
}

func mapErr(err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrAlreadyExists
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrReferenceViolated
	case errors.Is(err, uow.ErrStorageUnavailable):
		return err
	}
	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) && (sqliteErr.Code == sqlite3.ErrBusy || sqliteErr.Code == sqlite3.ErrLocked) {
		return fmt.Errorf("%w: %w", uow.ErrStorageUnavailable, err)
	}
	// untranslated driver errors
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return ErrAlreadyExists
	case strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return ErrReferenceViolated
	case strings.Contains(msg, "database is locked"), strings.Contains(msg, "database table is locked"):
		return fmt.Errorf("%w: %w", uow.ErrStorageUnavailable, err)
	}
	return err
}

func set[V any](cols map[string]any, column string, v *V) {
	if v != nil {
		cols[column] = *v
	}
}
