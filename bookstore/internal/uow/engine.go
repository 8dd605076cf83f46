package uow

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Handle is the transaction-bound storage context handed to repositories.
type Handle interface {
	DB() *gorm.DB
}

// Tx is one open storage transaction.
type Tx interface {
	Handle
	Commit() error
	Rollback() error
}

// Engine opens transactions against the storage engine.
type Engine interface {
	Begin(ctx context.Context) (Tx, error)
}

type GormEngine struct {
	db *gorm.DB
}

func NewGormEngine(db *gorm.DB) *GormEngine {
	return &GormEngine{db: db}
}

func (e *GormEngine) Begin(ctx context.Context) (Tx, error) {
	tx := e.db.WithContext(ctx).Begin()
	if tx.Error != nil {
		return nil, fmt.Errorf("%w: begin transaction: %w", ErrStorageUnavailable, tx.Error)
	}
	return &gormTx{db: tx}, nil
}

type gormTx struct {
	db *gorm.DB
}

func (t *gormTx) DB() *gorm.DB {
	return t.db
}

func (t *gormTx) Commit() error {
	return t.db.Commit().Error
}

func (t *gormTx) Rollback() error {
	return t.db.Rollback().Error
}
