package infra

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	defaultMaxOpenConns = 4
	defaultBusyTimeout  = 5 * time.Second
)

type DBOptions struct {
	MaxOpenConns int
	Debug        bool
	// BusyTimeout bounds how long a transaction waits for the write lock.
	BusyTimeout time.Duration
}

// OpenDB opens the sqlite database at path. Foreign keys, the busy timeout
// and the transaction lock mode are set through the DSN so every pooled
// connection gets them. Transactions begin IMMEDIATE: a unit of work takes
// the write lock when it starts and waits for it up to the busy timeout,
// instead of failing on its first write after a read.
func OpenDB(path string, opts DBOptions) (*gorm.DB, error) {
	busy := opts.BusyTimeout
	if busy <= 0 {
		busy = defaultBusyTimeout
	}
	q := url.Values{}
	q.Set("_foreign_keys", "1")
	q.Set("_busy_timeout", strconv.FormatInt(busy.Milliseconds(), 10))
	q.Set("_journal_mode", "WAL")
	q.Set("_txlock", "immediate")
	dsn := fmt.Sprintf("file:%s?%s", path, q.Encode())

	mode := logger.Silent
	if opts.Debug {
		mode = logger.Info
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(mode),
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	maxOpen := opts.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = defaultMaxOpenConns
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	return db, nil
}
