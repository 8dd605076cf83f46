package uow

import "errors"

var (
	// ErrStorageUnavailable marks failures to open or commit a transaction.
	// It is fatal for the operation and never retried here.
	ErrStorageUnavailable = errors.New("storage unavailable")

	// ErrClosed is returned when a unit of work is used after it committed,
	// rolled back, or was already claimed by a RunInTransaction call.
	ErrClosed = errors.New("unit of work already closed")
)

func IsStorageUnavailable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable)
}

func IsClosed(err error) bool {
	return errors.Is(err, ErrClosed)
}
