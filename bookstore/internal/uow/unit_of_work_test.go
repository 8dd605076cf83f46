package uow

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type mockTx struct {
	mock.Mock
	db *gorm.DB
}

func (m *mockTx) DB() *gorm.DB { return m.db }

func (m *mockTx) Commit() error { return m.Called().Error(0) }

func (m *mockTx) Rollback() error { return m.Called().Error(0) }

type mockEngine struct {
	mock.Mock
}

func (m *mockEngine) Begin(ctx context.Context) (Tx, error) {
	args := m.Called(ctx)
	tx, _ := args.Get(0).(Tx)
	return tx, args.Error(1)
}

type outOfStockError struct {
	BookID string
}

func (e *outOfStockError) Error() string {
	return fmt.Sprintf("book %s is out of stock", e.BookID)
}

func newTestUnit(t *testing.T, opts ...Option) (*UnitOfWork, *mockTx) {
	t.Helper()
	tx := &mockTx{db: &gorm.DB{}}
	engine := new(mockEngine)
	engine.On("Begin", mock.Anything).Return(tx, nil).Once()

	u, err := NewFactory(engine, opts...).Create(context.Background())
	require.NoError(t, err)
	require.Equal(t, StateOpen, u.State())
	engine.AssertExpectations(t)
	return u, tx
}

func TestRunCommitsOnSuccess(t *testing.T) {
	u, tx := newTestUnit(t)
	tx.On("Commit").Return(nil).Once()

	got, err := Run(context.Background(), u, func(ctx context.Context) (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, StateCommitted, u.State())
	tx.AssertExpectations(t)
	tx.AssertNotCalled(t, "Rollback")
}

func TestRunRollsBackAndReturnsWorkErrorUnchanged(t *testing.T) {
	u, tx := newTestUnit(t)
	tx.On("Rollback").Return(nil).Once()

	workErr := &outOfStockError{BookID: "b-1"}
	got, err := Run(context.Background(), u, func(ctx context.Context) (string, error) {
		return "partial", workErr
	})

	require.Error(t, err)
	assert.Same(t, workErr, err)
	assert.Equal(t, "book b-1 is out of stock", err.Error())
	assert.Empty(t, got)
	assert.Equal(t, StateRolledBack, u.State())
	tx.AssertExpectations(t)
	tx.AssertNotCalled(t, "Commit")
}

func TestRunKeepsSentinelIdentity(t *testing.T) {
	u, tx := newTestUnit(t)
	tx.On("Rollback").Return(nil).Once()

	sentinel := errors.New("author already exists")
	err := u.RunInTransaction(context.Background(), func(ctx context.Context) error {
		return sentinel
	})
	assert.True(t, err == sentinel)
}

func TestRunOnTerminalUnitFailsClosed(t *testing.T) {
	t.Run("after commit", func(t *testing.T) {
		u, tx := newTestUnit(t)
		tx.On("Commit").Return(nil).Once()
		require.NoError(t, u.RunInTransaction(context.Background(), func(ctx context.Context) error { return nil }))

		called := false
		err := u.RunInTransaction(context.Background(), func(ctx context.Context) error {
			called = true
			return nil
		})
		require.ErrorIs(t, err, ErrClosed)
		assert.False(t, called)
		tx.AssertNumberOfCalls(t, "Commit", 1)
	})

	t.Run("after rollback", func(t *testing.T) {
		u, tx := newTestUnit(t)
		tx.On("Rollback").Return(nil).Once()
		require.Error(t, u.RunInTransaction(context.Background(), func(ctx context.Context) error {
			return errors.New("boom")
		}))

		err := u.RunInTransaction(context.Background(), func(ctx context.Context) error { return nil })
		require.ErrorIs(t, err, ErrClosed)
		assert.True(t, IsClosed(err))
		tx.AssertNumberOfCalls(t, "Rollback", 1)
	})
}

func TestNestedRunIsRejected(t *testing.T) {
	u, tx := newTestUnit(t)
	tx.On("Commit").Return(nil).Once()

	var nestedErr error
	err := u.RunInTransaction(context.Background(), func(ctx context.Context) error {
		nestedErr = u.RunInTransaction(ctx, func(ctx context.Context) error { return nil })
		return nil
	})
	require.NoError(t, err)
	require.ErrorIs(t, nestedErr, ErrClosed)
	tx.AssertNumberOfCalls(t, "Commit", 1)
}

func TestHandle(t *testing.T) {
	u, tx := newTestUnit(t)
	tx.On("Commit").Return(nil).Once()

	err := u.RunInTransaction(context.Background(), func(ctx context.Context) error {
		h, err := u.Handle()
		require.NoError(t, err)
		assert.Same(t, tx.db, h.DB())
		_, isTx := h.(Tx)
		assert.False(t, isTx, "handle must not expose Commit and Rollback")
		return nil
	})
	require.NoError(t, err)

	h, err := u.Handle()
	require.ErrorIs(t, err, ErrClosed)
	assert.Nil(t, h)
}

func TestCommitFailureIsStorageUnavailableAndTerminal(t *testing.T) {
	u, tx := newTestUnit(t)
	commitErr := errors.New("UNIQUE constraint failed at commit")
	tx.On("Commit").Return(commitErr).Once()

	err := u.RunInTransaction(context.Background(), func(ctx context.Context) error { return nil })
	require.ErrorIs(t, err, ErrStorageUnavailable)
	require.ErrorIs(t, err, commitErr)
	assert.True(t, IsStorageUnavailable(err))
	assert.Equal(t, StateRolledBack, u.State())
	tx.AssertNotCalled(t, "Rollback")

	require.ErrorIs(t, u.RunInTransaction(context.Background(), func(ctx context.Context) error { return nil }), ErrClosed)
}

func TestRollbackFailureDoesNotMaskWorkError(t *testing.T) {
	u, tx := newTestUnit(t)
	tx.On("Rollback").Return(errors.New("connection reset")).Once()

	workErr := errors.New("cart is not open")
	err := u.RunInTransaction(context.Background(), func(ctx context.Context) error { return workErr })
	assert.Same(t, workErr, err)
	assert.Equal(t, StateRolledBack, u.State())
}

func TestRollbackOnlyDiscardsSuccessfulWork(t *testing.T) {
	u, tx := newTestUnit(t, WithRollbackOnly())
	tx.On("Rollback").Return(nil).Once()

	got, err := Run(context.Background(), u, func(ctx context.Context) (string, error) {
		return "created", nil
	})
	require.NoError(t, err)
	assert.Equal(t, "created", got)
	assert.Equal(t, StateRolledBack, u.State())
	tx.AssertExpectations(t)
	tx.AssertNotCalled(t, "Commit")
}

func TestRollbackOnlyReportsRollbackFailure(t *testing.T) {
	u, tx := newTestUnit(t, WithRollbackOnly())
	tx.On("Rollback").Return(errors.New("disk I/O error")).Once()

	err := u.RunInTransaction(context.Background(), func(ctx context.Context) error { return nil })
	require.ErrorIs(t, err, ErrStorageUnavailable)
}

func TestPanicInWorkRollsBack(t *testing.T) {
	u, tx := newTestUnit(t)
	tx.On("Rollback").Return(nil).Once()

	require.PanicsWithValue(t, "boom", func() {
		_ = u.RunInTransaction(context.Background(), func(ctx context.Context) error {
			panic("boom")
		})
	})
	assert.Equal(t, StateRolledBack, u.State())
	tx.AssertExpectations(t)
	tx.AssertNotCalled(t, "Commit")
}

func TestClose(t *testing.T) {
	t.Run("rolls back an unused unit", func(t *testing.T) {
		u, tx := newTestUnit(t)
		tx.On("Rollback").Return(nil).Once()

		require.NoError(t, u.Close())
		assert.Equal(t, StateRolledBack, u.State())
		require.NoError(t, u.Close())
		require.ErrorIs(t, u.RunInTransaction(context.Background(), func(ctx context.Context) error { return nil }), ErrClosed)
		tx.AssertNumberOfCalls(t, "Rollback", 1)
	})

	t.Run("no-op after run", func(t *testing.T) {
		u, tx := newTestUnit(t)
		tx.On("Commit").Return(nil).Once()

		require.NoError(t, u.RunInTransaction(context.Background(), func(ctx context.Context) error { return nil }))
		require.NoError(t, u.Close())
		assert.Equal(t, StateCommitted, u.State())
		tx.AssertNotCalled(t, "Rollback")
	})
}

func TestCreateWrapsBeginFailure(t *testing.T) {
	engine := new(mockEngine)
	dialErr := errors.New("dial tcp 127.0.0.1:5432: connect: connection refused")
	engine.On("Begin", mock.Anything).Return(nil, dialErr).Once()

	u, err := NewFactory(engine).Create(context.Background())
	require.ErrorIs(t, err, ErrStorageUnavailable)
	require.ErrorIs(t, err, dialErr)
	assert.Nil(t, u)
}

func TestCreateYieldsIndependentUnitsConcurrently(t *testing.T) {
	const n = 16
	engine := new(mockEngine)
	txs := make([]*mockTx, n)
	for i := range txs {
		txs[i] = new(mockTx)
		txs[i].On("Commit").Return(nil).Maybe()
		txs[i].On("Rollback").Return(nil).Maybe()
		engine.On("Begin", mock.Anything).Return(txs[i], nil).Once()
	}
	f := NewFactory(engine)

	units := make([]*UnitOfWork, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			u, err := f.Create(context.Background())
			if !assert.NoError(t, err) {
				return
			}
			units[i] = u
			_ = u.RunInTransaction(context.Background(), func(ctx context.Context) error {
				if i%2 == 0 {
					return errors.New("discard")
				}
				return nil
			})
		}(i)
	}
	wg.Wait()

	seenIDs := map[string]bool{}
	seenTx := map[Handle]bool{}
	committed, rolledBack := 0, 0
	for _, u := range units {
		require.NotNil(t, u)
		require.False(t, seenIDs[u.ID()])
		seenIDs[u.ID()] = true
		require.False(t, seenTx[u.tx])
		seenTx[u.tx] = true
		switch u.State() {
		case StateCommitted:
			committed++
		case StateRolledBack:
			rolledBack++
		}
	}
	assert.Equal(t, n/2, committed)
	assert.Equal(t, n/2, rolledBack)
	for _, tx := range txs {
		assert.Equal(t, 1, len(tx.Calls))
	}
}

func TestDoPassesBoundHandle(t *testing.T) {
	tx := &mockTx{db: &gorm.DB{}}
	tx.On("Commit").Return(nil).Once()
	engine := new(mockEngine)
	engine.On("Begin", mock.Anything).Return(tx, nil).Once()

	got, err := Do(context.Background(), NewFactory(engine), func(ctx context.Context, h Handle) (Handle, error) {
		return h, nil
	})
	require.NoError(t, err)
	assert.Same(t, tx.db, got.DB())
	tx.AssertExpectations(t)
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "open", StateOpen.String())
	assert.Equal(t, "committed", StateCommitted.String())
	assert.Equal(t, "rolled-back", StateRolledBack.String())
}
