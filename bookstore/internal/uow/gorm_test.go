package uow_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/repository"
	"bookstore-admin/bookstore/internal/uow"
	"bookstore-admin/bookstore/internal/uow/uowtest"
)

func countAuthors(t *testing.T, f *uow.Factory) int {
	t.Helper()
	authors, err := uow.Do(context.Background(), f, func(ctx context.Context, h uow.Handle) ([]model.Author, error) {
		return repository.NewAuthorRepository(h).FindMany(ctx, repository.ListOptions{})
	})
	require.NoError(t, err)
	return len(authors)
}

func TestFailedWorkLeavesNoAuthor(t *testing.T) {
	t.Parallel()
	f := uowtest.NewFactory(t)
	ctx := context.Background()

	u, err := f.Create(ctx)
	require.NoError(t, err)

	errInvalid := errors.New("invalid author")
	err = u.RunInTransaction(ctx, func(ctx context.Context) error {
		h, err := u.Handle()
		if err != nil {
			return err
		}
		a := model.NewAuthor("Ursula", "Le Guin")
		if err := repository.NewAuthorRepository(h).Create(ctx, &a); err != nil {
			return err
		}
		return errInvalid
	})
	require.ErrorIs(t, err, errInvalid)
	require.Equal(t, uow.StateRolledBack, u.State())
	require.Equal(t, 0, countAuthors(t, f))
}

func TestBookAndAuthorLinkCommitTogether(t *testing.T) {
	t.Parallel()
	f := uowtest.NewFactory(t)
	ctx := context.Background()

	author, err := uow.Do(ctx, f, func(ctx context.Context, h uow.Handle) (model.Author, error) {
		a := model.NewAuthor("Octavia", "Butler")
		return a, repository.NewAuthorRepository(h).Create(ctx, &a)
	})
	require.NoError(t, err)

	book, err := uow.Do(ctx, f, func(ctx context.Context, h uow.Handle) (model.Book, error) {
		b := model.NewBook("Kindred", "978-0807083697", "", 1599, nil)
		if err := repository.NewBookRepository(h).Create(ctx, &b); err != nil {
			return model.Book{}, err
		}
		link := model.NewAuthorBook(author.ID, b.ID)
		return b, repository.NewAuthorBookRepository(h).Create(ctx, &link)
	})
	require.NoError(t, err)

	links, err := uow.Do(ctx, f, func(ctx context.Context, h uow.Handle) ([]model.AuthorBook, error) {
		return repository.NewAuthorBookRepository(h).ListByBook(ctx, book.ID)
	})
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.Equal(t, author.ID, links[0].AuthorID)
	require.NotNil(t, links[0].Author)
	require.Equal(t, "Octavia Butler", links[0].Author.FullName())
}

func TestFailingLastWriteDiscardsEarlierWrites(t *testing.T) {
	t.Parallel()
	f := uowtest.NewFactory(t)
	ctx := context.Background()

	names := []string{"Fiction", "Poetry", "History", "Science", "Fiction"}
	_, err := uow.Do(ctx, f, func(ctx context.Context, h uow.Handle) (struct{}, error) {
		repo := repository.NewCategoryRepository(h)
		for _, name := range names {
			c := model.NewCategory(name)
			if err := repo.Create(ctx, &c); err != nil {
				return struct{}{}, fmt.Errorf("create category %q: %w", name, err)
			}
		}
		return struct{}{}, nil
	})
	require.ErrorIs(t, err, repository.ErrAlreadyExists)

	categories, err := uow.Do(ctx, f, func(ctx context.Context, h uow.Handle) ([]model.Category, error) {
		return repository.NewCategoryRepository(h).FindMany(ctx, repository.ListOptions{})
	})
	require.NoError(t, err)
	require.Empty(t, categories)
}

func TestUncommittedWritesAreInvisibleOutsideTheUnit(t *testing.T) {
	t.Parallel()
	db := uowtest.OpenDB(t)
	f := uow.NewFactory(uow.NewGormEngine(db))
	ctx := context.Background()

	writer, err := f.Create(ctx)
	require.NoError(t, err)

	err = writer.RunInTransaction(ctx, func(ctx context.Context) error {
		h, err := writer.Handle()
		if err != nil {
			return err
		}
		a := model.NewAuthor("Italo", "Calvino")
		if err := repository.NewAuthorRepository(h).Create(ctx, &a); err != nil {
			return err
		}

		var seen int64
		if err := db.WithContext(ctx).Model(&model.Author{}).Count(&seen).Error; err != nil {
			return err
		}
		require.Zero(t, seen)
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, 1, countAuthors(t, f))
}

func TestConcurrentReadThenWriteUnitsAllCommit(t *testing.T) {
	t.Parallel()
	const workers = 40
	f := uowtest.NewFactory(t)
	ctx := context.Background()

	book, err := uow.Do(ctx, f, func(ctx context.Context, h uow.Handle) (model.Book, error) {
		b := model.NewBook("Invisible Cities", "978-0156453806", "", 1400, nil)
		if err := repository.NewBookRepository(h).Create(ctx, &b); err != nil {
			return model.Book{}, err
		}
		inv := model.NewInventory(b.ID, workers)
		return b, repository.NewInventoryRepository(h).Create(ctx, &inv)
	})
	require.NoError(t, err)

	errs := make(chan error, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uow.Do(ctx, f, func(ctx context.Context, h uow.Handle) (model.Inventory, error) {
				if _, err := repository.NewBookRepository(h).FindOne(ctx, book.ID); err != nil {
					return model.Inventory{}, err
				}
				time.Sleep(5 * time.Millisecond)
				return repository.NewInventoryRepository(h).Adjust(ctx, book.ID, -1)
			})
			errs <- err
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		require.NoError(t, err)
	}

	inv, err := uow.Do(ctx, f, func(ctx context.Context, h uow.Handle) (model.Inventory, error) {
		return repository.NewInventoryRepository(h).FindByBook(ctx, book.ID)
	})
	require.NoError(t, err)
	require.Zero(t, inv.Quantity)
}

func TestRepositoryIsUnusableAfterCommit(t *testing.T) {
	t.Parallel()
	f := uowtest.NewFactory(t)
	ctx := context.Background()

	u, err := f.Create(ctx)
	require.NoError(t, err)

	var repo repository.AuthorRepository
	require.NoError(t, u.RunInTransaction(ctx, func(ctx context.Context) error {
		h, err := u.Handle()
		if err != nil {
			return err
		}
		repo = repository.NewAuthorRepository(h)
		return nil
	}))

	_, err = u.Handle()
	require.ErrorIs(t, err, uow.ErrClosed)

	a := model.NewAuthor("Stanislaw", "Lem")
	require.Error(t, repo.Create(ctx, &a))
	require.Equal(t, 0, countAuthors(t, f))
}

func TestCreateFailsWhenStorageIsClosed(t *testing.T) {
	t.Parallel()
	db := uowtest.OpenDB(t)
	f := uow.NewFactory(uow.NewGormEngine(db))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Close())

	u, err := f.Create(context.Background())
	require.ErrorIs(t, err, uow.ErrStorageUnavailable)
	require.True(t, uow.IsStorageUnavailable(err))
	require.Nil(t, u)
}
