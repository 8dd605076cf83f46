package repository

import (
	"context"

	"gorm.io/gorm"

	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/uow"
)

type AuthorUpdate struct {
	FirstName *string
	LastName  *string
}

func (u AuthorUpdate) Columns() map[string]any {
	cols := map[string]any{}
	set(cols, "first_name", u.FirstName)
	set(cols, "last_name", u.LastName)
	return cols
}

type gormAuthorRepository struct {
	gormRepository[model.Author]
}

func NewAuthorRepository(h uow.Handle) AuthorRepository {
	return &gormAuthorRepository{newGormRepository[model.Author](h, "last_name, first_name")}
}

func (r *gormAuthorRepository) FindByName(ctx context.Context, firstName, lastName string) (model.Author, error) {
	return r.first(ctx, nil, "first_name = ? AND last_name = ?", firstName, lastName)
}

type gormAuthorBookRepository struct {
	gormRepository[model.AuthorBook]
}

func NewAuthorBookRepository(h uow.Handle) AuthorBookRepository {
	return &gormAuthorBookRepository{newGormRepository[model.AuthorBook](h, "id")}
}

func (r *gormAuthorBookRepository) ListByBook(ctx context.Context, bookID string) ([]model.AuthorBook, error) {
	return r.find(ctx, ListOptions{}, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Author").Where("book_id = ?", bookID)
	})
}

func (r *gormAuthorBookRepository) ListByAuthor(ctx context.Context, authorID string) ([]model.AuthorBook, error) {
	return r.find(ctx, ListOptions{}, where("author_id = ?", authorID))
}

func (r *gormAuthorBookRepository) DeleteLink(ctx context.Context, authorID, bookID string) error {
	res := r.db.WithContext(ctx).Delete(&model.AuthorBook{}, "author_id = ? AND book_id = ?", authorID, bookID)
	if res.Error != nil {
		return mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
