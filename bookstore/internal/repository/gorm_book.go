package repository

import (
	"context"

	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/uow"
)

type BookUpdate struct {
	Title       *string
	Description *string
	PriceCents  *int64
	CategoryID  *string
}

func (u BookUpdate) Columns() map[string]any {
	cols := map[string]any{}
	set(cols, "title", u.Title)
	set(cols, "description", u.Description)
	set(cols, "price_cents", u.PriceCents)
	set(cols, "category_id", u.CategoryID)
	return cols
}

type gormBookRepository struct {
	gormRepository[model.Book]
}

func NewBookRepository(h uow.Handle) BookRepository {
	return &gormBookRepository{newGormRepository[model.Book](h, "title")}
}

func (r *gormBookRepository) FindByISBN(ctx context.Context, isbn string) (model.Book, error) {
	return r.first(ctx, nil, "isbn = ?", isbn)
}

func (r *gormBookRepository) ListByCategory(ctx context.Context, categoryID string, opts ListOptions) ([]model.Book, error) {
	return r.find(ctx, opts, where("category_id = ?", categoryID))
}

func (r *gormBookRepository) ListByAuthor(ctx context.Context, authorID string, opts ListOptions) ([]model.Book, error) {
	return r.find(ctx, opts, where("id IN (SELECT book_id FROM author_books WHERE author_id = ?)", authorID))
}

type CategoryUpdate struct {
	Name *string
}

func (u CategoryUpdate) Columns() map[string]any {
	cols := map[string]any{}
	set(cols, "name", u.Name)
	return cols
}

type gormCategoryRepository struct {
	gormRepository[model.Category]
}

func NewCategoryRepository(h uow.Handle) CategoryRepository {
	return &gormCategoryRepository{newGormRepository[model.Category](h, "name")}
}

func (r *gormCategoryRepository) FindByName(ctx context.Context, name string) (model.Category, error) {
	return r.first(ctx, nil, "name = ?", name)
}
