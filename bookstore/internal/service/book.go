package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/repository"
	"bookstore-admin/bookstore/internal/uow"
)

type BookInput struct {
	Title        string   `json:"title" validate:"required,max=300"`
	ISBN         string   `json:"isbn" validate:"required,min=10,max=17"`
	Description  string   `json:"description,omitempty" validate:"max=4000"`
	PriceCents   int64    `json:"price_cents" validate:"gte=0"`
	CategoryID   *string  `json:"category_id,omitempty" validate:"omitempty,min=1"`
	AuthorIDs    []string `json:"author_ids" validate:"required,min=1,dive,required"`
	InitialStock int      `json:"initial_stock,omitempty" validate:"gte=0"`
}

type BookPatch struct {
	Title       *string `json:"title,omitempty" validate:"omitempty,min=1,max=300"`
	Description *string `json:"description,omitempty" validate:"omitempty,max=4000"`
	PriceCents  *int64  `json:"price_cents,omitempty" validate:"omitempty,gte=0"`
	CategoryID  *string `json:"category_id,omitempty" validate:"omitempty,min=1"`
}

type BookFilter struct {
	CategoryID string
	AuthorID   string
	repository.ListOptions
}

// BookDetail is a book with everything an admin sees on its page.
type BookDetail struct {
	model.Book
	Authors []model.Author           `json:"authors"`
	Stock   int                      `json:"stock"`
	Rating  repository.RatingSummary `json:"rating"`
}

// CreateBook stores the book, links it to its authors and opens an
// inventory row for it. Either all of it is written or none of it.
func CreateBook(ctx context.Context, h uow.Handle, in BookInput) (BookDetail, error) {
	if err := Validate(in); err != nil {
		return BookDetail{}, err
	}
	if in.CategoryID != nil {
		if err := mustExist(ctx, repository.NewCategoryRepository(h).FindOne, *in.CategoryID, "category"); err != nil {
			return BookDetail{}, err
		}
	}
	authors := repository.NewAuthorRepository(h)
	for _, id := range in.AuthorIDs {
		if err := mustExist(ctx, authors.FindOne, id, "author"); err != nil {
			return BookDetail{}, err
		}
	}

	b := model.NewBook(strings.TrimSpace(in.Title), strings.TrimSpace(in.ISBN), in.Description, in.PriceCents, in.CategoryID)
	if err := repository.NewBookRepository(h).Create(ctx, &b); err != nil {
		return BookDetail{}, err
	}

	links := repository.NewAuthorBookRepository(h)
	for _, id := range in.AuthorIDs {
		link := model.NewAuthorBook(id, b.ID)
		if err := links.Create(ctx, &link); err != nil {
			return BookDetail{}, fmt.Errorf("link author %s: %w", id, err)
		}
	}

	inv := model.NewInventory(b.ID, in.InitialStock)
	if err := repository.NewInventoryRepository(h).Create(ctx, &inv); err != nil {
		return BookDetail{}, err
	}
	return GetBook(ctx, h, b.ID)
}

func GetBook(ctx context.Context, h uow.Handle, id string) (BookDetail, error) {
	b, err := repository.NewBookRepository(h).FindOne(ctx, id)
	if err != nil {
		return BookDetail{}, err
	}

	links, err := repository.NewAuthorBookRepository(h).ListByBook(ctx, id)
	if err != nil {
		return BookDetail{}, err
	}
	detail := BookDetail{Book: b, Authors: make([]model.Author, 0, len(links))}
	for _, l := range links {
		if l.Author != nil {
			detail.Authors = append(detail.Authors, *l.Author)
		}
	}

	inv, err := repository.NewInventoryRepository(h).FindByBook(ctx, id)
	switch {
	case err == nil:
		detail.Stock = inv.Quantity
	case !errors.Is(err, repository.ErrNotFound):
		return BookDetail{}, err
	}

	if detail.Rating, err = repository.NewReviewRepository(h).AverageRating(ctx, id); err != nil {
		return BookDetail{}, err
	}
	return detail, nil
}

func ListBooks(ctx context.Context, h uow.Handle, f BookFilter) ([]model.Book, error) {
	books := repository.NewBookRepository(h)
	switch {
	case f.CategoryID != "" && f.AuthorID != "":
		return nil, ValidationError{Msg: "filter by category or by author, not both"}
	case f.CategoryID != "":
		return books.ListByCategory(ctx, f.CategoryID, f.ListOptions)
	case f.AuthorID != "":
		return books.ListByAuthor(ctx, f.AuthorID, f.ListOptions)
	default:
		return books.FindMany(ctx, f.ListOptions)
	}
}

func UpdateBook(ctx context.Context, h uow.Handle, id string, in BookPatch) (model.Book, error) {
	if err := Validate(in); err != nil {
		return model.Book{}, err
	}
	if in.CategoryID != nil {
		if err := mustExist(ctx, repository.NewCategoryRepository(h).FindOne, *in.CategoryID, "category"); err != nil {
			return model.Book{}, err
		}
	}
	return repository.NewBookRepository(h).Update(ctx, id, repository.BookUpdate{
		Title:       in.Title,
		Description: in.Description,
		PriceCents:  in.PriceCents,
		CategoryID:  in.CategoryID,
	})
}

func DeleteBook(ctx context.Context, h uow.Handle, id string) error {
	return repository.NewBookRepository(h).Delete(ctx, id)
}

func LinkAuthor(ctx context.Context, h uow.Handle, bookID, authorID string) (BookDetail, error) {
	if _, err := repository.NewBookRepository(h).FindOne(ctx, bookID); err != nil {
		return BookDetail{}, err
	}
	if _, err := repository.NewAuthorRepository(h).FindOne(ctx, authorID); err != nil {
		return BookDetail{}, err
	}
	link := model.NewAuthorBook(authorID, bookID)
	if err := repository.NewAuthorBookRepository(h).Create(ctx, &link); err != nil {
		return BookDetail{}, err
	}
	return GetBook(ctx, h, bookID)
}

// UnlinkAuthor removes one author from a book. A book keeps at least one
// author.
func UnlinkAuthor(ctx context.Context, h uow.Handle, bookID, authorID string) (BookDetail, error) {
	links := repository.NewAuthorBookRepository(h)
	current, err := links.ListByBook(ctx, bookID)
	if err != nil {
		return BookDetail{}, err
	}
	if len(current) == 1 && current[0].AuthorID == authorID {
		return BookDetail{}, ConflictError{Msg: "cannot remove the last author of a book"}
	}
	if err := links.DeleteLink(ctx, authorID, bookID); err != nil {
		return BookDetail{}, err
	}
	return GetBook(ctx, h, bookID)
}

func mustExist[T any](ctx context.Context, find func(context.Context, string) (T, error), id, kind string) error {
	if _, err := find(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ValidationError{Msg: fmt.Sprintf("%s %s does not exist", kind, id)}
		}
		return err
	}
	return nil
}
