package repository

import (
	"context"
	"errors"
	"time"

	"bookstore-admin/bookstore/internal/model"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrAlreadyExists     = errors.New("already exists")
	ErrReferenceViolated = errors.New("reference violated")
	ErrInsufficientStock = errors.New("insufficient stock")
)

// ListOptions pages a FindMany call. Zero values mean no limit / no offset.
type ListOptions struct {
	Limit  int
	Offset int
}

// Changes is a partial update. Columns returns only the columns to set.
type Changes interface {
	Columns() map[string]any
}

// Repository is the CRUD surface every aggregate repository carries.
type Repository[T any] interface {
	Create(ctx context.Context, v *T) error
	FindOne(ctx context.Context, id string) (T, error)
	FindMany(ctx context.Context, opts ListOptions) ([]T, error)
	Update(ctx context.Context, id string, changes Changes) (T, error)
	Delete(ctx context.Context, id string) error
}

type AuthorRepository interface {
	Repository[model.Author]
	FindByName(ctx context.Context, firstName, lastName string) (model.Author, error)
}

type BookRepository interface {
	Repository[model.Book]
	FindByISBN(ctx context.Context, isbn string) (model.Book, error)
	ListByCategory(ctx context.Context, categoryID string, opts ListOptions) ([]model.Book, error)
	ListByAuthor(ctx context.Context, authorID string, opts ListOptions) ([]model.Book, error)
}

type AuthorBookRepository interface {
	Repository[model.AuthorBook]
	ListByBook(ctx context.Context, bookID string) ([]model.AuthorBook, error)
	ListByAuthor(ctx context.Context, authorID string) ([]model.AuthorBook, error)
	DeleteLink(ctx context.Context, authorID, bookID string) error
}

type CategoryRepository interface {
	Repository[model.Category]
	FindByName(ctx context.Context, name string) (model.Category, error)
}

type CustomerRepository interface {
	Repository[model.Customer]
	FindByEmail(ctx context.Context, email string) (model.Customer, error)
}

type AddressRepository interface {
	Repository[model.Address]
	ListByCustomer(ctx context.Context, customerID string) ([]model.Address, error)
}

type CartRepository interface {
	Repository[model.Cart]
	FindWithItems(ctx context.Context, id string) (model.Cart, error)
	ListStale(ctx context.Context, status string, before time.Time) ([]model.Cart, error)
}

type LineItemRepository interface {
	Repository[model.LineItem]
	ListByCart(ctx context.Context, cartID string) ([]model.LineItem, error)
	FindInCart(ctx context.Context, cartID, bookID string) (model.LineItem, error)
}

type OrderRepository interface {
	Repository[model.Order]
	FindWithItems(ctx context.Context, id string) (model.Order, error)
	FindByCart(ctx context.Context, cartID string) (model.Order, error)
	ListByCustomer(ctx context.Context, customerID string, opts ListOptions) ([]model.Order, error)
}

type ReviewRepository interface {
	Repository[model.Review]
	ListByBook(ctx context.Context, bookID string, opts ListOptions) ([]model.Review, error)
	AverageRating(ctx context.Context, bookID string) (RatingSummary, error)
}

type RatingSummary struct {
	Average float64 `json:"average"`
	Count   int64   `json:"count"`
}

type InventoryRepository interface {
	Repository[model.Inventory]
	FindByBook(ctx context.Context, bookID string) (model.Inventory, error)
	// Adjust adds delta to the stock of a book. It fails with
	// ErrInsufficientStock instead of going below zero.
	Adjust(ctx context.Context, bookID string, delta int) (model.Inventory, error)
}
