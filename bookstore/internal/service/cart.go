package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/repository"
	"bookstore-admin/bookstore/internal/uow"
)

type CartItemInput struct {
	BookID   string `json:"book_id" validate:"required"`
	Quantity int    `json:"quantity" validate:"required,gt=0,lte=100"`
}

func OpenCart(ctx context.Context, h uow.Handle, customerID string) (model.Cart, error) {
	if _, err := repository.NewCustomerRepository(h).FindOne(ctx, customerID); err != nil {
		return model.Cart{}, err
	}
	c := model.NewCart(customerID)
	if err := repository.NewCartRepository(h).Create(ctx, &c); err != nil {
		return model.Cart{}, err
	}
	return c, nil
}

func GetCart(ctx context.Context, h uow.Handle, id string) (model.Cart, error) {
	return repository.NewCartRepository(h).FindWithItems(ctx, id)
}

// AddCartItem puts a book in an open cart at the book's current price.
// Adding a book that is already in the cart raises its quantity.
func AddCartItem(ctx context.Context, h uow.Handle, cartID string, in CartItemInput) (model.Cart, error) {
	if err := Validate(in); err != nil {
		return model.Cart{}, err
	}
	carts := repository.NewCartRepository(h)
	if err := requireOpenCart(ctx, carts, cartID); err != nil {
		return model.Cart{}, err
	}
	book, err := repository.NewBookRepository(h).FindOne(ctx, in.BookID)
	if err != nil {
		return model.Cart{}, err
	}

	items := repository.NewLineItemRepository(h)
	existing, err := items.FindInCart(ctx, cartID, book.ID)
	switch {
	case err == nil:
		qty := existing.Quantity + in.Quantity
		if _, err := items.Update(ctx, existing.ID, repository.LineItemUpdate{Quantity: &qty}); err != nil {
			return model.Cart{}, err
		}
	case errors.Is(err, repository.ErrNotFound):
		li := model.NewLineItem(cartID, book.ID, in.Quantity, book.PriceCents)
		if err := items.Create(ctx, &li); err != nil {
			return model.Cart{}, err
		}
	default:
		return model.Cart{}, err
	}

	if err := touchCart(ctx, carts, cartID); err != nil {
		return model.Cart{}, err
	}
	return carts.FindWithItems(ctx, cartID)
}

func RemoveCartItem(ctx context.Context, h uow.Handle, cartID, bookID string) (model.Cart, error) {
	carts := repository.NewCartRepository(h)
	if err := requireOpenCart(ctx, carts, cartID); err != nil {
		return model.Cart{}, err
	}
	items := repository.NewLineItemRepository(h)
	li, err := items.FindInCart(ctx, cartID, bookID)
	if err != nil {
		return model.Cart{}, err
	}
	if err := items.Delete(ctx, li.ID); err != nil {
		return model.Cart{}, err
	}
	if err := touchCart(ctx, carts, cartID); err != nil {
		return model.Cart{}, err
	}
	return carts.FindWithItems(ctx, cartID)
}

// AbandonStaleCarts marks every open cart untouched since before as
// abandoned and returns how many it marked.
func AbandonStaleCarts(ctx context.Context, h uow.Handle, before time.Time) (int, error) {
	carts := repository.NewCartRepository(h)
	stale, err := carts.ListStale(ctx, model.CartOpen, before)
	if err != nil {
		return 0, err
	}
	for _, c := range stale {
		if _, err := carts.Update(ctx, c.ID, repository.CartUpdate{Status: ptr(model.CartAbandoned)}); err != nil {
			return 0, fmt.Errorf("abandon cart %s: %w", c.ID, err)
		}
	}
	return len(stale), nil
}

func requireOpenCart(ctx context.Context, carts repository.CartRepository, id string) error {
	c, err := carts.FindOne(ctx, id)
	if err != nil {
		return err
	}
	if !c.IsOpen() {
		return ConflictError{Msg: fmt.Sprintf("cart %s is %s", id, c.Status)}
	}
	return nil
}

// touchCart bumps updated_at so the sweeper sees the cart as active.
func touchCart(ctx context.Context, carts repository.CartRepository, id string) error {
	_, err := carts.Update(ctx, id, repository.CartUpdate{Status: ptr(model.CartOpen)})
	return err
}
