package service

import (
	"context"
	"fmt"
	"time"

	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/repository"
	"bookstore-admin/bookstore/internal/uow"
)

type PlaceOrderInput struct {
	CartID    string `json:"cart_id" validate:"required"`
	AddressID string `json:"address_id" validate:"required"`
}

// PlaceOrder turns an open cart into an order. Stock for every line is
// taken in the same transaction, so a line that cannot be filled leaves
// the cart, the inventory and the orders table as they were.
func PlaceOrder(ctx context.Context, h uow.Handle, in PlaceOrderInput) (model.Order, error) {
	if err := Validate(in); err != nil {
		return model.Order{}, err
	}

	carts := repository.NewCartRepository(h)
	cart, err := carts.FindWithItems(ctx, in.CartID)
	if err != nil {
		return model.Order{}, err
	}
	if !cart.IsOpen() {
		return model.Order{}, ConflictError{Msg: fmt.Sprintf("cart %s is %s", cart.ID, cart.Status)}
	}
	if len(cart.Items) == 0 {
		return model.Order{}, ValidationError{Msg: "cart is empty"}
	}

	addr, err := repository.NewAddressRepository(h).FindOne(ctx, in.AddressID)
	if err != nil {
		return model.Order{}, err
	}
	if addr.CustomerID != cart.CustomerID {
		return model.Order{}, ValidationError{Msg: "address does not belong to the cart's customer"}
	}

	inventory := repository.NewInventoryRepository(h)
	for _, it := range cart.Items {
		if _, err := inventory.Adjust(ctx, it.BookID, -it.Quantity); err != nil {
			return model.Order{}, fmt.Errorf("reserve book %s: %w", it.BookID, err)
		}
	}

	orders := repository.NewOrderRepository(h)
	o := model.NewOrder(cart.CustomerID, cart.ID, addr.ID, cart.TotalCents(), time.Now().UTC())
	if err := orders.Create(ctx, &o); err != nil {
		return model.Order{}, err
	}
	if _, err := carts.Update(ctx, cart.ID, repository.CartUpdate{Status: ptr(model.CartCheckedOut)}); err != nil {
		return model.Order{}, err
	}
	return orders.FindWithItems(ctx, o.ID)
}

func GetOrder(ctx context.Context, h uow.Handle, id string) (model.Order, error) {
	return repository.NewOrderRepository(h).FindWithItems(ctx, id)
}

func ListOrders(ctx context.Context, h uow.Handle, customerID string, opts repository.ListOptions) ([]model.Order, error) {
	orders := repository.NewOrderRepository(h)
	if customerID == "" {
		return orders.FindMany(ctx, opts)
	}
	return orders.ListByCustomer(ctx, customerID, opts)
}

// CancelOrder puts the ordered books back in stock.
func CancelOrder(ctx context.Context, h uow.Handle, id string) (model.Order, error) {
	orders := repository.NewOrderRepository(h)
	o, err := orders.FindWithItems(ctx, id)
	if err != nil {
		return model.Order{}, err
	}
	if o.Status == model.OrderCancelled {
		return model.Order{}, ConflictError{Msg: fmt.Sprintf("order %s is already cancelled", id)}
	}

	if o.Cart != nil {
		inventory := repository.NewInventoryRepository(h)
		for _, it := range o.Cart.Items {
			if _, err := inventory.Adjust(ctx, it.BookID, it.Quantity); err != nil {
				return model.Order{}, fmt.Errorf("restock book %s: %w", it.BookID, err)
			}
		}
	}

	if _, err := orders.Update(ctx, id, repository.OrderUpdate{Status: ptr(model.OrderCancelled)}); err != nil {
		return model.Order{}, err
	}
	return orders.FindWithItems(ctx, id)
}
