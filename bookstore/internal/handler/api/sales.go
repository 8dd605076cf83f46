package api

import (
	"context"
	"net/http"

	"github.com/danielgtaylor/huma/v2"

	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/service"
	"bookstore-admin/bookstore/internal/uow"
)

type CreateCustomerInput struct {
	Body service.CustomerInput
}

type AddAddressInput struct {
	ID   string `path:"id"`
	Body service.AddressInput
}

type AddCartItemInput struct {
	ID   string `path:"id"`
	Body service.CartItemInput
}

type CartItemPathInput struct {
	ID     string `path:"id"`
	BookID string `path:"bookID"`
}

type ListOrdersInput struct {
	PageParams
	CustomerID string `query:"customer_id"`
}

type PlaceOrderInput struct {
	Body service.PlaceOrderInput
}

func (h *Handler) registerCustomers(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-customers",
		Method:      http.MethodGet,
		Path:        "/api/customers",
		Summary:     "List customers",
	}, h.listCustomers)
	huma.Register(api, huma.Operation{
		OperationID:   "create-customer",
		Method:        http.MethodPost,
		Path:          "/api/customers",
		Summary:       "Create customer",
		DefaultStatus: http.StatusCreated,
	}, h.createCustomer)
	huma.Register(api, huma.Operation{
		OperationID: "get-customer",
		Method:      http.MethodGet,
		Path:        "/api/customers/{id}",
		Summary:     "Get customer",
	}, h.getCustomer)
	huma.Register(api, huma.Operation{
		OperationID: "list-addresses",
		Method:      http.MethodGet,
		Path:        "/api/customers/{id}/addresses",
		Summary:     "List addresses of a customer",
	}, h.listAddresses)
	huma.Register(api, huma.Operation{
		OperationID:   "add-address",
		Method:        http.MethodPost,
		Path:          "/api/customers/{id}/addresses",
		Summary:       "Add address to a customer",
		DefaultStatus: http.StatusCreated,
	}, h.addAddress)
	huma.Register(api, huma.Operation{
		OperationID:   "open-cart",
		Method:        http.MethodPost,
		Path:          "/api/customers/{id}/carts",
		Summary:       "Open a cart for a customer",
		DefaultStatus: http.StatusCreated,
	}, h.openCart)
}

func (h *Handler) registerCarts(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "get-cart",
		Method:      http.MethodGet,
		Path:        "/api/carts/{id}",
		Summary:     "Get cart with its items",
	}, h.getCart)
	huma.Register(api, huma.Operation{
		OperationID: "add-cart-item",
		Method:      http.MethodPost,
		Path:        "/api/carts/{id}/items",
		Summary:     "Add a book to a cart",
	}, h.addCartItem)
	huma.Register(api, huma.Operation{
		OperationID: "remove-cart-item",
		Method:      http.MethodDelete,
		Path:        "/api/carts/{id}/items/{bookID}",
		Summary:     "Remove a book from a cart",
	}, h.removeCartItem)
}

func (h *Handler) registerOrders(api huma.API) {
	huma.Register(api, huma.Operation{
		OperationID: "list-orders",
		Method:      http.MethodGet,
		Path:        "/api/orders",
		Summary:     "List orders",
	}, h.listOrders)
	huma.Register(api, huma.Operation{
		OperationID:   "place-order",
		Method:        http.MethodPost,
		Path:          "/api/orders",
		Summary:       "Place an order from a cart",
		DefaultStatus: http.StatusCreated,
	}, h.placeOrder)
	huma.Register(api, huma.Operation{
		OperationID: "get-order",
		Method:      http.MethodGet,
		Path:        "/api/orders/{id}",
		Summary:     "Get order",
	}, h.getOrder)
	huma.Register(api, huma.Operation{
		OperationID: "cancel-order",
		Method:      http.MethodPost,
		Path:        "/api/orders/{id}/cancel",
		Summary:     "Cancel an order and restock its books",
	}, h.cancelOrder)
}

// --- Customers ---

func (h *Handler) listCustomers(ctx context.Context, input *ListInput) (*Output[[]model.Customer], error) {
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) ([]model.Customer, error) {
		return service.ListCustomers(ctx, tx, input.options())
	})
}

func (h *Handler) createCustomer(ctx context.Context, input *CreateCustomerInput) (*Output[model.Customer], error) {
	if err := h.validated(ctx, input.Body); err != nil {
		return nil, err
	}
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (model.Customer, error) {
		return service.CreateCustomer(ctx, tx, input.Body)
	})
}

func (h *Handler) getCustomer(ctx context.Context, input *IDInput) (*Output[model.Customer], error) {
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (model.Customer, error) {
		return service.GetCustomer(ctx, tx, input.ID)
	})
}

func (h *Handler) listAddresses(ctx context.Context, input *IDInput) (*Output[[]model.Address], error) {
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) ([]model.Address, error) {
		return service.ListAddresses(ctx, tx, input.ID)
	})
}

func (h *Handler) addAddress(ctx context.Context, input *AddAddressInput) (*Output[model.Address], error) {
	if err := h.validated(ctx, input.Body); err != nil {
		return nil, err
	}
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (model.Address, error) {
		return service.AddAddress(ctx, tx, input.ID, input.Body)
	})
}

// --- Carts ---

func (h *Handler) openCart(ctx context.Context, input *IDInput) (*Output[model.Cart], error) {
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (model.Cart, error) {
		return service.OpenCart(ctx, tx, input.ID)
	})
}

func (h *Handler) getCart(ctx context.Context, input *IDInput) (*Output[model.Cart], error) {
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (model.Cart, error) {
		return service.GetCart(ctx, tx, input.ID)
	})
}

func (h *Handler) addCartItem(ctx context.Context, input *AddCartItemInput) (*Output[model.Cart], error) {
	if err := h.validated(ctx, input.Body); err != nil {
		return nil, err
	}
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (model.Cart, error) {
		return service.AddCartItem(ctx, tx, input.ID, input.Body)
	})
}

func (h *Handler) removeCartItem(ctx context.Context, input *CartItemPathInput) (*Output[model.Cart], error) {
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (model.Cart, error) {
		return service.RemoveCartItem(ctx, tx, input.ID, input.BookID)
	})
}

// --- Orders ---

func (h *Handler) listOrders(ctx context.Context, input *ListOrdersInput) (*Output[[]model.Order], error) {
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) ([]model.Order, error) {
		return service.ListOrders(ctx, tx, input.CustomerID, input.options())
	})
}

func (h *Handler) placeOrder(ctx context.Context, input *PlaceOrderInput) (*Output[model.Order], error) {
	if err := h.validated(ctx, input.Body); err != nil {
		return nil, err
	}
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (model.Order, error) {
		return service.PlaceOrder(ctx, tx, input.Body)
	})
}

func (h *Handler) getOrder(ctx context.Context, input *IDInput) (*Output[model.Order], error) {
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (model.Order, error) {
		return service.GetOrder(ctx, tx, input.ID)
	})
}

func (h *Handler) cancelOrder(ctx context.Context, input *IDInput) (*Output[model.Order], error) {
	return run(ctx, h, func(ctx context.Context, tx uow.Handle) (model.Order, error) {
		return service.CancelOrder(ctx, tx, input.ID)
	})
}
