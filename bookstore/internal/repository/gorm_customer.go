package repository

import (
	"context"

	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/uow"
)

type CustomerUpdate struct {
	FirstName *string
	LastName  *string
	Email     *string
}

func (u CustomerUpdate) Columns() map[string]any {
	cols := map[string]any{}
	set(cols, "first_name", u.FirstName)
	set(cols, "last_name", u.LastName)
	set(cols, "email", u.Email)
	return cols
}

type gormCustomerRepository struct {
	gormRepository[model.Customer]
}

func NewCustomerRepository(h uow.Handle) CustomerRepository {
	return &gormCustomerRepository{newGormRepository[model.Customer](h, "last_name, first_name")}
}

func (r *gormCustomerRepository) FindByEmail(ctx context.Context, email string) (model.Customer, error) {
	return r.first(ctx, nil, "email = ?", email)
}

type AddressUpdate struct {
	Line1      *string
	Line2      *string
	City       *string
	PostalCode *string
	Country    *string
}

func (u AddressUpdate) Columns() map[string]any {
	cols := map[string]any{}
	set(cols, "line1", u.Line1)
	set(cols, "line2", u.Line2)
	set(cols, "city", u.City)
	set(cols, "postal_code", u.PostalCode)
	set(cols, "country", u.Country)
	return cols
}

type gormAddressRepository struct {
	gormRepository[model.Address]
}

func NewAddressRepository(h uow.Handle) AddressRepository {
	return &gormAddressRepository{newGormRepository[model.Address](h, "id")}
}

func (r *gormAddressRepository) ListByCustomer(ctx context.Context, customerID string) ([]model.Address, error) {
	return r.find(ctx, ListOptions{}, where("customer_id = ?", customerID))
}
