package service

import (
	"context"
	"strings"

	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/repository"
	"bookstore-admin/bookstore/internal/uow"
)

type CustomerInput struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8,max=72"`
}

type AddressInput struct {
	Line1      string `json:"line1" validate:"required,max=200"`
	Line2      string `json:"line2,omitempty" validate:"max=200"`
	City       string `json:"city" validate:"required,max=100"`
	PostalCode string `json:"postal_code" validate:"required,max=20"`
	Country    string `json:"country" validate:"required,iso3166_1_alpha2"`
}

func CreateCustomer(ctx context.Context, h uow.Handle, in CustomerInput) (model.Customer, error) {
	if err := Validate(in); err != nil {
		return model.Customer{}, err
	}
	c, err := model.NewCustomer(
		strings.TrimSpace(in.FirstName),
		strings.TrimSpace(in.LastName),
		strings.ToLower(strings.TrimSpace(in.Email)),
		in.Password,
	)
	if err != nil {
		return model.Customer{}, err
	}
	if err := repository.NewCustomerRepository(h).Create(ctx, &c); err != nil {
		return model.Customer{}, err
	}
	return c, nil
}

func GetCustomer(ctx context.Context, h uow.Handle, id string) (model.Customer, error) {
	return repository.NewCustomerRepository(h).FindOne(ctx, id)
}

func ListCustomers(ctx context.Context, h uow.Handle, opts repository.ListOptions) ([]model.Customer, error) {
	return repository.NewCustomerRepository(h).FindMany(ctx, opts)
}

func AddAddress(ctx context.Context, h uow.Handle, customerID string, in AddressInput) (model.Address, error) {
	if err := Validate(in); err != nil {
		return model.Address{}, err
	}
	if _, err := repository.NewCustomerRepository(h).FindOne(ctx, customerID); err != nil {
		return model.Address{}, err
	}
	a := model.NewAddress(customerID, in.Line1, in.Line2, in.City, in.PostalCode, strings.ToUpper(in.Country))
	if err := repository.NewAddressRepository(h).Create(ctx, &a); err != nil {
		return model.Address{}, err
	}
	return a, nil
}

func ListAddresses(ctx context.Context, h uow.Handle, customerID string) ([]model.Address, error) {
	if _, err := repository.NewCustomerRepository(h).FindOne(ctx, customerID); err != nil {
		return nil, err
	}
	return repository.NewAddressRepository(h).ListByCustomer(ctx, customerID)
}
