package service

import (
	"context"

	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/repository"
	"bookstore-admin/bookstore/internal/uow"
)

type AdjustInventoryInput struct {
	Delta int `json:"delta" validate:"required,min=-10000,max=10000"`
}

func GetInventory(ctx context.Context, h uow.Handle, bookID string) (model.Inventory, error) {
	return repository.NewInventoryRepository(h).FindByBook(ctx, bookID)
}

// AdjustInventory adds Delta to the stock of a book. Stock never goes
// below zero.
func AdjustInventory(ctx context.Context, h uow.Handle, bookID string, in AdjustInventoryInput) (model.Inventory, error) {
	if err := Validate(in); err != nil {
		return model.Inventory{}, err
	}
	return repository.NewInventoryRepository(h).Adjust(ctx, bookID, in.Delta)
}
