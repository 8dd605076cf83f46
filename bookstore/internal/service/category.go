package service

import (
	"context"
	"strings"

	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/repository"
	"bookstore-admin/bookstore/internal/uow"
)

type CategoryInput struct {
	Name string `json:"name" validate:"required,max=100"`
}

func CreateCategory(ctx context.Context, h uow.Handle, in CategoryInput) (model.Category, error) {
	if err := Validate(in); err != nil {
		return model.Category{}, err
	}
	c := model.NewCategory(strings.TrimSpace(in.Name))
	if err := repository.NewCategoryRepository(h).Create(ctx, &c); err != nil {
		return model.Category{}, err
	}
	return c, nil
}

func ListCategories(ctx context.Context, h uow.Handle, opts repository.ListOptions) ([]model.Category, error) {
	return repository.NewCategoryRepository(h).FindMany(ctx, opts)
}

func DeleteCategory(ctx context.Context, h uow.Handle, id string) error {
	return repository.NewCategoryRepository(h).Delete(ctx, id)
}
