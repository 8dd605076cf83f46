package service

import (
	"context"
	"strings"

	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/repository"
	"bookstore-admin/bookstore/internal/uow"
)

type AuthorInput struct {
	FirstName string `json:"first_name" validate:"required,max=100"`
	LastName  string `json:"last_name" validate:"required,max=100"`
}

type AuthorPatch struct {
	FirstName *string `json:"first_name,omitempty" validate:"omitempty,min=1,max=100"`
	LastName  *string `json:"last_name,omitempty" validate:"omitempty,min=1,max=100"`
}

func CreateAuthor(ctx context.Context, h uow.Handle, in AuthorInput) (model.Author, error) {
	if err := Validate(in); err != nil {
		return model.Author{}, err
	}
	a := model.NewAuthor(strings.TrimSpace(in.FirstName), strings.TrimSpace(in.LastName))
	if err := repository.NewAuthorRepository(h).Create(ctx, &a); err != nil {
		return model.Author{}, err
	}
	return a, nil
}

func GetAuthor(ctx context.Context, h uow.Handle, id string) (model.Author, error) {
	return repository.NewAuthorRepository(h).FindOne(ctx, id)
}

func ListAuthors(ctx context.Context, h uow.Handle, opts repository.ListOptions) ([]model.Author, error) {
	return repository.NewAuthorRepository(h).FindMany(ctx, opts)
}

func UpdateAuthor(ctx context.Context, h uow.Handle, id string, in AuthorPatch) (model.Author, error) {
	if err := Validate(in); err != nil {
		return model.Author{}, err
	}
	return repository.NewAuthorRepository(h).Update(ctx, id, repository.AuthorUpdate{
		FirstName: in.FirstName,
		LastName:  in.LastName,
	})
}

// DeleteAuthor removes the author and, through the cascade, every link to
// their books. The books themselves stay.
func DeleteAuthor(ctx context.Context, h uow.Handle, id string) error {
	return repository.NewAuthorRepository(h).Delete(ctx, id)
}
