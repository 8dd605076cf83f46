package service

import (
	"context"

	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/repository"
	"bookstore-admin/bookstore/internal/uow"
)

type ReviewInput struct {
	CustomerID string `json:"customer_id" validate:"required"`
	Rating     int    `json:"rating" validate:"required,min=1,max=5"`
	Body       string `json:"body,omitempty" validate:"max=2000"`
}

func CreateReview(ctx context.Context, h uow.Handle, bookID string, in ReviewInput) (model.Review, error) {
	if err := Validate(in); err != nil {
		return model.Review{}, err
	}
	if _, err := repository.NewBookRepository(h).FindOne(ctx, bookID); err != nil {
		return model.Review{}, err
	}
	if err := mustExist(ctx, repository.NewCustomerRepository(h).FindOne, in.CustomerID, "customer"); err != nil {
		return model.Review{}, err
	}
	r := model.NewReview(bookID, in.CustomerID, in.Rating, in.Body)
	if err := repository.NewReviewRepository(h).Create(ctx, &r); err != nil {
		return model.Review{}, err
	}
	return r, nil
}

func ListReviews(ctx context.Context, h uow.Handle, bookID string, opts repository.ListOptions) ([]model.Review, error) {
	if _, err := repository.NewBookRepository(h).FindOne(ctx, bookID); err != nil {
		return nil, err
	}
	return repository.NewReviewRepository(h).ListByBook(ctx, bookID, opts)
}
