package repository

import (
	"context"

	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/uow"
)

type ReviewUpdate struct {
	Rating *int
	Body   *string
}

func (u ReviewUpdate) Columns() map[string]any {
	cols := map[string]any{}
	set(cols, "rating", u.Rating)
	set(cols, "body", u.Body)
	return cols
}

type gormReviewRepository struct {
	gormRepository[model.Review]
}

func NewReviewRepository(h uow.Handle) ReviewRepository {
	return &gormReviewRepository{newGormRepository[model.Review](h, "created_at DESC")}
}

func (r *gormReviewRepository) ListByBook(ctx context.Context, bookID string, opts ListOptions) ([]model.Review, error) {
	return r.find(ctx, opts, where("book_id = ?", bookID))
}

func (r *gormReviewRepository) AverageRating(ctx context.Context, bookID string) (RatingSummary, error) {
	var out RatingSummary
	err := r.db.WithContext(ctx).
		Model(&model.Review{}).
		Select("COALESCE(AVG(rating), 0) AS average, COUNT(*) AS count").
		Where("book_id = ?", bookID).
		Scan(&out).Error
	if err != nil {
		return RatingSummary{}, mapErr(err)
	}
	return out, nil
}
