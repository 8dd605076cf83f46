package repository

import (
	"context"

	"gorm.io/gorm"

	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/uow"
)

type InventoryUpdate struct {
	Quantity *int
}

func (u InventoryUpdate) Columns() map[string]any {
	cols := map[string]any{}
	set(cols, "quantity", u.Quantity)
	return cols
}

type gormInventoryRepository struct {
	gormRepository[model.Inventory]
}

func NewInventoryRepository(h uow.Handle) InventoryRepository {
	return &gormInventoryRepository{newGormRepository[model.Inventory](h, "book_id")}
}

func (r *gormInventoryRepository) FindByBook(ctx context.Context, bookID string) (model.Inventory, error) {
	return r.first(ctx, nil, "book_id = ?", bookID)
}

func (r *gormInventoryRepository) Adjust(ctx context.Context, bookID string, delta int) (model.Inventory, error) {
	res := r.db.WithContext(ctx).
		Model(&model.Inventory{}).
		Where("book_id = ? AND quantity + ? >= 0", bookID, delta).
		Update("quantity", gorm.Expr("quantity + ?", delta))
	if res.Error != nil {
		return model.Inventory{}, mapErr(res.Error)
	}
	if res.RowsAffected == 0 {
		if _, err := r.FindByBook(ctx, bookID); err != nil {
			return model.Inventory{}, err
		}
		return model.Inventory{}, ErrInsufficientStock
	}
	return r.FindByBook(ctx, bookID)
}
