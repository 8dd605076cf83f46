package repository

import (
	"context"

	"gorm.io/gorm"

	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/uow"
)

type OrderUpdate struct {
	Status *string
}

func (u OrderUpdate) Columns() map[string]any {
	cols := map[string]any{}
	set(cols, "status", u.Status)
	return cols
}

type gormOrderRepository struct {
	gormRepository[model.Order]
}

func NewOrderRepository(h uow.Handle) OrderRepository {
	return &gormOrderRepository{newGormRepository[model.Order](h, "placed_at DESC")}
}

func (r *gormOrderRepository) FindWithItems(ctx context.Context, id string) (model.Order, error) {
	return r.first(ctx, func(db *gorm.DB) *gorm.DB {
		return db.Preload("Cart").Preload("Cart.Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("line_items.id")
		})
	}, "id = ?", id)
}

func (r *gormOrderRepository) FindByCart(ctx context.Context, cartID string) (model.Order, error) {
	return r.first(ctx, nil, "cart_id = ?", cartID)
}

func (r *gormOrderRepository) ListByCustomer(ctx context.Context, customerID string, opts ListOptions) ([]model.Order, error) {
	return r.find(ctx, opts, where("customer_id = ?", customerID))
}
