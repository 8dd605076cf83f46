package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"bookstore-admin/bookstore/internal/model"
	"bookstore-admin/bookstore/internal/uow"
)

type CartUpdate struct {
	Status *string
}

func (u CartUpdate) Columns() map[string]any {
	cols := map[string]any{}
	set(cols, "status", u.Status)
	return cols
}

type gormCartRepository struct {
	gormRepository[model.Cart]
}

func NewCartRepository(h uow.Handle) CartRepository {
	return &gormCartRepository{newGormRepository[model.Cart](h, "created_at")}
}

func (r *gormCartRepository) FindWithItems(ctx context.Context, id string) (model.Cart, error) {
	return r.first(ctx, preloadItems, "id = ?", id)
}

func (r *gormCartRepository) ListStale(ctx context.Context, status string, before time.Time) ([]model.Cart, error) {
	return r.find(ctx, ListOptions{}, where("status = ? AND updated_at < ?", status, before))
}

func preloadItems(db *gorm.DB) *gorm.DB {
	return db.Preload("Items", func(db *gorm.DB) *gorm.DB {
		return db.Order("line_items.id")
	})
}

type LineItemUpdate struct {
	Quantity       *int
	UnitPriceCents *int64
}

func (u LineItemUpdate) Columns() map[string]any {
	cols := map[string]any{}
	set(cols, "quantity", u.Quantity)
	set(cols, "unit_price_cents", u.UnitPriceCents)
	return cols
}

type gormLineItemRepository struct {
	gormRepository[model.LineItem]
}

func NewLineItemRepository(h uow.Handle) LineItemRepository {
	return &gormLineItemRepository{newGormRepository[model.LineItem](h, "id")}
}

func (r *gormLineItemRepository) ListByCart(ctx context.Context, cartID string) ([]model.LineItem, error) {
	return r.find(ctx, ListOptions{}, where("cart_id = ?", cartID))
}

func (r *gormLineItemRepository) FindInCart(ctx context.Context, cartID, bookID string) (model.LineItem, error) {
	return r.first(ctx, nil, "cart_id = ? AND book_id = ?", cartID, bookID)
}
