package model

import (
	"time"

	"github.com/google/uuid"
)

// Cart statuses. Only open carts accept items or become orders.
const (
	CartOpen       = "open"
	CartCheckedOut = "checked_out"
	CartAbandoned  = "abandoned"
)

type Cart struct {
	ID         string     `gorm:"primaryKey" json:"id"`
	CustomerID string     `gorm:"not null;index" json:"customer_id"`
	Customer   *Customer  `gorm:"constraint:OnDelete:CASCADE;foreignKey:CustomerID" json:"-"`
	Status     string     `gorm:"not null;default:open;index" json:"status"`
	Items      []LineItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func NewCart(customerID string) Cart {
	return Cart{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Status:     CartOpen,
	}
}

func (c Cart) IsOpen() bool {
	return c.Status == CartOpen
}

func (c Cart) TotalCents() int64 {
	var total int64
	for _, it := range c.Items {
		total += it.SubtotalCents()
	}
	return total
}

type LineItem struct {
	ID             string `gorm:"primaryKey" json:"id"`
	CartID         string `gorm:"not null;uniqueIndex:idx_line_cart_book" json:"cart_id"`
	BookID         string `gorm:"not null;uniqueIndex:idx_line_cart_book" json:"book_id"`
	Book           *Book  `gorm:"foreignKey:BookID" json:"-"`
	Quantity       int    `gorm:"not null" json:"quantity"`
	UnitPriceCents int64  `gorm:"not null" json:"unit_price_cents"`
}

func NewLineItem(cartID, bookID string, quantity int, unitPriceCents int64) LineItem {
	return LineItem{
		ID:             uuid.NewString(),
		CartID:         cartID,
		BookID:         bookID,
		Quantity:       quantity,
		UnitPriceCents: unitPriceCents,
	}
}

func (li LineItem) SubtotalCents() int64 {
	return int64(li.Quantity) * li.UnitPriceCents
}
