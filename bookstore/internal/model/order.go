package model

import (
	"time"

	"github.com/google/uuid"
)

const (
	OrderPlaced    = "placed"
	OrderCancelled = "cancelled"
)

type Order struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	CustomerID string    `gorm:"not null;index" json:"customer_id"`
	Customer   *Customer `gorm:"foreignKey:CustomerID" json:"-"`
	CartID     string    `gorm:"not null;uniqueIndex" json:"cart_id"`
	Cart       *Cart     `gorm:"foreignKey:CartID" json:"cart,omitempty"`
	AddressID  string    `gorm:"not null" json:"address_id"`
	Address    *Address  `gorm:"foreignKey:AddressID" json:"-"`
	Status     string    `gorm:"not null;default:placed;index" json:"status"`
	TotalCents int64     `gorm:"not null" json:"total_cents"`
	PlacedAt   time.Time `gorm:"not null" json:"placed_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func NewOrder(customerID, cartID, addressID string, totalCents int64, placedAt time.Time) Order {
	return Order{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		CartID:     cartID,
		AddressID:  addressID,
		Status:     OrderPlaced,
		TotalCents: totalCents,
		PlacedAt:   placedAt,
	}
}

type Review struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	BookID     string    `gorm:"not null;index" json:"book_id"`
	Book       *Book     `gorm:"constraint:OnDelete:CASCADE;foreignKey:BookID" json:"-"`
	CustomerID string    `gorm:"not null;index" json:"customer_id"`
	Customer   *Customer `gorm:"constraint:OnDelete:CASCADE;foreignKey:CustomerID" json:"-"`
	Rating     int       `gorm:"not null" json:"rating"`
	Body       string    `json:"body"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewReview(bookID, customerID string, rating int, body string) Review {
	return Review{
		ID:         uuid.NewString(),
		BookID:     bookID,
		CustomerID: customerID,
		Rating:     rating,
		Body:       body,
	}
}
