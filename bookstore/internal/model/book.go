package model

import (
	"time"

	"github.com/google/uuid"
)

type Book struct {
	ID          string    `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	ISBN        string    `gorm:"column:isbn;not null;uniqueIndex" json:"isbn"`
	Description string    `json:"description"`
	PriceCents  int64     `gorm:"not null" json:"price_cents"`
	CategoryID  *string   `gorm:"index" json:"category_id,omitempty"`
	Category    *Category `gorm:"constraint:OnDelete:SET NULL;foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func NewBook(title, isbn, description string, priceCents int64, categoryID *string) Book {
	return Book{
		ID:          uuid.NewString(),
		Title:       title,
		ISBN:        isbn,
		Description: description,
		PriceCents:  priceCents,
		CategoryID:  categoryID,
	}
}

type Category struct {
	ID   string `gorm:"primaryKey" json:"id"`
	Name string `gorm:"not null;uniqueIndex" json:"name"`
}

func NewCategory(name string) Category {
	return Category{ID: uuid.NewString(), Name: name}
}

// Inventory holds the stock count of one book.
type Inventory struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	BookID    string    `gorm:"not null;uniqueIndex" json:"book_id"`
	Book      *Book     `gorm:"constraint:OnDelete:CASCADE;foreignKey:BookID" json:"-"`
	Quantity  int       `gorm:"not null;default:0" json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Inventory) TableName() string {
	return "inventory"
}

func NewInventory(bookID string, quantity int) Inventory {
	return Inventory{
		ID:       uuid.NewString(),
		BookID:   bookID,
		Quantity: quantity,
	}
}
