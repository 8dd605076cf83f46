package client

import "time"

type Author struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type AuthorInput struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type Book struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	ISBN        string  `json:"isbn"`
	Description string  `json:"description"`
	PriceCents  int64   `json:"price_cents"`
	CategoryID  *string `json:"category_id,omitempty"`
}

type BookDetail struct {
	Book
	Authors []Author `json:"authors"`
	Stock   int      `json:"stock"`
}

type BookInput struct {
	Title        string   `json:"title"`
	ISBN         string   `json:"isbn"`
	Description  string   `json:"description,omitempty"`
	PriceCents   int64    `json:"price_cents"`
	CategoryID   *string  `json:"category_id,omitempty"`
	AuthorIDs    []string `json:"author_ids"`
	InitialStock int      `json:"initial_stock,omitempty"`
}

type BookFilter struct {
	CategoryID string
	AuthorID   string
	Page       Page
}

type Order struct {
	ID         string    `json:"id"`
	CustomerID string    `json:"customer_id"`
	CartID     string    `json:"cart_id"`
	Status     string    `json:"status"`
	TotalCents int64     `json:"total_cents"`
	PlacedAt   time.Time `json:"placed_at"`
}

type Inventory struct {
	BookID   string `json:"book_id"`
	Quantity int    `json:"quantity"`
}
