package model

import (
	"time"

	"github.com/google/uuid"
)

type Author struct {
	ID        string    `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"not null;uniqueIndex:idx_author_name" json:"first_name"`
	LastName  string    `gorm:"not null;uniqueIndex:idx_author_name" json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewAuthor(firstName, lastName string) Author {
	return Author{
		ID:        uuid.NewString(),
		FirstName: firstName,
		LastName:  lastName,
	}
}

func (a Author) FullName() string {
	return a.FirstName + " " + a.LastName
}

// AuthorBook links an author to a book.
type AuthorBook struct {
	ID       string  `gorm:"primaryKey" json:"id"`
	AuthorID string  `gorm:"not null;uniqueIndex:idx_author_book" json:"author_id"`
	BookID   string  `gorm:"not null;uniqueIndex:idx_author_book;index" json:"book_id"`
	Author   *Author `gorm:"constraint:OnDelete:CASCADE;foreignKey:AuthorID" json:"author,omitempty"`
	Book     *Book   `gorm:"constraint:OnDelete:CASCADE;foreignKey:BookID" json:"book,omitempty"`
}

func (AuthorBook) TableName() string {
	return "author_books"
}

func NewAuthorBook(authorID, bookID string) AuthorBook {
	return AuthorBook{
		ID:       uuid.NewString(),
		AuthorID: authorID,
		BookID:   bookID,
	}
}
