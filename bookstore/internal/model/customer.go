package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type Customer struct {
	ID           string    `gorm:"primaryKey" json:"id"`
	FirstName    string    `gorm:"not null" json:"first_name"`
	LastName     string    `gorm:"not null" json:"last_name"`
	Email        string    `gorm:"not null;uniqueIndex" json:"email"`
	PasswordHash string    `gorm:"column:password_hash" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func NewCustomer(firstName, lastName, email, password string) (Customer, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return Customer{}, err
	}
	return Customer{
		ID:           uuid.NewString(),
		FirstName:    firstName,
		LastName:     lastName,
		Email:        email,
		PasswordHash: string(hash),
	}, nil
}

func (c Customer) VerifyPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
}

type Address struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	CustomerID string    `gorm:"not null;index" json:"customer_id"`
	Customer   *Customer `gorm:"constraint:OnDelete:CASCADE;foreignKey:CustomerID" json:"-"`
	Line1      string    `gorm:"not null" json:"line1"`
	Line2      string    `json:"line2,omitempty"`
	City       string    `gorm:"not null" json:"city"`
	PostalCode string    `gorm:"not null" json:"postal_code"`
	Country    string    `gorm:"not null" json:"country"`
}

func NewAddress(customerID, line1, line2, city, postalCode, country string) Address {
	return Address{
		ID:         uuid.NewString(),
		CustomerID: customerID,
		Line1:      line1,
		Line2:      line2,
		City:       city,
		PostalCode: postalCode,
		Country:    country,
	}
}
