package model

import "gorm.io/gorm"

// All lists every persisted model in dependency order.
func All() []any {
	return []any{
		&Author{},
		&Category{},
		&Book{},
		&AuthorBook{},
		&Inventory{},
		&Customer{},
		&Address{},
		&Cart{},
		&LineItem{},
		&Order{},
		&Review{},
	}
}

func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(All()...)
}
