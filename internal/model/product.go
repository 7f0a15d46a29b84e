package model

import (
	"time"

	"github.com/google/uuid"
)

// Product represents a food product in the catalogue. Products are
// read-mostly reference data here; checkout snapshots the current price
// into each order item, so later price changes never affect past orders.
type Product struct {
	ID          uuid.UUID  `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description string     `json:"description" db:"description"`
	Price       Money      `json:"price" db:"price"`
	CategoryID  *uuid.UUID `json:"categoryId,omitempty" db:"category_id"`
	Active      bool       `json:"active" db:"active"`
	CreatedAt   time.Time  `json:"createdAt" db:"created_at"`
}

// IsAvailable reports whether the product can be ordered.
func (p *Product) IsAvailable() bool {
	return p.Active
}
