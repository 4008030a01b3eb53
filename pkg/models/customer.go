package models

import (
	"time"

	"github.com/google/uuid"
)

// Customer represents a purchaser of a filtration system.
type Customer struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Address     string    `json:"address"`
	InstalledAt time.Time `json:"installed_at"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// MobileNumber is a contact number attached to a customer. A customer can
// have several; the pair is the identity.
type MobileNumber struct {
	CustomerID uuid.UUID `json:"customer_id"`
	Number     string    `json:"number"`
	CreatedAt  time.Time `json:"created_at"`
}
