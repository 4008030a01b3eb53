package models

import (
	"time"

	"github.com/google/uuid"
)

// Employee represents a maintenance technician. The mobile number is unique
// because it served as the technician's identity historically.
type Employee struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	MobileNumber string    `json:"mobile_number"`
	CreatedAt    time.Time `json:"created_at"`
}
