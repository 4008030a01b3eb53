package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/aquaflow-inc/aquaflow-engine/pkg/apperrors"
)

// MaintenanceRecord is one logged service visit: a customer, an optional
// technician, and a date window from the visit just performed to the next
// scheduled one.
type MaintenanceRecord struct {
	ID           uuid.UUID  `json:"id"`
	CustomerID   uuid.UUID  `json:"customer_id"`
	PerformedBy  *uuid.UUID `json:"performed_by,omitempty"` // nil when no technician was recorded
	RecentDate   time.Time  `json:"recent_date"`
	UpcomingDate time.Time  `json:"upcoming_date"`
	Comment      string     `json:"comment"`
	CreatedAt    time.Time  `json:"created_at"`
}

// ValidateDates checks the date-window ordering invariant. The schema enforces
// it too; checking here gives callers a typed error before touching the store.
func (m *MaintenanceRecord) ValidateDates() error {
	if !m.UpcomingDate.After(m.RecentDate) {
		return apperrors.ErrInvalidDateRange
	}
	return nil
}

// PartUsage associates consumed parts with a maintenance visit. PartName and
// Cost are captured at visit time so later catalog edits do not rewrite
// history.
type PartUsage struct {
	ID            uuid.UUID `json:"id"`
	MaintenanceID uuid.UUID `json:"maintenance_id"`
	PartID        uuid.UUID `json:"part_id"`
	PartName      string    `json:"part_name"`
	Quantity      int       `json:"quantity"`
	Cost          float64   `json:"cost"` // unit cost charged
	CreatedAt     time.Time `json:"created_at"`
}

// LineTotal is the amount charged for this usage row.
func (u *PartUsage) LineTotal() float64 {
	return float64(u.Quantity) * u.Cost
}
