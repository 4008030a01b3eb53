package models

import (
	"time"

	"github.com/google/uuid"
)

// CustomerSummary is one row of the customers-with-maintenance-this-month
// roster.
type CustomerSummary struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address"`
}

// PartUsageTotal aggregates consumption per part across all visits.
type PartUsageTotal struct {
	PartID       uuid.UUID `json:"part_id"`
	PartName     string    `json:"part_name"`
	TotalUsed    int       `json:"total_used"`
	TotalCharged float64   `json:"total_charged"`
}

// UpcomingVisit is one row of a customer's upcoming-maintenance report.
type UpcomingVisit struct {
	MaintenanceID uuid.UUID `json:"maintenance_id"`
	CustomerName  string    `json:"customer_name"`
	UpcomingDate  time.Time `json:"upcoming_date"`
	Comment       string    `json:"comment"`
}
