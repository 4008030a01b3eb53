package models

import (
	"time"

	"github.com/google/uuid"
)

// CriticalStockThreshold is the stock level below which an advisory alert is
// recorded. It matches the threshold baked into the low-stock trigger.
const CriticalStockThreshold = 5

// LowStockReportThreshold is the default cutoff for the low-stock report.
const LowStockReportThreshold = 10

// Part represents a stocked replacement part.
type Part struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	StockQuantity int       `json:"stock_quantity"`
	UnitPrice     float64   `json:"unit_price"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// IsBelowCriticalStock reports whether the part sits below the advisory
// alert threshold.
func (p *Part) IsBelowCriticalStock() bool {
	return p.StockQuantity < CriticalStockThreshold
}

// StockAlert is an advisory record written when a part's stock crosses below
// the critical threshold. Alerts never block the update that caused them.
type StockAlert struct {
	ID            uuid.UUID `json:"id"`
	PartID        uuid.UUID `json:"part_id"`
	StockQuantity int       `json:"stock_quantity"`
	Threshold     int       `json:"threshold"`
	Acknowledged  bool      `json:"acknowledged"`
	CreatedAt     time.Time `json:"created_at"`
}
