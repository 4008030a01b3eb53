package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aquaflow-inc/aquaflow-engine/pkg/apperrors"
)

func day(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestMaintenanceRecord_ValidateDates(t *testing.T) {
	rec := &MaintenanceRecord{RecentDate: day("2026-03-01"), UpcomingDate: day("2026-06-01")}
	assert.NoError(t, rec.ValidateDates())
}

func TestMaintenanceRecord_ValidateDates_Equal(t *testing.T) {
	rec := &MaintenanceRecord{RecentDate: day("2026-03-01"), UpcomingDate: day("2026-03-01")}
	assert.ErrorIs(t, rec.ValidateDates(), apperrors.ErrInvalidDateRange)
}

func TestMaintenanceRecord_ValidateDates_Reversed(t *testing.T) {
	rec := &MaintenanceRecord{RecentDate: day("2026-06-01"), UpcomingDate: day("2026-03-01")}
	assert.ErrorIs(t, rec.ValidateDates(), apperrors.ErrInvalidDateRange)
}

func TestPartUsage_LineTotal(t *testing.T) {
	u := &PartUsage{Quantity: 3, Cost: 12.5}
	assert.InDelta(t, 37.5, u.LineTotal(), 1e-9)
}

func TestPart_IsBelowCriticalStock(t *testing.T) {
	assert.False(t, (&Part{StockQuantity: 5}).IsBelowCriticalStock())
	assert.True(t, (&Part{StockQuantity: 4}).IsBelowCriticalStock())
}
