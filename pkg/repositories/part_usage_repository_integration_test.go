//go:build integration

package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquaflow-inc/aquaflow-engine/pkg/apperrors"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/models"
)

func TestPartUsageCreate_DecrementsStock(t *testing.T) {
	ctx, _ := storeCtx(t)

	part := seedPart(t, ctx, 50, 25.00)
	customer := seedCustomer(t, ctx)
	visit := seedMaintenance(t, ctx, customer.ID, day(2026, time.May, 1), day(2026, time.November, 1))

	usage := &models.PartUsage{
		MaintenanceID: visit.ID,
		PartID:        part.ID,
		PartName:      part.Name,
		Quantity:      2,
		Cost:          part.UnitPrice,
	}
	require.NoError(t, NewPartUsageRepository().Create(ctx, usage))
	assert.NotEqual(t, uuid.Nil, usage.ID)
	assert.False(t, usage.CreatedAt.IsZero())

	got, err := NewPartRepository().GetByID(ctx, part.ID)
	require.NoError(t, err)
	assert.Equal(t, 48, got.StockQuantity)
}

func TestPartUsageCreate_RejectsOversell(t *testing.T) {
	ctx, _ := storeCtx(t)

	part := seedPart(t, ctx, 3, 10.00)
	customer := seedCustomer(t, ctx)
	visit := seedMaintenance(t, ctx, customer.ID, day(2026, time.May, 1), day(2026, time.November, 1))

	err := NewPartUsageRepository().Create(ctx, &models.PartUsage{
		MaintenanceID: visit.ID,
		PartID:        part.ID,
		PartName:      part.Name,
		Quantity:      10,
		Cost:          part.UnitPrice,
	})
	require.ErrorIs(t, err, apperrors.ErrInsufficientStock)

	// Usage row and decrement abort together: stock untouched, no history.
	got, err := NewPartRepository().GetByID(ctx, part.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.StockQuantity)

	usages, err := NewPartUsageRepository().ListByMaintenance(ctx, visit.ID)
	require.NoError(t, err)
	assert.Empty(t, usages)
}

func TestPartUsageCreateBatch_MultipleParts(t *testing.T) {
	ctx, _ := storeCtx(t)

	sediment := seedPart(t, ctx, 20, 15.50)
	membrane := seedPart(t, ctx, 8, 89.00)
	customer := seedCustomer(t, ctx)
	visit := seedMaintenance(t, ctx, customer.ID, day(2026, time.June, 10), day(2026, time.December, 10))

	usages := []*models.PartUsage{
		{MaintenanceID: visit.ID, PartID: sediment.ID, PartName: sediment.Name, Quantity: 3, Cost: sediment.UnitPrice},
		{MaintenanceID: visit.ID, PartID: membrane.ID, PartName: membrane.Name, Quantity: 1, Cost: membrane.UnitPrice},
	}
	require.NoError(t, NewPartUsageRepository().CreateBatch(ctx, usages))

	for _, u := range usages {
		assert.NotEqual(t, uuid.Nil, u.ID)
		assert.False(t, u.CreatedAt.IsZero())
	}

	listed, err := NewPartUsageRepository().ListByMaintenance(ctx, visit.ID)
	require.NoError(t, err)
	require.Len(t, listed, 2)

	gotSediment, err := NewPartRepository().GetByID(ctx, sediment.ID)
	require.NoError(t, err)
	assert.Equal(t, 17, gotSediment.StockQuantity)

	gotMembrane, err := NewPartRepository().GetByID(ctx, membrane.ID)
	require.NoError(t, err)
	assert.Equal(t, 7, gotMembrane.StockQuantity)
}

func TestPartUsageCreateBatch_AtomicAcrossRows(t *testing.T) {
	ctx, _ := storeCtx(t)

	plenty := seedPart(t, ctx, 30, 5.00)
	scarce := seedPart(t, ctx, 2, 40.00)
	customer := seedCustomer(t, ctx)
	visit := seedMaintenance(t, ctx, customer.ID, day(2026, time.June, 10), day(2026, time.December, 10))

	err := NewPartUsageRepository().CreateBatch(ctx, []*models.PartUsage{
		{MaintenanceID: visit.ID, PartID: plenty.ID, PartName: plenty.Name, Quantity: 4, Cost: plenty.UnitPrice},
		{MaintenanceID: visit.ID, PartID: scarce.ID, PartName: scarce.Name, Quantity: 5, Cost: scarce.UnitPrice},
	})
	require.ErrorIs(t, err, apperrors.ErrInsufficientStock)

	// The first row's decrement must not survive the second row's failure.
	gotPlenty, err := NewPartRepository().GetByID(ctx, plenty.ID)
	require.NoError(t, err)
	assert.Equal(t, 30, gotPlenty.StockQuantity)

	listed, err := NewPartUsageRepository().ListByMaintenance(ctx, visit.ID)
	require.NoError(t, err)
	assert.Empty(t, listed)
}

func TestLowStockAlert_RecordedOnCrossing(t *testing.T) {
	ctx, _ := storeCtx(t)

	part := seedPart(t, ctx, 6, 12.00)
	customer := seedCustomer(t, ctx)
	visit := seedMaintenance(t, ctx, customer.ID, day(2026, time.July, 1), day(2027, time.January, 1))

	require.NoError(t, NewPartUsageRepository().Create(ctx, &models.PartUsage{
		MaintenanceID: visit.ID,
		PartID:        part.ID,
		PartName:      part.Name,
		Quantity:      2,
		Cost:          part.UnitPrice,
	}))

	alerts := openAlertsForPart(t, ctx, part.ID)
	require.Len(t, alerts, 1)
	assert.Equal(t, 4, alerts[0].StockQuantity)
	assert.Equal(t, models.CriticalStockThreshold, alerts[0].Threshold)
	assert.False(t, alerts[0].Acknowledged)

	// Stock stays mutable below the threshold; no second alert without a
	// fresh crossing.
	require.NoError(t, NewPartUsageRepository().Create(ctx, &models.PartUsage{
		MaintenanceID: visit.ID,
		PartID:        part.ID,
		PartName:      part.Name,
		Quantity:      1,
		Cost:          part.UnitPrice,
	}))

	got, err := NewPartRepository().GetByID(ctx, part.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, got.StockQuantity)
	assert.Len(t, openAlertsForPart(t, ctx, part.ID), 1)
}

func TestLowStockAlert_RecordedAgainAfterRestock(t *testing.T) {
	ctx, _ := storeCtx(t)

	part := seedPart(t, ctx, 5, 12.00)
	parts := NewPartRepository()

	// 5 -> 4 crosses the threshold.
	_, err := parts.AdjustStock(ctx, part.ID, -1)
	require.NoError(t, err)
	require.Len(t, openAlertsForPart(t, ctx, part.ID), 1)

	// Restock above the threshold, then cross again.
	_, err = parts.AdjustStock(ctx, part.ID, 10)
	require.NoError(t, err)
	_, err = parts.AdjustStock(ctx, part.ID, -12)
	require.NoError(t, err)

	assert.Len(t, openAlertsForPart(t, ctx, part.ID), 2)
}

func openAlertsForPart(t *testing.T, ctx context.Context, partID uuid.UUID) []*models.StockAlert {
	t.Helper()
	all, err := NewStockAlertRepository().ListOpen(ctx)
	require.NoError(t, err)
	var mine []*models.StockAlert
	for _, a := range all {
		if a.PartID == partID {
			mine = append(mine, a)
		}
	}
	return mine
}
