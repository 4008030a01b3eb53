//go:build integration

package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aquaflow-inc/aquaflow-engine/pkg/apperrors"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/database"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/models"
)

func TestStockAlertListCreatedInCurrentTx(t *testing.T) {
	ctx, db := storeCtx(t)

	part := seedPart(t, ctx, 6, 12.00)
	customer := seedCustomer(t, ctx)
	visit := seedMaintenance(t, ctx, customer.ID, day(2026, time.July, 1), day(2027, time.January, 1))

	txScope, err := db.DB.BeginScope(context.Background())
	require.NoError(t, err)
	defer txScope.Rollback(context.Background())
	txCtx := database.SetScope(context.Background(), &txScope.Scope)

	require.NoError(t, NewPartUsageRepository().Create(txCtx, &models.PartUsage{
		MaintenanceID: visit.ID,
		PartID:        part.ID,
		PartName:      part.Name,
		Quantity:      3,
		Cost:          part.UnitPrice,
	}))

	// Alerts written by this transaction's triggers are visible before
	// commit; alerts from earlier transactions are not reported here.
	alerts, err := NewStockAlertRepository().ListCreatedInCurrentTx(txCtx)
	require.NoError(t, err)
	require.Len(t, alerts, 1)
	assert.Equal(t, part.ID, alerts[0].PartID)
	assert.Equal(t, 3, alerts[0].StockQuantity)

	require.NoError(t, txScope.Commit(context.Background()))

	assert.Len(t, openAlertsForPart(t, ctx, part.ID), 1)
}

func TestStockAlertAcknowledge(t *testing.T) {
	ctx, _ := storeCtx(t)

	part := seedPart(t, ctx, 5, 12.00)
	_, err := NewPartRepository().AdjustStock(ctx, part.ID, -1)
	require.NoError(t, err)

	alerts := openAlertsForPart(t, ctx, part.ID)
	require.Len(t, alerts, 1)

	repo := NewStockAlertRepository()
	require.NoError(t, repo.Acknowledge(ctx, alerts[0].ID))
	assert.Empty(t, openAlertsForPart(t, ctx, part.ID))

	// Acknowledging twice reports the alert as gone.
	err = repo.Acknowledge(ctx, alerts[0].ID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
