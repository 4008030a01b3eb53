//go:build integration

package repositories

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/aquaflow-inc/aquaflow-engine/pkg/database"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/models"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/testhelpers"
)

// storeCtx returns a context scoped to the shared test database pool.
// The database is shared across the test run, so every test seeds its own
// rows and asserts only on them.
func storeCtx(t *testing.T) (context.Context, *testhelpers.StoreDB) {
	t.Helper()
	db := testhelpers.GetStoreDB(t)
	return database.SetScope(context.Background(), db.DB.NewScope()), db
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func seedPart(t *testing.T, ctx context.Context, stock int, price float64) *models.Part {
	t.Helper()
	part := &models.Part{
		Name:          fmt.Sprintf("filter-%s", uuid.NewString()[:8]),
		StockQuantity: stock,
		UnitPrice:     price,
	}
	require.NoError(t, NewPartRepository().Create(ctx, part))
	return part
}

func seedCustomer(t *testing.T, ctx context.Context) *models.Customer {
	t.Helper()
	customer := &models.Customer{
		Name:        fmt.Sprintf("customer-%s", uuid.NewString()[:8]),
		Address:     "12 Canal Street",
		InstalledAt: day(2024, time.March, 1),
	}
	require.NoError(t, NewCustomerRepository().Create(ctx, customer))
	return customer
}

func seedEmployee(t *testing.T, ctx context.Context) *models.Employee {
	t.Helper()
	employee := &models.Employee{
		Name:         fmt.Sprintf("tech-%s", uuid.NewString()[:8]),
		MobileNumber: fmt.Sprintf("07%s", uuid.NewString()[:9]),
	}
	require.NoError(t, NewEmployeeRepository().Create(ctx, employee))
	return employee
}

func seedMaintenance(t *testing.T, ctx context.Context, customerID uuid.UUID, recent, upcoming time.Time) *models.MaintenanceRecord {
	t.Helper()
	record := &models.MaintenanceRecord{
		CustomerID:   customerID,
		RecentDate:   recent,
		UpcomingDate: upcoming,
		Comment:      "routine filter service",
	}
	require.NoError(t, NewMaintenanceRepository().Create(ctx, record))
	return record
}
