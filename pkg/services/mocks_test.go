package services

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/aquaflow-inc/aquaflow-engine/pkg/apperrors"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/models"
)

// mockScopeProvider passes contexts through unchanged; repository mocks never
// look at the scope.
type mockScopeProvider struct {
	txCount int
	txErr   error
}

func (m *mockScopeProvider) WithScope(ctx context.Context) context.Context { return ctx }

func (m *mockScopeProvider) InTransaction(ctx context.Context, fn func(context.Context) error) error {
	m.txCount++
	if m.txErr != nil {
		return m.txErr
	}
	return fn(ctx)
}

// mockMaintenanceRepo implements repositories.MaintenanceRepository.
type mockMaintenanceRepo struct {
	created   []*models.MaintenanceRecord
	createErr error

	record *models.MaintenanceRecord
	avg    *float64
	roster []*models.CustomerSummary

	lastMonthRef time.Time
}

func (m *mockMaintenanceRepo) Create(_ context.Context, record *models.MaintenanceRecord) error {
	if m.createErr != nil {
		return m.createErr
	}
	record.ID = uuid.New()
	record.CreatedAt = time.Now()
	m.created = append(m.created, record)
	return nil
}

func (m *mockMaintenanceRepo) GetByID(_ context.Context, _ uuid.UUID) (*models.MaintenanceRecord, error) {
	return m.record, nil
}

func (m *mockMaintenanceRepo) ListByCustomer(_ context.Context, _ uuid.UUID) ([]*models.MaintenanceRecord, error) {
	return m.created, nil
}

func (m *mockMaintenanceRepo) AverageCostByCustomer(_ context.Context, _ uuid.UUID) (*float64, error) {
	return m.avg, nil
}

func (m *mockMaintenanceRepo) CustomersWithMaintenanceInMonth(_ context.Context, ref time.Time) ([]*models.CustomerSummary, error) {
	m.lastMonthRef = ref
	return m.roster, nil
}

// mockPartRepo implements repositories.PartRepository backed by a map.
type mockPartRepo struct {
	parts map[uuid.UUID]*models.Part

	getErr    error
	adjustErr error

	lastDelta int
}

func (m *mockPartRepo) Create(_ context.Context, part *models.Part) error {
	part.ID = uuid.New()
	if m.parts == nil {
		m.parts = make(map[uuid.UUID]*models.Part)
	}
	m.parts[part.ID] = part
	return nil
}

func (m *mockPartRepo) GetByID(_ context.Context, partID uuid.UUID) (*models.Part, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	part, ok := m.parts[partID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return part, nil
}

func (m *mockPartRepo) List(_ context.Context) ([]*models.Part, error) {
	var parts []*models.Part
	for _, p := range m.parts {
		parts = append(parts, p)
	}
	return parts, nil
}

func (m *mockPartRepo) UpdatePrice(_ context.Context, _ uuid.UUID, _ float64) error { return nil }

func (m *mockPartRepo) AdjustStock(_ context.Context, partID uuid.UUID, delta int) (*models.Part, error) {
	if m.adjustErr != nil {
		return nil, m.adjustErr
	}
	m.lastDelta = delta
	part := m.parts[partID]
	part.StockQuantity += delta
	return part, nil
}

func (m *mockPartRepo) Delete(_ context.Context, _ uuid.UUID) error { return nil }

// mockUsageRepo implements repositories.PartUsageRepository.
type mockUsageRepo struct {
	batches  [][]*models.PartUsage
	batchErr error
}

func (m *mockUsageRepo) Create(_ context.Context, usage *models.PartUsage) error {
	return m.CreateBatch(nil, []*models.PartUsage{usage})
}

func (m *mockUsageRepo) CreateBatch(_ context.Context, usages []*models.PartUsage) error {
	if m.batchErr != nil {
		return m.batchErr
	}
	for _, u := range usages {
		u.ID = uuid.New()
	}
	m.batches = append(m.batches, usages)
	return nil
}

func (m *mockUsageRepo) ListByMaintenance(_ context.Context, _ uuid.UUID) ([]*models.PartUsage, error) {
	if len(m.batches) == 0 {
		return nil, nil
	}
	return m.batches[len(m.batches)-1], nil
}

// mockAlertRepo implements repositories.StockAlertRepository.
type mockAlertRepo struct {
	open    []*models.StockAlert
	inTx    []*models.StockAlert
	ackIDs  []uuid.UUID
	listErr error
	ackErr  error
}

func (m *mockAlertRepo) ListOpen(_ context.Context) ([]*models.StockAlert, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.open, nil
}

func (m *mockAlertRepo) ListCreatedInCurrentTx(_ context.Context) ([]*models.StockAlert, error) {
	if m.listErr != nil {
		return nil, m.listErr
	}
	return m.inTx, nil
}

func (m *mockAlertRepo) Acknowledge(_ context.Context, alertID uuid.UUID) error {
	if m.ackErr != nil {
		return m.ackErr
	}
	m.ackIDs = append(m.ackIDs, alertID)
	return nil
}

// mockNotifier records the alerts it was handed.
type mockNotifier struct {
	notified []*models.StockAlert
}

func (m *mockNotifier) NotifyLowStock(alert *models.StockAlert) {
	m.notified = append(m.notified, alert)
}

// mockReportRepo implements repositories.ReportRepository, capturing args.
type mockReportRepo struct {
	lowStock      []*models.Part
	lastThreshold int

	totals    []*models.PartUsageTotal
	lastLimit int

	visits   []*models.UpcomingVisit
	lastName string
	lastFrom time.Time
}

func (m *mockReportRepo) LowStockParts(_ context.Context, threshold int) ([]*models.Part, error) {
	m.lastThreshold = threshold
	return m.lowStock, nil
}

func (m *mockReportRepo) TotalInventoryValue(_ context.Context) (float64, error) {
	return 0, nil
}

func (m *mockReportRepo) PartUsageTotals(_ context.Context) ([]*models.PartUsageTotal, error) {
	return m.totals, nil
}

func (m *mockReportRepo) MostUsedParts(_ context.Context, limit int) ([]*models.PartUsageTotal, error) {
	m.lastLimit = limit
	return m.totals, nil
}

func (m *mockReportRepo) UpcomingMaintenanceForCustomer(_ context.Context, customerName string, from time.Time) ([]*models.UpcomingVisit, error) {
	m.lastName = customerName
	m.lastFrom = from
	return m.visits, nil
}
