package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aquaflow-inc/aquaflow-engine/pkg/models"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/repositories"
)

// AddMaintenanceRequest carries the inputs of the add-maintenance operation.
// EmployeeID is nil when no technician is recorded for the visit.
type AddMaintenanceRequest struct {
	CustomerID   uuid.UUID
	EmployeeID   *uuid.UUID
	RecentDate   time.Time
	UpcomingDate time.Time
	Comment      string
}

// MaintenanceService is the write entry point for maintenance visits and the
// derived reads computed over them.
type MaintenanceService interface {
	// AddMaintenance creates exactly one visit record. It fails with
	// ErrInvalidDateRange when the upcoming date is not strictly after the
	// recent date, and ErrInvalidReference when the customer or technician
	// does not exist. Nothing is written on failure.
	AddMaintenance(ctx context.Context, req AddMaintenanceRequest) (*models.MaintenanceRecord, error)
	GetRecord(ctx context.Context, maintenanceID uuid.UUID) (*models.MaintenanceRecord, error)
	HistoryForCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.MaintenanceRecord, error)
	// AverageCost returns nil when the customer has no part-usage rows:
	// an average over nothing is no data, not zero.
	AverageCost(ctx context.Context, customerID uuid.UUID) (*float64, error)
	// CustomersWithMaintenanceThisMonth evaluates the roster against the
	// service clock's current calendar month.
	CustomersWithMaintenanceThisMonth(ctx context.Context) ([]*models.CustomerSummary, error)
	// CustomersWithMaintenanceInMonth evaluates against an explicit
	// reference date.
	CustomersWithMaintenanceInMonth(ctx context.Context, ref time.Time) ([]*models.CustomerSummary, error)
}

type maintenanceDeps struct {
	scopes          ScopeProvider
	maintenanceRepo repositories.MaintenanceRepository
	logger          *zap.Logger
	now             func() time.Time
}

type maintenanceService struct {
	deps maintenanceDeps
}

// NewMaintenanceService creates a new MaintenanceService.
func NewMaintenanceService(
	scopes ScopeProvider,
	maintenanceRepo repositories.MaintenanceRepository,
	logger *zap.Logger,
) MaintenanceService {
	return &maintenanceService{
		deps: maintenanceDeps{
			scopes:          scopes,
			maintenanceRepo: maintenanceRepo,
			logger:          logger.Named("maintenance"),
			now:             time.Now,
		},
	}
}

var _ MaintenanceService = (*maintenanceService)(nil)

func (s *maintenanceService) AddMaintenance(ctx context.Context, req AddMaintenanceRequest) (*models.MaintenanceRecord, error) {
	record := &models.MaintenanceRecord{
		CustomerID:   req.CustomerID,
		PerformedBy:  req.EmployeeID,
		RecentDate:   req.RecentDate,
		UpcomingDate: req.UpcomingDate,
		Comment:      req.Comment,
	}

	// The schema enforces the ordering too; checking first avoids an insert
	// that is known to fail.
	if err := record.ValidateDates(); err != nil {
		return nil, err
	}

	if err := s.deps.maintenanceRepo.Create(s.deps.scopes.WithScope(ctx), record); err != nil {
		return nil, fmt.Errorf("add maintenance: %w", err)
	}

	s.deps.logger.Info("Maintenance recorded",
		zap.String("maintenance_id", record.ID.String()),
		zap.String("customer_id", record.CustomerID.String()),
		zap.Time("upcoming_date", record.UpcomingDate),
	)

	return record, nil
}

func (s *maintenanceService) GetRecord(ctx context.Context, maintenanceID uuid.UUID) (*models.MaintenanceRecord, error) {
	return s.deps.maintenanceRepo.GetByID(s.deps.scopes.WithScope(ctx), maintenanceID)
}

func (s *maintenanceService) HistoryForCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.MaintenanceRecord, error) {
	return s.deps.maintenanceRepo.ListByCustomer(s.deps.scopes.WithScope(ctx), customerID)
}

func (s *maintenanceService) AverageCost(ctx context.Context, customerID uuid.UUID) (*float64, error) {
	return s.deps.maintenanceRepo.AverageCostByCustomer(s.deps.scopes.WithScope(ctx), customerID)
}

func (s *maintenanceService) CustomersWithMaintenanceThisMonth(ctx context.Context) ([]*models.CustomerSummary, error) {
	return s.CustomersWithMaintenanceInMonth(ctx, s.deps.now())
}

func (s *maintenanceService) CustomersWithMaintenanceInMonth(ctx context.Context, ref time.Time) ([]*models.CustomerSummary, error) {
	return s.deps.maintenanceRepo.CustomersWithMaintenanceInMonth(s.deps.scopes.WithScope(ctx), ref)
}
