package services

import (
	"context"
	"time"

	"github.com/aquaflow-inc/aquaflow-engine/pkg/models"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/repositories"
)

// ReportService runs the canned read-only reports. Each report is independent
// and has no write side effects.
type ReportService interface {
	// LowStockParts lists parts below the standard reorder threshold.
	LowStockParts(ctx context.Context) ([]*models.Part, error)
	TotalInventoryValue(ctx context.Context) (float64, error)
	PartUsageTotals(ctx context.Context) ([]*models.PartUsageTotal, error)
	MostUsedParts(ctx context.Context, limit int) ([]*models.PartUsageTotal, error)
	// UpcomingMaintenanceForCustomer lists visits scheduled from today on for
	// customers with the given name.
	UpcomingMaintenanceForCustomer(ctx context.Context, customerName string) ([]*models.UpcomingVisit, error)
}

type reportDeps struct {
	scopes     ScopeProvider
	reportRepo repositories.ReportRepository
	now        func() time.Time
}

type reportService struct {
	deps reportDeps
}

// NewReportService creates a new ReportService.
func NewReportService(scopes ScopeProvider, reportRepo repositories.ReportRepository) ReportService {
	return &reportService{
		deps: reportDeps{
			scopes:     scopes,
			reportRepo: reportRepo,
			now:        time.Now,
		},
	}
}

var _ ReportService = (*reportService)(nil)

func (s *reportService) LowStockParts(ctx context.Context) ([]*models.Part, error) {
	return s.deps.reportRepo.LowStockParts(s.deps.scopes.WithScope(ctx), models.LowStockReportThreshold)
}

func (s *reportService) TotalInventoryValue(ctx context.Context) (float64, error) {
	return s.deps.reportRepo.TotalInventoryValue(s.deps.scopes.WithScope(ctx))
}

func (s *reportService) PartUsageTotals(ctx context.Context) ([]*models.PartUsageTotal, error) {
	return s.deps.reportRepo.PartUsageTotals(s.deps.scopes.WithScope(ctx))
}

func (s *reportService) MostUsedParts(ctx context.Context, limit int) ([]*models.PartUsageTotal, error) {
	return s.deps.reportRepo.MostUsedParts(s.deps.scopes.WithScope(ctx), limit)
}

func (s *reportService) UpcomingMaintenanceForCustomer(ctx context.Context, customerName string) ([]*models.UpcomingVisit, error) {
	return s.deps.reportRepo.UpcomingMaintenanceForCustomer(s.deps.scopes.WithScope(ctx), customerName, s.deps.now())
}
