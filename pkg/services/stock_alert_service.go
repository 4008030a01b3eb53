package services

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aquaflow-inc/aquaflow-engine/pkg/models"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/repositories"
)

// StockAlertService exposes the advisory low-stock alerts for review.
type StockAlertService interface {
	OpenAlerts(ctx context.Context) ([]*models.StockAlert, error)
	Acknowledge(ctx context.Context, alertID uuid.UUID) error
}

type stockAlertDeps struct {
	scopes    ScopeProvider
	alertRepo repositories.StockAlertRepository
	logger    *zap.Logger
}

type stockAlertService struct {
	deps stockAlertDeps
}

// NewStockAlertService creates a new StockAlertService.
func NewStockAlertService(
	scopes ScopeProvider,
	alertRepo repositories.StockAlertRepository,
	logger *zap.Logger,
) StockAlertService {
	return &stockAlertService{
		deps: stockAlertDeps{
			scopes:    scopes,
			alertRepo: alertRepo,
			logger:    logger.Named("stock-alerts"),
		},
	}
}

var _ StockAlertService = (*stockAlertService)(nil)

func (s *stockAlertService) OpenAlerts(ctx context.Context) ([]*models.StockAlert, error) {
	return s.deps.alertRepo.ListOpen(s.deps.scopes.WithScope(ctx))
}

func (s *stockAlertService) Acknowledge(ctx context.Context, alertID uuid.UUID) error {
	if err := s.deps.alertRepo.Acknowledge(s.deps.scopes.WithScope(ctx), alertID); err != nil {
		return err
	}

	s.deps.logger.Info("Stock alert acknowledged", zap.String("alert_id", alertID.String()))
	return nil
}
