package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aquaflow-inc/aquaflow-engine/pkg/apperrors"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/models"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/repositories"
)

// UsageItem names one part and the quantity consumed during a visit.
type UsageItem struct {
	PartID   uuid.UUID
	Quantity int
}

// InventoryService manages the parts catalog and records part consumption.
type InventoryService interface {
	AddPart(ctx context.Context, name string, stockQuantity int, unitPrice float64) (*models.Part, error)
	GetPart(ctx context.Context, partID uuid.UUID) (*models.Part, error)
	ListParts(ctx context.Context) ([]*models.Part, error)
	UpdatePrice(ctx context.Context, partID uuid.UUID, unitPrice float64) error
	// AdjustStock changes a part's stock by delta. It fails with
	// ErrInsufficientStock when the result would be negative. Any advisory
	// alert the change produced is surfaced through the notifier after
	// commit.
	AdjustStock(ctx context.Context, partID uuid.UUID, delta int) (*models.Part, error)
	DeletePart(ctx context.Context, partID uuid.UUID) error

	// RecordPartUsage records the parts consumed by one maintenance visit.
	// The usage rows and the stock decrements commit or roll back as a unit:
	// a quantity exceeding current stock fails the whole call with
	// ErrInsufficientStock and leaves nothing behind. The unit cost charged
	// and the part name are captured from the catalog at call time.
	RecordPartUsage(ctx context.Context, maintenanceID uuid.UUID, items []UsageItem) ([]*models.PartUsage, error)

	ListUsage(ctx context.Context, maintenanceID uuid.UUID) ([]*models.PartUsage, error)
}

type inventoryDeps struct {
	scopes    ScopeProvider
	partRepo  repositories.PartRepository
	usageRepo repositories.PartUsageRepository
	alertRepo repositories.StockAlertRepository
	notifier  StockNotifier
	logger    *zap.Logger
}

type inventoryService struct {
	deps inventoryDeps
}

// NewInventoryService creates a new InventoryService.
func NewInventoryService(
	scopes ScopeProvider,
	partRepo repositories.PartRepository,
	usageRepo repositories.PartUsageRepository,
	alertRepo repositories.StockAlertRepository,
	notifier StockNotifier,
	logger *zap.Logger,
) InventoryService {
	return &inventoryService{
		deps: inventoryDeps{
			scopes:    scopes,
			partRepo:  partRepo,
			usageRepo: usageRepo,
			alertRepo: alertRepo,
			notifier:  notifier,
			logger:    logger.Named("inventory"),
		},
	}
}

var _ InventoryService = (*inventoryService)(nil)

func (s *inventoryService) AddPart(ctx context.Context, name string, stockQuantity int, unitPrice float64) (*models.Part, error) {
	part := &models.Part{
		Name:          name,
		StockQuantity: stockQuantity,
		UnitPrice:     unitPrice,
	}

	if err := s.deps.partRepo.Create(s.deps.scopes.WithScope(ctx), part); err != nil {
		return nil, fmt.Errorf("add part: %w", err)
	}

	return part, nil
}

func (s *inventoryService) GetPart(ctx context.Context, partID uuid.UUID) (*models.Part, error) {
	return s.deps.partRepo.GetByID(s.deps.scopes.WithScope(ctx), partID)
}

func (s *inventoryService) ListParts(ctx context.Context) ([]*models.Part, error) {
	return s.deps.partRepo.List(s.deps.scopes.WithScope(ctx))
}

func (s *inventoryService) UpdatePrice(ctx context.Context, partID uuid.UUID, unitPrice float64) error {
	return s.deps.partRepo.UpdatePrice(s.deps.scopes.WithScope(ctx), partID, unitPrice)
}

func (s *inventoryService) AdjustStock(ctx context.Context, partID uuid.UUID, delta int) (*models.Part, error) {
	var part *models.Part
	var alerts []*models.StockAlert

	err := s.deps.scopes.InTransaction(ctx, func(ctx context.Context) error {
		var err error
		part, err = s.deps.partRepo.AdjustStock(ctx, partID, delta)
		if err != nil {
			return err
		}
		alerts, err = s.deps.alertRepo.ListCreatedInCurrentTx(ctx)
		if err != nil {
			return fmt.Errorf("list stock alerts: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.notifyAll(alerts)
	return part, nil
}

func (s *inventoryService) DeletePart(ctx context.Context, partID uuid.UUID) error {
	return s.deps.partRepo.Delete(s.deps.scopes.WithScope(ctx), partID)
}

func (s *inventoryService) RecordPartUsage(ctx context.Context, maintenanceID uuid.UUID, items []UsageItem) ([]*models.PartUsage, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("record part usage: no items")
	}
	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, fmt.Errorf("%w: quantity must be positive", apperrors.ErrCheckViolation)
		}
	}

	var usages []*models.PartUsage
	var alerts []*models.StockAlert

	err := s.deps.scopes.InTransaction(ctx, func(ctx context.Context) error {
		usages = make([]*models.PartUsage, 0, len(items))
		for _, item := range items {
			part, err := s.deps.partRepo.GetByID(ctx, item.PartID)
			if err != nil {
				return fmt.Errorf("resolve part %s: %w", item.PartID, err)
			}
			usages = append(usages, &models.PartUsage{
				MaintenanceID: maintenanceID,
				PartID:        part.ID,
				PartName:      part.Name,
				Quantity:      item.Quantity,
				Cost:          part.UnitPrice,
			})
		}

		if err := s.deps.usageRepo.CreateBatch(ctx, usages); err != nil {
			return err
		}

		// The decrement trigger has already run; pick up any advisory
		// alerts it produced so they can be surfaced after commit.
		var err error
		alerts, err = s.deps.alertRepo.ListCreatedInCurrentTx(ctx)
		if err != nil {
			return fmt.Errorf("list stock alerts: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.deps.logger.Info("Part usage recorded",
		zap.String("maintenance_id", maintenanceID.String()),
		zap.Int("items", len(usages)),
	)
	s.notifyAll(alerts)

	return usages, nil
}

func (s *inventoryService) ListUsage(ctx context.Context, maintenanceID uuid.UUID) ([]*models.PartUsage, error) {
	return s.deps.usageRepo.ListByMaintenance(s.deps.scopes.WithScope(ctx), maintenanceID)
}

func (s *inventoryService) notifyAll(alerts []*models.StockAlert) {
	for _, alert := range alerts {
		s.deps.notifier.NotifyLowStock(alert)
	}
}
