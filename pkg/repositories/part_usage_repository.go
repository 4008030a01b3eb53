package repositories

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/aquaflow-inc/aquaflow-engine/pkg/apperrors"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/database"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/models"
)

// PartUsageRepository provides data access for part consumption rows.
//
// Inserting a usage row fires the stock-decrement trigger; callers that want
// the usage and the decrement to be atomic with other work must run inside a
// transactional scope. An insert whose decrement would take stock negative
// fails as a whole: no usage row, no stock change.
type PartUsageRepository interface {
	Create(ctx context.Context, usage *models.PartUsage) error
	// CreateBatch inserts all rows in one multi-row statement. The decrement
	// trigger runs per row; any failing row aborts every row.
	CreateBatch(ctx context.Context, usages []*models.PartUsage) error
	ListByMaintenance(ctx context.Context, maintenanceID uuid.UUID) ([]*models.PartUsage, error)
}

type partUsageRepository struct{}

// NewPartUsageRepository creates a new PartUsageRepository.
func NewPartUsageRepository() PartUsageRepository {
	return &partUsageRepository{}
}

var _ PartUsageRepository = (*partUsageRepository)(nil)

func (r *partUsageRepository) Create(ctx context.Context, usage *models.PartUsage) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no database scope in context")
	}

	query := `
		INSERT INTO part_usages (maintenance_id, part_id, part_name, quantity, cost)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := scope.Conn.QueryRow(ctx, query,
		usage.MaintenanceID,
		usage.PartID,
		usage.PartName,
		usage.Quantity,
		usage.Cost,
	).Scan(&usage.ID, &usage.CreatedAt)
	if err != nil {
		if mapped := apperrors.FromPostgres(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to create part usage: %w", err)
	}

	return nil
}

func (r *partUsageRepository) CreateBatch(ctx context.Context, usages []*models.PartUsage) error {
	if len(usages) == 0 {
		return nil
	}

	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no database scope in context")
	}

	var sb strings.Builder
	sb.WriteString(`INSERT INTO part_usages (maintenance_id, part_id, part_name, quantity, cost) VALUES `)
	args := make([]any, 0, len(usages)*5)
	for i, u := range usages {
		if i > 0 {
			sb.WriteString(", ")
		}
		base := i * 5
		fmt.Fprintf(&sb, "($%d, $%d, $%d, $%d, $%d)", base+1, base+2, base+3, base+4, base+5)
		args = append(args, u.MaintenanceID, u.PartID, u.PartName, u.Quantity, u.Cost)
	}
	sb.WriteString(" RETURNING id, created_at")

	rows, err := scope.Conn.Query(ctx, sb.String(), args...)
	if err != nil {
		if mapped := apperrors.FromPostgres(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to create part usages: %w", err)
	}
	defer rows.Close()

	// RETURNING yields rows in insertion order.
	i := 0
	for rows.Next() {
		if err := rows.Scan(&usages[i].ID, &usages[i].CreatedAt); err != nil {
			return fmt.Errorf("failed to scan part usage id: %w", err)
		}
		i++
	}

	if err := rows.Err(); err != nil {
		if mapped := apperrors.FromPostgres(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to create part usages: %w", err)
	}

	return nil
}

func (r *partUsageRepository) ListByMaintenance(ctx context.Context, maintenanceID uuid.UUID) ([]*models.PartUsage, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT id, maintenance_id, part_id, part_name, quantity, cost, created_at
		FROM part_usages
		WHERE maintenance_id = $1
		ORDER BY created_at`

	rows, err := scope.Conn.Query(ctx, query, maintenanceID)
	if err != nil {
		return nil, fmt.Errorf("failed to query part usages: %w", err)
	}
	defer rows.Close()

	var usages []*models.PartUsage
	for rows.Next() {
		var u models.PartUsage
		err := rows.Scan(&u.ID, &u.MaintenanceID, &u.PartID, &u.PartName, &u.Quantity, &u.Cost, &u.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to scan part usage: %w", err)
		}
		usages = append(usages, &u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating part usages: %w", err)
	}

	return usages, nil
}
