package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aquaflow-inc/aquaflow-engine/pkg/apperrors"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/database"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/models"
)

// StockAlertRepository provides data access for advisory low-stock alerts.
// Alert rows are written by the low-stock trigger; this repository only reads
// and acknowledges them.
type StockAlertRepository interface {
	ListOpen(ctx context.Context) ([]*models.StockAlert, error)
	// ListCreatedInCurrentTx returns unacknowledged alerts written by
	// triggers earlier in the calling transaction. Postgres now() is pinned
	// at transaction start and alert rows default created_at to now(), so
	// this transaction's alerts are those with created_at >= now().
	ListCreatedInCurrentTx(ctx context.Context) ([]*models.StockAlert, error)
	Acknowledge(ctx context.Context, alertID uuid.UUID) error
}

type stockAlertRepository struct{}

// NewStockAlertRepository creates a new StockAlertRepository.
func NewStockAlertRepository() StockAlertRepository {
	return &stockAlertRepository{}
}

var _ StockAlertRepository = (*stockAlertRepository)(nil)

func (r *stockAlertRepository) ListOpen(ctx context.Context) ([]*models.StockAlert, error) {
	query := `
		SELECT id, part_id, stock_quantity, threshold, acknowledged, created_at
		FROM stock_alerts
		WHERE NOT acknowledged
		ORDER BY created_at`

	return r.list(ctx, query)
}

func (r *stockAlertRepository) ListCreatedInCurrentTx(ctx context.Context) ([]*models.StockAlert, error) {
	query := `
		SELECT id, part_id, stock_quantity, threshold, acknowledged, created_at
		FROM stock_alerts
		WHERE NOT acknowledged AND created_at >= now()
		ORDER BY created_at`

	return r.list(ctx, query)
}

func (r *stockAlertRepository) list(ctx context.Context, query string) ([]*models.StockAlert, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	rows, err := scope.Conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query stock alerts: %w", err)
	}
	defer rows.Close()

	var alerts []*models.StockAlert
	for rows.Next() {
		alert, err := scanStockAlert(rows)
		if err != nil {
			return nil, err
		}
		alerts = append(alerts, alert)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating stock alerts: %w", err)
	}

	return alerts, nil
}

func (r *stockAlertRepository) Acknowledge(ctx context.Context, alertID uuid.UUID) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no database scope in context")
	}

	query := `
		UPDATE stock_alerts
		SET acknowledged = true
		WHERE id = $1 AND NOT acknowledged`

	result, err := scope.Conn.Exec(ctx, query, alertID)
	if err != nil {
		return fmt.Errorf("failed to acknowledge stock alert: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func scanStockAlert(row pgx.Row) (*models.StockAlert, error) {
	var a models.StockAlert
	err := row.Scan(
		&a.ID,
		&a.PartID,
		&a.StockQuantity,
		&a.Threshold,
		&a.Acknowledged,
		&a.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to scan stock alert: %w", err)
	}
	return &a, nil
}
