package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/aquaflow-inc/aquaflow-engine/pkg/database"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/models"
)

// ReportRepository runs the fixed read-only report queries. Each is a
// stateless projection with no write side effects.
type ReportRepository interface {
	// LowStockParts lists every part with stock strictly below threshold.
	LowStockParts(ctx context.Context, threshold int) ([]*models.Part, error)
	// TotalInventoryValue is the sum of stock x unit price over all parts.
	TotalInventoryValue(ctx context.Context) (float64, error)
	// PartUsageTotals aggregates consumption and charges per part, including
	// parts never used.
	PartUsageTotals(ctx context.Context) ([]*models.PartUsageTotal, error)
	// MostUsedParts lists the top consumed parts by total quantity.
	MostUsedParts(ctx context.Context, limit int) ([]*models.PartUsageTotal, error)
	// UpcomingMaintenanceForCustomer lists visits scheduled on or after `from`
	// for customers with the given name.
	UpcomingMaintenanceForCustomer(ctx context.Context, customerName string, from time.Time) ([]*models.UpcomingVisit, error)
}

type reportRepository struct{}

// NewReportRepository creates a new ReportRepository.
func NewReportRepository() ReportRepository {
	return &reportRepository{}
}

var _ ReportRepository = (*reportRepository)(nil)

func (r *reportRepository) LowStockParts(ctx context.Context, threshold int) ([]*models.Part, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT id, name, stock_quantity, unit_price, created_at, updated_at
		FROM parts
		WHERE stock_quantity < $1
		ORDER BY stock_quantity, name`

	rows, err := scope.Conn.Query(ctx, query, threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to query low-stock parts: %w", err)
	}
	defer rows.Close()

	var parts []*models.Part
	for rows.Next() {
		part, err := scanPart(rows)
		if err != nil {
			return nil, err
		}
		parts = append(parts, part)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating low-stock parts: %w", err)
	}

	return parts, nil
}

func (r *reportRepository) TotalInventoryValue(ctx context.Context) (float64, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return 0, fmt.Errorf("no database scope in context")
	}

	query := `SELECT COALESCE(SUM(stock_quantity * unit_price), 0) FROM parts`

	var total float64
	if err := scope.Conn.QueryRow(ctx, query).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to compute inventory value: %w", err)
	}

	return total, nil
}

func (r *reportRepository) PartUsageTotals(ctx context.Context) ([]*models.PartUsageTotal, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT p.id, p.name,
		       COALESCE(SUM(pu.quantity), 0) AS total_used,
		       COALESCE(SUM(pu.quantity * pu.cost), 0) AS total_charged
		FROM parts p
		LEFT JOIN part_usages pu ON pu.part_id = p.id
		GROUP BY p.id, p.name
		ORDER BY p.name`

	return queryUsageTotals(ctx, scope, query)
}

func (r *reportRepository) MostUsedParts(ctx context.Context, limit int) ([]*models.PartUsageTotal, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT p.id, p.name,
		       SUM(pu.quantity) AS total_used,
		       SUM(pu.quantity * pu.cost) AS total_charged
		FROM part_usages pu
		JOIN parts p ON p.id = pu.part_id
		GROUP BY p.id, p.name
		ORDER BY total_used DESC, p.name
		LIMIT $1`

	return queryUsageTotals(ctx, scope, query, limit)
}

func (r *reportRepository) UpcomingMaintenanceForCustomer(ctx context.Context, customerName string, from time.Time) ([]*models.UpcomingVisit, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT mr.id, c.name, mr.upcoming_date, mr.comment
		FROM maintenance_records mr
		JOIN customers c ON c.id = mr.customer_id
		WHERE c.name = $1 AND mr.upcoming_date >= $2::date
		ORDER BY mr.upcoming_date`

	rows, err := scope.Conn.Query(ctx, query, customerName, from)
	if err != nil {
		return nil, fmt.Errorf("failed to query upcoming maintenance: %w", err)
	}
	defer rows.Close()

	var visits []*models.UpcomingVisit
	for rows.Next() {
		var v models.UpcomingVisit
		if err := rows.Scan(&v.MaintenanceID, &v.CustomerName, &v.UpcomingDate, &v.Comment); err != nil {
			return nil, fmt.Errorf("failed to scan upcoming visit: %w", err)
		}
		visits = append(visits, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating upcoming visits: %w", err)
	}

	return visits, nil
}

func queryUsageTotals(ctx context.Context, scope *database.Scope, query string, args ...any) ([]*models.PartUsageTotal, error) {
	rows, err := scope.Conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query part usage totals: %w", err)
	}
	defer rows.Close()

	var totals []*models.PartUsageTotal
	for rows.Next() {
		var t models.PartUsageTotal
		if err := rows.Scan(&t.PartID, &t.PartName, &t.TotalUsed, &t.TotalCharged); err != nil {
			return nil, fmt.Errorf("failed to scan part usage total: %w", err)
		}
		totals = append(totals, &t)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating part usage totals: %w", err)
	}

	return totals, nil
}
