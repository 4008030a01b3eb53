package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/aquaflow-inc/aquaflow-engine/pkg/apperrors"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/database"
	"github.com/aquaflow-inc/aquaflow-engine/pkg/models"
)

// MaintenanceRepository provides data access for maintenance visits and the
// derived reads computed over them.
type MaintenanceRepository interface {
	Create(ctx context.Context, record *models.MaintenanceRecord) error
	GetByID(ctx context.Context, maintenanceID uuid.UUID) (*models.MaintenanceRecord, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.MaintenanceRecord, error)
	// AverageCostByCustomer returns the mean of (quantity x unit cost) across
	// the customer's part-usage rows. A customer with no usage rows yields
	// (nil, nil): no data, not zero.
	AverageCostByCustomer(ctx context.Context, customerID uuid.UUID) (*float64, error)
	// CustomersWithMaintenanceInMonth returns the distinct customers having a
	// visit whose upcoming date falls in ref's calendar month. The reference
	// date is a parameter so callers control the clock.
	CustomersWithMaintenanceInMonth(ctx context.Context, ref time.Time) ([]*models.CustomerSummary, error)
}

type maintenanceRepository struct{}

// NewMaintenanceRepository creates a new MaintenanceRepository.
func NewMaintenanceRepository() MaintenanceRepository {
	return &maintenanceRepository{}
}

var _ MaintenanceRepository = (*maintenanceRepository)(nil)

func (r *maintenanceRepository) Create(ctx context.Context, record *models.MaintenanceRecord) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no database scope in context")
	}

	query := `
		INSERT INTO maintenance_records (customer_id, performed_by, recent_date, upcoming_date, comment)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := scope.Conn.QueryRow(ctx, query,
		record.CustomerID,
		record.PerformedBy,
		record.RecentDate,
		record.UpcomingDate,
		record.Comment,
	).Scan(&record.ID, &record.CreatedAt)
	if err != nil {
		if mapped := apperrors.FromPostgres(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to create maintenance record: %w", err)
	}

	return nil
}

func (r *maintenanceRepository) GetByID(ctx context.Context, maintenanceID uuid.UUID) (*models.MaintenanceRecord, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT id, customer_id, performed_by, recent_date, upcoming_date, comment, created_at
		FROM maintenance_records
		WHERE id = $1`

	record, err := scanMaintenanceRecord(scope.Conn.QueryRow(ctx, query, maintenanceID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return record, nil
}

func (r *maintenanceRepository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]*models.MaintenanceRecord, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT id, customer_id, performed_by, recent_date, upcoming_date, comment, created_at
		FROM maintenance_records
		WHERE customer_id = $1
		ORDER BY recent_date DESC`

	rows, err := scope.Conn.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query maintenance records: %w", err)
	}
	defer rows.Close()

	var records []*models.MaintenanceRecord
	for rows.Next() {
		record, err := scanMaintenanceRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating maintenance records: %w", err)
	}

	return records, nil
}

func (r *maintenanceRepository) AverageCostByCustomer(ctx context.Context, customerID uuid.UUID) (*float64, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	// AVG over zero rows is NULL, which scans into a nil pointer.
	query := `
		SELECT AVG(pu.quantity * pu.cost)
		FROM part_usages pu
		JOIN maintenance_records mr ON mr.id = pu.maintenance_id
		WHERE mr.customer_id = $1`

	var avg *float64
	if err := scope.Conn.QueryRow(ctx, query, customerID).Scan(&avg); err != nil {
		return nil, fmt.Errorf("failed to compute average maintenance cost: %w", err)
	}

	return avg, nil
}

func (r *maintenanceRepository) CustomersWithMaintenanceInMonth(ctx context.Context, ref time.Time) ([]*models.CustomerSummary, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT DISTINCT c.id, c.name, c.address
		FROM customers c
		JOIN maintenance_records mr ON mr.customer_id = c.id
		WHERE mr.upcoming_date >= date_trunc('month', $1::date)
		  AND mr.upcoming_date < date_trunc('month', $1::date) + interval '1 month'`

	rows, err := scope.Conn.Query(ctx, query, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly maintenance customers: %w", err)
	}
	defer rows.Close()

	var customers []*models.CustomerSummary
	for rows.Next() {
		var c models.CustomerSummary
		if err := rows.Scan(&c.ID, &c.Name, &c.Address); err != nil {
			return nil, fmt.Errorf("failed to scan customer summary: %w", err)
		}
		customers = append(customers, &c)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customer summaries: %w", err)
	}

	return customers, nil
}

func scanMaintenanceRecord(row pgx.Row) (*models.MaintenanceRecord, error) {
	var m models.MaintenanceRecord
	err := row.Scan(
		&m.ID,
		&m.CustomerID,
		&m.PerformedBy,
		&m.RecentDate,
		&m.UpcomingDate,
		&m.Comment,
		&m.CreatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan maintenance record: %w", err)
	}
	return &m, nil
}
