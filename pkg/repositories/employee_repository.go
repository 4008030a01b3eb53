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

// EmployeeRepository provides data access for maintenance technicians.
type EmployeeRepository interface {
	Create(ctx context.Context, employee *models.Employee) error
	GetByID(ctx context.Context, employeeID uuid.UUID) (*models.Employee, error)
	GetByMobile(ctx context.Context, mobileNumber string) (*models.Employee, error)
	List(ctx context.Context) ([]*models.Employee, error)
	// Delete removes the technician; their past maintenance records survive
	// with performed_by cleared (schema sets it NULL).
	Delete(ctx context.Context, employeeID uuid.UUID) error
}

type employeeRepository struct{}

// NewEmployeeRepository creates a new EmployeeRepository.
func NewEmployeeRepository() EmployeeRepository {
	return &employeeRepository{}
}

var _ EmployeeRepository = (*employeeRepository)(nil)

func (r *employeeRepository) Create(ctx context.Context, employee *models.Employee) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no database scope in context")
	}

	query := `
		INSERT INTO employees (name, mobile_number)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := scope.Conn.QueryRow(ctx, query,
		employee.Name,
		employee.MobileNumber,
	).Scan(&employee.ID, &employee.CreatedAt)
	if err != nil {
		// Mobile numbers are unique across technicians.
		if mapped := apperrors.FromPostgres(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to create employee: %w", err)
	}

	return nil
}

func (r *employeeRepository) GetByID(ctx context.Context, employeeID uuid.UUID) (*models.Employee, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT id, name, mobile_number, created_at
		FROM employees
		WHERE id = $1`

	return scanEmployeeOrNotFound(scope.Conn.QueryRow(ctx, query, employeeID))
}

func (r *employeeRepository) GetByMobile(ctx context.Context, mobileNumber string) (*models.Employee, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT id, name, mobile_number, created_at
		FROM employees
		WHERE mobile_number = $1`

	return scanEmployeeOrNotFound(scope.Conn.QueryRow(ctx, query, mobileNumber))
}

func (r *employeeRepository) List(ctx context.Context) ([]*models.Employee, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT id, name, mobile_number, created_at
		FROM employees
		ORDER BY name`

	rows, err := scope.Conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	var employees []*models.Employee
	for rows.Next() {
		var e models.Employee
		if err := rows.Scan(&e.ID, &e.Name, &e.MobileNumber, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating employees: %w", err)
	}

	return employees, nil
}

func (r *employeeRepository) Delete(ctx context.Context, employeeID uuid.UUID) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no database scope in context")
	}

	query := `DELETE FROM employees WHERE id = $1`

	result, err := scope.Conn.Exec(ctx, query, employeeID)
	if err != nil {
		return fmt.Errorf("failed to delete employee: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func scanEmployeeOrNotFound(row pgx.Row) (*models.Employee, error) {
	var e models.Employee
	err := row.Scan(&e.ID, &e.Name, &e.MobileNumber, &e.CreatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to scan employee: %w", err)
	}
	return &e, nil
}
