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

// CustomerRepository provides data access for customers and their contact
// numbers.
type CustomerRepository interface {
	Create(ctx context.Context, customer *models.Customer) error
	GetByID(ctx context.Context, customerID uuid.UUID) (*models.Customer, error)
	GetByName(ctx context.Context, name string) (*models.Customer, error)
	List(ctx context.Context) ([]*models.Customer, error)
	Update(ctx context.Context, customer *models.Customer) error
	// Delete removes the customer together with their mobile numbers and
	// maintenance history (schema cascades).
	Delete(ctx context.Context, customerID uuid.UUID) error

	AddMobileNumber(ctx context.Context, customerID uuid.UUID, number string) error
	ListMobileNumbers(ctx context.Context, customerID uuid.UUID) ([]*models.MobileNumber, error)
	RemoveMobileNumber(ctx context.Context, customerID uuid.UUID, number string) error
}

type customerRepository struct{}

// NewCustomerRepository creates a new CustomerRepository.
func NewCustomerRepository() CustomerRepository {
	return &customerRepository{}
}

var _ CustomerRepository = (*customerRepository)(nil)

func (r *customerRepository) Create(ctx context.Context, customer *models.Customer) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no database scope in context")
	}

	query := `
		INSERT INTO customers (name, address, installed_at)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`

	err := scope.Conn.QueryRow(ctx, query,
		customer.Name,
		customer.Address,
		customer.InstalledAt,
	).Scan(&customer.ID, &customer.CreatedAt, &customer.UpdatedAt)
	if err != nil {
		return fmt.Errorf("failed to create customer: %w", err)
	}

	return nil
}

func (r *customerRepository) GetByID(ctx context.Context, customerID uuid.UUID) (*models.Customer, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT id, name, address, installed_at, created_at, updated_at
		FROM customers
		WHERE id = $1`

	customer, err := scanCustomer(scope.Conn.QueryRow(ctx, query, customerID))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return customer, nil
}

func (r *customerRepository) GetByName(ctx context.Context, name string) (*models.Customer, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	// Names are not unique; the earliest-created match wins.
	query := `
		SELECT id, name, address, installed_at, created_at, updated_at
		FROM customers
		WHERE name = $1
		ORDER BY created_at
		LIMIT 1`

	customer, err := scanCustomer(scope.Conn.QueryRow(ctx, query, name))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}

	return customer, nil
}

func (r *customerRepository) List(ctx context.Context) ([]*models.Customer, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT id, name, address, installed_at, created_at, updated_at
		FROM customers
		ORDER BY name`

	rows, err := scope.Conn.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}
	defer rows.Close()

	var customers []*models.Customer
	for rows.Next() {
		customer, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		customers = append(customers, customer)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating customers: %w", err)
	}

	return customers, nil
}

func (r *customerRepository) Update(ctx context.Context, customer *models.Customer) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no database scope in context")
	}

	query := `
		UPDATE customers
		SET name = $2, address = $3, installed_at = $4, updated_at = now()
		WHERE id = $1
		RETURNING updated_at`

	err := scope.Conn.QueryRow(ctx, query,
		customer.ID,
		customer.Name,
		customer.Address,
		customer.InstalledAt,
	).Scan(&customer.UpdatedAt)
	if err != nil {
		if err == pgx.ErrNoRows {
			return apperrors.ErrNotFound
		}
		return fmt.Errorf("failed to update customer: %w", err)
	}

	return nil
}

func (r *customerRepository) Delete(ctx context.Context, customerID uuid.UUID) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no database scope in context")
	}

	query := `DELETE FROM customers WHERE id = $1`

	result, err := scope.Conn.Exec(ctx, query, customerID)
	if err != nil {
		return fmt.Errorf("failed to delete customer: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func (r *customerRepository) AddMobileNumber(ctx context.Context, customerID uuid.UUID, number string) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no database scope in context")
	}

	query := `
		INSERT INTO customer_mobile_numbers (customer_id, mobile_number)
		VALUES ($1, $2)`

	_, err := scope.Conn.Exec(ctx, query, customerID, number)
	if err != nil {
		if mapped := apperrors.FromPostgres(err); mapped != nil {
			return mapped
		}
		return fmt.Errorf("failed to add mobile number: %w", err)
	}

	return nil
}

func (r *customerRepository) ListMobileNumbers(ctx context.Context, customerID uuid.UUID) ([]*models.MobileNumber, error) {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return nil, fmt.Errorf("no database scope in context")
	}

	query := `
		SELECT customer_id, mobile_number, created_at
		FROM customer_mobile_numbers
		WHERE customer_id = $1
		ORDER BY created_at`

	rows, err := scope.Conn.Query(ctx, query, customerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mobile numbers: %w", err)
	}
	defer rows.Close()

	var numbers []*models.MobileNumber
	for rows.Next() {
		var n models.MobileNumber
		if err := rows.Scan(&n.CustomerID, &n.Number, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan mobile number: %w", err)
		}
		numbers = append(numbers, &n)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mobile numbers: %w", err)
	}

	return numbers, nil
}

func (r *customerRepository) RemoveMobileNumber(ctx context.Context, customerID uuid.UUID, number string) error {
	scope, ok := database.GetScope(ctx)
	if !ok {
		return fmt.Errorf("no database scope in context")
	}

	query := `
		DELETE FROM customer_mobile_numbers
		WHERE customer_id = $1 AND mobile_number = $2`

	result, err := scope.Conn.Exec(ctx, query, customerID, number)
	if err != nil {
		return fmt.Errorf("failed to remove mobile number: %w", err)
	}

	if result.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}

	return nil
}

func scanCustomer(row pgx.Row) (*models.Customer, error) {
	var c models.Customer
	err := row.Scan(
		&c.ID,
		&c.Name,
		&c.Address,
		&c.InstalledAt,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, err
		}
		return nil, fmt.Errorf("failed to scan customer: %w", err)
	}
	return &c, nil
}
